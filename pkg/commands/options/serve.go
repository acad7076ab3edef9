package options

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/runner/mcp"
)

// ServeOptions configures the MCP transport.
type ServeOptions struct {
	Transport string
	Listen    string
	Path      string
	TLSCert   string
	TLSKey    string
	LinkBase  string
}

func AddServeArgs(cmd *cobra.Command, o *ServeOptions) {
	f := cmd.Flags()
	f.StringVar(&o.Transport, "transport", string(mcp.TransportHTTP), "Transport to use: http or stdio.")
	f.StringVar(&o.Listen, "listen", "127.0.0.1:8080", "host:port for the http transport; port 0 picks a free port.")
	f.StringVar(&o.Path, "path", "/mcp", "HTTP endpoint path.")
	f.StringVar(&o.TLSCert, "tls-cert", "", "TLS certificate file; serves https together with --tls-key.")
	f.StringVar(&o.TLSKey, "tls-key", "", "TLS private key file.")
	f.StringVar(&o.LinkBase, "link-base", "", "Base URL for partner links in results.")
}

// Apply validates the flags and copies them onto r.
func (o *ServeOptions) Apply(r *mcp.Runner) error {
	switch t := mcp.Transport(strings.ToLower(strings.TrimSpace(o.Transport))); t {
	case "", mcp.TransportHTTP:
		if _, _, err := net.SplitHostPort(o.Listen); err != nil {
			return fmt.Errorf("--listen: %w", err)
		}
		r.Transport = mcp.TransportHTTP
	case mcp.TransportStdio:
		r.Transport = t
	default:
		return fmt.Errorf("unsupported transport %q (expected http or stdio)", o.Transport)
	}
	r.Listen = o.Listen
	r.Path = "/" + strings.Trim(strings.TrimSpace(o.Path), "/")
	r.TLSCert = strings.TrimSpace(o.TLSCert)
	r.TLSKey = strings.TrimSpace(o.TLSKey)
	r.LinkBase = strings.TrimSpace(o.LinkBase)
	return nil
}

// URL is the address clients connect to once the server listens on a.
func (o *ServeOptions) URL(a net.Addr) string {
	scheme := "http"
	if o.TLSCert != "" {
		scheme = "https"
	}
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return fmt.Sprintf("%s://%s%s", scheme, a, o.Path)
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsUnspecified() {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, net.JoinHostPort(host, port), strings.Trim(o.Path, "/"))
}
