package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/tourcatalog/pkg/store"
)

// Transport is how clients reach the catalog server.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

// Runner serves stored datasets to MCP clients.
type Runner struct {
	Persistence store.Persistence
	Name        string
	Version     string
	// LinkBase prefixes partner links in search results.
	LinkBase string
	Log      *zap.Logger

	Transport Transport
	// Listen is the host:port of the http transport.
	Listen string
	// Path is where the streamable HTTP handler is mounted; "/mcp" when empty.
	Path string
	// TLSCert and TLSKey switch the http transport to https.
	TLSCert string
	TLSKey  string
	// OnListen is called once the http listener is bound.
	OnListen func(net.Addr)
}

// NewServer builds the MCP server with every catalog tool and resource
// registered.
func NewServer(svc *Service, name, version string) *server.MCPServer {
	if name == "" {
		name = "tourcatalog"
	}
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Search, filter, sort and page through imported hotel catalogs via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("mcp runner requires persistence")
	}

	svc := NewService(r.Persistence)
	svc.LinkBase = r.LinkBase
	if r.Log != nil {
		svc.Log = r.Log
	}
	srv := NewServer(svc, r.Name, r.Version)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// shutdownGrace bounds how long in-flight MCP requests may run after the
// context is cancelled.
const shutdownGrace = 5 * time.Second

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	tls := r.TLSCert != "" || r.TLSKey != ""
	if tls && (r.TLSCert == "" || r.TLSKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	path := "/" + strings.TrimPrefix(r.Path, "/")
	if path == "/" {
		path = "/mcp"
	}
	listenAddr := r.Listen
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", listenAddr, err)
	}
	log.Info("serving catalog MCP", zap.Stringer("addr", ln.Addr()), zap.String("path", path), zap.Bool("tls", tls))
	if r.OnListen != nil {
		r.OnListen(ln.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tls {
			err = httpSrv.ServeTLS(ln, r.TLSCert, r.TLSKey)
		} else {
			err = httpSrv.Serve(ln)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		log.Debug("shutting down catalog MCP")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
