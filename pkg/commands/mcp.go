package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/commands/options"
	"tableflip.dev/tourcatalog/pkg/runner/mcp"
	"tableflip.dev/tourcatalog/pkg/store"
)

func addMCP(topLevel *cobra.Command) {
	so := &options.ServeOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "serve imported catalogs over the Model Context Protocol",
		Long: `Serve stored datasets to MCP clients: list datasets, search hotels with
catalog criteria, and walk the row window for a viewport.`,
		Example: `
tourcatalog mcp
tourcatalog mcp --listen :0 --link-base https://tours.example
tourcatalog mcp --transport stdio
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := mcp.Runner{Name: "tourcatalog", Version: version}
			if err := so.Apply(&r); err != nil {
				return err
			}
			log, err := lo.Logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			p, err := store.Load(nil, store.WithLogger(log.Named("store")))
			if err != nil {
				return err
			}

			r.Persistence = p
			r.Log = log.Named("mcp")
			r.OnListen = func(a net.Addr) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP listening on %s\n", so.URL(a))
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddServeArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
