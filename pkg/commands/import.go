package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/runner/importer"
	"tableflip.dev/tourcatalog/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "snapshot a catalog response into the local store",
		Example: `
tourcatalog import hotels.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := lo.Logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			p, err := store.Load(nil, store.WithLogger(log.Named("store")))
			if err != nil {
				return err
			}

			i := importer.Importer{
				Path:        args[0],
				Persistence: p,
				Out:         cmd.OutOrStdout(),
				Log:         log,
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
