package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/commands/options"
	"tableflip.dev/tourcatalog/pkg/runner/scroll"
	"tableflip.dev/tourcatalog/pkg/store"
)

func addWindow(topLevel *cobra.Command) {
	do := &options.DatasetOptions{}
	co := &options.CriteriaOptions{}
	gopts := &options.GeometryOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "window",
		Short: "show the rows kept rendered while scrolling",
		Long: `Replay scroll offsets against the catalog and print, for each one, the rows
the catalog materializes and the rows it adds or removes on the way.`,
		Example: `
tourcatalog window --offset 0,-720,-1440
tourcatalog window --width 700 --viewport-height 1000 --offset=-3600
tourcatalog window --rating 5 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			log, err := lo.Logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			c, err := co.Criteria()
			if err != nil {
				return oo.HandleError(err)
			}
			ds, err := do.Load(cmd.Context(), cfg, store.WithLogger(log.Named("store")))
			if err != nil {
				return oo.HandleError(err)
			}
			s := scroll.Scroll{
				Dataset:  ds,
				Criteria: c,
				Geometry: gopts.Geometry(cfg),
				Offsets:  gopts.Offsets,
				ShowID:   oo.ShowID,
				JSON:     oo.JSON,
				Out:      oo.Writer(),
				Log:      log,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddDatasetArgs(cmd, do)
	options.AddCriteriaArgs(cmd, co)
	options.AddGeometryArgs(cmd, gopts)
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)
	registerRequestCompletion(cmd)

	topLevel.AddCommand(cmd)
}
