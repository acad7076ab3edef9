package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/commands/options"
	"tableflip.dev/tourcatalog/pkg/runner/list"
	"tableflip.dev/tourcatalog/pkg/store"
)

func addList(topLevel *cobra.Command) {
	do := &options.DatasetOptions{}
	co := &options.CriteriaOptions{}
	oo := &options.OutputOptions{}
	var (
		limit    int
		linkBase string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list hotels matching the criteria",
		Example: `
tourcatalog list
tourcatalog list --rating 4 --sort price,asc
tourcatalog list --query 'filter_stars=4,5&filter_meals=AI' --json
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
			l := list.List{
				Dataset:  ds,
				Criteria: c,
				Limit:    limit,
				LinkBase: linkBase,
				ShowID:   oo.ShowID,
				JSON:     oo.JSON,
				Out:      oo.Writer(),
				Log:      log,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddDatasetArgs(cmd, do)
	options.AddCriteriaArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most this many hotels.")
	cmd.Flags().StringVar(&linkBase, "link-base", "", "Base URL for partner links in --json output.")
	registerRequestCompletion(cmd)

	topLevel.AddCommand(cmd)
}
