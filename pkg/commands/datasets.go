package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/commands/options"
	"tableflip.dev/tourcatalog/pkg/runner/datasets"
	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/timeutil"
)

func addDatasets(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var remove []string
	var olderThan string

	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ds"},
		Short:   "list or delete imported datasets",
		Example: `
tourcatalog datasets
tourcatalog datasets --delete local-1718000000
tourcatalog datasets --older-than 2w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			var age time.Duration
			if olderThan != "" {
				var err error
				if age, err = timeutil.ParseAge(olderThan); err != nil {
					return oo.HandleError(fmt.Errorf("--older-than: %w", err))
				}
			}
			log, err := lo.Logger()
			if err != nil {
				return oo.HandleError(err)
			}
			defer func() { _ = log.Sync() }()
			p, err := store.Load(nil, store.WithLogger(log.Named("store")))
			if err != nil {
				return oo.HandleError(err)
			}
			d := datasets.Datasets{
				Persistence: p,
				Delete:      remove,
				OlderThan:   age,
				JSON:        oo.JSON,
				Out:         oo.Writer(),
			}
			return oo.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringSliceVar(&remove, "delete", nil, "Request ids to delete.")
	cmd.Flags().StringVar(&olderThan, "older-than", "", "Delete datasets imported longer ago than this age, e.g. 2w or 3d12h.")
	_ = cmd.RegisterFlagCompletionFunc("delete", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return requestCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
