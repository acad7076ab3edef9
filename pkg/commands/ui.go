package commands

import (
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/commands/options"
	"tableflip.dev/tourcatalog/pkg/runner/ui"
	"tableflip.dev/tourcatalog/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	do := &options.DatasetOptions{}
	co := &options.CriteriaOptions{}
	var (
		follow   bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
tourcatalog ui
tourcatalog ui -f hotels.json --follow
tourcatalog ui --log-file /tmp/tourcatalog.log
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive(os.Stdout) {
				return errors.New("ui needs an interactive terminal, try list or window")
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			log, err := lo.Logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			c, err := co.Criteria()
			if err != nil {
				return err
			}
			ds, err := do.Load(cmd.Context(), cfg, store.WithLogger(log.Named("store")))
			if err != nil {
				return err
			}
			i := ui.UI{
				Dataset:  ds,
				Criteria: c,
				Debounce: debounce,
				Log:      log,
			}
			if follow {
				i.Follow = do.Path(cfg)
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddDatasetArgs(cmd, do)
	options.AddCriteriaArgs(cmd, co)
	cmd.Flags().BoolVar(&follow, "follow", false,
		"Reload whenever the data file changes. Needs --file or a configured data file.")
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond,
		"Delay applying keyboard criteria changes; 0 applies them at once.")
	registerRequestCompletion(cmd)

	topLevel.AddCommand(cmd)
}

func interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
