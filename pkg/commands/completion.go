package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(tourcatalog completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(tourcatalog completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func registerRequestCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("request", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return requestCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func requestCompletions(toComplete string) []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	var ids []string
	for _, m := range p.List(context.Background()) {
		if strings.HasPrefix(m.RequestID, toComplete) {
			ids = append(ids, m.RequestID)
		}
	}
	return ids
}
