package options

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// LogOptions
type LogOptions struct {
	Verbose bool
	File    string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log catalog internals to stderr.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Write the verbose log to this file instead of stderr.")
}

// Logger returns a development logger when verbose, otherwise one that
// discards everything.
func (o *LogOptions) Logger() (*zap.Logger, error) {
	if o == nil || (!o.Verbose && o.File == "") {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	if o.File != "" {
		cfg.OutputPaths = []string{o.File}
		cfg.ErrorOutputPaths = []string{o.File}
	}
	return cfg.Build()
}
