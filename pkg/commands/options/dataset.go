package options

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/source"
	"tableflip.dev/tourcatalog/pkg/store"
)

// DatasetOptions selects the dataset a command works on.
type DatasetOptions struct {
	File    string
	Request string
}

func AddDatasetArgs(cmd *cobra.Command, o *DatasetOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		"Catalog response file to read. Defaults to the configured data file.")
	cmd.Flags().StringVarP(&o.Request, "request", "r", "",
		"Request id of an imported dataset.")
}

// Path is the response file to read, if any.
func (o *DatasetOptions) Path(cfg store.Config) string {
	if o.File != "" {
		return o.File
	}
	if o.Request == "" && cfg != nil {
		return cfg.DataPath()
	}
	return ""
}

// Load reads the dataset from --file, then --request, then the configured
// data file, and finally falls back to the latest import.
func (o *DatasetOptions) Load(ctx context.Context, cfg store.Config, opts ...store.Option) (*store.Dataset, error) {
	if path := o.Path(cfg); path != "" {
		return source.ReadFile(path)
	}
	p, err := store.Load(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if o.Request != "" {
		return p.Load(o.Request)
	}
	return p.Latest(ctx)
}
