// Package importer snapshots a catalog response file into the local store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/source"
	"tableflip.dev/tourcatalog/pkg/store"
)

type Importer struct {
	Path        string
	Persistence store.Persistence
	Out         io.Writer
	Log         *zap.Logger
}

func (i *Importer) Do(ctx context.Context) error {
	if i.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	ds, err := source.ReadFile(i.Path)
	if err != nil {
		return err
	}
	if err := i.Persistence.Save(ds); err != nil {
		return err
	}
	if i.Log != nil {
		i.Log.Debug("dataset imported",
			zap.String("request_id", ds.RequestID),
			zap.String("source", ds.Source),
			zap.Int("size", len(ds.Items)))
	}
	if i.Out != nil {
		_, _ = fmt.Fprintf(i.Out, "imported %d hotels as %s\n", len(ds.Items), ds.RequestID)
	}
	return nil
}
