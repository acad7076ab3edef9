// Package ui runs the interactive catalog browser.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/source"
	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/tui/app"
)

type UI struct {
	Dataset  *store.Dataset
	Criteria criteria.Criteria
	// Follow, when set, reloads the catalog whenever this response file
	// changes.
	Follow   string
	Debounce time.Duration
	Log      *zap.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Dataset == nil {
		return errors.New("can not browse, no dataset")
	}
	log := u.Log
	if log == nil {
		log = zap.NewNop()
	}

	opts := app.DefaultOptions()
	opts.Items = u.Dataset.Items
	opts.RequestID = u.Dataset.RequestID
	opts.Filters = u.Dataset.Filters
	opts.Criteria = u.Criteria
	opts.Logger = log
	opts.ColorProfile = termenv.EnvColorProfile()
	opts.DarkBackground = termenv.HasDarkBackground()
	if u.Debounce >= 0 {
		opts.Debounce = u.Debounce
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if u.Follow != "" {
		w := source.NewWatcher(u.Follow, log.Named("watch"))
		updates, err := w.Watch(ctx)
		if err != nil {
			return err
		}
		opts.Updates = updates
	}

	return app.Run(ctx, opts)
}
