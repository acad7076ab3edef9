// Package datasets lists and removes imported catalog snapshots.
package datasets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/tourcatalog/pkg/printers"
	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/timeutil"
)

type Datasets struct {
	Persistence store.Persistence
	// Delete removes these request ids instead of listing.
	Delete []string
	// OlderThan, when set, also removes every dataset imported before now
	// minus OlderThan.
	OlderThan time.Duration
	JSON      bool
	Out       io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d *Datasets) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Datasets) Do(ctx context.Context) error {
	if d.Persistence == nil {
		return errors.New("can not list datasets, no persistence")
	}

	remove := append([]string(nil), d.Delete...)
	if d.OlderThan > 0 {
		cutoff := d.now().Add(-d.OlderThan)
		for _, m := range d.Persistence.List(ctx) {
			if m.Imported.Before(cutoff) {
				remove = append(remove, m.RequestID)
			}
		}
	}

	for _, id := range remove {
		if err := d.Persistence.Delete(id); err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}
		if !d.JSON {
			_, _ = fmt.Fprintf(d.Out, "deleted %s\n", id)
		}
	}
	if (len(d.Delete) > 0 || d.OlderThan > 0) && !d.JSON {
		if len(remove) == 0 {
			_, _ = fmt.Fprintf(d.Out, "nothing older than %s\n", timeutil.FormatAge(d.OlderThan))
		}
		return nil
	}

	metas := d.Persistence.List(ctx)
	if d.JSON {
		enc := json.NewEncoder(d.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(metas)
	}

	pp := printers.PrettyPrint{Out: d.Out}
	pp.NewLine()
	pp.Title("Datasets")
	pp.Datasets(metas...)
	return nil
}
