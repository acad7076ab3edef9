// Package list prints the filtered and sorted catalog.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/filter"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/printers"
	"tableflip.dev/tourcatalog/pkg/store"
)

// List prints every item of Dataset that matches Criteria.
type List struct {
	Dataset  *store.Dataset
	Criteria criteria.Criteria
	// Limit caps the number of printed items; zero prints all.
	Limit    int
	LinkBase string
	ShowID   bool
	JSON     bool
	Out      io.Writer
	Log      *zap.Logger
}

type listJSON struct {
	RequestID string     `json:"request_id"`
	Query     string     `json:"query"`
	Total     int        `json:"total"`
	Matched   int        `json:"matched"`
	Items     []itemJSON `json:"items"`
}

type itemJSON struct {
	item.Item
	Discount int    `json:"discount"`
	Partner  string `json:"partner_link,omitempty"`
}

func (l *List) Do(ctx context.Context) error {
	if l.Dataset == nil {
		return errors.New("can not list, no dataset")
	}
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	matched := filter.Apply(l.Dataset.Items, l.Criteria)
	log.Debug("filtered",
		zap.String("query", l.Criteria.Query()),
		zap.Int("matched", len(matched)),
		zap.Int("total", len(l.Dataset.Items)))

	shown := matched
	if l.Limit > 0 && len(shown) > l.Limit {
		shown = shown[:l.Limit]
	}

	if l.JSON {
		out := listJSON{
			RequestID: l.Dataset.RequestID,
			Query:     l.Criteria.Query(),
			Total:     len(l.Dataset.Items),
			Matched:   len(matched),
			Items:     make([]itemJSON, 0, len(shown)),
		}
		for _, it := range shown {
			ij := itemJSON{Item: it, Discount: it.Discount()}
			if l.LinkBase != "" {
				ij.Partner = it.PartnerLink(l.LinkBase, l.Dataset.RequestID)
			}
			out.Items = append(out.Items, ij)
		}
		enc := json.NewEncoder(l.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	pp.NewLine()
	pp.TitleWithCount(title(l.Dataset), len(matched), len(l.Dataset.Items))
	if len(matched) == 0 {
		pp.None(l.Criteria.ActiveFields()...)
		return nil
	}
	pp.Items(shown...)
	return nil
}

func title(ds *store.Dataset) string {
	if ds.RequestID != "" {
		return ds.RequestID
	}
	return "catalog"
}
