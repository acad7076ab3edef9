// Package scroll replays scroll offsets against the catalog controller and
// reports the window it materializes at each step.
package scroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/catalog"
	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/printers"
	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/window"
)

// Row is one materialized row and the items it holds.
type Row struct {
	Index int         `json:"row"`
	First int         `json:"first"`
	Items []item.Item `json:"items"`
}

// Step is the window after one scroll event.
type Step struct {
	Offset float64 `json:"offset"`
	Reset  bool    `json:"reset,omitempty"`
	Add    []int   `json:"add"`
	Remove []int   `json:"remove"`
	Rows   []Row   `json:"rows"`
	// NoData is set when the criteria matched nothing.
	NoData *events.NoDataMsg `json:"no_data,omitempty"`
}

// Walk loads items into a headless controller and scrolls it through
// offsets in order. The first step is always the rebuild at the list top; a
// leading zero offset is folded into it.
func Walk(ctx context.Context, items []item.Item, requestID string, c criteria.Criteria, g window.Geometry, offsets []float64, log *zap.Logger) ([]Step, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	bus := events.NewBus()
	defer bus.Close()
	ch, cancel := bus.Subscribe(len(offsets) + 8)
	defer cancel()

	rec := catalog.NewRecorder()
	vp := &catalog.StaticViewport{Geo: g}
	ctrl := catalog.New(rec, vp, bus,
		catalog.WithLogger(log),
		catalog.WithComponentID("window"),
		catalog.WithCriteria(c))

	if err := ctrl.SetData(items, requestID); err != nil {
		return nil, err
	}
	steps := []Step{collect(ch, rec, g.ColumnsPerRow, 0)}

	for i, off := range offsets {
		if i == 0 && off == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		vp.Offset = off
		if err := ctrl.Scroll(); err != nil {
			return steps, fmt.Errorf("scroll to %g: %w", off, err)
		}
		steps = append(steps, collect(ch, rec, g.ColumnsPerRow, off))
	}
	return steps, nil
}

// collect drains the signals published since the last step.
func collect(ch <-chan events.Msg, rec *catalog.Recorder, columns int, offset float64) Step {
	s := Step{Offset: offset, Add: []int{}, Remove: []int{}}
	for done := false; !done; {
		select {
		case msg := <-ch:
			switch m := msg.(type) {
			case events.WindowMsg:
				s.Reset = s.Reset || m.Reset
				s.Add = append(s.Add, m.Added...)
				s.Remove = append(s.Remove, m.Removed...)
			case events.NoDataMsg:
				nd := m
				s.NoData = &nd
			}
		default:
			done = true
		}
	}
	for _, row := range rec.Rows().Sorted() {
		s.Rows = append(s.Rows, Row{Index: row, First: row * columns, Items: rec.Items(row)})
	}
	return s
}

// Scroll prints the steps of a Walk.
type Scroll struct {
	Dataset  *store.Dataset
	Criteria criteria.Criteria
	Geometry window.Geometry
	Offsets  []float64
	ShowID   bool
	JSON     bool
	Out      io.Writer
	Log      *zap.Logger
}

func (s *Scroll) Do(ctx context.Context) error {
	if s.Dataset == nil {
		return errors.New("can not scroll, no dataset")
	}
	steps, err := Walk(ctx, s.Dataset.Items, s.Dataset.RequestID, s.Criteria, s.Geometry, s.Offsets, s.Log)
	if err != nil {
		return err
	}

	if s.JSON {
		enc := json.NewEncoder(s.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"request_id": s.Dataset.RequestID,
			"query":      s.Criteria.Query(),
			"geometry":   s.Geometry,
			"steps":      steps,
		})
	}

	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}
	for _, step := range steps {
		pp.NewLine()
		pp.Title(stepTitle(step))
		if step.NoData != nil {
			pp.None(step.NoData.ActiveFields...)
			continue
		}
		for _, row := range step.Rows {
			pp.Row(row.Index, row.First, row.Items)
		}
	}
	return nil
}

func stepTitle(s Step) string {
	if s.Reset {
		return fmt.Sprintf("offset %gpx (rebuilt) rows %v", s.Offset, s.Add)
	}
	return fmt.Sprintf("offset %gpx +%v -%v", s.Offset, s.Add, s.Remove)
}
