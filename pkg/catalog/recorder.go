package catalog

import (
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/window"
)

// Recorder is a Renderer that keeps the items of every materialized row in
// memory. It backs the non-interactive surfaces.
type Recorder struct {
	rows map[int][]item.Item
}

var _ Renderer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{rows: make(map[int][]item.Item)}
}

// Materialize implements Renderer. The handle is the row index.
func (r *Recorder) Materialize(row int, items []item.Item) (RowHandle, error) {
	r.rows[row] = append([]item.Item(nil), items...)
	return row, nil
}

// Dispose implements Renderer.
func (r *Recorder) Dispose(h RowHandle) {
	if row, ok := h.(int); ok {
		delete(r.rows, row)
	}
}

// Items returns the items recorded for row.
func (r *Recorder) Items(row int) []item.Item {
	return r.rows[row]
}

// Rows returns the rows currently recorded.
func (r *Recorder) Rows() window.Set {
	rows := make([]int, 0, len(r.rows))
	for row := range r.rows {
		rows = append(rows, row)
	}
	return window.NewSet(rows...)
}

// StaticViewport is a GeometryProvider with a fixed geometry and an offset
// set by the caller.
type StaticViewport struct {
	Geo    window.Geometry
	Offset float64
}

var (
	_ GeometryProvider = (*StaticViewport)(nil)
	_ TopScroller      = (*StaticViewport)(nil)
)

func (v *StaticViewport) Geometry() window.Geometry { return v.Geo }
func (v *StaticViewport) ScrollOffset() float64     { return v.Offset }
func (v *StaticViewport) ScrollToTop()              { v.Offset = 0 }
