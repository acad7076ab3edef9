package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/window"
)

// GeometryOptions overrides the configured viewport. Zero means "use the
// config value".
type GeometryOptions struct {
	RowHeight      int
	ViewportHeight int
	Width          int
	Offsets        []float64
}

func AddGeometryArgs(cmd *cobra.Command, o *GeometryOptions) {
	f := cmd.Flags()
	f.IntVar(&o.RowHeight, "row-height", 0, "Row height in px.")
	f.IntVar(&o.ViewportHeight, "viewport-height", 0, "Viewport height in px.")
	f.IntVar(&o.Width, "width", 0, "Viewport width in px; picks the column count.")
	f.Float64SliceVar(&o.Offsets, "offset", []float64{0},
		"Scroll offsets in px to step through. Negative once scrolled, e.g. --offset=0,-720,-1440.")
}

// Geometry merges the flags over cfg.
func (o *GeometryOptions) Geometry(cfg store.Config) window.Geometry {
	rowHeight, viewport, width := store.DefaultRowHeight, store.DefaultViewportHeight, store.DefaultWidth
	if cfg != nil {
		rowHeight, viewport, width = cfg.RowHeight(), cfg.ViewportHeight(), cfg.Width()
	}
	if o.RowHeight != 0 {
		rowHeight = o.RowHeight
	}
	if o.ViewportHeight != 0 {
		viewport = o.ViewportHeight
	}
	if o.Width != 0 {
		width = o.Width
	}
	return window.Geometry{
		ViewportHeightPx: viewport,
		RowHeightPx:      rowHeight,
		ColumnsPerRow:    window.ColumnsForWidth(width),
	}
}
