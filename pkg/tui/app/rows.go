package app

import (
	"strings"

	"tableflip.dev/tourcatalog/pkg/catalog"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/tui/components/card"
	"tableflip.dev/tourcatalog/pkg/tui/theme"
	"tableflip.dev/tourcatalog/pkg/window"
)

// cellWidthPx approximates a terminal cell so the responsive column steps
// apply to terminal widths.
const cellWidthPx = 8

// viewport exposes the terminal area below the header as catalog geometry.
// One line stands in for one pixel.
type viewport struct {
	width  int
	height int
	// offset is the list top relative to the viewport top: zero at the top,
	// negative once scrolled.
	offset int
}

var (
	_ catalog.GeometryProvider = (*viewport)(nil)
	_ catalog.TopScroller      = (*viewport)(nil)
)

func (v *viewport) Geometry() window.Geometry {
	return window.Geometry{
		ViewportHeightPx: v.height,
		RowHeightPx:      card.Height,
		ColumnsPerRow:    window.ColumnsForWidth(v.width * cellWidthPx),
	}
}

func (v *viewport) ScrollOffset() float64 { return float64(v.offset) }

func (v *viewport) ScrollToTop() { v.offset = 0 }

// scrollBy moves the list by delta lines, clamped to the content.
func (v *viewport) scrollBy(delta, contentHeight int) {
	v.offset -= delta
	v.clamp(contentHeight)
}

func (v *viewport) clamp(contentHeight int) {
	lowest := -(contentHeight - v.height)
	if lowest > 0 {
		lowest = 0
	}
	if v.offset < lowest {
		v.offset = lowest
	}
	if v.offset > 0 {
		v.offset = 0
	}
}

// renderedRow is the handle for one materialized row: its card strip split
// into exactly card.Height lines.
type renderedRow struct {
	row   int
	lines []string
}

// rowRenderer renders rows into strings and keeps them until disposed.
type rowRenderer struct {
	theme theme.CardTheme
	vp    *viewport
	live  map[*renderedRow]struct{}
}

var _ catalog.Renderer = (*rowRenderer)(nil)

func newRowRenderer(th theme.CardTheme, vp *viewport) *rowRenderer {
	return &rowRenderer{theme: th, vp: vp, live: make(map[*renderedRow]struct{})}
}

func (r *rowRenderer) Materialize(row int, items []item.Item) (catalog.RowHandle, error) {
	g := r.vp.Geometry()
	view := card.RenderRow(r.theme, items, g.ColumnsPerRow, r.vp.width)
	lines := strings.Split(view, "\n")
	for len(lines) < card.Height {
		lines = append(lines, "")
	}
	h := &renderedRow{row: row, lines: lines[:card.Height]}
	r.live[h] = struct{}{}
	return h, nil
}

func (r *rowRenderer) Dispose(h catalog.RowHandle) {
	if rr, ok := h.(*renderedRow); ok {
		delete(r.live, rr)
	}
}

// Len is the number of rows currently rendered.
func (r *rowRenderer) Len() int { return len(r.live) }
