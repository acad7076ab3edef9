// Package window decides which rows of a gridded list must be materialized
// for a given scroll position. A row is a horizontal band of ColumnsPerRow
// items; the window is the set of row indices to keep rendered.
package window

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned when the geometry cannot be used to lay out
// rows. Callers must treat it as a configuration error.
var ErrInvalidGeometry = errors.New("window: invalid geometry")

const (
	// EmptyContentHeightPx is the height reserved for the "no data" block.
	EmptyContentHeightPx = 400

	wideMinWidthPx   = 992
	mediumMinWidthPx = 768
)

// Geometry describes the viewport in pixels. It is read fresh on every
// computation so that resizes between renders are honoured.
type Geometry struct {
	ViewportHeightPx int
	RowHeightPx      int
	ColumnsPerRow    int
}

// Validate reports whether g can lay out rows.
func (g Geometry) Validate() error {
	switch {
	case g.RowHeightPx <= 0:
		return fmt.Errorf("%w: row height %d must be positive", ErrInvalidGeometry, g.RowHeightPx)
	case g.ColumnsPerRow <= 0:
		return fmt.Errorf("%w: columns per row %d must be positive", ErrInvalidGeometry, g.ColumnsPerRow)
	case g.ViewportHeightPx < 0:
		return fmt.Errorf("%w: viewport height %d must not be negative", ErrInvalidGeometry, g.ViewportHeightPx)
	}
	return nil
}

// ColumnsForWidth is the responsive column count for an available width.
func ColumnsForWidth(widthPx int) int {
	switch {
	case widthPx >= wideMinWidthPx:
		return 3
	case widthPx >= mediumMinWidthPx:
		return 2
	default:
		return 1
	}
}

// MaxViewedRows is the number of rows that fit the viewport plus one row of
// render-ahead.
func MaxViewedRows(g Geometry) int {
	return ceilDiv(float64(g.ViewportHeightPx), g.RowHeightPx) + 1
}

// Compute returns the rows to materialize. offsetPx is the position of the
// list top relative to the viewport top: zero or positive while the list top
// is visible, negative once it has scrolled past by |offsetPx|.
//
// Top-anchored the window is [0, MaxViewedRows). Scrolled, with
// first = ceil(|offsetPx| / RowHeightPx), it is
// [first-1, first+MaxViewedRows+1) with the lower bound clamped to 0. Both
// are clipped to [0, totalRows).
func Compute(offsetPx float64, g Geometry, totalRows int) (Set, error) {
	if err := g.Validate(); err != nil {
		return Set{}, err
	}
	if math.IsNaN(offsetPx) {
		return Set{}, fmt.Errorf("%w: scroll offset is NaN", ErrInvalidGeometry)
	}
	maxViewed := MaxViewedRows(g)

	start, end := 0, maxViewed
	if offsetPx < 0 {
		first := ceilDiv(math.Abs(offsetPx), g.RowHeightPx)
		start = first - 1
		end = first + maxViewed + 1
		if start < 0 {
			start = 0
		}
	}
	if end > totalRows {
		end = totalRows
	}
	return Range(start, end), nil
}

// RowCount is the number of rows needed for n items.
func RowCount(n, columns int) int {
	if n <= 0 || columns <= 0 {
		return 0
	}
	return (n + columns - 1) / columns
}

// RowOf maps an item index onto its row.
func RowOf(itemIndex, columns int) int {
	return itemIndex / columns
}

// RowBounds returns the half-open item range [lo, hi) held by row, clipped to
// n items.
func RowBounds(row, columns, n int) (lo, hi int) {
	lo = row * columns
	hi = lo + columns
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// ContentHeightPx is the full scrollable height for n items, or the height
// of the "no data" block when there are none.
func ContentHeightPx(n int, g Geometry) int {
	rows := RowCount(n, g.ColumnsPerRow)
	if rows == 0 {
		return EmptyContentHeightPx
	}
	return rows * g.RowHeightPx
}

func ceilDiv(v float64, d int) int {
	return int(math.Ceil(v / float64(d)))
}
