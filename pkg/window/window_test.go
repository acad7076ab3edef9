package window

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var desktop = Geometry{ViewportHeightPx: 720, RowHeightPx: 360, ColumnsPerRow: 3}

func TestMaxViewedRows(t *testing.T) {
	if got := MaxViewedRows(desktop); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := MaxViewedRows(Geometry{ViewportHeightPx: 800, RowHeightPx: 360, ColumnsPerRow: 1}); got != 4 {
		t.Fatalf("expected partial row to round up to 4, got %d", got)
	}
}

func TestComputeTopAnchored(t *testing.T) {
	rows := RowCount(100, desktop.ColumnsPerRow)
	got, err := Compute(0, desktop, rows)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, got.Sorted()); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}

	var items []int
	for _, row := range got.Sorted() {
		lo, hi := RowBounds(row, desktop.ColumnsPerRow, 100)
		for i := lo; i < hi; i++ {
			items = append(items, i)
		}
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6, 7, 8}, items); diff != "" {
		t.Fatalf("unexpected materialized items (-want +got):\n%s", diff)
	}

	positive, _ := Compute(250, desktop, rows)
	if !positive.Equal(got) {
		t.Fatalf("positive offsets should stay top-anchored, got %s", positive)
	}
}

func TestComputeScrolled(t *testing.T) {
	got, err := Compute(-720, desktop, RowCount(100, 3))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, got.Sorted()); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}
}

func TestComputeScrolledClampsLowerBound(t *testing.T) {
	got, err := Compute(-10, desktop, 34)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// first visible row is 1, so [0, 5)
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4}, got.Sorted()); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}
}

func TestComputeClipsToRowCount(t *testing.T) {
	got, err := Compute(0, desktop, 2)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1}, got.Sorted()); diff != "" {
		t.Fatalf("unexpected window (-want +got):\n%s", diff)
	}
	empty, err := Compute(-3600, desktop, 0)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if empty.Len() != 0 {
		t.Fatalf("expected empty window, got %s", empty)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	for _, off := range []float64{0, -1, -359.5, -720, -10000} {
		a, errA := Compute(off, desktop, 500)
		b, errB := Compute(off, desktop, 500)
		if errA != nil || errB != nil {
			t.Fatalf("compute errors: %v %v", errA, errB)
		}
		if !a.Equal(b) {
			t.Fatalf("offset %v: %s != %s", off, a, b)
		}
	}
}

func TestComputeRejectsInvalidGeometry(t *testing.T) {
	for _, g := range []Geometry{
		{ViewportHeightPx: 720, RowHeightPx: 0, ColumnsPerRow: 3},
		{ViewportHeightPx: 720, RowHeightPx: -1, ColumnsPerRow: 3},
		{ViewportHeightPx: 720, RowHeightPx: 360, ColumnsPerRow: 0},
		{ViewportHeightPx: -1, RowHeightPx: 360, ColumnsPerRow: 1},
	} {
		if _, err := Compute(0, g, 10); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("%+v: expected ErrInvalidGeometry, got %v", g, err)
		}
	}
}

func TestColumnsForWidth(t *testing.T) {
	cases := map[int]int{320: 1, 767: 1, 768: 2, 991: 2, 992: 3, 1920: 3}
	for width, want := range cases {
		if got := ColumnsForWidth(width); got != want {
			t.Fatalf("width %d: expected %d columns, got %d", width, want, got)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeightPx(10, desktop); got != 4*360 {
		t.Fatalf("expected %d, got %d", 4*360, got)
	}
	if got := ContentHeightPx(0, desktop); got != EmptyContentHeightPx {
		t.Fatalf("expected placeholder height, got %d", got)
	}
}

func TestRowBoundsClipsLastRow(t *testing.T) {
	lo, hi := RowBounds(3, 3, 10)
	if lo != 9 || hi != 10 {
		t.Fatalf("expected [9,10), got [%d,%d)", lo, hi)
	}
	if RowOf(9, 3) != 3 {
		t.Fatalf("expected item 9 in row 3")
	}
}
