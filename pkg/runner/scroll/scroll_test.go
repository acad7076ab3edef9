package scroll

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/window"
)

var desktop = window.Geometry{ViewportHeightPx: 720, RowHeightPx: 360, ColumnsPerRow: 3}

func hotels(n int) []item.Item {
	items := make([]item.Item, n)
	for i := range items {
		items[i] = item.Item{
			ID:     fmt.Sprintf("%d", i),
			Name:   fmt.Sprintf("Hotel %02d", i),
			Rating: item.Float(float64(i%5 + 1)),
			Price:  item.Float(float64(1000 + i)),
		}
	}
	return items
}

func rowIndexes(rows []Row) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Index)
	}
	return out
}

func TestWalk(t *testing.T) {
	steps, err := Walk(context.Background(), hotels(100), "req", criteria.Criteria{}, desktop,
		[]float64{0, -720, -720, -1440}, nil)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}

	if !steps[0].Reset {
		t.Fatalf("first step should be the rebuild")
	}
	if diff := cmp.Diff([]int{0, 1, 2}, rowIndexes(steps[0].Rows)); diff != "" {
		t.Fatalf("top window (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, rowIndexes(steps[1].Rows)); diff != "" {
		t.Fatalf("scrolled window (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 4, 5}, steps[1].Add); diff != "" {
		t.Fatalf("add (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, steps[1].Remove); diff != "" {
		t.Fatalf("remove (-want +got):\n%s", diff)
	}
	if len(steps[2].Add) != 0 || len(steps[2].Remove) != 0 {
		t.Fatalf("repeating an offset must not change the window: %+v", steps[2])
	}
	if diff := cmp.Diff([]int{3, 4, 5, 6, 7}, rowIndexes(steps[3].Rows)); diff != "" {
		t.Fatalf("second scroll (-want +got):\n%s", diff)
	}
	if got := steps[3].Rows[0]; got.First != 9 || got.Items[0].Name != "Hotel 09" {
		t.Fatalf("unexpected first row %+v", got)
	}
}

func TestWalkNoData(t *testing.T) {
	c := criteria.Parse(map[string]string{criteria.KeyRating: "10"})
	steps, err := Walk(context.Background(), hotels(10), "req", c, desktop, []float64{0}, nil)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(steps) != 1 || steps[0].NoData == nil {
		t.Fatalf("expected a single no-data step, got %+v", steps)
	}
	if !steps[0].NoData.CanReset() {
		t.Fatalf("expected a resettable no-data signal")
	}
	if len(steps[0].Rows) != 0 {
		t.Fatalf("nothing should be materialized")
	}
}

func TestWalkRejectsInvalidGeometry(t *testing.T) {
	if _, err := Walk(context.Background(), hotels(3), "", criteria.Criteria{}, window.Geometry{}, nil, nil); err == nil {
		t.Fatalf("expected invalid geometry error")
	}
}

func TestScrollPrints(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	s := Scroll{
		Dataset:  &store.Dataset{RequestID: "req", Items: hotels(12)},
		Criteria: criteria.Criteria{},
		Geometry: desktop,
		Offsets:  []float64{0, -720},
		Out:      &buf,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"offset 0px (rebuilt)", "offset -720px +[3] -[0]", "row 3", "Hotel 11"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
