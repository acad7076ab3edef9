package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/window"
)

type fakeHandle struct {
	row int
	ids []string
}

type fakeRenderer struct {
	live      map[*fakeHandle]struct{}
	created   []int
	disposed  []int
	failOnRow int
	onCreate  func(row int)
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{live: map[*fakeHandle]struct{}{}, failOnRow: -1}
}

func (r *fakeRenderer) Materialize(row int, items []item.Item) (RowHandle, error) {
	if r.onCreate != nil {
		r.onCreate(row)
	}
	if row == r.failOnRow {
		return nil, errors.New("boom")
	}
	h := &fakeHandle{row: row}
	for _, it := range items {
		h.ids = append(h.ids, it.ID)
	}
	r.live[h] = struct{}{}
	r.created = append(r.created, row)
	return h, nil
}

func (r *fakeRenderer) Dispose(h RowHandle) {
	fh := h.(*fakeHandle)
	if _, ok := r.live[fh]; !ok {
		panic(fmt.Sprintf("dispose of unknown row %d", fh.row))
	}
	delete(r.live, fh)
	r.disposed = append(r.disposed, fh.row)
}

func (r *fakeRenderer) liveRows() window.Set {
	rows := make([]int, 0, len(r.live))
	for h := range r.live {
		rows = append(rows, h.row)
	}
	return window.NewSet(rows...)
}

type fakeViewport struct {
	geometry window.Geometry
	offset   float64
	toTop    int
}

func (v *fakeViewport) Geometry() window.Geometry { return v.geometry }
func (v *fakeViewport) ScrollOffset() float64     { return v.offset }
func (v *fakeViewport) ScrollToTop() {
	v.toTop++
	v.offset = 0
}

func hundredItems() []item.Item {
	items := make([]item.Item, 100)
	for i := range items {
		items[i] = item.Item{
			ID:     fmt.Sprintf("%02d", i),
			Rating: item.Float(float64(i%5 + 1)),
			Price:  item.Float(float64(1000 + i)),
		}
	}
	return items
}

func setup(t *testing.T) (*Controller, *fakeRenderer, *fakeViewport, <-chan events.Msg) {
	t.Helper()
	r := newFakeRenderer()
	v := &fakeViewport{geometry: window.Geometry{ViewportHeightPx: 720, RowHeightPx: 360, ColumnsPerRow: 3}}
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(256)
	t.Cleanup(cancel)
	c := New(r, v, bus, WithCriteria(criteria.Criteria{}))
	return c, r, v, ch
}

func drain(ch <-chan events.Msg) []events.Msg {
	var out []events.Msg
	for {
		select {
		case msg := <-ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestSetDataMaterializesTopWindow(t *testing.T) {
	c, r, _, _ := setup(t)
	require.NoError(t, c.SetData(hundredItems(), "req-1"))

	require.Equal(t, []int{0, 1, 2}, c.Materialized().Sorted())
	require.True(t, r.liveRows().Equal(c.Materialized()))

	var ids []string
	for _, row := range c.Materialized().Sorted() {
		h, ok := c.Handle(row)
		require.True(t, ok)
		ids = append(ids, h.(*fakeHandle).ids...)
	}
	require.Equal(t, []string{"00", "01", "02", "03", "04", "05", "06", "07", "08"}, ids)
	require.Equal(t, "req-1", c.RequestID())
	require.Equal(t, StateIdle, c.State())
}

func TestScrollAppliesIncrementalDiff(t *testing.T) {
	c, r, v, ch := setup(t)
	require.NoError(t, c.SetData(hundredItems(), ""))
	drain(ch)
	r.created, r.disposed = nil, nil

	v.offset = -720
	require.NoError(t, c.Scroll())
	require.Equal(t, []int{1, 2, 3, 4, 5}, c.Materialized().Sorted())
	require.Equal(t, []int{3, 4, 5}, r.created)
	require.Equal(t, []int{0}, r.disposed)
	require.True(t, r.liveRows().Equal(c.Materialized()))

	msgs := drain(ch)
	require.Len(t, msgs, 1)
	wm, ok := msgs[0].(events.WindowMsg)
	require.True(t, ok)
	require.False(t, wm.Reset)
	require.Equal(t, []int{3, 4, 5}, wm.Added)
	require.Equal(t, []int{0}, wm.Removed)

	// Same offset again is a no-op.
	r.created, r.disposed = nil, nil
	require.NoError(t, c.Scroll())
	require.Empty(t, r.created)
	require.Empty(t, r.disposed)
	require.Empty(t, drain(ch))
}

func TestCriteriaChangeResetsWindow(t *testing.T) {
	c, r, v, _ := setup(t)
	require.NoError(t, c.SetData(hundredItems(), ""))
	require.NoError(t, c.ScrollTo(-3600))
	require.NotEqual(t, []int{0, 1, 2}, c.Materialized().Sorted())

	v.offset = -3600
	four := 4.0
	next := criteria.Criteria{}.WithMinRating(&four).WithSort(criteria.SortPriceDesc)
	require.NoError(t, c.SetCriteria(next))

	// No stale rows survive: exactly the offset-0 window of the new dataset.
	want, err := window.Compute(0, v.geometry, window.RowCount(c.Len(), 3))
	require.NoError(t, err)
	require.True(t, c.Materialized().Equal(want), "got %s want %s", c.Materialized(), want)
	require.True(t, r.liveRows().Equal(want))
	require.Equal(t, 40, c.Len())
	require.Equal(t, 0.0, v.offset)
	require.Equal(t, 2, v.toTop)

	first, _ := c.Handle(0)
	require.Equal(t, []string{"99", "98", "94"}, first.(*fakeHandle).ids)
}

func TestResetHoldsRecomputingState(t *testing.T) {
	c, r, _, _ := setup(t)
	var seen []State
	r.onCreate = func(int) { seen = append(seen, c.State()) }
	require.NoError(t, c.SetData(hundredItems(), ""))
	require.NoError(t, c.ScrollTo(-720))

	require.Equal(t, []State{StateRecomputing, StateRecomputing, StateRecomputing, StateIdle, StateIdle, StateIdle}, seen)
	require.Equal(t, StateIdle, c.State())
}

func TestEmptyDatasetSignalsNoData(t *testing.T) {
	c, r, _, ch := setup(t)
	require.NoError(t, c.SetData(hundredItems(), ""))
	drain(ch)

	c2, err := criteria.ParseQuery("filter_rating=10")
	require.NoError(t, err)
	require.NoError(t, c.SetCriteria(c2))
	require.Zero(t, c.Materialized().Len())
	require.Empty(t, r.live)
	require.Equal(t, window.EmptyContentHeightPx, c.ContentHeightPx())

	var noData *events.NoDataMsg
	for _, msg := range drain(ch) {
		if m, ok := msg.(events.NoDataMsg); ok {
			noData = &m
		}
	}
	require.NotNil(t, noData)
	require.Equal(t, []string{criteria.KeyRating}, noData.ActiveFields)
	require.True(t, noData.CanReset())

	c.RequestReset()
	msgs := drain(ch)
	require.Len(t, msgs, 1)
	require.IsType(t, events.ResetRequestMsg{}, msgs[0])

	// Scrolling with nothing to show stays empty.
	require.NoError(t, c.ScrollTo(-720))
	require.Zero(t, c.Materialized().Len())
}

func TestInvalidGeometryIsReported(t *testing.T) {
	c, r, v, _ := setup(t)
	require.NoError(t, c.SetData(hundredItems(), ""))
	before := c.Materialized()

	v.geometry.RowHeightPx = 0
	err := c.ScrollTo(-720)
	require.ErrorIs(t, err, window.ErrInvalidGeometry)
	require.True(t, c.Materialized().Equal(before))
	require.True(t, r.liveRows().Equal(before))

	v.geometry = window.Geometry{ViewportHeightPx: 720, RowHeightPx: 360, ColumnsPerRow: -1}
	require.ErrorIs(t, c.SetCriteria(criteria.Default()), window.ErrInvalidGeometry)
}

func TestGeometryReadOnEveryComputation(t *testing.T) {
	c, _, v, _ := setup(t)
	require.NoError(t, c.SetData(hundredItems(), ""))

	// Narrow viewport: one column per row, so row 1 holds item 1.
	v.geometry.ColumnsPerRow = 1
	require.NoError(t, c.SetCriteria(criteria.Criteria{}))
	h, ok := c.Handle(1)
	require.True(t, ok)
	require.Equal(t, []string{"01"}, h.(*fakeHandle).ids)
	require.Equal(t, 100*360, c.ContentHeightPx())
}

func TestRendererFailureKeepsTrackedRowsConsistent(t *testing.T) {
	c, r, _, _ := setup(t)
	require.NoError(t, c.SetData(hundredItems(), ""))

	r.failOnRow = 4
	err := c.ScrollTo(-720)
	require.ErrorIs(t, err, ErrRender)
	require.True(t, r.liveRows().Equal(c.Materialized()))
	if diff := cmp.Diff([]int{1, 2, 3}, c.Materialized().Sorted()); diff != "" {
		t.Fatalf("unexpected rows after failure (-want +got):\n%s", diff)
	}

	r.failOnRow = -1
	require.NoError(t, c.ScrollTo(-720))
	require.Equal(t, []int{1, 2, 3, 4, 5}, c.Materialized().Sorted())
}

func TestNilBusIsAllowed(t *testing.T) {
	r := newFakeRenderer()
	v := &fakeViewport{geometry: window.Geometry{ViewportHeightPx: 100, RowHeightPx: 50, ColumnsPerRow: 2}}
	c := New(r, v, nil)
	require.NoError(t, c.SetData(hundredItems(), ""))
	require.Equal(t, []int{0, 1, 2}, c.Materialized().Sorted())
	require.Equal(t, criteria.SortRatingDesc, c.Criteria().Sort())
}
