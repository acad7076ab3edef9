// Package catalog drives a windowed, filterable list: it owns the filtered
// dataset and the set of materialized rows, and tells a Renderer which rows
// to create or destroy as criteria, data and scroll position change.
package catalog

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/filter"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/rowdiff"
	"tableflip.dev/tourcatalog/pkg/window"
)

// RowHandle is whatever the Renderer uses to find a row it created.
type RowHandle any

// Renderer creates and destroys the presentation of whole rows.
type Renderer interface {
	Materialize(row int, items []item.Item) (RowHandle, error)
	Dispose(h RowHandle)
}

// GeometryProvider reports the viewport as it is at the time of the call.
type GeometryProvider interface {
	Geometry() window.Geometry
	ScrollOffset() float64
}

// TopScroller is implemented by providers that can move the viewport back to
// the list top. The controller calls it on every reset.
type TopScroller interface {
	ScrollToTop()
}

// State is the controller's lifecycle state.
type State int

const (
	// StateIdle means the materialized rows match the filtered dataset and
	// scroll position.
	StateIdle State = iota
	// StateRecomputing is held while a criteria or dataset change rebuilds
	// the filtered dataset and window.
	StateRecomputing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecomputing:
		return "recomputing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrRender wraps failures reported by the Renderer.
var ErrRender = errors.New("catalog: render failed")

// Controller is not safe for concurrent use; every call must come from the
// single goroutine that processes UI events.
type Controller struct {
	id       events.ComponentID
	renderer Renderer
	viewport GeometryProvider
	bus      *events.Bus
	log      *zap.Logger

	raw       []item.Item
	requestID string
	criteria  criteria.Criteria
	filtered  []item.Item

	rows  map[int]RowHandle
	state State
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithComponentID sets the component id stamped on published events.
func WithComponentID(id events.ComponentID) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// WithCriteria sets the criteria in effect before the first change.
func WithCriteria(cr criteria.Criteria) Option {
	return func(c *Controller) {
		c.criteria = cr
	}
}

// New wires a controller to its collaborators. bus may be nil when nobody
// listens for signals. Nothing is materialized until the first SetData.
func New(r Renderer, v GeometryProvider, bus *events.Bus, opts ...Option) *Controller {
	c := &Controller{
		id:       events.ComponentID("catalog"),
		renderer: r,
		viewport: v,
		bus:      bus,
		log:      zap.NewNop(),
		criteria: criteria.Default(),
		rows:     make(map[int]RowHandle),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetData replaces the raw dataset and rebuilds everything from the list top.
func (c *Controller) SetData(items []item.Item, requestID string) error {
	c.raw = append([]item.Item(nil), items...)
	c.requestID = requestID
	c.log.Debug("dataset replaced",
		zap.String("request_id", requestID),
		zap.Int("size", len(c.raw)))
	c.bus.Publish(events.DatasetMsg{Component: c.id, RequestID: requestID, Size: len(c.raw)})
	return c.reset()
}

// SetCriteria replaces the criteria and rebuilds everything from the list
// top. Row indices of the old filtered dataset mean nothing for the new one,
// so no diff is attempted.
func (c *Controller) SetCriteria(cr criteria.Criteria) error {
	c.criteria = cr
	return c.reset()
}

// Scroll handles a scroll event using the provider's current offset.
func (c *Controller) Scroll() error {
	return c.ScrollTo(c.viewport.ScrollOffset())
}

// ScrollTo moves the window to offsetPx and applies only the row changes. On
// error the materialized rows are left as they were, apart from any rows the
// Renderer already handled.
func (c *Controller) ScrollTo(offsetPx float64) error {
	g := c.viewport.Geometry()
	desired, err := window.Compute(offsetPx, g, window.RowCount(len(c.filtered), g.ColumnsPerRow))
	if err != nil {
		return err
	}
	delta := rowdiff.Diff(c.Materialized(), desired)
	if delta.Empty() {
		return nil
	}
	c.log.Debug("window diff",
		zap.Float64("offset", offsetPx),
		zap.Ints("add", delta.Add),
		zap.Ints("remove", delta.Remove))

	for _, row := range delta.Remove {
		c.dispose(row)
	}
	if err := c.materialize(delta.Add, g.ColumnsPerRow); err != nil {
		return err
	}
	c.bus.Publish(events.WindowMsg{
		Component: c.id,
		Added:     delta.Add,
		Removed:   delta.Remove,
		Rows:      desired.Sorted(),
	})
	return nil
}

// RequestReset asks the criteria source, through the bus, to reset to its
// defaults. The presentation calls it from the "no data" view.
func (c *Controller) RequestReset() {
	c.log.Debug("criteria reset requested")
	c.bus.Publish(events.ResetRequestMsg{Component: c.id})
}

func (c *Controller) reset() error {
	c.state = StateRecomputing
	defer func() { c.state = StateIdle }()

	for row := range c.rows {
		c.dispose(row)
	}
	if s, ok := c.viewport.(TopScroller); ok {
		s.ScrollToTop()
	}

	c.filtered = filter.Apply(c.raw, c.criteria)
	c.log.Debug("dataset filtered",
		zap.String("query", c.criteria.Query()),
		zap.Int("matched", len(c.filtered)),
		zap.Int("total", len(c.raw)))
	c.bus.Publish(events.CriteriaMsg{
		Component: c.id,
		Query:     c.criteria.Query(),
		Matched:   len(c.filtered),
		Total:     len(c.raw),
	})

	if len(c.filtered) == 0 {
		c.bus.Publish(events.NoDataMsg{
			Component:    c.id,
			ActiveFields: c.criteria.ActiveFields(),
			DatasetSize:  len(c.raw),
		})
		return nil
	}

	g := c.viewport.Geometry()
	desired, err := window.Compute(0, g, window.RowCount(len(c.filtered), g.ColumnsPerRow))
	if err != nil {
		return err
	}
	rows := desired.Sorted()
	if err := c.materialize(rows, g.ColumnsPerRow); err != nil {
		return err
	}
	c.bus.Publish(events.WindowMsg{Component: c.id, Added: rows, Rows: rows, Reset: true})
	return nil
}

func (c *Controller) materialize(rows []int, columns int) error {
	for _, row := range rows {
		lo, hi := window.RowBounds(row, columns, len(c.filtered))
		h, err := c.renderer.Materialize(row, c.filtered[lo:hi:hi])
		if err != nil {
			c.log.Warn("materialize failed", zap.Int("row", row), zap.Error(err))
			return fmt.Errorf("%w: row %d: %w", ErrRender, row, err)
		}
		c.rows[row] = h
	}
	return nil
}

func (c *Controller) dispose(row int) {
	h, ok := c.rows[row]
	if !ok {
		return
	}
	delete(c.rows, row)
	c.renderer.Dispose(h)
}

// Materialized returns the rows currently materialized.
func (c *Controller) Materialized() window.Set {
	rows := make([]int, 0, len(c.rows))
	for row := range c.rows {
		rows = append(rows, row)
	}
	return window.NewSet(rows...)
}

// Handle returns the renderer handle of a materialized row.
func (c *Controller) Handle(row int) (RowHandle, bool) {
	h, ok := c.rows[row]
	return h, ok
}

// Filtered returns a copy of the current filtered dataset.
func (c *Controller) Filtered() []item.Item {
	return append([]item.Item(nil), c.filtered...)
}

// Len is the size of the current filtered dataset.
func (c *Controller) Len() int { return len(c.filtered) }

// Criteria returns the criteria in effect.
func (c *Controller) Criteria() criteria.Criteria { return c.criteria }

// RequestID returns the request id the current dataset was loaded with.
func (c *Controller) RequestID() string { return c.requestID }

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// ContentHeightPx is the scrollable height of the filtered dataset under the
// provider's current geometry.
func (c *Controller) ContentHeightPx() int {
	return window.ContentHeightPx(len(c.filtered), c.viewport.Geometry())
}
