// Package mcp provides the Model Context Protocol server integration for
// tourcatalog.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/filter"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/runner/scroll"
	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/window"
)

// Service answers catalog queries against imported datasets. It is shared by
// the MCP tools and resources.
type Service struct {
	Persistence store.Persistence
	// LinkBase prefixes partner links; empty leaves them out.
	LinkBase string
	Log      *zap.Logger
}

// ErrHotelNotFound is returned when a hotel id is not part of a dataset.
var ErrHotelNotFound = errors.New("hotel not found")

const (
	defaultLimit = 20
	// maxWindowSteps bounds the offsets one catalog_window call replays.
	maxWindowSteps = 256
)

// HotelDTO is a transport-friendly projection of an item.
type HotelDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	PreviousPrice *float64 `json:"previousPrice,omitempty"`
	Discount      int      `json:"discount"`
	Stars         *int     `json:"stars,omitempty"`
	Line          *int     `json:"line,omitempty"`
	RegionID      *int     `json:"regionId,omitempty"`
	WiFi          string   `json:"wifi,omitempty"`
	MealPlans     []string `json:"mealPlans,omitempty"`
	Operators     []int    `json:"operators,omitempty"`
	PartnerLink   string   `json:"partnerLink,omitempty"`
}

// SearchOptions selects a page of filtered hotels.
type SearchOptions struct {
	RequestID string
	Query     string
	Limit     int
	Offset    int
}

// SearchResult is one page of filtered hotels.
type SearchResult struct {
	RequestID    string     `json:"requestId"`
	Query        string     `json:"query"`
	Total        int        `json:"total"`
	Matched      int        `json:"matched"`
	Offset       int        `json:"offset"`
	Hotels       []HotelDTO `json:"hotels"`
	ActiveFields []string   `json:"activeFields,omitempty"`
}

// WindowOptions describes a viewport to lay the filtered hotels out in and
// the scroll offsets to walk it through. Zero sizes fall back to the store
// defaults.
type WindowOptions struct {
	RequestID        string
	Query            string
	Offsets          []float64
	WidthPx          int
	ViewportHeightPx int
	RowHeightPx      int
}

// RowDTO is one materialized row.
type RowDTO struct {
	Row    int        `json:"row"`
	Hotels []HotelDTO `json:"hotels"`
}

// StepDTO is the window after one scroll offset: the rows added and removed
// relative to the previous step and every row materialized afterwards.
type StepDTO struct {
	OffsetPx float64  `json:"offsetPx"`
	Reset    bool     `json:"reset,omitempty"`
	Add      []int    `json:"add"`
	Remove   []int    `json:"remove"`
	Rows     []RowDTO `json:"rows"`
}

// WindowResult is the walk requested by WindowOptions. Rows repeats the
// rows of the last step.
type WindowResult struct {
	RequestID       string            `json:"requestId"`
	Query           string            `json:"query"`
	Columns         int               `json:"columns"`
	ContentHeightPx int               `json:"contentHeightPx"`
	Steps           []StepDTO         `json:"steps"`
	Rows            []RowDTO          `json:"rows"`
	NoData          *events.NoDataMsg `json:"noData,omitempty"`
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{Persistence: p, Log: zap.NewNop()}
}

// ListDatasets returns the imported datasets, oldest first.
func (s *Service) ListDatasets(ctx context.Context) ([]store.Meta, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	return s.Persistence.List(ctx), nil
}

// Dataset loads a dataset by request id; an empty id selects the latest
// import.
func (s *Service) Dataset(ctx context.Context, requestID string) (*store.Dataset, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	if strings.TrimSpace(requestID) == "" {
		return s.Persistence.Latest(ctx)
	}
	return s.Persistence.Load(strings.TrimSpace(requestID))
}

// Search filters and sorts a dataset and returns one page of it.
func (s *Service) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	ds, err := s.Dataset(ctx, opts.RequestID)
	if err != nil {
		return nil, err
	}
	c, err := parseCriteria(opts.Query)
	if err != nil {
		return nil, err
	}
	if opts.Offset < 0 {
		return nil, fmt.Errorf("offset %d must not be negative", opts.Offset)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	matched := filter.Apply(ds.Items, c)
	s.logger().Debug("search",
		zap.String("request_id", ds.RequestID),
		zap.String("query", c.Query()),
		zap.Int("matched", len(matched)))

	res := &SearchResult{
		RequestID: ds.RequestID,
		Query:     c.Query(),
		Total:     len(ds.Items),
		Matched:   len(matched),
		Offset:    opts.Offset,
		Hotels:    []HotelDTO{},
	}
	if len(matched) == 0 {
		res.ActiveFields = c.ActiveFields()
	}
	if opts.Offset < len(matched) {
		end := len(matched)
		if limit < end-opts.Offset {
			end = opts.Offset + limit
		}
		res.Hotels = s.toDTOs(matched[opts.Offset:end], ds.RequestID)
	}
	return res, nil
}

// Window lays the filtered dataset out in rows and scrolls it through the
// requested offsets, returning the rows added, removed and kept at each step.
// The first step is the rebuild at the list top.
func (s *Service) Window(ctx context.Context, opts WindowOptions) (*WindowResult, error) {
	if len(opts.Offsets) > maxWindowSteps {
		return nil, fmt.Errorf("at most %d offsets per walk, got %d", maxWindowSteps, len(opts.Offsets))
	}
	ds, err := s.Dataset(ctx, opts.RequestID)
	if err != nil {
		return nil, err
	}
	c, err := parseCriteria(opts.Query)
	if err != nil {
		return nil, err
	}
	g := geometry(opts)

	steps, err := scroll.Walk(ctx, ds.Items, ds.RequestID, c, g, opts.Offsets, s.logger())
	if err != nil {
		return nil, err
	}

	res := &WindowResult{
		RequestID:       ds.RequestID,
		Query:           c.Query(),
		Columns:         g.ColumnsPerRow,
		ContentHeightPx: window.ContentHeightPx(len(filter.Apply(ds.Items, c)), g),
		Steps:           make([]StepDTO, 0, len(steps)),
		NoData:          steps[0].NoData,
	}
	for _, step := range steps {
		dto := StepDTO{
			OffsetPx: step.Offset,
			Reset:    step.Reset,
			Add:      step.Add,
			Remove:   step.Remove,
			Rows:     make([]RowDTO, 0, len(step.Rows)),
		}
		for _, row := range step.Rows {
			dto.Rows = append(dto.Rows, RowDTO{Row: row.Index, Hotels: s.toDTOs(row.Items, ds.RequestID)})
		}
		res.Steps = append(res.Steps, dto)
	}
	res.Rows = res.Steps[len(res.Steps)-1].Rows
	return res, nil
}

// Hotel returns a single hotel of a dataset.
func (s *Service) Hotel(ctx context.Context, requestID, id string) (*HotelDTO, error) {
	ds, err := s.Dataset(ctx, requestID)
	if err != nil {
		return nil, err
	}
	for _, it := range ds.Items {
		if it.ID == id {
			dto := s.toDTO(it, ds.RequestID)
			return &dto, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrHotelNotFound, id)
}

func (s *Service) toDTOs(items []item.Item, requestID string) []HotelDTO {
	out := make([]HotelDTO, 0, len(items))
	for _, it := range items {
		out = append(out, s.toDTO(it, requestID))
	}
	return out
}

func (s *Service) toDTO(it item.Item, requestID string) HotelDTO {
	dto := HotelDTO{
		ID:            it.ID,
		Name:          it.Name,
		City:          it.City,
		Rating:        it.Rating,
		Price:         it.Price,
		PreviousPrice: it.PreviousPrice,
		Discount:      it.Discount(),
		Stars:         it.Stars,
		Line:          it.Line,
		RegionID:      it.RegionID,
		WiFi:          it.WiFi,
		MealPlans:     it.MealPlans,
		Operators:     it.Operators,
	}
	if s.LinkBase != "" {
		dto.PartnerLink = it.PartnerLink(s.LinkBase, requestID)
	}
	return dto
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// parseCriteria reads a query string; an empty query means the default
// selection.
func parseCriteria(query string) (criteria.Criteria, error) {
	if strings.TrimSpace(query) == "" {
		return criteria.Default(), nil
	}
	c, err := criteria.ParseQuery(query)
	if err != nil {
		return criteria.Criteria{}, fmt.Errorf("invalid query: %w", err)
	}
	return c, nil
}

func geometry(opts WindowOptions) window.Geometry {
	width, viewport, row := opts.WidthPx, opts.ViewportHeightPx, opts.RowHeightPx
	if width == 0 {
		width = store.DefaultWidth
	}
	if viewport == 0 {
		viewport = store.DefaultViewportHeight
	}
	if row == 0 {
		row = store.DefaultRowHeight
	}
	return window.Geometry{
		ViewportHeightPx: viewport,
		RowHeightPx:      row,
		ColumnsPerRow:    window.ColumnsForWidth(width),
	}
}
