package item

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

// Response is the decoded catalog document a data source hands over.
type Response struct {
	Success   bool
	RequestID string
	Items     []Item
	Filters   map[string][]FilterOption
}

// FilterOption is one selectable value advertised by the source for a filter
// group (stars, meals, wifi, ...).
type FilterOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireResponse struct {
	Success bool                       `json:"success"`
	Hotels  []json.RawMessage          `json:"hotels"`
	Filters map[string]json.RawMessage `json:"filters"`
	Main    *struct {
		RequestID *string `json:"request_id"`
	} `json:"main"`
}

type wireOffer struct {
	Hotel struct {
		ID       json.RawMessage     `json:"id"`
		Name     string              `json:"name"`
		City     string              `json:"city"`
		Link     string              `json:"link"`
		Rating   json.RawMessage     `json:"rating"`
		Stars    json.RawMessage     `json:"stars"`
		PlaceID  json.RawMessage     `json:"place_id"`
		Images   []map[string]string `json:"images"`
		Features struct {
			Line          json.RawMessage `json:"line"`
			WiFi          json.RawMessage `json:"wi_fi"`
			BeachDistance json.RawMessage `json:"beach_distance"`
		} `json:"features"`
	} `json:"hotel"`
	MinPrice      json.RawMessage            `json:"min_price"`
	PansionPrices map[string]json.RawMessage `json:"pansion_prices"`
	Operators     []json.RawMessage          `json:"operators"`
	Extras        struct {
		PreviousPrice json.RawMessage `json:"previous_price"`
	} `json:"extras"`
}

// Decode reads a catalog response. The document envelope must be valid JSON;
// individual offers are decoded leniently so that one malformed hotel never
// fails the whole dataset. Offers that are not objects at all are skipped.
func Decode(r io.Reader) (Response, error) {
	var wire wireResponse
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return Response{}, fmt.Errorf("item: decode response: %w", err)
	}
	resp := Response{Success: wire.Success}
	if wire.Main != nil && wire.Main.RequestID != nil {
		resp.RequestID = *wire.Main.RequestID
	}
	resp.Items = make([]Item, 0, len(wire.Hotels))
	for _, raw := range wire.Hotels {
		if !isObject(raw) {
			continue
		}
		var offer wireOffer
		// Type mismatches leave the offending field zero and keep going.
		if err := json.Unmarshal(raw, &offer); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				continue
			}
		}
		resp.Items = append(resp.Items, offer.item())
	}
	resp.Filters = decodeFilters(wire.Filters)
	return resp, nil
}

func (o wireOffer) item() Item {
	it := Item{
		ID:            rawString(o.Hotel.ID),
		Name:          o.Hotel.Name,
		City:          o.Hotel.City,
		Link:          o.Hotel.Link,
		Rating:        rawFloat(o.Hotel.Rating),
		Price:         rawFloat(o.MinPrice),
		PreviousPrice: rawFloat(o.Extras.PreviousPrice),
		Stars:         rawInt(o.Hotel.Stars),
		Line:          rawInt(o.Hotel.Features.Line),
		RegionID:      rawInt(o.Hotel.PlaceID),
		BeachDistance: rawInt(o.Hotel.Features.BeachDistance),
		WiFi:          rawString(o.Hotel.Features.WiFi),
	}
	if len(o.Hotel.Images) > 0 {
		it.Image = o.Hotel.Images[0]["x245x240"]
	}
	if len(o.PansionPrices) > 0 {
		it.MealPlans = make([]string, 0, len(o.PansionPrices))
		for meal := range o.PansionPrices {
			it.MealPlans = append(it.MealPlans, meal)
		}
		sort.Strings(it.MealPlans)
	}
	for _, raw := range o.Operators {
		if v := rawInt(raw); v != nil {
			it.Operators = append(it.Operators, *v)
		}
	}
	return it
}

func decodeFilters(raw map[string]json.RawMessage) map[string][]FilterOption {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string][]FilterOption, len(raw))
	for name, msg := range raw {
		var opts []struct {
			ID   json.RawMessage `json:"id"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(msg, &opts); err != nil {
			continue
		}
		list := make([]FilterOption, 0, len(opts))
		for _, o := range opts {
			list = append(list, FilterOption{ID: rawString(o.ID), Name: o.Name})
		}
		out[name] = list
	}
	return out
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// rawFloat accepts JSON numbers and numeric strings.
func rawFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func rawInt(raw json.RawMessage) *int {
	f := rawFloat(raw)
	if f == nil || *f != float64(int(*f)) {
		return nil
	}
	v := int(*f)
	return &v
}

// rawString renders strings as-is and numbers in their shortest form.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if f := rawFloat(raw); f != nil {
		return strconv.FormatFloat(*f, 'f', -1, 64)
	}
	return ""
}
