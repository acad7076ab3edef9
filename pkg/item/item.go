// Package item defines the flat catalog record filtered, sorted and windowed
// by the rest of tourcatalog.
package item

import (
	"fmt"
	"math"
	"net/url"
)

// Item is one catalog offer. Optional numeric fields are nil when the source
// omitted them or carried a value that could not be decoded; filters treat a
// missing field as non-matching. Items are never mutated once decoded.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	Link  string `json:"link,omitempty"`
	Image string `json:"image,omitempty"`

	Rating        *float64 `json:"rating,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	PreviousPrice *float64 `json:"previous_price,omitempty"`
	Stars         *int     `json:"stars,omitempty"`
	Line          *int     `json:"line,omitempty"`
	RegionID      *int     `json:"region_id,omitempty"`
	BeachDistance *int     `json:"beach_distance,omitempty"`
	WiFi          string   `json:"wifi,omitempty"`

	MealPlans []string `json:"meal_plans,omitempty"`
	Operators []int    `json:"operators,omitempty"`
}

const defaultDiscount = 5

// Float returns a pointer to v, for building items in code and tests.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Discount is the whole percentage the current price undercuts the previous
// price by. Unknown or non-positive discounts fall back to 5%.
func (it Item) Discount() int {
	if it.Price == nil || it.PreviousPrice == nil || *it.PreviousPrice <= 0 {
		return defaultDiscount
	}
	d := math.Round((*it.PreviousPrice - *it.Price) / *it.PreviousPrice * 100)
	if d <= 0 {
		return defaultDiscount
	}
	return int(d)
}

// PartnerLink builds the outbound link for the offer, tagging it with the
// request id of the dataset it was loaded from when one is known.
func (it Item) PartnerLink(base, requestID string) string {
	u := fmt.Sprintf("%s/%s", base, it.Link)
	q := url.Values{}
	q.Set("hotel_ids", it.ID)
	if requestID != "" {
		q.Set("request_id", requestID)
	}
	return u + "?" + q.Encode()
}

// PriceLabel renders the price the way cards and tables show it.
func (it Item) PriceLabel() string {
	if it.Price == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f руб.", *it.Price)
}

// RatingLabel renders the rating, or "-" when missing.
func (it Item) RatingLabel() string {
	if it.Rating == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *it.Rating)
}

// StarsLabel renders the star category, or "-" when missing.
func (it Item) StarsLabel() string {
	if it.Stars == nil {
		return "-"
	}
	return fmt.Sprintf("%d★", *it.Stars)
}
