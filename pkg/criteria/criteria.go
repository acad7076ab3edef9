// Package criteria models the complete filter and sort selection supplied by
// the user-facing controls. A Criteria value is immutable: every change
// produces a new value that replaces the previous one wholesale.
package criteria

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Wire keys understood by Parse and produced by Values.
const (
	KeyName      = "filter_hotel_name"
	KeyRating    = "filter_rating"
	KeyPriceMin  = "filter_price_min"
	KeyPriceMax  = "filter_price_max"
	KeyStars     = "filter_stars"
	KeyLine      = "filter_line"
	KeyMeals     = "filter_meals"
	KeyRegions   = "filter_regions"
	KeyWiFi      = "filter_wifi"
	KeyOperators = "filter_operators"
	KeySort      = "sort_by"
)

// Criteria is a conjunction of optional constraints plus a sort key. The zero
// value imposes no constraint and keeps input order.
type Criteria struct {
	name      *regexp.Regexp
	nameRaw   string
	minRating *float64
	minPrice  *float64
	maxPrice  *float64

	stars     Set
	lines     Set
	meals     Set
	regions   Set
	wifi      Set
	operators Set

	sort SortKey
}

// Default is the selection shown before the user touched anything.
func Default() Criteria {
	return Criteria{sort: SortRatingDesc}
}

// Parse builds criteria from wire key/value pairs. Empty values impose no
// constraint, unparsable thresholds are ignored and an unknown sort_by falls
// back to SortNone.
func Parse(values map[string]string) Criteria {
	c := Criteria{}
	if v := strings.TrimSpace(values[KeyName]); v != "" {
		c = c.WithName(v)
	}
	c.minRating = parseFloat(values[KeyRating])
	c.minPrice = parseFloat(values[KeyPriceMin])
	c.maxPrice = parseFloat(values[KeyPriceMax])
	c.stars = SplitSet(values[KeyStars])
	c.lines = SplitSet(values[KeyLine])
	c.meals = SplitSet(values[KeyMeals])
	c.regions = SplitSet(values[KeyRegions])
	c.wifi = SplitSet(values[KeyWiFi])
	c.operators = SplitSet(values[KeyOperators])
	c.sort = ParseSortKey(values[KeySort])
	return c
}

// ParseQuery parses a URL query string such as
// "filter_rating=4&sort_by=price,asc".
func ParseQuery(query string) (Criteria, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return Criteria{}, err
	}
	values := make(map[string]string, len(q))
	for k, v := range q {
		values[k] = strings.Join(v, ",")
	}
	return Parse(values), nil
}

// Values renders the criteria back into wire key/value pairs. Absent
// constraints are omitted.
func (c Criteria) Values() map[string]string {
	out := map[string]string{}
	if c.nameRaw != "" {
		out[KeyName] = c.nameRaw
	}
	putFloat(out, KeyRating, c.minRating)
	putFloat(out, KeyPriceMin, c.minPrice)
	putFloat(out, KeyPriceMax, c.maxPrice)
	putSet(out, KeyStars, c.stars)
	putSet(out, KeyLine, c.lines)
	putSet(out, KeyMeals, c.meals)
	putSet(out, KeyRegions, c.regions)
	putSet(out, KeyWiFi, c.wifi)
	putSet(out, KeyOperators, c.operators)
	if c.sort != SortNone {
		out[KeySort] = c.sort.String()
	}
	return out
}

// Query renders Values as a query string with keys in lexical order. Values
// are escaped so ParseQuery reads them back; commas stay readable.
func (c Criteria) Query() string {
	values := c.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+queryEscape(values[k]))
	}
	return strings.Join(parts, "&")
}

// ActiveFields lists the wire keys of constraints currently present, sort
// excluded.
func (c Criteria) ActiveFields() []string {
	values := c.Values()
	delete(values, KeySort)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsZero reports whether no constraint is present. The sort key is ignored.
func (c Criteria) IsZero() bool {
	return len(c.ActiveFields()) == 0
}

// Name returns the compiled name pattern, nil when absent.
func (c Criteria) Name() *regexp.Regexp { return c.name }

// MinRating returns the lower rating bound.
func (c Criteria) MinRating() (float64, bool) { return deref(c.minRating) }

// MinPrice returns the lower price bound.
func (c Criteria) MinPrice() (float64, bool) { return deref(c.minPrice) }

// MaxPrice returns the upper price bound.
func (c Criteria) MaxPrice() (float64, bool) { return deref(c.maxPrice) }

func (c Criteria) Stars() Set     { return c.stars }
func (c Criteria) Lines() Set     { return c.lines }
func (c Criteria) Meals() Set     { return c.meals }
func (c Criteria) Regions() Set   { return c.regions }
func (c Criteria) WiFi() Set      { return c.wifi }
func (c Criteria) Operators() Set { return c.operators }

// Sort returns the selected sort key.
func (c Criteria) Sort() SortKey { return c.sort }

// WithName returns a copy filtering names by a case-insensitive pattern. A
// pattern that does not compile is matched literally.
func (c Criteria) WithName(pattern string) Criteria {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		c.name, c.nameRaw = nil, ""
		return c
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	}
	c.name, c.nameRaw = re, pattern
	return c
}

// WithMinRating returns a copy with the rating bound set; nil clears it.
func (c Criteria) WithMinRating(v *float64) Criteria {
	c.minRating = copyFloat(v)
	return c
}

// WithPriceRange returns a copy with the price bounds set; nil clears a bound.
func (c Criteria) WithPriceRange(lo, hi *float64) Criteria {
	c.minPrice, c.maxPrice = copyFloat(lo), copyFloat(hi)
	return c
}

// WithStars returns a copy restricted to the given star categories.
func (c Criteria) WithStars(ids ...string) Criteria {
	c.stars = NewSet(ids...)
	return c
}

// WithMeals returns a copy restricted to offers with any of the meal plans.
func (c Criteria) WithMeals(ids ...string) Criteria {
	c.meals = NewSet(ids...)
	return c
}

// WithSort returns a copy using the given sort key.
func (c Criteria) WithSort(k SortKey) Criteria {
	c.sort = k
	return c
}

func queryEscape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "%2C", ",")
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func putFloat(out map[string]string, key string, v *float64) {
	if v != nil {
		out[key] = strconv.FormatFloat(*v, 'f', -1, 64)
	}
}

func putSet(out map[string]string, key string, s Set) {
	if s.Len() > 0 {
		out[key] = s.String()
	}
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
