// Package filter turns a raw item sequence and a criteria value into the
// ordered, filtered sequence the catalog windows over.
package filter

import (
	"math"
	"sort"
	"strconv"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/item"
)

// Apply keeps the items that satisfy every present constraint of c and then
// orders them by c's sort key. Equal keys keep their input order, and without
// a sort key the input order is kept as is. Items lacking the sort field are
// placed after all items that have it. Apply never modifies items and always
// returns a fresh slice.
func Apply(items []item.Item, c criteria.Criteria) []item.Item {
	out := make([]item.Item, 0, len(items))
	for _, it := range items {
		if Match(it, c) {
			out = append(out, it)
		}
	}
	if less := comparator(c.Sort()); less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
	}
	return out
}

// Match reports whether it satisfies every constraint present in c. A
// constraint on a field the item does not carry fails.
func Match(it item.Item, c criteria.Criteria) bool {
	if re := c.Name(); re != nil && !re.MatchString(it.Name) {
		return false
	}
	if lo, ok := c.MinRating(); ok {
		if v, has := number(it.Rating); !has || v < lo {
			return false
		}
	}
	if lo, ok := c.MinPrice(); ok {
		if v, has := number(it.Price); !has || v < lo {
			return false
		}
	}
	if hi, ok := c.MaxPrice(); ok {
		if v, has := number(it.Price); !has || v > hi {
			return false
		}
	}
	if !memberInt(c.Stars(), it.Stars) {
		return false
	}
	if !memberInt(c.Lines(), it.Line) {
		return false
	}
	if !memberInt(c.Regions(), it.RegionID) {
		return false
	}
	if allowed := c.WiFi(); allowed.Len() > 0 && (it.WiFi == "" || !allowed.Has(it.WiFi)) {
		return false
	}
	if allowed := c.Meals(); allowed.Len() > 0 && !anyOf(allowed, it.MealPlans) {
		return false
	}
	if allowed := c.Operators(); allowed.Len() > 0 && !anyOfInt(allowed, it.Operators) {
		return false
	}
	return true
}

// number treats NaN like a missing field.
func number(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) {
		return 0, false
	}
	return *v, true
}

func memberInt(allowed criteria.Set, v *int) bool {
	if allowed.Len() == 0 {
		return true
	}
	return v != nil && allowed.HasInt(*v)
}

func anyOf(allowed criteria.Set, values []string) bool {
	for _, v := range values {
		if allowed.Has(v) {
			return true
		}
	}
	return false
}

func anyOfInt(allowed criteria.Set, values []int) bool {
	for _, v := range values {
		if allowed.Has(strconv.Itoa(v)) {
			return true
		}
	}
	return false
}

type lessFunc func(a, b item.Item) bool

func comparator(k criteria.SortKey) lessFunc {
	switch k {
	case criteria.SortPriceAsc:
		return byField(price, false)
	case criteria.SortPriceDesc:
		return byField(price, true)
	case criteria.SortRatingDesc:
		return byField(rating, true)
	default:
		return nil
	}
}

func price(it item.Item) *float64  { return it.Price }
func rating(it item.Item) *float64 { return it.Rating }

// byField orders by the extracted value; items without a value sort last
// regardless of direction.
func byField(get func(item.Item) *float64, desc bool) lessFunc {
	return func(a, b item.Item) bool {
		av, aok := number(get(a))
		bv, bok := number(get(b))
		switch {
		case !aok:
			return false
		case !bok:
			return true
		case desc:
			return av > bv
		default:
			return av < bv
		}
	}
}
