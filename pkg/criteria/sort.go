package criteria

import "strings"

// SortKey selects the comparator applied after filtering.
type SortKey int

const (
	// SortNone keeps the filtered items in input order.
	SortNone SortKey = iota
	SortPriceAsc
	SortPriceDesc
	SortRatingDesc
)

var sortNames = map[SortKey]string{
	SortPriceAsc:   "price,asc",
	SortPriceDesc:  "price,desc",
	SortRatingDesc: "rating,desc",
}

// ParseSortKey maps the sort_by wire value onto a key. Unknown values yield
// SortNone.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	for k, name := range sortNames {
		if name == s {
			return k
		}
	}
	return SortNone
}

func (k SortKey) String() string {
	if name, ok := sortNames[k]; ok {
		return name
	}
	return ""
}

// Field returns the item field the key orders by.
func (k SortKey) Field() string {
	name := k.String()
	if i := strings.IndexByte(name, ','); i >= 0 {
		return name[:i]
	}
	return ""
}

// Descending reports whether larger values come first.
func (k SortKey) Descending() bool {
	return strings.HasSuffix(k.String(), ",desc")
}

// NextSort applies a sort control press to the current key. Action "reverse"
// flips the direction when field is already the active field and otherwise
// starts ascending; "asc" and "desc" select the direction directly. The
// result falls back to SortNone when the combination has no comparator (for
// example rating ascending).
func NextSort(current SortKey, field, action string) SortKey {
	field = strings.ToLower(strings.TrimSpace(field))
	dir := strings.ToLower(strings.TrimSpace(action))
	if dir == "reverse" {
		dir = "asc"
		if current.Field() == field && !current.Descending() {
			dir = "desc"
		}
	}
	return ParseSortKey(field + "," + dir)
}
