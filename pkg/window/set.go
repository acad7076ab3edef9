package window

import (
	"sort"
	"strconv"
	"strings"
)

// Set is a set of row indices. The zero value is an empty set. Sets are
// treated as values: operations return new sets.
type Set struct {
	rows map[int]struct{}
}

// NewSet builds a set from rows; duplicates collapse.
func NewSet(rows ...int) Set {
	s := Set{rows: make(map[int]struct{}, len(rows))}
	for _, r := range rows {
		s.rows[r] = struct{}{}
	}
	return s
}

// Range builds the set [start, end). An empty or inverted range yields the
// empty set.
func Range(start, end int) Set {
	if end <= start {
		return Set{}
	}
	s := Set{rows: make(map[int]struct{}, end-start)}
	for r := start; r < end; r++ {
		s.rows[r] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(row int) bool {
	_, ok := s.rows[row]
	return ok
}

// Len returns the number of rows.
func (s Set) Len() int { return len(s.rows) }

// Sorted returns the rows in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s.rows))
	for r := range s.rows {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Equal reports whether both sets hold the same rows.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for r := range s.rows {
		if !o.Has(r) {
			return false
		}
	}
	return true
}

// Minus returns the rows of s that are not in o.
func (s Set) Minus(o Set) Set {
	out := Set{rows: make(map[int]struct{})}
	for r := range s.rows {
		if !o.Has(r) {
			out.rows[r] = struct{}{}
		}
	}
	return out
}

// Union returns the rows in either set.
func (s Set) Union(o Set) Set {
	out := Set{rows: make(map[int]struct{}, s.Len()+o.Len())}
	for r := range s.rows {
		out.rows[r] = struct{}{}
	}
	for r := range o.rows {
		out.rows[r] = struct{}{}
	}
	return out
}

// String renders the set as "{0,1,2}".
func (s Set) String() string {
	rows := s.Sorted()
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strconv.Itoa(r)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
