package criteria

import (
	"sort"
	"strconv"
	"strings"
)

// Set is an immutable allow-list of discrete values compared as strings, the
// way the wire format carries them. The zero Set is empty and imposes no
// constraint.
type Set struct {
	values map[string]struct{}
	order  []string
}

// NewSet builds a set from values, trimming blanks and duplicates. Input order
// is kept for rendering.
func NewSet(values ...string) Set {
	s := Set{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if s.values == nil {
			s.values = make(map[string]struct{}, len(values))
		}
		if _, ok := s.values[v]; ok {
			continue
		}
		s.values[v] = struct{}{}
		s.order = append(s.order, v)
	}
	return s
}

// SplitSet decomposes a comma separated allow-list.
func SplitSet(csv string) Set {
	if strings.TrimSpace(csv) == "" {
		return Set{}
	}
	return NewSet(strings.Split(csv, ",")...)
}

// Len returns the number of allowed values.
func (s Set) Len() int { return len(s.order) }

// Has reports membership of v.
func (s Set) Has(v string) bool {
	_, ok := s.values[v]
	return ok
}

// HasInt reports membership of the decimal form of v.
func (s Set) HasInt(v int) bool {
	return s.Has(strconv.Itoa(v))
}

// Values returns the allowed values in insertion order.
func (s Set) Values() []string {
	return append([]string(nil), s.order...)
}

// Sorted returns the allowed values in lexical order.
func (s Set) Sorted() []string {
	out := s.Values()
	sort.Strings(out)
	return out
}

// String joins values with commas in insertion order.
func (s Set) String() string {
	return strings.Join(s.order, ",")
}
