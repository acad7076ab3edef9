// Package rowdiff computes the minimal add/remove instructions that turn the
// currently materialized row window into the desired one.
package rowdiff

import "tableflip.dev/tourcatalog/pkg/window"

// Delta lists rows to materialize and rows to dispose, each ascending. The
// two lists are disjoint; rows present in both windows appear in neither.
type Delta struct {
	Add    []int
	Remove []int
}

// Diff compares the previous and desired windows. Any pair of sets is valid
// input.
func Diff(prev, desired window.Set) Delta {
	return Delta{
		Add:    desired.Minus(prev).Sorted(),
		Remove: prev.Minus(desired).Sorted(),
	}
}

// Empty reports whether applying the delta is a no-op.
func (d Delta) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

// Apply returns (prev − Remove) ∪ Add.
func (d Delta) Apply(prev window.Set) window.Set {
	return prev.Minus(window.NewSet(d.Remove...)).Union(window.NewSet(d.Add...))
}
