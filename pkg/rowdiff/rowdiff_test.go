package rowdiff

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tableflip.dev/tourcatalog/pkg/window"
)

func TestDiffSlidingWindow(t *testing.T) {
	d := Diff(window.NewSet(0, 1, 2), window.NewSet(1, 2, 3))
	want := Delta{Add: []int{3}, Remove: []int{0}}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Fatalf("unexpected delta (-want +got):\n%s", diff)
	}
}

func TestDiffNoChange(t *testing.T) {
	d := Diff(window.Range(4, 9), window.Range(4, 9))
	if !d.Empty() {
		t.Fatalf("expected empty delta, got %+v", d)
	}
	if !Diff(window.Set{}, window.Set{}).Empty() {
		t.Fatalf("expected empty delta for empty windows")
	}
}

func TestDiffDisjointIsFullReplacement(t *testing.T) {
	prev := window.Range(0, 3)
	next := window.Range(10, 15)
	d := Diff(prev, next)
	if diff := cmp.Diff(prev.Sorted(), d.Remove); diff != "" {
		t.Fatalf("expected all previous rows removed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(next.Sorted(), d.Add); diff != "" {
		t.Fatalf("expected all desired rows added (-want +got):\n%s", diff)
	}
}

// (A − Remove) ∪ Add == B and Add ∩ Remove == ∅ for arbitrary, possibly
// sparse, windows.
func TestDiffCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	randomSet := func() window.Set {
		n := rng.Intn(12)
		rows := make([]int, n)
		for i := range rows {
			rows[i] = rng.Intn(20)
		}
		return window.NewSet(rows...)
	}
	for i := 0; i < 500; i++ {
		a, b := randomSet(), randomSet()
		d := Diff(a, b)
		if got := d.Apply(a); !got.Equal(b) {
			t.Fatalf("apply(%s, %+v) = %s, want %s", a, d, got, b)
		}
		add := window.NewSet(d.Add...)
		for _, r := range d.Remove {
			if add.Has(r) {
				t.Fatalf("row %d in both add and remove for %s -> %s", r, a, b)
			}
		}
		if diff := cmp.Diff(d.Add, add.Sorted(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("add not sorted/unique (-want +got):\n%s", diff)
		}
	}
}
