package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestHelpRendersKeyReference(t *testing.T) {
	m := New(80, 40)
	if err := m.Err(); err != nil {
		t.Fatalf("render help: %v", err)
	}
	view := ansi.Strip(m.View())
	for _, want := range []string{"Tour catalog", "Scrolling", "sort by price"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in help:\n%s", want, view)
		}
	}
}

func TestHelpEnforcesMinimumSize(t *testing.T) {
	m := New(1, 1)
	if m.width != 32 || m.height != 8 {
		t.Fatalf("expected minimum size 32x8, got %dx%d", m.width, m.height)
	}
}

func TestHelpColorProfile(t *testing.T) {
	if strings.Contains(New(80, 40).View(), "\x1b[38") {
		t.Fatalf("ascii profile should render without colour")
	}
	m := New(80, 40, WithProfile(termenv.TrueColor, true))
	if err := m.Err(); err != nil {
		t.Fatalf("render help: %v", err)
	}
	if !strings.Contains(m.View(), "\x1b[") {
		t.Fatalf("expected colour escapes for a truecolor profile")
	}
}
