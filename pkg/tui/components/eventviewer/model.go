// Package eventviewer renders the catalog signal stream as a log pane.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/tui/theme"
)

// Kind names what an entry records.
type Kind string

const (
	KindDataset  Kind = "dataset"
	KindCriteria Kind = "criteria"
	KindWindow   Kind = "window"
	KindRebuild  Kind = "rebuild"
	KindNoData   Kind = "no data"
	KindReset    Kind = "reset"
	KindError    Kind = "error"
)

// kindOrder fixes the order of the header counters.
var kindOrder = []Kind{KindDataset, KindCriteria, KindRebuild, KindWindow, KindNoData, KindReset, KindError}

// Entry is one logged signal.
type Entry struct {
	At        time.Time
	Kind      Kind
	Component events.ComponentID
	Text      string
}

// FromSignal turns a catalog signal into a log entry.
func FromSignal(msg events.Msg) Entry {
	e := Entry{Text: msg.Describe()}
	switch m := msg.(type) {
	case events.DatasetMsg:
		e.Kind, e.Component = KindDataset, m.Component
	case events.CriteriaMsg:
		e.Kind, e.Component = KindCriteria, m.Component
	case events.WindowMsg:
		e.Kind, e.Component = KindWindow, m.Component
		if m.Reset {
			e.Kind = KindRebuild
		}
	case events.NoDataMsg:
		e.Kind, e.Component = KindNoData, m.Component
	case events.ResetRequestMsg:
		e.Kind, e.Component = KindReset, m.Component
	default:
		e.Kind = Kind(fmt.Sprintf("%T", msg))
	}
	return e
}

// FromError logs a failure.
func FromError(err error) Entry {
	return Entry{Kind: KindError, Text: err.Error()}
}

// Model keeps the most recent entries and renders them newest first under a
// header with per-kind counters.
type Model struct {
	viewport viewport.Model
	styles   theme.SignalsTheme

	log    []Entry
	limit  int
	counts map[Kind]int

	width  int
	height int
}

// NewModel returns a pane holding at most limit entries; limit <= 0 keeps 200.
func NewModel(th theme.SignalsTheme, limit int) *Model {
	if limit <= 0 {
		limit = 200
	}
	return &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		styles:   th,
		limit:    limit,
		counts:   make(map[Kind]int),
	}
}

// SetSize fits the pane, border and header included, into width x height.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(1, width-2))
	// Border top and bottom plus the header line.
	m.viewport.SetHeight(max(1, height-3))
	m.refresh()
}

// Append logs e. The counters keep counting after old entries are dropped.
func (m *Model) Append(e Entry) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	m.counts[e.Kind]++
	m.log = append(m.log, e)
	if over := len(m.log) - m.limit; over > 0 {
		m.log = append(m.log[:0], m.log[over:]...)
	}
	m.refresh()
	m.viewport.SetYOffset(0)
}

// Len is the number of entries held.
func (m *Model) Len() int { return len(m.log) }

// Count is how many entries of kind k were ever appended.
func (m *Model) Count(k Kind) int { return m.counts[k] }

// Entries returns the held entries, newest first.
func (m *Model) Entries() []Entry {
	out := make([]Entry, 0, len(m.log))
	for i := len(m.log) - 1; i >= 0; i-- {
		out = append(out, m.log[i])
	}
	return out
}

// View renders the pane; it is empty until sized.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View()))
}

func (m *Model) header() string {
	parts := []string{fmt.Sprintf("Signals (%d)", len(m.log))}
	for _, k := range kindOrder {
		if n := m.counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", k, n))
		}
	}
	return m.styles.Header.Render(strings.Join(parts, "  "))
}

func (m *Model) refresh() {
	if len(m.log) == 0 {
		m.viewport.SetContent(m.styles.Time.Render("No signals yet"))
		return
	}
	lines := make([]string, 0, len(m.log))
	for _, e := range m.Entries() {
		lines = append(lines, m.line(e))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) line(e Entry) string {
	text := m.styles.Text
	switch e.Kind {
	case KindNoData:
		text = m.styles.Warn
	case KindError:
		text = m.styles.Error
	}
	kind := string(e.Kind)
	if e.Component != "" {
		kind += "@" + string(e.Component)
	}
	return m.styles.Time.Render(e.At.Format("15:04:05")) + " " +
		m.styles.Kind.Render(kind) + " " +
		text.Render(e.Text)
}
