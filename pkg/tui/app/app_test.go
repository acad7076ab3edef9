package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/source"
	"tableflip.dev/tourcatalog/pkg/store"
	tuievents "tableflip.dev/tourcatalog/pkg/tui/events"
)

var wifiTiers = []string{"FREE_ALL", "PAID", "NONE"}

func testItems(n int) []item.Item {
	items := make([]item.Item, n)
	for i := range items {
		items[i] = item.Item{
			ID:     fmt.Sprintf("%d", i),
			Name:   fmt.Sprintf("Hotel %02d", i),
			City:   "Sochi",
			Rating: item.Float(float64(1 + i%4)),
			Price:  item.Float(float64(1000 + 10*i)),
			WiFi:   wifiTiers[i%3],
		}
	}
	return items
}

func newTestModel(t *testing.T, debounce time.Duration) *Model {
	t.Helper()
	opts := DefaultOptions()
	opts.Items = testItems(30)
	opts.RequestID = "req-1"
	opts.Criteria = criteria.Criteria{}
	opts.Filters = map[string][]item.FilterOption{
		"wifi": {{ID: "FREE_ALL"}, {ID: "PAID"}, {ID: "NONE"}},
	}
	opts.Debounce = debounce
	opts.Width = 130
	opts.Height = 24
	m := New(opts)
	t.Cleanup(m.Close)
	pump(m)
	return m
}

// pump delivers every queued bus signal to the model.
func pump(m *Model) {
	for {
		select {
		case msg, ok := <-m.busCh:
			if !ok {
				return
			}
			m.Update(tuievents.BusMsg{Msg: msg})
		default:
			return
		}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		_, last = m.Update(msg)
		pump(m)
	}
	return last
}

// plainView renders m without styling so assertions match the visible text.
func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

// deliver runs cmd and feeds its messages back into the model.
func deliver(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(m, c)
		}
	case nil:
	default:
		m.Update(msg)
	}
}

func TestInitialWindow(t *testing.T) {
	m := newTestModel(t, 0)

	// 20 body lines, 7-line rows: ceil(20/7)+1 rows, 3 cards per row.
	if got := m.ctrl.Materialized().Sorted(); fmt.Sprint(got) != "[0 1 2 3]" {
		t.Fatalf("expected rows 0-3 materialized, got %v", got)
	}
	if m.rows.Len() != 4 {
		t.Fatalf("expected 4 rendered rows, got %d", m.rows.Len())
	}
	view := plainView(m)
	if !strings.Contains(view, "Hotel 00") || !strings.Contains(view, "Hotel 02") {
		t.Fatalf("expected first row in view:\n%s", view)
	}
	if !strings.Contains(view, "30 of 30 hotels") {
		t.Fatalf("expected match count in footer:\n%s", view)
	}
}

func TestScrollMovesWindow(t *testing.T) {
	m := newTestModel(t, 0)

	for i := 0; i < 14; i++ {
		press(m, "j")
	}
	if got := m.ctrl.Materialized().Sorted(); fmt.Sprint(got) != "[1 2 3 4 5 6]" {
		t.Fatalf("expected rows 1-6 after scrolling two rows, got %v", got)
	}
	if m.rows.Len() != 6 {
		t.Fatalf("renderer should hold exactly the materialized rows, got %d", m.rows.Len())
	}
	view := plainView(m)
	if strings.Contains(view, "Hotel 00") {
		t.Fatalf("row 0 should be off screen:\n%s", view)
	}
	if !strings.Contains(view, "Hotel 06") {
		t.Fatalf("expected row 2 at the top:\n%s", view)
	}

	press(m, "g")
	if m.vp.offset != 0 {
		t.Fatalf("expected offset reset to top, got %d", m.vp.offset)
	}
	press(m, "G")
	if want := -(10*7 - 20); m.vp.offset != want {
		t.Fatalf("expected offset %d at bottom, got %d", want, m.vp.offset)
	}
}

func TestCriteriaChangesAreDebounced(t *testing.T) {
	m := newTestModel(t, time.Millisecond)

	first := press(m, "p")
	second := press(m, "p")
	if first == nil || second == nil {
		t.Fatalf("expected tick commands for debounced criteria")
	}
	if got := m.ctrl.Criteria().Sort(); got != criteria.SortNone {
		t.Fatalf("criteria applied before debounce elapsed: %v", got)
	}

	deliver(m, first)
	if got := m.ctrl.Criteria().Sort(); got != criteria.SortNone {
		t.Fatalf("stale tick should be ignored, got %v", got)
	}
	deliver(m, second)
	if got := m.ctrl.Criteria().Sort(); got != criteria.SortPriceDesc {
		t.Fatalf("expected price,desc after two presses, got %v", got)
	}
	h, ok := m.ctrl.Handle(0)
	if !ok || !strings.Contains(strings.Join(h.(*renderedRow).lines, "\n"), "Hotel 29") {
		t.Fatalf("expected most expensive hotel in row 0")
	}
}

func TestMinRatingKeys(t *testing.T) {
	m := newTestModel(t, time.Millisecond)
	m.keys.MinStar = key.NewBinding(key.WithKeys("3", "x"))

	if cmd := press(m, "x"); cmd != nil {
		t.Fatalf("a non-numeric min rating key should schedule nothing")
	}
	if _, ok := m.pending.MinRating(); ok {
		t.Fatalf("non-numeric key must not set a min rating")
	}

	deliver(m, press(m, "3"))
	if v, ok := m.ctrl.Criteria().MinRating(); !ok || v != 3 {
		t.Fatalf("expected min rating 3, got %v %t", v, ok)
	}
}

func TestNoDataPanelAndReset(t *testing.T) {
	m := newTestModel(t, 0)

	press(m, "5")
	if m.ctrl.Len() != 0 {
		t.Fatalf("expected nothing to match rating 5, got %d", m.ctrl.Len())
	}
	if m.rows.Len() != 0 {
		t.Fatalf("expected every row disposed, got %d", m.rows.Len())
	}
	view := plainView(m)
	if !strings.Contains(view, "Ничего не найдено") || !strings.Contains(view, "press r") {
		t.Fatalf("expected no-data panel with reset hint:\n%s", view)
	}

	press(m, "r")
	if m.ctrl.Len() != 30 {
		t.Fatalf("expected reset to restore all hotels, got %d", m.ctrl.Len())
	}
	if got := m.ctrl.Criteria().Sort(); got != criteria.SortRatingDesc {
		t.Fatalf("expected default sort after reset, got %v", got)
	}
	if !m.panel.Empty() {
		t.Fatalf("expected panel cleared once hotels match again")
	}
}

func TestNameFilter(t *testing.T) {
	m := newTestModel(t, 0)

	press(m, "/", "0", "7")
	if m.ctrl.Len() != 30 {
		t.Fatalf("filter must not apply while typing")
	}
	press(m, "enter")
	if m.ctrl.Len() != 1 {
		t.Fatalf("expected a single hotel named *07*, got %d", m.ctrl.Len())
	}
	if got := m.ctrl.Criteria().Values()[criteria.KeyName]; got != "07" {
		t.Fatalf("expected name criteria 07, got %q", got)
	}

	press(m, "/", "1", "esc")
	if got := m.input.Value(); got != "07" {
		t.Fatalf("esc should restore the applied pattern, got %q", got)
	}
}

func TestWiFiPresetCycle(t *testing.T) {
	m := newTestModel(t, 0)

	var got []int
	for i := 0; i < 4; i++ {
		press(m, "w")
		got = append(got, m.ctrl.Len())
	}
	if fmt.Sprint(got) != "[30 20 10 30]" {
		t.Fatalf("unexpected preset sizes %v", got)
	}
}

func TestResizeChangesColumns(t *testing.T) {
	m := newTestModel(t, 0)

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	if cols := m.vp.Geometry().ColumnsPerRow; cols != 1 {
		t.Fatalf("expected a single column at 60 cells, got %d", cols)
	}
	h, ok := m.ctrl.Handle(1)
	if !ok {
		t.Fatalf("expected row 1 materialized after resize")
	}
	lines := strings.Join(h.(*renderedRow).lines, "\n")
	if !strings.Contains(lines, "Hotel 01") || strings.Contains(lines, "Hotel 02") {
		t.Fatalf("expected row 1 to hold only the second hotel:\n%s", lines)
	}

	// Height only: the window grows without a rebuild.
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 40})
	if got := m.ctrl.Materialized().Len(); got != 7 {
		t.Fatalf("expected ceil(36/7)+1 rows, got %d", got)
	}
}

func TestDatasetReload(t *testing.T) {
	m := newTestModel(t, 0)

	m.Update(tuievents.DatasetMsg{Update: source.Update{Dataset: &store.Dataset{
		RequestID: "req-2",
		Items:     testItems(4),
	}}})
	pump(m)
	if m.ctrl.RequestID() != "req-2" || m.ctrl.Len() != 4 {
		t.Fatalf("expected reloaded dataset, got %q with %d", m.ctrl.RequestID(), m.ctrl.Len())
	}

	m.Update(tuievents.DatasetMsg{Update: source.Update{Err: fmt.Errorf("boom")}})
	if !strings.Contains(plainView(m), "reload failed: boom") {
		t.Fatalf("expected reload error in status")
	}
}

func TestSignalsPane(t *testing.T) {
	m := newTestModel(t, 0)

	if m.signals.Len() == 0 {
		t.Fatalf("expected startup signals to be logged")
	}
	press(m, "e")
	if m.vp.height != 24-4-signalLines {
		t.Fatalf("expected body to shrink for the signals pane, got %d", m.vp.height)
	}
	if got := m.ctrl.Materialized().Sorted(); fmt.Sprint(got) != "[0 1 2]" {
		t.Fatalf("expected a smaller window, got %v", got)
	}
	view := plainView(m)
	if !strings.Contains(view, "Signals (") || !strings.Contains(view, "rebuild") {
		t.Fatalf("expected signals pane in view:\n%s", view)
	}
	if got := strings.Count(view, "\n") + 1; got != 24 {
		t.Fatalf("expected view to fill 24 lines, got %d", got)
	}

	press(m, "e")
	if m.vp.height != 20 {
		t.Fatalf("expected body restored, got %d", m.vp.height)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, 0)

	press(m, "?")
	if !m.showHelp {
		t.Fatalf("expected help overlay")
	}
	view := plainView(m)
	if !strings.Contains(view, "Scrolling") {
		t.Fatalf("expected key reference in view:\n%s", view)
	}
	if got := strings.Count(view, "\n") + 1; got != 24 {
		t.Fatalf("expected view to fill 24 lines, got %d", got)
	}

	// Keys scroll the help, not the catalog.
	press(m, "j")
	if m.vp.offset != 0 {
		t.Fatalf("catalog scrolled behind the help overlay")
	}
	press(m, "?")
	if m.showHelp {
		t.Fatalf("expected help closed")
	}
}
