// Package panel renders the framed notice shown in place of the catalog when
// nothing matches the criteria.
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/tui/theme"
)

// Model renders a titled panel with body lines and an optional action hint.
type Model struct {
	title      string
	lines      []string
	action     string
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
	actionSt   lipgloss.Style
}

// New returns an empty panel styled by th.
func New(th theme.PanelTheme) Model {
	return Model{
		frameStyle: th.Frame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
		actionSt:   th.Action,
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
	m.action = ""
}

// SetNoData fills the panel from a no-data signal. The reset action is only
// offered when relaxing the criteria could bring hotels back.
func (m *Model) SetNoData(msg events.NoDataMsg, resetKey string) {
	if msg.DatasetSize == 0 {
		m.SetContent("Нет отелей", []string{"The loaded dataset is empty."})
		return
	}
	m.SetContent("Ничего не найдено", []string{
		fmt.Sprintf("None of %d hotels match the current filters.", msg.DatasetSize),
		"Active: " + strings.Join(msg.ActiveFields, ", "),
	})
	if msg.CanReset() {
		m.action = fmt.Sprintf("press %s to reset filters", resetKey)
	}
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
	m.action = ""
}

// Empty reports whether the panel has nothing to show.
func (m Model) Empty() bool {
	return m.title == "" && len(m.lines) == 0
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.bodyStyle.Render(line))
	}
	if m.action != "" {
		content = append(content, "", m.actionSt.Render(m.action))
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	height := strings.Count(view, "\n") + 1
	return view, height
}
