// Package help renders the key reference as a scrollable markdown overlay.
package help

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

//go:embed help.md
var reference string

const (
	minWidth  = 32
	minHeight = 8
)

// Model is the key reference rendered by Glamour inside a framed viewport.
type Model struct {
	viewport viewport.Model
	frame    lipgloss.Style

	profile termenv.Profile
	style   string
	// pages caches the rendered reference by wrap width.
	pages map[int]string

	width  int
	height int
	err    error
}

// Option configures the overlay.
type Option func(*Model)

// WithProfile renders markdown colours for p using the dark or light style.
// termenv.Ascii, the default, renders plain text.
func WithProfile(p termenv.Profile, dark bool) Option {
	return func(m *Model) {
		m.profile = p
		m.style = "light"
		if dark {
			m.style = "dark"
		}
	}
}

// New returns the overlay sized to width x height, never smaller than 32x8.
func New(width, height int, opts ...Option) *Model {
	m := &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		profile:  termenv.Ascii,
		style:    "dark",
		pages:    make(map[int]string),
	}
	m.viewport.MouseWheelEnabled = true
	for _, opt := range opts {
		opt(m)
	}
	m.SetSize(width, height)
	return m
}

// Update scrolls the reference.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the framed reference.
func (m *Model) View() string {
	return m.frame.Render(m.viewport.View())
}

// SetSize resizes the overlay and rewraps the reference when the width
// changed.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, minWidth), max(height, minHeight)
	if m.width == width && m.height == height {
		return
	}
	rewrap := m.width != width
	m.width, m.height = width, height

	inner := width - m.frame.GetHorizontalFrameSize()
	m.viewport.SetWidth(inner)
	m.viewport.SetHeight(height - m.frame.GetVerticalFrameSize())
	if rewrap {
		m.viewport.SetContent(m.page(inner))
		m.viewport.GotoTop()
	}
}

// Err reports why the reference could not be rendered, if it could not.
func (m *Model) Err() error { return m.err }

func (m *Model) page(wrap int) string {
	if page, ok := m.pages[wrap]; ok {
		return page
	}
	page, err := m.render(wrap)
	if err != nil {
		m.err = err
		return "help unavailable: " + err.Error()
	}
	m.err = nil
	m.pages[wrap] = page
	return page
}

func (m *Model) render(wrap int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithColorProfile(m.profile),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(strings.TrimSpace(reference))
	if err != nil {
		return "", err
	}
	if m.profile == termenv.Ascii {
		out = escapes.ReplaceAllString(out, "")
	}
	return out, nil
}

var escapes = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)
