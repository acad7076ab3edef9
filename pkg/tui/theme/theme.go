package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header  HeaderTheme
	Card    CardTheme
	Footer  FooterTheme
	Panel   PanelTheme
	Signals SignalsTheme
}

// HeaderTheme styles the criteria summary line.
type HeaderTheme struct {
	Title    lipgloss.Style
	Criteria lipgloss.Style
	Count    lipgloss.Style
}

// CardTheme styles one hotel card inside a row.
type CardTheme struct {
	Frame    lipgloss.Style
	Name     lipgloss.Style
	City     lipgloss.Style
	Rating   lipgloss.Style
	Stars    lipgloss.Style
	Price    lipgloss.Style
	Discount lipgloss.Style
	Meals    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/input bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Prompt lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Action lipgloss.Style
}

// SignalsTheme styles the signal log pane.
type SignalsTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Time   lipgloss.Style
	Kind   lipgloss.Style
	Text   lipgloss.Style
	Warn   lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")

	return Theme{
		Header: HeaderTheme{
			Title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
			Criteria: lipgloss.NewStyle().Foreground(muted),
			Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Card: CardTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			Name:     lipgloss.NewStyle().Bold(true),
			City:     lipgloss.NewStyle().Foreground(muted),
			Rating:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Stars:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Price:    lipgloss.NewStyle().Bold(true),
			Discount: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Meals:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
			Prompt: lipgloss.NewStyle().Foreground(accent),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:  lipgloss.NewStyle().Bold(true),
			Body:   lipgloss.NewStyle(),
			Action: lipgloss.NewStyle().Foreground(accent).Underline(true),
		},
		Signals: SignalsTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")),
			Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
			Time:   lipgloss.NewStyle().Foreground(muted),
			Kind:   lipgloss.NewStyle().Foreground(accent),
			Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
	}
}

var (
	ratingLow, _  = colorful.Hex("#e5484d")
	ratingHigh, _ = colorful.Hex("#30a46c")
)

// RatingColor blends from red at rating 1 to green at rating 5.
func RatingColor(rating float64) color.Color {
	t := (rating - 1) / 4
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return ratingLow.BlendLab(ratingHigh, t).Clamped()
}
