// Package card renders catalog rows as a strip of fixed-size hotel cards.
package card

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/tui/theme"
)

const (
	bodyLines = 5
	// Height is the number of terminal lines a rendered row occupies,
	// borders included.
	Height = bodyLines + 2
	// MinWidth is the narrowest card that still fits its labels.
	MinWidth = 20
)

// RenderRow lays out items side by side, each card width/columns wide. Rows
// shorter than columns keep their cards left aligned.
func RenderRow(th theme.CardTheme, items []item.Item, columns, width int) string {
	if columns <= 0 {
		columns = 1
	}
	cardWidth := width / columns
	if cardWidth < MinWidth {
		cardWidth = MinWidth
	}
	cards := make([]string, 0, len(items))
	for _, it := range items {
		cards = append(cards, Render(th, it, cardWidth))
	}
	if len(cards) == 0 {
		return strings.Repeat("\n", Height-1)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Render draws a single card exactly width cells wide and Height lines tall.
func Render(th theme.CardTheme, it item.Item, width int) string {
	// Leaves room for the border on both sides of the frame width.
	inner := width - 4 - th.Frame.GetHorizontalPadding()
	if inner < 1 {
		inner = 1
	}
	fit := func(s string) string {
		return truncate.StringWithTail(s, uint(inner), "…")
	}

	rating := th.Rating
	if it.Rating != nil {
		rating = rating.Foreground(theme.RatingColor(*it.Rating))
	}
	price := th.Price.Render(fit(it.PriceLabel()))
	if it.Price != nil {
		price = th.Price.Render(it.PriceLabel()) + " " + th.Discount.Render(fmt.Sprintf("-%d%%", it.Discount()))
		price = truncate.StringWithTail(price, uint(inner), "…")
	}
	lines := []string{
		th.Name.Render(fit(it.Name)),
		th.City.Render(fit(it.City)),
		th.Stars.Render(it.StarsLabel()) + "  " + rating.Render(it.RatingLabel()),
		price,
		th.Meals.Render(fit(strings.Join(it.MealPlans, " "))),
	}
	return th.Frame.
		Width(width - 2).
		Height(bodyLines).
		Render(strings.Join(lines, "\n"))
}
