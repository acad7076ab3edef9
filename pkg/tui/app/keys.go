package app

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Price    key.Binding
	Rating   key.Binding
	Name     key.Binding
	MinStar  key.Binding
	ClearMin key.Binding
	WiFi     key.Binding
	Reset    key.Binding
	Signals  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll")),
		Up:       key.NewBinding(key.WithKeys("k", "up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "space", "ctrl+d"), key.WithHelp("pgdn", "page")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g/G", "top/bottom")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end")),
		Price:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "price sort")),
		Rating:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "rating sort")),
		Name:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "name")),
		MinStar:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "min rating")),
		ClearMin: key.NewBinding(key.WithKeys("0")),
		WiFi:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wi-fi")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Signals:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "signals")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// help lists the bindings shown in the footer.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Down, k.PageDown, k.Top, k.Price, k.Rating, k.Name, k.MinStar, k.WiFi, k.Reset, k.Signals, k.Help, k.Quit}
}
