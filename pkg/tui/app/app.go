// Package app is the Bubble Tea front end of the catalog: it renders
// materialized rows as card strips and turns keys into scroll and criteria
// changes.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/catalog"
	"tableflip.dev/tourcatalog/pkg/criteria"
	"tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/source"
	"tableflip.dev/tourcatalog/pkg/tui/components/card"
	"tableflip.dev/tourcatalog/pkg/tui/components/eventviewer"
	"tableflip.dev/tourcatalog/pkg/tui/components/help"
	"tableflip.dev/tourcatalog/pkg/tui/components/panel"
	tuievents "tableflip.dev/tourcatalog/pkg/tui/events"
	"tableflip.dev/tourcatalog/pkg/tui/theme"
)

const (
	headerLines     = 2
	footerLines     = 2
	signalLines     = 8
	defaultDebounce = 250 * time.Millisecond
	filterWiFi      = "wifi"
)

// Options configures a catalog UI.
type Options struct {
	Items     []item.Item
	RequestID string
	Filters   map[string][]item.FilterOption
	Criteria  criteria.Criteria
	// Updates, when set, replaces the dataset on every reload.
	Updates <-chan source.Update
	Logger  *zap.Logger
	// Debounce delays criteria changes made from the keyboard. Zero applies
	// them immediately.
	Debounce time.Duration
	Width    int
	Height   int
	// ColorProfile and DarkBackground style the help overlay.
	ColorProfile   termenv.Profile
	DarkBackground bool
}

// DefaultOptions returns options with the standard debounce and an 80x24
// terminal.
func DefaultOptions() Options {
	return Options{
		Criteria:       criteria.Default(),
		Debounce:       defaultDebounce,
		Width:          80,
		Height:         24,
		ColorProfile:   termenv.Ascii,
		DarkBackground: true,
	}
}

type criteriaTickMsg struct{ seq int }

// Model is the root Bubble Tea model.
type Model struct {
	theme theme.Theme
	keys  keyMap
	log   *zap.Logger

	bus       *events.Bus
	busCh     <-chan events.Msg
	cancelBus func()
	updates   <-chan source.Update

	ctrl     *catalog.Controller
	rows     *rowRenderer
	vp       *viewport
	panel    panel.Model
	input    textinput.Model
	signals  *eventviewer.Model
	help     *help.Model
	helpOpts []help.Option

	filters    map[string][]item.FilterOption
	filtering  bool
	pending    criteria.Criteria
	pendingSeq int
	debounce   time.Duration
	wifiIndex  int
	showSignal bool
	showHelp   bool

	termWidth  int
	termHeight int
	status     string
	err        error
}

// New builds the model and materializes the first window.
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	th := theme.Default()

	ti := textinput.New()
	ti.Placeholder = "hotel name"
	ti.CharLimit = 128
	ti.Prompt = "/"

	bus := events.NewBus()
	ch, cancel := bus.Subscribe(events.DefaultBuffer)

	vp := &viewport{}
	rows := newRowRenderer(th.Card, vp)
	m := &Model{
		theme:     th,
		keys:      defaultKeys(),
		log:       log,
		bus:       bus,
		busCh:     ch,
		cancelBus: cancel,
		updates:   opts.Updates,
		rows:      rows,
		vp:        vp,
		panel:     panel.New(th.Panel),
		helpOpts:  []help.Option{help.WithProfile(opts.ColorProfile, opts.DarkBackground)},
		input:     ti,
		signals:   eventviewer.NewModel(th.Signals, 0),
		filters:   opts.Filters,
		debounce:  opts.Debounce,
		wifiIndex: -1,
	}
	m.setSize(opts.Width, opts.Height)
	m.ctrl = catalog.New(rows, vp, bus,
		catalog.WithLogger(log.Named("catalog")),
		catalog.WithComponentID("tui"),
		catalog.WithCriteria(opts.Criteria))
	m.pending = opts.Criteria
	m.setErr(m.ctrl.SetData(opts.Items, opts.RequestID))
	return m
}

// Init starts listening for catalog signals and dataset reloads.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tuievents.WaitForBus(m.busCh), tuievents.WaitForDataset(m.updates))
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case criteriaTickMsg:
		if msg.seq == m.pendingSeq {
			m.applyCriteria(m.pending)
		}
	case tuievents.BusMsg:
		m.handleSignal(msg.Msg)
		cmds = append(cmds, tuievents.WaitForBus(m.busCh))
	case tuievents.DatasetMsg:
		m.handleDataset(msg.Update)
		cmds = append(cmds, tuievents.WaitForDataset(m.updates))
	case tuievents.WatchStoppedMsg:
		m.status = "stopped watching the data file"
		m.updates = nil
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.filtering {
		switch msg.String() {
		case "enter":
			m.filtering = false
			m.input.Blur()
			return m.schedule(m.pending.WithName(m.input.Value()))
		case "esc":
			m.filtering = false
			m.input.Blur()
			m.input.SetValue(m.pending.Values()[criteria.KeyName])
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), msg.String() == "esc":
			m.showHelp = false
			return nil
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return tea.Quit
		}
		return m.help.Update(msg)
	}

	page := m.vp.height - card.Height/2
	if page < 1 {
		page = 1
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(page)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-page)
	case key.Matches(msg, m.keys.Top):
		m.scroll(-m.ctrl.ContentHeightPx())
	case key.Matches(msg, m.keys.Bottom):
		m.scroll(m.ctrl.ContentHeightPx())
	case key.Matches(msg, m.keys.Price):
		return m.schedule(m.pending.WithSort(criteria.NextSort(m.pending.Sort(), "price", "reverse")))
	case key.Matches(msg, m.keys.Rating):
		return m.schedule(m.pending.WithSort(criteria.NextSort(m.pending.Sort(), "rating", "desc")))
	case key.Matches(msg, m.keys.Name):
		m.filtering = true
		return m.input.Focus()
	case key.Matches(msg, m.keys.MinStar):
		v, err := strconv.ParseFloat(msg.String(), 64)
		if err != nil {
			m.log.Debug("ignore min rating key", zap.String("key", msg.String()), zap.Error(err))
			return nil
		}
		return m.schedule(m.pending.WithMinRating(&v))
	case key.Matches(msg, m.keys.ClearMin):
		return m.schedule(m.pending.WithMinRating(nil))
	case key.Matches(msg, m.keys.WiFi):
		return m.schedule(m.nextWiFi())
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.RequestReset()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		if m.help == nil {
			m.help = help.New(m.vp.width, m.vp.height, m.helpOpts...)
		}
	case key.Matches(msg, m.keys.Signals):
		m.showSignal = !m.showSignal
		m.resize(m.termWidth, m.termHeight)
	}
	return nil
}

// nextWiFi cycles none → each preset → none.
func (m *Model) nextWiFi() criteria.Criteria {
	var tiers []string
	for _, opt := range m.filters[filterWiFi] {
		tiers = append(tiers, opt.ID)
	}
	presets := criteria.WiFiPresets(tiers)
	m.wifiIndex++
	if m.wifiIndex >= len(presets) {
		m.wifiIndex = -1
		return m.pending.WithWiFi(criteria.Preset{})
	}
	m.status = "wi-fi: " + presets[m.wifiIndex].Name
	return m.pending.WithWiFi(presets[m.wifiIndex])
}

// schedule records c as the wanted criteria and applies it once no further
// change arrives within the debounce window.
func (m *Model) schedule(c criteria.Criteria) tea.Cmd {
	m.pending = c
	m.pendingSeq++
	if m.debounce <= 0 {
		m.applyCriteria(c)
		return nil
	}
	seq := m.pendingSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return criteriaTickMsg{seq: seq}
	})
}

func (m *Model) applyCriteria(c criteria.Criteria) {
	m.pending = c
	m.input.SetValue(c.Values()[criteria.KeyName])
	m.setErr(m.ctrl.SetCriteria(c))
}

func (m *Model) scroll(delta int) {
	m.vp.scrollBy(delta, m.ctrl.ContentHeightPx())
	m.setErr(m.ctrl.Scroll())
}

func (m *Model) handleSignal(msg events.Msg) {
	m.log.Debug("signal", zap.String("type", fmt.Sprintf("%T", msg)), zap.String("event", msg.Describe()))
	m.signals.Append(eventviewer.FromSignal(msg))
	switch msg := msg.(type) {
	case events.NoDataMsg:
		m.panel.SetNoData(msg, m.keys.Reset.Help().Key)
	case events.CriteriaMsg:
		if msg.Matched > 0 {
			m.panel.Reset()
		}
		m.status = fmt.Sprintf("%d of %d hotels", msg.Matched, msg.Total)
	case events.ResetRequestMsg:
		m.wifiIndex = -1
		m.pendingSeq++
		m.applyCriteria(criteria.Default())
	case events.DatasetMsg:
		m.log.Info("dataset loaded", zap.String("request_id", msg.RequestID), zap.Int("size", msg.Size))
	}
}

func (m *Model) handleDataset(u source.Update) {
	if u.Err != nil {
		m.status = "reload failed: " + u.Err.Error()
		return
	}
	if u.Dataset == nil {
		return
	}
	if u.Dataset.Filters != nil {
		m.filters = u.Dataset.Filters
	}
	m.setErr(m.ctrl.SetData(u.Dataset.Items, u.Dataset.RequestID))
}

func (m *Model) setErr(err error) {
	m.err = err
	if err != nil {
		m.log.Warn("catalog update failed", zap.Error(err))
		m.signals.Append(eventviewer.FromError(err))
	}
}

func (m *Model) setSize(width, height int) {
	m.termWidth, m.termHeight = width, height
	m.vp.width = width
	m.vp.height = height - headerLines - footerLines
	if m.showSignal {
		m.vp.height -= signalLines
		m.signals.SetSize(width, signalLines)
	}
	if m.vp.height < 0 {
		m.vp.height = 0
	}
	m.input.SetWidth(width - 2)
	if m.help != nil {
		m.help.SetSize(width, m.vp.height)
	}
}

// resize rebuilds the window when the column count or card width changes,
// since row indices and card layout depend on it. A height-only change only
// needs a fresh window.
func (m *Model) resize(width, height int) {
	before := m.vp.Geometry()
	oldWidth := m.vp.width
	m.setSize(width, height)
	if m.ctrl == nil {
		return
	}
	if width != oldWidth || m.vp.Geometry().ColumnsPerRow != before.ColumnsPerRow {
		m.setErr(m.ctrl.SetCriteria(m.ctrl.Criteria()))
		return
	}
	m.vp.clamp(m.ctrl.ContentHeightPx())
	m.setErr(m.ctrl.Scroll())
}

// Close releases the bus subscription.
func (m *Model) Close() {
	if m.cancelBus != nil {
		m.cancelBus()
		m.cancelBus = nil
	}
}

// View renders the header, the visible slice of materialized rows and the
// footer.
func (m *Model) View() string {
	sections := []string{m.headerView(), m.bodyView()}
	if m.showSignal {
		sections = append(sections, fitLines(m.signals.View(), signalLines))
	}
	sections = append(sections, m.footerView())
	return strings.Join(sections, "\n")
}

func (m *Model) headerView() string {
	h := m.theme.Header
	query := m.ctrl.Criteria().Query()
	if query == "" {
		query = "no filters"
	}
	title := h.Title.Render("Туры") + "  " + h.Count.Render(fmt.Sprintf("%d hotels", m.ctrl.Len()))
	return title + "\n" + h.Criteria.Render(query)
}

func (m *Model) bodyView() string {
	if m.vp.height == 0 {
		return ""
	}
	if m.showHelp {
		return fitLines(m.help.View(), m.vp.height)
	}
	if !m.panel.Empty() {
		view, height := m.panel.View()
		if pad := m.vp.height - height; pad > 0 {
			view += strings.Repeat("\n", pad)
		}
		return view
	}

	top := -m.vp.offset
	lines := make([]string, 0, m.vp.height)
	for l := top; l < top+m.vp.height; l++ {
		row, within := l/card.Height, l%card.Height
		line := ""
		if h, ok := m.ctrl.Handle(row); ok {
			line = h.(*renderedRow).lines[within]
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) footerView() string {
	f := m.theme.Footer
	if m.filtering {
		return f.Prompt.Render(m.input.View()) + "\n" + f.Help.Render("enter apply • esc cancel")
	}
	status := m.status
	if m.err != nil {
		status = "error: " + m.err.Error()
	}
	var help []string
	for _, b := range m.keys.help() {
		if h := b.Help(); h.Key != "" {
			help = append(help, h.Key+" "+h.Desc)
		}
	}
	return f.Status.Render(status) + "\n" + f.Help.Render(strings.Join(help, " • "))
}

// fitLines pads or cuts view to exactly n lines.
func fitLines(view string, n int) string {
	lines := strings.Split(view, "\n")
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines[:n], "\n")
}

// Run starts the program full screen until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
