// Package events bridges catalog bus signals and dataset reloads into Bubble
// Tea messages.
package events

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	catalogevents "tableflip.dev/tourcatalog/pkg/events"
	"tableflip.dev/tourcatalog/pkg/source"
)

// BusMsg wraps a signal received from the catalog bus.
type BusMsg struct {
	Msg catalogevents.Msg
}

// Describe renders the wrapped signal for logs.
func (m BusMsg) Describe() string {
	if m.Msg == nil {
		return "<nil>"
	}
	return m.Msg.Describe()
}

// BusClosedMsg reports that the bus subscription ended.
type BusClosedMsg struct{}

// WaitForBus returns a command that blocks for the next bus signal. Callers
// re-issue it after handling each BusMsg.
func WaitForBus(ch <-chan catalogevents.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if msg, ok := <-ch; ok {
			return BusMsg{Msg: msg}
		}
		return BusClosedMsg{}
	}
}

// DatasetMsg carries a dataset reloaded from disk.
type DatasetMsg struct {
	Update source.Update
}

// WatchStoppedMsg reports that the dataset watcher closed its channel.
type WatchStoppedMsg struct{}

// WaitForDataset returns a command that blocks for the next dataset reload.
func WaitForDataset(ch <-chan source.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if u, ok := <-ch; ok {
			return DatasetMsg{Update: u}
		}
		return WatchStoppedMsg{}
	}
}
