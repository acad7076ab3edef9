// Package events defines the signals the catalog produces and the bus that
// carries them to subscribers.
package events

import (
	"fmt"
	"strings"
)

// ComponentID identifies the component instance emitting an event.
type ComponentID string

// Msg is any event carried by the Bus. Describe renders it for logs.
type Msg interface {
	Describe() string
}

// DatasetMsg announces that the raw dataset was replaced.
type DatasetMsg struct {
	Component ComponentID
	RequestID string
	Size      int
}

// Describe implements Msg.
func (m DatasetMsg) Describe() string {
	return fmt.Sprintf(`request:%q size:%d`, m.RequestID, m.Size)
}

// CriteriaMsg announces that the filtered dataset was recomputed for new
// criteria.
type CriteriaMsg struct {
	Component ComponentID
	Query     string
	Matched   int
	Total     int
}

// Describe implements Msg.
func (m CriteriaMsg) Describe() string {
	return fmt.Sprintf(`query:%q matched:%d total:%d`, m.Query, m.Matched, m.Total)
}

// WindowMsg reports a change of the materialized window. Reset is true when
// the window was rebuilt from scratch rather than diffed.
type WindowMsg struct {
	Component ComponentID
	Added     []int
	Removed   []int
	Rows      []int
	Reset     bool
}

// Describe implements Msg.
func (m WindowMsg) Describe() string {
	return fmt.Sprintf(`rows:%v add:%v remove:%v reset:%t`, m.Rows, m.Added, m.Removed, m.Reset)
}

// NoDataMsg is raised when filtering left nothing to show. ActiveFields names
// the constraints responsible so a presentation layer can offer to reset
// them.
type NoDataMsg struct {
	Component    ComponentID
	ActiveFields []string
	DatasetSize  int
}

// Describe implements Msg.
func (m NoDataMsg) Describe() string {
	return fmt.Sprintf(`fields:%q dataset:%d`, strings.Join(m.ActiveFields, ","), m.DatasetSize)
}

// CanReset reports whether clearing the criteria could bring rows back.
func (m NoDataMsg) CanReset() bool {
	return len(m.ActiveFields) > 0 && m.DatasetSize > 0
}

// ResetRequestMsg asks the criteria source to reset to its defaults.
type ResetRequestMsg struct {
	Component ComponentID
}

// Describe implements Msg.
func (m ResetRequestMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}
