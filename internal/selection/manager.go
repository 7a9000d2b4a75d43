// Package selection tracks which checklist item is open for detail display
// and the lifecycle of advisory requests made for it.
package selection

import (
	"errors"
	"sync"
)

// ErrNoSelection is returned when advisory is requested without a selected item.
var ErrNoSelection = errors.New("no item selected")

// ErrAdvisoryInFlight is returned when an advisory request is already pending.
var ErrAdvisoryInFlight = errors.New("advisory request already in flight")

// State is the selection/advisory lifecycle phase.
type State string

const (
	StateUnselected       State = "unselected"
	StateSelected         State = "selected"
	StateAwaitingAdvisory State = "awaitingAdvisory"
	StateAdvisoryReady    State = "advisoryReady"
)

// Selection is a snapshot of the current selection and its phase.
type Selection struct {
	SectionID string `json:"sectionId"`
	ItemID    string `json:"itemId"`
	State     State  `json:"state"`
}

// Manager guards the single selection and issues tokens that tie advisory
// results back to the selection that requested them. A result arriving with a
// stale token is discarded, so a late response can never overwrite the display
// of a newer selection.
type Manager struct {
	mu      sync.RWMutex
	current Selection
	token   int64
}

// NewManager creates a manager with nothing selected.
func NewManager() *Manager {
	return &Manager{
		current: Selection{State: StateUnselected},
	}
}

// Select makes the given item current from any state. Any previously fetched
// advisory content is discarded immediately and pending requests become stale.
func (m *Manager) Select(sectionID, itemID string) Selection {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token++
	m.current = Selection{
		SectionID: sectionID,
		ItemID:    itemID,
		State:     StateSelected,
	}
	return m.current
}

// Clear drops the selection and invalidates pending advisory requests.
func (m *Manager) Clear() Selection {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token++
	m.current = Selection{State: StateUnselected}
	return m.current
}

// BeginAdvisory moves the selection into the awaiting phase and returns the
// token the eventual result must present. Re-requesting from advisoryReady is
// allowed and discards the old content at this point.
func (m *Manager) BeginAdvisory() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.current.State {
	case StateUnselected:
		return 0, ErrNoSelection
	case StateAwaitingAdvisory:
		return 0, ErrAdvisoryInFlight
	}

	m.current.State = StateAwaitingAdvisory
	return m.token, nil
}

// CompleteAdvisory moves to advisoryReady if token is still current. It
// reports whether the result was accepted; stale results must be discarded by
// the caller without any observable effect.
func (m *Manager) CompleteAdvisory(token int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != m.token || m.current.State != StateAwaitingAdvisory {
		return false
	}
	m.current.State = StateAdvisoryReady
	return true
}

// Current returns a snapshot of the selection.
func (m *Manager) Current() Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
