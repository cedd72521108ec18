package provisioning

import (
	"sync"

	"github.com/ardnew/emberhal/pkg"
)

// ChangeFunc is invoked exactly once per successful transition, with
// the state the machine left and the state it entered. A FACTORY_RESET
// received while already IDLE is not a transition and does not invoke
// it.
type ChangeFunc func(oldState, newState State)

// Machine is the provisioning state machine. Transitions are totally
// ordered: ProcessEvent's callback runs on whichever goroutine called
// it and completes before ProcessEvent returns.
type Machine struct {
	mu       sync.Mutex
	state    State
	onChange ChangeFunc
}

// NewMachine creates a machine starting at StateIdle.
func NewMachine(onChange ChangeFunc) *Machine {
	return &Machine{state: StateIdle, onChange: onChange}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ProcessEvent advances the machine per the fixed transition table.
// FACTORY_RESET is accepted from any state and always targets IDLE. An
// event with no edge from the current state returns
// [pkg.ErrNotPermitted] and leaves the state, and the callback,
// untouched.
func (m *Machine) ProcessEvent(event Event) error {
	m.mu.Lock()

	if event == EventFactoryReset {
		old := m.state
		m.state = StateIdle
		cb := m.onChange
		m.mu.Unlock()
		if old != StateIdle && cb != nil {
			cb(old, StateIdle)
		}
		return nil
	}

	next, ok := transitions[stateEvent{m.state, event}]
	if !ok {
		m.mu.Unlock()
		return pkg.ErrNotPermitted
	}

	old := m.state
	m.state = next
	cb := m.onChange
	m.mu.Unlock()

	if cb != nil {
		cb(old, next)
	}
	return nil
}
