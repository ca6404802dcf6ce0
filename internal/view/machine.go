package view

import (
	"errors"
	"fmt"
)

// EmptyDescriptionMessage is shown when the user submits a blank description
const EmptyDescriptionMessage = "Please describe the outfit you're looking for!"

var ErrInvalidTransition = errors.New("invalid view state transition")

// State is the state of the outfit finder view
type State int

const (
	StateIdle State = iota
	StateLoading
	StateResults
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Machine tracks the view state of a single search.
// Every transition is guarded; a rejected transition leaves the machine unchanged.
type Machine struct {
	state       State
	description string
	page        Page
	err         string
}

// NewMachine returns a machine in the idle state
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

func (m *Machine) State() State         { return m.state }
func (m *Machine) Description() string  { return m.description }
func (m *Machine) Page() Page           { return m.page }
func (m *Machine) ErrorMessage() string { return m.err }

// Submit starts a search: Idle, Results or Error -> Loading.
// The previous results and error are cleared.
func (m *Machine) Submit(description string) error {
	if m.state == StateLoading {
		return m.invalid("submit")
	}
	m.state = StateLoading
	m.description = description
	m.page = Page{}
	m.err = ""
	return nil
}

// Reject shows a validation error without starting a search: Idle, Results or Error -> Error.
func (m *Machine) Reject(message string) error {
	if m.state == StateLoading {
		return m.invalid("reject")
	}
	m.state = StateError
	m.page = Page{}
	m.err = message
	return nil
}

// Succeed completes a search: Loading -> Results
func (m *Machine) Succeed(page Page) error {
	if m.state != StateLoading {
		return m.invalid("succeed")
	}
	m.state = StateResults
	m.page = page
	return nil
}

// Fail aborts a search with a user-facing message: Loading -> Error
func (m *Machine) Fail(message string) error {
	if m.state != StateLoading {
		return m.invalid("fail")
	}
	m.state = StateError
	m.err = message
	return nil
}

func (m *Machine) invalid(event string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, m.state)
}
