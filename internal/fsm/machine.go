// Package fsm provides a small named-state machine with enter/update/exit
// callbacks and a pause mechanism that suspends the current state without
// exiting it. Animation states are built on top of it; AI or combat states
// can reuse it the same way.
package fsm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/trace"
)

// PausedState is the reserved name Pause switches to.
const PausedState = "paused"

// State is one node of a Machine.
// Callbacks receive the machine so a state can trigger its own transitions.
type State interface {
	Name() string
	Enter(m *Machine) error
	Update(m *Machine) error
	Exit(m *Machine) error
}

// BaseState implements State with no-op callbacks.
// Embed it and override what the state needs.
type BaseState struct {
	name string
}

// NewBaseState creates a state that does nothing but carry its name.
func NewBaseState(name string) BaseState {
	return BaseState{name: name}
}

// Name returns the state's name.
func (s BaseState) Name() string { return s.name }

// Enter does nothing.
func (s BaseState) Enter(*Machine) error { return nil }

// Update does nothing.
func (s BaseState) Update(*Machine) error { return nil }

// Exit does nothing.
func (s BaseState) Exit(*Machine) error { return nil }

// DuplicateStateError is returned by AddState for a name already registered.
type DuplicateStateError struct {
	Name string
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("fsm: state %q already registered", e.Name)
}

// Unwrap ties the error to core.ErrConfiguration.
func (e *DuplicateStateError) Unwrap() error { return core.ErrConfiguration }

// UnknownStateError is returned when a transition names an unregistered state.
type UnknownStateError struct {
	Name string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("fsm: unknown state %q", e.Name)
}

// Unwrap ties the error to core.ErrConfiguration.
func (e *UnknownStateError) Unwrap() error { return core.ErrConfiguration }

// ErrMissingPausedState is returned by Pause when no "paused" state exists.
var ErrMissingPausedState = fmt.Errorf("fsm: cannot pause without a state named %q: %w", PausedState, core.ErrConfiguration)

// Machine tracks registered states and at most one current state.
type Machine struct {
	name    string
	states  map[string]State
	current State
}

// NewMachine creates an idle machine. The name only appears in traces.
func NewMachine(name string) *Machine {
	return &Machine{
		name:   name,
		states: make(map[string]State),
	}
}

// Name returns the machine's trace name.
func (m *Machine) Name() string {
	return m.name
}

// AddState registers s under its name.
func (m *Machine) AddState(s State) error {
	if _, exists := m.states[s.Name()]; exists {
		return &DuplicateStateError{Name: s.Name()}
	}
	m.states[s.Name()] = s
	return nil
}

// MustAddStates registers every state and panics on a duplicate.
// Meant for construction code where a duplicate is a programming error.
func (m *Machine) MustAddStates(states ...State) {
	for _, s := range states {
		if err := m.AddState(s); err != nil {
			panic(err)
		}
	}
}

// Has reports whether a state with the given name is registered.
func (m *Machine) Has(name string) bool {
	_, ok := m.states[name]
	return ok
}

// States returns the registered state names, sorted.
func (m *Machine) States() []string {
	names := make([]string, 0, len(m.states))
	for name := range m.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the current state, or nil before the first transition.
func (m *Machine) Current() State {
	return m.current
}

// CurrentName returns the current state's name, or "" when idle.
func (m *Machine) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// lookup returns the named state or an UnknownStateError.
func (m *Machine) lookup(name string) (State, error) {
	s, ok := m.states[name]
	if !ok {
		return nil, &UnknownStateError{Name: name}
	}
	return s, nil
}

// GoToState exits the current state and enters the named one.
// Going to the state that is already current is a no-op unless forceIfSame.
// An unknown name leaves the machine untouched.
func (m *Machine) GoToState(name string, forceIfSame bool) error {
	if m.current != nil && !forceIfSame && m.current.Name() == name {
		return nil
	}

	next, err := m.lookup(name)
	if err != nil {
		return err
	}

	if m.current != nil {
		trace.Emit("exit", m.name, m.current.Name())
		if err := m.current.Exit(m); err != nil {
			return fmt.Errorf("fsm: exit %q: %w", m.current.Name(), err)
		}
	}

	m.current = next
	trace.Emit("enter", m.name, name)
	if err := next.Enter(m); err != nil {
		return fmt.Errorf("fsm: enter %q: %w", name, err)
	}
	return nil
}

// Update runs the current state's update callback. Idle machines do nothing.
func (m *Machine) Update() error {
	if m.current == nil {
		return nil
	}
	return m.current.Update(m)
}

// Pause switches to the "paused" state and enters it without exiting the
// current state, so the suspended state's cursor is left untouched.
func (m *Machine) Pause() error {
	paused, ok := m.states[PausedState]
	if !ok {
		return ErrMissingPausedState
	}

	m.current = paused
	trace.Emit("pause", m.name, PausedState)
	if err := paused.Enter(m); err != nil {
		return fmt.Errorf("fsm: enter %q: %w", PausedState, err)
	}
	return nil
}

// ResumeState exits the current state and switches to the named one
// without entering it, so it continues from where it was suspended.
func (m *Machine) ResumeState(name string) error {
	next, err := m.lookup(name)
	if err != nil {
		return err
	}

	if m.current != nil {
		trace.Emit("exit", m.name, m.current.Name())
		if err := m.current.Exit(m); err != nil {
			return fmt.Errorf("fsm: exit %q: %w", m.current.Name(), err)
		}
	}

	m.current = next
	trace.Emit("resume", m.name, name)
	return nil
}

// Reset puts the machine into the named state. Resetting to the current
// state does nothing. Each state clears its own cursor on Enter; the machine
// keeps no other tracking data.
func (m *Machine) Reset(name string) error {
	return m.GoToState(name, false)
}

// IsConfigError reports whether err is a configuration mistake.
func IsConfigError(err error) bool {
	return errors.Is(err, core.ErrConfiguration)
}
