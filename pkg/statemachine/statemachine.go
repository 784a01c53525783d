// Package statemachine implements Rob Pike's "state functions" pattern: a
// state is a function that performs its work and returns the next state
// function to run, or nil to park the machine. It is generic over the entity the
// states operate on so it can drive bookkeeping for more than one kind of
// object.
package statemachine

import "sync"

// StateFn is one state of entity T. It returns the state to transition to.
// Returning the same StateFn means "no transition"; returning nil leaves the
// machine parked with no current state.
type StateFn[T any] func(entity *T) StateFn[T]

// Machine holds the current state function for one entity and serializes
// transitions with a mutex, mirroring how the teacher's table/game locking
// guards state shared across goroutines.
type Machine[T any] struct {
	mu      sync.Mutex
	entity  *T
	current StateFn[T]
	name    string
}

// New creates a machine for entity starting in initial, labeled name for
// diagnostics (e.g. logging or test assertions).
func New[T any](entity *T, name string, initial StateFn[T]) *Machine[T] {
	return &Machine[T]{entity: entity, current: initial, name: name}
}

// Transition makes fn the current state and name its label, replacing
// whatever state is current; fn is not run until the next Step. Used
// when the caller (not the state function itself) decides the next state.
func (m *Machine[T]) Transition(name string, fn StateFn[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
	m.current = fn
}

// Step dispatches the current state function once and stores whatever state
// it returns.
func (m *Machine[T]) Step() {
	m.mu.Lock()
	fn := m.current
	m.mu.Unlock()
	if fn == nil {
		return
	}
	next := fn(m.entity)
	m.mu.Lock()
	m.current = next
	m.mu.Unlock()
}

// Name returns the diagnostic label set by New or the most recent Transition.
func (m *Machine[T]) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}
