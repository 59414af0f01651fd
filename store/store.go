// Package store is an in-memory state container driven by reducers.
//
// The current state is exposed as an opaque snapshot. Dispatching a command
// runs the reducer, and listeners are told when the reducer returned a
// different snapshot (compared with ==). Reducers must treat snapshots as
// immutable and return a new value to signal a change.
//
// A Store is not safe for concurrent use.
package store

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	ErrNilReducer         = errors.New("store: reducer is nil")
	ErrDispatchInReducer  = errors.New("store: reducers may not dispatch")
	ErrUnknownCommandType = errors.New("store: unknown command")
)

// Reducer returns the next snapshot for a command.
type Reducer[S any] func(state S, command any) (S, error)

// Unsubscriber stops a listener. Calling it more than once is a no-op.
type Unsubscriber func()

type listener struct {
	fn func()
}

type Store[S comparable] struct {
	state     S
	reducer   Reducer[S]
	reducing  bool
	version   uint64
	listeners []*listener
	active    mapset.Set[*listener]
}

func New[S comparable](initial S, reducer Reducer[S]) (*Store[S], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	return &Store[S]{
		state:   initial,
		reducer: reducer,
		active:  mapset.NewThreadUnsafeSet[*listener](),
	}, nil
}

// Snapshot returns the current state.
func (s *Store[S]) Snapshot() S {
	return s.state
}

// Version counts snapshot changes since creation.
func (s *Store[S]) Version() uint64 {
	return s.version
}

// Dispatch runs the reducer and notifies listeners if the snapshot changed.
// Listeners added or removed while notifying only take effect on the next
// change.
func (s *Store[S]) Dispatch(command any) error {
	if s.reducing {
		return ErrDispatchInReducer
	}

	next, err := s.reduce(command)
	if err != nil {
		return fmt.Errorf("dispatch %T: %w", command, err)
	}
	if next == s.state {
		return nil
	}
	s.state = next
	s.version++

	current := make([]*listener, len(s.listeners))
	copy(current, s.listeners)
	for _, l := range current {
		l.fn()
	}
	return nil
}

func (s *Store[S]) reduce(command any) (S, error) {
	s.reducing = true
	defer func() { s.reducing = false }()
	return s.reducer(s.state, command)
}

// Subscribe registers fn to be called after every snapshot change.
func (s *Store[S]) Subscribe(fn func()) Unsubscriber {
	l := &listener{fn: fn}
	s.active.Add(l)
	s.listeners = append(s.listeners, l)

	return func() {
		if !s.active.Contains(l) {
			return
		}
		s.active.Remove(l)
		for i, other := range s.listeners {
			if other == l {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}

// Listeners returns the number of registered listeners.
func (s *Store[S]) Listeners() int {
	return s.active.Cardinality()
}

// Combine chains reducers, feeding each the output of the previous one.
// A reducer that does not handle a command should return ErrUnknownCommandType,
// which Combine skips. The command fails when no reducer handled it.
func Combine[S any](reducers ...Reducer[S]) Reducer[S] {
	return func(state S, command any) (S, error) {
		handled := false
		for _, r := range reducers {
			next, err := r(state, command)
			if errors.Is(err, ErrUnknownCommandType) {
				continue
			}
			if err != nil {
				return state, err
			}
			state = next
			handled = true
		}
		if !handled {
			return state, fmt.Errorf("%w %T", ErrUnknownCommandType, command)
		}
		return state, nil
	}
}
