// Package memo builds selectors that only recompute when their inputs change.
//
// A selector is split into input functions, which extract values from the
// prepared state and own inputs, and a combine function that derives the
// result. The combine step reruns only when at least one extracted input is
// not identical (shallow.Same) to the one seen on the previous call.
//
// Selectors are meant to be built per subscription from a memoizing factory so
// that two bindings never share a cache:
//
//	MemoizeMapState: func(*State, Props) bind.MapStateFunc[*State, Props, View] {
//		sel := memo.New1(
//			func(s *State, p Props) []Todo { return s.Todos },
//			func(todos []Todo) View { return View{Visible: filter(todos)} },
//		)
//		return func(s *State, p Props) (View, error) {
//			return sel.Select(s, p), nil
//		}
//	}
package memo

import "github.com/delaneyj/storebind/shallow"

type CacheState int

const (
	CacheDirty CacheState = iota // no result yet, next Select recomputes
	CacheClean                   // result valid for the cached inputs
)

type Selector[S, P, V any] struct {
	inputs     []func(S, P) any
	combine    func(args ...any) V
	state      CacheState
	args       []any
	value      V
	recomputes int
}

func newSelector[S, P, V any](combine func(args ...any) V, inputs ...func(S, P) any) *Selector[S, P, V] {
	return &Selector[S, P, V]{
		inputs:  inputs,
		combine: combine,
		state:   CacheDirty,
		args:    make([]any, len(inputs)),
	}
}

// arg tolerates nil interface inputs.
func arg[T any](args []any, i int) T {
	v, _ := args[i].(T)
	return v
}

// New1 returns a selector over a single input.
func New1[S, P, A, V any](in func(S, P) A, combine func(A) V) *Selector[S, P, V] {
	return newSelector(
		func(args ...any) V {
			return combine(arg[A](args, 0))
		},
		func(s S, p P) any { return in(s, p) },
	)
}

// New2 returns a selector over two inputs.
func New2[S, P, A, B, V any](inA func(S, P) A, inB func(S, P) B, combine func(A, B) V) *Selector[S, P, V] {
	return newSelector(
		func(args ...any) V {
			return combine(arg[A](args, 0), arg[B](args, 1))
		},
		func(s S, p P) any { return inA(s, p) },
		func(s S, p P) any { return inB(s, p) },
	)
}

// New3 returns a selector over three inputs.
func New3[S, P, A, B, C, V any](inA func(S, P) A, inB func(S, P) B, inC func(S, P) C, combine func(A, B, C) V) *Selector[S, P, V] {
	return newSelector(
		func(args ...any) V {
			return combine(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2))
		},
		func(s S, p P) any { return inA(s, p) },
		func(s S, p P) any { return inB(s, p) },
		func(s S, p P) any { return inC(s, p) },
	)
}

// Select extracts the inputs and returns the cached result when all of them
// are identical to the previous call.
func (s *Selector[S, P, V]) Select(state S, props P) V {
	next := make([]any, len(s.inputs))
	changed := s.state == CacheDirty
	for i, in := range s.inputs {
		next[i] = in(state, props)
		if !changed && !shallow.Same(next[i], s.args[i]) {
			changed = true
		}
	}
	if !changed {
		return s.value
	}

	s.args = next
	s.value = s.combine(next...)
	s.state = CacheClean
	s.recomputes++
	return s.value
}

// Recomputes reports how many times the combine function has run.
func (s *Selector[S, P, V]) Recomputes() int {
	return s.recomputes
}

// Reset drops the cached result so the next Select recomputes.
func (s *Selector[S, P, V]) Reset() {
	var zero V
	s.value = zero
	s.args = make([]any, len(s.inputs))
	s.state = CacheDirty
}
