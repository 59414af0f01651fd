package bind

import "github.com/delaneyj/storebind/shallow"

// Changes records what one evaluation cycle detected.
type Changes struct {
	Snapshot  bool
	OwnInputs bool
	Callback  bool
	View      bool
	Commands  bool
	// Forced is set when nothing tracked changed but the host asked again, so
	// the host's own re-render still reaches the consumer.
	Forced bool
}

// Observable reports whether the cycle produced a new descriptor.
func (c Changes) Observable() bool {
	return c.View || c.Commands || c.Callback || c.Forced
}

// Subscription holds the cached inputs and outputs of one mounted consumer.
type Subscription[S comparable, PS, PC, P, V, C any] struct {
	binding  *Binding[S, PS, PC, P, V, C]
	dispatch Dispatch

	mapState    MapStateFunc[PS, P, V]
	specialized bool
	commands    *ActionBinder[PC]

	evaluated bool
	snapshot  S
	own       P
	render    RenderFunc[V, C]

	hasView        bool
	view           V
	suppressed     bool
	hasCommands    bool
	mappedCommands C

	// the first redundant evaluation after mount is the host's double check
	redundantSeen bool
	descriptor    *Descriptor[V, C]
	last          Changes
	closed        bool
}

// Evaluate runs one cycle and returns the descriptor to forward downstream.
// The previous descriptor pointer is returned unchanged when nothing
// observable changed. Errors from projections are returned unmodified, except
// the suppress signal which turns into a suppressed descriptor.
func (s *Subscription[S, PS, PC, P, V, C]) Evaluate(snapshot S, own P, render RenderFunc[V, C]) (*Descriptor[V, C], error) {
	if s.closed {
		return nil, ErrClosed
	}
	first := !s.evaluated
	s.evaluated = true

	var ch Changes
	ch.Snapshot = first || snapshot != s.snapshot
	s.snapshot = snapshot

	ch.OwnInputs = first || !shallow.Equal(s.own, own)
	if ch.OwnInputs {
		s.own = own
	}

	ch.Callback = first || !shallow.Same(s.render, render)
	s.render = render

	var (
		prepared     PS
		havePrepared bool
	)
	prepareState := func() PS {
		if !havePrepared {
			prepared = s.binding.creator.prepareState(snapshot)
			havePrepared = true
		}
		return prepared
	}

	if factory := s.binding.spec.MemoizeMapState; factory != nil && !s.specialized {
		s.mapState = factory(prepareState(), s.own)
		s.specialized = true
	}

	// a projection that has never produced a result runs again even when
	// nothing changed, so a failed first cycle never yields a made-up view
	if s.mapState != nil && (ch.Snapshot || ch.OwnInputs || (!s.hasView && !s.suppressed)) {
		view, err := s.mapState(prepareState(), s.own)
		switch {
		case IsSuppress(err):
			if !s.suppressed {
				var zero V
				s.view = zero
				s.hasView = false
				s.suppressed = true
				ch.View = true
			}
		case err != nil:
			s.last = ch
			return nil, err
		case s.suppressed || !s.hasView || !shallow.Equal(s.view, view):
			s.view = view
			s.hasView = true
			s.suppressed = false
			ch.View = true
		}
	}

	if mapCommands := s.binding.spec.MapCommands; mapCommands != nil && (ch.OwnInputs || !s.hasCommands) {
		pc := s.commands.EnsurePrepared(s.dispatch)
		cmds, err := mapCommands(pc, s.own)
		if err != nil {
			s.last = ch
			return nil, err
		}
		if !s.hasCommands || !shallow.Equal(s.mappedCommands, cmds) {
			s.mappedCommands = cmds
			s.hasCommands = true
			ch.Commands = true
		}
	}

	if !ch.View && !ch.Commands && !ch.Callback && !ch.Snapshot && !ch.OwnInputs {
		if s.redundantSeen {
			ch.Forced = true
		} else {
			s.redundantSeen = true
		}
	}

	if ch.Observable() || s.descriptor == nil {
		s.descriptor = &Descriptor[V, C]{
			View:       s.view,
			Commands:   s.mappedCommands,
			Render:     render,
			Suppressed: s.suppressed,
		}
	}
	s.last = ch
	return s.descriptor, nil
}

// Descriptor returns the last descriptor produced, nil before the first
// successful evaluation.
func (s *Subscription[S, PS, PC, P, V, C]) Descriptor() *Descriptor[V, C] {
	return s.descriptor
}

// LastChanges returns what the most recent evaluation detected.
func (s *Subscription[S, PS, PC, P, V, C]) LastChanges() Changes {
	return s.last
}

// Close releases every cached reference. Later evaluations fail with ErrClosed.
func (s *Subscription[S, PS, PC, P, V, C]) Close() {
	*s = Subscription[S, PS, PC, P, V, C]{closed: true}
}

func (s *Subscription[S, PS, PC, P, V, C]) Closed() bool {
	return s.closed
}
