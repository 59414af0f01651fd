// Package bind binds a centrally stored, mutable application state to
// consumers that only see a derived view of it.
//
// A Creator fixes how a raw store snapshot is prepared for projections and how
// the store's dispatch capability is turned into a set of prepared commands.
// Bindings declared from the Creator describe how each kind of consumer projects
// the prepared state and commands, together with its own inputs, into a view and
// a set of commands.
//
// Every mounted consumer owns one Subscription. The host evaluates it once per
// triggering event (store change, own input change, render callback change) and
// receives a *Descriptor. The same pointer is returned for as long as nothing
// observable changed, so hosts can skip downstream work with a pointer check:
//
//	creator := bind.NewCreator(bind.Options[*State, *State, Actions]{
//		PrepareState:    func(s *State) *State { return s },
//		PrepareCommands: func(d bind.Dispatch) Actions { return NewActions(d) },
//	})
//	counter := bind.Declare(creator, bind.Spec[*State, Actions, Props, View, Cmds]{
//		MapState: func(s *State, p Props) (View, error) {
//			return View{Count: s.Counters[p.ID]}, nil
//		},
//	})
//	sub := counter.Mount(func(cmd any) { _ = st.Dispatch(cmd) })
//	desc, err := sub.Evaluate(st.Snapshot(), Props{ID: "a"}, renderCounter)
//
// Evaluation is synchronous and not safe for concurrent use. The host must
// serialize calls into a given Subscription.
package bind
