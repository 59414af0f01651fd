package bind

// MapStateFunc projects prepared state and own inputs into a view. Returning
// Suppress() asks for no output this cycle.
type MapStateFunc[PS, P, V any] func(state PS, own P) (V, error)

// MemoizeMapStateFunc is called once per subscription with the first prepared
// state and own inputs. The projection it returns replaces MapState for the
// rest of that subscription's life.
type MemoizeMapStateFunc[PS, P, V any] func(state PS, own P) MapStateFunc[PS, P, V]

// MapCommandsFunc projects prepared commands and own inputs into the commands
// handed to the render callback.
type MapCommandsFunc[PC, P, C any] func(commands PC, own P) (C, error)

// Spec declares how one kind of consumer derives its view and commands. Every
// field is optional.
type Spec[PS, PC, P, V, C any] struct {
	MapState        MapStateFunc[PS, P, V]
	MemoizeMapState MemoizeMapStateFunc[PS, P, V]
	MapCommands     MapCommandsFunc[PC, P, C]
}

// Binding is a declared consumer kind. Mount it once per consumer instance.
type Binding[S comparable, PS, PC, P, V, C any] struct {
	creator *Creator[S, PS, PC]
	spec    Spec[PS, PC, P, V, C]
}

func Declare[S comparable, PS, PC, P, V, C any](c *Creator[S, PS, PC], spec Spec[PS, PC, P, V, C]) *Binding[S, PS, PC, P, V, C] {
	return &Binding[S, PS, PC, P, V, C]{
		creator: c,
		spec:    spec,
	}
}

// Mount creates the subscription for one consumer instance. The dispatch
// capability is only used to prepare commands, lazily and at most once.
func (b *Binding[S, PS, PC, P, V, C]) Mount(dispatch Dispatch) *Subscription[S, PS, PC, P, V, C] {
	return &Subscription[S, PS, PC, P, V, C]{
		binding:  b,
		dispatch: dispatch,
		mapState: b.spec.MapState,
		commands: NewActionBinder(b.creator.prepareCommands),
	}
}
