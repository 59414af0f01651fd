package bind

// Dispatch sends a command to the store.
type Dispatch func(command any)

// Options configures a Creator.
type Options[S comparable, PS, PC any] struct {
	// PrepareState turns a raw snapshot into the state handed to projections.
	PrepareState func(snapshot S) PS
	// PrepareCommands builds the commands handed to command projections. It
	// runs at most once per subscription.
	PrepareCommands func(dispatch Dispatch) PC
}

type Creator[S comparable, PS, PC any] struct {
	prepareState    func(S) PS
	prepareCommands func(Dispatch) PC
}

func NewCreator[S comparable, PS, PC any](opts Options[S, PS, PC]) *Creator[S, PS, PC] {
	c := &Creator[S, PS, PC]{
		prepareState:    opts.PrepareState,
		prepareCommands: opts.PrepareCommands,
	}
	if c.prepareState == nil {
		c.prepareState = func(S) PS {
			var zero PS
			return zero
		}
	}
	if c.prepareCommands == nil {
		c.prepareCommands = func(Dispatch) PC {
			var zero PC
			return zero
		}
	}
	return c
}

// MakeCreator is the former name of NewCreator.
//
// Deprecated: use NewCreator. MakeCreator always fails.
func MakeCreator[S comparable, PS, PC any](Options[S, PS, PC]) (*Creator[S, PS, PC], error) {
	return nil, ErrRemovedEntryPoint
}
