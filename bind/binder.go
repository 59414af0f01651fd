package bind

// ActionBinder prepares commands exactly once.
type ActionBinder[PC any] struct {
	prepare  func(Dispatch) PC
	prepared bool
	commands PC
}

func NewActionBinder[PC any](prepare func(Dispatch) PC) *ActionBinder[PC] {
	return &ActionBinder[PC]{prepare: prepare}
}

// EnsurePrepared returns the prepared commands, building them from dispatch on
// the first call. Later calls ignore dispatch.
func (b *ActionBinder[PC]) EnsurePrepared(dispatch Dispatch) PC {
	if !b.prepared {
		b.commands = b.prepare(dispatch)
		b.prepared = true
	}
	return b.commands
}

func (b *ActionBinder[PC]) Prepared() bool {
	return b.prepared
}
