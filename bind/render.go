package bind

import "io"

// RenderFunc writes the consumer's output for a view and its commands. The
// engine never calls it itself, it is only tracked by identity and forwarded.
type RenderFunc[V, C any] func(w io.Writer, view V, commands C) error

// Descriptor is what a Subscription forwards downstream. Hosts compare
// descriptors by pointer: a new pointer means the consumer must render again.
type Descriptor[V, C any] struct {
	View     V
	Commands C
	Render   RenderFunc[V, C]
	// Suppressed means the state projection asked for no output. View holds
	// the zero value when set.
	Suppressed bool
}

// Render is the final render step. It writes nothing and reports false when
// the descriptor is suppressed or carries no render callback.
func Render[V, C any](w io.Writer, d *Descriptor[V, C]) (bool, error) {
	if d == nil || d.Suppressed || d.Render == nil {
		return false, nil
	}
	if err := d.Render(w, d.View, d.Commands); err != nil {
		return true, err
	}
	return true, nil
}
