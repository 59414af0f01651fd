package bind

import (
	"errors"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrRemovedEntryPoint is returned by construction entry points that no
	// longer exist under their old name.
	ErrRemovedEntryPoint = errors.New("bind: MakeCreator was renamed to NewCreator")

	// ErrClosed is returned when evaluating a Subscription after Close.
	ErrClosed = errors.New("bind: subscription is closed")
)

// Recognized by marker rather than by type, so projections may return their
// own error types that carry it.
var suppressMarker = xxhash.Sum64String("storebind.SUPPRESS") & 0x7fffffffffffffff

// SuppressSignaler is implemented by errors that ask for no output.
type SuppressSignaler interface {
	SuppressMarker() uint64
}

type suppressSignal struct{}

func (suppressSignal) Error() string          { return "bind: render suppressed" }
func (suppressSignal) SuppressMarker() uint64 { return suppressMarker }

// Suppress returns the signal a state projection returns to render nothing for
// the current cycle.
func Suppress() error {
	return suppressSignal{}
}

// IsSuppress reports whether err, or any error it wraps, is the suppress signal.
func IsSuppress(err error) bool {
	var s SuppressSignaler
	return errors.As(err, &s) && s.SuppressMarker() == suppressMarker
}
