// Package host mounts bindings against a store and re-renders them only when
// their subscription reports an observable change.
//
// It plays the part of a rendering framework: each mounted Instance owns one
// bind.Subscription, evaluates it once per store notification and once per
// Update, and keeps the output of its latest render.
package host

import (
	"io"
	"log"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/storebind/store"
)

// Store is the collaborator a Host binds to.
type Store[S comparable] interface {
	Snapshot() S
	Dispatch(command any) error
	Subscribe(fn func()) store.Unsubscriber
}

// ErrorHandler receives errors that have no caller to return to, such as a
// projection failing during a store notification.
type ErrorHandler func(instanceID uint64, err error)

type config struct {
	logger  *log.Logger
	onError ErrorHandler
}

type Option func(*config)

// WithLogger logs mounts, renders and failures.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *config) {
		c.onError = fn
	}
}

type Host[S comparable] struct {
	store   Store[S]
	cfg     config
	nextID  uint64
	mounted mapset.Set[uint64]
}

func New[S comparable](st Store[S], opts ...Option) *Host[S] {
	h := &Host[S]{
		store:   st,
		mounted: mapset.NewThreadUnsafeSet[uint64](),
	}
	for _, opt := range opts {
		opt(&h.cfg)
	}
	if h.cfg.logger == nil {
		h.cfg.logger = log.New(io.Discard, "", 0)
	}
	return h
}

// Mounted returns the number of mounted instances.
func (h *Host[S]) Mounted() int {
	return h.mounted.Cardinality()
}

// IsMounted reports whether the instance id is still mounted.
func (h *Host[S]) IsMounted(id uint64) bool {
	return h.mounted.Contains(id)
}

func (h *Host[S]) fail(id uint64, err error) {
	h.cfg.logger.Printf("instance %d: %v", id, err)
	if h.cfg.onError != nil {
		h.cfg.onError(id, err)
	}
}

func (h *Host[S]) dispatcher(id uint64) func(command any) {
	return func(command any) {
		if err := h.store.Dispatch(command); err != nil {
			h.fail(id, err)
		}
	}
}
