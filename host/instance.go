package host

import (
	"bytes"
	"fmt"

	"github.com/delaneyj/storebind/bind"
	"github.com/delaneyj/storebind/store"
)

// Instance is one mounted consumer of a binding.
type Instance[S comparable, PS, PC, P, V, C any] struct {
	id     uint64
	host   *Host[S]
	sub    *bind.Subscription[S, PS, PC, P, V, C]
	unsub  store.Unsubscriber
	own    P
	render bind.RenderFunc[V, C]

	last    *bind.Descriptor[V, C]
	out     bytes.Buffer
	visible bool
	renders int
	evals   int
	err     error
}

// Mount creates an instance, renders it and subscribes it to the store.
//
// After subscribing the instance is evaluated a second time to catch changes
// dispatched between the first render and the subscription. When nothing
// changed in between, the subscription absorbs that evaluation.
func Mount[S comparable, PS, PC, P, V, C any](
	h *Host[S],
	b *bind.Binding[S, PS, PC, P, V, C],
	own P,
	render bind.RenderFunc[V, C],
) (*Instance[S, PS, PC, P, V, C], error) {
	h.nextID++
	inst := &Instance[S, PS, PC, P, V, C]{
		id:     h.nextID,
		host:   h,
		own:    own,
		render: render,
	}
	inst.sub = b.Mount(h.dispatcher(inst.id))

	if err := inst.evaluate(); err != nil {
		inst.sub.Close()
		return nil, fmt.Errorf("mount instance %d: %w", inst.id, err)
	}
	h.mounted.Add(inst.id)
	inst.unsub = h.store.Subscribe(inst.onStoreChange)
	h.cfg.logger.Printf("instance %d mounted", inst.id)

	if err := inst.evaluate(); err != nil {
		inst.Unmount()
		return nil, fmt.Errorf("mount instance %d: %w", inst.id, err)
	}
	return inst, nil
}

func (i *Instance[S, PS, PC, P, V, C]) ID() uint64 {
	return i.id
}

// Update re-renders the instance with new own inputs and render callback, as
// a parent re-render would.
func (i *Instance[S, PS, PC, P, V, C]) Update(own P, render bind.RenderFunc[V, C]) error {
	if i.sub.Closed() {
		return bind.ErrClosed
	}
	i.own = own
	i.render = render
	return i.evaluate()
}

// Unmount unsubscribes from the store and releases the subscription.
func (i *Instance[S, PS, PC, P, V, C]) Unmount() {
	if i.unsub != nil {
		i.unsub()
		i.unsub = nil
	}
	i.sub.Close()
	i.last = nil
	i.host.mounted.Remove(i.id)
	i.host.cfg.logger.Printf("instance %d unmounted", i.id)
}

// Output returns what the latest render wrote.
func (i *Instance[S, PS, PC, P, V, C]) Output() string {
	return i.out.String()
}

// Visible reports whether the latest render produced output.
func (i *Instance[S, PS, PC, P, V, C]) Visible() bool {
	return i.visible
}

// Renders counts how many times the render step ran.
func (i *Instance[S, PS, PC, P, V, C]) Renders() int {
	return i.renders
}

// Evaluations counts successful and failed subscription evaluations.
func (i *Instance[S, PS, PC, P, V, C]) Evaluations() int {
	return i.evals
}

// Descriptor returns the descriptor of the latest render.
func (i *Instance[S, PS, PC, P, V, C]) Descriptor() *bind.Descriptor[V, C] {
	return i.last
}

// Err returns the error of the latest store-triggered evaluation, if any.
func (i *Instance[S, PS, PC, P, V, C]) Err() error {
	return i.err
}

func (i *Instance[S, PS, PC, P, V, C]) onStoreChange() {
	if i.sub.Closed() {
		return
	}
	i.err = i.evaluate()
	if i.err != nil {
		i.host.fail(i.id, i.err)
	}
}

func (i *Instance[S, PS, PC, P, V, C]) evaluate() error {
	i.evals++
	d, err := i.sub.Evaluate(i.host.store.Snapshot(), i.own, i.render)
	if err != nil {
		return err
	}
	if d == i.last {
		return nil
	}

	ch := i.sub.LastChanges()
	i.host.cfg.logger.Printf(
		"instance %d render view=%t commands=%t callback=%t forced=%t",
		i.id, ch.View, ch.Commands, ch.Callback, ch.Forced,
	)

	// a failed render leaves last untouched so the next evaluation retries it
	i.out.Reset()
	i.renders++
	visible, err := bind.Render(&i.out, d)
	i.visible = visible
	if err != nil {
		return err
	}
	i.last = d
	return nil
}
