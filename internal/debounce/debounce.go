// Package debounce delays propagation of a changing value until it settles.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Debouncer propagates the last value it was given once delay has elapsed
// without a newer value arriving.
type Debouncer[T any] struct {
	delay   time.Duration
	fn      func(T)
	pending T
	armed   bool
	value   T
	seq     uint64
	cancel  context.CancelFunc
	stopped bool
	mx      sync.Mutex
}

// New returns a debouncer calling fn with settled values.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		fn:    fn,
	}
}

// Delay returns the debounce interval.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set records v and restarts the delay, cancelling any pending value.
func (d *Debouncer[T]) Set(v T) {
	d.mx.Lock()
	if d.stopped {
		d.mx.Unlock()
		return
	}
	d.cancelLocked()
	d.seq++
	d.pending, d.armed = v, true

	if d.delay <= 0 {
		seq := d.seq
		d.mx.Unlock()
		d.fire(seq)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	seq := d.seq
	d.mx.Unlock()

	go d.wait(ctx, seq)
}

// Flush propagates the pending value immediately.
func (d *Debouncer[T]) Flush() {
	d.mx.Lock()
	if !d.armed || d.stopped {
		d.mx.Unlock()
		return
	}
	d.cancelLocked()
	seq := d.seq
	d.mx.Unlock()

	d.fire(seq)
}

// Stop cancels any pending propagation. Later calls to Set are ignored.
func (d *Debouncer[T]) Stop() {
	d.mx.Lock()
	defer d.mx.Unlock()

	d.cancelLocked()
	d.armed = false
	d.stopped = true
}

// Pending returns true if a value is waiting to be propagated.
func (d *Debouncer[T]) Pending() bool {
	d.mx.Lock()
	defer d.mx.Unlock()
	return d.armed
}

// Value returns the last propagated value.
func (d *Debouncer[T]) Value() T {
	d.mx.Lock()
	defer d.mx.Unlock()
	return d.value
}

func (d *Debouncer[T]) wait(ctx context.Context, seq uint64) {
	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		d.fire(seq)
	}
}

// fire propagates the pending value if seq is still the latest generation.
func (d *Debouncer[T]) fire(seq uint64) {
	d.mx.Lock()
	if !d.armed || d.stopped || seq != d.seq {
		d.mx.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.value = v
	d.cancel = nil
	fn := d.fn
	d.mx.Unlock()

	if fn != nil {
		fn(v)
	}
}

func (d *Debouncer[T]) cancelLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
