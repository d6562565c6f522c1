// Package debounce collapses bursts of values into the one that stayed put.
//
// A Debouncer forwards a value only after no newer value arrived for the
// whole window. Every superseded value is dropped without a call.
package debounce

import (
	"sync"
	"time"

	"github.com/BrandonKowalski/navkit/pkg/navkit/dispatch"
)

// Clock schedules callbacks. *dispatch.Loop implements it and runs the
// callback on the loop; RealClock runs it on a timer goroutine.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) dispatch.Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) dispatch.Timer {
	return time.AfterFunc(d, fn)
}

// RealClock uses time.AfterFunc.
var RealClock Clock = realClock{}

// Debouncer delivers the last pushed value once it has been stable for the
// window. Push and Stop are safe from any goroutine.
type Debouncer[T any] struct {
	window time.Duration
	clock  Clock
	fn     func(T)

	mu      sync.Mutex
	timer   dispatch.Timer
	seq     uint64
	stopped bool
}

// New creates a Debouncer calling fn with each stable value.
func New[T any](window time.Duration, clock Clock, fn func(T)) *Debouncer[T] {
	if clock == nil {
		clock = RealClock
	}
	return &Debouncer[T]{window: window, clock: clock, fn: fn}
}

// Push records v and restarts the window.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.window, func() {
		d.fire(seq, v)
	})
}

func (d *Debouncer[T]) fire(seq uint64, v T) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Pending reports whether a value is waiting for its window to pass.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop drops any pending value. Later pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
