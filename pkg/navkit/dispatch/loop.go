// Package dispatch provides the serialized execution context that owns all
// navigation and overlay state.
//
// Router, popup controller and payment sessions are plain structs without
// locks. Everything that mutates them runs on a single Loop goroutine.
// Background work (browser callbacks, timers, feature completions) reaches
// that state only by posting a function to the Loop.
//
//	loop := dispatch.New()
//	go loop.Run(ctx)
//
//	// from any goroutine
//	loop.Post(func() { r.Push(router.Cart{}) })
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/navkit/pkg/navkit/constants"
	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
)

// ErrStopped is returned by Do when the loop is not accepting work.
var ErrStopped = errors.New("dispatch: loop stopped")

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets the capacity of the pending work queue.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithLogger overrides the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// Loop runs posted functions one at a time, in posting order.
type Loop struct {
	queue     chan func()
	queueSize int
	done      chan struct{}
	stopped   atomic.Bool
	running   atomic.Bool
	goid      atomic.Uint64
	logger    *slog.Logger
}

// New creates a Loop. Work may be posted before Run is called; it executes
// once Run starts.
func New(opts ...Option) *Loop {
	l := &Loop{
		queueSize: constants.DefaultLoopQueueSize,
		done:      make(chan struct{}),
		logger:    internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.queue = make(chan func(), l.queueSize)
	return l
}

// Run executes queued work until ctx is cancelled or Stop is called.
// It must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("dispatch: loop already running")
	}
	l.goid.Store(currentGoroutineID())
	defer l.goid.Store(0)

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			l.execute(fn)
		}
	}
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatched function panicked", "panic", r)
		}
	}()
	fn()
}

// Stop makes the loop exit. Queued work that has not started is discarded.
func (l *Loop) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.done)
	}
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	return l.stopped.Load()
}

// Post enqueues fn. It returns false if the loop has stopped. Post blocks
// while the queue is full.
func (l *Loop) Post(fn func()) bool {
	if l.stopped.Load() {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to return. Called from the loop
// itself it runs fn inline.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if l.OnLoop() {
		fn()
		return nil
	}

	finished := make(chan struct{})
	ok := l.Post(func() {
		defer close(finished)
		fn()
	})
	if !ok {
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		// fn may still be running if Stop raced with it.
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnLoop reports whether the caller is running on the loop goroutine.
func (l *Loop) OnLoop() bool {
	id := l.goid.Load()
	return id != 0 && id == currentGoroutineID()
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

type loopTimer struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if !t.cancelled.CompareAndSwap(false, true) {
		return false
	}
	return t.timer.Stop()
}

// AfterFunc calls fn on the loop after d. A stopped timer's callback never
// runs, even if it had already been handed to the loop.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.cancelled.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

// currentGoroutineID parses the id out of the runtime stack header
// ("goroutine 42 [running]:").
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if len(b) < len(prefix) {
		return 0
	}
	b = b[len(prefix):]
	var id uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
