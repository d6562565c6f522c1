package router

import (
	"log/slog"

	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
)

// Change describes the navigation state after a mutation.
type Change struct {
	Tab  Tab
	Path []Destination
}

// Option configures a Router.
type Option func(*Router)

// WithLogger overrides the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithTab sets the initial tab. Defaults to TabHome.
func WithTab(tab Tab) Option {
	return func(r *Router) {
		r.tab = tab
	}
}

// Router owns the navigation stack of the active tab.
//
// Router is not safe for concurrent use. All calls must happen on the
// application's dispatch loop.
type Router struct {
	tab       Tab
	stack     *Stack
	observers map[int]func(Change)
	nextID    int
	logger    *slog.Logger
}

// New creates a Router rooted at the home tab with an empty stack.
func New(opts ...Option) *Router {
	r := &Router{
		tab:       TabHome,
		stack:     NewStack(),
		observers: make(map[int]func(Change)),
		logger:    internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Push appends d to the stack. It does not deduplicate.
func (r *Router) Push(d Destination) {
	if d == nil {
		return
	}
	r.stack.Push(d)
	r.logger.Debug("router push", "destination", d.Kind().String(), "depth", r.stack.Len())
	r.notify()
}

// Pop removes the top destination, revealing the one pushed before it.
// Popping an empty stack does nothing.
func (r *Router) Pop() {
	d, ok := r.stack.Pop()
	if !ok {
		return
	}
	r.logger.Debug("router pop", "destination", d.Kind().String(), "depth", r.stack.Len())
	r.notify()
}

// Reset clears the stack. If to is non-nil it becomes the only entry.
// Used for deep links and logout.
func (r *Router) Reset(to Destination) {
	r.stack.Clear()
	if to != nil {
		r.stack.Push(to)
	}
	r.logger.Debug("router reset", "depth", r.stack.Len())
	r.notify()
}

// SelectTab switches the root screen. The stack of the previous tab is
// discarded.
func (r *Router) SelectTab(tab Tab) {
	if tab == r.tab && r.stack.IsEmpty() {
		return
	}
	r.tab = tab
	r.stack.Clear()
	r.logger.Debug("router tab", "tab", tab.String())
	r.notify()
}

// Tab returns the active tab.
func (r *Router) Tab() Tab {
	return r.tab
}

// Top returns the visible destination. It returns false when the tab root
// is visible.
func (r *Router) Top() (Destination, bool) {
	return r.stack.Peek()
}

// Path returns a copy of the stack, oldest first.
func (r *Router) Path() []Destination {
	return r.stack.Entries()
}

// Len returns the stack depth.
func (r *Router) Len() int {
	return r.stack.Len()
}

// Observe registers fn to be called after every change. The returned
// function unregisters it.
func (r *Router) Observe(fn func(Change)) (cancel func()) {
	id := r.nextID
	r.nextID++
	r.observers[id] = fn
	return func() {
		delete(r.observers, id)
	}
}

func (r *Router) notify() {
	if len(r.observers) == 0 {
		return
	}
	c := Change{Tab: r.tab, Path: r.stack.Entries()}
	for _, fn := range r.observers {
		fn(c)
	}
}
