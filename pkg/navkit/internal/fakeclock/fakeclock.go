// Package fakeclock is a manually advanced clock for timing tests.
package fakeclock

import (
	"sort"
	"sync"
	"time"

	"github.com/BrandonKowalski/navkit/pkg/navkit/dispatch"
)

// Clock fires AfterFunc callbacks synchronously inside Advance.
type Clock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*timer
}

type timer struct {
	clock   *Clock
	due     time.Duration
	fn      func()
	stopped bool
}

func (t *timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// New returns a clock at time zero.
func New() *Clock {
	return &Clock{}
}

// Now returns the elapsed fake time.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, fn func()) dispatch.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{clock: c, due: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, firing due timers in due order.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].due < c.timers[j].due })
		var next *timer
		for i, t := range c.timers {
			if t.stopped {
				continue
			}
			if t.due <= target {
				next = t
				c.timers = append(c.timers[:i], c.timers[i+1:]...)
			}
			break
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.due
		next.stopped = true
		c.mu.Unlock()

		next.fn()
	}
}

// AdvanceTo moves time to the absolute offset at.
func (c *Clock) AdvanceTo(at time.Duration) {
	c.Advance(at - c.Now())
}
