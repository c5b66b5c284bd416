// Package timertest provides a manually advanced timer.Clock for tests.
package timertest

import (
	"sort"
	"sync"
	"time"

	"github.com/automoto/giftrush/timer"
)

// Clock is a timer.Clock whose time only moves when Advance is called.
// Due callbacks run synchronously inside Advance, in expiry order.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*Timer
	seq     int

	// Fired counts callbacks that actually ran.
	Fired int
	// Stops counts Stop calls that cancelled a pending timer.
	Stops int
}

// NewClock returns a clock starting at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// Timer is the Stopper handed out by Clock.AfterFunc.
type Timer struct {
	clock *Clock
	at    time.Time
	seq   int
	fn    func()
	done  bool
}

// Stop cancels the timer. Returns false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.Stops++
	t.clock.remove(t)
	return true
}

var _ timer.Clock = (*Clock)(nil)

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, fn func()) timer.Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &Timer{clock: c, at: c.now.Add(d), seq: c.seq, fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves time forward by d, firing every timer that falls due.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.Slice(c.pending, func(i, j int) bool {
			if c.pending[i].at.Equal(c.pending[j].at) {
				return c.pending[i].seq < c.pending[j].seq
			}
			return c.pending[i].at.Before(c.pending[j].at)
		})
		if len(c.pending) == 0 || c.pending[0].at.After(target) {
			c.now = target
			c.mu.Unlock()
			return
		}
		next := c.pending[0]
		c.pending = c.pending[1:]
		next.done = true
		c.now = next.at
		c.Fired++
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Clock) remove(t *Timer) {
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}
