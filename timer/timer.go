// Package timer provides expiring flags (cooldowns, punch and stun windows)
// that are owned by a single character controller and released with it.
package timer

import (
	"sync"
	"time"
)

// Key names an expiring flag inside a Registry.
type Key string

const (
	StealCooldown Key = "steal-cooldown"
	SkillRequest  Key = "skill-request"
	Punch         Key = "punch"
	StolenStun    Key = "stolen-stun"
	Jump          Key = "jump"
)

// Stopper is the handle returned by Clock.AfterFunc.
type Stopper interface {
	Stop() bool
}

// Clock abstracts wall-clock time so timers can be driven manually in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Stopper
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Stopper {
	return time.AfterFunc(d, fn)
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}

type entry struct {
	expires time.Time
	stop    Stopper
	gen     uint64
}

// Registry holds a set of keyed expiring flags.
// Arm/IsArmed/Clear are called from the frame loop; expiry callbacks run on
// clock goroutines, so all state is guarded by mu.
type Registry struct {
	mu      sync.Mutex
	clock   Clock
	entries map[Key]*entry
	gen     uint64
	closed  bool
}

// NewRegistry creates an empty registry. A nil clock uses SystemClock.
func NewRegistry(clock Clock) *Registry {
	if clock == nil {
		clock = SystemClock()
	}
	return &Registry{
		clock:   clock,
		entries: make(map[Key]*entry),
	}
}

// Arm sets key for d. Re-arming an armed key resets its expiry.
func (r *Registry) Arm(key Key, d time.Duration) {
	r.ArmFunc(key, d, nil)
}

// ArmFunc is Arm with a callback run once when the flag expires naturally.
// The callback is dropped if the key is cleared, re-armed, or the registry
// is closed first.
func (r *Registry) ArmFunc(key Key, d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || d <= 0 {
		return
	}

	if old, ok := r.entries[key]; ok {
		old.stop.Stop()
	}

	r.gen++
	gen := r.gen
	e := &entry{
		expires: r.clock.Now().Add(d),
		gen:     gen,
	}
	e.stop = r.clock.AfterFunc(d, func() { r.expire(key, gen, fn) })
	r.entries[key] = e
}

func (r *Registry) expire(key Key, gen uint64, fn func()) {
	r.mu.Lock()
	e, ok := r.entries[key]
	if r.closed || !ok || e.gen != gen {
		r.mu.Unlock()
		return
	}
	delete(r.entries, key)
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// IsArmed reports whether key is currently set.
func (r *Registry) IsArmed(key Key) bool {
	return r.Remaining(key) > 0
}

// Remaining returns the time left on key, or 0 when it is not armed.
func (r *Registry) Remaining(key Key) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return 0
	}
	left := e.expires.Sub(r.clock.Now())
	if left <= 0 {
		return 0
	}
	return left
}

// Clear cancels key early. Clearing an unarmed key does nothing.
func (r *Registry) Clear(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		e.stop.Stop()
		delete(r.entries, key)
	}
}

// Pending returns the number of armed keys.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close cancels every pending timer. Safe to call more than once; after the
// first call Arm is a no-op and no callback will run.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for key, e := range r.entries {
		e.stop.Stop()
		delete(r.entries, key)
	}
}

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
