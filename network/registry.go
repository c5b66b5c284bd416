package network

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/automoto/giftrush/shared/netcomponents"
)

// ErrNotLocal is returned by UpdateLocal for any id but the local one.
var ErrNotLocal = errors.New("only the local character can be updated")

// PlayerView is the read-only face of the Registry handed to consumers.
type PlayerView interface {
	Characters() []netcomponents.CharacterData
	Get(id string) (netcomponents.CharacterData, bool)
	LocalID() string
	RemainRunningTime() float64
	Version() uint64
}

// registryState is published whole and never mutated afterwards.
type registryState struct {
	chars   []netcomponents.CharacterData
	index   map[string]int
	localID string
	remain  float64
	version uint64 // bumped by Replace only

	// Local entry exactly as the last snapshot carried it.
	authLocal *netcomponents.CharacterData
}

func (s *registryState) get(id string) (netcomponents.CharacterData, bool) {
	i, ok := s.index[id]
	if !ok {
		return netcomponents.CharacterData{}, false
	}
	return s.chars[i], true
}

// Registry maps character ids to their latest known state. Readers see an
// immutable state through an atomic pointer; writers (snapshot ingest on
// network goroutines, local prediction on the frame loop) serialize on mu and
// publish a fresh copy.
type Registry struct {
	mu  sync.Mutex
	cur atomic.Pointer[registryState]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.cur.Store(&registryState{index: map[string]int{}})
	return r
}

var _ PlayerView = (*Registry)(nil)

// Replace swaps the whole character set and match timer in one publication.
func (r *Registry) Replace(chars []netcomponents.CharacterData, remain float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.cur.Load()
	next := &registryState{
		chars:   append([]netcomponents.CharacterData(nil), chars...),
		index:   make(map[string]int, len(chars)),
		localID: old.localID,
		remain:  remain,
		version: old.version + 1,
	}
	for i, c := range next.chars {
		next.index[c.ID] = i
	}
	if c, ok := next.get(next.localID); ok {
		next.authLocal = &c
	}
	r.cur.Store(next)
}

// SetLocalID records which character this client controls.
func (r *Registry) SetLocalID(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.cur.Load()
	next := *old
	next.localID = id
	next.authLocal = nil
	if c, ok := old.get(id); ok {
		next.authLocal = &c
	}
	r.cur.Store(&next)
}

// UpdateLocal overwrites the local character with a predicted state. Remote
// entries are owned by snapshots and cannot be written here.
func (r *Registry) UpdateLocal(c netcomponents.CharacterData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.cur.Load()
	if old.localID == "" || c.ID != old.localID {
		return ErrNotLocal
	}
	i, ok := old.index[c.ID]
	if !ok {
		return ErrNotLocal
	}

	next := *old
	next.chars = append([]netcomponents.CharacterData(nil), old.chars...)
	next.chars[i] = c
	r.cur.Store(&next)
	return nil
}

// Characters returns a copy of every character, in snapshot order.
func (r *Registry) Characters() []netcomponents.CharacterData {
	return append([]netcomponents.CharacterData(nil), r.cur.Load().chars...)
}

// Snapshot returns a copy of every character together with the version of
// the snapshot they came from, read from one publication.
func (r *Registry) Snapshot() ([]netcomponents.CharacterData, uint64) {
	s := r.cur.Load()
	return append([]netcomponents.CharacterData(nil), s.chars...), s.version
}

// Get returns one character by id.
func (r *Registry) Get(id string) (netcomponents.CharacterData, bool) {
	return r.cur.Load().get(id)
}

// Local returns the local character, if the latest snapshot contains it.
func (r *Registry) Local() (netcomponents.CharacterData, bool) {
	s := r.cur.Load()
	return s.get(s.localID)
}

// AuthoritativeLocal returns the local character as the last snapshot carried
// it, unaffected by UpdateLocal, together with that snapshot's version.
func (r *Registry) AuthoritativeLocal() (netcomponents.CharacterData, uint64, bool) {
	s := r.cur.Load()
	if s.authLocal == nil {
		return netcomponents.CharacterData{}, s.version, false
	}
	return *s.authLocal, s.version, true
}

func (r *Registry) LocalID() string { return r.cur.Load().localID }

func (r *Registry) RemainRunningTime() float64 { return r.cur.Load().remain }

// Version counts applied snapshots.
func (r *Registry) Version() uint64 { return r.cur.Load().version }

// Len returns the number of known characters.
func (r *Registry) Len() int { return len(r.cur.Load().chars) }
