package network

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/automoto/giftrush/shared/messages"
	"github.com/automoto/giftrush/shared/netcomponents"
	"github.com/automoto/giftrush/shared/protocol"
	"github.com/automoto/giftrush/timer"
	"github.com/go-gl/mathgl/mgl64"
)

// Intent is the per-frame request to steal or use the skill.
type Intent struct {
	Steal bool
	Skill bool
}

// Synchronizer owns the Registry. It applies inbound snapshots and decides,
// once per frame, whether the local character's state goes out.
type Synchronizer struct {
	cfg      config.NetConfig
	registry *Registry
	timers   *timer.Registry

	mu     sync.Mutex // guards ch and unsubs
	ch     Channel
	unsubs []func()

	snapshotHandlers listeners[func(PlayerView)]

	// initialized is cleared from the disconnect callback.
	initialized atomic.Bool
	rejected    atomic.Uint64

	// Frame loop only.
	prevPosition mgl64.Vec3
	lastSent     time.Time
}

// NewSynchronizer creates a synchronizer writing into registry. Rate limits
// are tracked on a timer registry driven by clock (nil uses the system clock).
func NewSynchronizer(cfg config.NetConfig, registry *Registry, clock timer.Clock) *Synchronizer {
	return &Synchronizer{
		cfg:      cfg,
		registry: registry,
		timers:   timer.NewRegistry(clock),
	}
}

// Registry returns the read-only view of the character registry.
func (s *Synchronizer) Registry() PlayerView {
	return s.registry
}

// Timers exposes the outbound rate-limit flags.
func (s *Synchronizer) Timers() *timer.Registry {
	return s.timers
}

// Attach subscribes to ch. Any previous channel is detached first.
func (s *Synchronizer) Attach(ch Channel) {
	s.Detach()
	if ch == nil {
		return
	}

	unsubs := []func(){
		ch.OnConnect(s.handleConnect),
		ch.OnDisconnect(s.handleDisconnect),
		ch.OnCharactersUpdate(s.handleSnapshot),
	}

	s.mu.Lock()
	s.ch = ch
	s.unsubs = unsubs
	s.mu.Unlock()

	if ch.Connected() {
		s.handleConnect()
	}
}

// Detach drops every subscription on the current channel.
func (s *Synchronizer) Detach() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.ch = nil
	s.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	s.initialized.Store(false)
}

// Close detaches from the channel and cancels the rate-limit timers.
func (s *Synchronizer) Close() {
	s.Detach()
	s.timers.Close()
}

// OnSnapshot registers fn to run after each applied snapshot. fn runs on the
// goroutine that delivered the snapshot.
func (s *Synchronizer) OnSnapshot(fn func(PlayerView)) (unsubscribe func()) {
	return s.snapshotHandlers.add(fn)
}

func (s *Synchronizer) channel() Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch
}

// Initialized reports whether the movement baseline is set.
func (s *Synchronizer) Initialized() bool {
	return s.initialized.Load()
}

// Rejected counts snapshots dropped as malformed.
func (s *Synchronizer) Rejected() uint64 {
	return s.rejected.Load()
}

func (s *Synchronizer) handleConnect() {
	ch := s.channel()
	if ch == nil {
		return
	}
	s.registry.SetLocalID(ch.LocalID())
	log.Printf("[sync] connected as %q", ch.LocalID())
}

func (s *Synchronizer) handleDisconnect(err error) {
	s.initialized.Store(false)
	log.Printf("[sync] disconnected: %v", err)
}

func (s *Synchronizer) handleSnapshot(msg messages.CharactersUpdate) {
	if err := msg.Validate(); err != nil {
		s.rejected.Add(1)
		log.Printf("[sync] rejected snapshot: %v", err)
		return
	}

	s.registry.Replace(protocol.CharactersFromWire(msg.Characters), msg.RemainRunningTime)

	for _, fn := range s.snapshotHandlers.snapshot() {
		fn(s.registry)
	}
}

// SendUpdate sends one movement update. Without a connected channel it does
// nothing and returns nil.
func (s *Synchronizer) SendUpdate(c netcomponents.CharacterData, steal, skill bool) error {
	ch := s.channel()
	if ch == nil || !ch.Connected() {
		return nil
	}
	return ch.SendMovement(messages.MovementUpdate{
		Character: protocol.CharacterToWire(c),
		Steal:     steal,
		Skill:     skill,
	})
}

// Tick runs the outbound gate for one frame and reports whether an update
// was sent. At most one update goes out per call; a frame that is skipped is
// not made up later.
func (s *Synchronizer) Tick(now time.Time, intent Intent) bool {
	local, ok := s.registry.Local()
	if !ok {
		return false
	}
	return s.TickLocal(now, local, intent)
}

// TickLocal is Tick with the local character supplied by the caller, so the
// value that goes out is the one the caller just predicted even if a
// snapshot lands in between.
func (s *Synchronizer) TickLocal(now time.Time, local netcomponents.CharacterData, intent Intent) bool {
	ch := s.channel()
	if ch == nil || !ch.Connected() {
		return false
	}

	if now.Sub(s.lastSent) < s.cfg.SendInterval {
		return false
	}

	if !s.initialized.Load() {
		s.prevPosition = local.Position
		s.initialized.Store(true)
		return false
	}

	steal := intent.Steal && !s.timers.IsArmed(timer.StealCooldown)
	skill := intent.Skill && !s.timers.IsArmed(timer.SkillRequest) && local.SkillReady()
	moved := gamemath.ChangedBeyond(local.Position, s.prevPosition, s.cfg.PositionThreshold)

	if !moved && !steal && !skill {
		return false
	}

	if err := s.SendUpdate(local, steal, skill); err != nil {
		log.Printf("[sync] send update: %v", err)
	}

	if steal {
		s.timers.Arm(timer.StealCooldown, s.cfg.StealCooldown)
	}
	if skill {
		s.timers.Arm(timer.SkillRequest, s.cfg.SkillRequestWindow)
	}
	s.prevPosition = local.Position
	s.lastSent = now
	return true
}
