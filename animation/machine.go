// Package animation picks the animation state of one character each frame
// from an ordered list of guards. The first guard that matches wins.
package animation

import (
	"math"

	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/automoto/giftrush/timer"
	"github.com/go-gl/mathgl/mgl64"
)

// Input is what the machine looks at for one frame.
type Input struct {
	Kind      netconfig.CharacterKind
	GiftCount int
	Velocity  mgl64.Vec3

	Stolen   bool // being stolen from (level, edge detected here)
	Steal    bool // steal intent, local key or remote StealMotion
	Airborne bool
	Jumped   bool // local jump started this frame
}

// Airborne reports whether a remote character moving with vel is in the air.
func Airborne(vel mgl64.Vec3, cfg config.AnimationConfig) bool {
	return math.Abs(vel.Y()) > cfg.AirborneSpeed
}

type guard struct {
	name  string
	match func(m *Machine, in Input) (netconfig.StateID, bool)
}

var guards = []guard{
	{"stolen", (*Machine).stolen},
	{"steal", (*Machine).steal},
	{"airborne", (*Machine).airborne},
	{"locomotion", (*Machine).locomotion},
}

// Machine is the animation state of one character. Its windows (punch,
// stun, jump cue) live on a timer registry released by Close.
type Machine struct {
	cfg    config.AnimationConfig
	timers *timer.Registry

	state      netconfig.StateID
	rule       string
	prevStolen bool
	cues       []config.SoundID
}

// NewMachine creates a machine in Idle. It takes ownership of timers.
func NewMachine(cfg config.AnimationConfig, timers *timer.Registry) *Machine {
	return &Machine{
		cfg:    cfg,
		timers: timers,
		state:  netconfig.Idle,
	}
}

// Update evaluates the guards for one frame and returns the new state.
func (m *Machine) Update(in Input) netconfig.StateID {
	for _, g := range guards {
		if state, ok := g.match(m, in); ok {
			m.state = state
			m.rule = g.name
			break
		}
	}
	m.prevStolen = in.Stolen

	// A stunned character emits nothing.
	frozen := m.rule == "stolen" && m.timers.IsArmed(timer.StolenStun)
	if in.Jumped && !frozen && !m.timers.IsArmed(timer.Jump) {
		m.timers.Arm(timer.Jump, m.cfg.JumpCueCooldown)
		m.cues = append(m.cues, config.SoundJump)
	}
	return m.state
}

func (m *Machine) stolen(in Input) (netconfig.StateID, bool) {
	if m.timers.IsArmed(timer.StolenStun) {
		return m.state, true
	}
	if in.Stolen && !m.prevStolen {
		m.timers.Arm(timer.StolenStun, m.cfg.StunWindow)
		m.cues = append(m.cues, config.SoundStolen)
		return netconfig.Duck, true
	}
	return 0, false
}

func (m *Machine) steal(in Input) (netconfig.StateID, bool) {
	if !in.Steal {
		return 0, false
	}
	if !m.timers.IsArmed(timer.Punch) {
		m.timers.Arm(timer.Punch, m.cfg.PunchWindow)
		m.cues = append(m.cues, config.SoundPunch)
	}
	return netconfig.Punch, true
}

func (m *Machine) airborne(in Input) (netconfig.StateID, bool) {
	return netconfig.Jump, in.Airborne
}

func (m *Machine) locomotion(in Input) (netconfig.StateID, bool) {
	if in.Kind == netconfig.KindGhost {
		return netconfig.FlyingIdle, true
	}
	running := gamemath.GroundSpeed(in.Velocity) > m.cfg.RunThreshold
	cargo := in.GiftCount > 0
	switch {
	case running && cargo:
		return netconfig.RunCargo, true
	case running:
		return netconfig.Run, true
	case cargo:
		return netconfig.IdleCargo, true
	}
	return netconfig.Idle, true
}

func (m *Machine) State() netconfig.StateID { return m.state }

// Rule names the guard that produced the current state.
func (m *Machine) Rule() string { return m.rule }

// Name returns the renderer's clip identifier for the current state.
func (m *Machine) Name(kind netconfig.CharacterKind) string {
	return config.AnimationName(kind, m.state)
}

// DrainCues returns and clears the audio cues raised since the last call.
func (m *Machine) DrainCues() []config.SoundID {
	cues := m.cues
	m.cues = nil
	return cues
}

// Close cancels every pending window. The machine keeps answering State but
// no timer callback will run afterwards.
func (m *Machine) Close() {
	m.timers.Close()
}
