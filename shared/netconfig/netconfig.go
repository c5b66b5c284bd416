// Package netconfig defines lightweight types shared between the wire
// protocol and the client core. It must have zero dependencies on ebiten or
// any graphics library so the core stays testable headless.
package netconfig

// StateID identifies a character animation state.
type StateID int

const (
	StateNone StateID = -1

	Idle StateID = iota
	IdleCargo
	Run
	RunCargo
	Jump
	Punch
	Duck // being stolen from
	FlyingIdle
)

// StateToName maps StateID to a short, log-friendly name.
var StateToName = map[StateID]string{
	Idle:       "idle",
	IdleCargo:  "idle_cargo",
	Run:        "run",
	RunCargo:   "run_cargo",
	Jump:       "jump",
	Punch:      "punch",
	Duck:       "duck",
	FlyingIdle: "flying_idle",
}

func (s StateID) String() string {
	if name, ok := StateToName[s]; ok {
		return name
	}
	return "unknown"
}

// CharacterKind selects the model family a character renders with.
type CharacterKind string

const (
	KindRabbit CharacterKind = "rabbit"
	KindGhost  CharacterKind = "ghost"
)

// ParseKind returns the kind for s, defaulting to KindRabbit.
func ParseKind(s string) CharacterKind {
	if CharacterKind(s) == KindGhost {
		return KindGhost
	}
	return KindRabbit
}

// ActionID represents a logical control.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionJump
	ActionCatch
	ActionSkill
	ActionToggleView
	ActionCount // Must be last - used for array sizing
)
