package config

import "github.com/automoto/giftrush/shared/netconfig"

// Type aliases so client code can keep using config.StateID etc.
type StateID = netconfig.StateID
type CharacterKind = netconfig.CharacterKind
type ActionID = netconfig.ActionID

// Re-export character animation states.
const (
	StateNone = netconfig.StateNone

	Idle       = netconfig.Idle
	IdleCargo  = netconfig.IdleCargo
	Run        = netconfig.Run
	RunCargo   = netconfig.RunCargo
	Jump       = netconfig.Jump
	Punch      = netconfig.Punch
	Duck       = netconfig.Duck
	FlyingIdle = netconfig.FlyingIdle
)

// Re-export character kinds.
const (
	KindRabbit = netconfig.KindRabbit
	KindGhost  = netconfig.KindGhost
)

// Re-export control actions.
const (
	ActionNone       = netconfig.ActionNone
	ActionForward    = netconfig.ActionForward
	ActionBackward   = netconfig.ActionBackward
	ActionLeft       = netconfig.ActionLeft
	ActionRight      = netconfig.ActionRight
	ActionJump       = netconfig.ActionJump
	ActionCatch      = netconfig.ActionCatch
	ActionSkill      = netconfig.ActionSkill
	ActionToggleView = netconfig.ActionToggleView
	ActionCount      = netconfig.ActionCount
)
