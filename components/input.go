package components

import (
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ControlSnapshot is the sampled state of the movement and intent controls
// for one frame.
type ControlSnapshot struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
	Catch    bool // steal intent
	Skill    bool
}

// LookDelta is pointer movement in pixels since the previous frame.
type LookDelta struct {
	DX, DY float64
}

// InputData stores the current and previous frame's pressed state for all
// actions. JustPressed/JustReleased are computed on demand by comparing
// frames.
type InputData struct {
	Current  [netconfig.ActionCount]bool
	Previous [netconfig.ActionCount]bool
	Look     LookDelta
}

var Input = donburi.NewComponentType[InputData]()

// Advance moves the current frame into Previous and stores the new sample.
func (d *InputData) Advance(pressed [netconfig.ActionCount]bool, look LookDelta) {
	d.Previous = d.Current
	d.Current = pressed
	d.Look = look
}

func (d *InputData) Pressed(a netconfig.ActionID) bool {
	return d.Current[a]
}

func (d *InputData) JustPressed(a netconfig.ActionID) bool {
	return d.Current[a] && !d.Previous[a]
}

func (d *InputData) JustReleased(a netconfig.ActionID) bool {
	return !d.Current[a] && d.Previous[a]
}

// Snapshot returns the held controls for this frame.
func (d *InputData) Snapshot() ControlSnapshot {
	return ControlSnapshot{
		Forward:  d.Current[netconfig.ActionForward],
		Backward: d.Current[netconfig.ActionBackward],
		Left:     d.Current[netconfig.ActionLeft],
		Right:    d.Current[netconfig.ActionRight],
		Jump:     d.Current[netconfig.ActionJump],
		Catch:    d.Current[netconfig.ActionCatch],
		Skill:    d.Current[netconfig.ActionSkill],
	}
}
