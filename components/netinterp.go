package components

import (
	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetInterpData stores smoothing state for rendering a remote character
// between server snapshots. Rendered never jumps past Target.
type NetInterpData struct {
	Rendered    mgl64.Vec3
	Target      mgl64.Vec3
	Velocity    mgl64.Vec3 // Velocity at snapshot (drives facing)
	Yaw         float64
	Initialized bool
}

var NetInterp = donburi.NewComponentType[NetInterpData]()

// SetTarget records a new authoritative sample. The first sample and any
// jump longer than the teleport distance are applied immediately. Reports
// whether the rendered position snapped.
func (d *NetInterpData) SetTarget(pos, vel mgl64.Vec3, cfg config.InterpConfig) bool {
	d.Target = pos
	d.Velocity = vel
	if !d.Initialized || pos.Sub(d.Rendered).Len() > cfg.TeleportDistance {
		d.Rendered = pos
		if gamemath.GroundSpeed(vel) > cfg.MovingThreshold {
			d.Yaw = gamemath.Heading(vel)
		}
		d.Initialized = true
		return true
	}
	return false
}

// Step eases Rendered toward Target by a frame-rate independent factor and
// turns Yaw toward the direction of travel.
func (d *NetInterpData) Step(cfg config.InterpConfig, dt float64) {
	if !d.Initialized {
		return
	}

	if d.Target.Sub(d.Rendered).Len() <= cfg.Epsilon {
		d.Rendered = d.Target
	} else {
		d.Rendered = gamemath.DampVec3(d.Rendered, d.Target, cfg.Smoothing, dt)
		if d.Target.Sub(d.Rendered).Len() <= cfg.Epsilon {
			d.Rendered = d.Target
		}
	}

	if gamemath.GroundSpeed(d.Velocity) > cfg.MovingThreshold {
		d.Yaw = gamemath.DampAngle(d.Yaw, gamemath.Heading(d.Velocity), cfg.RotationSmoothing, dt)
	}
}

// Converged reports whether the rendered position has reached the target.
func (d *NetInterpData) Converged() bool {
	return d.Rendered == d.Target
}
