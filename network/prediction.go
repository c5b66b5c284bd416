package network

import (
	"github.com/automoto/giftrush/components"
	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// correctionDone is the leftover error below which easing finishes at once.
const correctionDone = 1e-4

// GroundProbe answers surface queries for the local character.
type GroundProbe interface {
	SurfaceHeight(pos mgl64.Vec3) float64
	Grounded(pos, vel mgl64.Vec3) bool
}

// Correction tells what Correct did with an authoritative position.
type Correction int

const (
	CorrectionNone Correction = iota
	CorrectionEase
	CorrectionSnap
)

// PredictionInput is everything one prediction step consumes.
type PredictionInput struct {
	Controls   components.ControlSnapshot
	CameraYaw  float64
	EventBlock bool
	DT         float64 // seconds
}

// PredictionResult is the local character's state after one step.
type PredictionResult struct {
	Position   mgl64.Vec3
	Velocity   mgl64.Vec3
	Yaw        float64
	WantsSteal bool
	WantsSkill bool
	Jumped     bool
	Grounded   bool
}

// Predictor moves the local character immediately from input, without
// waiting for the server, and folds authoritative positions back in.
type Predictor struct {
	cfg    config.MovementConfig
	ground GroundProbe

	pos        mgl64.Vec3
	vel        mgl64.Vec3
	yaw        float64
	seeded     bool
	correction mgl64.Vec3 // error still to be eased out
}

// NewPredictor creates an unseeded predictor.
func NewPredictor(cfg config.MovementConfig, ground GroundProbe) *Predictor {
	return &Predictor{cfg: cfg, ground: ground}
}

// Seed places the character at pos, discarding any motion.
func (p *Predictor) Seed(pos mgl64.Vec3) {
	p.pos = pos
	p.vel = mgl64.Vec3{}
	p.correction = mgl64.Vec3{}
	p.seeded = true
}

// Reset forgets the seed so the next authoritative position places the
// character again.
func (p *Predictor) Reset() {
	p.seeded = false
	p.vel = mgl64.Vec3{}
	p.correction = mgl64.Vec3{}
}

func (p *Predictor) Seeded() bool { return p.seeded }

func (p *Predictor) Position() mgl64.Vec3 { return p.pos }

func (p *Predictor) Yaw() float64 { return p.yaw }

// Correct compares the prediction with an authoritative position. Large
// errors snap, moderate ones are eased out over the next steps, small ones
// leave the prediction alone.
func (p *Predictor) Correct(auth mgl64.Vec3) Correction {
	if !p.seeded {
		p.Seed(auth)
		return CorrectionSnap
	}

	diff := auth.Sub(p.pos)
	switch dist := diff.Len(); {
	case dist > p.cfg.CorrectionSnapDistance:
		p.pos = auth
		p.correction = mgl64.Vec3{}
		return CorrectionSnap
	case dist > p.cfg.CorrectionDeadzone:
		p.correction = diff
		return CorrectionEase
	}
	return CorrectionNone
}

// Step advances the prediction by in.DT.
func (p *Predictor) Step(in PredictionInput) PredictionResult {
	dt := in.DT
	c := in.Controls
	if in.EventBlock {
		c = components.ControlSnapshot{}
	}

	move := gamemath.Forward(in.CameraYaw).Mul(axis(c.Forward, c.Backward)).
		Add(gamemath.Right(in.CameraYaw).Mul(axis(c.Right, c.Left)))
	if move.Len() > 0 {
		move = move.Normalize().Mul(p.cfg.Speed)
	}
	p.vel = mgl64.Vec3{move.X(), p.vel.Y(), move.Z()}

	grounded := p.grounded()
	jumped := false
	if grounded && c.Jump {
		p.vel[1] = p.cfg.JumpImpulse
		jumped = true
		grounded = false
	}

	if grounded {
		p.vel[1] = 0
	} else {
		p.vel[1] = max(p.vel.Y()-p.cfg.Gravity*dt, -p.cfg.MaxFallSpeed)
	}

	prevY := p.pos.Y()
	p.pos = p.pos.Add(p.vel.Mul(dt))
	p.easeCorrection(dt)

	// Probe from the higher of the two heights so a fast fall cannot pass
	// through a platform top within one step.
	probe := p.pos
	probe[1] = max(prevY, p.pos.Y())
	if surface := p.surface(probe); p.vel.Y() <= 0 && p.pos.Y() <= surface {
		p.pos[1] = surface
		p.vel[1] = 0
		grounded = true
	}

	if gamemath.GroundSpeed(p.vel) > 0 {
		p.yaw = gamemath.DampAngle(p.yaw, gamemath.Heading(p.vel), p.cfg.RotationSmoothing, dt)
	}

	return PredictionResult{
		Position:   p.pos,
		Velocity:   p.vel,
		Yaw:        p.yaw,
		WantsSteal: c.Catch,
		WantsSkill: c.Skill,
		Jumped:     jumped,
		Grounded:   grounded,
	}
}

func (p *Predictor) easeCorrection(dt float64) {
	if p.correction.Len() == 0 {
		return
	}
	step := p.correction.Mul(gamemath.DampFactor(p.cfg.CorrectionSmoothing, dt))
	if p.correction.Sub(step).Len() < correctionDone {
		step = p.correction
	}
	p.pos = p.pos.Add(step)
	p.correction = p.correction.Sub(step)
}

func (p *Predictor) grounded() bool {
	if p.ground == nil {
		return p.vel.Y() <= 0 && p.pos.Y() <= gamemath.GroundEpsilon
	}
	return p.ground.Grounded(p.pos, p.vel)
}

func (p *Predictor) surface(at mgl64.Vec3) float64 {
	if p.ground == nil {
		return 0
	}
	return p.ground.SurfaceHeight(at)
}

func axis(pos, neg bool) float64 {
	var v float64
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}
