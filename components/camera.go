package components

import (
	"math"

	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

type CameraMode int

const (
	ThirdPerson CameraMode = iota
	FirstPerson
)

func (m CameraMode) String() string {
	if m == FirstPerson {
		return "first-person"
	}
	return "third-person"
}

// CameraRigData is the follow camera around the local character. Yaw and
// Pitch come from pointer look; Height and Distance ease between their base
// values and the skill zoom-out.
type CameraRigData struct {
	Yaw   float64
	Pitch float64
	Mode  CameraMode

	Height   float64
	Distance float64

	heightTween   *gween.Tween
	distanceTween *gween.Tween
	skillActive   bool

	Position    mgl64.Vec3
	LookAt      mgl64.Vec3
	Initialized bool
}

var CameraRig = donburi.NewComponentType[CameraRigData]()

// NewCameraRig returns a rig at its base offsets.
func NewCameraRig(cfg config.CameraConfig) CameraRigData {
	mode := ThirdPerson
	if cfg.FirstPerson {
		mode = FirstPerson
	}
	return CameraRigData{
		Mode:     mode,
		Height:   cfg.Height,
		Distance: cfg.Distance,
	}
}

// Look applies pointer movement. Moving right turns the view right; pitch
// is clamped to the configured range.
func (c *CameraRigData) Look(delta LookDelta, cfg config.CameraConfig) {
	c.Yaw = gamemath.WrapAngle(c.Yaw - delta.DX*cfg.Sensitivity)
	c.Pitch = min(max(c.Pitch+delta.DY*cfg.Sensitivity, cfg.MinPitch), cfg.MaxPitch)
}

// ToggleMode switches between third- and first-person.
func (c *CameraRigData) ToggleMode() {
	if c.Mode == FirstPerson {
		c.Mode = ThirdPerson
	} else {
		c.Mode = FirstPerson
	}
	c.Initialized = false
}

// SetSkillActive starts the zoom-out (or back in) when the skill state
// changes.
func (c *CameraRigData) SetSkillActive(active bool, cfg config.CameraConfig) {
	if active == c.skillActive {
		return
	}
	c.skillActive = active

	height, distance := cfg.Height, cfg.Distance
	if active {
		height += cfg.SkillExtraHeight
		distance += cfg.SkillExtraDistance
	}
	d := float32(cfg.ZoomDuration)
	c.heightTween = gween.New(float32(c.Height), float32(height), d, ease.OutQuad)
	c.distanceTween = gween.New(float32(c.Distance), float32(distance), d, ease.OutQuad)
}

// Zooming reports whether an offset tween is still running.
func (c *CameraRigData) Zooming() bool {
	return c.heightTween != nil || c.distanceTween != nil
}

// Update moves the camera toward its ideal pose around target (the local
// character's origin). Position and LookAt ease independently.
func (c *CameraRigData) Update(target mgl64.Vec3, cfg config.CameraConfig, dt float64) {
	c.stepTweens(dt)

	idealPos, idealLook := c.ideal(target, cfg)
	if !c.Initialized {
		c.Position, c.LookAt = idealPos, idealLook
		c.Initialized = true
		return
	}

	if c.Mode == FirstPerson {
		c.Position = idealPos
	} else {
		c.Position = gamemath.DampVec3(c.Position, idealPos, cfg.FollowSmoothing, dt)
	}
	c.LookAt = gamemath.DampVec3(c.LookAt, idealLook, cfg.LookAtSmoothing, dt)
}

func (c *CameraRigData) stepTweens(dt float64) {
	if c.heightTween != nil {
		v, done := c.heightTween.Update(float32(dt))
		c.Height = float64(v)
		if done {
			c.heightTween = nil
		}
	}
	if c.distanceTween != nil {
		v, done := c.distanceTween.Update(float32(dt))
		c.Distance = float64(v)
		if done {
			c.distanceTween = nil
		}
	}
}

// ideal returns the camera position and look-at point for the current yaw,
// pitch and offsets.
func (c *CameraRigData) ideal(target mgl64.Vec3, cfg config.CameraConfig) (mgl64.Vec3, mgl64.Vec3) {
	rot := mgl64.Rotate3DY(c.Yaw)

	if c.Mode == FirstPerson {
		eye := target.Add(rot.Mul3x1(cfg.Mounts.Eye))
		ahead := rot.Mul3x1(mgl64.Rotate3DX(c.Pitch).Mul3x1(cfg.Mounts.CameraTarget))
		return eye, eye.Add(ahead)
	}

	head := target.Add(cfg.Mounts.Head)
	back := gamemath.Forward(c.Yaw).Mul(-c.Distance * math.Cos(c.Pitch))
	up := mgl64.Vec3{0, c.Height + c.Distance*math.Sin(c.Pitch), 0}
	return target.Add(back).Add(up), head
}
