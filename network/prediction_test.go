package network

import (
	"math"
	"testing"

	"github.com/automoto/giftrush/components"
	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/automoto/giftrush/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
)

const dt = 1.0 / 60.0

func testMovementConfig() config.MovementConfig {
	return config.MovementConfig{
		Speed:                  5,
		JumpImpulse:            7,
		Gravity:                20,
		MaxFallSpeed:           30,
		RotationSmoothing:      12,
		CorrectionDeadzone:     1,
		CorrectionSnapDistance: 4,
		CorrectionSmoothing:    6,
	}
}

func newTestPredictor() *Predictor {
	p := NewPredictor(testMovementConfig(), gamemath.NewGround(nil, 1, 0))
	p.Seed(mgl64.Vec3{})
	return p
}

func run(p *Predictor, in PredictionInput, frames int) PredictionResult {
	var r PredictionResult
	in.DT = dt
	for i := 0; i < frames; i++ {
		r = p.Step(in)
	}
	return r
}

func TestPredictorForwardFollowsCamera(t *testing.T) {
	cases := []struct {
		name string
		yaw  float64
		want mgl64.Vec3
	}{
		{"yaw 0", 0, mgl64.Vec3{0, 0, 5}},
		{"yaw 90", math.Pi / 2, mgl64.Vec3{5, 0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPredictor()
			r := run(p, PredictionInput{Controls: components.ControlSnapshot{Forward: true}, CameraYaw: c.yaw}, 60)
			if !r.Position.ApproxEqualThreshold(c.want, 1e-6) {
				t.Errorf("after 1s at %s position = %v, want %v", c.name, r.Position, c.want)
			}
			if !r.Grounded {
				t.Error("walking on the floor must stay grounded")
			}
		})
	}
}

func TestPredictorDiagonalIsNormalized(t *testing.T) {
	p := newTestPredictor()
	r := run(p, PredictionInput{Controls: components.ControlSnapshot{Forward: true, Right: true}}, 1)
	if s := gamemath.GroundSpeed(r.Velocity); math.Abs(s-5) > 1e-9 {
		t.Errorf("diagonal speed = %v, want 5", s)
	}

	r = run(p, PredictionInput{Controls: components.ControlSnapshot{Forward: true, Backward: true}}, 1)
	if gamemath.GroundSpeed(r.Velocity) != 0 {
		t.Error("opposite keys must cancel")
	}
}

func TestPredictorJumpOnlyWhenGrounded(t *testing.T) {
	p := newTestPredictor()
	jump := PredictionInput{Controls: components.ControlSnapshot{Jump: true}}

	r := run(p, jump, 1)
	if !r.Jumped || r.Velocity.Y() <= 0 || r.Grounded {
		t.Fatalf("first jump frame = %+v", r)
	}

	r = run(p, jump, 1)
	if r.Jumped {
		t.Error("jumped again while airborne")
	}

	r = run(p, PredictionInput{}, 120)
	if !r.Grounded || r.Position.Y() != 0 || r.Velocity.Y() != 0 {
		t.Errorf("did not land cleanly: %+v", r)
	}
}

func TestPredictorLandsOnPlatform(t *testing.T) {
	ground := gamemath.NewGround(&leveldata.ArenaData{
		MapWidth:  64,
		MapHeight: 64,
		Platforms: []leveldata.Platform{{X: 0, Y: 0, W: 64, H: 64, Top: 1}},
	}, 1.0/16.0, 0)
	p := NewPredictor(testMovementConfig(), ground)
	p.Seed(mgl64.Vec3{2, 3, 2})

	r := run(p, PredictionInput{}, 120)
	if !r.Grounded || r.Position.Y() != 1 {
		t.Errorf("landed at %v grounded=%v, want on the platform top", r.Position, r.Grounded)
	}
}

func TestPredictorEventBlockSuppressesInput(t *testing.T) {
	p := newTestPredictor()
	r := run(p, PredictionInput{
		Controls:   components.ControlSnapshot{Forward: true, Jump: true, Catch: true, Skill: true},
		EventBlock: true,
	}, 10)

	if r.Position != (mgl64.Vec3{}) || r.Jumped || r.WantsSteal || r.WantsSkill {
		t.Errorf("blocked input leaked: %+v", r)
	}
}

func TestPredictorYawEasesTowardHeading(t *testing.T) {
	p := newTestPredictor()
	in := PredictionInput{Controls: components.ControlSnapshot{Forward: true}, CameraYaw: math.Pi / 2}

	r := run(p, in, 1)
	if r.Yaw <= 0 || r.Yaw >= math.Pi/2 {
		t.Errorf("yaw after one frame = %v, want between 0 and Pi/2", r.Yaw)
	}
	r = run(p, in, 120)
	if math.Abs(r.Yaw-math.Pi/2) > 1e-3 {
		t.Errorf("yaw after 2s = %v, want Pi/2", r.Yaw)
	}

	still := run(p, PredictionInput{}, 30)
	if still.Yaw != r.Yaw {
		t.Error("yaw must hold when not moving")
	}
}

func TestPredictorCorrection(t *testing.T) {
	cases := []struct {
		name string
		auth mgl64.Vec3
		want Correction
	}{
		{"within deadzone", mgl64.Vec3{0.5, 0, 0}, CorrectionNone},
		{"eased", mgl64.Vec3{2, 0, 0}, CorrectionEase},
		{"snapped", mgl64.Vec3{10, 0, 0}, CorrectionSnap},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPredictor()
			if got := p.Correct(c.auth); got != c.want {
				t.Fatalf("Correct = %v, want %v", got, c.want)
			}
			switch c.want {
			case CorrectionSnap:
				if p.Position() != c.auth {
					t.Errorf("snap left position at %v", p.Position())
				}
			case CorrectionEase:
				r := run(p, PredictionInput{}, 1)
				if r.Position.X() <= 0 || r.Position.X() >= c.auth.X() {
					t.Errorf("first eased step = %v, want between", r.Position)
				}
				r = run(p, PredictionInput{}, 300)
				if !r.Position.ApproxEqualThreshold(c.auth, 1e-9) {
					t.Errorf("eased to %v, want %v", r.Position, c.auth)
				}
			case CorrectionNone:
				if p.Position() != (mgl64.Vec3{}) {
					t.Error("deadzone error moved the prediction")
				}
			}
		})
	}
}

func TestPredictorUnseededCorrectSeeds(t *testing.T) {
	p := NewPredictor(testMovementConfig(), nil)
	if p.Seeded() {
		t.Fatal("new predictor must be unseeded")
	}
	if p.Correct(mgl64.Vec3{3, 0, 3}) != CorrectionSnap || !p.Seeded() || p.Position() != (mgl64.Vec3{3, 0, 3}) {
		t.Error("first authoritative position must seed")
	}
}
