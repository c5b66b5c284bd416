package components

import (
	"testing"

	"github.com/automoto/giftrush/config"
	"github.com/go-gl/mathgl/mgl64"
)

func testInterpConfig() config.InterpConfig {
	return config.InterpConfig{
		Smoothing:         10,
		RotationSmoothing: 10,
		TeleportDistance:  5,
		Epsilon:           0.001,
		MovingThreshold:   0.1,
	}
}

func TestNetInterpFirstSampleSnaps(t *testing.T) {
	var d NetInterpData
	if !d.SetTarget(mgl64.Vec3{3, 0, 3}, mgl64.Vec3{}, testInterpConfig()) {
		t.Fatal("first sample must snap")
	}
	if d.Rendered != (mgl64.Vec3{3, 0, 3}) {
		t.Errorf("Rendered = %v", d.Rendered)
	}
}

func TestNetInterpNoDriftAtRest(t *testing.T) {
	cfg := testInterpConfig()
	var d NetInterpData
	d.SetTarget(mgl64.Vec3{}, mgl64.Vec3{}, cfg)
	d.SetTarget(mgl64.Vec3{1, 0.5, -2}, mgl64.Vec3{}, cfg)

	for i := 0; i < 300; i++ {
		d.Step(cfg, 1.0/60.0)
	}
	if !d.Converged() {
		t.Fatalf("not converged: rendered %v target %v", d.Rendered, d.Target)
	}
	for i := 0; i < 600; i++ {
		d.Step(cfg, 1.0/60.0)
		if d.Rendered != d.Target {
			t.Fatalf("drifted at rest on frame %d: %v", i, d.Rendered)
		}
	}
}

func TestNetInterpNeverOvershoots(t *testing.T) {
	cfg := testInterpConfig()
	for _, dt := range []float64{1.0 / 144.0, 1.0 / 30.0, 0.5, 2} {
		var d NetInterpData
		d.SetTarget(mgl64.Vec3{}, mgl64.Vec3{}, cfg)
		d.SetTarget(mgl64.Vec3{4, 0, 4}, mgl64.Vec3{}, cfg)

		prev := d.Rendered
		for i := 0; i < 100; i++ {
			d.Step(cfg, dt)
			if d.Rendered.X() > 4 || d.Rendered.Z() > 4 || d.Rendered.X() < prev.X() {
				t.Fatalf("dt=%v frame %d: rendered %v overshot or reversed", dt, i, d.Rendered)
			}
			prev = d.Rendered
		}
	}
}

func TestNetInterpTeleportSnaps(t *testing.T) {
	cfg := testInterpConfig()
	var d NetInterpData
	d.SetTarget(mgl64.Vec3{}, mgl64.Vec3{}, cfg)

	if d.SetTarget(mgl64.Vec3{4.9, 0, 0}, mgl64.Vec3{}, cfg) {
		t.Error("move within the teleport distance must ease")
	}
	if !d.SetTarget(mgl64.Vec3{20, 0, 0}, mgl64.Vec3{}, cfg) || d.Rendered.X() != 20 {
		t.Errorf("teleport must snap, rendered %v", d.Rendered)
	}
}

func TestNetInterpYawFollowsVelocity(t *testing.T) {
	cfg := testInterpConfig()
	var d NetInterpData
	d.SetTarget(mgl64.Vec3{}, mgl64.Vec3{}, cfg)

	d.SetTarget(mgl64.Vec3{0.05, 0, 0}, mgl64.Vec3{0.05, 0, 0}, cfg)
	d.Step(cfg, 0.1)
	if d.Yaw != 0 {
		t.Errorf("yaw changed below the moving threshold: %v", d.Yaw)
	}

	d.SetTarget(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{5, 0, 0}, cfg)
	for i := 0; i < 120; i++ {
		d.Step(cfg, 1.0/60.0)
	}
	if d.Yaw < 1.5 || d.Yaw > 1.571 {
		t.Errorf("yaw = %v, want about Pi/2", d.Yaw)
	}
}
