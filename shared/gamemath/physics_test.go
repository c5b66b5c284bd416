package gamemath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDampFactorFrameRateIndependent(t *testing.T) {
	// Two half steps must land where one full step does.
	target := mgl64.Vec3{10, 0, 0}
	one := DampVec3(mgl64.Vec3{}, target, 8, 0.1)
	half := DampVec3(DampVec3(mgl64.Vec3{}, target, 8, 0.05), target, 8, 0.05)
	if !one.ApproxEqualThreshold(half, 1e-9) {
		t.Errorf("one step %v, two half steps %v", one, half)
	}
	if DampFactor(8, 0) != 0 || DampFactor(0, 1) != 0 {
		t.Error("zero rate or dt must not move")
	}
	if f := DampFactor(1000, 10); f >= 1 {
		t.Errorf("factor %v must stay below 1", f)
	}
}

func TestDampVec3NoOvershoot(t *testing.T) {
	cur := mgl64.Vec3{0, 0, 0}
	target := mgl64.Vec3{3, -2, 5}
	for i := 0; i < 200; i++ {
		cur = DampVec3(cur, target, 30, 0.5)
		if cur.X() > target.X() || cur.Y() < target.Y() || cur.Z() > target.Z() {
			t.Fatalf("overshot target at step %d: %v", i, cur)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, c := range cases {
		if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDampAngleShortestArc(t *testing.T) {
	// From just below +Pi to just above -Pi the short way crosses Pi.
	cur := math.Pi - 0.1
	next := DampAngle(cur, -math.Pi+0.1, 5, 0.05)
	if next < cur && next > 0 {
		t.Errorf("took the long way: %v -> %v", cur, next)
	}
}

func TestAxes(t *testing.T) {
	f, r := Forward(0), Right(0)
	if !f.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Forward(0) = %v", f)
	}
	if math.Abs(f.Dot(r)) > 1e-9 {
		t.Errorf("forward and right not orthogonal: %v %v", f, r)
	}
	if h := Heading(Forward(1.2)); math.Abs(h-1.2) > 1e-9 {
		t.Errorf("Heading(Forward(1.2)) = %v", h)
	}
}

func TestChangedBeyond(t *testing.T) {
	a := mgl64.Vec3{1, 1, 1}
	if ChangedBeyond(a, a.Add(mgl64.Vec3{0.04, -0.04, 0.04}), 0.05) {
		t.Error("0.04 must not count as movement")
	}
	if !ChangedBeyond(a, a.Add(mgl64.Vec3{0, 0, 0.06}), 0.05) {
		t.Error("0.06 on one axis must count as movement")
	}
}
