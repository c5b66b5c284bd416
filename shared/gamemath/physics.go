package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DampFactor returns the fraction of the remaining distance to cover this
// frame for an exponential approach with the given rate (1/s). The result is
// in [0, 1) and independent of how dt is sliced up.
func DampFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// DampVec3 moves current toward target by DampFactor(rate, dt).
func DampVec3(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	return current.Add(target.Sub(current).Mul(DampFactor(rate, dt)))
}

// WrapAngle maps a to (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// DampAngle eases current toward target along the shortest arc.
func DampAngle(current, target, rate, dt float64) float64 {
	diff := WrapAngle(target - current)
	return WrapAngle(current + diff*DampFactor(rate, dt))
}

// Heading returns the yaw of v on the ground plane (0 faces +Z).
func Heading(v mgl64.Vec3) float64 {
	return math.Atan2(v.X(), v.Z())
}

// GroundSpeed returns the magnitude of v on the X/Z plane.
func GroundSpeed(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}

// Forward returns the unit ground-plane direction for yaw.
func Forward(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
}

// Right returns the unit ground-plane direction to the right of yaw.
func Right(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Cos(yaw), 0, math.Sin(yaw)}
}

// ChangedBeyond reports whether any axis differs by more than threshold.
func ChangedBeyond(a, b mgl64.Vec3, threshold float64) bool {
	return math.Abs(a.X()-b.X()) > threshold ||
		math.Abs(a.Y()-b.Y()) > threshold ||
		math.Abs(a.Z()-b.Z()) > threshold
}
