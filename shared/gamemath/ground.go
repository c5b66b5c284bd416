package gamemath

import (
	"math"

	"github.com/automoto/giftrush/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

const (
	tagPlatform = "platform"
	tagProbe    = "probe"

	// GroundEpsilon is how far above a surface a character still counts as
	// standing on it.
	GroundEpsilon = 0.01
	// StepHeight is how far below a platform top the feet may be and still be
	// lifted onto it.
	StepHeight = 0.05

	cellSize = 16
)

// Ground answers surface height queries for the arena: an infinite floor plus
// raised platforms indexed in a resolv space on the X/Z plane.
type Ground struct {
	space     *resolv.Space
	probe     *resolv.Object
	platforms map[*resolv.Object]leveldata.Platform
	scale     float64 // world units per map pixel
	floor     float64
}

// NewGround builds a Ground from arena data. A nil arena yields a flat floor.
func NewGround(data *leveldata.ArenaData, unitsPerPixel, floor float64) *Ground {
	g := &Ground{
		platforms: make(map[*resolv.Object]leveldata.Platform),
		scale:     unitsPerPixel,
		floor:     floor,
	}
	if data == nil || unitsPerPixel <= 0 {
		return g
	}

	g.space = resolv.NewSpace(data.MapWidth, data.MapHeight, cellSize, cellSize)
	for _, p := range data.Platforms {
		obj := resolv.NewObject(p.X, p.Y, p.W, p.H, tagPlatform)
		obj.SetShape(resolv.NewRectangle(0, 0, p.W, p.H))
		g.space.Add(obj)
		g.platforms[obj] = p
	}

	g.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	g.space.Add(g.probe)
	return g
}

// Floor returns the height of the infinite floor.
func (g *Ground) Floor() float64 {
	if g == nil {
		return 0
	}
	return g.floor
}

// SurfaceHeight returns the height of the highest surface under pos that the
// feet can stand on: platform tops no more than StepHeight above pos.Y, else
// the floor.
func (g *Ground) SurfaceHeight(pos mgl64.Vec3) float64 {
	if g == nil {
		return 0
	}
	height := g.floor
	if g.space == nil {
		return height
	}

	mx, my := pos.X()/g.scale, pos.Z()/g.scale
	g.probe.X, g.probe.Y = mx, my
	g.probe.Update()

	check := g.probe.Check(0, 0, tagPlatform)
	if check == nil {
		return height
	}
	for _, obj := range check.ObjectsByTags(tagPlatform) {
		p, ok := g.platforms[obj]
		if !ok || !p.Contains(mx, my) {
			continue
		}
		if p.Top <= pos.Y()+StepHeight {
			height = math.Max(height, p.Top)
		}
	}
	return height
}

// Grounded reports whether a character at pos moving with vel is standing on
// a surface.
func (g *Ground) Grounded(pos, vel mgl64.Vec3) bool {
	return vel.Y() <= 0 && pos.Y() <= g.SurfaceHeight(pos)+GroundEpsilon
}

// PlatformCount returns the number of indexed platforms.
func (g *Ground) PlatformCount() int {
	if g == nil {
		return 0
	}
	return len(g.platforms)
}
