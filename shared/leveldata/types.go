// Package leveldata provides TMX arena parsing shared by the client core and
// its tests. It has no dependencies on ebitengine, donburi, or resolv, only
// plain data.
package leveldata

// ArenaData holds the walkable geometry and spawn points of one arena. All
// coordinates are TMX pixels; the map's Y axis is the world's Z axis.
type ArenaData struct {
	Platforms   []Platform
	SpawnPoints []SpawnPoint
	MapWidth    int
	MapHeight   int
}

// Platform is a raised walkable rectangle. Top is its surface height in
// world units.
type Platform struct {
	X, Y, W, H float64
	Top        float64
}

// Contains reports whether the map point (x, y) lies on the platform.
func (p Platform) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.W && y >= p.Y && y <= p.Y+p.H
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
