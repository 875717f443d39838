package grid

// CeilingState reports whether a tile is covered from above. Unknown means
// the map carries no explicit ceiling data for the tile and callers should
// fall back to inference from neighboring walls.
type CeilingState int

const (
	CeilingUnknown CeilingState = iota
	CeilingNone
	CeilingPresent
)

// Terrain is the tile query/mutate oracle the combat calculators consume.
// The real world implementation lives outside the combat core; TileMap below
// is the in-package implementation used by the demo and the tests.
type Terrain interface {
	InBounds(p Point) bool
	IsWalkable(p Point) bool
	BlocksProjectile(p Point) bool
	TileHP(p Point) int
	TileHardness(p Point) int
	DestroyTile(p Point)
	CeilingAt(p Point) CeilingState
}

// Pathfinder produces an ordered tile path from start to goal, start
// inclusive, or nil when the goal is unreachable.
type Pathfinder interface {
	FindPath(start, goal Point) []Point
}
