package combat

import (
	"fmt"

	"github.com/pefman/gridfire/internal/grid"
)

// DefaultArcHeight is the minimum arc height used when indirect fire is
// retried after a blocked direct line.
const DefaultArcHeight = 2

// ReinforcedCeilingThreshold is the ceiling strength at or above which an
// orbital strike cannot break through.
const ReinforcedCeilingThreshold = 30

// ArcResult is the outcome of an indirect-fire eligibility check.
type ArcResult struct {
	CanArc      bool         `json:"can_arc"`
	BlockReason string       `json:"block_reason,omitempty"`
	Path        []grid.Point `json:"path,omitempty"`
	ArcHeight   int          `json:"arc_height,omitempty"`
	ImpactZone  []grid.Point `json:"impact_zone,omitempty"`
}

// OrbitalClearance classifies the sky above a target tile.
type OrbitalClearance int

const (
	OrbitalClear OrbitalClearance = iota
	OrbitalDestructibleCeiling
	OrbitalBlocked
)

// OrbitalClearanceResult carries the classification and the ceiling
// strength that produced it.
type OrbitalClearanceResult struct {
	Clearance       OrbitalClearance `json:"clearance"`
	CeilingStrength int              `json:"ceiling_strength"`
}

// hasCeiling resolves a tile's cover state, falling back to inference when
// the map carries no explicit data: a tile counts as covered when at least
// three of its four orthogonal neighbors are standing blocking tiles.
func hasCeiling(terrain grid.Terrain, p grid.Point) bool {
	switch terrain.CeilingAt(p) {
	case grid.CeilingPresent:
		return true
	case grid.CeilingNone:
		return false
	}
	blocking := 0
	for _, n := range grid.OrthogonalNeighbors(p) {
		if terrain.InBounds(n) && terrain.BlocksProjectile(n) {
			blocking++
		}
	}
	return blocking >= 3
}

// ceilingStrength is the average hardness of the blocking tiles around p.
func ceilingStrength(terrain grid.Terrain, p grid.Point) int {
	total, count := 0, 0
	for _, n := range grid.OrthogonalNeighbors(p) {
		if terrain.InBounds(n) && terrain.BlocksProjectile(n) {
			total += terrain.TileHardness(n)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / count
}

// CanArcTo checks indirect-fire eligibility: the lobbed shot is blocked if
// any tile along the path past the origin, or the target itself, sits under
// a ceiling.
func CanArcTo(origin, target grid.Point, minArcHeight int, terrain grid.Terrain) ArcResult {
	path := grid.Line(origin, target)
	checked := path[1:]
	if len(checked) == 0 {
		checked = path // origin == target, still honor a ceiling overhead
	}
	for _, p := range checked {
		if hasCeiling(terrain, p) {
			return ArcResult{
				BlockReason: fmt.Sprintf("blocked by ceiling at %s - cannot fire indoors", p),
			}
		}
	}
	return ArcResult{
		CanArc:    true,
		Path:      path,
		ArcHeight: minArcHeight,
	}
}

// CheckOrbitalClearance classifies the target for orbital strikes: clear sky,
// a ceiling weak enough to punch through, or reinforced cover.
func CheckOrbitalClearance(target grid.Point, terrain grid.Terrain) OrbitalClearanceResult {
	if !hasCeiling(terrain, target) {
		return OrbitalClearanceResult{Clearance: OrbitalClear}
	}
	strength := ceilingStrength(terrain, target)
	if strength < ReinforcedCeilingThreshold {
		return OrbitalClearanceResult{Clearance: OrbitalDestructibleCeiling, CeilingStrength: strength}
	}
	return OrbitalClearanceResult{Clearance: OrbitalBlocked, CeilingStrength: strength}
}

// GetImpactZone returns every tile within Manhattan distance radius of the
// target, the target included.
func GetImpactZone(target grid.Point, radius int) []grid.Point {
	if radius < 0 {
		return nil
	}
	zone := make([]grid.Point, 0, 2*radius*(radius+1)+1)
	for dy := -radius; dy <= radius; dy++ {
		span := radius - abs(dy)
		for dx := -span; dx <= span; dx++ {
			zone = append(zone, grid.Point{X: target.X + dx, Y: target.Y + dy})
		}
	}
	return zone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CalculateAoEFalloff attenuates indirect-fire damage: full at the impact
// point, linear decay to a 25% floor at and beyond the radius.
func CalculateAoEFalloff(base, distance, radius int) int {
	floor := base / 4
	if distance <= 0 {
		return base
	}
	if radius <= 0 || distance >= radius {
		return floor
	}
	d := base - (base-floor)*distance/radius
	if d < floor {
		d = floor
	}
	return d
}

// CheckWithArc tries the direct line of fire first; when it is blocked and
// the weapon permits indirect fire, a successful arc substitutes its path as
// an unobstructed line. The ArcResult is returned whenever an arc was
// attempted, so callers can surface the block reason.
func CheckWithArc(origin, target grid.Point, maxRange int, allowIndirect bool, lof LineOfFire, terrain grid.Terrain) (LoFResult, *ArcResult) {
	direct := lof.CheckLine(origin, target, maxRange)
	if direct.Status != LoFBlocked || !allowIndirect {
		return direct, nil
	}
	arc := CanArcTo(origin, target, DefaultArcHeight, terrain)
	if !arc.CanArc {
		return direct, &arc
	}
	return LoFResult{
		Status:   LoFClear,
		Distance: direct.Distance,
		Path:     arc.Path,
	}, &arc
}
