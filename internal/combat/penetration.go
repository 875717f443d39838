package combat

import (
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
)

// PenetrationDepthUnlimited is the saturation sentinel returned by
// EstimatePenetrationDepth when the material has no effective strength.
const PenetrationDepthUnlimited = 9999.0

// PenetrationResult is the outcome of one beam trace. The calculation never
// mutates the world; ApplyBeamDestruction performs the mutation separately.
type PenetrationResult struct {
	Path           []grid.Point `json:"path"`
	DestroyedTiles []grid.Point `json:"destroyed_tiles,omitempty"`
	StoppedAt      *grid.Point  `json:"stopped_at,omitempty"`
	DamageAtTarget int          `json:"damage_at_target"`
}

// ReachedTarget reports whether the beam arrived; equivalent to a nil
// StoppedAt.
func (r *PenetrationResult) ReachedTarget() bool { return r.StoppedAt == nil }

// Material describes a wall type for penetration estimates.
type Material struct {
	MaxHP    int
	Hardness int
}

// wallStrength is the penetrating power needed to destroy a standing tile.
func wallStrength(hp, hardness int) int {
	return hp + hardness/5
}

// TraceBeam walks the rasterized line from origin to target, spending the
// beam's power budget (MaxDamage + PenetrationPower) on standing walls.
// Destroying a wall costs its wall strength from the budget and bleeds half
// that strength off the damage delivered at the target. A wall too strong to
// destroy, or leaving the map, stops the beam with zero target damage.
func TraceBeam(w *models.Weapon, origin, target grid.Point, terrain grid.Terrain) PenetrationResult {
	res := PenetrationResult{
		Path:           grid.Line(origin, target),
		DamageAtTarget: w.MaxDamage,
	}
	power := w.MaxDamage + w.PenetrationPower

	for _, p := range res.Path[1:] {
		if !terrain.InBounds(p) {
			stopAt := p
			res.StoppedAt = &stopAt
			res.DamageAtTarget = 0
			return res
		}
		if terrain.BlocksProjectile(p) {
			strength := wallStrength(terrain.TileHP(p), terrain.TileHardness(p))
			if power < strength {
				stopAt := p
				res.StoppedAt = &stopAt
				res.DamageAtTarget = 0
				return res
			}
			power -= strength
			res.DestroyedTiles = append(res.DestroyedTiles, p)
			res.DamageAtTarget -= strength / 2
			if res.DamageAtTarget < 0 {
				res.DamageAtTarget = 0
			}
		}
		if p == target {
			break
		}
	}
	return res
}

// ApplyBeamDestruction mutates the terrain for every tile the trace
// destroyed and raises the matching notifications. Thermal beams ignite the
// wreckage they leave behind.
func ApplyBeamDestruction(terrain grid.Terrain, dt models.DamageType, res *PenetrationResult, n Notifier) {
	for _, p := range res.DestroyedTiles {
		terrain.DestroyTile(p)
		n.TileDestroyed(p)
		if dt == models.DamageThermal {
			n.TileIgnited(p)
		}
	}
}

// EstimatePenetrationDepth returns how many walls of the given material the
// weapon's beam can punch through, saturating when the material has no
// effective strength.
func EstimatePenetrationDepth(w *models.Weapon, m Material) float64 {
	strength := wallStrength(m.MaxHP, m.Hardness)
	if strength <= 0 {
		return PenetrationDepthUnlimited
	}
	return float64(w.MaxDamage+w.PenetrationPower) / float64(strength)
}
