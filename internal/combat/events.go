package combat

import "github.com/pefman/gridfire/internal/grid"

// Notifier receives fire-and-forget combat notifications: synchronous,
// in-process, no return values, no delivery guarantee.
type Notifier interface {
	AttackPerformed(attacker, weapon string, target grid.Point)
	EntityDamaged(name string, damage int, killed bool)
	TileDestroyed(p grid.Point)
	TileIgnited(p grid.Point)
	ExplosionTriggered(center grid.Point, radius int)
	SeekerHit(seekerID int, target string, damage int)
	SeekerLost(seekerID int, lastKnown grid.Point)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) AttackPerformed(string, string, grid.Point) {}
func (NopNotifier) EntityDamaged(string, int, bool)            {}
func (NopNotifier) TileDestroyed(grid.Point)                   {}
func (NopNotifier) TileIgnited(grid.Point)                     {}
func (NopNotifier) ExplosionTriggered(grid.Point, int)         {}
func (NopNotifier) SeekerHit(int, string, int)                 {}
func (NopNotifier) SeekerLost(int, grid.Point)                 {}
