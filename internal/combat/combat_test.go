package combat

import (
	"github.com/rs/zerolog"

	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
)

// testEntity is a minimal combatant for resolver and seeker tests.
type testEntity struct {
	id      int
	name    string
	faction string
	pos     grid.Point
	hp      int
	profile models.DefenderProfile
}

func (e *testEntity) ID() int                         { return e.id }
func (e *testEntity) Name() string                    { return e.name }
func (e *testEntity) Faction() string                 { return e.faction }
func (e *testEntity) Position() grid.Point            { return e.pos }
func (e *testEntity) IsAlive() bool                   { return e.hp > 0 }
func (e *testEntity) Profile() models.DefenderProfile { return e.profile }

func (e *testEntity) ApplyDamage(amount int) {
	e.hp -= amount
	if e.hp < 0 {
		e.hp = 0
	}
}

// testRoster serves a fixed entity list.
type testRoster struct {
	entities []Entity
}

func (r *testRoster) EntitiesWithin(center grid.Point, radius int) []Entity {
	var out []Entity
	for _, e := range r.entities {
		if grid.ManhattanDistance(center, e.Position()) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// testInventory tracks ammo per weapon name.
type testInventory struct {
	ammo map[string]int
}

func (i *testInventory) HasAmmo(weapon string, count int) bool {
	return i.ammo[weapon] >= count
}

func (i *testInventory) ConsumeAmmo(weapon string, count int) bool {
	if i.ammo[weapon] < count {
		return false
	}
	i.ammo[weapon] -= count
	return true
}

// clearLoF reports every line as clear at Manhattan distance.
type clearLoF struct{}

func (clearLoF) CheckLine(origin, target grid.Point, maxRange int) LoFResult {
	d := grid.ManhattanDistance(origin, target)
	if maxRange > 0 && d > maxRange {
		return LoFResult{Status: LoFOutOfRange, Distance: d}
	}
	return LoFResult{Status: LoFClear, Distance: d, Path: grid.Line(origin, target)}
}

// blockedLoF reports every line as blocked.
type blockedLoF struct{}

func (blockedLoF) CheckLine(origin, target grid.Point, maxRange int) LoFResult {
	return LoFResult{Status: LoFBlocked, Distance: grid.ManhattanDistance(origin, target), Path: grid.Line(origin, target)}
}

// recordingNotifier captures every notification for assertions.
type recordingNotifier struct {
	attacks    []string
	damaged    []string
	destroyed  []grid.Point
	ignited    []grid.Point
	explosions []grid.Point
	seekerHits []int
	seekerLost []int
}

func (n *recordingNotifier) AttackPerformed(attacker, weapon string, target grid.Point) {
	n.attacks = append(n.attacks, attacker+"/"+weapon)
}

func (n *recordingNotifier) EntityDamaged(name string, damage int, killed bool) {
	n.damaged = append(n.damaged, name)
}

func (n *recordingNotifier) TileDestroyed(p grid.Point) { n.destroyed = append(n.destroyed, p) }
func (n *recordingNotifier) TileIgnited(p grid.Point)   { n.ignited = append(n.ignited, p) }

func (n *recordingNotifier) ExplosionTriggered(c grid.Point, r int) {
	n.explosions = append(n.explosions, c)
}
func (n *recordingNotifier) SeekerHit(id int, target string, dmg int) {
	n.seekerHits = append(n.seekerHits, id)
}
func (n *recordingNotifier) SeekerLost(id int, last grid.Point) {
	n.seekerLost = append(n.seekerLost, id)
}

// fixedPath returns a scripted path regardless of the query.
type fixedPath struct {
	path []grid.Point
}

func (f *fixedPath) FindPath(start, goal grid.Point) []grid.Point { return f.path }

func testLogger() zerolog.Logger { return zerolog.Nop() }
