package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
)

func seekerWeapon(fuel, speed int) *models.Weapon {
	return &models.Weapon{
		Name:            "hornet",
		Class:           models.ClassSeeker,
		DamageType:      models.DamageExplosive,
		MinDamage:       9,
		MaxDamage:       9,
		ProjectileCount: 1,
		SeekerFuel:      fuel,
		SeekerSpeed:     speed,
	}
}

func TestSeekerDefaults(t *testing.T) {
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 5, Y: 0}, hp: 10}
	s := NewSeeker(1, nil, target, &models.Weapon{Name: "hornet"}, grid.Point{})
	assert.Equal(t, 10, s.RemainingFuel())
	assert.Equal(t, grid.Point{X: 5, Y: 0}, s.LastKnown())
}

func TestSeekerFliesAndHits(t *testing.T) {
	m := grid.NewTileMap(10, 3)
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 6, Y: 1}, hp: 10}
	s := NewSeeker(1, nil, target, seekerWeapon(10, 2), grid.Point{X: 0, Y: 1})

	// scripted straight flight line, so positions are assertable exactly
	pf := &fixedPath{path: []grid.Point{
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 5, Y: 1}, {X: 6, Y: 1},
	}}

	assert.Equal(t, SeekerMoving, s.ProcessTurn(m, pf))
	assert.Equal(t, grid.Point{X: 2, Y: 1}, s.Position())
	assert.Equal(t, SeekerMoving, s.ProcessTurn(m, pf))
	assert.Equal(t, grid.Point{X: 4, Y: 1}, s.Position())
	assert.Equal(t, SeekerHitTarget, s.ProcessTurn(m, pf))
	assert.Equal(t, grid.Point{X: 6, Y: 1}, s.Position())

	// trail holds every vacated tile in order
	assert.Equal(t, []grid.Point{
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 5, Y: 1},
	}, s.Trail())
	assert.Equal(t, 7, s.RemainingFuel())
}

func TestSeekerFuelNonIncreasing(t *testing.T) {
	m := grid.NewTileMap(30, 3)
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 29, Y: 1}, hp: 10}
	s := NewSeeker(1, nil, target, seekerWeapon(3, 1), grid.Point{X: 0, Y: 1})

	prev := s.RemainingFuel()
	for i := 0; i < 6; i++ {
		state := s.ProcessTurn(m, m)
		assert.GreaterOrEqual(t, prev, s.RemainingFuel())
		assert.GreaterOrEqual(t, s.RemainingFuel(), 0)
		prev = s.RemainingFuel()
		if state != SeekerMoving {
			assert.Equal(t, SeekerExpired, state)
			return
		}
	}
	t.Fatal("seeker never expired")
}

func TestSeekerExpiresOnEmptyTank(t *testing.T) {
	m := grid.NewTileMap(30, 3)
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 29, Y: 1}, hp: 10}
	s := NewSeeker(1, nil, target, seekerWeapon(1, 2), grid.Point{X: 0, Y: 1})

	assert.Equal(t, SeekerMoving, s.ProcessTurn(m, m)) // burns the last fuel
	assert.Equal(t, 0, s.RemainingFuel())
	assert.Equal(t, SeekerExpired, s.ProcessTurn(m, m))
}

func TestSeekerHomesToLastKnownWhenTargetDies(t *testing.T) {
	m := grid.NewTileMap(10, 3)
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 4, Y: 1}, hp: 10}
	s := NewSeeker(1, nil, target, seekerWeapon(10, 2), grid.Point{X: 0, Y: 1})

	require.Equal(t, SeekerMoving, s.ProcessTurn(m, m))
	target.hp = 0 // dies mid-flight

	assert.Equal(t, SeekerLostTarget, s.ProcessTurn(m, m))
	assert.Equal(t, grid.Point{X: 4, Y: 1}, s.Position())
}

func TestSeekerRepathsWhenTargetMoves(t *testing.T) {
	m := grid.NewTileMap(10, 10)
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 6, Y: 1}, hp: 10}
	s := NewSeeker(1, nil, target, seekerWeapon(10, 2), grid.Point{X: 0, Y: 1})

	require.Equal(t, SeekerMoving, s.ProcessTurn(m, m))
	target.pos = grid.Point{X: 2, Y: 5} // breaks the cached path

	require.Equal(t, SeekerMoving, s.ProcessTurn(m, m))
	assert.Equal(t, grid.Point{X: 2, Y: 5}, s.LastKnown())
	// closing in on the new position, not the old one
	assert.Greater(t, s.Position().Y, 1)
}

func TestSeekerLostWhenNoPath(t *testing.T) {
	m := grid.NewTileMap(10, 10)
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 8, Y: 8}, hp: 10}
	// wall off the target completely
	for _, p := range []grid.Point{{X: 7, Y: 7}, {X: 8, Y: 7}, {X: 9, Y: 7}, {X: 7, Y: 8}, {X: 7, Y: 9}} {
		m.SetWall(p, 100, 0)
	}
	s := NewSeeker(1, nil, target, seekerWeapon(5, 2), grid.Point{X: 0, Y: 0})

	assert.Equal(t, SeekerLostTarget, s.ProcessTurn(m, m))
	assert.Equal(t, 4, s.RemainingFuel()) // the failed turn still burned fuel
}

func TestSeekerDestroyedOnUnwalkableStep(t *testing.T) {
	m := grid.NewTileMap(10, 3)
	wallAt := grid.Point{X: 2, Y: 1}
	m.SetWall(wallAt, 100, 0)
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 4, Y: 1}, hp: 10}
	s := NewSeeker(1, nil, target, seekerWeapon(5, 1), grid.Point{X: 0, Y: 1})

	// scripted path straight through the wall
	pf := &fixedPath{path: []grid.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, wallAt, {X: 3, Y: 1}, {X: 4, Y: 1}}}
	require.Equal(t, SeekerMoving, s.ProcessTurn(m, pf))
	assert.Equal(t, SeekerDestroyed, s.ProcessTurn(m, pf))
}

func TestSeekerHitDamageScalesWithFuel(t *testing.T) {
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 1, Y: 0}, hp: 10}
	w := seekerWeapon(10, 2)

	s := NewSeeker(1, nil, target, w, grid.Point{})
	s.fuel = 5
	assert.Equal(t, 9, s.HitDamage(&engine.FixedSource{})) // full tank, full roll

	s.fuel = 1
	assert.Equal(t, 3, s.HitDamage(&engine.FixedSource{})) // 9 * 1/3

	s.fuel = 0
	assert.Equal(t, 1, s.HitDamage(&engine.FixedSource{})) // floors at 1
}

func newTestManager(n Notifier, pf grid.Pathfinder) *SeekerManager {
	return NewSeekerManager(testLogger(), &engine.FixedSource{}, pf, n)
}

func TestManagerProcessAppliesHitAndRemoves(t *testing.T) {
	m := grid.NewTileMap(10, 3)
	owner := &testEntity{id: 1, name: "gunner", faction: "red", pos: grid.Point{X: 0, Y: 1}, hp: 10}
	target := &testEntity{id: 2, name: "prey", faction: "blue", pos: grid.Point{X: 3, Y: 1}, hp: 20}
	n := &recordingNotifier{}
	mgr := newTestManager(n, m)

	s := mgr.LaunchSeeker(owner, target, seekerWeapon(10, 2), owner.pos)
	require.Equal(t, 1, mgr.ActiveCount())

	mgr.ProcessAllSeekers(m) // two tiles of flight, still airborne
	require.Equal(t, 1, mgr.ActiveCount())
	mgr.ProcessAllSeekers(m) // reaches the target: hit, damage, removal

	assert.Equal(t, 0, mgr.ActiveCount())
	assert.Equal(t, []int{s.ID()}, n.seekerHits)
	assert.Equal(t, []string{"prey"}, n.damaged)
	assert.Less(t, target.hp, 20)
}

func TestManagerRemovesLostSeekers(t *testing.T) {
	m := grid.NewTileMap(10, 3)
	owner := &testEntity{id: 1, name: "gunner", pos: grid.Point{X: 0, Y: 1}, hp: 10}
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 8, Y: 1}, hp: 10}
	n := &recordingNotifier{}
	mgr := newTestManager(n, m)

	s := mgr.LaunchSeeker(owner, target, seekerWeapon(10, 2), owner.pos)
	target.hp = 0

	for i := 0; i < 6 && mgr.ActiveCount() > 0; i++ {
		mgr.ProcessAllSeekers(m)
	}
	assert.Equal(t, 0, mgr.ActiveCount())
	assert.Equal(t, []int{s.ID()}, n.seekerLost)
	assert.Empty(t, n.seekerHits)
}

func TestManagerQueriesAndCancel(t *testing.T) {
	m := grid.NewTileMap(10, 10)
	owner := &testEntity{id: 1, name: "gunner", pos: grid.Point{X: 0, Y: 0}, hp: 10}
	other := &testEntity{id: 3, name: "wing", pos: grid.Point{X: 0, Y: 9}, hp: 10}
	target := &testEntity{id: 2, name: "prey", pos: grid.Point{X: 9, Y: 9}, hp: 10}
	n := &recordingNotifier{}
	mgr := newTestManager(n, m)

	s1 := mgr.LaunchSeeker(owner, target, seekerWeapon(10, 2), owner.pos)
	s2 := mgr.LaunchSeeker(other, target, seekerWeapon(10, 2), other.pos)
	mgr.LaunchSeeker(owner, other, seekerWeapon(10, 2), owner.pos)

	targeting := mgr.GetSeekersTargeting(target)
	require.Len(t, targeting, 2)
	assert.ElementsMatch(t, []int{s1.ID(), s2.ID()}, []int{targeting[0].ID(), targeting[1].ID()})

	owned := mgr.GetSeekersOwnedBy(owner)
	assert.Len(t, owned, 2)

	mgr.CancelSeekersTargeting(target)
	assert.Equal(t, 1, mgr.ActiveCount())
	assert.Len(t, n.seekerLost, 2)
	assert.Empty(t, mgr.GetSeekersTargeting(target))
}
