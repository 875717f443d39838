package combat

import (
	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
)

// SeekerState is the per-turn outcome of a seeker. Moving is the only
// non-terminal state; every other state causes removal from the manager.
type SeekerState int

const (
	SeekerMoving SeekerState = iota
	SeekerHitTarget
	SeekerExpired
	SeekerLostTarget
	SeekerDestroyed
)

func (s SeekerState) String() string {
	switch s {
	case SeekerMoving:
		return "moving"
	case SeekerHitTarget:
		return "hit_target"
	case SeekerExpired:
		return "expired"
	case SeekerLostTarget:
		return "lost_target"
	case SeekerDestroyed:
		return "destroyed"
	}
	return "unknown"
}

const (
	defaultSeekerFuel  = 10
	defaultSeekerSpeed = 2
)

// track holds the seeker's guidance reference: a live entity while it can
// still be tracked, or only the last position seen once it cannot.
type track struct {
	entity    Entity
	lastKnown grid.Point
}

// live reports whether the tracked entity still exists and is alive.
func (t *track) live() bool {
	return t.entity != nil && t.entity.IsAlive()
}

// drop forgets the entity reference, keeping only the last known position.
func (t *track) drop() {
	t.entity = nil
}

// Seeker is one homing munition, advanced exactly once per turn.
type Seeker struct {
	id     int
	owner  Entity
	weapon *models.Weapon

	pos    grid.Point
	trail  []grid.Point
	target track
	fuel   int
	speed  int
	path   []grid.Point
	state  SeekerState
}

// NewSeeker launches a seeker at the given tile toward a live target.
// Missing fuel/speed stats fall back to the weapon-line defaults.
func NewSeeker(id int, owner, target Entity, w *models.Weapon, launch grid.Point) *Seeker {
	fuel := w.SeekerFuel
	if fuel <= 0 {
		fuel = defaultSeekerFuel
	}
	speed := w.SeekerSpeed
	if speed <= 0 {
		speed = defaultSeekerSpeed
	}
	return &Seeker{
		id:     id,
		owner:  owner,
		weapon: w,
		pos:    launch,
		target: track{entity: target, lastKnown: target.Position()},
		fuel:   fuel,
		speed:  speed,
		state:  SeekerMoving,
	}
}

func (s *Seeker) ID() int               { return s.id }
func (s *Seeker) Owner() Entity         { return s.owner }
func (s *Seeker) Position() grid.Point  { return s.pos }
func (s *Seeker) Trail() []grid.Point   { return s.trail }
func (s *Seeker) RemainingFuel() int    { return s.fuel }
func (s *Seeker) State() SeekerState    { return s.state }
func (s *Seeker) LastKnown() grid.Point { return s.target.lastKnown }

// TargetEntity returns the tracked entity, or nil once the target is lost.
func (s *Seeker) TargetEntity() Entity { return s.target.entity }

// ProcessTurn advances the seeker one turn: refresh the tracking reference,
// burn fuel, re-path when the cached path no longer matches either endpoint,
// then move up to speed tiles with early stops for impact, arrival at a
// stale last-known position, or unwalkable ground.
func (s *Seeker) ProcessTurn(terrain grid.Terrain, pf grid.Pathfinder) SeekerState {
	if s.state != SeekerMoving {
		return s.state
	}

	if !s.target.live() {
		s.target.drop()
		if s.pos == s.target.lastKnown {
			s.state = SeekerLostTarget
			return s.state
		}
	} else {
		s.target.lastKnown = s.target.entity.Position()
	}

	if s.fuel <= 0 {
		s.state = SeekerExpired
		return s.state
	}

	if len(s.path) == 0 || s.path[0] != s.pos || s.path[len(s.path)-1] != s.target.lastKnown {
		s.path = pf.FindPath(s.pos, s.target.lastKnown)
	}

	if len(s.path) <= 1 {
		s.fuel--
		s.state = SeekerLostTarget
		return s.state
	}

	for step := 0; step < s.speed && len(s.path) > 1; step++ {
		next := s.path[1]
		if !terrain.IsWalkable(next) {
			s.fuel--
			s.state = SeekerDestroyed
			return s.state
		}
		s.trail = append(s.trail, s.pos)
		s.pos = next
		s.path = s.path[1:]

		if s.target.live() && s.pos == s.target.entity.Position() {
			s.fuel--
			s.state = SeekerHitTarget
			return s.state
		}
		if !s.target.live() && s.pos == s.target.lastKnown {
			s.fuel--
			s.state = SeekerLostTarget
			return s.state
		}
	}

	s.fuel--
	return s.state
}

// HitDamage rolls the impact damage: the weapon's raw roll scaled by the
// fuel factor min(1, remainingFuel/3), never below 1. A seeker running on
// fumes hits softer.
func (s *Seeker) HitDamage(src engine.Source) int {
	base := rollRaw(s.weapon, src)
	factor := float64(s.fuel) / 3.0
	if factor > 1 {
		factor = 1
	}
	dmg := int(float64(base) * factor)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
