// Package combat implements the attack resolution pipeline: damage math,
// beam penetration through destructible walls, indirect arc fire, homing
// seeker munitions and the orchestrating resolver. Everything is a pure
// function of its inputs plus an injected random source; world access goes
// through narrow oracle interfaces.
package combat

import (
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
)

// Entity is the capability surface combat needs from a combatant.
type Entity interface {
	ID() int
	Name() string
	Faction() string
	Position() grid.Point
	IsAlive() bool
	Profile() models.DefenderProfile
	ApplyDamage(amount int)
}

// Roster locates potential targets around a point. Hostility filtering is
// the resolver's job.
type Roster interface {
	EntitiesWithin(center grid.Point, radius int) []Entity
}

// Inventory answers ammunition queries for physical-ammo weapons.
type Inventory interface {
	HasAmmo(weapon string, count int) bool
	ConsumeAmmo(weapon string, count int) bool
}

// LoFStatus classifies a line-of-fire check.
type LoFStatus int

const (
	LoFClear LoFStatus = iota
	LoFPartialCover
	LoFBlocked
	LoFOutOfRange
)

// LoFResult is the outcome of a line-of-fire query.
type LoFResult struct {
	Status   LoFStatus
	Distance int
	Path     []grid.Point
}

// LineOfFire is the externally supplied sight-line oracle.
type LineOfFire interface {
	CheckLine(origin, target grid.Point, maxRange int) LoFResult
}

// AccuracyFunc maps a weapon, distance and line-of-fire result to a hit
// percentage. Supplied by the caller (AI or player layer owns accuracy).
type AccuracyFunc func(w *models.Weapon, distance int, lof LoFResult) int

// TargetRecord is the per-target outcome inside an AttackResult.
type TargetRecord struct {
	Target string       `json:"target"`
	Hit    bool         `json:"hit"`
	Damage DamageResult `json:"damage"`
	Killed bool         `json:"killed"`
}

// AttackResult aggregates one resolved attack action.
type AttackResult struct {
	Attacker    string         `json:"attacker"`
	Weapon      string         `json:"weapon"`
	Records     []TargetRecord `json:"records,omitempty"`
	Hits        int            `json:"hits"`
	TotalDamage int            `json:"total_damage"`
	Kills       int            `json:"kills"`
	OutOfAmmo   bool           `json:"out_of_ammo,omitempty"`
	OnCooldown  bool           `json:"on_cooldown,omitempty"`
	Summary     string         `json:"summary"`
	Logs        []string       `json:"logs,omitempty"`

	// Beam attacks carry the trace so the caller can apply terrain
	// destruction after resolution.
	Beam *PenetrationResult `json:"beam,omitempty"`
}
