package combat

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
)

// Resolver orchestrates one attack action: resource validation, weapon-shape
// branching, invocation of the calculators, health mutation and result
// aggregation. Terrain is queried (beam traces, arc checks) but never
// mutated here; destruction is applied by the caller through the explicit
// apply steps.
type Resolver struct {
	log      zerolog.Logger
	src      engine.Source
	terrain  grid.Terrain
	lof      LineOfFire
	accuracy AccuracyFunc
	roster   Roster
	inv      Inventory
	notifier Notifier
	seekers  *SeekerManager
}

// ResolverDeps bundles the oracles a Resolver consumes.
type ResolverDeps struct {
	Source   engine.Source
	Terrain  grid.Terrain
	LoF      LineOfFire
	Accuracy AccuracyFunc
	Roster   Roster
	Inv      Inventory
	Notifier Notifier
	Seekers  *SeekerManager
}

func NewResolver(log zerolog.Logger, deps ResolverDeps) *Resolver {
	if deps.Notifier == nil {
		deps.Notifier = NopNotifier{}
	}
	return &Resolver{
		log:      log,
		src:      deps.Source,
		terrain:  deps.Terrain,
		lof:      deps.LoF,
		accuracy: deps.Accuracy,
		roster:   deps.Roster,
		inv:      deps.Inv,
		notifier: deps.Notifier,
		seekers:  deps.Seekers,
	}
}

// Resolve executes one attack with the given weapon against a target point
// and, for single-target shapes, a target entity. The returned result is
// aggregated per target; a failed precondition (cooldown, ammo) degrades to
// a no-op result instead of an error.
func (r *Resolver) Resolve(attacker Entity, w *models.Weapon, target Entity, point grid.Point) AttackResult {
	res := AttackResult{Attacker: attacker.Name(), Weapon: w.Name}

	if !w.Ready() {
		res.OnCooldown = true
		res.Summary = fmt.Sprintf("%s is still cycling (%d turns left)", w.Name, w.CooldownLeft)
		return res
	}

	// Ammo gate: insufficient ammunition aborts before anything is spent
	// or resolved.
	if w.AmmoPerShot > 0 {
		if !r.inv.HasAmmo(w.Name, w.AmmoPerShot) {
			res.OutOfAmmo = true
			res.Summary = "Out of ammunition!"
			r.log.Info().Str("attacker", attacker.Name()).Str("weapon", w.Name).Msg("out of ammunition")
			return res
		}
		r.inv.ConsumeAmmo(w.Name, w.AmmoPerShot)
	}

	r.notifier.AttackPerformed(attacker.Name(), w.Name, point)

	switch {
	case w.Class == models.ClassSeeker:
		r.resolveSeeker(attacker, w, target, &res)
	case w.Class == models.ClassAreaEffect || w.AreaRadius > 0:
		r.resolveArea(attacker, w, point, &res)
	default:
		r.resolveSingle(attacker, w, target, point, &res)
	}

	if w.CooldownTurns > 0 {
		w.CooldownLeft = w.CooldownTurns
	}

	r.finish(&res)
	return res
}

// resolveArea hits every living hostile within the weapon's Manhattan
// radius of the impact point. Area attacks never roll accuracy; each
// target's damage is rolled independently and attenuated by distance
// before armor.
func (r *Resolver) resolveArea(attacker Entity, w *models.Weapon, point grid.Point, res *AttackResult) {
	r.notifier.ExplosionTriggered(point, w.AreaRadius)
	for _, e := range r.roster.EntitiesWithin(point, w.AreaRadius) {
		if !e.IsAlive() || e.Faction() == attacker.Faction() {
			continue
		}
		dist := grid.ManhattanDistance(point, e.Position())
		dr := CalculateAoE(w, e.Profile(), dist, w.AreaRadius, r.src)
		r.applyHit(e, dr, res)
	}
	if len(res.Records) == 0 {
		res.Logs = append(res.Logs, "no hostiles in the blast")
	}
}

// resolveSingle handles melee, single-target and beam weapons against one
// target entity.
func (r *Resolver) resolveSingle(attacker Entity, w *models.Weapon, target Entity, point grid.Point, res *AttackResult) {
	if target == nil || !target.IsAlive() {
		res.Logs = append(res.Logs, "no valid target")
		return
	}

	// Melee always connects; everything else rolls against the externally
	// supplied accuracy.
	if w.Class != models.ClassMelee {
		lofRes, arc := CheckWithArc(attacker.Position(), point, w.MaxRange, w.AllowIndirect, r.lof, r.terrain)
		if arc != nil && !arc.CanArc {
			res.Logs = append(res.Logs, arc.BlockReason)
		}
		switch lofRes.Status {
		case LoFOutOfRange:
			res.Summary = fmt.Sprintf("%s is out of range", target.Name())
			return
		case LoFBlocked:
			res.Summary = fmt.Sprintf("no line of fire to %s", target.Name())
			return
		}

		chance := r.accuracy(w, lofRes.Distance, lofRes)
		if !engine.Percent(r.src, chance) {
			res.Records = append(res.Records, TargetRecord{Target: target.Name(), Damage: Miss()})
			res.Logs = append(res.Logs, fmt.Sprintf("Missed %s (%d%% to hit)", target.Name(), chance))
			return
		}
	}

	if w.Class == models.ClassBeam {
		trace := TraceBeam(w, attacker.Position(), point, r.terrain)
		res.Beam = &trace
		if !trace.ReachedTarget() {
			res.Records = append(res.Records, TargetRecord{Target: target.Name(), Damage: Miss()})
			res.Logs = append(res.Logs, fmt.Sprintf("beam stopped at %s", trace.StoppedAt))
			return
		}
		dr := calculate(w, target.Profile(), r.src, func(d int) int {
			if d > trace.DamageAtTarget {
				return trace.DamageAtTarget
			}
			return d
		})
		r.applyHit(target, dr, res)
		return
	}

	dr := Calculate(w, target.Profile(), r.src)
	r.applyHit(target, dr, res)
}

// resolveSeeker hands the munition to the seeker manager; damage lands on a
// later turn when the seeker connects.
func (r *Resolver) resolveSeeker(attacker Entity, w *models.Weapon, target Entity, res *AttackResult) {
	if target == nil || !target.IsAlive() {
		res.Logs = append(res.Logs, "no valid target")
		return
	}
	s := r.seekers.LaunchSeeker(attacker, target, w, attacker.Position())
	res.Logs = append(res.Logs, fmt.Sprintf("seeker %d locked on %s", s.ID(), target.Name()))
	res.Summary = fmt.Sprintf("%s launches a seeker at %s", attacker.Name(), target.Name())
}

func (r *Resolver) applyHit(target Entity, dr DamageResult, res *AttackResult) {
	target.ApplyDamage(dr.FinalDamage)
	killed := !target.IsAlive()
	r.notifier.EntityDamaged(target.Name(), dr.FinalDamage, killed)
	res.Records = append(res.Records, TargetRecord{
		Target: target.Name(),
		Hit:    true,
		Damage: dr,
		Killed: killed,
	})
	line := fmt.Sprintf("%s takes %d damage", target.Name(), dr.FinalDamage)
	if dr.Critical {
		line += " (critical)"
	}
	if killed {
		line += " and is destroyed"
	}
	res.Logs = append(res.Logs, line)
}

// finish fills the aggregate totals and the summary string.
func (r *Resolver) finish(res *AttackResult) {
	for _, rec := range res.Records {
		if rec.Hit {
			res.Hits++
			res.TotalDamage += rec.Damage.FinalDamage
		}
		if rec.Killed {
			res.Kills++
		}
	}
	if res.Summary == "" {
		switch {
		case res.Hits > 0:
			res.Summary = fmt.Sprintf("%s hits %d target(s) for %d damage", res.Weapon, res.Hits, res.TotalDamage)
			if res.Kills > 0 {
				res.Summary += fmt.Sprintf(", %d killed", res.Kills)
			}
		case len(res.Records) > 0:
			res.Summary = fmt.Sprintf("%s misses", res.Attacker)
		default:
			res.Summary = fmt.Sprintf("%s attacks to no effect", res.Attacker)
		}
	}
	r.log.Info().
		Str("attacker", res.Attacker).
		Str("weapon", res.Weapon).
		Int("hits", res.Hits).
		Int("damage", res.TotalDamage).
		Int("kills", res.Kills).
		Msg(res.Summary)
}
