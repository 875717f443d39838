// Package scheduler arbitrates turn order with speed-proportional energy
// accrual: each actor banks energy at its speed rate and acts once the bank
// reaches the action cost, so faster actors act more often without a fixed
// round-robin queue.
package scheduler

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ActionCost is the energy consumed by one standard action.
const ActionCost = 100

// Actor is anything the scheduler can track. Identity is the ID; inactive or
// cannot-act actors are excluded from selection and energy advancement.
type Actor interface {
	ID() int
	Name() string
	Speed() int
	IsActive() bool
	CanAct() bool
}

type record struct {
	actor  Actor
	energy int
}

// Scheduler tracks registered actors and a global tick counter. It is not
// safe for concurrent use; the turn loop owns it.
type Scheduler struct {
	log    zerolog.Logger
	actors map[int]*record
	order  []int // registration order, also the tie-break rule
	ticks  int
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		log:    log,
		actors: make(map[int]*record),
	}
}

// RegisterActor adds an actor at zero energy. Re-registering is a no-op.
func (s *Scheduler) RegisterActor(a Actor) {
	if a == nil {
		return
	}
	if _, ok := s.actors[a.ID()]; ok {
		return
	}
	s.actors[a.ID()] = &record{actor: a}
	s.order = append(s.order, a.ID())
	s.log.Debug().Str("actor", a.Name()).Int("speed", a.Speed()).Msg("actor registered")
}

// UnregisterActor removes an actor and drops its banked energy. Absent
// actors are a no-op.
func (s *Scheduler) UnregisterActor(a Actor) {
	if a == nil {
		return
	}
	if _, ok := s.actors[a.ID()]; !ok {
		return
	}
	delete(s.actors, a.ID())
	for i, id := range s.order {
		if id == a.ID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Debug().Str("actor", a.Name()).Msg("actor unregistered")
}

// GetActorNextTick returns how many ticks until the actor can act, computed
// analytically as ceil(max(0, ActionCost-energy)/speed). Nil for actors that
// are unregistered or can never become ready (speed <= 0). Pure query.
func (s *Scheduler) GetActorNextTick(a Actor) *int {
	if a == nil {
		return nil
	}
	rec, ok := s.actors[a.ID()]
	if !ok || a.Speed() <= 0 {
		return nil
	}
	t := ticksToReady(rec)
	return &t
}

func ticksToReady(rec *record) int {
	deficit := ActionCost - rec.energy
	if deficit <= 0 {
		return 0
	}
	speed := rec.actor.Speed()
	return (deficit + speed - 1) / speed
}

func eligible(a Actor) bool {
	return a.IsActive() && a.CanAct() && a.Speed() > 0
}

// selectNext finds the eligible actor with the fewest ticks-to-ready.
// Iteration follows registration order, so ties resolve to the earliest
// registration.
func (s *Scheduler) selectNext() (*record, int) {
	var best *record
	bestTicks := 0
	for _, id := range s.order {
		rec := s.actors[id]
		if !eligible(rec.actor) {
			continue
		}
		t := ticksToReady(rec)
		if best == nil || t < bestTicks {
			best, bestTicks = rec, t
		}
	}
	return best, bestTicks
}

// PeekNextActor returns the actor GetNextActor would pick without advancing
// any state, or nil when no eligible actor is registered.
func (s *Scheduler) PeekNextActor() Actor {
	best, _ := s.selectNext()
	if best == nil {
		return nil
	}
	return best.actor
}

// GetNextActor picks the next ready actor and commits the advance: the tick
// counter moves by the winner's ticks-to-ready and every eligible actor
// banks ticks*speed energy. Actors that are inactive or cannot act at this
// moment accrue nothing, even if the advance would have made them ready.
func (s *Scheduler) GetNextActor() Actor {
	best, ticks := s.selectNext()
	if best == nil {
		return nil
	}
	s.ticks += ticks
	if ticks > 0 {
		for _, id := range s.order {
			rec := s.actors[id]
			if eligible(rec.actor) {
				rec.energy += ticks * rec.actor.Speed()
			}
		}
	}
	s.log.Debug().
		Str("actor", best.actor.Name()).
		Int("ticks", ticks).
		Int("clock", s.ticks).
		Msg("next actor selected")
	return best.actor
}

// ActorCompletedAction deducts the action's cost from the actor's bank,
// floored at zero. Energy beyond the cost carries forward as a banked speed
// advantage. Absent actors are a no-op.
func (s *Scheduler) ActorCompletedAction(a Actor, cost int) {
	if a == nil {
		return
	}
	rec, ok := s.actors[a.ID()]
	if !ok {
		return
	}
	rec.energy -= cost
	if rec.energy < 0 {
		rec.energy = 0
	}
}

// Ticks returns the global tick counter.
func (s *Scheduler) Ticks() int { return s.ticks }

// ActorCount returns the number of registered actors.
func (s *Scheduler) ActorCount() int { return len(s.actors) }

// Reset drops every actor and zeroes the tick counter.
func (s *Scheduler) Reset() {
	s.actors = make(map[int]*record)
	s.order = nil
	s.ticks = 0
}

// GetDebugInfo dumps the scheduler state for diagnostics.
func (s *Scheduler) GetDebugInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scheduler: tick=%d actors=%d\n", s.ticks, len(s.actors))
	for _, id := range s.order {
		rec := s.actors[id]
		fmt.Fprintf(&b, "  %s: speed=%d energy=%d active=%v canAct=%v\n",
			rec.actor.Name(), rec.actor.Speed(), rec.energy,
			rec.actor.IsActive(), rec.actor.CanAct())
	}
	return b.String()
}
