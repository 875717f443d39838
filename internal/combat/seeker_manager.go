package combat

import (
	"github.com/rs/zerolog"

	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
)

// SeekerManager owns every airborne seeker. Construct one per battle and
// pass it by handle; there is no process-wide instance.
type SeekerManager struct {
	log      zerolog.Logger
	src      engine.Source
	notifier Notifier
	pf       grid.Pathfinder

	seekers []*Seeker
	nextID  int
}

func NewSeekerManager(log zerolog.Logger, src engine.Source, pf grid.Pathfinder, n Notifier) *SeekerManager {
	if n == nil {
		n = NopNotifier{}
	}
	return &SeekerManager{
		log:      log,
		src:      src,
		notifier: n,
		pf:       pf,
		nextID:   1,
	}
}

// LaunchSeeker creates and tracks a seeker from the launch tile toward the
// target.
func (m *SeekerManager) LaunchSeeker(owner, target Entity, w *models.Weapon, launch grid.Point) *Seeker {
	s := NewSeeker(m.nextID, owner, target, w, launch)
	m.nextID++
	m.seekers = append(m.seekers, s)
	m.log.Debug().
		Int("seeker", s.ID()).
		Str("owner", owner.Name()).
		Str("target", target.Name()).
		Msg("seeker launched")
	return s
}

// ActiveCount returns the number of airborne seekers.
func (m *SeekerManager) ActiveCount() int { return len(m.seekers) }

// ProcessAllSeekers advances every active seeker exactly once, applies hit
// damage through the entity interface, raises hit/lost notifications and
// batch-removes every seeker that reached a terminal state this pass. The
// pass iterates a snapshot, so callbacks may cancel or launch seekers.
func (m *SeekerManager) ProcessAllSeekers(terrain grid.Terrain) {
	snapshot := append([]*Seeker(nil), m.seekers...)
	for _, s := range snapshot {
		state := s.ProcessTurn(terrain, m.pf)
		switch state {
		case SeekerMoving:
			// still airborne
		case SeekerHitTarget:
			target := s.TargetEntity()
			dmg := s.HitDamage(m.src)
			target.ApplyDamage(dmg)
			killed := !target.IsAlive()
			m.notifier.SeekerHit(s.ID(), target.Name(), dmg)
			m.notifier.EntityDamaged(target.Name(), dmg, killed)
			m.log.Info().
				Int("seeker", s.ID()).
				Str("target", target.Name()).
				Int("damage", dmg).
				Msg("seeker impact")
		default:
			m.notifier.SeekerLost(s.ID(), s.LastKnown())
			m.log.Debug().
				Int("seeker", s.ID()).
				Str("state", state.String()).
				Msg("seeker removed")
		}
	}
	m.removeTerminal()
}

// GetSeekersTargeting returns the active seekers tracking the entity.
func (m *SeekerManager) GetSeekersTargeting(e Entity) []*Seeker {
	var out []*Seeker
	for _, s := range m.seekers {
		if t := s.TargetEntity(); t != nil && t.ID() == e.ID() {
			out = append(out, s)
		}
	}
	return out
}

// GetSeekersOwnedBy returns the active seekers launched by the entity.
func (m *SeekerManager) GetSeekersOwnedBy(e Entity) []*Seeker {
	var out []*Seeker
	for _, s := range m.seekers {
		if s.owner != nil && s.owner.ID() == e.ID() {
			out = append(out, s)
		}
	}
	return out
}

// CancelSeekersTargeting force-loses every seeker tracking the entity and
// removes them immediately.
func (m *SeekerManager) CancelSeekersTargeting(e Entity) {
	for _, s := range m.seekers {
		if t := s.TargetEntity(); t != nil && t.ID() == e.ID() {
			s.state = SeekerLostTarget
			m.notifier.SeekerLost(s.ID(), s.LastKnown())
		}
	}
	m.removeTerminal()
}

func (m *SeekerManager) removeTerminal() {
	kept := m.seekers[:0]
	for _, s := range m.seekers {
		if s.State() == SeekerMoving {
			kept = append(kept, s)
		}
	}
	// clear the tail so dropped seekers can be collected
	for i := len(kept); i < len(m.seekers); i++ {
		m.seekers[i] = nil
	}
	m.seekers = kept
}
