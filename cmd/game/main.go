package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pefman/gridfire/internal/combat"
	"github.com/pefman/gridfire/internal/config"
	"github.com/pefman/gridfire/internal/content"
	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/logging"
	"github.com/pefman/gridfire/internal/models"
	"github.com/pefman/gridfire/internal/scheduler"
	"github.com/pefman/gridfire/internal/server"
	"github.com/pefman/gridfire/internal/stats"
)

// combatant is one actor on the field: scheduler actor and combat entity in
// one struct.
type combatant struct {
	id      int
	name    string
	faction string
	speed   int
	hp      int
	profile models.DefenderProfile
	pos     grid.Point
	weapons []*models.Weapon
	ammo    map[string]int
}

func (c *combatant) ID() int                         { return c.id }
func (c *combatant) Name() string                    { return c.name }
func (c *combatant) Faction() string                 { return c.faction }
func (c *combatant) Speed() int                      { return c.speed }
func (c *combatant) Position() grid.Point            { return c.pos }
func (c *combatant) IsAlive() bool                   { return c.hp > 0 }
func (c *combatant) IsActive() bool                  { return c.IsAlive() }
func (c *combatant) Profile() models.DefenderProfile { return c.profile }

func (c *combatant) CanAct() bool {
	if !c.IsAlive() {
		return false
	}
	for _, w := range c.weapons {
		if w.Ready() {
			return true
		}
	}
	return false
}

func (c *combatant) ApplyDamage(amount int) {
	c.hp -= amount
	if c.hp < 0 {
		c.hp = 0
	}
}

// readyWeapon picks the first weapon that is off cooldown and has ammo.
func (c *combatant) readyWeapon() *models.Weapon {
	for _, w := range c.weapons {
		if !w.Ready() {
			continue
		}
		if w.AmmoPerShot > 0 && c.ammo[w.Name] < w.AmmoPerShot {
			continue
		}
		return w
	}
	return nil
}

// battle wires the field state into the oracle interfaces the resolver
// consumes. Inventory resolves against whoever is currently acting. The
// mutex serializes skirmish turns against HTTP state snapshots; oracle
// callbacks run inside an already-locked turn and must not take it.
type battle struct {
	mu         sync.Mutex
	combatants []*combatant
	acting     *combatant
}

func (b *battle) EntitiesWithin(center grid.Point, radius int) []combat.Entity {
	var out []combat.Entity
	for _, c := range b.combatants {
		if grid.ManhattanDistance(center, c.pos) <= radius {
			out = append(out, c)
		}
	}
	return out
}

func (b *battle) HasAmmo(weapon string, count int) bool {
	return b.acting != nil && b.acting.ammo[weapon] >= count
}

func (b *battle) ConsumeAmmo(weapon string, count int) bool {
	if !b.HasAmmo(weapon, count) {
		return false
	}
	b.acting.ammo[weapon] -= count
	return true
}

// nearestEnemy returns the closest living combatant of another faction.
func (b *battle) nearestEnemy(of *combatant) *combatant {
	var best *combatant
	bestDist := 0
	for _, c := range b.combatants {
		if !c.IsAlive() || c.faction == of.faction {
			continue
		}
		d := grid.ManhattanDistance(of.pos, c.pos)
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func (b *battle) factionAlive(faction string) bool {
	for _, c := range b.combatants {
		if c.faction == faction && c.IsAlive() {
			return true
		}
	}
	return false
}

// terrainLoF adapts the tile map to the line-of-fire oracle: the straight
// line is clear when no tile between the endpoints blocks projectiles.
type terrainLoF struct {
	terrain grid.Terrain
}

func (t terrainLoF) CheckLine(origin, target grid.Point, maxRange int) combat.LoFResult {
	dist := grid.ManhattanDistance(origin, target)
	if maxRange > 0 && dist > maxRange {
		return combat.LoFResult{Status: combat.LoFOutOfRange, Distance: dist}
	}
	path := grid.Line(origin, target)
	for _, p := range path[1:] {
		if p == target {
			break
		}
		if t.terrain.BlocksProjectile(p) {
			return combat.LoFResult{Status: combat.LoFBlocked, Distance: dist, Path: path}
		}
	}
	return combat.LoFResult{Status: combat.LoFClear, Distance: dist, Path: path}
}

// accuracy: 90% base, -3 per tile, clamped to [10, 95].
func accuracy(w *models.Weapon, distance int, lof combat.LoFResult) int {
	chance := 90 - 3*distance
	if chance < 10 {
		chance = 10
	}
	if chance > 95 {
		chance = 95
	}
	return chance
}

func demoArena() *grid.TileMap {
	m := grid.NewTileMap(24, 12)
	// a broken wall line down the middle
	for y := 2; y < 10; y++ {
		if y == 5 || y == 6 {
			continue
		}
		m.SetWall(grid.Point{X: 12, Y: y}, 20, 10)
	}
	// a bunker with a ceiling in the north-east corner
	for x := 18; x < 22; x++ {
		m.SetCeiling(grid.Point{X: x, Y: 2}, grid.CeilingPresent)
	}
	return m
}

func demoCombatants(log zerolog.Logger, lib *content.Library) []*combatant {
	spawns := []struct {
		loadout string
		name    string
		pos     grid.Point
	}{
		{"trooper", "Vex", grid.Point{X: 2, Y: 3}},
		{"gun-platform", "Anchor", grid.Point{X: 3, Y: 8}},
		{"raider", "Skarn", grid.Point{X: 21, Y: 4}},
		{"raider", "Morrik", grid.Point{X: 20, Y: 9}},
	}

	var out []*combatant
	for i, sp := range spawns {
		lo, ok := lib.Loadout(sp.loadout)
		if !ok {
			log.Warn().Str("loadout", sp.loadout).Msg("loadout missing, skipping spawn")
			continue
		}
		c := &combatant{
			id:      i + 1,
			name:    sp.name,
			faction: lo.Faction,
			speed:   lo.Speed,
			hp:      lo.HP,
			profile: lo.Profile(),
			pos:     sp.pos,
			ammo:    map[string]int{},
		}
		for _, wn := range lo.Weapons {
			w, _ := lib.Weapon(wn)
			c.weapons = append(c.weapons, w)
		}
		for wn, n := range lo.Ammo {
			c.ammo[wn] = n
		}
		out = append(out, c)
	}
	return out
}

// builtinContent backs the demo when no content directory is present.
const builtinContent = `{
	"weapons": [
		{"name": "autogun", "class": "single_target", "damage_type": "kinetic",
		 "damage": "2d6+1", "projectile_count": 2, "max_range": 14, "ammo_per_shot": 1},
		{"name": "thermal lance", "class": "beam", "damage_type": "thermal",
		 "min_damage": 8, "max_damage": 14, "penetration_power": 12, "cooldown_turns": 2},
		{"name": "mortar", "class": "area_effect", "damage_type": "explosive",
		 "damage": "3d6", "area_radius": 3, "allow_indirect": true, "ammo_per_shot": 1, "cooldown_turns": 1},
		{"name": "hornet rack", "class": "seeker", "damage_type": "explosive",
		 "damage": "2d6+3", "ammo_per_shot": 1, "cooldown_turns": 3},
		{"name": "breacher claw", "class": "melee", "damage_type": "impact",
		 "min_damage": 4, "max_damage": 9, "critical_chance": 15, "critical_mult": 1.5}
	],
	"loadouts": [
		{"name": "trooper", "faction": "wardens", "speed": 12, "hp": 30, "armor": 2,
		 "weapons": ["autogun", "breacher claw"], "ammo": {"autogun": 24}},
		{"name": "gun-platform", "faction": "wardens", "speed": 7, "hp": 45, "armor": 4, "heavy": true,
		 "weapons": ["mortar", "hornet rack"], "ammo": {"mortar": 6, "hornet rack": 3}},
		{"name": "raider", "faction": "scourge", "speed": 14, "hp": 26, "shielded": true,
		 "weapons": ["autogun", "thermal lance"], "ammo": {"autogun": 20}}
	]
}`

func loadLibrary(log zerolog.Logger) *content.Library {
	dir := config.GetString("content.dir")
	lib, err := content.Load(dir)
	if err == nil {
		log.Info().Str("dir", dir).Msg("content loaded")
		return lib
	}
	log.Warn().Err(err).Msg("content dir unavailable, using built-in definitions")
	lib, err = content.Parse([]byte(builtinContent))
	if err != nil {
		log.Fatal().Err(err).Msg("built-in content invalid")
	}
	return lib
}

func main() {
	if err := config.Load("."); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	log := logging.New(config.GetString("logLevel"))

	store, err := stats.Open(log, config.GetString("stats.path"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open battle log")
	}
	defer store.Close()

	lib := loadLibrary(log)
	terrain := demoArena()
	b := &battle{combatants: demoCombatants(log, lib)}

	sched := scheduler.New(log)
	for _, c := range b.combatants {
		sched.RegisterActor(c)
	}

	srv := server.New(log, store, func() any {
		type actorState struct {
			Name    string     `json:"name"`
			Faction string     `json:"faction"`
			HP      int        `json:"hp"`
			Pos     grid.Point `json:"pos"`
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		out := struct {
			Ticks  int          `json:"ticks"`
			Actors []actorState `json:"actors"`
		}{Ticks: sched.Ticks()}
		for _, c := range b.combatants {
			out.Actors = append(out.Actors, actorState{c.name, c.faction, c.hp, c.pos})
		}
		return out
	})

	src := engine.NewSource(int64(config.GetInt("game.seed")))
	seekers := combat.NewSeekerManager(log, src, terrain, srv)
	resolver := combat.NewResolver(log, combat.ResolverDeps{
		Source:   src,
		Terrain:  terrain,
		LoF:      terrainLoF{terrain: terrain},
		Accuracy: accuracy,
		Roster:   b,
		Inv:      b,
		Notifier: srv,
		Seekers:  seekers,
	})

	go runSkirmish(log, b, sched, resolver, seekers, store, terrain, srv)

	if err := srv.ListenAndServe(config.GetInt("server.port")); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// runSkirmish drives scheduler turns until one faction is wiped or the turn
// cap runs out.
func runSkirmish(log zerolog.Logger, b *battle, sched *scheduler.Scheduler,
	resolver *combat.Resolver, seekers *combat.SeekerManager, store *stats.Store,
	terrain *grid.TileMap, notifier combat.Notifier) {

	const maxTurns = 200

	for turn := 0; turn < maxTurns; turn++ {
		b.mu.Lock()
		if !b.factionAlive("wardens") || !b.factionAlive("scourge") {
			b.mu.Unlock()
			break
		}

		actor := sched.GetNextActor()
		if actor == nil {
			b.mu.Unlock()
			break
		}
		c := actor.(*combatant)

		target := b.nearestEnemy(c)
		w := c.readyWeapon()
		if target != nil && w != nil {
			b.acting = c
			res := resolver.Resolve(c, w, target, target.pos)
			b.acting = nil

			if res.Beam != nil && res.Beam.ReachedTarget() {
				combat.ApplyBeamDestruction(terrain, w.DamageType, res.Beam, notifier)
			}
			if err := store.RecordAttack(res); err != nil {
				log.Warn().Err(err).Msg("failed to record attack")
			}
			log.Info().Str("actor", c.name).Msg(res.Summary)
		}

		seekers.ProcessAllSeekers(terrain)
		for _, w := range c.weapons {
			w.TickCooldown()
		}
		sched.ActorCompletedAction(c, scheduler.ActionCost)
		b.mu.Unlock()
	}

	log.Info().
		Bool("wardensAlive", b.factionAlive("wardens")).
		Bool("scourgeAlive", b.factionAlive("scourge")).
		Int("ticks", sched.Ticks()).
		Msg("skirmish over")
}
