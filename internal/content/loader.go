package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/models"
)

// weaponDef is the on-disk weapon shape. Damage is given either as min/max
// ints or as a dice expression whose static bounds become min/max.
type weaponDef struct {
	Name             string  `json:"name"`
	Class            string  `json:"class"`
	DamageType       string  `json:"damage_type"`
	Damage           string  `json:"damage,omitempty"`
	MinDamage        int     `json:"min_damage,omitempty"`
	MaxDamage        int     `json:"max_damage,omitempty"`
	ProjectileCount  int     `json:"projectile_count,omitempty"`
	CriticalChance   int     `json:"critical_chance,omitempty"`
	CriticalMult     float64 `json:"critical_mult,omitempty"`
	MaxRange         int     `json:"max_range,omitempty"`
	AreaRadius       int     `json:"area_radius,omitempty"`
	PenetrationPower int     `json:"penetration_power,omitempty"`
	AllowIndirect    bool    `json:"allow_indirect,omitempty"`
	SeekerFuel       int     `json:"seeker_fuel,omitempty"`
	SeekerSpeed      int     `json:"seeker_speed,omitempty"`
	AmmoPerShot      int     `json:"ammo_per_shot,omitempty"`
	CooldownTurns    int     `json:"cooldown_turns,omitempty"`
	Knockback        int     `json:"knockback,omitempty"`
	Effect           string  `json:"effect,omitempty"`
	EffectChance     int     `json:"effect_chance,omitempty"`
	EffectDuration   int     `json:"effect_duration,omitempty"`
}

// Loadout describes one combatant template: stats plus weapon names and an
// ammunition pool per weapon.
type Loadout struct {
	Name     string         `json:"name"`
	Faction  string         `json:"faction"`
	Speed    int            `json:"speed"`
	HP       int            `json:"hp"`
	Armor    int            `json:"armor,omitempty"`
	Shielded bool           `json:"shielded,omitempty"`
	Heavy    bool           `json:"heavy,omitempty"`
	Weapons  []string       `json:"weapons"`
	Ammo     map[string]int `json:"ammo,omitempty"`
}

// Profile returns the defensive stat block of the loadout.
func (l *Loadout) Profile() models.DefenderProfile {
	return models.DefenderProfile{Armor: l.Armor, Shielded: l.Shielded, Heavy: l.Heavy}
}

type contentFile struct {
	Weapons  []weaponDef `json:"weapons"`
	Loadouts []Loadout   `json:"loadouts"`
}

// Library holds the loaded weapon and loadout definitions.
type Library struct {
	weapons  map[string]*models.Weapon
	loadouts map[string]*Loadout
}

var validClasses = map[models.WeaponClass]bool{
	models.ClassMelee:        true,
	models.ClassSingleTarget: true,
	models.ClassAreaEffect:   true,
	models.ClassBeam:         true,
	models.ClassSeeker:       true,
}

var validDamageTypes = map[models.DamageType]bool{
	models.DamageKinetic:         true,
	models.DamageThermal:         true,
	models.DamageElectromagnetic: true,
	models.DamageExplosive:       true,
	models.DamageImpact:          true,
}

// Load reads weapons.json from dir and builds the library.
func Load(dir string) (*Library, error) {
	data, err := os.ReadFile(filepath.Join(dir, "weapons.json"))
	if err != nil {
		return nil, fmt.Errorf("error reading content file: %w", err)
	}
	return Parse(data)
}

// Parse builds the library from raw JSON content.
func Parse(data []byte) (*Library, error) {
	var file contentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing content file: %w", err)
	}

	lib := &Library{
		weapons:  make(map[string]*models.Weapon, len(file.Weapons)),
		loadouts: make(map[string]*Loadout, len(file.Loadouts)),
	}

	for i := range file.Weapons {
		w, err := buildWeapon(&file.Weapons[i])
		if err != nil {
			return nil, err
		}
		if _, dup := lib.weapons[w.Name]; dup {
			return nil, fmt.Errorf("duplicate weapon %q", w.Name)
		}
		lib.weapons[w.Name] = w
	}

	for i := range file.Loadouts {
		l := &file.Loadouts[i]
		if l.Name == "" {
			return nil, fmt.Errorf("loadout %d has no name", i)
		}
		if l.Speed <= 0 || l.HP <= 0 {
			return nil, fmt.Errorf("loadout %q needs positive speed and hp", l.Name)
		}
		for _, wn := range l.Weapons {
			if _, ok := lib.weapons[wn]; !ok {
				return nil, fmt.Errorf("loadout %q references unknown weapon %q", l.Name, wn)
			}
		}
		if _, dup := lib.loadouts[l.Name]; dup {
			return nil, fmt.Errorf("duplicate loadout %q", l.Name)
		}
		lib.loadouts[l.Name] = l
	}

	return lib, nil
}

func buildWeapon(def *weaponDef) (*models.Weapon, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("weapon with empty name")
	}

	class := models.WeaponClass(strings.ToLower(strings.TrimSpace(def.Class)))
	if !validClasses[class] {
		return nil, fmt.Errorf("weapon %q: unknown class %q", def.Name, def.Class)
	}
	dt := models.DamageType(strings.ToLower(strings.TrimSpace(def.DamageType)))
	if !validDamageTypes[dt] {
		return nil, fmt.Errorf("weapon %q: unknown damage type %q", def.Name, def.DamageType)
	}

	minD, maxD := def.MinDamage, def.MaxDamage
	if def.Damage != "" {
		lo, hi, ok := engine.ExprBounds(def.Damage)
		if !ok {
			return nil, fmt.Errorf("weapon %q: bad damage expression %q", def.Name, def.Damage)
		}
		minD, maxD = lo, hi
	}
	if maxD <= 0 {
		return nil, fmt.Errorf("weapon %q: no damage given", def.Name)
	}
	if minD > maxD {
		minD, maxD = maxD, minD
	}

	w := &models.Weapon{
		Name:             def.Name,
		Class:            class,
		DamageType:       dt,
		MinDamage:        minD,
		MaxDamage:        maxD,
		ProjectileCount:  def.ProjectileCount,
		CriticalChance:   def.CriticalChance,
		CriticalMult:     def.CriticalMult,
		MaxRange:         def.MaxRange,
		AreaRadius:       def.AreaRadius,
		PenetrationPower: def.PenetrationPower,
		AllowIndirect:    def.AllowIndirect,
		SeekerFuel:       def.SeekerFuel,
		SeekerSpeed:      def.SeekerSpeed,
		AmmoPerShot:      def.AmmoPerShot,
		CooldownTurns:    def.CooldownTurns,
		Knockback:        def.Knockback,
		Effect:           def.Effect,
		EffectChance:     def.EffectChance,
		EffectDuration:   def.EffectDuration,
	}
	if w.ProjectileCount < 1 {
		w.ProjectileCount = 1
	}
	if class == models.ClassSeeker {
		if w.SeekerFuel <= 0 {
			w.SeekerFuel = 10
		}
		if w.SeekerSpeed <= 0 {
			w.SeekerSpeed = 2
		}
	}
	return w, nil
}

// Weapon returns a fresh copy of the named weapon so per-instance cooldown
// state never leaks between combatants.
func (l *Library) Weapon(name string) (*models.Weapon, bool) {
	w, ok := l.weapons[name]
	if !ok {
		return nil, false
	}
	cp := *w
	return &cp, true
}

// Loadout returns the named loadout.
func (l *Library) Loadout(name string) (*Loadout, bool) {
	lo, ok := l.loadouts[name]
	return lo, ok
}

// WeaponNames lists the loaded weapon names in stable order.
func (l *Library) WeaponNames() []string {
	names := make([]string, 0, len(l.weapons))
	for n := range l.weapons {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadoutNames lists the loaded loadout names in stable order.
func (l *Library) LoadoutNames() []string {
	names := make([]string, 0, len(l.loadouts))
	for n := range l.loadouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
