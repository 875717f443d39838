package models

// ========================= Domain Models =========================
// Minimal shapes for combat resolution. Content definitions are mapped into
// this; the combat core treats weapon stats as plain data.

// WeaponClass is the closed set of resolution shapes.
type WeaponClass string

const (
	ClassMelee        WeaponClass = "melee"
	ClassSingleTarget WeaponClass = "single_target"
	ClassAreaEffect   WeaponClass = "area_effect"
	ClassBeam         WeaponClass = "beam"
	ClassSeeker       WeaponClass = "seeker"
)

// DamageType drives the armor/shield interaction modifiers.
type DamageType string

const (
	DamageKinetic         DamageType = "kinetic"
	DamageThermal         DamageType = "thermal"
	DamageElectromagnetic DamageType = "electromagnetic"
	DamageExplosive       DamageType = "explosive"
	DamageImpact          DamageType = "impact"
)

// Weapon is a single weapon profile.
type Weapon struct {
	Name             string      `json:"name"`
	Class            WeaponClass `json:"class"`
	DamageType       DamageType  `json:"damage_type"`
	MinDamage        int         `json:"min_damage"`
	MaxDamage        int         `json:"max_damage"`
	ProjectileCount  int         `json:"projectile_count"`
	CriticalChance   int         `json:"critical_chance"` // percent
	CriticalMult     float64     `json:"critical_mult"`
	MaxRange         int         `json:"max_range"`
	AreaRadius       int         `json:"area_radius,omitempty"`
	PenetrationPower int         `json:"penetration_power,omitempty"`
	AllowIndirect    bool        `json:"allow_indirect,omitempty"`
	SeekerFuel       int         `json:"seeker_fuel,omitempty"`
	SeekerSpeed      int         `json:"seeker_speed,omitempty"`
	AmmoPerShot      int         `json:"ammo_per_shot,omitempty"`
	CooldownTurns    int         `json:"cooldown_turns,omitempty"`
	Knockback        int         `json:"knockback,omitempty"`
	Effect           string      `json:"effect,omitempty"`
	EffectChance     int         `json:"effect_chance,omitempty"` // percent
	EffectDuration   int         `json:"effect_duration,omitempty"`

	// Cooldown counter, ticked down externally once per turn. A weapon with
	// CooldownLeft > 0 cannot be selected for an attack.
	CooldownLeft int `json:"cooldown_left,omitempty"`
}

// Ready reports whether the weapon is off cooldown.
func (w *Weapon) Ready() bool { return w.CooldownLeft == 0 }

// TickCooldown advances the cooldown counter one turn.
func (w *Weapon) TickCooldown() {
	if w.CooldownLeft > 0 {
		w.CooldownLeft--
	}
}

// DefenderProfile captures the defensive stats damage math consumes.
type DefenderProfile struct {
	Armor    int  `json:"armor"`
	Shielded bool `json:"shielded"`
	Heavy    bool `json:"heavy"`
}

// WsMsg is the websocket feed envelope.
type WsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}
