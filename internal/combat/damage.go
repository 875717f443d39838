package combat

import (
	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/models"
)

// DamageResult is the outcome of one damage computation. RawDamage is the
// pre-critical roll; TypeModifier is the signed delta the damage-type
// interaction added or removed. A landed hit always has FinalDamage >= 1;
// the zero value (via Miss) is the only case with FinalDamage == 0.
type DamageResult struct {
	RawDamage      int    `json:"raw_damage"`
	Critical       bool   `json:"critical,omitempty"`
	CriticalBonus  int    `json:"critical_bonus,omitempty"`
	TypeModifier   int    `json:"type_modifier,omitempty"`
	ArmorReduction int    `json:"armor_reduction,omitempty"`
	FinalDamage    int    `json:"final_damage"`
	Effect         string `json:"effect,omitempty"`
	EffectDuration int    `json:"effect_duration,omitempty"`
}

// Miss returns the distinct zero result recorded when an accuracy check
// fails. The accuracy check itself belongs to the caller.
func Miss() DamageResult {
	return DamageResult{}
}

// Calculate resolves a landed hit: raw roll, critical, damage-type
// interaction, armor reduction, status effect.
func Calculate(w *models.Weapon, def models.DefenderProfile, src engine.Source) DamageResult {
	return calculate(w, def, src, nil)
}

// CalculateAoE resolves a landed area hit: the rolled damage passes through
// distance falloff before armor reduction.
func CalculateAoE(w *models.Weapon, def models.DefenderProfile, distance, radius int, src engine.Source) DamageResult {
	return calculate(w, def, src, func(d int) int {
		return CalculateAoEDamage(d, distance, radius)
	})
}

// calculate runs the damage pipeline; preArmor, when set, transforms the
// modified damage before armor applies (AoE falloff, beam attenuation).
func calculate(w *models.Weapon, def models.DefenderProfile, src engine.Source, preArmor func(int) int) DamageResult {
	res := DamageResult{}

	res.RawDamage = rollRaw(w, src)

	damage := res.RawDamage
	if engine.Percent(src, w.CriticalChance) {
		mult := w.CriticalMult
		if mult <= 0 {
			mult = 1
		}
		boosted := int(float64(damage) * mult)
		res.Critical = true
		res.CriticalBonus = boosted - damage
		damage = boosted
	}

	modified := applyDamageType(damage, w.DamageType, def)
	res.TypeModifier = modified - damage
	damage = modified

	if preArmor != nil {
		damage = preArmor(damage)
	}

	reduction := def.Armor
	if reduction > damage-1 {
		reduction = damage - 1
	}
	if reduction < 0 {
		reduction = 0
	}
	res.ArmorReduction = reduction

	final := damage - def.Armor
	if final < 1 {
		final = 1
	}
	res.FinalDamage = final

	if w.Effect != "" && w.EffectChance > 0 && engine.Percent(src, w.EffectChance) {
		res.Effect = w.Effect
		res.EffectDuration = w.EffectDuration
	}

	return res
}

// rollRaw sums ProjectileCount independent uniform draws in
// [MinDamage, MaxDamage].
func rollRaw(w *models.Weapon, src engine.Source) int {
	count := w.ProjectileCount
	if count < 1 {
		count = 1
	}
	total := 0
	for i := 0; i < count; i++ {
		total += engine.RollRange(src, w.MinDamage, w.MaxDamage)
	}
	return total
}

// applyDamageType applies the damage-type interaction table:
// kinetic +50% against any armor, then x0.75 if the target is also
// shielded; thermal +25% against shields; electromagnetic x0.5 flat;
// explosive and impact are neutral.
func applyDamageType(damage int, dt models.DamageType, def models.DefenderProfile) int {
	f := float64(damage)
	switch dt {
	case models.DamageKinetic:
		if def.Armor > 0 {
			f *= 1.5
			if def.Shielded {
				f *= 0.75
			}
		}
	case models.DamageThermal:
		if def.Shielded {
			f *= 1.25
		}
	case models.DamageElectromagnetic:
		f *= 0.5
	}
	return int(f)
}

// CalculateAoEDamage attenuates base damage linearly with distance: full at
// the center, down to max(1, base/4) at and beyond the radius.
func CalculateAoEDamage(base, distance, radius int) int {
	floor := base / 4
	if floor < 1 {
		floor = 1
	}
	if distance <= 0 {
		return base
	}
	if radius <= 0 || distance >= radius {
		return floor
	}
	d := base - (base-floor)*distance/radius
	if d < floor {
		d = floor
	}
	return d
}

// CalculateKnockback returns tiles of knockback: the weapon's base, +1 above
// 20 damage dealt, +1 more above 40, halved (floor 1) for heavy targets.
func CalculateKnockback(base, damageDealt int, isHeavy bool) int {
	kb := base
	if damageDealt > 20 {
		kb++
	}
	if damageDealt > 40 {
		kb++
	}
	if isHeavy {
		kb /= 2
		if kb < 1 {
			kb = 1
		}
	}
	return kb
}
