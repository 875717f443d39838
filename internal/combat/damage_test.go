package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pefman/gridfire/internal/engine"
	"github.com/pefman/gridfire/internal/models"
)

func flatWeapon(dmg int, dt models.DamageType) *models.Weapon {
	return &models.Weapon{
		Name:            "test",
		Class:           models.ClassSingleTarget,
		DamageType:      dt,
		MinDamage:       dmg,
		MaxDamage:       dmg,
		ProjectileCount: 1,
	}
}

func TestMissIsDistinctZero(t *testing.T) {
	m := Miss()
	assert.Equal(t, 0, m.RawDamage)
	assert.Equal(t, 0, m.FinalDamage)
	assert.False(t, m.Critical)
	assert.Empty(t, m.Effect)
}

// Reference scenario: flat 5 damage, no crit, armor 2 -> final 3.
func TestCalculateFlatVersusArmor(t *testing.T) {
	w := flatWeapon(5, models.DamageImpact)
	dr := Calculate(w, models.DefenderProfile{Armor: 2}, &engine.FixedSource{})
	assert.Equal(t, 5, dr.RawDamage)
	assert.Equal(t, 2, dr.ArmorReduction)
	assert.Equal(t, 3, dr.FinalDamage)
	assert.False(t, dr.Critical)
}

func TestCalculateFinalDamageAtLeastOne(t *testing.T) {
	w := flatWeapon(3, models.DamageImpact)
	dr := Calculate(w, models.DefenderProfile{Armor: 50}, &engine.FixedSource{})
	assert.Equal(t, 1, dr.FinalDamage)
	// armor reduction caps at modified-1
	assert.Equal(t, 2, dr.ArmorReduction)
}

func TestCalculateCritical(t *testing.T) {
	w := flatWeapon(10, models.DamageImpact)
	w.CriticalChance = 100
	w.CriticalMult = 1.5
	dr := Calculate(w, models.DefenderProfile{}, &engine.FixedSource{})
	assert.True(t, dr.Critical)
	assert.Equal(t, 10, dr.RawDamage)
	assert.Equal(t, 5, dr.CriticalBonus)
	assert.Equal(t, 15, dr.FinalDamage)
}

func TestDamageTypeModifiers(t *testing.T) {
	tests := []struct {
		name      string
		dt        models.DamageType
		def       models.DefenderProfile
		wantDelta int
		wantFinal int
	}{
		{"kinetic vs armor", models.DamageKinetic, models.DefenderProfile{Armor: 4}, 5, 11},
		{"kinetic vs armor and shield", models.DamageKinetic, models.DefenderProfile{Armor: 4, Shielded: true}, 1, 7},
		{"kinetic vs bare", models.DamageKinetic, models.DefenderProfile{}, 0, 10},
		{"thermal vs shield", models.DamageThermal, models.DefenderProfile{Shielded: true}, 2, 12},
		{"thermal vs bare", models.DamageThermal, models.DefenderProfile{}, 0, 10},
		{"electromagnetic flat", models.DamageElectromagnetic, models.DefenderProfile{}, -5, 5},
		{"explosive neutral", models.DamageExplosive, models.DefenderProfile{Armor: 2}, 0, 8},
		{"impact neutral", models.DamageImpact, models.DefenderProfile{}, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr := Calculate(flatWeapon(10, tt.dt), tt.def, &engine.FixedSource{})
			assert.Equal(t, tt.wantDelta, dr.TypeModifier)
			assert.Equal(t, tt.wantFinal, dr.FinalDamage)
		})
	}
}

func TestElectromagneticHalvingStillLands(t *testing.T) {
	// 1 damage halves to 0, but a landed hit always deals at least 1
	dr := Calculate(flatWeapon(1, models.DamageElectromagnetic), models.DefenderProfile{Armor: 3}, &engine.FixedSource{})
	assert.Equal(t, 1, dr.FinalDamage)
	assert.Equal(t, 0, dr.ArmorReduction)
}

func TestMultipleProjectiles(t *testing.T) {
	w := &models.Weapon{
		Name:            "burst",
		DamageType:      models.DamageImpact,
		MinDamage:       1,
		MaxDamage:       6,
		ProjectileCount: 3,
	}
	// Intn(6) draws 0,2,5 -> rolls 1,3,6
	src := &engine.FixedSource{Seq: []int{0, 2, 5}}
	dr := Calculate(w, models.DefenderProfile{}, src)
	assert.Equal(t, 10, dr.RawDamage)
	assert.Equal(t, 10, dr.FinalDamage)
}

func TestStatusEffectRoll(t *testing.T) {
	w := flatWeapon(5, models.DamageThermal)
	w.Effect = "burning"
	w.EffectChance = 100
	w.EffectDuration = 3
	dr := Calculate(w, models.DefenderProfile{}, &engine.FixedSource{})
	assert.Equal(t, "burning", dr.Effect)
	assert.Equal(t, 3, dr.EffectDuration)

	w.EffectChance = 0
	dr = Calculate(w, models.DefenderProfile{}, &engine.FixedSource{})
	assert.Empty(t, dr.Effect)
}

func TestCalculateAoEDamage(t *testing.T) {
	tests := []struct {
		name                   string
		base, distance, radius int
		want                   int
	}{
		{"center", 20, 0, 4, 20},
		{"at radius", 20, 4, 4, 5},
		{"beyond radius", 20, 9, 4, 5},
		{"halfway", 20, 2, 4, 13},
		{"small base floors at one", 2, 5, 4, 1},
		{"zero radius", 20, 1, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateAoEDamage(tt.base, tt.distance, tt.radius))
		})
	}
}

func TestCalculateKnockback(t *testing.T) {
	tests := []struct {
		name        string
		base, dealt int
		heavy       bool
		want        int
	}{
		{"light hit", 1, 10, false, 1},
		{"above twenty", 1, 25, false, 2},
		{"above forty", 1, 45, false, 3},
		{"heavy halved", 4, 10, true, 2},
		{"heavy floors at one", 1, 45, true, 1},
		{"heavy zero base floors at one", 0, 0, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateKnockback(tt.base, tt.dealt, tt.heavy))
		})
	}
}
