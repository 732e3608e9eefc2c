package combat

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestWeaponSwingDamage(t *testing.T) {
	cases := []struct {
		name  string
		mass  float64
		coef  float64
		force float64
		mult  float64
		want  float64
	}{
		{"two_kilo_blade", 2, 1, 3000, 1, 6},
		{"heavy_mace", 12, 1.5, 1000, 1, 18},
		{"global_halved", 10, 1, 1000, 0.5, 5},
		{"zero_force", 10, 1, 0, 1, 0},
		{"negative_force", 10, 1, -100, 1, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WeaponSwingDamage(25, c.mass, c.coef, c.force, c.mult)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestBareFistDamage(t *testing.T) {
	assert.InDelta(t, 0.1, BareFistDamage(100), 1e-12)
	assert.InDelta(t, 5.0, BareFistDamage(5000), 1e-12)
}

func TestKnockbackImpulseFloor(t *testing.T) {
	forces := []float64{0, 1, 10, 100, 499, 500, 5000, 1e6}
	for _, f := range forces {
		v := KnockbackImpulse(f, 0.5, 0.5, 1, cp.Vector{X: -1}, cp.Vector{X: 1}, 500)
		assert.GreaterOrEqual(t, v.Length(), 500.0-1e-9, "force %v", f)
	}
}

func TestKnockbackImpulseDirection(t *testing.T) {
	t.Run("reversed_normal", func(t *testing.T) {
		v := KnockbackImpulse(2000, 1, 1, 1, cp.Vector{X: 0, Y: -3}, cp.Vector{X: 1}, 500)
		assert.InDelta(t, 0, v.X, 1e-9)
		assert.InDelta(t, 2000, v.Y, 1e-9)
	})
	t.Run("degenerate_normal_uses_fallback", func(t *testing.T) {
		v := KnockbackImpulse(10, 1, 1, 1, cp.Vector{}, cp.Vector{X: -2}, 500)
		assert.InDelta(t, -500, v.X, 1e-9)
		assert.InDelta(t, 0, v.Y, 1e-9)
	})
	t.Run("both_degenerate", func(t *testing.T) {
		dir := KnockbackDirection(cp.Vector{}, cp.Vector{})
		assert.InDelta(t, 1, dir.Length(), 1e-9)
	})
}

func TestSweptWeaponDamage(t *testing.T) {
	cases := []struct {
		name     string
		base     float64
		mass     float64
		speed    float64
		category DamageCategory
		armored  bool
		head     bool
		flesh    float64
		want     float64
	}{
		// raw = 20 + 4*1*10 = 60
		{"slash_flesh", 20, 4, 1000, SlashPierce, false, false, 1, 60},
		{"slash_flesh_bonus", 20, 4, 1000, SlashPierce, false, false, 1.5, 90},
		{"slash_flesh_floor", 20, 4, 1000, SlashPierce, false, false, 0.2, 60},
		{"slash_armored", 20, 4, 1000, SlashPierce, true, false, 1.5, 30},
		{"blunt_flesh", 20, 4, 1000, Blunt, false, false, 1.5, 60},
		{"blunt_armored", 20, 4, 1000, Blunt, true, false, 1, 72},
		{"blunt_armored_head", 20, 4, 1000, Blunt, true, true, 1, 144},
		// speed factor clamps at 3
		{"speed_clamped", 0, 1, 99999, Blunt, false, false, 1, 30},
		{"negative_speed", 10, 1, -50, Blunt, false, false, 1, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SweptWeaponDamage(c.base, c.mass, c.speed, c.category, c.armored, c.head, c.flesh)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestSweptKnockback(t *testing.T) {
	t.Run("below_threshold", func(t *testing.T) {
		assert.Equal(t, cp.Vector{}, SweptKnockback(1, 200, cp.Vector{X: 1}))
	})
	t.Run("lifted_to_minimum", func(t *testing.T) {
		v := SweptKnockback(2, 400, cp.Vector{X: 1})
		assert.InDelta(t, 400, v.X, 1e-9)
		assert.InDelta(t, 150, v.Y, 1e-9)
	})
	t.Run("steep_launch_keeps_vertical", func(t *testing.T) {
		v := SweptKnockback(2, 400, cp.Vector{Y: 1})
		assert.InDelta(t, 400, v.Y, 1e-9)
	})
}

func TestAttackSpeedClamp(t *testing.T) {
	cases := []struct {
		name   string
		mass   float64
		coef   float64
		global float64
		armed  bool
		want   float64
	}{
		{"standard", 10, 1, 1, true, 1},
		{"light_fast", 5, 1, 1, true, 1.5},
		{"heavy_slow", 40, 1, 1, true, 0.5},
		{"zero_mass", 0, 1, 1, true, 1},
		{"absurd_coefficient", 10, 1000, 1, true, 1.5},
		{"negative_coefficient", 10, -3, 1, true, 0.5},
		{"unarmed", 0, 0, 1.2, false, 1.2},
		{"unarmed_clamped", 0, 0, 9, false, 1.5},
		{"nan", 10, math.NaN(), 1, true, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AttackSpeed(c.mass, c.coef, c.global, 10, c.armed)
			assert.InDelta(t, c.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.5)
			assert.LessOrEqual(t, got, 1.5)
		})
	}
}

func TestTuningCredits(t *testing.T) {
	tune := DefaultTuning()
	assert.True(t, tune.Credits(WeaponSwingDamage(0, 2, 1, 3000, 1)))
	assert.False(t, tune.Credits(BareFistDamage(100)))
	assert.True(t, tune.Credits(5))
}
