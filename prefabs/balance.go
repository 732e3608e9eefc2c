package prefabs

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/backwardroyal/combat"
	"gopkg.in/yaml.v3"
)

const BalanceFile = "balance.yaml"

var ErrInvalidBalance = errors.New("prefabs: invalid balance")

type StaminaBalance struct {
	Max             float64 `yaml:"max"`
	SprintDrainRate float64 `yaml:"sprint_drain_rate"`
	JumpCost        float64 `yaml:"jump_cost"`
	RegenRate       float64 `yaml:"regen_rate"`
}

// BalanceConfig is the process-wide tuning table. It is loaded once, then
// swapped whole on reload; readers never see a partial update.
type BalanceConfig struct {
	DamageMultiplier      float64        `yaml:"damage_multiplier"`
	ImpulseMultiplier     float64        `yaml:"impulse_multiplier"`
	AttackSpeedMultiplier float64        `yaml:"attack_speed_multiplier"`
	DurabilityReduction   float64        `yaml:"durability_reduction"`
	StandardWeaponMass    float64        `yaml:"standard_weapon_mass"`
	MinDamage             float64        `yaml:"min_damage"`
	ImpulseFloor          float64        `yaml:"impulse_floor"`
	FleshMultiplier       float64        `yaml:"flesh_multiplier"`
	PropImpulseScale      float64        `yaml:"prop_impulse_scale"`
	MaxLaunchSpeed        float64        `yaml:"max_launch_speed"`
	BaseAttackWindow      float64        `yaml:"base_attack_window"`
	Stamina               StaminaBalance `yaml:"stamina"`
}

func DefaultBalance() BalanceConfig {
	t := combat.DefaultTuning()
	return BalanceConfig{
		DamageMultiplier:      t.DamageMultiplier,
		ImpulseMultiplier:     t.ImpulseMultiplier,
		AttackSpeedMultiplier: t.AttackSpeedMultiplier,
		DurabilityReduction:   t.DurabilityReduction,
		StandardWeaponMass:    t.StandardWeaponMass,
		MinDamage:             t.MinDamage,
		ImpulseFloor:          t.ImpulseFloor,
		FleshMultiplier:       t.FleshMultiplier,
		PropImpulseScale:      t.PropImpulseScale,
		MaxLaunchSpeed:        t.MaxLaunchSpeed,
		BaseAttackWindow:      0.6,
		Stamina: StaminaBalance{
			Max:             100,
			SprintDrainRate: 20,
			JumpCost:        15,
			RegenRate:       10,
		},
	}
}

// Tuning projects the combat knobs.
func (b BalanceConfig) Tuning() combat.Tuning {
	return combat.Tuning{
		DamageMultiplier:      b.DamageMultiplier,
		ImpulseMultiplier:     b.ImpulseMultiplier,
		AttackSpeedMultiplier: b.AttackSpeedMultiplier,
		StandardWeaponMass:    b.StandardWeaponMass,
		MinDamage:             b.MinDamage,
		ImpulseFloor:          b.ImpulseFloor,
		FleshMultiplier:       b.FleshMultiplier,
		PropImpulseScale:      b.PropImpulseScale,
		DurabilityReduction:   b.DurabilityReduction,
		MaxLaunchSpeed:        b.MaxLaunchSpeed,
	}
}

// Validate rejects values the combat math cannot work with.
func (b BalanceConfig) Validate() error {
	switch {
	case b.StandardWeaponMass <= 0:
		return fmt.Errorf("%w: standard_weapon_mass must be positive", ErrInvalidBalance)
	case b.MinDamage < 0:
		return fmt.Errorf("%w: min_damage must not be negative", ErrInvalidBalance)
	case b.ImpulseFloor < 0:
		return fmt.Errorf("%w: impulse_floor must not be negative", ErrInvalidBalance)
	case b.BaseAttackWindow <= 0:
		return fmt.Errorf("%w: base_attack_window must be positive", ErrInvalidBalance)
	case b.Stamina.Max <= 0:
		return fmt.Errorf("%w: stamina.max must be positive", ErrInvalidBalance)
	}
	return nil
}

// ParseBalance decodes data over the defaults, so omitted keys keep their
// default value.
func ParseBalance(data []byte) (BalanceConfig, error) {
	cfg := DefaultBalance()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BalanceConfig{}, fmt.Errorf("prefabs: unmarshal balance: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BalanceConfig{}, err
	}
	return cfg, nil
}

// LoadBalance reads path from disk, or the embedded balance table when path
// is empty.
func LoadBalance(path string) (BalanceConfig, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = Load(BalanceFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return BalanceConfig{}, fmt.Errorf("prefabs: load balance %s: %w", path, err)
	}
	return ParseBalance(data)
}
