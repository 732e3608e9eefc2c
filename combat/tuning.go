package combat

// Tuning is the set of balance knobs the combat math reads. It is built from
// the loaded balance file and passed explicitly to every computation.
type Tuning struct {
	DamageMultiplier      float64
	ImpulseMultiplier     float64
	AttackSpeedMultiplier float64
	StandardWeaponMass    float64
	MinDamage             float64
	ImpulseFloor          float64
	FleshMultiplier       float64
	PropImpulseScale      float64
	DurabilityReduction   float64
	MaxLaunchSpeed        float64
}

// DefaultTuning mirrors the shipped balance file.
func DefaultTuning() Tuning {
	return Tuning{
		DamageMultiplier:      1,
		ImpulseMultiplier:     1,
		AttackSpeedMultiplier: 1,
		StandardWeaponMass:    10,
		MinDamage:             5,
		ImpulseFloor:          500,
		FleshMultiplier:       1,
		PropImpulseScale:      50,
		DurabilityReduction:   10,
		MaxLaunchSpeed:        2000,
	}
}

// Credits reports whether damage is large enough to be applied.
func (t Tuning) Credits(damage float64) bool {
	return damage >= t.MinDamage
}
