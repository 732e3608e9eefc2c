// Package combat holds the pure impact math and the per-window hit gate used
// by both hit detection strategies.
package combat

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/common"
)

// DamageCategory selects the armour response of a weapon.
type DamageCategory uint8

const (
	SlashPierce DamageCategory = iota
	Blunt
)

func (c DamageCategory) String() string {
	if c == Blunt {
		return "blunt"
	}
	return "slash_pierce"
}

const (
	damageScale      = 0.001
	sweptSpeedScale  = 1000.0
	sweptSpeedMax    = 3.0
	sweptMassFactor  = 10.0
	sweptForceFactor = 0.5
	sweptForceMin    = 100.0
	sweptMinLift     = 150.0

	armoredSlashMultiplier = 0.5
	armoredBluntMultiplier = 1.2
	headshotMultiplier     = 2.0

	minAttackSpeed = 0.5
	maxAttackSpeed = 1.5
	minRatioMass   = 0.1
)

// WeaponSwingDamage converts a contact impulse from an armed swing into
// damage. The first argument is the weapon's base damage, carried for parity
// with the weapon table; it does not enter the contact formula.
func WeaponSwingDamage(_, massKg, damageCoefficient, impactForce, globalDamageMultiplier float64) float64 {
	return impactForce * damageCoefficient * massKg * globalDamageMultiplier * damageScale
}

// BareFistDamage converts a punch impulse into damage.
func BareFistDamage(impactForce float64) float64 {
	return impactForce * damageScale
}

// KnockbackImpulse returns the shove applied for a credited contact hit.
// The magnitude never drops below floor. The direction is the reversed impact
// normal, or fallback when the normal is degenerate.
func KnockbackImpulse(impactForce, massKg, impulseCoefficient, globalImpulseMultiplier float64, impactNormal, fallback cp.Vector, floor float64) cp.Vector {
	power := KnockbackPower(impactForce*impulseCoefficient*massKg*globalImpulseMultiplier, floor)
	return KnockbackDirection(impactNormal, fallback).Mult(power)
}

// KnockbackPower applies the impulse floor.
func KnockbackPower(raw, floor float64) float64 {
	if raw < floor {
		return floor
	}
	return raw
}

// KnockbackDirection is normalize(-impactNormal), falling back to fallback
// (normalised when possible) for a degenerate normal.
func KnockbackDirection(impactNormal, fallback cp.Vector) cp.Vector {
	if !common.IsDegenerate(impactNormal) {
		return impactNormal.Neg().Normalize()
	}
	if !common.IsDegenerate(fallback) {
		return fallback.Normalize()
	}
	return cp.Vector{X: 1}
}

// SweptWeaponDamage is the per-socket trace damage formula. fleshMultiplier
// applies to unarmoured slash/pierce hits and is never below 1.
func SweptWeaponDamage(baseDamage, massKg, impactSpeed float64, category DamageCategory, armored, headshot bool, fleshMultiplier float64) float64 {
	speedFactor := common.Clamp(impactSpeed/sweptSpeedScale, 0, sweptSpeedMax)
	raw := baseDamage + massKg*speedFactor*sweptMassFactor

	if fleshMultiplier < 1 {
		fleshMultiplier = 1
	}
	multiplier := 1.0
	switch category {
	case SlashPierce:
		multiplier = fleshMultiplier
		if armored {
			multiplier = armoredSlashMultiplier
		}
	case Blunt:
		if armored {
			multiplier = armoredBluntMultiplier
		}
	}
	if headshot {
		multiplier *= headshotMultiplier
	}
	return raw * multiplier
}

// SweptKnockback returns the launch for a trace hit, or the zero vector when
// the force is at or below the threshold. The result always has an upward
// component of at least 150 so victims arc over ground friction.
func SweptKnockback(massKg, impactSpeed float64, attackDirection cp.Vector) cp.Vector {
	force := massKg * impactSpeed * sweptForceFactor
	if force <= sweptForceMin {
		return cp.Vector{}
	}
	out := attackDirection.Mult(force)
	if out.Y < sweptMinLift {
		out.Y = sweptMinLift
	}
	return out
}

// AttackSpeed returns the animation rate multiplier for an attacker, always
// within [0.5, 1.5].
func AttackSpeed(weaponMass, attackSpeedCoefficient, globalAttackSpeedMultiplier, standardMass float64, armed bool) float64 {
	speed := globalAttackSpeedMultiplier
	if armed {
		ratio := 1.0
		if weaponMass > minRatioMass {
			ratio = standardMass / weaponMass
		}
		speed = ratio * attackSpeedCoefficient * globalAttackSpeedMultiplier
	}
	if math.IsNaN(speed) {
		return minAttackSpeed
	}
	return common.Clamp(speed, minAttackSpeed, maxAttackSpeed)
}
