package component

import "github.com/milk9111/backwardroyal/combat"

// AttackDetection is the per-attacker contact hit detection state for one
// attack window.
type AttackDetection struct {
	Active bool
	Gate   combat.HitGate[uint64]
	// Mesh is the entity whose shapes report hits: the weapon when armed,
	// the attacker itself otherwise.
	Mesh   uint64
	Weapon uint64
	Armed  bool
}

var AttackDetectionComponent = NewComponent[AttackDetection]()
