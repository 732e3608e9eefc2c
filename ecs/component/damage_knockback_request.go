package component

import "github.com/jakecoffman/cp"

// DamageKnockback is a transient request for the knockback system to push
// the entity. Launch requests set velocity on characters, the rest apply an
// impulse at Point.
type DamageKnockback struct {
	Impulse      cp.Vector
	Point        cp.Vector
	Launch       bool
	SourceEntity uint64
}

var DamageKnockbackRequestComponent = NewComponent[DamageKnockback]()
