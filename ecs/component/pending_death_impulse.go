package component

import "github.com/jakecoffman/cp"

// PendingDeathImpulse holds the shove of the hit that may kill a character.
// It is written once and stays until consumed.
type PendingDeathImpulse struct {
	Impulse cp.Vector
	Point   cp.Vector
	set     bool
}

// Stash records impulse and point unless a value is already pending.
func (p *PendingDeathImpulse) Stash(impulse, point cp.Vector) bool {
	if p == nil || p.set {
		return false
	}
	p.Impulse = impulse
	p.Point = point
	p.set = true
	return true
}

// Consume returns the pending value and clears it.
func (p *PendingDeathImpulse) Consume() (impulse, point cp.Vector, ok bool) {
	if p == nil || !p.set {
		return cp.Vector{}, cp.Vector{}, false
	}
	impulse, point = p.Impulse, p.Point
	*p = PendingDeathImpulse{}
	return impulse, point, true
}

// Pending reports whether a value is stashed.
func (p *PendingDeathImpulse) Pending() bool {
	return p != nil && p.set
}

var PendingDeathImpulseComponent = NewComponent[PendingDeathImpulse]()
