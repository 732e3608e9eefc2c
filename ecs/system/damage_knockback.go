package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

// minLaunchLift keeps launched characters off the ground for a moment.
const minLaunchLift = 150.0

// requestKnockback queues a push for the knockback system. A later request
// in the same tick replaces an earlier one.
func requestKnockback(w *ecs.World, e ecs.Entity, kb component.DamageKnockback) {
	_ = ecs.Add(w, e, component.DamageKnockbackRequestComponent.Kind(), &kb)
}

// DamageKnockbackSystem applies queued knockback requests. Launches set the
// character's velocity, capped at the balance launch speed; everything else
// is an impulse at the request point.
type DamageKnockbackSystem struct {
	balance BalanceSource
}

func NewDamageKnockbackSystem(balance BalanceSource) *DamageKnockbackSystem {
	return &DamageKnockbackSystem{balance: balance}
}

func (s *DamageKnockbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	maxSpeed := currentTuning(s.balance).MaxLaunchSpeed
	for _, e := range w.Query(component.DamageKnockbackRequestComponent.Kind()) {
		req, ok := ecs.Get(w, e, component.DamageKnockbackRequestComponent.Kind())
		ecs.Remove(w, e, component.DamageKnockbackRequestComponent.Kind())
		if !ok || pw == nil {
			continue
		}
		body, ok := pw.Body(e)
		if !ok || body.GetType() != cp.BODY_DYNAMIC {
			continue
		}
		if req.Launch {
			v := req.Impulse
			if v.Y < minLaunchLift {
				v.Y = minLaunchLift
			}
			if maxSpeed > 0 {
				v = v.Clamp(maxSpeed)
			}
			body.SetVelocityVector(v)
			if p, ok := ecs.Get(w, e, component.PawnComponent.Kind()); ok && p.Movement == component.MovementWalking {
				p.Movement = component.MovementFalling
			}
			continue
		}
		point := req.Point
		if point == (cp.Vector{}) {
			point = body.Position()
		}
		body.ApplyImpulseAtWorldPoint(req.Impulse, point)
	}
}
