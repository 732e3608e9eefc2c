package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

const (
	movingSpeedSq = 10.0
	jumpSpeed     = 420.0
)

// StaminaSystem drains stamina while a character sprints and regenerates it
// otherwise. Sprinting stops when stamina runs out.
type StaminaSystem struct {
	balance BalanceSource
}

func NewStaminaSystem(balance BalanceSource) *StaminaSystem {
	return &StaminaSystem{balance: balance}
}

func (s *StaminaSystem) Update(w *ecs.World) {
	if w == nil || !w.HasAuthority() {
		return
	}
	bal := currentBalance(s.balance).Stamina
	dt := w.TickSeconds()
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.StaminaComponent.Kind(), component.PawnComponent.Kind(), func(e ecs.Entity, st *component.Stamina, pawn *component.Pawn) {
		if bal.Max > 0 {
			st.Max = bal.Max
		}
		wantsSprint := false
		var ctrl *component.Controller
		if _, c, ok := controllerOf(w, e); ok {
			ctrl = c
			wantsSprint = c.Sprint
		}
		moving := false
		if pw != nil {
			if body, ok := pw.Body(e); ok {
				moving = body.Velocity().LengthSq() > movingSpeedSq
			}
		}

		if wantsSprint && moving && st.Current > 0 && pawn.Movement != component.MovementRagdoll {
			st.Sprinting = true
			st.Current -= bal.SprintDrainRate * dt
			if st.Current <= 0 {
				st.Current = 0
				st.Sprinting = false
				if ctrl != nil {
					ctrl.Sprint = false
				}
			}
			return
		}
		st.Sprinting = false
		st.Current = min(st.Current+bal.RegenRate*dt, st.Max)
	})
}

// Jump spends jump stamina and pushes a walking character upwards. It
// reports whether the jump happened.
func Jump(w *ecs.World, character ecs.Entity, balance BalanceSource) bool {
	st, ok := ecs.Get(w, character, component.StaminaComponent.Kind())
	if !ok {
		return false
	}
	pawn, ok := ecs.Get(w, character, component.PawnComponent.Kind())
	if !ok || pawn.Movement != component.MovementWalking {
		return false
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return false
	}
	body, ok := pw.Body(character)
	if !ok {
		return false
	}
	if !st.Spend(currentBalance(balance).Stamina.JumpCost) {
		return false
	}
	v := body.Velocity()
	body.SetVelocityVector(cp.Vector{X: v.X, Y: jumpSpeed})
	pawn.Movement = component.MovementFalling
	return true
}
