package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/roster"
	"github.com/milk9111/backwardroyal/telemetry"
	"github.com/rs/zerolog"
)

// DamageRouter is the DamageApplier backed by Health components. Upper-body
// pawns pass damage to the character they ride.
type DamageRouter struct {
	roles   RoleRegistry
	metrics *telemetry.Metrics
	log     zerolog.Logger
}

func NewDamageRouter(roles RoleRegistry, metrics *telemetry.Metrics, log zerolog.Logger) *DamageRouter {
	return &DamageRouter{
		roles:   roles,
		metrics: metrics,
		log:     log.With().Str("component", "damage").Logger(),
	}
}

func (r *DamageRouter) ApplyPointDamage(w *ecs.World, target ecs.Entity, amount float64, dir cp.Vector, hit ecs.TraceHit, instigator, causer ecs.Entity) float64 {
	return r.ApplyDamage(w, target, amount, instigator, causer)
}

// ApplyDamage lowers target's health. Any stashed death impulse is consumed:
// a lethal hit ragdolls the character with it, a survivable one drops it.
func (r *DamageRouter) ApplyDamage(w *ecs.World, target ecs.Entity, amount float64, instigator, causer ecs.Entity) float64 {
	if !w.HasAuthority() || !w.IsAlive(target) {
		return 0
	}
	receiver, _ := resolveTarget(w, target)
	health, ok := ecs.Get(w, receiver, component.HealthComponent.Kind())
	if !ok {
		return 0
	}
	applied, died := health.TakeDamage(amount)

	var impulse, point cp.Vector
	var pending bool
	if pdi, ok := ecs.Get(w, receiver, component.PendingDeathImpulseComponent.Kind()); ok {
		impulse, point, pending = pdi.Consume()
	}
	if applied > 0 {
		r.metrics.DamageApplied(applied)
	}
	if !died {
		return applied
	}

	if p, ok := ecs.Get(w, receiver, component.PawnComponent.Kind()); ok {
		p.Movement = component.MovementRagdoll
	}
	if pending {
		if pw := w.PhysicsWorld(); pw != nil {
			if body, ok := pw.Body(receiver); ok {
				// Free the body so the death shove can topple it.
				body.SetMoment(ragdollMoment(body.Mass()))
			}
		}
		requestKnockback(w, receiver, component.DamageKnockback{Impulse: impulse, Point: point, SourceEntity: uint64(causer)})
	}
	for _, id := range r.playersOf(w, receiver) {
		if err := r.roles.SetStatus(id, roster.StatusDead); err != nil {
			r.log.Debug().Err(err).Str("player", id.String()).Msg("mark dead")
		}
	}
	r.log.Info().Str("entity", receiver.String()).Str("instigator", instigator.String()).Bool("impulse", pending).Msg("character died")
	w.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: ecs.DeathEvent{Entity: receiver, Instigator: instigator, Causer: causer}})
	return applied
}

// playersOf lists the players controlling e and anything riding it.
func (r *DamageRouter) playersOf(w *ecs.World, e ecs.Entity) []roster.PlayerID {
	if r.roles == nil {
		return nil
	}
	var ids []roster.PlayerID
	for _, pawn := range append([]ecs.Entity{e}, attachedTo(w, e)...) {
		if _, c, ok := controllerOf(w, pawn); ok {
			ids = append(ids, c.Player)
		}
	}
	return ids
}

func ragdollMoment(mass float64) float64 {
	return mass * 400
}
