package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/combat"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/telemetry"
	"github.com/rs/zerolog"
)

// WeaponTraceSystem sweeps trace sockets of swinging weapons between ticks
// and damages the first thing each swing passes through.
type WeaponTraceSystem struct {
	damage  DamageApplier
	balance BalanceSource
	metrics *telemetry.Metrics
	log     zerolog.Logger
}

func NewWeaponTraceSystem(damage DamageApplier, balance BalanceSource, metrics *telemetry.Metrics, log zerolog.Logger) *WeaponTraceSystem {
	return &WeaponTraceSystem{
		damage:  damage,
		balance: balance,
		metrics: metrics,
		log:     log.With().Str("component", "weapon_trace").Logger(),
	}
}

// StartAttack begins a traced swing: the hit set is cleared and socket
// positions are re-cached so the first sweep starts where the weapon is.
func StartAttack(w *ecs.World, weaponEnt ecs.Entity) bool {
	trace, ok := ecs.Get(w, weaponEnt, component.WeaponTraceComponent.Kind())
	if !ok {
		return false
	}
	trace.HitSet = make(map[uint64]struct{})
	trace.Prev = socketPositions(w, weaponEnt, trace)
	trace.Attacking = true
	return true
}

// EndAttack stops sweeping.
func EndAttack(w *ecs.World, weaponEnt ecs.Entity) {
	if trace, ok := ecs.Get(w, weaponEnt, component.WeaponTraceComponent.Kind()); ok {
		trace.Attacking = false
	}
}

func socketPositions(w *ecs.World, weaponEnt ecs.Entity, trace *component.WeaponTrace) []cp.Vector {
	pw := w.PhysicsWorld()
	if pw == nil {
		return nil
	}
	body, ok := pw.Body(weaponEnt)
	if !ok {
		return nil
	}
	out := make([]cp.Vector, len(trace.Sockets))
	for i, s := range trace.Sockets {
		out[i] = body.LocalToWorld(s)
	}
	return out
}

func (s *WeaponTraceSystem) Update(w *ecs.World) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}
	dt := w.TickSeconds()
	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.WeaponTraceComponent.Kind(), func(e ecs.Entity, weapon *component.Weapon, trace *component.WeaponTrace) {
		current := socketPositions(w, e, trace)
		if current == nil {
			return
		}
		if weapon.Equipped && trace.Attacking && weapon.Usable() && len(trace.Prev) == len(current) && w.HasAuthority() {
			s.sweep(w, e, weapon, trace, current, dt)
		}
		trace.Prev = current
	})
}

func (s *WeaponTraceSystem) sweep(w *ecs.World, weaponEnt ecs.Entity, weapon *component.Weapon, trace *component.WeaponTrace, current []cp.Vector, dt float64) {
	owner := ecs.Entity(weapon.Owner)
	ignore := append([]ecs.Entity{weaponEnt, owner}, attachedTo(w, owner)...)
	if trace.HitSet == nil {
		trace.HitSet = make(map[uint64]struct{})
	}
	t := currentTuning(s.balance)
	instigator, _, _ := controllerOf(w, owner)

	for i := range current {
		if weapon.Broken {
			return
		}
		start, end := trace.Prev[i], current[i]
		hit, ok := w.PhysicsWorld().Trace(start, end, ignore...)
		if !ok {
			continue
		}
		targetEnt, target := resolveTarget(w, hit.Entity)
		if _, seen := trace.HitSet[uint64(targetEnt)]; seen {
			continue
		}
		trace.HitSet[uint64(targetEnt)] = struct{}{}

		dist := start.Distance(end)
		speed := 0.0
		if dt > 0 {
			speed = dist / dt
		}
		dir := end.Sub(start).Normalize()

		damage := combat.SweptWeaponDamage(weapon.BaseDamage, weapon.MassKg, speed, weapon.Category, target.Armored, isHeadBone(hit.Bone), t.FleshMultiplier)
		knockback := combat.SweptKnockback(weapon.MassKg, speed, dir)

		stashDeathImpulse(w, targetEnt, target, knockback, hit.Point)
		applied := s.damage.ApplyPointDamage(w, targetEnt, damage, dir, hit, instigator, weaponEnt)
		s.metrics.HitCredited("trace")
		w.Events().Push(ecs.Event{Type: ecs.EventHitLanded, Data: ecs.HitLandedEvent{Attacker: owner, Target: targetEnt, Damage: applied}})
		s.log.Debug().Str("weapon", weapon.Name).Str("target", targetEnt.String()).Str("bone", hit.Bone).Float64("speed", speed).Float64("damage", damage).Msg("trace hit")

		switch target.Kind {
		case component.TargetCharacter, component.TargetUpperBodyPawn:
			// A killing blow already queued the death shove.
			if h, ok := ecs.Get(w, targetEnt, component.HealthComponent.Kind()); ok && !h.IsAlive() {
				break
			}
			if !knockback.Equal(cp.Vector{}) {
				requestKnockback(w, targetEnt, component.DamageKnockback{Impulse: knockback, Point: hit.Point, Launch: true, SourceEntity: uint64(owner)})
			}
		case component.TargetPhysicsProp:
			applyPropImpulse(w, targetEnt, knockback.Mult(t.PropImpulseScale), hit.Point)
		}

		if weapon.DecreaseDurability(t.DurabilityReduction) {
			breakWeapon(w, owner, weapon, s.metrics, s.log)
		}
	}
}
