package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/combat"
	"github.com/milk9111/backwardroyal/common"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/telemetry"
	"github.com/rs/zerolog"
)

type pendingHit struct {
	attacker ecs.Entity
	hit      ecs.RawHit
}

// AttackDetectionSystem toggles contact hit detection for attack windows
// and resolves the hits it collected during the physics step.
type AttackDetectionSystem struct {
	damage  DamageApplier
	balance BalanceSource
	metrics *telemetry.Metrics
	log     zerolog.Logger

	pending []pendingHit
}

func NewAttackDetectionSystem(damage DamageApplier, balance BalanceSource, metrics *telemetry.Metrics, log zerolog.Logger) *AttackDetectionSystem {
	return &AttackDetectionSystem{
		damage:  damage,
		balance: balance,
		metrics: metrics,
		log:     log.With().Str("component", "attack_detection").Logger(),
	}
}

// SetAttackDetection opens or closes attacker's hit window. A proxy world
// forwards the request to the authority and still applies the toggle
// locally.
func (s *AttackDetectionSystem) SetAttackDetection(w *ecs.World, attacker ecs.Entity, enabled bool) error {
	if !w.IsAlive(attacker) {
		return component.ErrEntityNotAlive
	}
	if !w.HasAuthority() {
		if fwd := w.Forwarder(); fwd != nil {
			if err := fwd.ForwardAttackDetection(attacker, enabled); err != nil {
				s.log.Warn().Err(err).Str("attacker", attacker.String()).Msg("forward attack detection")
			}
		} else {
			s.log.Debug().Str("attacker", attacker.String()).Msg("proxy has no forwarder")
		}
	}

	det, ok := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	if !ok {
		det = &component.AttackDetection{}
		if err := ecs.Add(w, attacker, component.AttackDetectionComponent.Kind(), det); err != nil {
			return err
		}
	}
	pw := w.PhysicsWorld()

	if !enabled {
		if det.Armed && det.Weapon != 0 {
			we := ecs.Entity(det.Weapon)
			if weapon, ok := ecs.Get(w, we, component.WeaponComponent.Kind()); ok && weapon.Equipped && ecs.Entity(weapon.Owner) == attacker {
				setWeaponState(w, we, weaponHeld)
			}
		}
		if det.Mesh != 0 && pw != nil {
			pw.SetHitNotify(ecs.Entity(det.Mesh), false)
			pw.UnbindHitHandler(ecs.Entity(det.Mesh))
		}
		det.Gate.Close()
		*det = component.AttackDetection{Gate: det.Gate}
		return nil
	}

	if det.Active && det.Mesh != 0 && pw != nil {
		pw.SetHitNotify(ecs.Entity(det.Mesh), false)
		pw.UnbindHitHandler(ecs.Entity(det.Mesh))
	}
	det.Gate.Open()
	det.Active = true
	mesh := attacker
	if we, _, ok := EquippedWeapon(w, attacker); ok {
		det.Armed = true
		det.Weapon = uint64(we)
		mesh = we
		setWeaponState(w, we, weaponSwinging)
	} else {
		det.Armed = false
		det.Weapon = 0
	}
	det.Mesh = uint64(mesh)

	if pw != nil {
		pw.SetHitNotify(mesh, true)
		if !pw.HitHandlerBound(mesh) {
			pw.BindHitHandler(mesh, func(hit ecs.RawHit) {
				s.pending = append(s.pending, pendingHit{attacker: attacker, hit: hit})
			})
		}
	}
	return nil
}

// Update resolves the hits queued by the last physics step.
func (s *AttackDetectionSystem) Update(w *ecs.World) {
	if len(s.pending) == 0 {
		return
	}
	hits := s.pending
	s.pending = nil
	if !w.HasAuthority() {
		return
	}
	for _, p := range hits {
		s.processHit(w, p.attacker, p.hit)
	}
}

func (s *AttackDetectionSystem) reject(reason string) {
	s.metrics.HitRejected(reason)
}

// processHit credits one raw contact. It is only called on the authority.
func (s *AttackDetectionSystem) processHit(w *ecs.World, attacker ecs.Entity, hit ecs.RawHit) {
	det, ok := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	if !ok || !det.Active {
		s.reject("inactive")
		return
	}
	other := hit.Other
	if !other.Valid() || !w.IsAlive(other) {
		s.reject("no_target")
		return
	}
	if other == attacker || rootOf(w, other) == rootOf(w, attacker) {
		s.reject("self")
		return
	}

	var weaponEnt ecs.Entity
	var weapon *component.Weapon
	if det.Armed {
		weaponEnt = ecs.Entity(det.Weapon)
		weapon, ok = ecs.Get(w, weaponEnt, component.WeaponComponent.Kind())
		if !ok || !weapon.Usable() || ecs.Entity(weapon.Owner) != attacker {
			s.reject("weapon_lost")
			return
		}
	} else if !punchingBone(w, attacker, hit.SelfBone) {
		s.reject("bone")
		return
	}

	// Riders resolve to the character they sit on, so one swing credits a
	// character once whichever part of it was touched.
	targetEnt, target := resolveTarget(w, other)
	if !det.Gate.TryConsume(uint64(targetEnt)) {
		return
	}

	t := currentTuning(s.balance)
	impactForce := hit.Impulse.Length()
	mass, coef, global := 1.0, 1.0, 1.0
	if weapon != nil {
		mass, coef, global = weapon.MassKg, weapon.ImpulseCoefficient, t.ImpulseMultiplier
	}
	impulse := combat.KnockbackImpulse(impactForce, mass, coef, global, hit.ImpactNormal, s.forward(w, attacker), t.ImpulseFloor)

	var damage float64
	causer := attacker
	if weapon != nil {
		damage = combat.WeaponSwingDamage(weapon.BaseDamage, weapon.MassKg, weapon.DamageCoefficient, impactForce, t.DamageMultiplier)
		causer = weaponEnt
	} else {
		damage = combat.BareFistDamage(impactForce)
	}

	if t.Credits(damage) {
		instigator, _, _ := controllerOf(w, attacker)
		stashDeathImpulse(w, targetEnt, target, impulse, hit.Point)
		applied := s.damage.ApplyDamage(w, targetEnt, damage, instigator, causer)
		s.metrics.HitCredited("contact")
		w.Events().Push(ecs.Event{Type: ecs.EventHitLanded, Data: ecs.HitLandedEvent{Attacker: attacker, Target: targetEnt, Damage: applied}})
		if weapon != nil && weapon.DecreaseDurability(damage) {
			breakWeapon(w, attacker, weapon, s.metrics, s.log)
		}
	} else {
		s.reject("below_threshold")
	}

	if target.Kind == component.TargetPhysicsProp {
		applyPropImpulse(w, targetEnt, impulse, hit.Point)
	}
}

func (s *AttackDetectionSystem) forward(w *ecs.World, attacker ecs.Entity) cp.Vector {
	if t, ok := ecs.Get(w, attacker, component.TransformComponent.Kind()); ok {
		return common.Forward(t.Rotation)
	}
	return common.Forward(0)
}

// CalculatedAttackSpeed is attacker's swing rate multiplier for its current
// weapon, or bare fists.
func CalculatedAttackSpeed(w *ecs.World, attacker ecs.Entity, t combat.Tuning) float64 {
	if _, weapon, ok := EquippedWeapon(w, attacker); ok {
		return combat.AttackSpeed(weapon.MassKg, weapon.AttackSpeedCoefficient, t.AttackSpeedMultiplier, t.StandardWeaponMass, true)
	}
	return combat.AttackSpeed(0, 0, t.AttackSpeedMultiplier, t.StandardWeaponMass, false)
}

// stashDeathImpulse records the shove a character takes if the hit about to
// land kills it.
func stashDeathImpulse(w *ecs.World, e ecs.Entity, target component.Target, impulse, point cp.Vector) {
	if target.Kind != component.TargetCharacter {
		return
	}
	if pdi, ok := ecs.Get(w, e, component.PendingDeathImpulseComponent.Kind()); ok {
		pdi.Stash(impulse, point)
	}
}

func breakWeapon(w *ecs.World, owner ecs.Entity, weapon *component.Weapon, metrics *telemetry.Metrics, log zerolog.Logger) {
	metrics.WeaponBroken(weapon.Name)
	log.Info().Str("weapon", weapon.Name).Str("owner", owner.String()).Msg("weapon broke")
	if _, err := DropWeapon(w, owner); err != nil {
		log.Debug().Err(err).Msg("drop broken weapon")
	}
}

func applyPropImpulse(w *ecs.World, e ecs.Entity, impulse, point cp.Vector) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	body, ok := pw.Body(e)
	if !ok || body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	body.ApplyImpulseAtWorldPoint(impulse, point)
}
