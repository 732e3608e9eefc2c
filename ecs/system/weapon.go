package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

// PickupRadius is how close a character must be to grab a loose weapon.
const PickupRadius = 96.0

type weaponState uint8

const (
	weaponLoose weaponState = iota
	weaponHeld
	weaponSwinging
)

// weaponFilter keeps the owner's group on the weapon in every state. A held
// weapon passes through everything until a swing opens it up.
func weaponFilter(group uint, state weaponState) cp.ShapeFilter {
	switch state {
	case weaponHeld:
		return cp.NewShapeFilter(group, ecs.CategoryWeapon, 0)
	case weaponSwinging:
		return cp.NewShapeFilter(group, ecs.CategoryWeapon, ecs.CategoryWorld|ecs.CategoryBody|ecs.CategoryWeapon)
	default:
		return cp.NewShapeFilter(group, ecs.CategoryWeapon, ecs.CategoryWorld)
	}
}

// EquippedWeapon returns the usable weapon in character's hand.
func EquippedWeapon(w *ecs.World, character ecs.Entity) (ecs.Entity, *component.Weapon, bool) {
	eq, ok := ecs.Get(w, character, component.EquippedComponent.Kind())
	if !ok || eq.Weapon == 0 {
		return 0, nil, false
	}
	we := ecs.Entity(eq.Weapon)
	weapon, ok := ecs.Get(w, we, component.WeaponComponent.Kind())
	if !ok || !weapon.Usable() || ecs.Entity(weapon.Owner) != character {
		return 0, nil, false
	}
	return we, weapon, true
}

// EquipWeapon puts weapon into character's right hand, dropping whatever
// was held before.
func EquipWeapon(w *ecs.World, character, weaponEnt ecs.Entity) error {
	weapon, ok := ecs.Get(w, weaponEnt, component.WeaponComponent.Kind())
	if !ok || !weapon.Usable() {
		return fmt.Errorf("equip %s: %w", weaponEnt, ErrNoWeapon)
	}
	if weapon.Owner != 0 && ecs.Entity(weapon.Owner) != character {
		return fmt.Errorf("equip %s: %w", weaponEnt, ErrWeaponOwned)
	}
	if eq, ok := ecs.Get(w, character, component.EquippedComponent.Kind()); ok && eq.Weapon != 0 && ecs.Entity(eq.Weapon) != weaponEnt {
		if _, err := DropWeapon(w, character); err != nil {
			return err
		}
	}
	if err := Attach(w, weaponEnt, character, component.SocketHandR, idleSwingMin, idleSwingMax); err != nil {
		return fmt.Errorf("equip %s: %w", weaponEnt, err)
	}

	weapon.Owner = uint64(character)
	weapon.Equipped = true
	if err := ecs.Add(w, weaponEnt, component.OwnerComponent.Kind(), &component.Owner{Entity: uint64(character)}); err != nil {
		return err
	}
	if err := ecs.Add(w, character, component.EquippedComponent.Kind(), &component.Equipped{Weapon: uint64(weaponEnt)}); err != nil {
		return err
	}
	if trace, ok := ecs.Get(w, weaponEnt, component.WeaponTraceComponent.Kind()); ok {
		trace.Attacking = false
		trace.Prev = nil
		trace.HitSet = nil
	}
	setWeaponState(w, weaponEnt, weaponHeld)
	return nil
}

// DropWeapon releases the weapon character holds and returns it.
func DropWeapon(w *ecs.World, character ecs.Entity) (ecs.Entity, error) {
	eq, ok := ecs.Get(w, character, component.EquippedComponent.Kind())
	if !ok || eq.Weapon == 0 {
		return 0, fmt.Errorf("drop from %s: %w", character, ErrNoWeapon)
	}
	we := ecs.Entity(eq.Weapon)
	ecs.Remove(w, character, component.EquippedComponent.Kind())
	if !w.IsAlive(we) {
		return 0, nil
	}

	Detach(w, we)
	ecs.Remove(w, we, component.OwnerComponent.Kind())
	if weapon, ok := ecs.Get(w, we, component.WeaponComponent.Kind()); ok {
		weapon.Owner = 0
		weapon.Equipped = false
	}
	if trace, ok := ecs.Get(w, we, component.WeaponTraceComponent.Kind()); ok {
		trace.Attacking = false
		trace.HitSet = nil
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.SetHitNotify(we, false)
		pw.UnbindHitHandler(we)
		if body, ok := pw.Body(we); ok {
			body.SetAngularVelocity(0)
		}
	}
	setWeaponState(w, we, weaponLoose)
	return we, nil
}

// PickupNearest equips the closest loose usable weapon within radius.
func PickupNearest(w *ecs.World, character ecs.Entity, radius float64) (ecs.Entity, error) {
	ct, ok := ecs.Get(w, character, component.TransformComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("pickup: %s has no transform", character)
	}
	best := ecs.Entity(0)
	bestDist := math.Inf(1)
	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, weapon *component.Weapon, t *component.Transform) {
		if weapon.Owner != 0 || !weapon.Usable() {
			return
		}
		d := math.Hypot(t.X-ct.X, t.Y-ct.Y)
		if d <= radius && d < bestDist {
			best, bestDist = e, d
		}
	})
	if best == 0 {
		return 0, ErrNoWeapon
	}
	return best, EquipWeapon(w, character, best)
}

func setWeaponState(w *ecs.World, weaponEnt ecs.Entity, state weaponState) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	group := uint(weaponEnt.Slot())
	if weapon, ok := ecs.Get(w, weaponEnt, component.WeaponComponent.Kind()); ok && weapon.Owner != 0 {
		owner := ecs.Entity(weapon.Owner)
		pb, _ := ecs.Get(w, owner, component.PhysicsBodyComponent.Kind())
		group = ownGroup(owner, pb)
	} else if pb, ok := ecs.Get(w, weaponEnt, component.PhysicsBodyComponent.Kind()); ok {
		group = ownGroup(weaponEnt, pb)
	}
	pw.SetFilter(weaponEnt, weaponFilter(group, state))
}

// startSwing frees the weapon's swing and spins it.
func startSwing(w *ecs.World, weaponEnt ecs.Entity, weapon *component.Weapon) {
	SetSwingLimit(w, weaponEnt, attackSwingMin, attackSwingMax)
	if pw := w.PhysicsWorld(); pw != nil && weapon.SwingSpeed != 0 {
		if body, ok := pw.Body(weaponEnt); ok {
			body.SetAngularVelocity(weapon.SwingSpeed)
		}
	}
}

func endSwing(w *ecs.World, weaponEnt ecs.Entity) {
	SetSwingLimit(w, weaponEnt, idleSwingMin, idleSwingMax)
}
