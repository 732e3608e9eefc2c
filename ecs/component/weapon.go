package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/combat"
)

type WeaponType uint8

const (
	WeaponNone WeaponType = iota
	WeaponOneHanded
	WeaponTwoHanded
)

// DetectionMode picks which hit detection strategy a weapon uses.
type DetectionMode uint8

const (
	DetectContact DetectionMode = iota
	DetectTrace
)

// Weapon carries weapon stats and ownership. Durability only goes down.
type Weapon struct {
	Name                   string
	Type                   WeaponType
	MassKg                 float64
	BaseDamage             float64
	DamageCoefficient      float64
	ImpulseCoefficient     float64
	AttackSpeedCoefficient float64
	Category               combat.DamageCategory
	Durability             float64
	MaxDurability          float64
	Detection              DetectionMode
	// SwingSpeed is the angular velocity in rad/s applied while attacking.
	SwingSpeed float64

	Owner    uint64
	Equipped bool
	Broken   bool
}

// Usable reports whether the weapon can still deal damage.
func (w *Weapon) Usable() bool {
	return w != nil && !w.Broken && w.Durability > 0
}

// DecreaseDurability lowers durability and reports whether it just broke.
func (w *Weapon) DecreaseDurability(amount float64) bool {
	if w == nil || w.Broken || amount <= 0 {
		return false
	}
	w.Durability -= amount
	if w.Durability <= 0 {
		w.Durability = 0
		w.Broken = true
		return true
	}
	return false
}

var WeaponComponent = NewComponent[Weapon]()

// WeaponTrace is the swept trace state of a trace-detection weapon. Sockets
// are offsets local to the weapon body.
type WeaponTrace struct {
	Sockets   []cp.Vector
	Prev      []cp.Vector
	Attacking bool
	HitSet    map[uint64]struct{}
}

var WeaponTraceComponent = NewComponent[WeaponTrace]()

// Equipped links a character to the weapon in its hand.
type Equipped struct {
	Weapon uint64
}

var EquippedComponent = NewComponent[Equipped]()
