package system

import (
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/rs/zerolog"
)

// AttackSystem turns attack requests into attack windows. Contact weapons
// and fists open hit detection, trace weapons start sweeping. The window
// closes through the world timer.
type AttackSystem struct {
	detection *AttackDetectionSystem
	balance   BalanceSource
	log       zerolog.Logger
}

func NewAttackSystem(detection *AttackDetectionSystem, balance BalanceSource, log zerolog.Logger) *AttackSystem {
	return &AttackSystem{
		detection: detection,
		balance:   balance,
		log:       log.With().Str("component", "attack").Logger(),
	}
}

// RequestAttack queues an attack on the character the controller's pawn
// belongs to.
func RequestAttack(w *ecs.World, controller ecs.Entity) error {
	c, ok := ecs.Get(w, controller, component.ControllerComponent.Kind())
	if !ok {
		return ErrNoController
	}
	pawn := ecs.Entity(c.Pawn)
	if !w.IsAlive(pawn) {
		return ErrNoPawn
	}
	character := rootOf(w, pawn)
	if !ecs.Has(w, character, component.AttackComponent.Kind()) {
		return ErrNoPawn
	}
	return ecs.Add(w, character, component.AttackRequestComponent.Kind(), &component.AttackRequest{Requester: uint64(controller)})
}

func (s *AttackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.AttackRequestComponent.Kind(), component.AttackComponent.Kind()) {
		ecs.Remove(w, e, component.AttackRequestComponent.Kind())
		attack, _ := ecs.Get(w, e, component.AttackComponent.Kind())
		if attack.Attacking {
			continue
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			continue
		}
		s.begin(w, e, attack)
	}
}

func (s *AttackSystem) begin(w *ecs.World, character ecs.Entity, attack *component.Attack) {
	bal := currentBalance(s.balance)
	speed := CalculatedAttackSpeed(w, character, bal.Tuning())
	window := bal.BaseAttackWindow / speed

	if we, weapon, ok := EquippedWeapon(w, character); ok {
		startSwing(w, we, weapon)
		if weapon.Detection == component.DetectTrace {
			StartAttack(w, we)
		} else if err := s.detection.SetAttackDetection(w, character, true); err != nil {
			s.log.Debug().Err(err).Msg("enable detection")
			return
		}
		s.log.Debug().Str("character", character.String()).Str("weapon", weapon.Name).Float64("window", window).Msg("swing")
	} else {
		if attack.LastHand == component.HandRight {
			attack.LastHand = component.HandLeft
		} else {
			attack.LastHand = component.HandRight
		}
		if err := s.detection.SetAttackDetection(w, character, true); err != nil {
			s.log.Debug().Err(err).Msg("enable detection")
			return
		}
		s.log.Debug().Str("character", character.String()).Stringer("hand", attack.LastHand).Float64("window", window).Msg("punch")
	}

	attack.Attacking = true
	attack.Window = window
	attack.Timer = uint64(w.After(window, func(w *ecs.World) {
		s.end(w, character)
	}))
}

func (s *AttackSystem) end(w *ecs.World, character ecs.Entity) {
	attack, ok := ecs.Get(w, character, component.AttackComponent.Kind())
	if !ok {
		return
	}
	attack.Attacking = false
	attack.Timer = 0
	if eq, ok := ecs.Get(w, character, component.EquippedComponent.Kind()); ok && eq.Weapon != 0 {
		we := ecs.Entity(eq.Weapon)
		EndAttack(w, we)
		endSwing(w, we)
	}
	if det, ok := ecs.Get(w, character, component.AttackDetectionComponent.Kind()); ok && det.Active {
		if err := s.detection.SetAttackDetection(w, character, false); err != nil {
			s.log.Debug().Err(err).Msg("disable detection")
		}
	}
}
