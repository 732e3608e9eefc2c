package system

import (
	"fmt"

	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

// Possession is the default PossessionService. It links controller and pawn
// components both ways.
type Possession struct{}

func NewPossession() *Possession { return &Possession{} }

func (Possession) Possess(w *ecs.World, controller, pawn ecs.Entity) error {
	c, ok := ecs.Get(w, controller, component.ControllerComponent.Kind())
	if !ok {
		return fmt.Errorf("possess: %s: %w", controller, ErrNoController)
	}
	p, ok := ecs.Get(w, pawn, component.PawnComponent.Kind())
	if !ok {
		return fmt.Errorf("possess: %s: %w", pawn, ErrNoPawn)
	}
	if p.Controller != 0 && ecs.Entity(p.Controller) != controller {
		return fmt.Errorf("possess: %s: %w", pawn, ErrPawnPossessed)
	}
	if c.Pawn != 0 && ecs.Entity(c.Pawn) != pawn {
		if old, ok := ecs.Get(w, ecs.Entity(c.Pawn), component.PawnComponent.Kind()); ok && ecs.Entity(old.Controller) == controller {
			old.Controller = 0
		}
	}
	c.Pawn = uint64(pawn)
	c.ViewTarget = uint64(pawn)
	p.Controller = uint64(controller)
	return nil
}

func (Possession) UnPossess(w *ecs.World, controller ecs.Entity) error {
	c, ok := ecs.Get(w, controller, component.ControllerComponent.Kind())
	if !ok {
		return fmt.Errorf("unpossess: %s: %w", controller, ErrNoController)
	}
	if c.Pawn != 0 {
		if p, ok := ecs.Get(w, ecs.Entity(c.Pawn), component.PawnComponent.Kind()); ok && ecs.Entity(p.Controller) == controller {
			p.Controller = 0
		}
	}
	c.Pawn = 0
	return nil
}

func (Possession) SetOwner(w *ecs.World, pawn, owner ecs.Entity) error {
	p, ok := ecs.Get(w, pawn, component.PawnComponent.Kind())
	if !ok {
		return fmt.Errorf("set owner: %s: %w", pawn, ErrNoPawn)
	}
	p.NetOwner = uint64(owner)
	return nil
}
