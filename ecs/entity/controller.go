package entity

import (
	"github.com/google/uuid"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

// NewController creates the controller entity that a player drives pawns
// through. It starts unpossessed.
func NewController(w *ecs.World, player uuid.UUID) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ControllerComponent.Kind(), &component.Controller{Player: player}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
