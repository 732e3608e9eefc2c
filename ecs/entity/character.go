package entity

import (
	"fmt"

	"github.com/milk9111/backwardroyal/ecs"
)

const (
	CharacterPrefab = "character.yaml"
	UpperBodyPrefab = "upper_body.yaml"
	SwitchOrbPrefab = "switch_orb.yaml"
)

// NewCharacterAt builds a lower-body character at x, y.
func NewCharacterAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return newPrefabAt(w, CharacterPrefab, x, y)
}

// NewUpperBodyAt builds an unattached upper-body pawn at x, y.
func NewUpperBodyAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return newPrefabAt(w, UpperBodyPrefab, x, y)
}

// NewSwitchOrbAt builds a swap orb at x, y.
func NewSwitchOrbAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return newPrefabAt(w, SwitchOrbPrefab, x, y)
}

// NewWeaponAt builds a loose weapon from prefab at x, y.
func NewWeaponAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	return newPrefabAt(w, prefab, x, y)
}

// NewPropAt builds a physics prop from prefab at x, y.
func NewPropAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	return newPrefabAt(w, prefab, x, y)
}

func newPrefabAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%s: override transform: %w", prefab, err)
	}
	return e, nil
}
