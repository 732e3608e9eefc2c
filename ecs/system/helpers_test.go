package system

import (
	"testing"

	"github.com/google/uuid"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/ecs/entity"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(ecs.DefaultGravity))
	InstallPhysicsCleanup(w)
	return w
}

func spawnCharacter(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewCharacterAt(w, x, y)
	require.NoError(t, err)
	_, err = EnsureBody(w, e)
	require.NoError(t, err)
	return e
}

func spawnUpperBody(t *testing.T, w *ecs.World, mount ecs.Entity) ecs.Entity {
	t.Helper()
	e, err := entity.NewUpperBodyAt(w, 0, 0)
	require.NoError(t, err)
	require.NoError(t, Attach(w, e, mount, component.SocketHeadMount, 0, 0))
	return e
}

func spawnPrefab(t *testing.T, w *ecs.World, prefab string, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPropAt(w, prefab, x, y)
	require.NoError(t, err)
	_, err = EnsureBody(w, e)
	require.NoError(t, err)
	return e
}

func equip(t *testing.T, w *ecs.World, character ecs.Entity, prefab string) (ecs.Entity, *component.Weapon) {
	t.Helper()
	we := spawnPrefab(t, w, prefab, 0, 0)
	require.NoError(t, EquipWeapon(w, character, we))
	weapon, ok := ecs.Get(w, we, component.WeaponComponent.Kind())
	require.True(t, ok)
	return we, weapon
}

// possessed creates a controller for a fresh player and gives it pawn.
func possessed(t *testing.T, w *ecs.World, pawn ecs.Entity) (ecs.Entity, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	c, err := entity.NewController(w, id)
	require.NoError(t, err)
	require.NoError(t, NewPossession().Possess(w, c, pawn))
	return c, id
}

func controllerPawn(t *testing.T, w *ecs.World, c ecs.Entity) ecs.Entity {
	t.Helper()
	ctrl, ok := ecs.Get(w, c, component.ControllerComponent.Kind())
	require.True(t, ok)
	return ecs.Entity(ctrl.Pawn)
}
