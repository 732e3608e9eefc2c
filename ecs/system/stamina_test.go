package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sprinter(t *testing.T, w *ecs.World, moving bool) (ecs.Entity, *component.Stamina, *component.Controller) {
	t.Helper()
	character := spawnCharacter(t, w, 0, 0)
	c, _ := possessed(t, w, character)
	ctrl, _ := ecs.Get(w, c, component.ControllerComponent.Kind())
	ctrl.Sprint = true
	if moving {
		body, _ := w.PhysicsWorld().Body(character)
		body.SetVelocityVector(cp.Vector{X: 200})
	}
	st, ok := ecs.Get(w, character, component.StaminaComponent.Kind())
	require.True(t, ok)
	return character, st, ctrl
}

func TestSprintDrainsWhileMoving(t *testing.T) {
	w := newTestWorld(t)
	_, st, _ := sprinter(t, w, true)

	NewStaminaSystem(nil).Update(w)

	assert.True(t, st.Sprinting)
	assert.InDelta(t, 100-20*w.TickSeconds(), st.Current, 1e-9)
}

func TestSprintInPlaceRegenerates(t *testing.T) {
	w := newTestWorld(t)
	_, st, _ := sprinter(t, w, false)
	st.Current = 50

	NewStaminaSystem(nil).Update(w)

	assert.False(t, st.Sprinting)
	assert.InDelta(t, 50+10*w.TickSeconds(), st.Current, 1e-9)
}

func TestSprintStopsWhenExhausted(t *testing.T) {
	w := newTestWorld(t)
	_, st, ctrl := sprinter(t, w, true)
	st.Current = 0.1

	NewStaminaSystem(nil).Update(w)

	assert.Zero(t, st.Current)
	assert.False(t, st.Sprinting)
	assert.False(t, ctrl.Sprint)
}

func TestRegenCapsAtMax(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	st, _ := ecs.Get(w, character, component.StaminaComponent.Kind())
	st.Current = 99.99

	NewStaminaSystem(nil).Update(w)

	assert.Equal(t, 100.0, st.Current)
}

func TestJump(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	st, _ := ecs.Get(w, character, component.StaminaComponent.Kind())

	require.True(t, Jump(w, character, nil))
	assert.Equal(t, 85.0, st.Current)
	body, _ := w.PhysicsWorld().Body(character)
	assert.Equal(t, jumpSpeed, body.Velocity().Y)
	pawn, _ := ecs.Get(w, character, component.PawnComponent.Kind())
	assert.Equal(t, component.MovementFalling, pawn.Movement)

	// No double jumps.
	assert.False(t, Jump(w, character, nil))

	pawn.Movement = component.MovementWalking
	st.Current = 5
	assert.False(t, Jump(w, character, nil))
}
