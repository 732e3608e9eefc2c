package system

import (
	"testing"

	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipWeapon(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	we, weapon := equip(t, w, character, "sword.yaml")
	pw := w.PhysicsWorld()

	assert.Equal(t, uint64(character), weapon.Owner)
	assert.True(t, weapon.Equipped)
	att, ok := ecs.Get(w, we, component.AttachmentComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.SocketHandR, att.Socket)

	lo, hi, ok := SwingLimit(w, we)
	require.True(t, ok)
	assert.Equal(t, idleSwingMin, lo)
	assert.Equal(t, idleSwingMax, hi)

	for _, shape := range pw.Shapes(we) {
		assert.Equal(t, uint(character.Slot()), shape.Filter.Group)
		assert.Zero(t, shape.Filter.Mask)
	}

	got, _, ok := EquippedWeapon(w, character)
	require.True(t, ok)
	assert.Equal(t, we, got)
}

func TestEquipReplacesHeldWeapon(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	first, firstWeapon := equip(t, w, character, "sword.yaml")
	second, _ := equip(t, w, character, "mace.yaml")

	got, _, ok := EquippedWeapon(w, character)
	require.True(t, ok)
	assert.Equal(t, second, got)

	assert.Zero(t, firstWeapon.Owner)
	assert.False(t, firstWeapon.Equipped)
	assert.False(t, ecs.Has(w, first, component.AttachmentComponent.Kind()))
	for _, shape := range w.PhysicsWorld().Shapes(first) {
		assert.Equal(t, uint(first.Slot()), shape.Filter.Group)
		assert.Equal(t, ecs.CategoryWorld, shape.Filter.Mask)
	}
}

func TestEquipOwnedWeaponFails(t *testing.T) {
	w := newTestWorld(t)
	a := spawnCharacter(t, w, 0, 0)
	b := spawnCharacter(t, w, 200, 0)
	we, _ := equip(t, w, a, "sword.yaml")

	assert.ErrorIs(t, EquipWeapon(w, b, we), ErrWeaponOwned)
}

func TestDropWeapon(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	we, weapon := equip(t, w, character, "sword.yaml")
	jc, _ := ecs.Get(w, we, component.AnchorJointComponent.Kind())
	pivot := jc.Pivot

	dropped, err := DropWeapon(w, character)
	require.NoError(t, err)
	assert.Equal(t, we, dropped)
	assert.Zero(t, weapon.Owner)
	assert.False(t, w.PhysicsWorld().Space().ContainsConstraint(pivot))
	assert.False(t, ecs.Has(w, we, component.OwnerComponent.Kind()))

	_, err = DropWeapon(w, character)
	assert.ErrorIs(t, err, ErrNoWeapon)
}

func TestPickupNearest(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	near := spawnPrefab(t, w, "sword.yaml", 50, 0)
	spawnPrefab(t, w, "mace.yaml", 80, 0)
	spawnPrefab(t, w, "greatsword.yaml", 500, 0)

	got, err := PickupNearest(w, character, PickupRadius)
	require.NoError(t, err)
	assert.Equal(t, near, got)

	lonely := spawnCharacter(t, w, -2000, 0)
	_, err = PickupNearest(w, lonely, PickupRadius)
	assert.ErrorIs(t, err, ErrNoWeapon)
}

func TestSwingLimits(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	we, weapon := equip(t, w, character, "sword.yaml")

	startSwing(w, we, weapon)
	lo, hi, _ := SwingLimit(w, we)
	assert.Equal(t, attackSwingMin, lo)
	assert.Equal(t, attackSwingMax, hi)
	body, _ := w.PhysicsWorld().Body(we)
	assert.Equal(t, weapon.SwingSpeed, body.AngularVelocity())

	endSwing(w, we)
	lo, hi, _ = SwingLimit(w, we)
	assert.Equal(t, idleSwingMin, lo)
	assert.Equal(t, idleSwingMax, hi)
}

func TestDestroyRemovesJoints(t *testing.T) {
	w := newTestWorld(t)
	character := spawnCharacter(t, w, 0, 0)
	rider := spawnUpperBody(t, w, character)
	jc, _ := ecs.Get(w, rider, component.AnchorJointComponent.Kind())
	pivot, limit := jc.Pivot, jc.Limit
	space := w.PhysicsWorld().Space()
	require.True(t, space.ContainsConstraint(pivot))

	w.DestroyEntity(character)

	assert.False(t, space.ContainsConstraint(pivot))
	assert.False(t, space.ContainsConstraint(limit))
	_, ok := w.PhysicsWorld().Body(character)
	assert.False(t, ok)
}

func TestAttachRequiresMountPoint(t *testing.T) {
	w := newTestWorld(t)
	crate := spawnPrefab(t, w, "crate.yaml", 0, 0)
	character := spawnCharacter(t, w, 0, 0)

	assert.ErrorIs(t, Attach(w, character, crate, component.SocketHeadMount, 0, 0), ErrNoMountPoint)
	assert.ErrorIs(t, Attach(w, crate, character, "tail", 0, 0), ErrNoMountPoint)
	assert.False(t, Detach(w, crate))
}
