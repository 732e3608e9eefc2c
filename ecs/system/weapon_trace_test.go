package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/ecs/system/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// swingThrough places a swinging greatsword so that its next sweep crosses
// the spine of a character standing at (200, 0).
func swingThrough(t *testing.T, w *ecs.World, attacker ecs.Entity) (ecs.Entity, *component.Weapon, *component.WeaponTrace) {
	t.Helper()
	we, weapon := equip(t, w, attacker, "greatsword.yaml")
	require.True(t, StartAttack(w, we))
	trace, _ := ecs.Get(w, we, component.WeaponTraceComponent.Kind())
	trace.Prev = []cp.Vector{{X: 110, Y: -10}, {X: 134, Y: -10}, {X: 158, Y: -10}}
	body, _ := w.PhysicsWorld().Body(we)
	body.SetAngle(0)
	body.SetPosition(cp.Vector{X: 170, Y: -10})
	return we, weapon, trace
}

func TestTraceSweepHitsOncePerSwing(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	we, weapon, trace := swingThrough(t, w, attacker)

	damage.EXPECT().
		ApplyPointDamage(w, victim, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), we).
		DoAndReturn(func(_ *ecs.World, _ ecs.Entity, amount float64, dir cp.Vector, hit ecs.TraceHit, _, _ ecs.Entity) float64 {
			assert.Greater(t, amount, weapon.BaseDamage)
			assert.Greater(t, dir.X, 0.0)
			assert.Equal(t, "spine_01", hit.Bone)
			return amount
		}).
		Times(1)

	s := NewWeaponTraceSystem(damage, nil, nil, zerolog.Nop())
	s.Update(w)

	assert.Contains(t, trace.HitSet, uint64(victim))
	assert.InDelta(t, 110.0, weapon.Durability, 1e-9)

	req, ok := ecs.Get(w, victim, component.DamageKnockbackRequestComponent.Kind())
	require.True(t, ok)
	assert.True(t, req.Launch)
	assert.GreaterOrEqual(t, req.Impulse.Y, 150.0)

	// Sweeping back through the same victim in the same swing does nothing.
	trace.Prev = []cp.Vector{{X: 300, Y: -10}, {X: 324, Y: -10}, {X: 348, Y: -10}}
	s.Update(w)
}

func TestTraceRiderAndCharacterCreditedOncePerSwing(t *testing.T) {
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	rider := spawnUpperBody(t, w, victim)
	we, weapon := equip(t, w, attacker, "greatsword.yaml")
	// Refresh shape bounds after the rider was moved onto its mount.
	w.PhysicsWorld().Step(1e-6)
	require.True(t, StartAttack(w, we))
	trace, _ := ecs.Get(w, we, component.WeaponTraceComponent.Kind())

	// The first socket passes through the rider, the second through the
	// character's spine.
	trace.Prev = []cp.Vector{{X: 100, Y: 60}, {X: 100, Y: -10}}
	current := []cp.Vector{{X: 300, Y: 60}, {X: 300, Y: -10}}
	hit, ok := w.PhysicsWorld().Trace(trace.Prev[0], current[0], we, attacker)
	require.True(t, ok)
	require.Equal(t, rider, hit.Entity)

	s := NewWeaponTraceSystem(NewDamageRouter(nil, nil, zerolog.Nop()), nil, nil, zerolog.Nop())
	s.sweep(w, we, weapon, trace, current, 1.0/60.0)

	assert.Equal(t, map[uint64]struct{}{uint64(victim): {}}, trace.HitSet)
	require.Len(t, w.Events().Peek(), 1)
	health, _ := ecs.Get(w, victim, component.HealthComponent.Kind())
	landed := w.Events().Peek()[0].Data.(ecs.HitLandedEvent)
	assert.InDelta(t, 100-landed.Damage, health.Current, 1e-9)
}

func TestTraceKillUsesSweepImpulse(t *testing.T) {
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	health, _ := ecs.Get(w, victim, component.HealthComponent.Kind())
	health.Current = 1
	_, _, trace := swingThrough(t, w, attacker)

	NewWeaponTraceSystem(NewDamageRouter(nil, nil, zerolog.Nop()), nil, nil, zerolog.Nop()).Update(w)

	require.Contains(t, trace.HitSet, uint64(victim))
	assert.False(t, health.IsAlive())
	pdi, _ := ecs.Get(w, victim, component.PendingDeathImpulseComponent.Kind())
	assert.False(t, pdi.Pending())
	req, ok := ecs.Get(w, victim, component.DamageKnockbackRequestComponent.Kind())
	require.True(t, ok)
	assert.False(t, req.Launch, "death shove, not a launch")
	assert.Greater(t, req.Impulse.X, 0.0)
}

func TestTraceIgnoresOwnerAndRider(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	spawnUpperBody(t, w, attacker)
	we, _ := equip(t, w, attacker, "greatsword.yaml")
	require.True(t, StartAttack(w, we))
	trace, _ := ecs.Get(w, we, component.WeaponTraceComponent.Kind())
	trace.Prev = []cp.Vector{{X: -100, Y: 56}, {X: -100, Y: 0}, {X: -100, Y: -32}}
	body, _ := w.PhysicsWorld().Body(we)
	body.SetAngle(0)
	body.SetPosition(cp.Vector{X: 100, Y: 56})

	NewWeaponTraceSystem(damage, nil, nil, zerolog.Nop()).Update(w)
	assert.Empty(t, trace.HitSet)
}

func TestTraceIdleWeaponDoesNotSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	spawnCharacter(t, w, 200, 0)
	we, _, trace := swingThrough(t, w, attacker)
	EndAttack(w, we)

	NewWeaponTraceSystem(damage, nil, nil, zerolog.Nop()).Update(w)

	body, _ := w.PhysicsWorld().Body(we)
	assert.Equal(t, body.LocalToWorld(cp.Vector{}), trace.Prev[0])
}

func TestTraceBreaksWeapon(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	spawnCharacter(t, w, 200, 0)
	_, weapon, _ := swingThrough(t, w, attacker)
	weapon.Durability = 10

	damage.EXPECT().ApplyPointDamage(w, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(1.0)

	NewWeaponTraceSystem(damage, nil, nil, zerolog.Nop()).Update(w)

	assert.True(t, weapon.Broken)
	assert.False(t, ecs.Has(w, attacker, component.EquippedComponent.Kind()))
}

func TestTraceProxyDoesNotDamage(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	spawnCharacter(t, w, 200, 0)
	_, _, trace := swingThrough(t, w, attacker)
	w.SetNetMode(ecs.NetProxy, nil)

	NewWeaponTraceSystem(damage, nil, nil, zerolog.Nop()).Update(w)
	assert.Empty(t, trace.HitSet)
}
