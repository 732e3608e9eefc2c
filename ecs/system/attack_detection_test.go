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

func contactHit(self, other ecs.Entity, selfBone string, force float64) ecs.RawHit {
	return ecs.RawHit{
		Self:         self,
		Other:        other,
		SelfBone:     selfBone,
		OtherBone:    "spine_01",
		Point:        cp.Vector{X: 100, Y: 0},
		ImpactNormal: cp.Vector{X: -1, Y: 0},
		Impulse:      cp.Vector{X: force, Y: 0},
	}
}

func TestArmedHitDamageThreshold(t *testing.T) {
	cases := []struct {
		name           string
		force          float64
		wantDamage     float64
		wantDurability float64
	}{
		{"credited", 3000, 6.0, 94},
		{"exactly_threshold", 2500, 5.0, 95},
		{"below_threshold", 2000, 0, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			damage := mocks.NewMockDamageApplier(ctrl)
			w := newTestWorld(t)
			attacker := spawnCharacter(t, w, 0, 0)
			victim := spawnCharacter(t, w, 200, 0)
			we, weapon := equip(t, w, attacker, "sword.yaml")

			if tc.wantDamage > 0 {
				damage.EXPECT().
					ApplyDamage(w, victim, gomock.Any(), gomock.Any(), we).
					DoAndReturn(func(_ *ecs.World, _ ecs.Entity, amount float64, _, _ ecs.Entity) float64 {
						assert.InDelta(t, tc.wantDamage, amount, 1e-9)
						return amount
					}).
					Times(1)
			}

			s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
			require.NoError(t, s.SetAttackDetection(w, attacker, true))
			require.True(t, w.PhysicsWorld().DispatchHit(contactHit(we, victim, "blade", tc.force)))
			s.Update(w)

			assert.InDelta(t, tc.wantDurability, weapon.Durability, 1e-9)
		})
	}
}

func TestArmedHitCreditsOncePerWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	we, _ := equip(t, w, attacker, "sword.yaml")

	damage.EXPECT().ApplyDamage(w, victim, gomock.Any(), gomock.Any(), we).Return(6.0).Times(2)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	for range 3 {
		w.PhysicsWorld().DispatchHit(contactHit(we, victim, "blade", 3000))
	}
	s.Update(w)

	// A new window credits the same victim again.
	require.NoError(t, s.SetAttackDetection(w, attacker, false))
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	w.PhysicsWorld().DispatchHit(contactHit(we, victim, "blade", 3000))
	s.Update(w)

	events := w.Events().Peek()
	require.Len(t, events, 2)
	landed, ok := events[0].Data.(ecs.HitLandedEvent)
	require.True(t, ok)
	assert.Equal(t, attacker, landed.Attacker)
	assert.Equal(t, victim, landed.Target)
}

func TestBareFistForearmBelowThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	s.processHit(w, attacker, contactHit(attacker, victim, "lowerarm_r", 100))

	det, _ := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	assert.Equal(t, 1, det.Gate.Credited())
	// Only hits that deal damage leave a death shove behind.
	pdi, _ := ecs.Get(w, victim, component.PendingDeathImpulseComponent.Kind())
	assert.False(t, pdi.Pending())
	assert.Empty(t, w.Events().Peek())
}

func TestBareFistNonStrikingBoneRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	s.processHit(w, attacker, contactHit(attacker, victim, "spine_01", 100000))

	det, _ := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	assert.Zero(t, det.Gate.Credited())
	pdi, _ := ecs.Get(w, victim, component.PendingDeathImpulseComponent.Kind())
	assert.False(t, pdi.Pending())
}

func TestHitFiltering(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	rider := spawnUpperBody(t, w, attacker)
	victim := spawnCharacter(t, w, 200, 0)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())

	// Inactive window.
	s.processHit(w, attacker, contactHit(attacker, victim, "hand_r", 100000))

	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	s.processHit(w, attacker, contactHit(attacker, attacker, "hand_r", 100000))
	s.processHit(w, attacker, contactHit(attacker, rider, "hand_r", 100000))

	dead := spawnCharacter(t, w, 300, 0)
	w.DestroyEntity(dead)
	s.processHit(w, attacker, contactHit(attacker, dead, "hand_r", 100000))

	det, _ := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	assert.Zero(t, det.Gate.Credited())
}

func TestUpperBodyHitLandsOnCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	rider := spawnUpperBody(t, w, victim)

	damage.EXPECT().ApplyDamage(w, victim, gomock.Any(), gomock.Any(), attacker).Return(10.0)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	s.processHit(w, attacker, contactHit(attacker, rider, "hand_l", 10000))

	pdi, _ := ecs.Get(w, victim, component.PendingDeathImpulseComponent.Kind())
	assert.True(t, pdi.Pending())
	landed := w.Events().Peek()[0].Data.(ecs.HitLandedEvent)
	assert.Equal(t, victim, landed.Target)
}

func TestRiderAndCharacterCreditedOncePerWindow(t *testing.T) {
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	rider := spawnUpperBody(t, w, victim)
	we, _ := equip(t, w, attacker, "sword.yaml")

	s := NewAttackDetectionSystem(NewDamageRouter(nil, nil, zerolog.Nop()), nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	s.processHit(w, attacker, contactHit(we, rider, "blade", 3000))
	s.processHit(w, attacker, contactHit(we, victim, "blade", 3000))

	health, _ := ecs.Get(w, victim, component.HealthComponent.Kind())
	assert.InDelta(t, 94, health.Current, 1e-9)
	det, _ := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	assert.Equal(t, 1, det.Gate.Credited())
	require.Len(t, w.Events().Peek(), 1)
}

func TestLethalHitUsesItsOwnDeathImpulse(t *testing.T) {
	w := newTestWorld(t)
	puncher := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	swordsman := spawnCharacter(t, w, 400, 0)
	we, _ := equip(t, w, swordsman, "sword.yaml")
	s := NewAttackDetectionSystem(NewDamageRouter(nil, nil, zerolog.Nop()), nil, nil, zerolog.Nop())

	// A graze that deals no damage.
	require.NoError(t, s.SetAttackDetection(w, puncher, true))
	s.processHit(w, puncher, contactHit(puncher, victim, "hand_r", 100))
	pdi, _ := ecs.Get(w, victim, component.PendingDeathImpulseComponent.Kind())
	require.False(t, pdi.Pending())

	health, _ := ecs.Get(w, victim, component.HealthComponent.Kind())
	health.Current = 1
	lethal := contactHit(we, victim, "blade", 3000)
	lethal.ImpactNormal = cp.Vector{X: 0, Y: -1}
	lethal.Point = cp.Vector{X: 9, Y: 9}
	require.NoError(t, s.SetAttackDetection(w, swordsman, true))
	s.processHit(w, swordsman, lethal)

	assert.False(t, health.IsAlive())
	assert.False(t, pdi.Pending())
	req, ok := ecs.Get(w, victim, component.DamageKnockbackRequestComponent.Kind())
	require.True(t, ok)
	assert.False(t, req.Launch)
	assert.Equal(t, cp.Vector{X: 9, Y: 9}, req.Point)
	assert.InDelta(t, 0, req.Impulse.X, 1e-9)
	assert.Greater(t, req.Impulse.Y, 0.0)
}

func TestPunchOnlyCountsPunchingArm(t *testing.T) {
	w := newTestWorld(t)
	attacks, det := newAttackSystems()
	w.AddSystem(attacks)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	c, _ := possessed(t, w, attacker)

	require.NoError(t, RequestAttack(w, c))
	w.Update()
	attack, _ := ecs.Get(w, attacker, component.AttackComponent.Kind())
	require.True(t, attack.Attacking)
	require.Equal(t, component.HandRight, attack.LastHand)

	det.processHit(w, attacker, contactHit(attacker, victim, "hand_l", 10000))
	state, _ := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	assert.Zero(t, state.Gate.Credited())

	det.processHit(w, attacker, contactHit(attacker, victim, "lowerarm_r", 10000))
	assert.Equal(t, 1, state.Gate.Credited())
	health, _ := ecs.Get(w, victim, component.HealthComponent.Kind())
	assert.InDelta(t, 90, health.Current, 1e-9)
}

func TestWeaponBreaksOnDurability(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	we, weapon := equip(t, w, attacker, "sword.yaml")
	weapon.Durability = 5

	damage.EXPECT().ApplyDamage(w, victim, gomock.Any(), gomock.Any(), we).Return(6.0)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	s.processHit(w, attacker, contactHit(we, victim, "blade", 3000))

	assert.True(t, weapon.Broken)
	assert.Zero(t, weapon.Owner)
	assert.False(t, ecs.Has(w, attacker, component.EquippedComponent.Kind()))
	_, _, ok := EquippedWeapon(w, attacker)
	assert.False(t, ok)

	// The broken weapon is no longer a valid causer for this window.
	s.processHit(w, attacker, contactHit(we, spawnCharacter(t, w, 400, 0), "blade", 3000))
}

func TestPropHitPushedEvenBelowThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	crate := spawnPrefab(t, w, "crate.yaml", 100, 0)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	s.processHit(w, attacker, contactHit(attacker, crate, "hand_r", 100))

	body, ok := w.PhysicsWorld().Body(crate)
	require.True(t, ok)
	assert.Greater(t, body.Velocity().X, 0.0)
}

func TestDetectionToggleFilters(t *testing.T) {
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	we, _ := equip(t, w, attacker, "sword.yaml")
	pw := w.PhysicsWorld()

	s := NewAttackDetectionSystem(nil, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	assert.True(t, pw.HitNotify(we))
	assert.True(t, pw.HitHandlerBound(we))
	for _, shape := range pw.Shapes(we) {
		assert.NotZero(t, shape.Filter.Mask&ecs.CategoryBody)
	}

	// Re-enabling keeps a single handler.
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	assert.True(t, pw.HitHandlerBound(we))

	require.NoError(t, s.SetAttackDetection(w, attacker, false))
	assert.False(t, pw.HitNotify(we))
	assert.False(t, pw.HitHandlerBound(we))
	for _, shape := range pw.Shapes(we) {
		assert.Zero(t, shape.Filter.Mask)
	}
	det, _ := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	assert.False(t, det.Active)
	assert.False(t, det.Gate.Active())
}

func TestProxyForwardsDetection(t *testing.T) {
	ctrl := gomock.NewController(t)
	fwd := mocks.NewMockIntentForwarder(ctrl)
	damage := mocks.NewMockDamageApplier(ctrl)
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	victim := spawnCharacter(t, w, 200, 0)
	w.SetNetMode(ecs.NetProxy, fwd)

	gomock.InOrder(
		fwd.EXPECT().ForwardAttackDetection(attacker, true).Return(nil),
		fwd.EXPECT().ForwardAttackDetection(attacker, false).Return(nil),
	)

	s := NewAttackDetectionSystem(damage, nil, nil, zerolog.Nop())
	require.NoError(t, s.SetAttackDetection(w, attacker, true))
	det, _ := ecs.Get(w, attacker, component.AttackDetectionComponent.Kind())
	assert.True(t, det.Active)

	// Proxies never resolve hits themselves.
	w.PhysicsWorld().DispatchHit(contactHit(attacker, victim, "hand_r", 100000))
	s.Update(w)
	assert.Empty(t, w.Events().Peek())

	require.NoError(t, s.SetAttackDetection(w, attacker, false))
}

func TestAttackSpeedStaysClamped(t *testing.T) {
	w := newTestWorld(t)
	attacker := spawnCharacter(t, w, 0, 0)
	tuning := currentTuning(nil)

	assert.InDelta(t, 1.0, CalculatedAttackSpeed(w, attacker, tuning), 1e-9)

	_, weapon := equip(t, w, attacker, "sword.yaml")
	weapon.MassKg = 0
	weapon.AttackSpeedCoefficient = 1000
	assert.InDelta(t, 1.5, CalculatedAttackSpeed(w, attacker, tuning), 1e-9)
}
