package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addCircle(t *testing.T, w *World, pw *PhysicsWorld, pos cp.Vector, radius float64, bone string) Entity {
	t.Helper()
	e := CreateEntity(w)
	body := cp.NewBody(1, cp.MomentForCircle(1, 0, radius, cp.Vector{}))
	body.SetPosition(pos)
	pw.AddBody(e, body)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetCollisionType(CollisionTypeBody)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryBody, cp.ALL_CATEGORIES))
	pw.AddShape(e, shape, bone)
	return e
}

func TestTraceReturnsClosestShape(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0)
	near := addCircle(t, w, pw, cp.Vector{X: 50}, 10, "spine_01")
	far := addCircle(t, w, pw, cp.Vector{X: 100}, 10, "head")

	hit, ok := pw.Trace(cp.Vector{}, cp.Vector{X: 200})
	require.True(t, ok)
	assert.Equal(t, near, hit.Entity)
	assert.Equal(t, "spine_01", hit.Bone)
	assert.InDelta(t, 40, hit.Point.X, 1e-6)
	assert.InDelta(t, -1, hit.Normal.X, 1e-6)
	assert.InDelta(t, 0.2, hit.Alpha, 1e-6)

	hit, ok = pw.Trace(cp.Vector{}, cp.Vector{X: 200}, near)
	require.True(t, ok)
	assert.Equal(t, far, hit.Entity)

	_, ok = pw.Trace(cp.Vector{}, cp.Vector{X: 200}, near, far)
	assert.False(t, ok)

	_, ok = pw.Trace(cp.Vector{X: 5}, cp.Vector{X: 5})
	assert.False(t, ok)
}

func TestTraceSkipsSensorsAndWorld(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0)
	pw.AddStaticSegment(cp.Vector{X: 20, Y: -50}, cp.Vector{X: 20, Y: 50}, 1)

	orb := CreateEntity(w)
	sensor := cp.NewCircle(pw.Space().StaticBody, 24, cp.Vector{X: 60})
	sensor.SetSensor(true)
	sensor.SetCollisionType(CollisionTypeSensor)
	sensor.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryBody, cp.ALL_CATEGORIES))
	pw.AddShape(orb, sensor, "")

	_, ok := pw.Trace(cp.Vector{}, cp.Vector{X: 200})
	assert.False(t, ok)

	target := addCircle(t, w, pw, cp.Vector{X: 150}, 10, "")
	hit, ok := pw.Trace(cp.Vector{}, cp.Vector{X: 200})
	require.True(t, ok)
	assert.Equal(t, target, hit.Entity)
}

func TestHitHandlerBinding(t *testing.T) {
	pw := NewPhysicsWorld(0)
	e := makeEntity(1, 1)

	var got []RawHit
	handler := func(hit RawHit) { got = append(got, hit) }
	assert.True(t, pw.BindHitHandler(e, handler))
	assert.False(t, pw.BindHitHandler(e, handler))
	assert.True(t, pw.HitHandlerBound(e))

	hit := RawHit{Self: e, OtherBone: "head"}
	assert.False(t, pw.DispatchHit(hit), "notify is off")

	pw.SetHitNotify(e, true)
	assert.True(t, pw.HitNotify(e))
	assert.True(t, pw.DispatchHit(hit))
	require.Len(t, got, 1)
	assert.Equal(t, "head", got[0].OtherBone)

	assert.True(t, pw.UnbindHitHandler(e))
	assert.False(t, pw.UnbindHitHandler(e))
	assert.False(t, pw.DispatchHit(hit))

	pw.SetHitNotify(e, false)
	assert.False(t, pw.HitNotify(e))

	var nilWorld *PhysicsWorld
	assert.False(t, nilWorld.DispatchHit(hit))
	assert.Nil(t, nilWorld.DrainOverlaps())
}

func TestContactDispatchesBothSides(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0)
	mover := addCircle(t, w, pw, cp.Vector{}, 10, "hand_r")
	struck := addCircle(t, w, pw, cp.Vector{X: 25}, 10, "spine_01")
	body, _ := pw.Body(mover)
	body.SetVelocity(200, 0)

	var mine, theirs []RawHit
	pw.SetHitNotify(mover, true)
	pw.BindHitHandler(mover, func(hit RawHit) { mine = append(mine, hit) })
	pw.BindHitHandler(struck, func(hit RawHit) { theirs = append(theirs, hit) })
	pw.SetHitNotify(struck, true)

	for range 10 {
		pw.Step(1.0 / 60.0)
	}
	require.NotEmpty(t, mine)
	require.NotEmpty(t, theirs)
	assert.Equal(t, struck, mine[0].Other)
	assert.Equal(t, "hand_r", mine[0].SelfBone)
	assert.Equal(t, "spine_01", mine[0].OtherBone)
	assert.Equal(t, mover, theirs[0].Other)
	assert.InDelta(t, -mine[0].ImpactNormal.X, theirs[0].ImpactNormal.X, 1e-9)
	assert.Less(t, mine[0].ImpactNormal.X, 0.0)
}

func TestSensorOverlapQueued(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0)
	orb := CreateEntity(w)
	sensor := cp.NewCircle(pw.Space().StaticBody, 24, cp.Vector{})
	sensor.SetSensor(true)
	sensor.SetCollisionType(CollisionTypeSensor)
	sensor.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategorySensor, CategoryBody))
	pw.AddShape(orb, sensor, "")

	pawn := addCircle(t, w, pw, cp.Vector{X: 5}, 8, "pelvis")
	pw.Step(1.0 / 60.0)

	got := pw.DrainOverlaps()
	require.Len(t, got, 1)
	assert.Equal(t, OverlapEvent{Sensor: orb, Other: pawn, Bone: "pelvis"}, got[0])
	assert.Empty(t, pw.DrainOverlaps())

	pw.PushOverlap(OverlapEvent{Sensor: orb, Other: pawn})
	assert.Len(t, pw.DrainOverlaps(), 1)
}

func TestRemoveEntity(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(0)
	e := addCircle(t, w, pw, cp.Vector{}, 10, "head")
	pw.SetHitNotify(e, true)
	shape := pw.Shapes(e)[0]

	info, ok := pw.ShapeInfo(shape)
	require.True(t, ok)
	assert.Equal(t, ShapeInfo{Entity: e, Bone: "head"}, info)

	pw.RemoveEntity(e)
	_, ok = pw.Body(e)
	assert.False(t, ok)
	assert.Empty(t, pw.Shapes(e))
	assert.False(t, pw.HitNotify(e))
	assert.False(t, pw.Space().ContainsShape(shape))
	_, ok = pw.ShapeInfo(shape)
	assert.False(t, ok)
}
