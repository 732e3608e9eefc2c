package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	CollisionTypeSolid cp.CollisionType = iota + 1
	CollisionTypeBody
	CollisionTypeWeapon
	CollisionTypeSensor
)

// Collision categories used in shape filters.
const (
	CategoryWorld uint = 1 << iota
	CategoryBody
	CategoryWeapon
	CategorySensor
)

// DefaultGravity pulls bodies down the Y axis; world space is Y-up.
const DefaultGravity = 980.0

// ShapeInfo maps a Chipmunk shape back to its owning entity and the bone it
// represents on that entity's skeleton.
type ShapeInfo struct {
	Entity Entity
	Bone   string
}

// RawHit is a collision notification seen from Self's side. ImpactNormal is
// the struck surface normal, pointing back towards Self.
type RawHit struct {
	Self         Entity
	Other        Entity
	SelfBone     string
	OtherBone    string
	Point        cp.Vector
	ImpactNormal cp.Vector
	Impulse      cp.Vector
}

// HitHandler receives hit notifications for an entity.
type HitHandler func(hit RawHit)

// OverlapEvent records a sensor being entered by another entity's shape.
type OverlapEvent struct {
	Sensor Entity
	Other  Entity
	Bone   string
}

// TraceHit is the closest shape crossed by a swept segment.
type TraceHit struct {
	Entity Entity
	Bone   string
	Point  cp.Vector
	Normal cp.Vector
	Alpha  float64
}

// PhysicsWorld owns the Chipmunk space, shape lookups and hit subscriptions.
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool

	shapes      map[*cp.Shape]ShapeInfo
	bodies      map[Entity]*cp.Body
	entityShape map[Entity][]*cp.Shape
	notify      map[Entity]bool
	hitHandlers map[Entity]HitHandler
	overlaps    []OverlapEvent
}

// NewPhysicsWorld creates an empty space with the given downward gravity.
func NewPhysicsWorld(gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	pw := &PhysicsWorld{
		space:       space,
		shapes:      make(map[*cp.Shape]ShapeInfo),
		bodies:      make(map[Entity]*cp.Body),
		entityShape: make(map[Entity][]*cp.Shape),
		notify:      make(map[Entity]bool),
		hitHandlers: make(map[Entity]HitHandler),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddBody adds body to the space and records it as e's body.
func (pw *PhysicsWorld) AddBody(e Entity, body *cp.Body) {
	if pw == nil || body == nil || !e.Valid() {
		return
	}
	if body != pw.space.StaticBody && !pw.space.ContainsBody(body) {
		pw.space.AddBody(body)
	}
	body.UserData = e
	pw.bodies[e] = body
}

// AddShape adds shape to the space on behalf of e.
func (pw *PhysicsWorld) AddShape(e Entity, shape *cp.Shape, bone string) {
	if pw == nil || shape == nil {
		return
	}
	pw.space.AddShape(shape)
	pw.shapes[shape] = ShapeInfo{Entity: e, Bone: bone}
	pw.entityShape[e] = append(pw.entityShape[e], shape)
}

// AddStaticSegment adds level geometry.
func (pw *PhysicsWorld) AddStaticSegment(a, b cp.Vector, radius float64) *cp.Shape {
	if pw == nil {
		return nil
	}
	shape := cp.NewSegment(pw.space.StaticBody, a, b, radius)
	shape.SetFriction(0.8)
	shape.SetCollisionType(CollisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryWorld, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	return shape
}

// Body returns the body registered for e.
func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	if pw == nil {
		return nil, false
	}
	b, ok := pw.bodies[e]
	return b, ok && b != nil
}

// Shapes returns the shapes registered for e.
func (pw *PhysicsWorld) Shapes(e Entity) []*cp.Shape {
	if pw == nil {
		return nil
	}
	return pw.entityShape[e]
}

// ShapeInfo resolves a shape to its entity and bone.
func (pw *PhysicsWorld) ShapeInfo(shape *cp.Shape) (ShapeInfo, bool) {
	if pw == nil || shape == nil {
		return ShapeInfo{}, false
	}
	info, ok := pw.shapes[shape]
	return info, ok
}

// SetFilter applies filter to every shape of e.
func (pw *PhysicsWorld) SetFilter(e Entity, filter cp.ShapeFilter) {
	for _, shape := range pw.Shapes(e) {
		shape.SetFilter(filter)
	}
}

// RemoveEntity drops every shape, constraint-free body and subscription of
// e. It must not be called while the space is stepping.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil {
		return
	}
	for _, shape := range pw.entityShape[e] {
		if pw.space.ContainsShape(shape) {
			pw.space.RemoveShape(shape)
		}
		delete(pw.shapes, shape)
	}
	delete(pw.entityShape, e)
	if body, ok := pw.bodies[e]; ok && body != nil && body != pw.space.StaticBody {
		if pw.space.ContainsBody(body) {
			pw.space.RemoveBody(body)
		}
	}
	delete(pw.bodies, e)
	delete(pw.notify, e)
	delete(pw.hitHandlers, e)
}

// SetHitNotify enables or disables hit notifications for e's shapes.
func (pw *PhysicsWorld) SetHitNotify(e Entity, enabled bool) {
	if pw == nil {
		return
	}
	if enabled {
		pw.notify[e] = true
		return
	}
	delete(pw.notify, e)
}

// HitNotify reports whether e currently emits hit notifications.
func (pw *PhysicsWorld) HitNotify(e Entity) bool {
	return pw != nil && pw.notify[e]
}

// BindHitHandler binds fn to e. It returns false and leaves the existing
// binding untouched when e already has a handler.
func (pw *PhysicsWorld) BindHitHandler(e Entity, fn HitHandler) bool {
	if pw == nil || fn == nil {
		return false
	}
	if _, ok := pw.hitHandlers[e]; ok {
		return false
	}
	pw.hitHandlers[e] = fn
	return true
}

// UnbindHitHandler removes e's handler.
func (pw *PhysicsWorld) UnbindHitHandler(e Entity) bool {
	if pw == nil {
		return false
	}
	if _, ok := pw.hitHandlers[e]; !ok {
		return false
	}
	delete(pw.hitHandlers, e)
	return true
}

// HitHandlerBound reports whether e has a handler.
func (pw *PhysicsWorld) HitHandlerBound(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.hitHandlers[e]
	return ok
}

// DispatchHit delivers hit to Self's handler when notifications are on.
func (pw *PhysicsWorld) DispatchHit(hit RawHit) bool {
	if pw == nil || !pw.notify[hit.Self] {
		return false
	}
	fn, ok := pw.hitHandlers[hit.Self]
	if !ok {
		return false
	}
	fn(hit)
	return true
}

// DrainOverlaps returns queued sensor overlaps and clears the queue.
func (pw *PhysicsWorld) DrainOverlaps() []OverlapEvent {
	if pw == nil || len(pw.overlaps) == 0 {
		return nil
	}
	out := pw.overlaps
	pw.overlaps = nil
	return out
}

// PushOverlap queues an overlap as if a sensor had been entered.
func (pw *PhysicsWorld) PushOverlap(evt OverlapEvent) {
	if pw == nil {
		return
	}
	pw.overlaps = append(pw.overlaps, evt)
}

// Trace sweeps a segment and returns the closest shape that does not belong
// to an ignored entity. Sensors are never reported.
func (pw *PhysicsWorld) Trace(start, end cp.Vector, ignore ...Entity) (TraceHit, bool) {
	if pw == nil || start.Equal(end) {
		return TraceHit{}, false
	}
	skip := make(map[Entity]struct{}, len(ignore))
	for _, e := range ignore {
		skip[e] = struct{}{}
	}

	best := TraceHit{Alpha: math.Inf(1)}
	found := false
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, CategoryBody)
	pw.space.SegmentQuery(start, end, 0, filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		if shape.Sensor() {
			return
		}
		info, ok := pw.shapes[shape]
		if !ok {
			return
		}
		if _, ignored := skip[info.Entity]; ignored {
			return
		}
		if alpha < best.Alpha {
			best = TraceHit{Entity: info.Entity, Bone: info.Bone, Point: point, Normal: normal, Alpha: alpha}
			found = true
		}
	}, nil)
	return best, found
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	pairs := [][2]cp.CollisionType{
		{CollisionTypeWeapon, CollisionTypeBody},
		{CollisionTypeBody, CollisionTypeBody},
		{CollisionTypeWeapon, CollisionTypeWeapon},
	}
	for _, pair := range pairs {
		handler := pw.space.NewCollisionHandler(pair[0], pair[1])
		handler.UserData = pw
		handler.PostSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			world, ok := userData.(*PhysicsWorld)
			if !ok || world == nil {
				return
			}
			world.dispatchArbiter(arb)
		}
	}

	sensorHandler := pw.space.NewWildcardCollisionHandler(CollisionTypeSensor)
	sensorHandler.UserData = pw
	sensorHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		sensor, other := shapeA, shapeB
		if !sensor.Sensor() {
			sensor, other = shapeB, shapeA
		}
		sInfo, okS := world.shapes[sensor]
		oInfo, okO := world.shapes[other]
		if !okS || !okO || sInfo.Entity == oInfo.Entity {
			return true
		}
		world.overlaps = append(world.overlaps, OverlapEvent{Sensor: sInfo.Entity, Other: oInfo.Entity, Bone: oInfo.Bone})
		return true
	}

	pw.handlersReady = true
}

func (pw *PhysicsWorld) dispatchArbiter(arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	infoA, okA := pw.shapes[shapeA]
	infoB, okB := pw.shapes[shapeB]
	if !okA || !okB {
		return
	}
	if !pw.notify[infoA.Entity] && !pw.notify[infoB.Entity] {
		return
	}

	n := arb.Normal()
	impulse := arb.TotalImpulse()
	point := shapeA.Body().Position()
	if set := arb.ContactPointSet(); set.Count > 0 {
		point = set.Points[0].PointA.Lerp(set.Points[0].PointB, 0.5)
	}

	pw.DispatchHit(RawHit{
		Self:         infoA.Entity,
		Other:        infoB.Entity,
		SelfBone:     infoA.Bone,
		OtherBone:    infoB.Bone,
		Point:        point,
		ImpactNormal: n.Neg(),
		Impulse:      impulse,
	})
	pw.DispatchHit(RawHit{
		Self:         infoB.Entity,
		Other:        infoA.Entity,
		SelfBone:     infoB.Bone,
		OtherBone:    infoA.Bone,
		Point:        point,
		ImpactNormal: n,
		Impulse:      impulse.Neg(),
	})
}
