package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

const (
	defaultBoxSize  = 32.0
	defaultMass     = 1.0
	defaultFriction = 0.7
)

type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem { return &PhysicsSystem{} }

// Update creates missing bodies, steps the space by one tick and copies body
// poses back into transforms.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, err := EnsureBody(w, e); err != nil {
			continue
		}
	}

	pw.Step(w.TickSeconds())

	ps.syncTransforms(w)
	ps.landPawns(w)
}

// landPawns returns falling pawns to walking once they rest on something
// below them.
func (ps *PhysicsSystem) landPawns(w *ecs.World) {
	pw := w.PhysicsWorld()
	ecs.ForEach(w, component.PawnComponent.Kind(), func(e ecs.Entity, pawn *component.Pawn) {
		if pawn.Movement != component.MovementFalling {
			return
		}
		body, ok := pw.Body(e)
		if !ok || body.Velocity().Y > 1 {
			return
		}
		grounded := false
		body.EachArbiter(func(arb *cp.Arbiter) {
			// The arbiter is oriented with body first; ground lies along -Y.
			if arb.Normal().Y < -0.5 {
				grounded = true
			}
		})
		if grounded {
			pawn.Movement = component.MovementWalking
		}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil || body.Static {
			return
		}
		pos := body.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = body.Body.Angle()
	})
}

// InstallPhysicsCleanup removes an entity's joints, shapes and body from the
// space when it is destroyed.
func InstallPhysicsCleanup(w *ecs.World) {
	w.OnDestroy(func(e ecs.Entity) {
		pw := w.PhysicsWorld()
		if pw == nil {
			return
		}
		space := pw.Space()
		if jc, ok := ecs.Get(w, e, component.AnchorJointComponent.Kind()); ok {
			removeConstraint(space, jc.Pivot)
			removeConstraint(space, jc.Limit)
		}
		if body, ok := pw.Body(e); ok && body != space.StaticBody {
			var joints []*cp.Constraint
			body.EachConstraint(func(c *cp.Constraint) {
				joints = append(joints, c)
			})
			for _, c := range joints {
				removeConstraint(space, c)
			}
		}
		pw.RemoveEntity(e)
	})
}

func removeConstraint(space *cp.Space, c *cp.Constraint) {
	if space == nil || c == nil {
		return
	}
	if space.ContainsConstraint(c) {
		space.RemoveConstraint(c)
	}
}

// EnsureBody builds e's Chipmunk body and shapes from its PhysicsBody
// component if they do not exist yet. Static bodies hang their shapes off
// the space's static body.
func EnsureBody(w *ecs.World, e ecs.Entity) (*cp.Body, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return nil, ErrNoPhysicsWorld
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("ensure body %s: %w", e, ErrNoBody)
	}
	if pb.Body != nil {
		return pb.Body, nil
	}

	var t component.Transform
	if tc, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t = *tc
	}
	pos := cp.Vector{X: t.X, Y: t.Y}
	space := pw.Space()

	var body *cp.Body
	offset := cp.Vector{}
	switch {
	case pb.Static:
		body = space.StaticBody
		offset = pos
	case pb.Kinematic:
		body = cp.NewKinematicBody()
	default:
		mass := pb.Mass
		if mass <= 0 {
			mass = defaultMass
		}
		moment := bodyMoment(pb, mass)
		if pb.FixedAngle {
			moment = math.Inf(1)
		}
		body = cp.NewBody(mass, moment)
	}
	if !pb.Static {
		body.SetPosition(pos)
		body.SetAngle(t.Rotation)
		pw.AddBody(e, body)
	}

	group := ownGroup(e, pb)
	filter := layerFilter(pb.Layer, group)
	collisionType := layerCollisionType(pb.Layer)
	friction := pb.Friction
	if friction == 0 && !pb.Static {
		friction = defaultFriction
	}

	for _, spec := range shapeSpecs(pb) {
		var shape *cp.Shape
		center := offset.Add(cp.Vector{X: spec.OffsetX, Y: spec.OffsetY})
		if spec.Radius > 0 {
			shape = cp.NewCircle(body, spec.Radius, center)
		} else {
			bw, bh := boxSize(pb)
			shape = cp.NewBox2(body, cp.BB{L: center.X - bw/2, B: center.Y - bh/2, R: center.X + bw/2, T: center.Y + bh/2}, 0)
		}
		shape.SetFriction(friction)
		shape.SetElasticity(pb.Elasticity)
		shape.SetCollisionType(collisionType)
		shape.SetFilter(filter)
		if pb.Layer == component.LayerSensor {
			shape.SetSensor(true)
		}
		pw.AddShape(e, shape, spec.Bone)
		pb.Shapes = append(pb.Shapes, shape)
	}
	pb.Body = body
	return body, nil
}

func shapeSpecs(pb *component.PhysicsBody) []component.Limb {
	if len(pb.Limbs) > 0 {
		return pb.Limbs
	}
	return []component.Limb{{Radius: pb.Radius}}
}

func boxSize(pb *component.PhysicsBody) (float64, float64) {
	if pb.Width <= 0 || pb.Height <= 0 {
		return defaultBoxSize, defaultBoxSize
	}
	return pb.Width, pb.Height
}

func bodyMoment(pb *component.PhysicsBody, mass float64) float64 {
	if len(pb.Limbs) > 0 {
		per := mass / float64(len(pb.Limbs))
		moment := 0.0
		for _, l := range pb.Limbs {
			moment += cp.MomentForCircle(per, 0, l.Radius, cp.Vector{X: l.OffsetX, Y: l.OffsetY})
		}
		return moment
	}
	if pb.Radius > 0 {
		return cp.MomentForCircle(mass, 0, pb.Radius, cp.Vector{})
	}
	w, h := boxSize(pb)
	return cp.MomentForBox(mass, w, h)
}

// ownGroup is the collision group an entity has when attached to nothing.
func ownGroup(e ecs.Entity, pb *component.PhysicsBody) uint {
	if pb != nil && pb.Group != 0 {
		return pb.Group
	}
	return uint(e.Slot())
}

func layerCollisionType(layer component.BodyLayer) cp.CollisionType {
	switch layer {
	case component.LayerWeapon:
		return ecs.CollisionTypeWeapon
	case component.LayerSensor:
		return ecs.CollisionTypeSensor
	default:
		return ecs.CollisionTypeBody
	}
}

func layerFilter(layer component.BodyLayer, group uint) cp.ShapeFilter {
	switch layer {
	case component.LayerWeapon:
		return weaponFilter(group, weaponLoose)
	case component.LayerSensor:
		return cp.NewShapeFilter(cp.NO_GROUP, ecs.CategorySensor, ecs.CategoryBody)
	default:
		return cp.NewShapeFilter(group, ecs.CategoryBody, cp.ALL_CATEGORIES)
	}
}

// setGroup moves every shape of e into group, keeping categories and masks.
func setGroup(pw *ecs.PhysicsWorld, e ecs.Entity, group uint) {
	for _, shape := range pw.Shapes(e) {
		f := shape.Filter
		f.Group = group
		shape.SetFilter(f)
	}
}
