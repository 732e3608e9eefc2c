package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

// Swing limits of a held weapon relative to the hand, in radians.
const (
	idleSwingMin   = -0.35
	idleSwingMax   = 0.35
	attackSwingMin = -2.4
	attackSwingMax = 2.4
)

// Attach pins child's centre to parent's socket with a pivot and keeps its
// relative angle within [minAngle, maxAngle]. Child joins the parent's
// collision group so the pair never collides with itself.
func Attach(w *ecs.World, child, parent ecs.Entity, socket string, minAngle, maxAngle float64) error {
	pw := w.PhysicsWorld()
	if pw == nil {
		return ErrNoPhysicsWorld
	}
	mounts, ok := ecs.Get(w, parent, component.MountPointsComponent.Kind())
	if !ok {
		return fmt.Errorf("attach %s to %s: %w", child, parent, ErrNoMountPoint)
	}
	local, ok := mounts.Socket(socket)
	if !ok {
		return fmt.Errorf("attach %s to %s socket %q: %w", child, parent, socket, ErrNoMountPoint)
	}
	parentBody, err := EnsureBody(w, parent)
	if err != nil {
		return fmt.Errorf("attach: parent: %w", err)
	}
	childBody, err := EnsureBody(w, child)
	if err != nil {
		return fmt.Errorf("attach: child: %w", err)
	}

	Detach(w, child)

	childBody.SetPosition(parentBody.LocalToWorld(local))
	childBody.SetAngle(parentBody.Angle())
	childBody.SetVelocityVector(parentBody.Velocity())
	childBody.SetAngularVelocity(0)

	space := pw.Space()
	pivot := cp.NewPivotJoint2(parentBody, childBody, local, cp.Vector{})
	limit := cp.NewRotaryLimitJoint(parentBody, childBody, minAngle, maxAngle)
	space.AddConstraint(pivot)
	space.AddConstraint(limit)

	if err := ecs.Add(w, child, component.AnchorJointComponent.Kind(), &component.AnchorJoint{Pivot: pivot, Limit: limit}); err != nil {
		return fmt.Errorf("attach: joint: %w", err)
	}
	if err := ecs.Add(w, child, component.AttachmentComponent.Kind(), &component.Attachment{Parent: uint64(parent), Socket: socket}); err != nil {
		return fmt.Errorf("attach: attachment: %w", err)
	}

	parentPB, _ := ecs.Get(w, parent, component.PhysicsBodyComponent.Kind())
	setGroup(pw, child, ownGroup(parent, parentPB))
	return nil
}

// Detach removes child's joints and returns it to its own collision group.
// It reports whether child was attached.
func Detach(w *ecs.World, child ecs.Entity) bool {
	jc, ok := ecs.Get(w, child, component.AnchorJointComponent.Kind())
	if !ok {
		return false
	}
	if pw := w.PhysicsWorld(); pw != nil {
		removeConstraint(pw.Space(), jc.Pivot)
		removeConstraint(pw.Space(), jc.Limit)
		pb, _ := ecs.Get(w, child, component.PhysicsBodyComponent.Kind())
		setGroup(pw, child, ownGroup(child, pb))
	}
	ecs.Remove(w, child, component.AnchorJointComponent.Kind())
	ecs.Remove(w, child, component.AttachmentComponent.Kind())
	return true
}

// SetSwingLimit changes the relative angle bounds of an attached entity.
func SetSwingLimit(w *ecs.World, child ecs.Entity, minAngle, maxAngle float64) bool {
	jc, ok := ecs.Get(w, child, component.AnchorJointComponent.Kind())
	if !ok || jc.Limit == nil {
		return false
	}
	limit, ok := jc.Limit.Class.(*cp.RotaryLimitJoint)
	if !ok {
		return false
	}
	limit.Min = minAngle
	limit.Max = maxAngle
	jc.Limit.ActivateBodies()
	return true
}

// SwingLimit returns the relative angle bounds of an attached entity.
func SwingLimit(w *ecs.World, child ecs.Entity) (float64, float64, bool) {
	jc, ok := ecs.Get(w, child, component.AnchorJointComponent.Kind())
	if !ok || jc.Limit == nil {
		return 0, 0, false
	}
	limit, ok := jc.Limit.Class.(*cp.RotaryLimitJoint)
	if !ok {
		return 0, 0, false
	}
	return limit.Min, limit.Max, true
}
