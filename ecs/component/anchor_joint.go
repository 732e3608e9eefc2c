package component

import "github.com/jakecoffman/cp"

// AnchorJoint stores the constraints holding an attached entity in place.
// Limit is a rotary limit joint; its bounds open up while a weapon swings.
type AnchorJoint struct {
	Pivot *cp.Constraint
	Limit *cp.Constraint
}

var AnchorJointComponent = NewComponent[AnchorJoint]()
