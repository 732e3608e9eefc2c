package component

import "github.com/google/uuid"

// InputMode is the input binding set a controller drives its pawn with.
type InputMode uint8

const (
	InputNone InputMode = iota
	InputLocomotion
	InputAim
)

func (m InputMode) String() string {
	switch m {
	case InputLocomotion:
		return "locomotion"
	case InputAim:
		return "aim"
	default:
		return "none"
	}
}

// Rotation is a control rotation in degrees.
type Rotation struct {
	Yaw   float64
	Pitch float64
}

// Controller is one connected player's view of the simulation: what it
// possesses and how its input is bound.
type Controller struct {
	Player          uuid.UUID
	Pawn            uint64
	ViewTarget      uint64
	Rotation        Rotation
	IgnoreMoveInput bool
	IgnoreLookInput bool
	Input           InputMode
	// InputGeneration increments each time bindings are rebuilt so clients
	// can drop stale input.
	InputGeneration uint32
	Sprint          bool
}

var ControllerComponent = NewComponent[Controller]()

// PawnRole distinguishes the locomotion body from the aiming body.
type PawnRole uint8

const (
	RoleLowerBody PawnRole = iota
	RoleUpperBody
)

func (r PawnRole) String() string {
	if r == RoleUpperBody {
		return "upper"
	}
	return "lower"
}

// MovementMode of a lower-body pawn.
type MovementMode uint8

const (
	MovementWalking MovementMode = iota
	MovementFalling
	MovementRagdoll
)

// Pawn is a possessable body. NetOwner is the controller that owns it for
// replication; it matches Controller after every possession change.
type Pawn struct {
	Controller uint64
	NetOwner   uint64
	Role       PawnRole
	Movement   MovementMode
}

var PawnComponent = NewComponent[Pawn]()
