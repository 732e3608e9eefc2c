package component

import "github.com/jakecoffman/cp"

// BodyLayer selects collision type and filter category for a body's shapes.
type BodyLayer uint8

const (
	LayerBody BodyLayer = iota
	LayerWeapon
	LayerProp
	LayerSensor
)

// Limb is one named collision shape on a skeleton. Offsets are local to the
// body's centre of gravity.
type Limb struct {
	Bone    string
	OffsetX float64
	OffsetY float64
	Radius  float64
}

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Bodies without limbs get one box (or circle when Radius is set).
type PhysicsBody struct {
	Body       *cp.Body
	Shapes     []*cp.Shape
	Limbs      []Limb
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Kinematic  bool
	FixedAngle bool
	Layer      BodyLayer
	// Group is the collision group; shapes sharing a non-zero group never
	// collide. Zero means the entity's own slot.
	Group uint
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
