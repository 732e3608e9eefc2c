package component

// Transform is the world pose of an entity. Rotation is in radians.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
