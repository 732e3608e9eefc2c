package component

// TargetKind is the closed set of things a hit can land on.
type TargetKind uint8

const (
	TargetOther TargetKind = iota
	TargetCharacter
	TargetUpperBodyPawn
	TargetPhysicsProp
)

func (k TargetKind) String() string {
	switch k {
	case TargetCharacter:
		return "character"
	case TargetUpperBodyPawn:
		return "upper_body"
	case TargetPhysicsProp:
		return "prop"
	default:
		return "other"
	}
}

// Target classifies an entity for combat once, at spawn.
type Target struct {
	Kind    TargetKind
	Armored bool
}

var TargetComponent = NewComponent[Target]()
