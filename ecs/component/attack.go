package component

// Hand is the punching hand of an unarmed attack.
type Hand uint8

const (
	HandRight Hand = iota
	HandLeft
)

func (h Hand) String() string {
	if h == HandLeft {
		return "left"
	}
	return "right"
}

// Attack is the attack window state of a character. LastHand is the arm of
// the current or most recent punch; punches alternate arms.
type Attack struct {
	Attacking bool
	LastHand  Hand
	Window    float64
	Timer     uint64
}

var AttackComponent = NewComponent[Attack]()

// AttackRequest asks the attack system to start a swing or punch this tick.
type AttackRequest struct {
	Requester uint64
}

var AttackRequestComponent = NewComponent[AttackRequest]()
