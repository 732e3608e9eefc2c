package component

// Stamina gates sprinting and jumping.
type Stamina struct {
	Current   float64
	Max       float64
	Sprinting bool
}

// Spend removes amount if available and reports success.
func (s *Stamina) Spend(amount float64) bool {
	if s == nil || s.Current < amount {
		return false
	}
	s.Current -= amount
	return true
}

var StaminaComponent = NewComponent[Stamina]()
