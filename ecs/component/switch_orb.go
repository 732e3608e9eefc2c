package component

// SwitchOrb marks a one-shot trigger that swaps a team's roles on overlap.
type SwitchOrb struct{}

var SwitchOrbComponent = NewComponent[SwitchOrb]()
