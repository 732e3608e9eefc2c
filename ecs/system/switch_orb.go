package system

import (
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
)

// SwitchOrbSystem hands sensor overlaps on swap orbs to the control swap.
// It drains the overlap queue after the physics step.
type SwitchOrbSystem struct {
	swap *ControlSwap
}

func NewSwitchOrbSystem(swap *ControlSwap) *SwitchOrbSystem {
	return &SwitchOrbSystem{swap: swap}
}

func (s *SwitchOrbSystem) Update(w *ecs.World) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}
	for _, evt := range w.PhysicsWorld().DrainOverlaps() {
		if !w.IsAlive(evt.Sensor) || !w.IsAlive(evt.Other) {
			continue
		}
		if !w.HasAuthority() || !ecs.Has(w, evt.Sensor, component.SwitchOrbComponent.Kind()) {
			continue
		}
		_ = s.swap.Trigger(w, evt.Sensor, evt.Other)
	}
}
