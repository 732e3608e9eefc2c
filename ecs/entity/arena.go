package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/levels"
)

// BuildArena adds the arena's static geometry to the world's physics and
// spawns its placements. The physics world must be attached.
func BuildArena(w *ecs.World, arena *levels.Arena) error {
	if w == nil || arena == nil {
		return fmt.Errorf("build arena: world or arena is nil")
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return fmt.Errorf("build arena %s: no physics world", arena.Name)
	}
	for _, seg := range arena.Segments {
		pw.AddStaticSegment(cp.Vector{X: seg.X1, Y: seg.Y1}, cp.Vector{X: seg.X2, Y: seg.Y2}, seg.Radius)
	}

	spawnIndex := 0
	for i, placement := range arena.Entities {
		var err error
		switch placement.Type {
		case "spawn":
			e := ecs.CreateEntity(w)
			err = ecs.Add(w, e, component.SpawnPointComponent.Kind(), &component.SpawnPoint{Index: spawnIndex})
			if err == nil {
				err = SetEntityTransform(w, e, placement.X, placement.Y, 0)
			}
			spawnIndex++
		case "switch_orb":
			_, err = NewSwitchOrbAt(w, placement.X, placement.Y)
		case "weapon":
			_, err = NewWeaponAt(w, placement.Prefab(), placement.X, placement.Y)
		case "prop":
			_, err = NewPropAt(w, placement.Prefab(), placement.X, placement.Y)
		default:
			err = fmt.Errorf("unknown placement type %q", placement.Type)
		}
		if err != nil {
			return fmt.Errorf("build arena %s: entity %d: %w", arena.Name, i, err)
		}
	}
	return nil
}

// SpawnPosition returns the position of spawn point index, wrapping around
// the available points.
func SpawnPosition(w *ecs.World, index int) (cp.Vector, bool) {
	points := w.Query(component.SpawnPointComponent.Kind(), component.TransformComponent.Kind())
	if len(points) == 0 {
		return cp.Vector{}, false
	}
	if index < 0 {
		index = -index
	}
	want := index % len(points)
	for _, e := range points {
		sp, _ := ecs.Get(w, e, component.SpawnPointComponent.Kind())
		if sp.Index != want {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		return cp.Vector{X: t.X, Y: t.Y}, true
	}
	t, _ := ecs.Get(w, points[0], component.TransformComponent.Kind())
	return cp.Vector{X: t.X, Y: t.Y}, true
}
