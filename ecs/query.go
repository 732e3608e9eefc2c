package ecs

import "github.com/milk9111/backwardroyal/ecs/component"

// Query returns the entities that carry every given component kind. The
// result is a snapshot, so callers may add or remove components while
// iterating it.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.stores[k.ID()]
		if set == nil || set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
next:
	for _, e := range smallest.denseEntities {
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}
