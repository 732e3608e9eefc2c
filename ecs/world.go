package ecs

import "github.com/milk9111/backwardroyal/ecs/component"

const defaultTickSeconds = 1.0 / 60.0

// World owns entities, components, and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler Scheduler
	events    EventQueue
	timers    timerQueue

	netMode   NetMode
	forwarder IntentForwarder

	tick      uint64
	dt        float64
	onDestroy []func(Entity)

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty authoritative ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		dt:     defaultTickSeconds,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity runs destroy hooks, drops every component and frees the
// slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, hook := range w.onDestroy {
		hook(e)
	}
	for _, set := range w.stores {
		set.Remove(e)
	}
	return w.entities.destroy(e)
}

// OnDestroy registers a hook called before an entity's components are
// dropped.
func (w *World) OnDestroy(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.onDestroy = append(w.onDestroy, fn)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// SetTickSeconds sets the fixed simulation step.
func (w *World) SetTickSeconds(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.dt = dt
}

// TickSeconds returns the fixed simulation step.
func (w *World) TickSeconds() float64 {
	if w == nil {
		return defaultTickSeconds
	}
	return w.dt
}

// Tick returns the number of completed updates.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Update fires due timers, runs all systems once and clears the event queue.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.timers.advance(w, w.dt)
	w.scheduler.Update(w)
	w.events.flush()
	w.tick++
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	set := w.stores[id]
	if set == nil {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}

func (w *World) addComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	w.store(id).Set(e, value)
	return nil
}

func (w *World) removeComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	set := w.stores[id]
	if set == nil {
		return false
	}
	return set.Remove(e)
}

func (w *World) hasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.stores[id].Has(e)
}

func (w *World) getComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	set := w.stores[id]
	if !set.Has(e) {
		return nil, false
	}
	return set.Get(e), true
}
