package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventDeath     = "death"
	EventSwap      = "swap"
	EventHitLanded = "hit_landed"
)

// DeathEvent is emitted when a character's health reaches zero.
type DeathEvent struct {
	Entity     Entity
	Instigator Entity
	Causer     Entity
}

// HitLandedEvent is emitted whenever damage is applied through a combat path.
type HitLandedEvent struct {
	Attacker Entity
	Target   Entity
	Damage   float64
}

// SwapEvent is emitted after two controllers exchanged pawns.
type SwapEvent struct {
	Controllers [2]Entity
	Orb         Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
