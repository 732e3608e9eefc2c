package ecs

import "sort"

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id  TimerID
	due float64
	fn  func(*World)
}

// timerQueue fires one-shot callbacks against simulation time. It is only
// used for short bounded waits such as attack windows and spawn retries.
type timerQueue struct {
	now     float64
	nextID  TimerID
	pending []timer
}

func (q *timerQueue) schedule(delay float64, fn func(*World)) TimerID {
	if delay < 0 {
		delay = 0
	}
	q.nextID++
	q.pending = append(q.pending, timer{id: q.nextID, due: q.now + delay, fn: fn})
	return q.nextID
}

func (q *timerQueue) cancel(id TimerID) bool {
	for i, t := range q.pending {
		if t.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (q *timerQueue) advance(w *World, dt float64) {
	q.now += dt
	if len(q.pending) == 0 {
		return
	}
	var due []timer
	kept := q.pending[:0]
	for _, t := range q.pending {
		if t.due <= q.now+1e-9 {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	q.pending = kept
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		if t.fn != nil {
			t.fn(w)
		}
	}
}

// After schedules fn to run once delay seconds of simulation time from now.
func (w *World) After(delay float64, fn func(*World)) TimerID {
	if w == nil {
		return 0
	}
	return w.timers.schedule(delay, fn)
}

// CancelTimer drops a pending callback. It reports whether one was pending.
func (w *World) CancelTimer(id TimerID) bool {
	if w == nil || id == 0 {
		return false
	}
	return w.timers.cancel(id)
}

// Now returns the simulation clock in seconds.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.timers.now
}
