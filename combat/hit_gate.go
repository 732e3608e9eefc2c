package combat

// HitGate credits each target at most once per attack window. The zero
// value is a closed gate.
type HitGate[T comparable] struct {
	active bool
	hit    map[T]struct{}
}

// Open starts a new window with no credited targets.
func (g *HitGate[T]) Open() {
	g.active = true
	clear(g.hit)
}

// Close ends the window and forgets credited targets.
func (g *HitGate[T]) Close() {
	g.active = false
	clear(g.hit)
}

// Active reports whether a window is open.
func (g *HitGate[T]) Active() bool {
	return g != nil && g.active
}

// TryConsume records target and returns true the first time it is seen in
// the current window, false afterwards.
func (g *HitGate[T]) TryConsume(target T) bool {
	if g == nil {
		return false
	}
	if _, seen := g.hit[target]; seen {
		return false
	}
	if g.hit == nil {
		g.hit = make(map[T]struct{})
	}
	g.hit[target] = struct{}{}
	return true
}

// Credited returns how many targets were credited in this window.
func (g *HitGate[T]) Credited() int {
	if g == nil {
		return 0
	}
	return len(g.hit)
}
