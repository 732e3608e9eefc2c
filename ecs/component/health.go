package component

// Health tracks hit points of anything that can be damaged.
type Health struct {
	Max     float64
	Current float64
	Dead    bool
}

// NewHealth creates a Health at full.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity can still take damage.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// TakeDamage lowers Current, clamped at zero. It returns the amount removed
// and whether this call killed the entity. Damage is ignored once dead.
func (h *Health) TakeDamage(amount float64) (float64, bool) {
	if !h.IsAlive() || amount <= 0 {
		return 0, false
	}
	applied := min(amount, h.Current)
	h.Current -= applied
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		return applied, true
	}
	return applied, false
}

// Heal restores up to Max. Dead entities stay dead.
func (h *Health) Heal(amount float64) {
	if !h.IsAlive() || amount <= 0 {
		return
	}
	h.Current = min(h.Current+amount, h.Max)
}

var HealthComponent = NewComponent[Health]()
