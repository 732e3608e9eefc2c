package ecs

// NetMode tells systems whether this world is the authoritative simulation
// or a client-side proxy mirroring it.
type NetMode uint8

const (
	NetAuthority NetMode = iota
	NetProxy
)

func (m NetMode) String() string {
	if m == NetProxy {
		return "proxy"
	}
	return "authority"
}

// IntentForwarder carries requests from a proxy world to the authority.
type IntentForwarder interface {
	ForwardAttackDetection(attacker Entity, enabled bool) error
}

// HasAuthority reports whether w may mutate replicated state.
func (w *World) HasAuthority() bool {
	return w != nil && w.netMode == NetAuthority
}

// SetNetMode switches w between authority and proxy mode.
func (w *World) SetNetMode(mode NetMode, forwarder IntentForwarder) {
	if w == nil {
		return
	}
	w.netMode = mode
	w.forwarder = forwarder
}

// Forwarder returns the proxy forwarder, if any.
func (w *World) Forwarder() IntentForwarder {
	if w == nil {
		return nil
	}
	return w.forwarder
}
