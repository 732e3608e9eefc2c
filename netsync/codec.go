// Package netsync carries lobby intents from players to the authoritative
// simulation and replicates roster and body state back, as msgpack
// envelopes over websockets.
package netsync

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Kind names the payload of an envelope.
type Kind string

// Client intents.
const (
	KindHello       Kind = "hello"
	KindReady       Kind = "ready"
	KindSelectTeam  Kind = "select_team"
	KindLeaveTeam   Kind = "leave_team"
	KindRandomTeams Kind = "random_teams"
	KindStart       Kind = "start"
	KindAttack      Kind = "attack"
	KindSprint      Kind = "sprint"
	KindJump        Kind = "jump"
	KindDetection   Kind = "detection"
	KindPickup      Kind = "pickup"
	KindDrop        Kind = "drop"

	// KindLeave is queued by the gateway when a connection closes. Clients
	// never send it.
	KindLeave Kind = "leave"
)

// Server messages.
const (
	KindWelcome     Kind = "welcome"
	KindRoster      Kind = "roster"
	KindRoleChanged Kind = "role_changed"
	KindSwapFX      Kind = "swap_fx"
	KindState       Kind = "state"
	KindError       Kind = "error"
)

var ErrEmptyKind = errors.New("netsync: envelope has no kind")

// Envelope is one framed message. Body stays encoded until the receiver
// knows what to decode it into.
type Envelope struct {
	Kind Kind               `msgpack:"k"`
	Body msgpack.RawMessage `msgpack:"b,omitempty"`
}

// Encode frames body under kind. A nil body sends a bare envelope.
func Encode(kind Kind, body any) ([]byte, error) {
	if kind == "" {
		return nil, ErrEmptyKind
	}
	env := Envelope{Kind: kind}
	if body != nil {
		raw, err := msgpack.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("netsync: encode %s: %w", kind, err)
		}
		env.Body = raw
	}
	data, err := msgpack.Marshal(&env)
	if err != nil {
		return nil, fmt.Errorf("netsync: encode %s: %w", kind, err)
	}
	return data, nil
}

// Decode reads the envelope framing of data.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("netsync: decode envelope: %w", err)
	}
	if env.Kind == "" {
		return Envelope{}, ErrEmptyKind
	}
	return env, nil
}

// Into decodes the envelope body into v.
func (e Envelope) Into(v any) error {
	if len(e.Body) == 0 {
		return fmt.Errorf("netsync: %s has no body", e.Kind)
	}
	if err := msgpack.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("netsync: decode %s: %w", e.Kind, err)
	}
	return nil
}
