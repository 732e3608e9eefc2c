// Package roster holds the replicated per-player role records and the lobby
// that assigns players to two-body teams.
package roster

import "github.com/google/uuid"

// PlayerID identifies a connected player for the lifetime of the session.
type PlayerID = uuid.UUID

// NoPlayer is the empty PlayerID.
var NoPlayer = uuid.Nil

type Status uint8

const (
	StatusAlive Status = iota
	StatusDead
)

func (s Status) String() string {
	if s == StatusDead {
		return "dead"
	}
	return "alive"
}

// Record is one player's role state. Partner is the single source of truth
// for the pairing; the partner's roster index is derived on read.
type Record struct {
	ID          PlayerID `msgpack:"id"`
	UserUID     string   `msgpack:"uid"`
	Name        string   `msgpack:"name"`
	TeamNumber  int      `msgpack:"team"`
	IsLowerBody bool     `msgpack:"lower"`
	Partner     PlayerID `msgpack:"partner"`
	IsHost      bool     `msgpack:"host"`
	IsReady     bool     `msgpack:"ready"`
	IsSpectator bool     `msgpack:"spectator"`
	Status      Status   `msgpack:"status"`
}

func (r Record) HasPartner() bool {
	return r.Partner != NoPlayer
}

// View is a Record plus fields derived from the roster it was read from.
type View struct {
	Record               `msgpack:",inline"`
	Index                int `msgpack:"index"`
	ConnectedPlayerIndex int `msgpack:"connected"`
}
