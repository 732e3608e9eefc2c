package netsync

import (
	"github.com/google/uuid"
	"github.com/milk9111/backwardroyal/roster"
)

type Hello struct {
	Name    string `msgpack:"name"`
	UserUID string `msgpack:"uid,omitempty"`
}

// TeamSlot addresses one seat of the lobby.
type TeamSlot struct {
	Team int `msgpack:"team"`
	Slot int `msgpack:"slot"`
}

type Sprint struct {
	On bool `msgpack:"on"`
}

// Detection is a proxy's request to open or close an attacker's hit window.
type Detection struct {
	Attacker uint64 `msgpack:"attacker"`
	Enabled  bool   `msgpack:"enabled"`
}

type Welcome struct {
	Player  roster.PlayerID `msgpack:"player"`
	Session uuid.UUID       `msgpack:"session"`
}

type RoleChanged struct {
	Player roster.Record `msgpack:"player"`
}

type SwapFX struct {
	Players [2]roster.PlayerID `msgpack:"players"`
}

type ErrorMessage struct {
	Message string `msgpack:"message"`
}

// BodyState is the replicated pose of one pawn or loose object.
type BodyState struct {
	Entity   uint64          `msgpack:"e"`
	Player   roster.PlayerID `msgpack:"p,omitempty"`
	Upper    bool            `msgpack:"u,omitempty"`
	X        float64         `msgpack:"x"`
	Y        float64         `msgpack:"y"`
	Angle    float64         `msgpack:"a"`
	Health   float64         `msgpack:"hp,omitempty"`
	Stamina  float64         `msgpack:"st,omitempty"`
	Ragdoll  bool            `msgpack:"rd,omitempty"`
	Weapon   uint64          `msgpack:"w,omitempty"`
	Movement uint8           `msgpack:"m,omitempty"`
}

type State struct {
	Tick   uint64      `msgpack:"tick"`
	Bodies []BodyState `msgpack:"bodies"`
}
