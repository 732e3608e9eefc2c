package roster

import "slices"

// Snapshot is the replicated roster state sent to proxies.
type Snapshot struct {
	Players  []View `msgpack:"players"`
	Lobby    Lobby  `msgpack:"lobby"`
	CanStart bool   `msgpack:"can_start"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Players:  r.Players(),
		Lobby:    r.Lobby(),
		CanStart: r.CheckCanStartGame(),
	}
}

// ApplySnapshot replaces a proxy's state. Authoritative registries refuse.
func (r *Registry) ApplySnapshot(s Snapshot) error {
	if r.Authoritative() {
		return ErrAuthoritative
	}
	views := slices.Clone(s.Players)
	slices.SortStableFunc(views, func(a, b View) int { return a.Index - b.Index })

	r.order = r.order[:0]
	clear(r.records)
	for _, v := range views {
		rec := v.Record
		r.records[rec.ID] = &rec
		r.order = append(r.order, rec.ID)
	}
	r.lobby = lobbySlots{Entry: s.Lobby.Entry, Teams: s.Lobby.Teams}
	r.roomTitle = s.Lobby.RoomTitle
	r.refreshPlayers()
	return nil
}
