package roster

import (
	"fmt"
	"slices"
)

const (
	LobbyTeams        = 4
	LobbySlotsPerTeam = 2
	LobbyEntrySlots   = LobbyTeams * LobbySlotsPerTeam
)

// lobbySlots holds the pre-game layout: players waiting in entry slots and
// players seated on a team. Team slot index is team*2 + slot, slot 0 being
// the lower body.
type lobbySlots struct {
	Entry [LobbyEntrySlots]PlayerID
	Teams [LobbyEntrySlots]PlayerID
}

func teamSlotIndex(team, slot int) int {
	return team*LobbySlotsPerTeam + slot
}

func (l *lobbySlots) placeInEntry(id PlayerID) bool {
	if slices.Contains(l.Entry[:], id) {
		return true
	}
	for i, p := range l.Entry {
		if p == NoPlayer {
			l.Entry[i] = id
			return true
		}
	}
	return false
}

func (l *lobbySlots) remove(id PlayerID) {
	for i := range l.Entry {
		if l.Entry[i] == id {
			l.Entry[i] = NoPlayer
		}
	}
	for i := range l.Teams {
		if l.Teams[i] == id {
			l.Teams[i] = NoPlayer
		}
	}
}

func (l *lobbySlots) removeFromEntry(id PlayerID) bool {
	found := false
	for i := range l.Entry {
		if l.Entry[i] == id {
			l.Entry[i] = NoPlayer
			found = true
		}
	}
	return found
}

func (l *lobbySlots) compactEntry() {
	n := 0
	for _, p := range l.Entry {
		if p != NoPlayer {
			l.Entry[n] = p
			n++
		}
	}
	for ; n < len(l.Entry); n++ {
		l.Entry[n] = NoPlayer
	}
}

// Lobby is a copy of the slot layout.
type Lobby struct {
	Entry     [LobbyEntrySlots]PlayerID `msgpack:"entry"`
	Teams     [LobbyEntrySlots]PlayerID `msgpack:"teams"`
	RoomTitle string                    `msgpack:"title"`
}

// TeamSlot returns the occupant of (team, slot), team in [0, LobbyTeams).
func (l Lobby) TeamSlot(team, slot int) PlayerID {
	if !validSlot(team, slot) {
		return NoPlayer
	}
	return l.Teams[teamSlotIndex(team, slot)]
}

func validSlot(team, slot int) bool {
	return team >= 0 && team < LobbyTeams && slot >= 0 && slot < LobbySlotsPerTeam
}

func (r *Registry) Lobby() Lobby {
	return Lobby{Entry: r.lobby.Entry, Teams: r.lobby.Teams, RoomTitle: r.roomTitle}
}

func (r *Registry) MinPlayers() int { return r.minPlayers }
func (r *Registry) MaxPlayers() int { return r.maxPlayers }

func (r *Registry) SetTeamNumber(id PlayerID, team int) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	rec.TeamNumber = team
	r.log.Debug().Str("player", id.String()).Int("team", team).Msg("team set")
	return nil
}

func (r *Registry) SetIsHost(id PlayerID, host bool) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	rec.IsHost = host
	r.log.Info().Str("player", id.String()).Bool("host", host).Msg("host flag set")
	return nil
}

func (r *Registry) SetReady(id PlayerID, ready bool) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	rec.IsReady = ready
	return nil
}

// ToggleReady flips id's ready flag and reports whether the game can now
// start.
func (r *Registry) ToggleReady(id PlayerID) (bool, error) {
	if err := r.requireAuthority(); err != nil {
		return false, err
	}
	rec, err := r.record(id)
	if err != nil {
		return false, err
	}
	rec.IsReady = !rec.IsReady
	canStart := r.CheckCanStartGame()
	r.log.Info().Str("player", id.String()).Bool("ready", rec.IsReady).Bool("can_start", canStart).Msg("ready toggled")
	r.refreshPlayers()
	return canStart, nil
}

// SetPlayerName renames id. A name equal to the player's UserUID is shown
// as "Player".
func (r *Registry) SetPlayerName(id PlayerID, name string) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	rec.Name = displayName(name, rec.UserUID)
	r.refreshPlayers()
	return nil
}

func (r *Registry) activeCount() int {
	n := 0
	for _, id := range r.order {
		if !r.records[id].IsSpectator {
			n++
		}
	}
	return n
}

// AreAllPlayersReady requires at least MinPlayers and every non-spectator
// ready.
func (r *Registry) AreAllPlayersReady() bool {
	if r.activeCount() < r.minPlayers {
		return false
	}
	for _, id := range r.order {
		if rec := r.records[id]; !rec.IsSpectator && !rec.IsReady {
			return false
		}
	}
	return true
}

// AreAllNonHostPlayersReady lets a host start without readying up.
func (r *Registry) AreAllNonHostPlayersReady() bool {
	nonHost := 0
	for _, id := range r.order {
		rec := r.records[id]
		if rec.IsHost || rec.IsSpectator {
			continue
		}
		if !rec.IsReady {
			return false
		}
		nonHost++
	}
	return nonHost >= r.minPlayers-1
}

func (r *Registry) CheckCanStartGame() bool {
	n := r.activeCount()
	return n >= r.minPlayers && n <= r.maxPlayers && r.AreAllPlayersReady()
}

// CanHostStart reports whether id is the host and everyone else is ready.
func (r *Registry) CanHostStart(id PlayerID) bool {
	rec, ok := r.records[id]
	if !ok || !rec.IsHost {
		return false
	}
	return r.activeCount() <= r.maxPlayers && r.AreAllNonHostPlayersReady()
}

// AssignRandomTeams shuffles the non-spectators into teams of two, the
// first of each pair being the lower body. Everyone seated is marked ready.
func (r *Registry) AssignRandomTeams() error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	var players []PlayerID
	for _, id := range r.order {
		if !r.records[id].IsSpectator {
			players = append(players, id)
		}
	}
	r.rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	r.lobby.Entry = [LobbyEntrySlots]PlayerID{}
	r.lobby.Teams = [LobbyEntrySlots]PlayerID{}
	for i, id := range players {
		rec := r.records[id]
		rec.TeamNumber = i/2 + 1
		partner := NoPlayer
		if i%2 == 1 {
			partner = players[i-1]
		}
		if err := r.SetPlayerRole(id, i%2 == 0, partner); err != nil {
			return fmt.Errorf("roster: assign random teams: %w", err)
		}
		rec.IsReady = true
		if i < len(r.lobby.Teams) {
			r.lobby.Teams[i] = id
		}
	}
	r.log.Info().Int("players", len(players)).Int("teams", (len(players)+1)/2).Msg("random teams assigned")
	r.refreshPlayers()
	return nil
}

// AssignPlayerToLobbyTeam seats id at (team, slot). A displaced occupant
// goes back to the entry list. The seated player takes the team's role for
// that slot and is partnered with whoever holds the other slot.
func (r *Registry) AssignPlayerToLobbyTeam(id PlayerID, team, slot int) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	if !validSlot(team, slot) {
		return fmt.Errorf("%w: team %d slot %d", ErrInvalidSlot, team, slot)
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	if rec.IsSpectator {
		return ErrSpectator
	}
	idx := teamSlotIndex(team, slot)
	if r.lobby.Teams[idx] == id {
		return nil
	}

	wasInEntry := r.lobby.removeFromEntry(id)
	if displaced := r.lobby.Teams[idx]; displaced != NoPlayer {
		r.lobby.placeInEntry(displaced)
		if d, ok := r.records[displaced]; ok {
			d.TeamNumber = 0
			if d.HasPartner() {
				r.unlink(d)
			}
		}
	}
	if !wasInEntry {
		for i := range r.lobby.Teams {
			if r.lobby.Teams[i] == id {
				r.lobby.Teams[i] = NoPlayer
			}
		}
	}
	r.lobby.Teams[idx] = id

	rec.TeamNumber = team + 1
	partner := r.lobby.Teams[teamSlotIndex(team, 1-slot)]
	if err := r.SetPlayerRole(id, slot == 0, partner); err != nil {
		return fmt.Errorf("roster: assign to team: %w", err)
	}
	rec.IsReady = true
	r.lobby.compactEntry()
	r.log.Info().Str("player", id.String()).Int("team", team+1).Int("slot", slot).Msg("player seated")
	r.refreshPlayers()
	return nil
}

// MovePlayerToLobbyEntry unseats the occupant of (team, slot). It reports
// false when the slot is empty or the entry list has no room.
func (r *Registry) MovePlayerToLobbyEntry(team, slot int) (bool, error) {
	if err := r.requireAuthority(); err != nil {
		return false, err
	}
	if !validSlot(team, slot) {
		return false, fmt.Errorf("%w: team %d slot %d", ErrInvalidSlot, team, slot)
	}
	idx := teamSlotIndex(team, slot)
	id := r.lobby.Teams[idx]
	if id == NoPlayer {
		return false, nil
	}
	r.lobby.Teams[idx] = NoPlayer
	r.lobby.removeFromEntry(id)
	if !r.lobby.placeInEntry(id) {
		r.lobby.Teams[idx] = id
		return false, nil
	}
	r.lobby.compactEntry()

	if rec, ok := r.records[id]; ok {
		rec.TeamNumber = 0
		if err := r.SetPlayerRole(id, true, NoPlayer); err != nil {
			return false, fmt.Errorf("roster: move to entry: %w", err)
		}
	}
	r.log.Info().Str("player", id.String()).Msg("player unseated")
	return true, nil
}

// CompactLobbyEntrySlots shifts waiting players to the front of the entry
// list.
func (r *Registry) CompactLobbyEntrySlots() {
	r.lobby.compactEntry()
}

func (r *Registry) SetRoomTitle(title string) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	r.roomTitle = title
	return nil
}

// HostName is the host's display name, "Host" when it has none.
func (r *Registry) HostName() string {
	for _, id := range r.order {
		if rec := r.records[id]; rec.IsHost {
			if rec.Name != "" {
				return rec.Name
			}
			break
		}
	}
	return "Host"
}

func (r *Registry) RoomTitleDisplay() string {
	if r.roomTitle != "" {
		return r.roomTitle
	}
	return r.HostName() + "'s Game"
}
