package roster

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultMinPlayers = 4
	DefaultMaxPlayers = 8
)

// Hooks receive registry notifications. Any field may be nil.
type Hooks struct {
	// RoleChanged fires after SetPlayerRole with the updated record.
	RoleChanged func(Record)
	// PartnerChanged fires for each side of a link or unlink so the owning
	// character can resync cosmetics.
	PartnerChanged func(id, partner PlayerID)
	// PlayersChanged carries the refreshed player list.
	PlayersChanged func([]View)
}

type Options struct {
	MinPlayers int
	MaxPlayers int
	Log        zerolog.Logger
	Rand       *rand.Rand
	Hooks      Hooks
}

// Registry is the authoritative roster. It is owned by the simulation tick
// goroutine and is not safe for concurrent use.
type Registry struct {
	authority bool
	order     []PlayerID
	records   map[PlayerID]*Record
	lobby     lobbySlots
	roomTitle string

	minPlayers int
	maxPlayers int
	rng        *rand.Rand
	hooks      Hooks
	log        zerolog.Logger
}

func NewRegistry(opts Options) *Registry {
	r := newRegistry(opts)
	r.authority = true
	return r
}

// NewProxyRegistry returns a read-only mirror that only changes through
// ApplySnapshot.
func NewProxyRegistry(opts Options) *Registry {
	return newRegistry(opts)
}

func newRegistry(opts Options) *Registry {
	if opts.MinPlayers <= 0 {
		opts.MinPlayers = DefaultMinPlayers
	}
	if opts.MaxPlayers < opts.MinPlayers {
		opts.MaxPlayers = max(DefaultMaxPlayers, opts.MinPlayers)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Registry{
		records:    make(map[PlayerID]*Record),
		minPlayers: opts.MinPlayers,
		maxPlayers: opts.MaxPlayers,
		rng:        opts.Rand,
		hooks:      opts.Hooks,
		log:        opts.Log.With().Str("component", "roster").Logger(),
	}
}

func (r *Registry) Authoritative() bool {
	return r != nil && r.authority
}

func (r *Registry) requireAuthority() error {
	if !r.Authoritative() {
		return ErrNotAuthoritative
	}
	return nil
}

func (r *Registry) record(id PlayerID) (*Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return rec, nil
}

func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) Get(id PlayerID) (Record, bool) {
	rec, ok := r.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Index returns id's position in join order, or -1.
func (r *Registry) Index(id PlayerID) int {
	return slices.Index(r.order, id)
}

// ConnectedPlayerIndex is the roster position of id's partner, or -1.
func (r *Registry) ConnectedPlayerIndex(id PlayerID) int {
	rec, ok := r.records[id]
	if !ok || !rec.HasPartner() {
		return -1
	}
	return r.Index(rec.Partner)
}

// Partner returns id's partner record.
func (r *Registry) Partner(id PlayerID) (Record, bool) {
	rec, ok := r.records[id]
	if !ok || !rec.HasPartner() {
		return Record{}, false
	}
	return r.Get(rec.Partner)
}

// PlayersOnTeam returns the team's records in join order.
func (r *Registry) PlayersOnTeam(team int) []Record {
	var out []Record
	for _, id := range r.order {
		if rec := r.records[id]; rec.TeamNumber == team {
			out = append(out, *rec)
		}
	}
	return out
}

// Players returns every record with its derived indices, in join order.
func (r *Registry) Players() []View {
	out := make([]View, 0, len(r.order))
	for i, id := range r.order {
		rec := r.records[id]
		out = append(out, View{Record: *rec, Index: i, ConnectedPlayerIndex: r.ConnectedPlayerIndex(id)})
	}
	return out
}

// Join adds a player. The first player becomes host.
func (r *Registry) Join(name, userUID string) (Record, error) {
	if err := r.requireAuthority(); err != nil {
		return Record{}, err
	}
	if len(r.order) >= r.maxPlayers {
		return Record{}, ErrRosterFull
	}
	if userUID == "" {
		userUID = uuid.NewString()
	}
	rec := &Record{
		ID:      uuid.New(),
		UserUID: userUID,
		Name:    displayName(name, userUID),
		IsHost:  len(r.order) == 0,
	}
	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	r.lobby.placeInEntry(rec.ID)

	r.log.Info().Str("player", rec.ID.String()).Str("name", rec.Name).Bool("host", rec.IsHost).Int("count", len(r.order)).Msg("player joined")
	r.UpdateRolesAfterRosterChange()
	return *r.records[rec.ID], nil
}

// Leave removes a player, unlinking its partner and handing host to the
// next player in roster order.
func (r *Registry) Leave(id PlayerID) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	if rec.HasPartner() {
		r.unlink(rec)
	}
	idx := r.Index(id)
	wasHost := rec.IsHost

	r.order = slices.Delete(r.order, idx, idx+1)
	delete(r.records, id)
	r.lobby.remove(id)
	r.lobby.compactEntry()

	if wasHost && len(r.order) > 0 {
		next := r.order[idx%len(r.order)]
		r.records[next].IsHost = true
		r.log.Info().Str("player", next.String()).Msg("host reassigned")
	}
	r.log.Info().Str("player", id.String()).Int("count", len(r.order)).Msg("player left")
	r.UpdateRolesAfterRosterChange()
	return nil
}

// SetPartner links id and partner both ways, clearing any previous links on
// either side. NoPlayer clears id's link.
func (r *Registry) SetPartner(id, partner PlayerID) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	if partner == NoPlayer {
		if rec.HasPartner() {
			r.unlink(rec)
		}
		return nil
	}
	other, err := r.validatePartner(rec, partner)
	if err != nil {
		return err
	}
	if rec.Partner == partner && other.Partner == id {
		return nil
	}
	if rec.HasPartner() {
		r.unlink(rec)
	}
	if other.HasPartner() {
		r.unlink(other)
	}
	rec.Partner = partner
	other.Partner = id
	r.notifyPartner(id, partner)
	r.notifyPartner(partner, id)
	return nil
}

func (r *Registry) validatePartner(rec *Record, partner PlayerID) (*Record, error) {
	if partner == rec.ID {
		return nil, ErrSelfPartner
	}
	other, err := r.record(partner)
	if err != nil {
		return nil, err
	}
	if rec.IsSpectator || other.IsSpectator {
		return nil, ErrSpectator
	}
	return other, nil
}

func (r *Registry) unlink(rec *Record) {
	old := rec.Partner
	rec.Partner = NoPlayer
	r.notifyPartner(rec.ID, NoPlayer)
	if other, ok := r.records[old]; ok && other.Partner == rec.ID {
		other.Partner = NoPlayer
		r.notifyPartner(other.ID, NoPlayer)
	}
}

func (r *Registry) notifyPartner(id, partner PlayerID) {
	if r.hooks.PartnerChanged != nil {
		r.hooks.PartnerChanged(id, partner)
	}
}

// SetPlayerRole sets id's body role and partner, then refreshes the player
// list. Validation happens before any field changes.
func (r *Registry) SetPlayerRole(id PlayerID, isLowerBody bool, partner PlayerID) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	if partner != NoPlayer {
		if _, err := r.validatePartner(rec, partner); err != nil {
			return err
		}
	}
	rec.IsLowerBody = isLowerBody
	if err := r.SetPartner(id, partner); err != nil {
		return err
	}
	r.log.Debug().Str("player", id.String()).Bool("lower", isLowerBody).Int("connected", r.ConnectedPlayerIndex(id)).Msg("role assigned")
	if r.hooks.RoleChanged != nil {
		r.hooks.RoleChanged(*rec)
	}
	r.refreshPlayers()
	return nil
}

// SetSpectator moves id in or out of spectating. Spectators lose their
// partner on both sides.
func (r *Registry) SetSpectator(id PlayerID, spectator bool) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	if spectator && rec.HasPartner() {
		r.unlink(rec)
	}
	rec.IsSpectator = spectator
	r.refreshPlayers()
	return nil
}

// SetStatus marks id alive or dead.
func (r *Registry) SetStatus(id PlayerID, status Status) error {
	if err := r.requireAuthority(); err != nil {
		return err
	}
	rec, err := r.record(id)
	if err != nil {
		return err
	}
	rec.Status = status
	r.refreshPlayers()
	return nil
}

// UpdateRolesAfterRosterChange pairs non-spectators in join order: even
// positions are lower bodies, odd positions are upper bodies partnered with
// the player just before them. A trailing odd player stays unpartnered.
func (r *Registry) UpdateRolesAfterRosterChange() {
	if !r.Authoritative() {
		return
	}
	var active []PlayerID
	for _, id := range r.order {
		if !r.records[id].IsSpectator {
			active = append(active, id)
		}
	}
	for i, id := range active {
		var err error
		if i%2 == 0 {
			err = r.SetPlayerRole(id, true, NoPlayer)
		} else {
			err = r.SetPlayerRole(id, false, active[i-1])
		}
		if err != nil {
			r.log.Warn().Err(err).Str("player", id.String()).Msg("role assignment failed")
		}
	}
	r.refreshPlayers()
}

func (r *Registry) refreshPlayers() {
	if r.hooks.PlayersChanged != nil {
		r.hooks.PlayersChanged(r.Players())
	}
}

func displayName(name, userUID string) string {
	if name != "" && name == userUID {
		return "Player"
	}
	return name
}
