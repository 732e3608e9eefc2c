package system

import (
	"fmt"
	"time"

	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/ecs/entity"
	"github.com/milk9111/backwardroyal/roster"
	"github.com/rs/zerolog"
)

// RoleSpawner gives every player the pawn their role calls for. Lower-body
// players get a character at a spawn point; upper-body players get an upper
// body mounted on their partner's character, retried a few times when the
// partner has not spawned yet.
type RoleSpawner struct {
	roles      RoleRegistry
	possession PossessionService
	retries    int
	delay      float64
	log        zerolog.Logger
}

func NewRoleSpawner(roles RoleRegistry, possession PossessionService, retries int, delay time.Duration, log zerolog.Logger) *RoleSpawner {
	return &RoleSpawner{
		roles:      roles,
		possession: possession,
		retries:    retries,
		delay:      delay.Seconds(),
		log:        log.With().Str("component", "role_spawn").Logger(),
	}
}

// EnsureController returns the player's controller, creating it if needed.
func (s *RoleSpawner) EnsureController(w *ecs.World, id roster.PlayerID) (ecs.Entity, error) {
	if e, ok := ControllerFor(w, id); ok {
		return e, nil
	}
	return entity.NewController(w, id)
}

// Reconcile spawns or replaces pawns so each player's pawn matches its role.
// Lower bodies go first so upper bodies find their mounts.
func (s *RoleSpawner) Reconcile(w *ecs.World) {
	players := s.roles.Players()
	for _, lower := range []bool{true, false} {
		for _, v := range players {
			if v.IsSpectator || v.IsLowerBody != lower {
				continue
			}
			if err := s.SpawnPlayer(w, v.ID); err != nil {
				s.log.Warn().Err(err).Str("player", v.ID.String()).Msg("spawn")
			}
		}
	}
}

// SpawnPlayer gives id a pawn for its current role. An existing pawn of the
// wrong role is destroyed first.
func (s *RoleSpawner) SpawnPlayer(w *ecs.World, id roster.PlayerID) error {
	if !w.HasAuthority() {
		return ErrNotAuthority
	}
	rec, ok := s.roles.Get(id)
	if !ok {
		return fmt.Errorf("spawn %s: %w", id, roster.ErrUnknownPlayer)
	}
	ctrl, err := s.EnsureController(w, id)
	if err != nil {
		return fmt.Errorf("spawn %s: controller: %w", id, err)
	}
	if rec.IsSpectator {
		return nil
	}
	if s.pawnMatches(w, ctrl, rec) {
		return nil
	}
	if s.keepPair(w, ctrl, rec) {
		return nil
	}
	s.releasePawn(w, ctrl)

	if rec.IsLowerBody {
		return s.spawnLower(w, ctrl, rec)
	}
	return s.spawnUpper(w, ctrl, id, 0)
}

func (s *RoleSpawner) pawnMatches(w *ecs.World, ctrl ecs.Entity, rec roster.Record) bool {
	c, ok := ecs.Get(w, ctrl, component.ControllerComponent.Kind())
	if !ok || c.Pawn == 0 || !w.IsAlive(ecs.Entity(c.Pawn)) {
		return false
	}
	pawn := ecs.Entity(c.Pawn)
	isUpper := ecs.Has(w, pawn, component.UpperBodyTagComponent.Kind())
	if rec.IsLowerBody {
		return !isUpper
	}
	if !isUpper {
		return false
	}
	partnerPawn, ok := s.partnerCharacter(w, rec)
	if !ok {
		return false
	}
	parent, ok := parentOf(w, pawn)
	return ok && parent == partnerPawn
}

// keepPair handles a pair whose roles were flipped back by the roster while
// they still share one character: the lower body takes the character from
// its partner and the partner takes the rider, so nothing is respawned and
// the character keeps its health and weapon.
func (s *RoleSpawner) keepPair(w *ecs.World, ctrl ecs.Entity, rec roster.Record) bool {
	if !rec.IsLowerBody || !rec.HasPartner() {
		return false
	}
	c, ok := ecs.Get(w, ctrl, component.ControllerComponent.Kind())
	if !ok {
		return false
	}
	rider := ecs.Entity(c.Pawn)
	if !w.IsAlive(rider) || !ecs.Has(w, rider, component.UpperBodyTagComponent.Kind()) {
		return false
	}
	character, ok := s.partnerCharacter(w, rec)
	if !ok {
		return false
	}
	if parent, ok := parentOf(w, rider); !ok || parent != character {
		return false
	}
	partnerCtrl, ok := ControllerFor(w, rec.Partner)
	if !ok {
		return false
	}

	_ = s.possession.UnPossess(w, ctrl)
	_ = s.possession.UnPossess(w, partnerCtrl)
	if err := s.possess(w, ctrl, character, component.InputLocomotion); err != nil {
		s.log.Warn().Err(err).Str("player", rec.ID.String()).Msg("keep pair")
		return false
	}
	if err := s.possess(w, partnerCtrl, rider, component.InputAim); err != nil {
		s.log.Warn().Err(err).Str("player", rec.Partner.String()).Msg("keep pair")
		return false
	}
	s.log.Info().Str("lower", rec.ID.String()).Str("upper", rec.Partner.String()).Str("character", character.String()).Msg("pair roles restored")
	return true
}

// releasePawn unpossesses ctrl and destroys the pawn it held.
func (s *RoleSpawner) releasePawn(w *ecs.World, ctrl ecs.Entity) {
	c, ok := ecs.Get(w, ctrl, component.ControllerComponent.Kind())
	if !ok || c.Pawn == 0 {
		return
	}
	pawn := ecs.Entity(c.Pawn)
	_ = s.possession.UnPossess(w, ctrl)
	if !w.IsAlive(pawn) {
		return
	}
	if ecs.Has(w, pawn, component.EquippedComponent.Kind()) {
		_, _ = DropWeapon(w, pawn)
	}
	for _, rider := range attachedTo(w, pawn) {
		if ecs.Has(w, rider, component.PawnComponent.Kind()) {
			Detach(w, rider)
		}
	}
	w.DestroyEntity(pawn)
}

func (s *RoleSpawner) spawnLower(w *ecs.World, ctrl ecs.Entity, rec roster.Record) error {
	pos, ok := entity.SpawnPosition(w, s.roles.Index(rec.ID))
	if !ok {
		return fmt.Errorf("spawn %s: %w: no spawn points", rec.ID, ErrSpawnUnavailable)
	}
	character, err := entity.NewCharacterAt(w, pos.X, pos.Y)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", rec.ID, err)
	}
	if _, err := EnsureBody(w, character); err != nil {
		return fmt.Errorf("spawn %s: %w", rec.ID, err)
	}
	if err := s.possess(w, ctrl, character, component.InputLocomotion); err != nil {
		return err
	}
	s.log.Info().Str("player", rec.ID.String()).Str("pawn", character.String()).Msg("character spawned")
	return nil
}

func (s *RoleSpawner) spawnUpper(w *ecs.World, ctrl ecs.Entity, id roster.PlayerID, attempt int) error {
	rec, ok := s.roles.Get(id)
	if !ok || rec.IsLowerBody || rec.IsSpectator {
		return nil
	}
	character, ok := s.partnerCharacter(w, rec)
	if !ok {
		if attempt >= s.retries {
			return fmt.Errorf("spawn %s: %w: partner has no character after %d retries", id, ErrSpawnUnavailable, attempt)
		}
		s.log.Debug().Str("player", id.String()).Int("attempt", attempt+1).Msg("partner not spawned, retrying")
		w.After(s.delay, func(w *ecs.World) {
			if err := s.spawnUpper(w, ctrl, id, attempt+1); err != nil {
				s.log.Warn().Err(err).Msg("spawn upper body")
			}
		})
		return nil
	}
	if !w.IsAlive(ctrl) {
		return nil
	}
	if c, ok := ecs.Get(w, ctrl, component.ControllerComponent.Kind()); ok && c.Pawn != 0 && w.IsAlive(ecs.Entity(c.Pawn)) {
		return nil
	}

	upper, err := entity.NewUpperBodyAt(w, 0, 0)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", id, err)
	}
	if err := Attach(w, upper, character, component.SocketHeadMount, 0, 0); err != nil {
		w.DestroyEntity(upper)
		return fmt.Errorf("spawn %s: %w", id, err)
	}
	if err := s.possess(w, ctrl, upper, component.InputAim); err != nil {
		return err
	}
	s.log.Info().Str("player", id.String()).Str("pawn", upper.String()).Str("mount", character.String()).Msg("upper body spawned")
	return nil
}

func (s *RoleSpawner) partnerCharacter(w *ecs.World, rec roster.Record) (ecs.Entity, bool) {
	if !rec.HasPartner() {
		return 0, false
	}
	pc, ok := ControllerFor(w, rec.Partner)
	if !ok {
		return 0, false
	}
	c, _ := ecs.Get(w, pc, component.ControllerComponent.Kind())
	pawn := ecs.Entity(c.Pawn)
	if !w.IsAlive(pawn) || !ecs.Has(w, pawn, component.CharacterTagComponent.Kind()) {
		return 0, false
	}
	return pawn, true
}

func (s *RoleSpawner) possess(w *ecs.World, ctrl, pawn ecs.Entity, mode component.InputMode) error {
	if err := s.possession.Possess(w, ctrl, pawn); err != nil {
		return err
	}
	if err := s.possession.SetOwner(w, pawn, ctrl); err != nil {
		return err
	}
	if c, ok := ecs.Get(w, ctrl, component.ControllerComponent.Kind()); ok {
		c.Input = mode
		c.InputGeneration++
	}
	return nil
}

// Despawn removes a leaving player's controller and pawn.
func (s *RoleSpawner) Despawn(w *ecs.World, id roster.PlayerID) {
	ctrl, ok := ControllerFor(w, id)
	if !ok {
		return
	}
	s.releasePawn(w, ctrl)
	w.DestroyEntity(ctrl)
}
