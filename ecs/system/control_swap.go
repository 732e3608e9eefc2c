package system

import (
	"fmt"

	"github.com/milk9111/backwardroyal/common"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/roster"
	"github.com/milk9111/backwardroyal/telemetry"
	"github.com/rs/zerolog"
)

type SwapState uint8

const (
	SwapIdle SwapState = iota
	SwapRequested
	SwapExecuting
)

func (s SwapState) String() string {
	switch s {
	case SwapRequested:
		return "requested"
	case SwapExecuting:
		return "executing"
	default:
		return "idle"
	}
}

// swapSide is one player's half of a swap, captured before anything moves.
type swapSide struct {
	record     roster.Record
	controller ecs.Entity
	pawn       ecs.Entity
	upper      bool
}

// ControlSwap exchanges the bodies of two partnered players. Every
// precondition is checked before the first mutation, and the whole exchange
// runs inside one tick.
type ControlSwap struct {
	roles      RoleRegistry
	possession PossessionService
	notifier   SwapNotifier
	metrics    *telemetry.Metrics
	log        zerolog.Logger

	state SwapState
}

func NewControlSwap(roles RoleRegistry, possession PossessionService, notifier SwapNotifier, metrics *telemetry.Metrics, log zerolog.Logger) *ControlSwap {
	return &ControlSwap{
		roles:      roles,
		possession: possession,
		notifier:   notifier,
		metrics:    metrics,
		log:        log.With().Str("component", "control_swap").Logger(),
	}
}

func (s *ControlSwap) State() SwapState {
	return s.state
}

// Trigger runs a swap for whoever touched the orb. trigger may be any
// entity on the player's body.
func (s *ControlSwap) Trigger(w *ecs.World, orb, trigger ecs.Entity) error {
	if s.state != SwapIdle {
		return fmt.Errorf("%w: swap already %s", ErrSwapAborted, s.state)
	}
	s.state = SwapRequested
	defer func() { s.state = SwapIdle }()

	a, b, err := s.validate(w, trigger)
	if err != nil {
		s.metrics.Swap("aborted")
		s.log.Info().Err(err).Str("trigger", trigger.String()).Msg("swap aborted")
		return fmt.Errorf("%w: %w", ErrSwapAborted, err)
	}

	s.state = SwapExecuting
	if err := s.execute(w, a, b); err != nil {
		s.metrics.Swap("failed")
		s.log.Warn().Err(err).Msg("swap failed")
		return err
	}

	if s.notifier != nil {
		s.notifier.SwapEffect([2]roster.PlayerID{a.record.ID, b.record.ID})
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSwap, Data: ecs.SwapEvent{Controllers: [2]ecs.Entity{a.controller, b.controller}, Orb: orb}})
	if w.IsAlive(orb) {
		w.DestroyEntity(orb)
	}
	s.metrics.Swap("ok")
	s.log.Info().Str("a", a.record.ID.String()).Str("b", b.record.ID.String()).Msg("roles swapped")
	return nil
}

func (s *ControlSwap) validate(w *ecs.World, trigger ecs.Entity) (swapSide, swapSide, error) {
	var a, b swapSide
	if !w.HasAuthority() {
		return a, b, ErrNotAuthority
	}
	pawn, ok := owningPawn(w, trigger)
	if !ok {
		return a, b, fmt.Errorf("trigger %s: %w", trigger, ErrNoPawn)
	}
	ctrlEnt, ctrl, ok := controllerOf(w, pawn)
	if !ok {
		return a, b, fmt.Errorf("pawn %s: %w", pawn, ErrNoController)
	}
	rec, ok := s.roles.Get(ctrl.Player)
	if !ok {
		return a, b, fmt.Errorf("player %s: %w", ctrl.Player, roster.ErrUnknownPlayer)
	}
	if rec.IsSpectator {
		return a, b, roster.ErrSpectator
	}
	if rec.TeamNumber <= 0 {
		return a, b, fmt.Errorf("player %s has no team", rec.ID)
	}
	partner, ok := s.roles.Get(rec.Partner)
	if !rec.HasPartner() || !ok || partner.Partner != rec.ID {
		return a, b, fmt.Errorf("player %s has no partner", rec.ID)
	}
	if partner.TeamNumber != rec.TeamNumber || partner.IsLowerBody == rec.IsLowerBody {
		return a, b, fmt.Errorf("players %s and %s are not a team pair", rec.ID, partner.ID)
	}
	partnerCtrl, ok := ControllerFor(w, partner.ID)
	if !ok {
		return a, b, fmt.Errorf("partner %s: %w", partner.ID, ErrNoController)
	}
	pc, _ := ecs.Get(w, partnerCtrl, component.ControllerComponent.Kind())

	a = swapSide{record: rec, controller: ctrlEnt, pawn: ecs.Entity(ctrl.Pawn)}
	b = swapSide{record: partner, controller: partnerCtrl, pawn: ecs.Entity(pc.Pawn)}
	for _, side := range []*swapSide{&a, &b} {
		if !w.IsAlive(side.pawn) || !ecs.Has(w, side.pawn, component.PawnComponent.Kind()) {
			return a, b, fmt.Errorf("player %s: %w", side.record.ID, ErrNoPawn)
		}
		side.upper = ecs.Has(w, side.pawn, component.UpperBodyTagComponent.Kind())
	}
	if a.upper == b.upper {
		return a, b, fmt.Errorf("players %s and %s do not hold one upper body", a.record.ID, b.record.ID)
	}
	return a, b, nil
}

func (s *ControlSwap) execute(w *ecs.World, a, b swapSide) error {
	if err := s.roles.SetPlayerRole(a.record.ID, !a.record.IsLowerBody, b.record.ID); err != nil {
		return fmt.Errorf("swap: role %s: %w", a.record.ID, err)
	}
	if err := s.roles.SetPlayerRole(b.record.ID, !b.record.IsLowerBody, a.record.ID); err != nil {
		_ = s.roles.SetPlayerRole(a.record.ID, a.record.IsLowerBody, b.record.ID)
		return fmt.Errorf("swap: role %s: %w", b.record.ID, err)
	}

	if err := s.exchange(w, a, b); err != nil {
		s.restore(w, a, b)
		return err
	}

	upper, lower := a.pawn, b.pawn
	if b.upper {
		upper, lower = b.pawn, a.pawn
	}
	if err := Attach(w, upper, lower, component.SocketHeadMount, 0, 0); err != nil {
		s.log.Warn().Err(err).Msg("reattach upper body")
	}

	// a now drives what b held and vice versa.
	s.rebind(w, a.controller, lower, !b.upper)
	s.rebind(w, b.controller, lower, !a.upper)
	return nil
}

func (s *ControlSwap) exchange(w *ecs.World, a, b swapSide) error {
	for _, c := range []ecs.Entity{a.controller, b.controller} {
		if err := s.possession.UnPossess(w, c); err != nil {
			return fmt.Errorf("swap: unpossess: %w", err)
		}
	}
	if err := s.possession.Possess(w, a.controller, b.pawn); err != nil {
		return fmt.Errorf("swap: possess: %w", err)
	}
	if err := s.possession.Possess(w, b.controller, a.pawn); err != nil {
		return fmt.Errorf("swap: possess: %w", err)
	}
	if err := s.possession.SetOwner(w, b.pawn, a.controller); err != nil {
		return fmt.Errorf("swap: owner: %w", err)
	}
	if err := s.possession.SetOwner(w, a.pawn, b.controller); err != nil {
		return fmt.Errorf("swap: owner: %w", err)
	}
	return nil
}

// restore puts roles and possession back the way validate found them.
func (s *ControlSwap) restore(w *ecs.World, a, b swapSide) {
	_ = s.roles.SetPlayerRole(a.record.ID, a.record.IsLowerBody, b.record.ID)
	_ = s.roles.SetPlayerRole(b.record.ID, b.record.IsLowerBody, a.record.ID)
	_ = s.possession.UnPossess(w, a.controller)
	_ = s.possession.UnPossess(w, b.controller)
	for _, side := range []swapSide{a, b} {
		if err := s.possession.Possess(w, side.controller, side.pawn); err != nil {
			s.log.Error().Err(err).Str("player", side.record.ID.String()).Msg("restore possession")
			continue
		}
		_ = s.possession.SetOwner(w, side.pawn, side.controller)
	}
}

// rebind rebuilds a controller's input for its new pawn and levels its view.
func (s *ControlSwap) rebind(w *ecs.World, controller, lower ecs.Entity, nowLower bool) {
	c, ok := ecs.Get(w, controller, component.ControllerComponent.Kind())
	if !ok {
		return
	}
	c.InputGeneration++
	c.ViewTarget = c.Pawn
	c.IgnoreMoveInput = false
	c.IgnoreLookInput = false
	c.Sprint = false

	lowerYaw := 0.0
	if t, ok := ecs.Get(w, lower, component.TransformComponent.Kind()); ok {
		lowerYaw = common.YawDegrees(t.Rotation)
	}
	if nowLower {
		c.Input = component.InputLocomotion
		c.Rotation = component.Rotation{Yaw: lowerYaw}
		if p, ok := ecs.Get(w, lower, component.PawnComponent.Kind()); ok {
			p.Movement = component.MovementWalking
		}
		return
	}
	c.Input = component.InputAim
	c.Rotation = component.Rotation{Yaw: common.NormalizeDegrees(lowerYaw + 180)}
}
