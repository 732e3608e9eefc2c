package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/backwardroyal/config"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/ecs/component"
	"github.com/milk9111/backwardroyal/ecs/entity"
	"github.com/milk9111/backwardroyal/ecs/system"
	"github.com/milk9111/backwardroyal/levels"
	"github.com/milk9111/backwardroyal/netsync"
	"github.com/milk9111/backwardroyal/prefabs"
	"github.com/milk9111/backwardroyal/roster"
	"github.com/milk9111/backwardroyal/telemetry"
	"github.com/rs/zerolog"
)

const pickupRadius = 64.0

var (
	errNotJoined     = errors.New("send hello first")
	errAlreadyJoined = errors.New("already joined")
	errNotStarted    = errors.New("match has not started")
	errCannotStart   = errors.New("only the host can start once everyone is ready")
	errUnknownIntent = errors.New("unknown intent")
)

type GameOptions struct {
	Config  config.Config
	Arena   *levels.Arena
	Balance system.BalanceSource
	Metrics *telemetry.Metrics
	Gateway *netsync.Gateway
	Log     zerolog.Logger
}

// Game owns the simulation. Everything in it runs on the tick goroutine;
// connection goroutines only reach it through the gateway's intent queue.
type Game struct {
	world     *ecs.World
	roles     *roster.Registry
	spawner   *system.RoleSpawner
	detection *system.AttackDetectionSystem
	balance   system.BalanceSource
	gateway   *netsync.Gateway
	metrics   *telemetry.Metrics
	log       zerolog.Logger

	snapshotEvery uint64
	sessions      map[uuid.UUID]roster.PlayerID
	started       bool
	rosterDirty   bool
}

func NewGame(opts GameOptions) (*Game, error) {
	cfg := opts.Config
	g := &Game{
		balance:       opts.Balance,
		gateway:       opts.Gateway,
		metrics:       opts.Metrics,
		log:           opts.Log.With().Str("component", "game").Logger(),
		snapshotEvery: uint64(max(cfg.Server.SnapshotEvery, 1)),
		sessions:      make(map[uuid.UUID]roster.PlayerID),
	}

	w := ecs.NewWorld()
	w.SetTickSeconds(cfg.TickSeconds())
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(ecs.DefaultGravity))
	system.InstallPhysicsCleanup(w)
	if err := entity.BuildArena(w, opts.Arena); err != nil {
		return nil, err
	}
	g.world = w

	g.roles = roster.NewRegistry(roster.Options{
		MinPlayers: cfg.Lobby.MinPlayers,
		MaxPlayers: cfg.Lobby.MaxPlayers,
		Log:        opts.Log,
		Hooks: roster.Hooks{
			RoleChanged:    g.roleChanged,
			PlayersChanged: func([]roster.View) { g.rosterDirty = true },
		},
	})

	possession := system.NewPossession()
	damage := system.NewDamageRouter(g.roles, opts.Metrics, opts.Log)
	g.detection = system.NewAttackDetectionSystem(damage, opts.Balance, opts.Metrics, opts.Log)
	g.spawner = system.NewRoleSpawner(g.roles, possession, cfg.Spawn.RetryCount, cfg.Spawn.RetryDelay, opts.Log)
	swap := system.NewControlSwap(g.roles, possession, g, opts.Metrics, opts.Log)

	w.AddSystem(system.NewAttackSystem(g.detection, opts.Balance, opts.Log))
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(g.detection)
	w.AddSystem(system.NewWeaponTraceSystem(damage, opts.Balance, opts.Metrics, opts.Log))
	w.AddSystem(system.NewDamageKnockbackSystem(opts.Balance))
	w.AddSystem(system.NewSwitchOrbSystem(swap))
	w.AddSystem(system.NewStaminaSystem(opts.Balance))
	w.AddSystem(&eventLog{log: g.log})
	return g, nil
}

// Run steps the simulation at the world tick rate until ctx is done.
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(g.world.TickSeconds() * float64(time.Second)))
	defer ticker.Stop()
	g.log.Info().Float64("tick_seconds", g.world.TickSeconds()).Msg("simulation running")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g.Step()
		}
	}
}

// Step applies queued intents, advances the world one tick and publishes
// whatever changed.
func (g *Game) Step() {
	for _, in := range g.gateway.Drain() {
		if err := g.handle(in); err != nil {
			g.log.Debug().Err(err).Str("kind", string(in.Envelope.Kind)).Stringer("session", in.Session).Msg("intent rejected")
			g.send(in.Session, netsync.KindError, netsync.ErrorMessage{Message: err.Error()})
		}
	}
	g.publishRoster()

	g.world.Update()

	// Deaths during the update change roster status.
	g.publishRoster()
	if g.world.Tick()%g.snapshotEvery == 0 {
		g.broadcast(netsync.KindState, g.state())
	}
}

func (g *Game) publishRoster() {
	if !g.rosterDirty {
		return
	}
	g.rosterDirty = false
	if g.started {
		g.spawner.Reconcile(g.world)
	}
	g.broadcast(netsync.KindRoster, g.roles.Snapshot())
}

func (g *Game) handle(in netsync.Intent) error {
	env := in.Envelope
	switch env.Kind {
	case netsync.KindHello:
		return g.hello(in.Session, env)
	case netsync.KindLeave:
		g.leave(in.Session)
		return nil
	}

	id, ok := g.sessions[in.Session]
	if !ok {
		return errNotJoined
	}
	switch env.Kind {
	case netsync.KindReady:
		_, err := g.roles.ToggleReady(id)
		return err
	case netsync.KindSelectTeam:
		var slot netsync.TeamSlot
		if err := env.Into(&slot); err != nil {
			return err
		}
		return g.roles.AssignPlayerToLobbyTeam(id, slot.Team, slot.Slot)
	case netsync.KindLeaveTeam:
		var slot netsync.TeamSlot
		if err := env.Into(&slot); err != nil {
			return err
		}
		if g.roles.Lobby().TeamSlot(slot.Team, slot.Slot) != id {
			return fmt.Errorf("%w: team %d slot %d is not yours", roster.ErrInvalidSlot, slot.Team, slot.Slot)
		}
		_, err := g.roles.MovePlayerToLobbyEntry(slot.Team, slot.Slot)
		return err
	case netsync.KindRandomTeams:
		if rec, _ := g.roles.Get(id); !rec.IsHost {
			return errCannotStart
		}
		return g.roles.AssignRandomTeams()
	case netsync.KindStart:
		return g.start(id)
	}

	if !g.started {
		return errNotStarted
	}
	return g.play(id, env)
}

func (g *Game) hello(session uuid.UUID, env netsync.Envelope) error {
	if _, ok := g.sessions[session]; ok {
		return errAlreadyJoined
	}
	var h netsync.Hello
	if err := env.Into(&h); err != nil {
		return err
	}
	rec, err := g.roles.Join(h.Name, h.UserUID)
	if err != nil {
		return err
	}
	g.sessions[session] = rec.ID
	g.metrics.PlayersChanged(1)
	g.send(session, netsync.KindWelcome, netsync.Welcome{Player: rec.ID, Session: session})
	return nil
}

func (g *Game) leave(session uuid.UUID) {
	id, ok := g.sessions[session]
	if !ok {
		return
	}
	delete(g.sessions, session)
	g.spawner.Despawn(g.world, id)
	if err := g.roles.Leave(id); err != nil {
		g.log.Warn().Err(err).Str("player", id.String()).Msg("leave")
		return
	}
	g.metrics.PlayersChanged(-1)
}

func (g *Game) start(id roster.PlayerID) error {
	if g.started {
		return nil
	}
	if !g.roles.CanHostStart(id) {
		return errCannotStart
	}
	g.started = true
	g.rosterDirty = true
	g.log.Info().Int("players", g.roles.Len()).Msg("match started")
	return nil
}

// play applies an in-match intent to the player's pawn.
func (g *Game) play(id roster.PlayerID, env netsync.Envelope) error {
	w := g.world
	ctrl, ok := system.ControllerFor(w, id)
	if !ok {
		return system.ErrNoController
	}
	switch env.Kind {
	case netsync.KindAttack:
		return system.RequestAttack(w, ctrl)
	case netsync.KindSprint:
		var s netsync.Sprint
		if err := env.Into(&s); err != nil {
			return err
		}
		c, _ := ecs.Get(w, ctrl, component.ControllerComponent.Kind())
		c.Sprint = s.On
		return nil
	}

	character, ok := system.CharacterFor(w, id)
	if !ok {
		return system.ErrNoPawn
	}
	switch env.Kind {
	case netsync.KindJump:
		if rec, _ := g.roles.Get(id); !rec.IsLowerBody {
			return nil
		}
		system.Jump(w, character, g.balance)
		return nil
	case netsync.KindDetection:
		var d netsync.Detection
		if err := env.Into(&d); err != nil {
			return err
		}
		return g.detection.SetAttackDetection(w, character, d.Enabled)
	case netsync.KindPickup:
		_, err := system.PickupNearest(w, character, pickupRadius)
		return err
	case netsync.KindDrop:
		_, err := system.DropWeapon(w, character)
		return err
	}
	return fmt.Errorf("%w: %s", errUnknownIntent, env.Kind)
}

func (g *Game) roleChanged(rec roster.Record) {
	g.broadcast(netsync.KindRoleChanged, netsync.RoleChanged{Player: rec})
}

// SwapEffect tells every client to play the swap effect for both players.
func (g *Game) SwapEffect(players [2]roster.PlayerID) {
	g.broadcast(netsync.KindSwapFX, netsync.SwapFX{Players: players})
}

func (g *Game) state() netsync.State {
	w := g.world
	owners := make(map[uint64]roster.PlayerID)
	ecs.ForEach(w, component.ControllerComponent.Kind(), func(_ ecs.Entity, c *component.Controller) {
		if c.Pawn != 0 {
			owners[c.Pawn] = c.Player
		}
	})

	out := netsync.State{Tick: w.Tick()}
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Static {
			return
		}
		b := netsync.BodyState{
			Entity: uint64(e),
			Player: owners[uint64(e)],
			Upper:  ecs.Has(w, e, component.UpperBodyTagComponent.Kind()),
			X:      t.X,
			Y:      t.Y,
			Angle:  t.Rotation,
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			b.Health = h.Current
		}
		if st, ok := ecs.Get(w, e, component.StaminaComponent.Kind()); ok {
			b.Stamina = st.Current
		}
		if p, ok := ecs.Get(w, e, component.PawnComponent.Kind()); ok {
			b.Movement = uint8(p.Movement)
			b.Ragdoll = p.Movement == component.MovementRagdoll
		}
		if eq, ok := ecs.Get(w, e, component.EquippedComponent.Kind()); ok {
			b.Weapon = eq.Weapon
		}
		out.Bodies = append(out.Bodies, b)
	})
	return out
}

func (g *Game) send(session uuid.UUID, kind netsync.Kind, body any) {
	if err := g.gateway.Send(session, kind, body); err != nil {
		g.log.Debug().Err(err).Str("kind", string(kind)).Msg("send")
	}
}

func (g *Game) broadcast(kind netsync.Kind, body any) {
	if err := g.gateway.Broadcast(kind, body); err != nil {
		g.log.Debug().Err(err).Str("kind", string(kind)).Msg("broadcast")
	}
}

// eventLog records gameplay events before the world flushes them.
type eventLog struct {
	log zerolog.Logger
}

func (l *eventLog) Update(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		switch data := evt.Data.(type) {
		case ecs.DeathEvent:
			l.log.Info().Stringer("entity", data.Entity).Stringer("instigator", data.Instigator).Msg("character died")
		case ecs.SwapEvent:
			l.log.Info().Stringer("orb", data.Orb).Msg("control swapped")
		case ecs.HitLandedEvent:
			l.log.Debug().Stringer("attacker", data.Attacker).Stringer("target", data.Target).Float64("damage", data.Damage).Msg("hit landed")
		}
	}
}

var _ system.SwapNotifier = (*Game)(nil)

var _ system.BalanceSource = (*prefabs.BalanceStore)(nil)
