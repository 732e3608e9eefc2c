package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/backwardroyal/combat"
	"github.com/milk9111/backwardroyal/ecs"
	"github.com/milk9111/backwardroyal/prefabs"
	"github.com/milk9111/backwardroyal/roster"
)

//go:generate go tool mockgen -destination=./mocks/damage_applier_mock.go -package=mocks . DamageApplier
//go:generate go tool mockgen -destination=./mocks/possession_service_mock.go -package=mocks . PossessionService
//go:generate go tool mockgen -destination=./mocks/swap_notifier_mock.go -package=mocks . SwapNotifier
//go:generate go tool mockgen -destination=./mocks/intent_forwarder_mock.go -package=mocks github.com/milk9111/backwardroyal/ecs IntentForwarder

// DamageApplier is the engine damage entry point. It returns the damage
// actually taken.
type DamageApplier interface {
	ApplyDamage(w *ecs.World, target ecs.Entity, amount float64, instigator, causer ecs.Entity) float64
	ApplyPointDamage(w *ecs.World, target ecs.Entity, amount float64, dir cp.Vector, hit ecs.TraceHit, instigator, causer ecs.Entity) float64
}

// PossessionService moves controllers between pawns.
type PossessionService interface {
	Possess(w *ecs.World, controller, pawn ecs.Entity) error
	UnPossess(w *ecs.World, controller ecs.Entity) error
	SetOwner(w *ecs.World, pawn, owner ecs.Entity) error
}

// SwapNotifier plays the swap effect for both players of a completed swap.
type SwapNotifier interface {
	SwapEffect(players [2]roster.PlayerID)
}

// RoleRegistry is the slice of the roster the simulation needs.
type RoleRegistry interface {
	Get(id roster.PlayerID) (roster.Record, bool)
	SetPlayerRole(id roster.PlayerID, isLowerBody bool, partner roster.PlayerID) error
	SetStatus(id roster.PlayerID, status roster.Status) error
	Players() []roster.View
	Index(id roster.PlayerID) int
}

// BalanceSource yields the current balance snapshot.
type BalanceSource interface {
	Get() prefabs.BalanceConfig
}

func currentTuning(b BalanceSource) combat.Tuning {
	if b == nil {
		return combat.DefaultTuning()
	}
	return b.Get().Tuning()
}

func currentBalance(b BalanceSource) prefabs.BalanceConfig {
	if b == nil {
		return prefabs.DefaultBalance()
	}
	return b.Get()
}
