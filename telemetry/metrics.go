// Package telemetry exposes combat and swap counters through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/milk9111/backwardroyal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	hitsCredited metric.Int64Counter
	hitsRejected metric.Int64Counter
	damage       metric.Float64Counter
	swaps        metric.Int64Counter
	breaks       metric.Int64Counter
	players      metric.Int64UpDownCounter
}

// New creates instruments on the global meter provider.
func New() (*Metrics, error) {
	return NewWithMeter(meter())
}

func NewWithMeter(m metric.Meter) (*Metrics, error) {
	var (
		out Metrics
		err error
	)
	out.hitsCredited, err = m.Int64Counter(
		"combat.hits.credited",
		metric.WithDescription("Hits that passed filtering and the hit gate"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating credited counter: %w", err)
	}
	out.hitsRejected, err = m.Int64Counter(
		"combat.hits.rejected",
		metric.WithDescription("Raw hits dropped before damage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}
	out.damage, err = m.Float64Counter(
		"combat.damage.applied",
		metric.WithDescription("Total damage applied to health"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}
	out.swaps, err = m.Int64Counter(
		"swap.attempts",
		metric.WithDescription("Control swap attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating swap counter: %w", err)
	}
	out.breaks, err = m.Int64Counter(
		"combat.weapons.broken",
		metric.WithDescription("Weapons whose durability reached zero"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating break counter: %w", err)
	}
	out.players, err = m.Int64UpDownCounter(
		"roster.players",
		metric.WithDescription("Connected players"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating players counter: %w", err)
	}
	return &out, nil
}

func (m *Metrics) HitCredited(path string) {
	if m == nil {
		return
	}
	m.hitsCredited.Add(context.Background(), 1, metric.WithAttributes(attribute.String("path", path)))
}

func (m *Metrics) HitRejected(reason string) {
	if m == nil {
		return
	}
	m.hitsRejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) DamageApplied(amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.damage.Add(context.Background(), amount)
}

func (m *Metrics) Swap(outcome string) {
	if m == nil {
		return
	}
	m.swaps.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) WeaponBroken(name string) {
	if m == nil {
		return
	}
	m.breaks.Add(context.Background(), 1, metric.WithAttributes(attribute.String("weapon", name)))
}

func (m *Metrics) PlayersChanged(delta int64) {
	if m == nil {
		return
	}
	m.players.Add(context.Background(), delta)
}
