package prefabs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedBalanceMatchesDefaults(t *testing.T) {
	cfg, err := LoadBalance("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBalance(), cfg)
}

func TestParseBalance(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg BalanceConfig)
	}{
		{
			name: "partial_override_keeps_defaults",
			yaml: "damage_multiplier: 2.5\nstamina:\n  jump_cost: 30\n",
			check: func(t *testing.T, cfg BalanceConfig) {
				assert.Equal(t, 2.5, cfg.DamageMultiplier)
				assert.Equal(t, 30.0, cfg.Stamina.JumpCost)
				assert.Equal(t, 500.0, cfg.ImpulseFloor)
				assert.Equal(t, 5.0, cfg.MinDamage)
			},
		},
		{
			name: "tuning_projection",
			yaml: "min_damage: 7\nimpulse_floor: 250\n",
			check: func(t *testing.T, cfg BalanceConfig) {
				tune := cfg.Tuning()
				assert.Equal(t, 7.0, tune.MinDamage)
				assert.Equal(t, 250.0, tune.ImpulseFloor)
				assert.Equal(t, 10.0, tune.StandardWeaponMass)
			},
		},
		{name: "zero_standard_mass", yaml: "standard_weapon_mass: 0\n", wantErr: true},
		{name: "negative_floor", yaml: "impulse_floor: -1\n", wantErr: true},
		{name: "not_yaml", yaml: "damage_multiplier: [\n", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := ParseBalance([]byte(c.yaml))
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			c.check(t, cfg)
		})
	}
}

func TestBalanceStoreReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("damage_multiplier: 1.5\n"), 0o644))

	cfg, err := LoadBalance(path)
	require.NoError(t, err)
	store := NewBalanceStore(cfg, path, zerolog.Nop())
	assert.Equal(t, 1.5, store.Get().DamageMultiplier)

	require.NoError(t, os.WriteFile(path, []byte("damage_multiplier: 3\n"), 0o644))
	require.NoError(t, store.Reload())
	assert.Equal(t, 3.0, store.Get().DamageMultiplier)
	assert.Equal(t, uint64(1), store.Reloads())

	require.NoError(t, os.WriteFile(path, []byte("standard_weapon_mass: -2\n"), 0o644))
	assert.ErrorIs(t, store.Reload(), ErrInvalidBalance)
	assert.Equal(t, 3.0, store.Get().DamageMultiplier, "rejected reload keeps snapshot")
}

func TestBalanceStoreWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("impulse_multiplier: 1\n"), 0o644))

	store := NewBalanceStore(DefaultBalance(), path, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("impulse_multiplier: 4\n"), 0o644)
		return store.Get().ImpulseMultiplier == 4
	}, 5*time.Second, 150*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestNilStoreYieldsDefaults(t *testing.T) {
	var s *BalanceStore
	assert.Equal(t, DefaultBalance(), s.Get())
}
