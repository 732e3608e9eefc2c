// Package config loads server settings with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "BR"

type ServerConfig struct {
	Addr          string  `mapstructure:"addr"`
	TickRate      float64 `mapstructure:"tick_rate"`
	SnapshotEvery int     `mapstructure:"snapshot_every"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BalanceConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

type LobbyConfig struct {
	MinPlayers int `mapstructure:"min_players"`
	MaxPlayers int `mapstructure:"max_players"`
}

type SpawnConfig struct {
	RetryCount int           `mapstructure:"retry_count"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

type ArenaConfig struct {
	Name string `mapstructure:"name"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Balance BalanceConfig `mapstructure:"balance"`
	Lobby   LobbyConfig   `mapstructure:"lobby"`
	Spawn   SpawnConfig   `mapstructure:"spawn"`
	Arena   ArenaConfig   `mapstructure:"arena"`
}

// TickSeconds is the fixed simulation step.
func (c Config) TickSeconds() float64 {
	if c.Server.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / c.Server.TickRate
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.tick_rate", 60.0)
	v.SetDefault("server.snapshot_every", 3)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("balance.path", "")
	v.SetDefault("balance.watch", false)

	v.SetDefault("lobby.min_players", 4)
	v.SetDefault("lobby.max_players", 8)

	v.SetDefault("spawn.retry_count", 3)
	v.SetDefault("spawn.retry_delay", 500*time.Millisecond)

	v.SetDefault("arena.name", "courtyard")
}

// Load reads defaults, then the optional config file at path, then BR_
// environment overrides (BR_SERVER_ADDR and so on).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalid = errors.New("config: invalid")

func (c Config) Validate() error {
	switch {
	case c.Server.TickRate <= 0:
		return fmt.Errorf("%w: server.tick_rate must be positive", ErrInvalid)
	case c.Lobby.MinPlayers < 1 || c.Lobby.MaxPlayers < c.Lobby.MinPlayers:
		return fmt.Errorf("%w: lobby bounds %d..%d", ErrInvalid, c.Lobby.MinPlayers, c.Lobby.MaxPlayers)
	case c.Spawn.RetryCount < 0:
		return fmt.Errorf("%w: spawn.retry_count must not be negative", ErrInvalid)
	}
	return nil
}
