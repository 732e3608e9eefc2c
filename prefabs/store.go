package prefabs

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// BalanceStore holds the current balance snapshot. The tick goroutine reads
// it while the watcher goroutine replaces it.
type BalanceStore struct {
	current atomic.Pointer[BalanceConfig]
	path    string
	log     zerolog.Logger
	reloads atomic.Uint64
}

func NewBalanceStore(cfg BalanceConfig, path string, log zerolog.Logger) *BalanceStore {
	s := &BalanceStore{path: path, log: log.With().Str("component", "balance").Logger()}
	s.current.Store(&cfg)
	return s
}

// Get returns the current snapshot. A nil store yields defaults.
func (s *BalanceStore) Get() BalanceConfig {
	if s == nil {
		return DefaultBalance()
	}
	if cfg := s.current.Load(); cfg != nil {
		return *cfg
	}
	return DefaultBalance()
}

// Set replaces the snapshot after validating it.
func (s *BalanceStore) Set(cfg BalanceConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.current.Store(&cfg)
	return nil
}

// Reloads returns how many reloads succeeded.
func (s *BalanceStore) Reloads() uint64 {
	return s.reloads.Load()
}

// Reload re-reads the backing file. A bad file keeps the previous snapshot.
func (s *BalanceStore) Reload() error {
	cfg, err := LoadBalance(s.path)
	if err != nil {
		return err
	}
	s.current.Store(&cfg)
	s.reloads.Add(1)
	return nil
}

// Watch reloads the balance file whenever it changes, until ctx is done.
func (s *BalanceStore) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	w, err := NewWatcher(filepath.Dir(target))
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			if abs, _ := filepath.Abs(name); abs != target {
				continue
			}
			if err := s.Reload(); err != nil {
				s.log.Warn().Err(err).Str("path", s.path).Msg("balance reload rejected")
				continue
			}
			s.log.Info().Str("path", s.path).Msg("balance reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("balance watcher error")
		}
	}
}
