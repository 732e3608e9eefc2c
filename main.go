package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/milk9111/backwardroyal/config"
	"github.com/milk9111/backwardroyal/levels"
	"github.com/milk9111/backwardroyal/logging"
	"github.com/milk9111/backwardroyal/netsync"
	"github.com/milk9111/backwardroyal/prefabs"
	"github.com/milk9111/backwardroyal/telemetry"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml)")
	arenaName := flag.String("arena", "", "arena name in levels/ (overrides config)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *arenaName != "" {
		cfg.Arena.Name = *arenaName
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	metrics, err := telemetry.New()
	if err != nil {
		return err
	}

	balance := prefabs.DefaultBalance()
	if cfg.Balance.Path != "" {
		if balance, err = prefabs.LoadBalance(cfg.Balance.Path); err != nil {
			return err
		}
	}
	store := prefabs.NewBalanceStore(balance, cfg.Balance.Path, log)

	arena, err := levels.LoadArenaFromFS(cfg.Arena.Name)
	if err != nil {
		return err
	}

	gateway := netsync.NewGateway(netsync.GatewayOptions{
		Log: log,
		// Players connect from native clients, not browsers.
		InsecureSkipVerify: true,
	})
	game, err := NewGame(GameOptions{
		Config:  cfg,
		Arena:   arena,
		Balance: store,
		Metrics: metrics,
		Gateway: gateway,
		Log:     log,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	eg, ctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		// Hijacked websocket connections outlive Shutdown; they end with ctx.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	eg.Go(func() error {
		return game.Run(ctx)
	})
	if cfg.Balance.Watch {
		eg.Go(func() error {
			return store.Watch(ctx)
		})
	}
	eg.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Str("arena", arena.Name).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
