package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cardduel/internal/config"
	"github.com/udisondev/cardduel/internal/data"
	"github.com/udisondev/cardduel/internal/db"
	"github.com/udisondev/cardduel/internal/game/combat"
	"github.com/udisondev/cardduel/internal/server"
	"github.com/udisondev/cardduel/internal/world"
)

const gameConfigPath = "config/gameserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := gameConfigPath
	if p := os.Getenv("CARDDUEL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("cardduel server starting",
		"log_level", cfg.LogLevel,
		"bind", cfg.BindAddress,
		"port", cfg.Port)

	// Connect to database
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	// Run migrations
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// Load card and deck assets
	if err := data.LoadCards(); err != nil {
		return fmt.Errorf("loading cards: %w", err)
	}
	if err := data.LoadDecks(); err != nil {
		return fmt.Errorf("loading decks: %w", err)
	}

	// Wire the combat engine
	tunables := combat.NewTunables(combat.Config{
		CriticalHitsEnabled: cfg.Balance.CriticalHitsEnabled,
		BaseCriticalChance:  cfg.Balance.BaseCriticalChance,
		CriticalHitModifier: cfg.Balance.CriticalHitModifier,
	})
	resolver := combat.NewResolver(tunables, combat.SheetAggregator{}, combat.DefaultRNG())
	roster := world.NewRoster()

	accounts := db.NewAccountRepository(database.Pool())
	decks := db.NewDeckRepository(database.Pool())

	srv := server.NewServer(cfg, resolver, tunables, roster, accounts, decks)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	return g.Wait()
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
