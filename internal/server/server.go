// Package server exposes the combat resolution engine and its supporting
// subsystems over a JSON HTTP API. The server computes and reports; it
// never applies damage to anyone's health and never decides who fights.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/udisondev/cardduel/internal/config"
	"github.com/udisondev/cardduel/internal/game/combat"
	"github.com/udisondev/cardduel/internal/model"
	"github.com/udisondev/cardduel/internal/world"
)

const shutdownTimeout = 5 * time.Second

// AccountStore is the account persistence the server depends on.
// Implemented by db.AccountRepository.
type AccountStore interface {
	Create(ctx context.Context, login, password string) error
	Authenticate(ctx context.Context, login, password string) (bool, error)
}

// DeckStore is the saved-deck persistence the server depends on.
// Implemented by db.DeckRepository.
type DeckStore interface {
	Save(ctx context.Context, login string, entries []model.DeckEntry) error
	Load(ctx context.Context, login string) ([]model.DeckEntry, error)
}

// Server is the game server HTTP front end.
type Server struct {
	cfg      config.GameServer
	resolver *combat.Resolver
	tunables *combat.Tunables
	roster   *world.Roster
	accounts AccountStore
	decks    DeckStore
	sessions *SessionManager

	httpSrv *http.Server
}

// NewServer wires the server from its collaborators.
func NewServer(
	cfg config.GameServer,
	resolver *combat.Resolver,
	tunables *combat.Tunables,
	roster *world.Roster,
	accounts AccountStore,
	decks DeckStore,
) *Server {
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		tunables: tunables,
		roster:   roster,
		accounts: accounts,
		decks:    decks,
		sessions: NewSessionManager(),
	}
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.Port),
		Handler: s.routes(),
	}
	return s
}

// routes builds the request mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/accounts", s.handleRegister)
	mux.HandleFunc("POST /api/sessions", s.handleLogin)

	mux.HandleFunc("PUT /api/decks/{login}", s.handleSaveDeck)
	mux.HandleFunc("GET /api/decks/{login}", s.handleLoadDeck)

	mux.HandleFunc("POST /api/combatants", s.handleSpawnCombatant)
	mux.HandleFunc("GET /api/combatants/{id}", s.handleGetCombatant)
	mux.HandleFunc("POST /api/combatants/{id}/effects", s.handleApplyEffect)
	mux.HandleFunc("POST /api/combatants/{id}/turn", s.handleTickTurn)

	mux.HandleFunc("POST /api/resolve/card", s.handleResolveCard)
	mux.HandleFunc("POST /api/resolve/amount", s.handleResolveAmount)

	mux.HandleFunc("PUT /api/admin/balance", s.handleUpdateBalance)

	return mux
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("game server listening", "addr", s.httpSrv.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	}
}

// Close stops the server immediately.
func (s *Server) Close() error {
	return s.httpSrv.Close()
}
