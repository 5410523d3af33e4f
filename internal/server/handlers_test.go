package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cardduel/internal/config"
	"github.com/udisondev/cardduel/internal/data"
	"github.com/udisondev/cardduel/internal/game/combat"
	"github.com/udisondev/cardduel/internal/model"
	"github.com/udisondev/cardduel/internal/world"
)

// fakeAccounts is an in-memory AccountStore.
type fakeAccounts struct {
	passwords map[string]string
}

func (f *fakeAccounts) Create(_ context.Context, login, password string) error {
	if _, dup := f.passwords[login]; dup {
		return fmt.Errorf("account %q already exists", login)
	}
	f.passwords[login] = password
	return nil
}

func (f *fakeAccounts) Authenticate(_ context.Context, login, password string) (bool, error) {
	stored, ok := f.passwords[login]
	return ok && stored == password, nil
}

// fakeDecks is an in-memory DeckStore.
type fakeDecks struct {
	saved map[string][]model.DeckEntry
}

func (f *fakeDecks) Save(_ context.Context, login string, entries []model.DeckEntry) error {
	f.saved[login] = entries
	return nil
}

func (f *fakeDecks) Load(_ context.Context, login string) ([]model.DeckEntry, error) {
	return f.saved[login], nil
}

type testEnv struct {
	srv      *Server
	handler  http.Handler
	tunables *combat.Tunables
	roster   *world.Roster
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	require.NoError(t, data.LoadCards())

	tunables := combat.NewTunables(combat.Config{CriticalHitsEnabled: false})
	resolver := combat.NewResolver(tunables, combat.SheetAggregator{}, combat.NewSeededRNG(1))
	roster := world.NewRoster()

	srv := NewServer(
		config.DefaultGameServer(),
		resolver,
		tunables,
		roster,
		&fakeAccounts{passwords: make(map[string]string)},
		&fakeDecks{saved: make(map[string][]model.DeckEntry)},
	)
	return &testEnv{srv: srv, handler: srv.routes(), tunables: tunables, roster: roster}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set(sessionHeader, token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResp[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func (e *testEnv) login(t *testing.T, login, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/accounts", credentialsReq{Login: login, Password: password}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/sessions", credentialsReq{Login: login, Password: password}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeResp[map[string]string](t, rec)["token"]
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	token := env.login(t, "alice", "hunter2")
	assert.NotEmpty(t, token)

	rec := env.do(t, http.MethodPost, "/api/sessions", credentialsReq{Login: "alice", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/accounts", credentialsReq{Login: "", Password: "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeckSaveAndLoad(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "bob", "pw")

	deck := deckBody{Cards: []deckEntryBody{
		{CardID: "strike", Copies: 5},
		{CardID: "war_cry", Copies: 2},
	}}

	rec := env.do(t, http.MethodPut, "/api/decks/bob", deck, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/decks/bob", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	loaded := decodeResp[deckBody](t, rec)
	assert.Equal(t, deck.Cards, loaded.Cards)

	t.Run("requires matching session", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/decks/bob", nil, "bogus-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects unknown cards", func(t *testing.T) {
		bad := deckBody{Cards: []deckEntryBody{{CardID: "fireball", Copies: 1}}}
		rec := env.do(t, http.MethodPut, "/api/decks/bob", bad, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects non-positive copies", func(t *testing.T) {
		bad := deckBody{Cards: []deckEntryBody{{CardID: "strike", Copies: 0}}}
		rec := env.do(t, http.MethodPut, "/api/decks/bob", bad, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCombatantLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/combatants", spawnReq{Name: "goblin"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	spawned := decodeResp[map[string]any](t, rec)
	id := uint32(spawned["id"].(float64))

	path := fmt.Sprintf("/api/combatants/%d", id)

	rec = env.do(t, http.MethodPost, path+"/effects", applyEffectReq{Name: "Weak", Potency: 1, Turns: 1}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeResp[combatantView](t, rec)
	assert.Equal(t, "goblin", view.Name)
	require.Len(t, view.Effects, 1)
	assert.Equal(t, "Weak", view.Effects[0].Name)

	// One turn passes, Weak expires.
	rec = env.do(t, http.MethodPost, path+"/turn", nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, path, nil, "")
	view = decodeResp[combatantView](t, rec)
	assert.Empty(t, view.Effects)

	t.Run("unknown effect rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, path+"/effects", applyEffectReq{Name: "Petrify"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing combatant", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/combatants/99999", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/combatants/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResolveEndpoints(t *testing.T) {
	env := newTestEnv(t)

	source := env.roster.Spawn("attacker")
	target := env.roster.Spawn("defender")
	source.Sheet().Apply("Strength", 3, 0)
	target.Sheet().Apply("Break", 1, 2)
	target.Sheet().Apply("Armor", 2, 2)

	t.Run("resolve amount runs the pipeline", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/resolve/amount",
			resolveAmountReq{SourceID: source.ID(), TargetID: target.ID(), Amount: 10}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decodeResp[resolveResp](t, rec)
		assert.Equal(t, int32(18), res.Damage)
		assert.False(t, res.Crit)
		assert.Equal(t, "none", res.Diagnostic)
	})

	t.Run("absent participants degrade to zero", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/resolve/amount",
			resolveAmountReq{SourceID: 12345, TargetID: target.ID(), Amount: 10}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decodeResp[resolveResp](t, rec)
		assert.Equal(t, int32(0), res.Damage)
		assert.Equal(t, "invalid_participants", res.Diagnostic)
	})

	t.Run("resolve card sums damage effects", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/resolve/card",
			resolveCardReq{SourceID: source.ID(), TargetID: target.ID(), CardID: "twin_strike"}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decodeResp[resolveResp](t, rec)
		// (8+3) → ×1.5 = 16.5 → armor 2 → 14.5 → round → 15.
		assert.Equal(t, int32(15), res.Damage)
		assert.Equal(t, "none", res.Diagnostic)
	})

	t.Run("status card yields no damage", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/resolve/card",
			resolveCardReq{SourceID: source.ID(), TargetID: target.ID(), CardID: "war_cry"}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decodeResp[resolveResp](t, rec)
		assert.Equal(t, int32(0), res.Damage)
		assert.Equal(t, "no_damage_effects", res.Diagnostic)
	})

	t.Run("unknown card", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/resolve/card",
			resolveCardReq{SourceID: source.ID(), TargetID: target.ID(), CardID: "fireball"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminBalance(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/admin/balance", balanceReq{
		CriticalHitsEnabled: true,
		BaseCriticalChance:  0.3,
		CriticalHitModifier: 2.0,
	}, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	cfg := env.tunables.Load()
	assert.True(t, cfg.CriticalHitsEnabled)
	assert.Equal(t, 0.3, cfg.BaseCriticalChance)
	assert.Equal(t, 2.0, cfg.CriticalHitModifier)

	t.Run("rejects out-of-range chance", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/admin/balance", balanceReq{BaseCriticalChance: 1.5}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
