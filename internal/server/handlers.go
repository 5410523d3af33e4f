package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/udisondev/cardduel/internal/data"
	"github.com/udisondev/cardduel/internal/game/combat"
	"github.com/udisondev/cardduel/internal/game/status"
	"github.com/udisondev/cardduel/internal/model"
)

const sessionHeader = "X-Session-Token"

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResp{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// --- accounts & sessions ---

type credentialsReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Login == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "login and password are required")
		return
	}
	if err := s.accounts.Create(r.Context(), req.Login, req.Password); err != nil {
		slog.Error("creating account", "login", req.Login, "err", err)
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"login": req.Login})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decodeBody(w, r, &req) {
		return
	}
	ok, err := s.accounts.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		slog.Error("authenticating", "login", req.Login, "err", err)
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "bad credentials")
		return
	}
	token := s.sessions.Create(req.Login)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// authorize checks that the request's session token belongs to login.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, login string) bool {
	owner, ok := s.sessions.Resolve(r.Header.Get(sessionHeader))
	if !ok || owner != login {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return false
	}
	return true
}

// --- saved decks ---

type deckEntryBody struct {
	CardID string `json:"card_id"`
	Copies int32  `json:"copies"`
}

type deckBody struct {
	Cards []deckEntryBody `json:"cards"`
}

func (s *Server) handleSaveDeck(w http.ResponseWriter, r *http.Request) {
	login := r.PathValue("login")
	if !s.authorize(w, r, login) {
		return
	}
	var req deckBody
	if !decodeBody(w, r, &req) {
		return
	}
	entries := make([]model.DeckEntry, 0, len(req.Cards))
	for _, e := range req.Cards {
		if _, ok := data.GetCard(e.CardID); !ok {
			writeError(w, http.StatusBadRequest, "unknown card: "+e.CardID)
			return
		}
		if e.Copies <= 0 {
			writeError(w, http.StatusBadRequest, "copies must be positive for "+e.CardID)
			return
		}
		entries = append(entries, model.DeckEntry{CardID: e.CardID, Copies: e.Copies})
	}
	if err := s.decks.Save(r.Context(), login, entries); err != nil {
		slog.Error("saving deck", "login", login, "err", err)
		writeError(w, http.StatusInternalServerError, "could not save deck")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"saved": len(entries)})
}

func (s *Server) handleLoadDeck(w http.ResponseWriter, r *http.Request) {
	login := r.PathValue("login")
	if !s.authorize(w, r, login) {
		return
	}
	entries, err := s.decks.Load(r.Context(), login)
	if err != nil {
		slog.Error("loading deck", "login", login, "err", err)
		writeError(w, http.StatusInternalServerError, "could not load deck")
		return
	}
	resp := deckBody{Cards: make([]deckEntryBody, 0, len(entries))}
	for _, e := range entries {
		resp.Cards = append(resp.Cards, deckEntryBody{CardID: e.CardID, Copies: e.Copies})
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- combatants ---

type spawnReq struct {
	Name string `json:"name"`
}

func (s *Server) handleSpawnCombatant(w http.ResponseWriter, r *http.Request) {
	var req spawnReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	c := s.roster.Spawn(req.Name)
	slog.Info("spawned combatant", "id", c.ID(), "name", c.Name())
	writeJSON(w, http.StatusCreated, map[string]any{"id": c.ID(), "name": c.Name()})
}

type effectView struct {
	Name           string `json:"name"`
	Potency        int32  `json:"potency"`
	RemainingTurns int32  `json:"remaining_turns"`
}

type combatantView struct {
	ID      uint32       `json:"id"`
	Name    string       `json:"name"`
	Effects []effectView `json:"effects"`
}

func (s *Server) lookupCombatant(w http.ResponseWriter, r *http.Request) (*model.Combatant, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid combatant id")
		return nil, false
	}
	c, ok := s.roster.Get(uint32(id))
	if !ok {
		writeError(w, http.StatusNotFound, "combatant not found")
		return nil, false
	}
	return c, true
}

func (s *Server) handleGetCombatant(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCombatant(w, r)
	if !ok {
		return
	}
	view := combatantView{ID: c.ID(), Name: c.Name(), Effects: []effectView{}}
	if sheet := c.Sheet(); sheet != nil {
		for _, e := range sheet.Active() {
			view.Effects = append(view.Effects, effectView{
				Name:           e.Name,
				Potency:        e.Potency,
				RemainingTurns: e.RemainingTurns,
			})
		}
	}
	writeJSON(w, http.StatusOK, view)
}

type applyEffectReq struct {
	Name    string `json:"name"`
	Potency int32  `json:"potency"`
	Turns   int32  `json:"turns"`
}

func (s *Server) handleApplyEffect(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCombatant(w, r)
	if !ok {
		return
	}
	var req applyEffectReq
	if !decodeBody(w, r, &req) {
		return
	}
	if !status.Known(req.Name) {
		writeError(w, http.StatusBadRequest, "unknown effect: "+req.Name)
		return
	}
	sheet := c.Sheet()
	if sheet == nil {
		writeError(w, http.StatusConflict, "combatant has no status sheet")
		return
	}
	sheet.Apply(req.Name, req.Potency, req.Turns)
	writeJSON(w, http.StatusOK, map[string]int{"active_effects": sheet.Count()})
}

func (s *Server) handleTickTurn(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCombatant(w, r)
	if !ok {
		return
	}
	if sheet := c.Sheet(); sheet != nil {
		sheet.TickTurn()
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- damage resolution ---

type resolveCardReq struct {
	SourceID uint32 `json:"source_id"`
	TargetID uint32 `json:"target_id"`
	CardID   string `json:"card_id"`
}

type resolveAmountReq struct {
	SourceID uint32 `json:"source_id"`
	TargetID uint32 `json:"target_id"`
	Amount   int32  `json:"amount"`
}

type resolveResp struct {
	Damage     int32  `json:"damage"`
	Crit       bool   `json:"crit"`
	Diagnostic string `json:"diagnostic"`
}

func toResolveResp(res combat.Result) resolveResp {
	return resolveResp{Damage: res.Damage, Crit: res.Crit, Diagnostic: res.Diag.String()}
}

func (s *Server) handleResolveCard(w http.ResponseWriter, r *http.Request) {
	var req resolveCardReq
	if !decodeBody(w, r, &req) {
		return
	}
	card, ok := data.GetCard(req.CardID)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown card: "+req.CardID)
		return
	}
	// Absent participants are passed through as nil: the resolver
	// degrades to 0 with a diagnostic instead of failing.
	source, _ := s.roster.Get(req.SourceID)
	target, _ := s.roster.Get(req.TargetID)
	res := s.resolver.ResolveCard(source, target, card)
	writeJSON(w, http.StatusOK, toResolveResp(res))
}

func (s *Server) handleResolveAmount(w http.ResponseWriter, r *http.Request) {
	var req resolveAmountReq
	if !decodeBody(w, r, &req) {
		return
	}
	source, _ := s.roster.Get(req.SourceID)
	target, _ := s.roster.Get(req.TargetID)
	res := s.resolver.ResolveAmount(source, target, req.Amount)
	writeJSON(w, http.StatusOK, toResolveResp(res))
}

// --- admin ---

type balanceReq struct {
	CriticalHitsEnabled bool    `json:"critical_hits_enabled"`
	BaseCriticalChance  float64 `json:"base_critical_chance"`
	CriticalHitModifier float64 `json:"critical_hit_modifier"`
}

func (s *Server) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.BaseCriticalChance < 0 || req.BaseCriticalChance > 1 {
		writeError(w, http.StatusBadRequest, "base_critical_chance must be in [0, 1]")
		return
	}
	s.tunables.Store(combat.Config{
		CriticalHitsEnabled: req.CriticalHitsEnabled,
		BaseCriticalChance:  req.BaseCriticalChance,
		CriticalHitModifier: req.CriticalHitModifier,
	})
	slog.Info("combat balance updated",
		"crits_enabled", req.CriticalHitsEnabled,
		"base_chance", req.BaseCriticalChance,
		"modifier", req.CriticalHitModifier)
	w.WriteHeader(http.StatusNoContent)
}
