package status

import (
	"log/slog"
	"sync"
)

const maxEffects = 16

// Effect is one active entry on a sheet. RemainingTurns <= 0 means the
// effect lasts until explicitly removed.
type Effect struct {
	Name           string
	Potency        int32
	RemainingTurns int32
}

// Sheet tracks active named effects for one combatant.
//
// Thread-safe: all methods are protected by sync.RWMutex. The combat
// pipeline never reads a Sheet directly; it captures a Snapshot first.
type Sheet struct {
	mu      sync.RWMutex
	effects []Effect
}

// NewSheet creates an empty effect sheet.
func NewSheet() *Sheet {
	return &Sheet{effects: make([]Effect, 0, maxEffects)}
}

// Apply adds a catalog effect with the given potency and duration in turns.
// turns <= 0 means the effect persists until removed.
// Returns false if the effect name is not in the catalog.
//
// Stacking follows the catalog rule for the effect:
//   - StackAddPotency: potencies sum, the longer duration wins
//   - StackRefresh: potency kept, duration reset
//   - StackKeepHighest: higher potency wins, ties refresh duration
//
// If the sheet is full, the oldest effect is dropped.
func (s *Sheet) Apply(name string, potency, turns int32) bool {
	def, ok := Lookup(name)
	if !ok {
		slog.Warn("ignoring unknown effect", "name", name)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.effects {
		if s.effects[i].Name != name {
			continue
		}
		switch def.Stacking {
		case StackAddPotency:
			s.effects[i].Potency += potency
			if longerDuration(turns, s.effects[i].RemainingTurns) {
				s.effects[i].RemainingTurns = turns
			}
		case StackRefresh:
			s.effects[i].RemainingTurns = turns
		case StackKeepHighest:
			if potency > s.effects[i].Potency {
				s.effects[i].Potency = potency
				s.effects[i].RemainingTurns = turns
			} else if potency == s.effects[i].Potency {
				s.effects[i].RemainingTurns = turns
			}
		}
		return true
	}

	if len(s.effects) >= maxEffects {
		slog.Debug("effect limit reached, dropping oldest", "dropped", s.effects[0].Name)
		s.effects = s.effects[1:]
	}
	s.effects = append(s.effects, Effect{Name: name, Potency: potency, RemainingTurns: turns})
	return true
}

// Remove drops all effects with the given name.
func (s *Sheet) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.effects {
		if e.Name != name {
			s.effects[n] = e
			n++
		}
	}
	s.effects = s.effects[:n]
}

// Has reports whether an effect with the given name is active.
func (s *Sheet) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.effects {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Potency returns the potency of the named effect, or 0 if absent.
func (s *Sheet) Potency(name string) int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.effects {
		if e.Name == name {
			return e.Potency
		}
	}
	return 0
}

// TickTurn advances the sheet by one game turn: decrements remaining
// turns and drops expired effects. Effects with RemainingTurns <= 0
// at apply time never expire here.
func (s *Sheet) TickTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.effects {
		if e.RemainingTurns > 0 {
			e.RemainingTurns--
			if e.RemainingTurns == 0 {
				continue
			}
		}
		s.effects[n] = e
		n++
	}
	s.effects = s.effects[:n]
}

// Active returns a copy of the active effects, in application order.
func (s *Sheet) Active() []Effect {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Effect, len(s.effects))
	copy(out, s.effects)
	return out
}

// Count returns the number of active effects.
func (s *Sheet) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.effects)
}

// Snapshot captures the aggregate quantities the damage pipeline reads.
// The returned value is immutable and independent of later sheet changes.
func (s *Sheet) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Neutral()
	if len(s.effects) == 0 {
		return snap
	}

	snap.effects = make(map[string]int32, len(s.effects))
	for _, e := range s.effects {
		snap.effects[e.Name] = e.Potency

		switch e.Name {
		case EffectStrength:
			snap.Strength += e.Potency
		case EffectCurse:
			snap.DamageModification -= e.Potency
		case EffectWeak:
			snap.DamageDealtMult *= weakDealtMult
		case EffectBreak:
			snap.DamageTakenMult *= breakTakenMult
		}
	}
	return snap
}

// longerDuration reports whether a is a longer duration than b,
// treating <= 0 as "until removed" (longest possible).
func longerDuration(a, b int32) bool {
	if b <= 0 {
		return false
	}
	if a <= 0 {
		return true
	}
	return a > b
}
