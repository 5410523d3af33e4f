package status

// Snapshot is an immutable view of a combatant's status-derived quantities,
// captured once per damage computation and discarded after it. The damage
// pipeline reads only this value, never the live Sheet.
type Snapshot struct {
	// Strength is the flat offensive bonus (≥ 0).
	Strength int32
	// DamageModification is the signed flat adjustment from curse-type
	// effects; negative values reduce outgoing damage.
	DamageModification int32
	// DamageDealtMult scales outgoing damage (1.0 = neutral).
	DamageDealtMult float64
	// DamageTakenMult scales incoming damage (1.0 = neutral).
	DamageTakenMult float64

	effects map[string]int32
}

// Neutral returns the snapshot of a combatant with no active effects.
// Used as the missing-data fallback: a combatant without a status sheet
// behaves as if nothing affects it.
func Neutral() Snapshot {
	return Snapshot{
		DamageDealtMult: 1.0,
		DamageTakenMult: 1.0,
	}
}

// NewSnapshot builds a snapshot from explicit quantities. Intended for
// StatusAggregator implementations that derive status from something
// other than a Sheet. The effects map is copied.
func NewSnapshot(strength, damageModification int32, dealtMult, takenMult float64, effects map[string]int32) Snapshot {
	snap := Snapshot{
		Strength:           strength,
		DamageModification: damageModification,
		DamageDealtMult:    dealtMult,
		DamageTakenMult:    takenMult,
	}
	if len(effects) > 0 {
		snap.effects = make(map[string]int32, len(effects))
		for name, potency := range effects {
			snap.effects[name] = potency
		}
	}
	return snap
}

// HasEffect reports whether a named effect was active at capture time.
func (s Snapshot) HasEffect(name string) bool {
	_, ok := s.effects[name]
	return ok
}

// EffectPotency returns the captured potency of a named effect,
// or 0 if the effect was not active.
func (s Snapshot) EffectPotency(name string) int32 {
	return s.effects[name]
}
