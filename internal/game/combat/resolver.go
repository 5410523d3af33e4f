package combat

import (
	"log/slog"
	"math"

	"github.com/udisondev/cardduel/internal/game/status"
	"github.com/udisondev/cardduel/internal/model"
)

// Diagnostic classifies why a resolution returned the value it did.
// All diagnostics are non-fatal: the resolver is a total function and
// always returns a valid non-negative damage value. Callers that need to
// tell "zero because no damage" from "zero because of bad input" inspect
// the diagnostic, not the number.
type Diagnostic byte

const (
	// DiagNone means the computation ran normally.
	DiagNone Diagnostic = iota
	// DiagInvalidParticipants means source or target was absent; damage forced to 0.
	DiagInvalidParticipants
	// DiagNoDamageEffects means the card carried no positive damage
	// contribution; damage forced to 0.
	DiagNoDamageEffects
	// DiagMissingStatusData means a participant had no resolvable status
	// snapshot; neutral defaults were used and the computation completed.
	DiagMissingStatusData
)

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	switch d {
	case DiagNone:
		return "none"
	case DiagInvalidParticipants:
		return "invalid_participants"
	case DiagNoDamageEffects:
		return "no_damage_effects"
	case DiagMissingStatusData:
		return "missing_status_data"
	default:
		return "unknown"
	}
}

// Result is the outcome of one damage resolution.
type Result struct {
	// Damage is the final amount, always >= 0.
	Damage int32
	// Crit reports whether the critical-hit stage fired.
	Crit bool
	// Diag classifies degraded or short-circuited computations.
	Diag Diagnostic
}

// Resolver computes final damage values from base amounts and the
// participants' status snapshots. It is stateless between calls: one
// instance may serve concurrent computations, provided the injected
// RandomSource is safe for concurrent use.
//
// The resolver never mutates entity state and never applies the result
// to anyone's health; that is the coordinator's job.
type Resolver struct {
	cfg      ConfigSource
	statuses StatusAggregator
	rng      RandomSource
}

// NewResolver creates a Resolver. Nil statuses defaults to SheetAggregator;
// nil rng defaults to the system random source.
func NewResolver(cfg ConfigSource, statuses StatusAggregator, rng RandomSource) *Resolver {
	if statuses == nil {
		statuses = SheetAggregator{}
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Resolver{cfg: cfg, statuses: statuses, rng: rng}
}

// ResolveCard sums the card's damage-typed effects and resolves the total.
// A nil card or a card with no positive damage contribution yields 0 with
// DiagNoDamageEffects.
func (r *Resolver) ResolveCard(source, target *model.Combatant, card *model.CardTemplate) Result {
	base := card.DamageSum()
	if base == 0 {
		slog.Debug("card has no damage effects", "card", cardID(card))
		return Result{Diag: DiagNoDamageEffects}
	}
	return r.ResolveAmount(source, target, base)
}

// ResolveAmount runs the modifier pipeline over baseDamage.
//
// Stage order is load-bearing for game balance:
//
//	1. flat source adjustment (damage modification + strength, one step)
//	2. clamp at zero
//	3. source damage-dealt multiplier
//	4. target damage-taken multiplier
//	5. armor floor: max(1, working - armor potency)
//	6. critical hit
//	7. round half away from zero — the single rounding point
//
// Strength is intentionally added before the multipliers, so outgoing
// multipliers scale it too. Armor is the only stage with a positive
// floor: an armored target still takes at least 1 once a hit landed.
func (r *Resolver) ResolveAmount(source, target *model.Combatant, baseDamage int32) Result {
	if source == nil || target == nil {
		slog.Warn("damage resolution with absent participant",
			"source", combatantID(source), "target", combatantID(target))
		return Result{Diag: DiagInvalidParticipants}
	}
	if baseDamage <= 0 {
		// Damage-negation and zero-damage utility cards short-circuit
		// here with no modifiers applied.
		return Result{}
	}

	// One atomic config read per computation.
	cfg := r.cfg.Load()

	diag := DiagNone
	src, ok := r.statuses.Snapshot(source)
	if !ok {
		slog.Debug("no status data for source, using neutral defaults", "source", source.ID())
		diag = DiagMissingStatusData
	}
	tgt, ok := r.statuses.Snapshot(target)
	if !ok {
		slog.Debug("no status data for target, using neutral defaults", "target", target.ID())
		diag = DiagMissingStatusData
	}

	working := float64(baseDamage + src.DamageModification + src.Strength)
	working = math.Max(working, 0)
	working *= src.DamageDealtMult
	working *= tgt.DamageTakenMult

	if tgt.HasEffect(status.EffectArmor) {
		armor := tgt.EffectPotency(status.EffectArmor)
		working = math.Max(1, working-float64(armor))
	}

	crit := false
	if cfg.CriticalHitsEnabled {
		crit = rollCrit(critChance(cfg, src), r.rng.Float64())
		if crit {
			working *= cfg.CriticalHitModifier
		}
	}

	return Result{Damage: roundHalfAway(working), Crit: crit, Diag: diag}
}

// critChance computes the effective crit probability for the source.
// CriticalUp potency is percent points. The sum is deliberately not
// clamped to [0, 1]: config sanity is the caller's responsibility and
// stacked CriticalUp may push past certainty.
func critChance(cfg Config, src status.Snapshot) float64 {
	chance := cfg.BaseCriticalChance
	if src.HasEffect(status.EffectCriticalUp) {
		chance += float64(src.EffectPotency(status.EffectCriticalUp)) / 100.0
	}
	return chance
}

// rollCrit is a pure function of the chance and one uniform draw in [0, 1).
func rollCrit(chance, draw float64) bool {
	return draw < chance
}

// roundHalfAway rounds half away from zero. The pipeline keeps
// intermediate values in floating point; this is the only rounding point.
// w is never negative by the time it gets here.
func roundHalfAway(w float64) int32 {
	return int32(math.Floor(w + 0.5))
}

func cardID(card *model.CardTemplate) string {
	if card == nil {
		return "<nil>"
	}
	return card.ID
}

func combatantID(c *model.Combatant) uint32 {
	if c == nil {
		return 0
	}
	return c.ID()
}
