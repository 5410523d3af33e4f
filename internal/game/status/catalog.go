package status

// Effect names known to the combat system. Cards and the HTTP API refer
// to effects by these names; anything outside the catalog is rejected.
const (
	EffectStrength   = "Strength"   // flat offensive bonus, potency stacks
	EffectCurse      = "Curse"      // flat outgoing damage penalty, potency stacks
	EffectWeak       = "Weak"       // outgoing damage ×0.75 while present
	EffectBreak      = "Break"      // incoming damage ×1.5 while present
	EffectArmor      = "Armor"      // subtracts potency from incoming damage, min 1 lands
	EffectCriticalUp = "CriticalUp" // +potency percent points of crit chance
	EffectThorns     = "Thorns"     // reflection potency, applied by the coordinator
)

// Multipliers contributed by presence-based effects.
const (
	weakDealtMult  = 0.75
	breakTakenMult = 1.5
)

// StackRule decides what Apply does when an effect with the same name is
// already active.
type StackRule byte

const (
	// StackAddPotency sums potencies and keeps the longer duration.
	StackAddPotency StackRule = iota
	// StackRefresh keeps the existing potency and resets the duration.
	StackRefresh
	// StackKeepHighest keeps whichever instance has the higher potency.
	StackKeepHighest
)

// Definition describes one catalog entry.
type Definition struct {
	Name     string
	Stacking StackRule
}

// catalog is the fixed set of effects the game knows about.
var catalog = map[string]Definition{
	EffectStrength:   {Name: EffectStrength, Stacking: StackAddPotency},
	EffectCurse:      {Name: EffectCurse, Stacking: StackAddPotency},
	EffectWeak:       {Name: EffectWeak, Stacking: StackRefresh},
	EffectBreak:      {Name: EffectBreak, Stacking: StackRefresh},
	EffectArmor:      {Name: EffectArmor, Stacking: StackKeepHighest},
	EffectCriticalUp: {Name: EffectCriticalUp, Stacking: StackAddPotency},
	EffectThorns:     {Name: EffectThorns, Stacking: StackKeepHighest},
}

// Lookup returns the catalog definition for name.
func Lookup(name string) (Definition, bool) {
	def, ok := catalog[name]
	return def, ok
}

// Known reports whether name is a catalog effect.
func Known(name string) bool {
	_, ok := catalog[name]
	return ok
}
