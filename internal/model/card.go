package model

// CardEffectType classifies a single declared effect on a card.
type CardEffectType string

const (
	EffectDamage      CardEffectType = "damage"       // deal Amount to the target
	EffectHeal        CardEffectType = "heal"         // restore Amount (applied by the coordinator)
	EffectApplyStatus CardEffectType = "apply_status" // put Status on the target for Turns
	EffectDraw        CardEffectType = "draw"         // draw Amount cards
)

// CardEffect is one declared effect of a card. Only EffectDamage entries
// matter to the damage pipeline; the rest are carried so real cards
// round-trip through loading and the deck runtime.
type CardEffect struct {
	Type    CardEffectType `yaml:"type"`
	Amount  int32          `yaml:"amount,omitempty"`
	Status  string         `yaml:"status,omitempty"`
	Potency int32          `yaml:"potency,omitempty"`
	Turns   int32          `yaml:"turns,omitempty"`
}

// CardTemplate is the immutable definition of a card, loaded once at boot.
type CardTemplate struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Cost    int32        `yaml:"cost"`
	Effects []CardEffect `yaml:"effects"`
}

// DamageSum returns the total of all damage-typed effect amounts.
// Effect order on the card does not matter here. Returns 0 for a nil card.
func (c *CardTemplate) DamageSum() int32 {
	if c == nil {
		return 0
	}
	var sum int32
	for _, e := range c.Effects {
		if e.Type == EffectDamage {
			sum += e.Amount
		}
	}
	return sum
}
