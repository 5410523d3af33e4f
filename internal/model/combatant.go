package model

import "github.com/udisondev/cardduel/internal/game/status"

// Combatant is an opaque participant handle. Identity is the object ID;
// two handles are the same combatant iff their IDs are equal.
//
// The attached status sheet is optional: a freshly spawned combatant may
// have none, in which case the combat pipeline falls back to neutral
// status values.
type Combatant struct {
	id    uint32
	name  string
	sheet *status.Sheet
}

// NewCombatant creates a combatant handle. sheet may be nil.
func NewCombatant(id uint32, name string, sheet *status.Sheet) *Combatant {
	return &Combatant{id: id, name: name, sheet: sheet}
}

// ID returns the combatant's object ID.
func (c *Combatant) ID() uint32 { return c.id }

// Name returns the combatant's display name.
func (c *Combatant) Name() string { return c.name }

// Sheet returns the attached status sheet, or nil if none.
func (c *Combatant) Sheet() *status.Sheet { return c.sheet }
