package combat

import (
	"github.com/udisondev/cardduel/internal/game/status"
	"github.com/udisondev/cardduel/internal/model"
)

// StatusAggregator resolves a combatant's status-derived quantities as an
// immutable snapshot, captured once per computation. Snapshot must be
// side-effect-free and safe to call any number of times.
//
// ok is false when the combatant has no resolvable status data; the
// resolver then uses neutral defaults instead of failing.
type StatusAggregator interface {
	Snapshot(c *model.Combatant) (snap status.Snapshot, ok bool)
}

// SheetAggregator is the default StatusAggregator: it reads the status
// sheet attached to the combatant.
type SheetAggregator struct{}

// Snapshot implements StatusAggregator.
func (SheetAggregator) Snapshot(c *model.Combatant) (status.Snapshot, bool) {
	sheet := c.Sheet()
	if sheet == nil {
		return status.Neutral(), false
	}
	return sheet.Snapshot(), true
}
