// Package world tracks the live combatants known to the server.
package world

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/cardduel/internal/game/status"
	"github.com/udisondev/cardduel/internal/model"
)

// Combatant object IDs start here; 0 is reserved for invalid handles.
const firstObjectID uint32 = 0x10000000

// Roster is the registry of live combatants. Constructed explicitly and
// passed to whoever needs it; there is no package-level instance.
//
// Thread-safe: lookups take an RLock, ID generation is atomic.
type Roster struct {
	mu     sync.RWMutex
	byID   map[uint32]*model.Combatant
	nextID atomic.Uint32
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	r := &Roster{byID: make(map[uint32]*model.Combatant)}
	r.nextID.Store(firstObjectID)
	return r
}

// NextID generates the next unique object ID.
func (r *Roster) NextID() uint32 {
	return r.nextID.Add(1)
}

// Spawn creates a combatant with a fresh status sheet, registers it,
// and returns the handle.
func (r *Roster) Spawn(name string) *model.Combatant {
	c := model.NewCombatant(r.NextID(), name, status.NewSheet())
	r.Add(c)
	return c
}

// Add registers a combatant. A nil combatant is ignored.
func (r *Roster) Add(c *model.Combatant) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID()] = c
}

// Get returns the combatant with the given object ID.
func (r *Roster) Get(id uint32) (*model.Combatant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	return c, ok
}

// Remove unregisters the combatant with the given object ID.
func (r *Roster) Remove(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// Len returns the number of registered combatants.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
