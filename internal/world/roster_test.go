package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cardduel/internal/model"
)

func TestSpawnRegistersCombatant(t *testing.T) {
	r := NewRoster()

	c := r.Spawn("duelist")
	require.NotNil(t, c)
	assert.NotZero(t, c.ID())
	assert.Equal(t, "duelist", c.Name())
	assert.NotNil(t, c.Sheet(), "spawned combatants get a fresh status sheet")

	got, ok := r.Get(c.ID())
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, 1, r.Len())
}

func TestAddGetRemove(t *testing.T) {
	r := NewRoster()

	c := model.NewCombatant(r.NextID(), "manual", nil)
	r.Add(c)
	assert.Equal(t, 1, r.Len())

	r.Remove(c.ID())
	_, ok := r.Get(c.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	r.Add(nil) // ignored
	assert.Equal(t, 0, r.Len())
}

func TestIDsAreUniqueUnderConcurrency(t *testing.T) {
	r := NewRoster()

	const perWorker = 200
	const workers = 8

	var wg sync.WaitGroup
	ids := make(chan uint32, perWorker*workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				ids <- r.Spawn("c").ID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint32]bool, perWorker*workers)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Equal(t, perWorker*workers, r.Len())
}
