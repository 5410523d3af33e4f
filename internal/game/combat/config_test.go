package combat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/cardduel/internal/game/status"
	"github.com/udisondev/cardduel/internal/model"
)

func TestTunablesSwap(t *testing.T) {
	tun := NewTunables(Config{CriticalHitsEnabled: false})
	assert.False(t, tun.Load().CriticalHitsEnabled)

	tun.Store(Config{
		CriticalHitsEnabled: true,
		BaseCriticalChance:  0.2,
		CriticalHitModifier: 3.0,
	})

	cfg := tun.Load()
	assert.True(t, cfg.CriticalHitsEnabled)
	assert.Equal(t, 0.2, cfg.BaseCriticalChance)
	assert.Equal(t, 3.0, cfg.CriticalHitModifier)
}

func TestTunablesSwapAffectsNextResolution(t *testing.T) {
	source := model.NewCombatant(1, "source", nil)
	target := model.NewCombatant(2, "target", nil)
	agg := stubAggregator{1: status.Neutral(), 2: status.Neutral()}

	tun := NewTunables(Config{
		CriticalHitsEnabled: true,
		BaseCriticalChance:  1.0,
		CriticalHitModifier: 2.0,
	})
	r := NewResolver(tun, agg, fixedRNG(0.5))

	res := r.ResolveAmount(source, target, 10)
	assert.True(t, res.Crit)
	assert.Equal(t, int32(20), res.Damage)

	// Live retune: the next computation reads the new config.
	tun.Store(Config{CriticalHitsEnabled: false})
	res = r.ResolveAmount(source, target, 10)
	assert.False(t, res.Crit)
	assert.Equal(t, int32(10), res.Damage)
}

func TestConcurrentResolutions(t *testing.T) {
	// One resolver instance serves parallel computations for independent
	// pairs; the system RNG is safe for concurrent draws.
	tun := NewTunables(DefaultConfig())
	r := NewResolver(tun, SheetAggregator{}, DefaultRNG())

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id uint32) {
			defer wg.Done()
			sheet := status.NewSheet()
			sheet.Apply(status.EffectStrength, 2, 0)
			source := model.NewCombatant(id*2+1, "source", sheet)
			target := model.NewCombatant(id*2+2, "target", status.NewSheet())
			for range 100 {
				res := r.ResolveAmount(source, target, 10)
				if res.Damage < 12 {
					t.Errorf("damage %d below non-crit floor 12", res.Damage)
					return
				}
			}
		}(uint32(i))
	}
	wg.Wait()
}
