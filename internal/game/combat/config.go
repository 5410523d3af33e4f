package combat

import "sync/atomic"

// Config holds the global combat tunables read once at the start of
// every damage computation.
type Config struct {
	// CriticalHitsEnabled gates the crit stage entirely; when false no
	// random draw is consumed.
	CriticalHitsEnabled bool
	// BaseCriticalChance is the crit probability before CriticalUp, in [0, 1].
	BaseCriticalChance float64
	// CriticalHitModifier multiplies damage on a crit, typically > 1.0.
	CriticalHitModifier float64
}

// DefaultConfig returns the stock balance values.
func DefaultConfig() Config {
	return Config{
		CriticalHitsEnabled: true,
		BaseCriticalChance:  0.05,
		CriticalHitModifier: 1.5,
	}
}

// ConfigSource provides the current combat config. Load is called once
// per computation, so a swap between calls never tears a computation.
type ConfigSource interface {
	Load() Config
}

// Tunables is the live-tunable ConfigSource: the current config sits
// behind an atomic pointer and can be swapped at runtime (e.g. by an
// admin balance endpoint) without locking resolvers.
type Tunables struct {
	cfg atomic.Pointer[Config]
}

// NewTunables creates a Tunables holding cfg.
func NewTunables(cfg Config) *Tunables {
	t := &Tunables{}
	t.cfg.Store(&cfg)
	return t
}

// Load returns the current config.
func (t *Tunables) Load() Config {
	return *t.cfg.Load()
}

// Store atomically replaces the current config.
func (t *Tunables) Store(cfg Config) {
	t.cfg.Store(&cfg)
}

// StaticConfig is a ConfigSource that never changes. Handy in tests.
type StaticConfig Config

// Load implements ConfigSource.
func (c StaticConfig) Load() Config { return Config(c) }
