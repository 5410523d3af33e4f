package combat

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies uniform draws in [0, 1). The resolver consumes
// exactly one draw per critical-hit evaluation, so a fixed-sequence or
// seeded implementation makes crit outcomes fully deterministic in tests.
//
// Implementations must be safe for concurrent use, or callers must give
// each goroutine its own source.
type RandomSource interface {
	Float64() float64
}

// systemRNG draws from crypto/rand. Safe for concurrent use.
type systemRNG struct{}

func (systemRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// Top 53 bits give a uniform float in [0, 1).
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the production random source.
func DefaultRNG() RandomSource { return systemRNG{} }

// seededRNG is reproducible: the same seed yields the same draw sequence.
// Not safe for concurrent use; intended for tests and replays.
type seededRNG struct {
	r *rand.Rand
}

// NewSeededRNG returns a deterministic random source for the given seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
