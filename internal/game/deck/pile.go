// Package deck implements the per-player card pile state machine:
// draw pile, hand, and discard pile.
package deck

import (
	"log/slog"
	"math/rand/v2"
	"sync"
)

// DefaultHandSize caps the hand when no explicit size is configured.
const DefaultHandSize = 10

// Pile tracks one player's cards across draw, hand, and discard piles.
// Cards are referenced by template ID; duplicates are distinct copies.
//
// Thread-safe. The random source is injected so shuffles are
// reproducible under a fixed seed.
type Pile struct {
	mu       sync.Mutex
	rng      *rand.Rand
	draw     []string
	hand     []string
	discard  []string
	handSize int
}

// NewPile creates a pile with all cards in the draw pile, unshuffled.
// handSize <= 0 falls back to DefaultHandSize. A nil rng gets a
// randomly-seeded source.
func NewPile(cards []string, handSize int, rng *rand.Rand) *Pile {
	if handSize <= 0 {
		handSize = DefaultHandSize
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	draw := make([]string, len(cards))
	copy(draw, cards)
	return &Pile{rng: rng, draw: draw, handSize: handSize}
}

// Shuffle randomizes the draw pile order.
func (p *Pile) Shuffle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shuffleLocked()
}

func (p *Pile) shuffleLocked() {
	p.rng.Shuffle(len(p.draw), func(i, j int) {
		p.draw[i], p.draw[j] = p.draw[j], p.draw[i]
	})
}

// Draw moves up to n cards from the draw pile to the hand and returns
// them. When the draw pile runs dry the discard pile is shuffled back in.
// Drawing stops early if the hand cap is reached or no cards remain
// anywhere.
func (p *Pile) Draw(n int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var drawn []string
	for range n {
		if len(p.hand) >= p.handSize {
			slog.Debug("hand full, stopping draw", "hand_size", p.handSize)
			break
		}
		if len(p.draw) == 0 {
			if len(p.discard) == 0 {
				break
			}
			// Reshuffle the discard pile into a fresh draw pile.
			p.draw = p.discard
			p.discard = nil
			p.shuffleLocked()
		}
		card := p.draw[0]
		p.draw = p.draw[1:]
		p.hand = append(p.hand, card)
		drawn = append(drawn, card)
	}
	return drawn
}

// Discard moves one copy of the given card from the hand to the discard
// pile. Returns false if the card is not in hand.
func (p *Pile) Discard(cardID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, id := range p.hand {
		if id == cardID {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			p.discard = append(p.discard, id)
			return true
		}
	}
	return false
}

// DiscardHand moves the entire hand to the discard pile (end of turn).
func (p *Pile) DiscardHand() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.discard = append(p.discard, p.hand...)
	p.hand = p.hand[:0]
}

// Hand returns a copy of the current hand.
func (p *Pile) Hand() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.hand))
	copy(out, p.hand)
	return out
}

// Counts returns the sizes of the draw, hand, and discard piles.
func (p *Pile) Counts() (draw, hand, discard int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.draw), len(p.hand), len(p.discard)
}
