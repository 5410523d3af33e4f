package data

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// DeckList is a named starter deck definition referencing card IDs.
type DeckList struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name"`
	Cards []DeckEntry `yaml:"cards"`
}

// DeckEntry is one line of a deck list.
type DeckEntry struct {
	CardID string `yaml:"card_id"`
	Copies int32  `yaml:"copies"`
}

// CardIDs expands the deck list into one ID per copy, in list order.
func (d *DeckList) CardIDs() []string {
	var out []string
	for _, e := range d.Cards {
		for range e.Copies {
			out = append(out, e.CardID)
		}
	}
	return out
}

// deckTable — global registry of starter decks, keyed by deck ID.
var deckTable map[string]*DeckList

type deckFile struct {
	Decks []DeckList `yaml:"decks"`
}

// LoadDecks parses the embedded starter deck lists. Must run after
// LoadCards: every referenced card ID is checked against the card table.
func LoadDecks() error {
	raw, err := assets.ReadFile("decks.yaml")
	if err != nil {
		return fmt.Errorf("reading embedded decks.yaml: %w", err)
	}
	table, err := parseDecks(raw)
	if err != nil {
		return fmt.Errorf("parsing decks.yaml: %w", err)
	}
	deckTable = table
	slog.Info("loaded starter decks", "count", len(deckTable))
	return nil
}

func parseDecks(raw []byte) (map[string]*DeckList, error) {
	var f deckFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	table := make(map[string]*DeckList, len(f.Decks))
	for i := range f.Decks {
		deck := &f.Decks[i]
		if deck.ID == "" {
			return nil, fmt.Errorf("deck %d has empty id", i)
		}
		if _, dup := table[deck.ID]; dup {
			return nil, fmt.Errorf("duplicate deck id %q", deck.ID)
		}
		seen := make(map[string]bool, len(deck.Cards))
		for _, e := range deck.Cards {
			if _, ok := cardTable[e.CardID]; !ok {
				return nil, fmt.Errorf("deck %q references unknown card %q", deck.ID, e.CardID)
			}
			if e.Copies <= 0 {
				return nil, fmt.Errorf("deck %q: card %q has non-positive copies %d", deck.ID, e.CardID, e.Copies)
			}
			if seen[e.CardID] {
				return nil, fmt.Errorf("deck %q lists card %q twice", deck.ID, e.CardID)
			}
			seen[e.CardID] = true
		}
		table[deck.ID] = deck
	}
	return table, nil
}

// GetDeckList returns the starter deck with the given ID.
func GetDeckList(id string) (*DeckList, bool) {
	deck, ok := deckTable[id]
	return deck, ok
}

// DeckLists returns all loaded starter decks.
func DeckLists() []*DeckList {
	out := make([]*DeckList, 0, len(deckTable))
	for _, deck := range deckTable {
		out = append(out, deck)
	}
	return out
}
