package data

import (
	"embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/cardduel/internal/game/status"
	"github.com/udisondev/cardduel/internal/model"
)

//go:embed cards.yaml decks.yaml
var assets embed.FS

// cardTable — global registry of all card templates, keyed by card ID.
// Populated once by LoadCards at boot; read-only afterwards.
var cardTable map[string]*model.CardTemplate

// cardOrder keeps the declaration order for Cards().
var cardOrder []string

type cardFile struct {
	Cards []model.CardTemplate `yaml:"cards"`
}

// LoadCards parses the embedded card catalog into the registry.
func LoadCards() error {
	raw, err := assets.ReadFile("cards.yaml")
	if err != nil {
		return fmt.Errorf("reading embedded cards.yaml: %w", err)
	}
	table, order, err := parseCards(raw)
	if err != nil {
		return fmt.Errorf("parsing cards.yaml: %w", err)
	}
	cardTable = table
	cardOrder = order
	slog.Info("loaded card templates", "count", len(cardTable))
	return nil
}

// parseCards parses and validates a card catalog document.
func parseCards(raw []byte) (map[string]*model.CardTemplate, []string, error) {
	var f cardFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, err
	}

	table := make(map[string]*model.CardTemplate, len(f.Cards))
	order := make([]string, 0, len(f.Cards))
	for i := range f.Cards {
		card := &f.Cards[i]
		if card.ID == "" {
			return nil, nil, fmt.Errorf("card %d has empty id", i)
		}
		if _, dup := table[card.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		if err := validateCard(card); err != nil {
			return nil, nil, fmt.Errorf("card %q: %w", card.ID, err)
		}
		table[card.ID] = card
		order = append(order, card.ID)
	}
	return table, order, nil
}

// validateCard checks every declared effect of one card.
func validateCard(card *model.CardTemplate) error {
	if len(card.Effects) == 0 {
		return fmt.Errorf("no effects")
	}
	if card.Cost < 0 {
		return fmt.Errorf("negative cost %d", card.Cost)
	}
	for i, e := range card.Effects {
		switch e.Type {
		case model.EffectDamage, model.EffectHeal, model.EffectDraw:
			if e.Amount < 0 {
				return fmt.Errorf("effect %d: negative amount %d", i, e.Amount)
			}
		case model.EffectApplyStatus:
			if !status.Known(e.Status) {
				return fmt.Errorf("effect %d: unknown status %q", i, e.Status)
			}
		default:
			return fmt.Errorf("effect %d: unknown type %q", i, e.Type)
		}
	}
	return nil
}

// GetCard returns the card template for id.
func GetCard(id string) (*model.CardTemplate, bool) {
	card, ok := cardTable[id]
	return card, ok
}

// Cards returns all card templates in declaration order.
func Cards() []*model.CardTemplate {
	out := make([]*model.CardTemplate, 0, len(cardOrder))
	for _, id := range cardOrder {
		out = append(out, cardTable[id])
	}
	return out
}
