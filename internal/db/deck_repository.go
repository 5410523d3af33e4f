package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/cardduel/internal/model"
)

// DeckRepository stores a player's saved deck list.
type DeckRepository struct {
	pool *pgxpool.Pool
}

// NewDeckRepository creates a repository over the given pool.
func NewDeckRepository(pool *pgxpool.Pool) *DeckRepository {
	return &DeckRepository{pool: pool}
}

// Save replaces the saved deck for login with the given entries,
// atomically: the old list is removed and the new one inserted in one
// transaction.
func (r *DeckRepository) Save(ctx context.Context, login string, entries []model.DeckEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning deck save for %q: %w", login, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM decks WHERE login = $1`, login); err != nil {
		return fmt.Errorf("clearing deck for %q: %w", login, err)
	}
	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO decks (login, card_id, copies) VALUES ($1, $2, $3)`,
			login, e.CardID, e.Copies,
		); err != nil {
			return fmt.Errorf("saving deck entry %q for %q: %w", e.CardID, login, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing deck save for %q: %w", login, err)
	}
	return nil
}

// Load returns the saved deck for login, or an empty list if none.
func (r *DeckRepository) Load(ctx context.Context, login string) ([]model.DeckEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT card_id, copies FROM decks WHERE login = $1 ORDER BY card_id`, login)
	if err != nil {
		return nil, fmt.Errorf("querying deck for %q: %w", login, err)
	}
	defer rows.Close()

	var entries []model.DeckEntry
	for rows.Next() {
		var e model.DeckEntry
		if err := rows.Scan(&e.CardID, &e.Copies); err != nil {
			return nil, fmt.Errorf("scanning deck entry for %q: %w", login, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading deck for %q: %w", login, err)
	}
	return entries, nil
}
