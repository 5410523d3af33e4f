package model

import "time"

// Account represents a player account stored in the database.
type Account struct {
	Login        string
	PasswordHash string
	CreatedAt    time.Time
	LastActive   time.Time
}

// DeckEntry is one saved deck line: a card ID and how many copies the
// deck contains.
type DeckEntry struct {
	CardID string
	Copies int32
}
