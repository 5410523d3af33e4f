package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/cardduel/internal/model"
)

// AccountRepository stores player accounts. Passwords are hashed with
// bcrypt; the plaintext never touches the database.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a repository over the given pool.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account with a bcrypt-hashed password.
func (r *AccountRepository) Create(ctx context.Context, login, password string) error {
	login = strings.ToLower(login)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password for %q: %w", login, err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO accounts (login, password, created_at, last_active)
		 VALUES ($1, $2, $3, $3)`,
		login, string(hash), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("creating account %q: %w", login, err)
	}
	slog.Info("created account", "login", login)
	return nil
}

// Get retrieves an account by login.
// Returns nil, nil if the account does not exist.
func (r *AccountRepository) Get(ctx context.Context, login string) (*model.Account, error) {
	login = strings.ToLower(login)
	var acc model.Account
	err := r.pool.QueryRow(ctx,
		`SELECT login, password, created_at, last_active
		 FROM accounts WHERE login = $1`, login,
	).Scan(&acc.Login, &acc.PasswordHash, &acc.CreatedAt, &acc.LastActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying account %q: %w", login, err)
	}
	return &acc, nil
}

// Authenticate checks the password against the stored bcrypt hash and
// touches last_active on success. Returns false for unknown accounts.
func (r *AccountRepository) Authenticate(ctx context.Context, login, password string) (bool, error) {
	acc, err := r.Get(ctx, login)
	if err != nil {
		return false, err
	}
	if acc == nil {
		return false, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return false, nil
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE accounts SET last_active = $1 WHERE login = $2`,
		time.Now(), strings.ToLower(login),
	)
	if err != nil {
		return false, fmt.Errorf("updating last active for %q: %w", login, err)
	}
	return true, nil
}
