// Package user implements account and onboarding-profile persistence.
package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coinpulse/backend/pkg/storage"
)

// Schema is the SQLite schema for user accounts.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    email                TEXT NOT NULL UNIQUE,
    name                 TEXT NOT NULL DEFAULT '',
    password_hash        TEXT NOT NULL,
    investor_type        TEXT NOT NULL DEFAULT '',
    crypto_interests     TEXT NOT NULL DEFAULT '[]',
    content_preferences  TEXT NOT NULL DEFAULT '[]',
    onboarding_completed INTEGER NOT NULL DEFAULT 0,
    created_at           TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`

// Store provides persistence for users.
type Store struct {
	db *storage.DB
}

// NewStore creates a new user store.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db}
}

// User represents an account together with its onboarding profile.
type User struct {
	ID                  int
	Email               string
	Name                string
	PasswordHash        string
	InvestorType        string
	CryptoInterests     []string
	ContentPreferences  []string
	OnboardingCompleted bool
}

// Create inserts a new user.
func (s *Store) Create(ctx context.Context, email, name, passwordHash string) (int, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?)`,
		email, name, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

// GetByEmail finds a user by email. Returns nil, nil when not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	return s.get(ctx, `SELECT id, email, name, password_hash, investor_type,
		crypto_interests, content_preferences, onboarding_completed
		FROM users WHERE email = ?`, email)
}

// GetByID finds a user by primary key. Returns nil, nil when not found.
func (s *Store) GetByID(ctx context.Context, id int) (*User, error) {
	return s.get(ctx, `SELECT id, email, name, password_hash, investor_type,
		crypto_interests, content_preferences, onboarding_completed
		FROM users WHERE id = ?`, id)
}

func (s *Store) get(ctx context.Context, query string, arg any) (*User, error) {
	row := s.db.QueryRowContext(ctx, query, arg)

	u := &User{}
	var interests, preferences string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.InvestorType,
		&interests, &preferences, &u.OnboardingCompleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	_ = json.Unmarshal([]byte(interests), &u.CryptoInterests)
	_ = json.Unmarshal([]byte(preferences), &u.ContentPreferences)
	return u, nil
}

// CompleteOnboarding stores the user's investment profile and marks
// onboarding done.
func (s *Store) CompleteOnboarding(ctx context.Context, id int, investorType string, cryptoInterests, contentPreferences []string) error {
	interests, _ := json.Marshal(cryptoInterests)
	preferences, _ := json.Marshal(contentPreferences)

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET investor_type = ?, crypto_interests = ?,
			content_preferences = ?, onboarding_completed = 1 WHERE id = ?`,
		investorType, string(interests), string(preferences), id)
	if err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}
