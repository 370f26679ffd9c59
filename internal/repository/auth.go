// Package repository provides persistence implementations for the lead
// domain using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// PostgresAuthRepository implements user and session persistence against a
// PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given
// database connection.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// GetUserByEmail fetches the user record for the given email.
// Returns models.ErrNotFound when no such user exists.
func (r *PostgresAuthRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return &u, nil
}

// RegisterUser creates a new user record. The ON CONFLICT DO NOTHING clause
// keeps repeated registration attempts from erroring.
func (r *PostgresAuthRepository) RegisterUser(ctx context.Context, id, email string, passwordHash []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING
	`, id, email, passwordHash)
	return err
}

// CreateSession stores a session token for the user.
func (r *PostgresAuthRepository) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)
	`, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("CreateSession: %w", err)
	}
	return nil
}

// GetSessionOwner resolves a session token to its owning user id. Expired or
// unknown tokens return models.ErrNotFound.
func (r *PostgresAuthRepository) GetSessionOwner(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id FROM sessions WHERE token = $1 AND expires_at > NOW()
	`, token).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("GetSessionOwner: %w", err)
	}
	return userID, nil
}

// DeleteSession removes a session token.
func (r *PostgresAuthRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
