// Package repository provides persistence implementations for the lead
// domain using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// PostgresNoteRepository implements note persistence against a PostgreSQL database.
type PostgresNoteRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository with the given
// database connection.
func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{DB: db}
}

// ListNotes returns the owner's notes for one lead, newest first.
func (r *PostgresNoteRepository) ListNotes(ctx context.Context, ownerID string, leadID int64) ([]models.Note, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, lead_id, content, created_at, user_id FROM notes
		WHERE user_id = $1 AND lead_id = $2
		ORDER BY created_at DESC
	`, ownerID, leadID)
	if err != nil {
		return nil, fmt.Errorf("ListNotes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.LeadID, &n.Content, &n.CreatedAt, &n.OwnerID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// AddNote appends a note to the owner's lead.
func (r *PostgresNoteRepository) AddNote(ctx context.Context, ownerID string, leadID int64, content string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO notes (lead_id, content, user_id) VALUES ($1, $2, $3)
	`, leadID, content, ownerID)
	if err != nil {
		return fmt.Errorf("AddNote: %w", err)
	}
	return nil
}

// DeleteNote removes the owner's note.
func (r *PostgresNoteRepository) DeleteNote(ctx context.Context, ownerID string, id int64) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM notes WHERE user_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return fmt.Errorf("DeleteNote: %w", err)
	}
	return nil
}
