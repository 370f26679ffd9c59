// Package repository provides persistence implementations for the lead
// domain using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// PostgresTaskRepository implements task persistence against a PostgreSQL database.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository with the given
// database connection.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// CreateTask inserts a new open task for the owner's lead.
func (r *PostgresTaskRepository) CreateTask(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO tasks (lead_id, due_date, description, is_completed, user_id)
		VALUES ($1, $2, $3, false, $4)
	`, leadID, dueDate, description, ownerID)
	if err != nil {
		return fmt.Errorf("CreateTask: %w", err)
	}
	return nil
}

// ListOpenTasks returns the owner's incomplete tasks whose lead is not
// archived, ordered by due date ascending. leadID, when non-nil, restricts
// the result to a single lead.
func (r *PostgresTaskRepository) ListOpenTasks(ctx context.Context, ownerID string, leadID *int64) ([]models.TaskWithLead, error) {
	query := `
		SELECT t.id, t.lead_id, t.due_date, t.description, t.is_completed, t.user_id, l.name, l.status
		FROM tasks t
		JOIN leads l ON l.id = t.lead_id
		WHERE t.is_completed = false AND l.is_archived = false AND t.user_id = $1`
	args := []any{ownerID}
	if leadID != nil {
		query += ` AND t.lead_id = $2`
		args = append(args, *leadID)
	}
	query += ` ORDER BY t.due_date`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListOpenTasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.TaskWithLead
	for rows.Next() {
		var t models.TaskWithLead
		if err := rows.Scan(&t.ID, &t.LeadID, &t.DueDate, &t.Description, &t.Completed, &t.OwnerID, &t.LeadName, &t.LeadStatus); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CompleteTask marks the owner's task as completed. Idempotent on retry.
func (r *PostgresTaskRepository) CompleteTask(ctx context.Context, ownerID string, id int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE tasks SET is_completed = true WHERE user_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return fmt.Errorf("CompleteTask: %w", err)
	}
	return nil
}

// UpdateTask replaces the owner's task due date and description.
func (r *PostgresTaskRepository) UpdateTask(ctx context.Context, ownerID string, id int64, dueDate time.Time, description string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE tasks SET due_date = $3, description = $4 WHERE user_id = $1 AND id = $2
	`, ownerID, id, dueDate, description)
	if err != nil {
		return fmt.Errorf("UpdateTask: %w", err)
	}
	return nil
}

// DeleteTask removes the owner's task.
func (r *PostgresTaskRepository) DeleteTask(ctx context.Context, ownerID string, id int64) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM tasks WHERE user_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return fmt.Errorf("DeleteTask: %w", err)
	}
	return nil
}
