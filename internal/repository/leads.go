// Package repository provides persistence implementations for the lead
// domain using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
	"github.com/lib/pq"
)

const leadColumns = `id, name, industry, address, phone, email, website, contact_person, status, campaign, is_archived, user_id, created_at`

// PostgresLeadRepository implements lead persistence against a PostgreSQL database.
type PostgresLeadRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresLeadRepository creates a new PostgresLeadRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresLeadRepository(db *sql.DB) *PostgresLeadRepository {
	return &PostgresLeadRepository{DB: db}
}

func scanLead(scan func(dest ...any) error) (models.Lead, error) {
	var lead models.Lead
	err := scan(
		&lead.ID, &lead.Name, &lead.Industry, &lead.Address, &lead.Phone,
		&lead.Email, &lead.Website, &lead.ContactPerson, &lead.Status,
		&lead.Campaign, &lead.Archived, &lead.OwnerID, &lead.CreatedAt,
	)
	return lead, err
}

// ListLeads fetches every lead belonging to the given owner, newest id first.
//
//	ctx:     context for cancellation and deadlines
//	ownerID: identifier of the owning user
//
// Returns a slice of models.Lead or an error if the query or scanning fails.
func (r *PostgresLeadRepository) ListLeads(ctx context.Context, ownerID string) ([]models.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE user_id = $1 ORDER BY id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListLeads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// CreateLeads bulk-inserts candidate records for the owner inside one
// transaction. The whole batch fails if any insert fails. Returns the number
// of inserted rows.
func (r *PostgresLeadRepository) CreateLeads(ctx context.Context, ownerID string, candidates []models.Candidate) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range candidates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO leads (name, industry, address, phone, email, website, contact_person, status, campaign, is_archived, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, c.Name, c.Industry, c.Address, c.Phone, c.Email, c.Website, c.ContactPerson, c.Status, c.Campaign, c.Archived, ownerID)
		if err != nil {
			return 0, fmt.Errorf("insert lead: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(candidates), nil
}

// GetLead retrieves a single lead by ID for the given owner.
// Returns models.ErrNotFound when no matching row exists.
func (r *PostgresLeadRepository) GetLead(ctx context.Context, ownerID string, id int64) (*models.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE user_id = $1 AND id = $2
	`, ownerID, id)
	lead, err := scanLead(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetLead: %w", err)
	}
	return &lead, nil
}

// ListCampaignNames returns the distinct non-null campaign labels among the
// owner's leads matching the archived flag, sorted ascending.
func (r *PostgresLeadRepository) ListCampaignNames(ctx context.Context, ownerID string, archived bool) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT campaign FROM leads
		WHERE user_id = $1 AND is_archived = $2 AND campaign IS NOT NULL
		ORDER BY campaign
	`, ownerID, archived)
	if err != nil {
		return nil, fmt.Errorf("ListCampaignNames: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListLeadSummaries returns the id/name/campaign projection of the owner's
// leads matching the archived flag, sorted by name.
func (r *PostgresLeadRepository) ListLeadSummaries(ctx context.Context, ownerID string, archived bool) ([]models.LeadSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, campaign FROM leads
		WHERE user_id = $1 AND is_archived = $2
		ORDER BY name
	`, ownerID, archived)
	if err != nil {
		return nil, fmt.Errorf("ListLeadSummaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.LeadSummary
	for rows.Next() {
		var s models.LeadSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Campaign); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// UpdateLeadStatus sets a single lead's status. status may be nil to unset it.
func (r *PostgresLeadRepository) UpdateLeadStatus(ctx context.Context, ownerID string, id int64, status *string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE leads SET status = $3 WHERE user_id = $1 AND id = $2
	`, ownerID, id, status)
	if err != nil {
		return fmt.Errorf("UpdateLeadStatus: %w", err)
	}
	return nil
}

// UpdateLead applies a partial field update to one lead. Only columns named
// in models.LeadColumns are accepted; unknown keys are an error.
func (r *PostgresLeadRepository) UpdateLead(ctx context.Context, ownerID string, id int64, fields models.FieldSet) error {
	if len(fields) == 0 {
		return nil
	}

	allowed := make(map[string]bool, len(models.LeadColumns))
	for _, col := range models.LeadColumns {
		allowed[col] = true
	}

	sets := make([]string, 0, len(fields))
	args := []any{ownerID, id}
	// Iterate the declared column order so the statement is deterministic.
	for _, col := range models.LeadColumns {
		val, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	for col := range fields {
		if !allowed[col] {
			return fmt.Errorf("UpdateLead: unknown column %q", col)
		}
	}

	query := `UPDATE leads SET ` + strings.Join(sets, ", ") + ` WHERE user_id = $1 AND id = $2`
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("UpdateLead: %w", err)
	}
	return nil
}

// DeleteLeads removes leads by their IDs for the specified owner.
func (r *PostgresLeadRepository) DeleteLeads(ctx context.Context, ownerID string, ids []int64) error {
	query := `DELETE FROM leads WHERE user_id = $1 AND id = ANY($2)`
	_, err := r.DB.ExecContext(ctx, query, ownerID, pq.Array(ids))
	return err
}

// SetCampaignArchived toggles the archived flag on every lead of the owner
// sharing the campaign label. Idempotent.
func (r *PostgresLeadRepository) SetCampaignArchived(ctx context.Context, ownerID, campaign string, archived bool) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE leads SET is_archived = $3 WHERE user_id = $1 AND campaign = $2
	`, ownerID, campaign, archived)
	if err != nil {
		return fmt.Errorf("SetCampaignArchived: %w", err)
	}
	return nil
}

// PurgeCampaign irreversibly deletes every lead of the owner sharing the
// campaign label. Tasks and notes cascade in the store.
func (r *PostgresLeadRepository) PurgeCampaign(ctx context.Context, ownerID, campaign string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM leads WHERE user_id = $1 AND campaign = $2
	`, ownerID, campaign)
	if err != nil {
		return fmt.Errorf("PurgeCampaign: %w", err)
	}
	return nil
}
