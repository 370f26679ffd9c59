package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdReachMedia/LeadGen-CRM/internal/cache"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// LeadRepository defines the persistence operations needed by the LeadService.
type LeadRepository interface {
	// ListLeads retrieves all leads belonging to the owner, newest id first.
	ListLeads(ctx context.Context, ownerID string) ([]models.Lead, error)
	// CreateLeads bulk-inserts candidates for the owner; the whole batch
	// fails on any store error.
	CreateLeads(ctx context.Context, ownerID string, candidates []models.Candidate) (int, error)
	// GetLead fetches a single lead by id for the owner.
	GetLead(ctx context.Context, ownerID string, id int64) (*models.Lead, error)
	// ListCampaignNames returns distinct campaign labels matching the archived flag.
	ListCampaignNames(ctx context.Context, ownerID string, archived bool) ([]string, error)
	// ListLeadSummaries returns the selection-widget projection.
	ListLeadSummaries(ctx context.Context, ownerID string, archived bool) ([]models.LeadSummary, error)
	// UpdateLeadStatus sets one lead's status, nil to unset.
	UpdateLeadStatus(ctx context.Context, ownerID string, id int64, status *string) error
	// UpdateLead applies a partial field update to one lead.
	UpdateLead(ctx context.Context, ownerID string, id int64, fields models.FieldSet) error
	// DeleteLeads removes leads by id for the owner.
	DeleteLeads(ctx context.Context, ownerID string, ids []int64) error
}

// TaskCreator is the slice of the task engine the lead service needs to spawn
// follow-up tasks while applying a reconciliation plan.
type TaskCreator interface {
	CreateTask(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error
}

// LeadService implements the domain read/write surface over leads.
// Every operation is a no-op returning an empty result when the owner id is
// empty: an unauthenticated caller sees neutral data, never an error.
type LeadService struct {
	repo  LeadRepository
	tasks TaskCreator
	cache *cache.Cache
	now   func() time.Time
}

// NewLeadService constructs a LeadService. c fronts the list/read operations
// and is flushed wholesale after every write.
func NewLeadService(repo LeadRepository, tasks TaskCreator, c *cache.Cache) *LeadService {
	return &LeadService{repo: repo, tasks: tasks, cache: c, now: time.Now}
}

// ListLeads returns every lead of the owner, newest id first. Callers filter
// archived/active themselves.
func (s *LeadService) ListLeads(ctx context.Context, ownerID string) ([]models.Lead, error) {
	if ownerID == "" {
		return nil, nil
	}
	key := "leads:" + ownerID
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Lead), nil
	}
	leads, err := s.repo.ListLeads(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, leads)
	return leads, nil
}

// cleanCandidate normalizes missing and empty values to explicit nulls. No
// trimming, no other coercion.
func cleanCandidate(c models.Candidate) models.Candidate {
	c.Industry = cleanPtr(c.Industry)
	c.Address = cleanPtr(c.Address)
	c.Phone = cleanPtr(c.Phone)
	c.Email = cleanPtr(c.Email)
	c.Website = cleanPtr(c.Website)
	c.ContactPerson = cleanPtr(c.ContactPerson)
	c.Status = cleanPtr(c.Status)
	c.Campaign = cleanPtr(c.Campaign)
	return c
}

// CreateLeads normalizes and persists a batch of candidate records. Statuses
// must belong to the domain enumeration. Returns the number of stored rows.
func (s *LeadService) CreateLeads(ctx context.Context, ownerID string, candidates []models.Candidate) (int, error) {
	if ownerID == "" || len(candidates) == 0 {
		return 0, nil
	}
	cleaned := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !models.ValidStatusValue(c.Status) {
			return 0, models.NewValidationError("status", fmt.Sprintf("%q is not a known status", *c.Status))
		}
		cleaned = append(cleaned, cleanCandidate(c))
	}
	count, err := s.repo.CreateLeads(ctx, ownerID, cleaned)
	if err != nil {
		return 0, err
	}
	s.cache.Flush()
	return count, nil
}

// GetLead fetches one lead scoped to the owner.
func (s *LeadService) GetLead(ctx context.Context, ownerID string, id int64) (*models.Lead, error) {
	if ownerID == "" {
		return nil, models.ErrNotFound
	}
	return s.repo.GetLead(ctx, ownerID, id)
}

// ListCampaignNames returns the owner's distinct campaign labels for the
// archived flag, sorted ascending.
func (s *LeadService) ListCampaignNames(ctx context.Context, ownerID string, archived bool) ([]string, error) {
	if ownerID == "" {
		return nil, nil
	}
	key := fmt.Sprintf("campaigns:%s:%t", ownerID, archived)
	if v, ok := s.cache.Get(key); ok {
		return v.([]string), nil
	}
	names, err := s.repo.ListCampaignNames(ctx, ownerID, archived)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, names)
	return names, nil
}

// ListLeadSummaries returns the id/name/campaign projection sorted by name.
func (s *LeadService) ListLeadSummaries(ctx context.Context, ownerID string, archived bool) ([]models.LeadSummary, error) {
	if ownerID == "" {
		return nil, nil
	}
	key := fmt.Sprintf("summaries:%s:%t", ownerID, archived)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.LeadSummary), nil
	}
	summaries, err := s.repo.ListLeadSummaries(ctx, ownerID, archived)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, summaries)
	return summaries, nil
}

// UpdateLeadStatus sets one lead's status after validating it against the
// domain enumeration. An empty or nil status unsets the column.
func (s *LeadService) UpdateLeadStatus(ctx context.Context, ownerID string, id int64, status *string) error {
	if ownerID == "" {
		return nil
	}
	if !models.ValidStatusValue(status) {
		return models.NewValidationError("status", fmt.Sprintf("%q is not a known status", *status))
	}
	if err := s.repo.UpdateLeadStatus(ctx, ownerID, id, cleanPtr(status)); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// ApplyReport summarizes the execution of a reconciliation plan. The three
// batches are independent: a failed batch is reported in Errors while the
// batches already applied stay applied.
type ApplyReport struct {
	Updated      int      `json:"updated"`
	Inserted     int      `json:"inserted"`
	Deleted      int      `json:"deleted"`
	TasksCreated int      `json:"tasks_created"`
	Errors       []string `json:"errors,omitempty"`
}

// ApplyPlan executes a reconciliation plan: follow-up tasks first, then the
// update, insert and delete batches in that order. Statuses are validated
// before any remote call. The read cache is flushed afterwards.
func (s *LeadService) ApplyPlan(ctx context.Context, ownerID string, plan Plan) (*ApplyReport, error) {
	report := &ApplyReport{}
	if ownerID == "" || plan.Empty() {
		return report, nil
	}

	for _, u := range plan.Updates {
		if v, ok := u.Fields["status"]; ok && v != nil {
			sv := v.(string)
			if !models.ValidStatusValue(&sv) {
				return nil, models.NewValidationError("status", fmt.Sprintf("%q is not a known status", sv))
			}
		}
	}
	for _, c := range plan.Inserts {
		if !models.ValidStatusValue(c.Status) {
			return nil, models.NewValidationError("status", fmt.Sprintf("%q is not a known status", *c.Status))
		}
	}

	defer s.cache.Flush()

	due := dateOnly(s.now()).AddDate(0, 0, FollowUpLeadDays)
	for _, leadID := range plan.FollowUps {
		if err := s.tasks.CreateTask(ctx, ownerID, leadID, due, FollowUpDescription); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("follow-up task for lead %d: %v", leadID, err))
			continue
		}
		report.TasksCreated++
	}

	for _, u := range plan.Updates {
		if err := s.repo.UpdateLead(ctx, ownerID, u.ID, u.Fields); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("updates: %v", err))
			break
		}
		report.Updated++
	}

	if len(plan.Inserts) > 0 {
		cleaned := make([]models.Candidate, 0, len(plan.Inserts))
		for _, c := range plan.Inserts {
			cleaned = append(cleaned, cleanCandidate(c))
		}
		count, err := s.repo.CreateLeads(ctx, ownerID, cleaned)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("inserts: %v", err))
		} else {
			report.Inserted = count
		}
	}

	if len(plan.Deletes) > 0 {
		if err := s.repo.DeleteLeads(ctx, ownerID, plan.Deletes); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("deletes: %v", err))
		} else {
			report.Deleted = len(plan.Deletes)
		}
	}

	return report, nil
}

// CampaignStats is one row of the campaign comparison table.
type CampaignStats struct {
	Campaign       string  `json:"campaign"`
	Leads          int     `json:"leads"`
	Appointments   int     `json:"appointments"`
	ConversionRate float64 `json:"conversion_rate"`
}

// DashboardStats carries the dashboard numbers computed from one lead list.
// Leads without a status are counted as open.
type DashboardStats struct {
	TotalLeads   int             `json:"total_leads"`
	StatusCounts map[string]int  `json:"status_counts"`
	Campaigns    []CampaignStats `json:"campaigns"`
}

// Stats computes the dashboard figures over the owner's leads, skipping
// archived ones unless includeArchived is set.
func (s *LeadService) Stats(ctx context.Context, ownerID string, includeArchived bool) (*DashboardStats, error) {
	leads, err := s.ListLeads(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{StatusCounts: map[string]int{}}
	perCampaign := map[string]*CampaignStats{}
	var order []string

	for _, l := range leads {
		if l.Archived && !includeArchived {
			continue
		}
		stats.TotalLeads++

		status := normStatus(l.Status)
		if status == "" {
			status = string(models.StatusOpen)
		}
		stats.StatusCounts[status]++

		if l.Campaign == nil || *l.Campaign == "" {
			continue
		}
		cs, ok := perCampaign[*l.Campaign]
		if !ok {
			cs = &CampaignStats{Campaign: *l.Campaign}
			perCampaign[*l.Campaign] = cs
			order = append(order, *l.Campaign)
		}
		cs.Leads++
		if status == string(models.StatusAppointment) {
			cs.Appointments++
		}
	}

	for _, name := range order {
		cs := perCampaign[name]
		if cs.Leads > 0 {
			cs.ConversionRate = float64(cs.Appointments) / float64(cs.Leads) * 100
		}
		stats.Campaigns = append(stats.Campaigns, *cs)
	}
	return stats, nil
}
