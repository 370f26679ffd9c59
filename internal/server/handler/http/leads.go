package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AdReachMedia/LeadGen-CRM/internal/middleware"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
	"github.com/AdReachMedia/LeadGen-CRM/internal/service"
)

// LeadService defines the lead operations required by the LeadHandler.
type LeadService interface {
	ListLeads(ctx context.Context, ownerID string) ([]models.Lead, error)
	CreateLeads(ctx context.Context, ownerID string, candidates []models.Candidate) (int, error)
	GetLead(ctx context.Context, ownerID string, id int64) (*models.Lead, error)
	ListLeadSummaries(ctx context.Context, ownerID string, archived bool) ([]models.LeadSummary, error)
	UpdateLeadStatus(ctx context.Context, ownerID string, id int64, status *string) error
	ApplyPlan(ctx context.Context, ownerID string, plan service.Plan) (*service.ApplyReport, error)
	Stats(ctx context.Context, ownerID string, includeArchived bool) (*service.DashboardStats, error)
}

// LeadHandler handles the lead CRUD, grid save and dashboard endpoints.
type LeadHandler struct {
	LeadService LeadService
}

// List handles GET /api/leads. The optional archived query parameter narrows
// the result to archived or active leads.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	leads, err := h.LeadService.ListLeads(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if q := r.URL.Query().Get("archived"); q != "" {
		archived := q == "true"
		filtered := make([]models.Lead, 0, len(leads))
		for _, l := range leads {
			if l.Archived == archived {
				filtered = append(filtered, l)
			}
		}
		leads = filtered
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	writeJSON(w, leads)
}

// Create handles POST /api/leads: a JSON array of candidates, stored as one
// batch. Responds with the stored count.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var candidates []models.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidates); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	count, err := h.LeadService.CreateLeads(r.Context(), userID, candidates)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]int{"created": count})
}

// Get handles GET /api/leads/{id}.
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}
	lead, err := h.LeadService.GetLead(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, lead)
}

// Summaries handles GET /api/leads/summaries?archived=.
func (h *LeadHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	archived := r.URL.Query().Get("archived") == "true"
	summaries, err := h.LeadService.ListLeadSummaries(r.Context(), userID, archived)
	if err != nil {
		writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []models.LeadSummary{}
	}
	writeJSON(w, summaries)
}

// UpdateStatus handles PATCH /api/leads/{id}/status. A null status unsets the
// column.
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.LeadService.UpdateLeadStatus(r.Context(), userID, id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GridRequest carries the two snapshots of an edited lead grid: the rows as
// loaded and the rows as the editor left them.
type GridRequest struct {
	Before []models.Lead `json:"before"`
	After  []models.Lead `json:"after"`
}

// SaveGrid handles POST /api/leads/grid. It diffs the two snapshots and
// applies the resulting update, insert and delete batches, spawning follow-up
// tasks for leads whose status moved into follow_up. The response reports
// per-batch counts and failures.
func (h *LeadHandler) SaveGrid(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req GridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	plan := service.Reconcile(req.Before, req.After)
	report, err := h.LeadService.ApplyPlan(r.Context(), userID, plan)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, report)
}

// Stats handles GET /api/stats?archived=.
func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	includeArchived := r.URL.Query().Get("archived") == "true"
	stats, err := h.LeadService.Stats(r.Context(), userID, includeArchived)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats)
}
