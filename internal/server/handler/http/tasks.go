package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AdReachMedia/LeadGen-CRM/internal/middleware"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
	"github.com/AdReachMedia/LeadGen-CRM/internal/service"
)

// TaskService defines the task operations required by the TaskHandler.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, leadID int64, dueDate time.Time, description string) error
	ListOpenTasks(ctx context.Context, ownerID string, leadID *int64) ([]models.TaskWithLead, error)
	CompleteTask(ctx context.Context, ownerID string, id int64) error
	UpdateTask(ctx context.Context, ownerID string, id int64, dueDate time.Time, description string) error
	DeleteTask(ctx context.Context, ownerID string, id int64) error
}

// TaskHandler handles the task endpoints.
type TaskHandler struct {
	TaskService TaskService
}

// TaskRequest is the JSON payload for creating or updating a task. DueDate is
// a calendar date in ISO form.
type TaskRequest struct {
	LeadID      int64  `json:"lead_id"`
	DueDate     string `json:"due_date"`
	Description string `json:"description"`
}

func parseDueDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// TaskListResponse partitions the open tasks for display: urgent tasks are
// due today or overdue, future tasks come later.
type TaskListResponse struct {
	Urgent []models.TaskWithLead `json:"urgent"`
	Future []models.TaskWithLead `json:"future"`
}

// List handles GET /api/tasks?lead_id=. Open tasks of active leads only,
// split by urgency.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var leadID *int64
	if q := r.URL.Query().Get("lead_id"); q != "" {
		id, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			http.Error(w, "invalid lead_id", http.StatusBadRequest)
			return
		}
		leadID = &id
	}

	tasks, err := h.TaskService.ListOpenTasks(r.Context(), userID, leadID)
	if err != nil {
		writeError(w, err)
		return
	}

	urgent, future := service.PartitionByUrgency(tasks, time.Now())
	resp := TaskListResponse{Urgent: urgent, Future: future}
	if resp.Urgent == nil {
		resp.Urgent = []models.TaskWithLead{}
	}
	if resp.Future == nil {
		resp.Future = []models.TaskWithLead{}
	}
	writeJSON(w, resp)
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if err := h.TaskService.CreateTask(r.Context(), userID, req.LeadID, due, req.Description); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Complete handles POST /api/tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.TaskService.CompleteTask)
}

// Update handles PUT /api/tasks/{id}: replaces due date and description.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if err := h.TaskService.UpdateTask(r.Context(), userID, id, due, req.Description); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.TaskService.DeleteTask)
}

func (h *TaskHandler) byID(w http.ResponseWriter, r *http.Request, op func(context.Context, string, int64) error) {
	userID := middleware.GetUserIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}
	if err := op(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
