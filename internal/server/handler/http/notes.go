package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AdReachMedia/LeadGen-CRM/internal/middleware"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// NoteService defines the note operations required by the NoteHandler.
type NoteService interface {
	ListNotes(ctx context.Context, ownerID string, leadID int64) ([]models.Note, error)
	AddNote(ctx context.Context, ownerID string, leadID int64, content string) error
	DeleteNote(ctx context.Context, ownerID string, id int64) error
}

// NoteHandler handles the per-lead note endpoints.
type NoteHandler struct {
	NoteService NoteService
}

// List handles GET /api/leads/{id}/notes, newest first.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	leadID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}
	notes, err := h.NoteService.ListNotes(r.Context(), userID, leadID)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, notes)
}

// Add handles POST /api/leads/{id}/notes.
func (h *NoteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	leadID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.NoteService.AddNote(r.Context(), userID, leadID, req.Content); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}
	if err := h.NoteService.DeleteNote(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
