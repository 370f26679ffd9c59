package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AdReachMedia/LeadGen-CRM/internal/middleware"
)

// CampaignService defines the campaign lifecycle operations required by the
// CampaignHandler.
type CampaignService interface {
	// Archive hides every lead of the campaign from the active views.
	Archive(ctx context.Context, ownerID, campaign string) error
	// Restore brings an archived campaign back.
	Restore(ctx context.Context, ownerID, campaign string) error
	// Purge permanently deletes the campaign's leads and their tasks and notes.
	Purge(ctx context.Context, ownerID, campaign string) error
}

// CampaignNameLister is the slice of the lead service the campaign listing
// endpoint needs.
type CampaignNameLister interface {
	ListCampaignNames(ctx context.Context, ownerID string, archived bool) ([]string, error)
}

// CampaignHandler handles campaign listing and lifecycle requests.
type CampaignHandler struct {
	CampaignService CampaignService
	Names           CampaignNameLister
}

// List handles GET /api/campaigns?archived=.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	archived := r.URL.Query().Get("archived") == "true"
	names, err := h.Names.ListCampaignNames(r.Context(), userID, archived)
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, names)
}

// Archive handles POST /api/campaigns/{name}/archive. Idempotent.
func (h *CampaignHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.CampaignService.Archive)
}

// Restore handles POST /api/campaigns/{name}/restore. Idempotent.
func (h *CampaignHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.CampaignService.Restore)
}

// Purge handles DELETE /api/campaigns/{name}. The deletion is permanent and
// cascades to the leads' tasks and notes.
func (h *CampaignHandler) Purge(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.CampaignService.Purge)
}

func (h *CampaignHandler) lifecycle(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) error) {
	userID := middleware.GetUserIDFromContext(r.Context())

	campaign := chi.URLParam(r, "name")
	if err := op(r.Context(), userID, campaign); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
