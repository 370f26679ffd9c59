package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AdReachMedia/LeadGen-CRM/internal/importer"
	"github.com/AdReachMedia/LeadGen-CRM/internal/middleware"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// LeadSource finds candidate leads for a query and location.
type LeadSource interface {
	Search(ctx context.Context, query, location string, max int) ([]models.Candidate, error)
}

// LeadCreator is the slice of the lead service the finder endpoints need to
// persist their results.
type LeadCreator interface {
	CreateLeads(ctx context.Context, ownerID string, candidates []models.Candidate) (int, error)
}

// FinderHandler handles lead acquisition: directory search and CSV import.
type FinderHandler struct {
	Source LeadSource
	Leads  LeadCreator
}

// SearchRequest is the JSON payload for a directory search.
type SearchRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
	Max      int    `json:"max"`
}

// Search handles POST /api/search. It scrapes up to Max listings for the
// query and location, stores them as one campaign and reports the counts.
func (h *FinderHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Max <= 0 {
		req.Max = 20
	}

	candidates, err := h.Source.Search(r.Context(), req.Query, req.Location, req.Max)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.Leads.CreateLeads(r.Context(), userID, candidates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]int{"found": len(candidates), "created": created})
}

// Import handles POST /api/import: a multipart form with a "file" CSV part, a
// "campaign" field and an optional "mapping" JSON field. Without a mapping the
// Apify export layout is assumed.
func (h *FinderHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mapping := importer.DefaultApifyMapping()
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			http.Error(w, "invalid mapping", http.StatusBadRequest)
			return
		}
	}

	candidates, err := importer.ReadCSV(file, mapping, r.FormValue("campaign"))
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.Leads.CreateLeads(r.Context(), userID, candidates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]int{"parsed": len(candidates), "created": created})
}
