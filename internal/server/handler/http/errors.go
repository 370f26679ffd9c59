// Package http provides HTTP routing and JSON handlers for the lead
// management API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// writeError maps domain errors to HTTP status codes: validation failures to
// 400, missing records to 404, everything else to 502 since the store is
// remote.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "store unavailable", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
