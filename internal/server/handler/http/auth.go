package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// AuthService defines the authentication operations required by the
// AuthHandler.
type AuthService interface {
	// Register creates a new account from email and password.
	Register(ctx context.Context, email, password string) error
	// Login verifies the credentials and returns a session token.
	Login(ctx context.Context, email, password string) (string, error)
	// Logout invalidates a session token.
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles registration, login and logout requests.
type AuthHandler struct {
	AuthService AuthService
}

// CredentialsRequest is the JSON payload for registration and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register. It creates the account and responds
// with 201 on success.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.AuthService.Register(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Login handles POST /api/login. On valid credentials it responds with the
// session token the client sends as a Bearer token afterwards. Unknown email
// and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"token": token})
}

// Logout handles POST /api/logout. It invalidates the Bearer token of the
// request; a request without one is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
