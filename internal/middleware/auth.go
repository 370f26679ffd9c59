// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionResolver maps a session token to its owner id. Unknown or expired
// tokens resolve to an empty owner without error.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// TokenAuth resolves the Bearer token of the incoming request to a user id and
// stores it in the request context. Requests without a valid token pass
// through with an empty user id; the services treat that caller as
// unauthenticated and serve neutral data instead of errors.
func TokenAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				http.Error(w, "session lookup failed", http.StatusBadGateway)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
