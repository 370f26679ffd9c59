package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AdReachMedia/LeadGen-CRM/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the lead management API.
//
// Middleware chain (applied in order):
//  1. AllowContentType — accepts JSON bodies plus multipart for CSV import
//  2. WithRequestLogging(logger) — logs each request with a correlation id
//  3. TokenAuth(sessions) — resolves the Bearer token into the request context
//
// Requests without a valid session pass through with an empty user id; the
// services answer them with neutral, empty data.
func NewRouter(
	authHandler *AuthHandler,
	leadHandler *LeadHandler,
	campaignHandler *CampaignHandler,
	taskHandler *TaskHandler,
	noteHandler *NoteHandler,
	finderHandler *FinderHandler,
	sessions middleware.SessionResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.TokenAuth(sessions))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.List)
			r.Post("/", leadHandler.Create)
			r.Get("/summaries", leadHandler.Summaries)
			r.Post("/grid", leadHandler.SaveGrid)
			r.Get("/{id}", leadHandler.Get)
			r.Patch("/{id}/status", leadHandler.UpdateStatus)
			r.Get("/{id}/notes", noteHandler.List)
			r.Post("/{id}/notes", noteHandler.Add)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", campaignHandler.List)
			r.Post("/{name}/archive", campaignHandler.Archive)
			r.Post("/{name}/restore", campaignHandler.Restore)
			r.Delete("/{name}", campaignHandler.Purge)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Post("/{id}/complete", taskHandler.Complete)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})

		r.Delete("/notes/{id}", noteHandler.Delete)

		r.Post("/search", finderHandler.Search)
		r.Post("/import", finderHandler.Import)
		r.Get("/stats", leadHandler.Stats)
	})

	return r
}
