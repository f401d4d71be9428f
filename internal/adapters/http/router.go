// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/handlers"
	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/middleware"
	"github.com/ferrivbe/home-infrastructure/internal/platform/logging"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. Requests that match no
// route or use the wrong method get the fixed framework error envelope with
// the routing layer's status preserved.
func NewRouter(
	sourceHandler *handlers.SourceHandler,
	healthHandler *handlers.HealthHandler,
	serviceHandler *handlers.ServiceHandler,
	docsHandler *handlers.DocsHandler,
	logger *logging.RequestLogger,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteFrameworkError(w, req, logger, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteFrameworkError(w, req, logger, http.StatusMethodNotAllowed)
	})

	// Infrastructure and documentation endpoints, exempt from tenant routing.
	r.Get("/health", healthHandler.Health)
	r.Get("/service", serviceHandler.Service)
	r.Get("/docs", docsHandler.Docs)
	r.Get("/openapi.json", docsHandler.OpenAPI)

	// Source CRUD.
	r.Route("/v1", func(r chi.Router) {
		r.Get("/sources", sourceHandler.ListSources)
		r.Post("/sources", sourceHandler.CreateSource)
		r.Get("/sources/{id}", sourceHandler.GetSource)
		r.Put("/sources/{id}", sourceHandler.UpdateSource)
		r.Delete("/sources/{id}", sourceHandler.DeleteSource)
	})

	return middleware.Chain(middlewares...)(r)
}
