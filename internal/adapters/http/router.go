// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all instance routes registered.
// Middleware is applied globally in the order given. A nil discovery
// handler leaves the discovery route unmounted.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	registrationHandler *handlers.RegistrationHandler,
	discoveryHandler *handlers.DiscoveryHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints. /health is the registry HTTP check target.
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)

	r.Get("/registration", registrationHandler.Get)

	if discoveryHandler != nil {
		r.Get("/discovery/{service}", discoveryHandler.Instances)
	}

	return r
}
