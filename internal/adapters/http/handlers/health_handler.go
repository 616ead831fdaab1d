package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/dto"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

const statusOK = "ok"

// HealthHandler serves the liveness endpoint and the aggregate health
// endpoint the registry's HTTP check polls.
type HealthHandler struct {
	facility ports.HealthFacility
	deps     ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler. deps holds the agent's own
// dependencies (the registry client); their results are listed under
// "checks" without affecting the status code. deps may be nil.
func NewHealthHandler(facility ports.HealthFacility, deps ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{facility: facility, deps: deps}
}

// Liveness handles GET /health/live. Always returns 200 OK.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": statusOK})
}

// Health handles GET /health. Returns 200 when the instance is UP and 503
// when it is DOWN, so an HTTP registry check mirrors the instance status.
// A failing dependency shows in "checks" only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.facility.Status(r.Context())

	var results map[string]error
	if h.deps != nil {
		results = h.deps.CheckAll(r.Context())
	}

	code := http.StatusOK
	if !status.IsUp() {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, dto.ToHealthResponse(status, results))
}
