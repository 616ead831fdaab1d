package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/dto"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// DiscoveryHandler exposes the instances of a named service as seen by the
// registry.
type DiscoveryHandler struct {
	svc ports.DiscoveryService
}

// NewDiscoveryHandler creates a DiscoveryHandler.
func NewDiscoveryHandler(svc ports.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{svc: svc}
}

// Instances handles GET /discovery/{service}.
func (h *DiscoveryHandler) Instances(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "service")

	found, err := h.svc.Instances(r.Context(), []string{name})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDiscoveryResponse(name, found[name]))
}
