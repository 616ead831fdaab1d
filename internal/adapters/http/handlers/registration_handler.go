package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/dto"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// RegistrationHandler reports the local instance's registration state.
type RegistrationHandler struct {
	svc  ports.RegistrationService
	inst registration.Instance
}

// NewRegistrationHandler creates a RegistrationHandler for inst.
func NewRegistrationHandler(svc ports.RegistrationService, inst registration.Instance) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, inst: inst}
}

// Get handles GET /registration.
func (h *RegistrationHandler) Get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToRegistrationResponse(h.svc.Snapshot(h.inst)))
}
