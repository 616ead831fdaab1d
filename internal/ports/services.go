package ports

import (
	"context"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
)

// RegistrationService is the service port for the local instance's
// registration lifecycle. Implemented by the application layer; called by
// cmd/agent and the inbound HTTP surface.
type RegistrationService interface {
	// Register builds a fresh descriptor for inst and registers it.
	// Configuration problems are returned as *domain.ConfigurationError.
	Register(ctx context.Context, inst registration.Instance) error

	// Deregister removes inst from the registry. It waits for any in-flight
	// register of the same instance.
	Deregister(ctx context.Context, inst registration.Instance) error

	// Snapshot reports the current registration state of inst.
	Snapshot(inst registration.Instance) RegistrationSnapshot
}

// RegistrationSnapshot is a point-in-time view of an instance's registration.
type RegistrationSnapshot struct {
	ServiceID  string
	CheckID    string
	State      string
	Registered bool
}

// DiscoveryService is the service port for resolving healthy instances of
// other services.
type DiscoveryService interface {
	// Instances returns the health views for every named service. Results
	// are keyed by service name; a service whose lookup failed is reported
	// through the joined error and omitted from the map.
	Instances(ctx context.Context, names []string) (map[string][]*catalog.ServiceHealthView, error)
}
