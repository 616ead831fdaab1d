package ports

import (
	"context"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
)

// RegistryGateway is the client port for the service registry's agent API.
// Implementations translate transport failures into domain.ErrTransport (or
// domain.ErrNotFound for unknown IDs) and never retry beyond their own
// transport policy; reconciliation lives in the application layer.
type RegistryGateway interface {
	// Register creates or replaces the registration described by d.
	Register(ctx context.Context, d *registration.Descriptor) error

	// Deregister removes the service with the given ID.
	Deregister(ctx context.Context, serviceID string) error

	// Pass marks a TTL check as passing and resets its TTL.
	Pass(ctx context.Context, checkID string) error

	// Fail marks a TTL check as critical with an optional note.
	Fail(ctx context.Context, checkID, note string) error

	// ListServiceIDs returns the IDs of every service registered with the
	// local agent.
	ListServiceIDs(ctx context.Context) ([]string, error)
}

// HealthReader is the client port for querying registry health entries of a
// named service.
type HealthReader interface {
	// HealthService returns one entry per instance of name. When passingOnly
	// is set, instances with any non-passing check are filtered out by the
	// registry.
	HealthService(ctx context.Context, name string, passingOnly bool) ([]catalog.Entry, error)
}

// AddressResolver resolves a host name to the IP address advertised to the
// registry.
type AddressResolver interface {
	// Resolve returns one address for host. A failed lookup is an error.
	Resolve(ctx context.Context, host string) (string, error)
}

// RegistrarMetrics records registration lifecycle outcomes. Implemented by
// *telemetry.Metrics; a nil *telemetry.Metrics is a valid no-op recorder.
type RegistrarMetrics interface {
	RecordRegistration(ctx context.Context, service, result string)
	RecordHeartbeat(ctx context.Context, service, checkStatus, result string)
	RecordSelfHeal(ctx context.Context, service, result string)
}
