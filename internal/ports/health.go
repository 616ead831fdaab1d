package ports

import (
	"context"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
)

// HealthChecker is implemented by any component that can report its health.
// Examples: registry gateways, address resolvers, discovery backends.
type HealthChecker interface {
	// Name returns a human-readable identifier for this component
	// (e.g., "consul", "etcd", "dns").
	Name() string

	// HealthCheck performs the health check and returns nil if healthy,
	// or an error describing the failure.
	// Implementations should respect context cancellation and deadlines.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry manages registration and execution of health checkers.
type HealthRegistry interface {
	// Register adds a HealthChecker to the registry.
	Register(checker HealthChecker)

	// CheckAll executes all registered health checks and returns results
	// keyed by checker name. Nil values indicate healthy components.
	CheckAll(ctx context.Context) map[string]error
}

// HealthFacility reports the instance's own aggregate health. The heartbeat
// forwards it to the registry on every tick.
type HealthFacility interface {
	Status(ctx context.Context) domain.HealthStatus
}
