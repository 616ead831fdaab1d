package consul

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/httpclient"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.RegistryGateway = (*Gateway)(nil)
	_ ports.HealthReader    = (*Gateway)(nil)
	_ ports.HealthChecker   = (*Gateway)(nil)
)

// Gateway is the outbound adapter for the local Consul agent. It implements
// [ports.RegistryGateway] and [ports.HealthReader].
//
// The underlying [httpclient.Client] provides circuit breaking, rate
// limiting and tracing for every call. Only the reads (ListServiceIDs,
// HealthService) are retried with backoff; writes are sent once. The
// ACL token is expected to be installed on the client with
// [httpclient.WithStaticHeader].
type Gateway struct {
	req    *Requester
	logger *slog.Logger
}

// NewGateway creates a Gateway that sends requests through client. A
// non-empty datacenter is forwarded as the "dc" query parameter.
func NewGateway(client *httpclient.Client, datacenter string, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{
		req:    NewRequester(client, datacenter, logger),
		logger: logger,
	}
}

// Register sends PUT /v1/agent/service/register.
func (g *Gateway) Register(ctx context.Context, d *registration.Descriptor) error {
	return g.req.Send(ctx, http.MethodPut, "/v1/agent/service/register", nil, ToRegistrationDTO(d))
}

// Deregister sends PUT /v1/agent/service/deregister/{id}.
func (g *Gateway) Deregister(ctx context.Context, serviceID string) error {
	return g.req.Send(ctx, http.MethodPut, "/v1/agent/service/deregister/"+url.PathEscape(serviceID), nil, nil)
}

// Pass sends PUT /v1/agent/check/pass/{checkId}.
func (g *Gateway) Pass(ctx context.Context, checkID string) error {
	return g.req.Send(ctx, http.MethodPut, "/v1/agent/check/pass/"+url.PathEscape(checkID), nil, nil)
}

// Fail sends PUT /v1/agent/check/fail/{checkId}, with note as the check
// output when non-empty.
func (g *Gateway) Fail(ctx context.Context, checkID, note string) error {
	var q url.Values
	if note != "" {
		q = url.Values{"note": {note}}
	}
	return g.req.Send(ctx, http.MethodPut, "/v1/agent/check/fail/"+url.PathEscape(checkID), q, nil)
}

// ListServiceIDs fetches GET /v1/agent/services and returns the service IDs.
func (g *Gateway) ListServiceIDs(ctx context.Context) ([]string, error) {
	var dto map[string]AgentServiceDTO
	if err := g.req.Fetch(ctx, "/v1/agent/services", nil, &dto); err != nil {
		return nil, err
	}
	return ToServiceIDs(dto), nil
}

// HealthService fetches GET /v1/health/service/{name}, adding "passing" when
// passingOnly is set.
func (g *Gateway) HealthService(ctx context.Context, name string, passingOnly bool) ([]catalog.Entry, error) {
	var q url.Values
	if passingOnly {
		q = url.Values{"passing": {"true"}}
	}

	var dto []HealthEntryDTO
	if err := g.req.Fetch(ctx, "/v1/health/service/"+url.PathEscape(name), q, &dto); err != nil {
		return nil, err
	}
	return ToDomainEntries(dto), nil
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (g *Gateway) Name() string {
	return "consul"
}

// HealthCheck reports the agent's availability from the circuit breaker
// state. No network call is made.
func (g *Gateway) HealthCheck(ctx context.Context) error {
	return g.req.HealthCheck(ctx)
}
