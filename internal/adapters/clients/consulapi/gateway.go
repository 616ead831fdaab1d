// Package consulapi implements the registry gateway on top of HashiCorp's
// official Consul client (github.com/hashicorp/consul/api). It is selected
// with registry.driver "consul-api" and trades the instrumented
// httpclient pipeline for the upstream client's own request handling.
package consulapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/config"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.RegistryGateway = (*Gateway)(nil)
	_ ports.HealthReader    = (*Gateway)(nil)
	_ ports.HealthChecker   = (*Gateway)(nil)
)

// Gateway adapts *api.Client to [ports.RegistryGateway] and
// [ports.HealthReader].
type Gateway struct {
	client *api.Client
	logger *slog.Logger
}

// New builds an api.Client from cfg using a pooled cleanhttp transport.
func New(cfg *config.ClientConfig, datacenter string, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Host == "" {
		return nil, domain.NewConfigurationError("registry.consul.base_url", "must be an absolute URL", err)
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout

	client, err := api.NewClient(&api.Config{
		Address:    u.Host,
		Scheme:     u.Scheme,
		Datacenter: datacenter,
		Token:      cfg.Token,
		HttpClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consul api client: %w", err)
	}

	return &Gateway{client: client, logger: logger}, nil
}

// Register calls the agent's service registration endpoint.
func (g *Gateway) Register(ctx context.Context, d *registration.Descriptor) error {
	opts := api.ServiceRegisterOpts{}.WithContext(ctx)
	if err := g.client.Agent().ServiceRegisterOpts(toRegistration(d), opts); err != nil {
		return translate("register "+d.ID, err)
	}
	return nil
}

// Deregister removes serviceID from the local agent.
func (g *Gateway) Deregister(ctx context.Context, serviceID string) error {
	if err := g.client.Agent().ServiceDeregisterOpts(serviceID, queryOptions(ctx)); err != nil {
		return translate("deregister "+serviceID, err)
	}
	return nil
}

// Pass marks checkID passing.
func (g *Gateway) Pass(ctx context.Context, checkID string) error {
	if err := g.client.Agent().UpdateTTLOpts(checkID, "", api.HealthPassing, queryOptions(ctx)); err != nil {
		return translate("pass "+checkID, err)
	}
	return nil
}

// Fail marks checkID critical with note as its output.
func (g *Gateway) Fail(ctx context.Context, checkID, note string) error {
	if err := g.client.Agent().UpdateTTLOpts(checkID, note, api.HealthCritical, queryOptions(ctx)); err != nil {
		return translate("fail "+checkID, err)
	}
	return nil
}

// ListServiceIDs returns the IDs of every service on the local agent.
func (g *Gateway) ListServiceIDs(ctx context.Context) ([]string, error) {
	services, err := g.client.Agent().ServicesWithFilterOpts("", queryOptions(ctx))
	if err != nil {
		return nil, translate("list services", err)
	}

	ids := make([]string, 0, len(services))
	for key, svc := range services {
		if svc != nil && svc.ID != "" {
			ids = append(ids, svc.ID)
			continue
		}
		ids = append(ids, key)
	}
	return ids, nil
}

// HealthService returns the health entries for name.
func (g *Gateway) HealthService(ctx context.Context, name string, passingOnly bool) ([]catalog.Entry, error) {
	entries, _, err := g.client.Health().Service(name, "", passingOnly, queryOptions(ctx))
	if err != nil {
		return nil, translate("health "+name, err)
	}

	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.Service == nil {
			continue
		}
		out = append(out, toEntry(e))
	}
	return out, nil
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (g *Gateway) Name() string {
	return "consul"
}

// HealthCheck asks the agent for the current raft leader. An agent without
// a leader cannot accept registrations.
func (g *Gateway) HealthCheck(ctx context.Context) error {
	leader, err := g.client.Status().LeaderWithQueryOptions(queryOptions(ctx))
	if err != nil {
		return fmt.Errorf("consul: %w", err)
	}
	if leader == "" {
		return errors.New("consul: no cluster leader")
	}
	return nil
}

func queryOptions(ctx context.Context) *api.QueryOptions {
	return (&api.QueryOptions{}).WithContext(ctx)
}

// translate maps api errors onto domain errors. StatusError carries the
// HTTP status; anything else is a network failure.
func translate(op string, err error) error {
	var se api.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return fmt.Errorf("consul: %s: %s: %w", op, se.Body, domain.ErrNotFound)
	}
	return fmt.Errorf("consul: %s: %w: %w", op, domain.ErrTransport, err)
}
