package main

import (
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/consul-registrar/internal/adapters/clients/consul"
	"github.com/jsamuelsen11/consul-registrar/internal/adapters/clients/consulapi"
	"github.com/jsamuelsen11/consul-registrar/internal/adapters/clients/etcd"
	"github.com/jsamuelsen11/consul-registrar/internal/adapters/resolver"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/config"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/httpclient"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/telemetry"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

const consulTokenHeader = "X-Consul-Token"

// registryClient is what every registry driver provides: the agent API,
// the health query API, and a health check of the backend itself.
type registryClient interface {
	ports.RegistryGateway
	ports.HealthReader
	ports.HealthChecker
}

// backend owns the selected driver and whatever connection it holds open.
type backend struct {
	registryClient
	close func() error
}

// Shutdown releases the driver's connection. Safe on drivers without one.
func (b *backend) Shutdown() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func newBackend(cfg *config.Config, metrics *telemetry.Metrics, logger *slog.Logger) (*backend, error) {
	reg := cfg.Registry

	switch reg.Driver {
	case config.DriverConsul:
		client := httpclient.New(&reg.Consul, "consul", metrics, logger,
			httpclient.WithStaticHeader(consulTokenHeader, reg.Consul.Token))
		return &backend{registryClient: consul.NewGateway(client, reg.Consul.Datacenter, logger)}, nil

	case config.DriverConsulAPI:
		gw, err := consulapi.New(&reg.Consul, reg.Consul.Datacenter, logger)
		if err != nil {
			return nil, fmt.Errorf("creating consul api client: %w", err)
		}
		return &backend{registryClient: gw}, nil

	case config.DriverEtcd:
		gw, client, err := etcd.Dial(reg.Etcd, nodeName(cfg), logger)
		if err != nil {
			return nil, fmt.Errorf("connecting to etcd: %w", err)
		}
		return &backend{registryClient: gw, close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unknown registry driver %q", reg.Driver)
	}
}

// newResolver returns the resolver used for prefer_ip_address lookups, or
// nil when no lookup will ever happen.
func newResolver(cfg *config.Config, logger *slog.Logger) ports.AddressResolver {
	reg := cfg.Registration
	if !reg.PreferIPAddress || reg.IPAddr != "" {
		return nil
	}
	if cfg.Resolver.Mode == config.ResolverDNS {
		return resolver.NewNameserverResolver(cfg.Resolver.Nameserver, cfg.Resolver.Timeout, logger)
	}
	return resolver.NewSystemResolver()
}
