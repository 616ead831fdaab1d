package main

import (
	"fmt"
	"os"

	"github.com/jsamuelsen11/consul-registrar/internal/app/discovery"
	"github.com/jsamuelsen11/consul-registrar/internal/app/registrar"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/config"
)

// newInstance maps the registration section onto the advertised instance.
// Host falls back to the machine host name and Port to server.port.
func newInstance(cfg *config.Config, hostname func() (string, error)) (registration.Instance, error) {
	reg := cfg.Registration

	host := reg.Host
	if host == "" {
		h, err := hostname()
		if err != nil {
			return registration.Instance{}, fmt.Errorf("resolving host name: %w", err)
		}
		host = h
	}

	port := reg.Port
	if port == 0 {
		port = cfg.Server.Port
	}

	return registration.Instance{
		Name:     reg.Name,
		ID:       reg.InstanceID,
		Host:     host,
		Port:     port,
		Scheme:   reg.Scheme,
		Group:    reg.Group,
		Zone:     reg.Zone,
		Metadata: reg.Metadata,
	}, nil
}

func registrarConfig(cfg *config.Config, env registration.Environment) registrar.Config {
	reg := cfg.Registration
	return registrar.Config{
		Settings: registration.Settings{
			Tags: reg.Tags,
			Meta: reg.Meta,
		},
		Check: registration.CheckConfig{
			Enabled:                        reg.Check.Enabled,
			ID:                             reg.Check.ID,
			Notes:                          reg.Check.Notes,
			Interval:                       reg.Check.Interval,
			DeregisterCriticalServiceAfter: reg.Check.DeregisterCriticalServiceAfter,
			ForceHTTP:                      reg.Check.HTTP,
			Method:                         reg.Check.Method,
			Headers:                        reg.Check.Headers,
			TLSSkipVerify:                  reg.Check.TLSSkipVerify,
			InitialStatus:                  catalog.CheckStatus(reg.Check.InitialStatus),
		},
		Heartbeat: registration.HeartbeatConfig{
			Enabled:  cfg.Heartbeat.Enabled,
			Interval: cfg.Heartbeat.Interval,
		},
		HealthPath:      reg.HealthPath,
		PreferIPAddress: reg.PreferIPAddress,
		IPAddress:       reg.IPAddr,
		Environment:     env,
		CallTimeout:     cfg.Registry.CallTimeout,
	}
}

func heartbeatConfig(cfg *config.Config) registrar.HeartbeatConfig {
	return registrar.HeartbeatConfig{
		Interval:          cfg.Heartbeat.Interval,
		CallTimeout:       cfg.Heartbeat.CallTimeout,
		RetryRegistration: retryRegistration(cfg),
	}
}

// retryRegistration reports whether a failed startup registration is left
// to the heartbeat instead of aborting. It needs fail_fast off and a
// heartbeat schedule to retry on.
func retryRegistration(cfg *config.Config) bool {
	return !cfg.Registration.FailFast && cfg.Heartbeat.Enabled
}

// ttlCheck reports whether the registered check is a TTL check the agent has
// to keep alive.
func ttlCheck(cfg *config.Config) bool {
	return cfg.Registration.Check.Enabled && !cfg.Registration.Check.HTTP
}

// heartbeatEnabled reports whether the heartbeat loop runs: to keep a TTL
// check alive, or to retry a startup registration that failed. With an HTTP
// check the loop only registers; Pulsate skips the instance.
func heartbeatEnabled(cfg *config.Config) bool {
	if !cfg.Registration.Enabled || !cfg.Heartbeat.Enabled {
		return false
	}
	return ttlCheck(cfg) || retryRegistration(cfg)
}

func discoveryConfig(cfg *config.Config) discovery.Config {
	return discovery.Config{
		Scheme:      cfg.Discovery.Scheme,
		PassingOnly: cfg.Discovery.PassingOnly,
		MaxWorkers:  cfg.Discovery.MaxWorkers,
	}
}

// nodeName identifies this agent's node in backends without one of their
// own (etcd).
func nodeName(cfg *config.Config) string {
	if cfg.Registration.Host != "" {
		return cfg.Registration.Host
	}
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
