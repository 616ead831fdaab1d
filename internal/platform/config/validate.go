package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Registry.validate(),
		c.Registration.validate(c.Heartbeat),
		c.Heartbeat.validate(),
		c.Resolver.validate(c.Registration),
		c.Discovery.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (r *RegistryConfig) validate() error {
	var errs []error

	if r.CallTimeout <= 0 {
		errs = append(errs, errors.New("registry.call_timeout must be positive"))
	}

	switch r.Driver {
	case DriverConsul:
		errs = append(errs, r.Consul.validate("registry.consul"), r.Consul.validateTransport("registry.consul"))
	case DriverConsulAPI:
		errs = append(errs, r.Consul.validate("registry.consul"))
	case DriverEtcd:
		errs = append(errs, r.Etcd.validate())
	default:
		errs = append(errs, fmt.Errorf("registry.driver must be one of: %s, %s, %s; got %q",
			DriverConsul, DriverConsulAPI, DriverEtcd, r.Driver))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate(prefix string) error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s.base_url must not be empty", prefix))
	} else if u, err := url.Parse(cl.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s.base_url must be an absolute URL, got %q", prefix, cl.BaseURL))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
	}

	return errors.Join(errs...)
}

// validateTransport checks settings only the instrumented HTTP client uses.
func (cl *ClientConfig) validateTransport(prefix string) error {
	var errs []error

	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", prefix, cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", prefix, cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			prefix, cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.requests_per_second must not be negative", prefix))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.burst_size must be >= 1 when rate limiting is enabled", prefix))
	}

	return errors.Join(errs...)
}

func (e *EtcdConfig) validate() error {
	var errs []error

	if len(e.Endpoints) == 0 {
		errs = append(errs, errors.New("registry.etcd.endpoints must not be empty"))
	}
	if e.DialTimeout <= 0 {
		errs = append(errs, errors.New("registry.etcd.dial_timeout must be positive"))
	}
	if e.Prefix == "" {
		errs = append(errs, errors.New("registry.etcd.prefix must not be empty"))
	}
	if e.LeaseTTL < 0 {
		errs = append(errs, errors.New("registry.etcd.lease_ttl must not be negative"))
	}

	return errors.Join(errs...)
}

func (r *RegistrationConfig) validate(hb HeartbeatConfig) error {
	if !r.Enabled {
		return nil
	}

	var errs []error

	if r.Name == "" {
		errs = append(errs, errors.New("registration.name must not be empty"))
	}
	if r.Port < 0 || r.Port > 65535 {
		errs = append(errs, fmt.Errorf("registration.port must be between 0 and 65535, got %d", r.Port))
	}
	switch r.Scheme {
	case "http", "https":
	default:
		errs = append(errs, fmt.Errorf("registration.scheme must be one of: http, https; got %q", r.Scheme))
	}

	errs = append(errs, r.Check.validate(hb))
	return errors.Join(errs...)
}

func (c *CheckConfig) validate(hb HeartbeatConfig) error {
	if !c.Enabled {
		return nil
	}

	var errs []error

	switch c.InitialStatus {
	case "passing", "warning", "critical":
	default:
		errs = append(errs, fmt.Errorf("registration.check.initial_status must be one of: passing, warning, critical; got %q",
			c.InitialStatus))
	}
	if (c.HTTP || !hb.Enabled) && c.Interval <= 0 {
		errs = append(errs, errors.New("registration.check.interval must be positive for HTTP checks"))
	}
	if c.DeregisterCriticalServiceAfter < 0 {
		errs = append(errs, errors.New("registration.check.deregister_critical_service_after must not be negative"))
	}

	return errors.Join(errs...)
}

func (h *HeartbeatConfig) validate() error {
	if !h.Enabled {
		return nil
	}

	var errs []error

	if h.Interval <= 0 {
		errs = append(errs, errors.New("heartbeat.interval must be positive"))
	}
	if h.CallTimeout < 0 {
		errs = append(errs, errors.New("heartbeat.call_timeout must not be negative"))
	}

	return errors.Join(errs...)
}

func (r *ResolverConfig) validate(reg RegistrationConfig) error {
	var errs []error

	switch r.Mode {
	case ResolverSystem:
	case ResolverDNS:
		if reg.PreferIPAddress && r.Nameserver == "" {
			errs = append(errs, errors.New("resolver.nameserver must not be empty when mode is dns"))
		}
	default:
		errs = append(errs, fmt.Errorf("resolver.mode must be one of: %s, %s; got %q", ResolverSystem, ResolverDNS, r.Mode))
	}
	if r.Timeout <= 0 {
		errs = append(errs, errors.New("resolver.timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (d *DiscoveryConfig) validate() error {
	var errs []error

	switch d.Scheme {
	case "http", "https":
	default:
		errs = append(errs, fmt.Errorf("discovery.scheme must be one of: http, https; got %q", d.Scheme))
	}
	if d.MaxWorkers < 1 {
		errs = append(errs, fmt.Errorf("discovery.max_workers must be >= 1, got %d", d.MaxWorkers))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
