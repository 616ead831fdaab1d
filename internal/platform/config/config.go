// Package config provides configuration loading and validation for the agent.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the agent.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Log          LogConfig          `koanf:"log"`
	Telemetry    TelemetryConfig    `koanf:"telemetry"`
	Registry     RegistryConfig     `koanf:"registry"`
	Registration RegistrationConfig `koanf:"registration"`
	Heartbeat    HeartbeatConfig    `koanf:"heartbeat"`
	Resolver     ResolverConfig     `koanf:"resolver"`
	Discovery    DiscoveryConfig    `koanf:"discovery"`
}

// ServerConfig holds HTTP server settings for the instance's own surface.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Registry drivers.
const (
	DriverConsul    = "consul"
	DriverConsulAPI = "consul-api"
	DriverEtcd      = "etcd"
)

// RegistryConfig selects and configures the registry gateway.
type RegistryConfig struct {
	Driver string `koanf:"driver"`

	// CallTimeout bounds each startup and shutdown registry call.
	CallTimeout time.Duration `koanf:"call_timeout"`

	Consul ClientConfig `koanf:"consul"`
	Etcd   EtcdConfig   `koanf:"etcd"`
}

// ClientConfig holds Consul HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Token          string               `koanf:"token"`
	Datacenter     string               `koanf:"datacenter"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds outbound rate limit settings. A zero
// RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// EtcdConfig holds etcd gateway settings.
type EtcdConfig struct {
	Endpoints   []string      `koanf:"endpoints"`
	DialTimeout time.Duration `koanf:"dial_timeout"`
	Prefix      string        `koanf:"prefix"`

	// LeaseTTL overrides the lease TTL derived from the heartbeat interval.
	LeaseTTL time.Duration `koanf:"lease_ttl"`
}

// RegistrationConfig describes the instance advertised to the registry.
type RegistrationConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Name       string `koanf:"name"`
	InstanceID string `koanf:"instance_id"`

	// Host defaults to the machine host name; Port to server.port.
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	Scheme string `koanf:"scheme"`

	PreferIPAddress bool   `koanf:"prefer_ip_address"`
	IPAddr          string `koanf:"ip_addr"`
	HealthPath      string `koanf:"health_path"`

	Tags []string          `koanf:"tags"`
	Meta map[string]string `koanf:"meta"`

	// Metadata is advertised as key=value tags.
	Metadata map[string]string `koanf:"metadata"`

	Group string `koanf:"group"`
	Zone  string `koanf:"zone"`

	// FailFast aborts startup when the initial registration fails.
	FailFast bool `koanf:"fail_fast"`

	Check CheckConfig `koanf:"check"`
}

// CheckConfig describes the registered health check.
type CheckConfig struct {
	Enabled  bool          `koanf:"enabled"`
	ID       string        `koanf:"id"`
	Notes    string        `koanf:"notes"`
	Interval time.Duration `koanf:"interval"`

	DeregisterCriticalServiceAfter time.Duration `koanf:"deregister_critical_service_after"`

	// HTTP forces an HTTP check even when the heartbeat is enabled.
	HTTP          bool                `koanf:"http"`
	Method        string              `koanf:"method"`
	Headers       map[string][]string `koanf:"headers"`
	TLSSkipVerify *bool               `koanf:"tls_skip_verify"`
	InitialStatus string              `koanf:"initial_status"`
}

// HeartbeatConfig holds TTL heartbeat settings.
type HeartbeatConfig struct {
	Enabled     bool          `koanf:"enabled"`
	Interval    time.Duration `koanf:"interval"`
	CallTimeout time.Duration `koanf:"call_timeout"`
}

// Resolver modes.
const (
	ResolverSystem = "system"
	ResolverDNS    = "dns"
)

// ResolverConfig selects how host names are resolved when
// registration.prefer_ip_address is set.
type ResolverConfig struct {
	Mode       string        `koanf:"mode"`
	Nameserver string        `koanf:"nameserver"`
	Timeout    time.Duration `koanf:"timeout"`
}

// DiscoveryConfig holds service discovery settings.
type DiscoveryConfig struct {
	Scheme      string `koanf:"scheme"`
	PassingOnly bool   `koanf:"passing_only"`
	MaxWorkers  int    `koanf:"max_workers"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
