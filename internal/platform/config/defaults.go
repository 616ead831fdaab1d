package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultDiscoveryMaxWorkers = 4
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"registry.driver":                                 DriverConsul,
		"registry.call_timeout":                           "10s",
		"registry.consul.base_url":                        "http://127.0.0.1:8500",
		"registry.consul.token":                           "",
		"registry.consul.datacenter":                      "",
		"registry.consul.timeout":                         "10s",
		"registry.consul.retry.max_attempts":              defaultRetryMaxAttempts,
		"registry.consul.retry.initial_interval":          "100ms",
		"registry.consul.retry.max_interval":              "2s",
		"registry.consul.retry.multiplier":                defaultRetryMultiplier,
		"registry.consul.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"registry.consul.circuit_breaker.timeout":         "30s",
		"registry.consul.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"registry.consul.rate_limit.requests_per_second":  0,
		"registry.consul.rate_limit.burst_size":           0,
		"registry.etcd.dial_timeout":                      "5s",
		"registry.etcd.prefix":                            "/services",
		"registry.etcd.lease_ttl":                         "0s",

		"registration.enabled":                                 true,
		"registration.instance_id":                             "",
		"registration.host":                                    "",
		"registration.port":                                    0,
		"registration.scheme":                                  "http",
		"registration.prefer_ip_address":                       false,
		"registration.ip_addr":                                 "",
		"registration.health_path":                             "/health",
		"registration.group":                                   "",
		"registration.zone":                                    "",
		"registration.fail_fast":                               true,
		"registration.check.enabled":                           true,
		"registration.check.id":                                "",
		"registration.check.notes":                             "",
		"registration.check.interval":                          "15s",
		"registration.check.deregister_critical_service_after": "0s",
		"registration.check.http":                              false,
		"registration.check.method":                            "",
		"registration.check.initial_status":                    "passing",

		"heartbeat.enabled":      true,
		"heartbeat.interval":     "15s",
		"heartbeat.call_timeout": "5s",

		"resolver.mode":       ResolverSystem,
		"resolver.nameserver": "",
		"resolver.timeout":    "2s",

		"discovery.scheme":       "http",
		"discovery.passing_only": false,
		"discovery.max_workers":  defaultDiscoveryMaxWorkers,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "",
	}
}
