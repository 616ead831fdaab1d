package registration

import (
	"maps"
	"net"
	"net/url"
	"time"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
)

const (
	// DefaultHealthPath is polled by HTTP checks when no path is configured.
	DefaultHealthPath = "/health"

	// ttlGrace is added to the heartbeat interval to form the check TTL.
	ttlGrace = 10 * time.Second
)

// CheckConfig is the configured shape of the instance's health check.
type CheckConfig struct {
	Enabled                        bool
	ID                             string
	Notes                          string
	Interval                       time.Duration
	DeregisterCriticalServiceAfter time.Duration

	// ForceHTTP selects an HTTP check even when the heartbeat is enabled.
	ForceHTTP     bool
	Method        string
	Headers       map[string][]string
	TLSSkipVerify *bool

	// InitialStatus defaults to passing when empty.
	InitialStatus catalog.CheckStatus
}

// HeartbeatConfig is the subset of heartbeat settings the check depends on.
type HeartbeatConfig struct {
	Enabled  bool
	Interval time.Duration
}

// CheckTarget locates the endpoint an HTTP check polls.
type CheckTarget struct {
	ServiceID       string
	BaseURL         *url.URL
	HealthPath      string
	Address         string
	PreferIPAddress bool
}

// BuildCheck derives the check descriptor from configuration. It returns
// nil, nil when checks are disabled.
func BuildCheck(cfg CheckConfig, hb HeartbeatConfig, target CheckTarget) (*CheckDescriptor, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	status := cfg.InitialStatus
	if status == "" {
		status = catalog.CheckPassing
	}
	if !status.IsValid() {
		return nil, domain.NewConfigurationError("registration.check.initial_status",
			"unknown check status "+string(status), nil)
	}

	desc := &CheckDescriptor{
		ID:                             CheckID(cfg.ID, target.ServiceID),
		Notes:                          cfg.Notes,
		DeregisterCriticalServiceAfter: cfg.DeregisterCriticalServiceAfter,
		Status:                         status,
	}

	if hb.Enabled && !cfg.ForceHTTP {
		desc.Kind = CheckKindTTL
		desc.TTL = &TTLCheck{TTL: hb.Interval + ttlGrace}
		return desc, nil
	}

	checkURL, err := healthURL(target)
	if err != nil {
		return nil, err
	}

	desc.Kind = CheckKindHTTP
	desc.HTTP = &HTTPCheck{
		Interval:      cfg.Interval,
		URL:           checkURL.String(),
		Method:        cfg.Method,
		Header:        maps.Clone(cfg.Headers),
		TLSSkipVerify: cfg.TLSSkipVerify,
	}
	return desc, nil
}

func healthURL(target CheckTarget) (*url.URL, error) {
	if target.BaseURL == nil || target.BaseURL.Host == "" {
		return nil, domain.NewConfigurationError("registration.host", "instance base URL is required for HTTP checks", nil)
	}

	base := *target.BaseURL
	if target.PreferIPAddress && target.Address != "" {
		if port := base.Port(); port != "" {
			base.Host = net.JoinHostPort(target.Address, port)
		} else {
			base.Host = bracketIPv6(target.Address)
		}
	}

	path := target.HealthPath
	if path == "" {
		path = DefaultHealthPath
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, domain.NewConfigurationError("registration.health_path", "health path is not a valid URL reference", err)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Host == "" {
		return nil, domain.NewConfigurationError("registration.health_path", "health URL has no host", nil)
	}
	return resolved, nil
}

func bracketIPv6(host string) string {
	if ip := net.ParseIP(host); ip != nil && ip.To4() == nil {
		return "[" + host + "]"
	}
	return host
}
