package catalog

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
)

const defaultScheme = "http"

// ServiceHealthView is the normalized, read-only view of one registry health
// entry. It is built fresh for every registry query.
type ServiceHealthView struct {
	entry    Entry
	uri      *url.URL
	metadata func() *Metadata
}

// NewServiceHealthView validates entry and derives its URI. The address is the
// service address, falling back to the node address; the port suffix is
// omitted when no port is registered. An empty scheme means "http".
//
// Construction fails with [domain.ErrInvalidURI] when no address is available
// or the resulting URI is not syntactically valid.
func NewServiceHealthView(entry Entry, scheme string) (*ServiceHealthView, error) {
	if entry.Service.Name == "" {
		return nil, fmt.Errorf("health entry has no service name: %w", domain.ErrInvalidURI)
	}
	if scheme == "" {
		scheme = defaultScheme
	}

	address := entry.Service.Address
	if address == "" {
		address = entry.Node.Address
	}
	if address == "" {
		return nil, fmt.Errorf("service %q has no address: %w", entry.Service.Name, domain.ErrInvalidURI)
	}

	raw := scheme + "://" + hostPort(address, entry.Service.Port)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("service %q: %q: %w", entry.Service.Name, raw, domain.ErrInvalidURI)
	}

	v := &ServiceHealthView{entry: entry.clone(), uri: u}
	v.metadata = sync.OnceValue(func() *Metadata {
		return BuildMetadata(v.entry.Node.Meta, v.entry.Service.Tags, v.entry.Service.Meta)
	})
	return v, nil
}

func hostPort(address string, port int) string {
	if port > 0 {
		return net.JoinHostPort(address, strconv.Itoa(port))
	}
	if strings.Contains(address, ":") && !strings.HasPrefix(address, "[") {
		return "[" + address + "]"
	}
	return address
}

// ID returns the registry instance ID (service name when none is set).
func (v *ServiceHealthView) ID() string {
	return v.entry.Service.InstanceID()
}

// Name returns the logical service name.
func (v *ServiceHealthView) Name() string {
	return v.entry.Service.Name
}

// URI returns a copy of the derived instance URI.
func (v *ServiceHealthView) URI() *url.URL {
	u := *v.uri
	return &u
}

// Node returns the hosting node.
func (v *ServiceHealthView) Node() Node {
	return v.entry.clone().Node
}

// Service returns the service entry.
func (v *ServiceHealthView) Service() Service {
	return v.entry.clone().Service
}

// Checks returns the reported checks in registry order.
func (v *ServiceHealthView) Checks() []CheckResult {
	return append([]CheckResult(nil), v.entry.Checks...)
}

// Status aggregates the reported checks into one UP/DOWN value.
func (v *ServiceHealthView) Status() domain.HealthStatus {
	return Aggregate(v.entry.Checks)
}

// Metadata returns the flattened metadata, computed on first use. Concurrent
// first callers all observe the same fully built value.
func (v *ServiceHealthView) Metadata() *Metadata {
	return v.metadata()
}
