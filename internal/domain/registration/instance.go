package registration

import (
	"maps"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
)

const defaultScheme = "http"

// Instance is the local, addressable service process being advertised.
type Instance struct {
	// Name is the logical service name registered with the registry.
	Name string `field:"registration.name" validate:"required,max=128,servicename"`

	// ID is an optional explicit instance ID. It is an input to the
	// IDGenerator, which always has the final say.
	ID string `field:"registration.instance_id" validate:"omitempty,max=128"`

	Host   string `field:"registration.host" validate:"required"`
	Port   int    `field:"registration.port" validate:"gte=0,lte=65535"`
	Scheme string `field:"registration.scheme" validate:"omitempty,oneof=http https"`

	Group string `field:"registration.group" validate:"omitempty,servicename"`
	Zone  string `field:"registration.zone" validate:"omitempty,servicename"`

	// Metadata entries are advertised as key=value tags.
	Metadata map[string]string
}

// BaseURL returns scheme://host[:port] for the instance. The port is
// omitted when zero.
func (i Instance) BaseURL() (*url.URL, error) {
	scheme := i.Scheme
	if scheme == "" {
		scheme = defaultScheme
	}

	host := i.Host
	switch {
	case i.Port > 0:
		host = net.JoinHostPort(i.Host, strconv.Itoa(i.Port))
	case strings.Contains(i.Host, ":") && !strings.HasPrefix(i.Host, "["):
		host = "[" + i.Host + "]"
	}

	u, err := url.Parse(scheme + "://" + host)
	if err != nil || u.Host == "" {
		return nil, domain.NewConfigurationError("registration.host", "instance base URL is invalid", err)
	}
	return u, nil
}

// MetadataTags renders the instance metadata as key=value tags in sorted key
// order.
func (i Instance) MetadataTags() []string {
	tags := make([]string, 0, len(i.Metadata))
	for _, k := range slices.Sorted(maps.Keys(i.Metadata)) {
		tags = append(tags, k+"="+i.Metadata[k])
	}
	return tags
}
