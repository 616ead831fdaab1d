// Package resolver resolves the advertised host of an instance to an IP address.
// Two resolvers are provided: the operating system's resolver, and a
// resolver that queries one configured nameserver directly (for example a
// Consul agent's DNS interface).
package resolver

import (
	"context"
	"fmt"
	"net"

	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.AddressResolver = (*SystemResolver)(nil)
	_ ports.AddressResolver = (*NameserverResolver)(nil)
)

// SystemResolver resolves through net.Resolver, honoring /etc/hosts and
// the system's resolv.conf.
type SystemResolver struct {
	resolver *net.Resolver
}

// NewSystemResolver returns a resolver backed by net.DefaultResolver.
func NewSystemResolver() *SystemResolver {
	return &SystemResolver{resolver: net.DefaultResolver}
}

// Resolve returns the first IPv4 address of host, or its first address
// when it has no IPv4 address. IP literals are returned unchanged.
func (r *SystemResolver) Resolve(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}

	addrs, err := r.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", host, err)
	}

	ips := make([]net.IP, len(addrs))
	for i, a := range addrs {
		ips[i] = a.IP
	}
	return pick(host, ips)
}

// pick prefers IPv4 addresses.
func pick(host string, ips []net.IP) (string, error) {
	if len(ips) == 0 {
		return "", fmt.Errorf("resolving %s: no addresses", host)
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return ips[0].String(), nil
}
