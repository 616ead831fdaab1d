package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/miekg/dns"
)

// NameserverResolver sends A and AAAA queries to a single nameserver.
type NameserverResolver struct {
	client     *dns.Client
	nameserver string
	logger     *slog.Logger
}

// NewNameserverResolver queries nameserver ("host:port"; port 53 is
// assumed when missing). timeout bounds each exchange.
func NewNameserverResolver(nameserver string, timeout time.Duration, logger *slog.Logger) *NameserverResolver {
	if _, _, err := net.SplitHostPort(nameserver); err != nil {
		nameserver = net.JoinHostPort(nameserver, "53")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &NameserverResolver{
		client:     &dns.Client{Net: "udp", Timeout: timeout},
		nameserver: nameserver,
		logger:     logger,
	}
}

// Resolve returns the first A record for host, falling back to AAAA. IP
// literals are returned unchanged.
func (r *NameserverResolver) Resolve(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		ips, err := r.query(ctx, host, qtype)
		if err != nil {
			return "", err
		}
		if len(ips) > 0 {
			return ips[0].String(), nil
		}
	}
	return "", fmt.Errorf("resolving %s via %s: no addresses", host, r.nameserver)
}

func (r *NameserverResolver) query(ctx context.Context, host string, qtype uint16) ([]net.IP, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	resp, rtt, err := r.client.ExchangeContext(ctx, m, r.nameserver)
	if err != nil {
		return nil, fmt.Errorf("resolving %s via %s: %w", host, r.nameserver, err)
	}

	r.logger.DebugContext(ctx, "dns exchange",
		slog.String("host", host),
		slog.String("type", dns.TypeToString[qtype]),
		slog.String("rcode", dns.RcodeToString[resp.Rcode]),
		slog.Duration("rtt", rtt),
	)

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, fmt.Errorf("resolving %s via %s: no such host", host, r.nameserver)
	default:
		return nil, fmt.Errorf("resolving %s via %s: %s", host, r.nameserver, dns.RcodeToString[resp.Rcode])
	}

	var ips []net.IP
	for _, rr := range resp.Answer {
		switch rec := rr.(type) {
		case *dns.A:
			ips = append(ips, rec.A)
		case *dns.AAAA:
			ips = append(ips, rec.AAAA)
		}
	}
	return ips, nil
}
