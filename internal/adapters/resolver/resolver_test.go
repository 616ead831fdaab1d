package resolver

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startServer runs a UDP nameserver on a random local port that answers
// from records ("name." → A/AAAA value).
func startServer(t *testing.T, records map[string]dns.RR) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		resp := new(dns.Msg)
		resp.SetReply(req)
		q := req.Question[0]
		rr, ok := records[q.Name]
		switch {
		case !ok:
			resp.Rcode = dns.RcodeNameError
		case rr.Header().Rrtype == q.Qtype:
			resp.Answer = append(resp.Answer, rr)
		}
		_ = w.WriteMsg(resp)
	})

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func mustRR(t *testing.T, s string) dns.RR {
	t.Helper()
	rr, err := dns.NewRR(s)
	if err != nil {
		t.Fatalf("NewRR(%q): %v", s, err)
	}
	return rr
}

func TestNameserverResolver_Resolve(t *testing.T) {
	t.Parallel()

	addr := startServer(t, map[string]dns.RR{
		"orders.service.consul.": mustRR(t, "orders.service.consul. 0 IN A 10.0.0.5"),
		"v6.service.consul.":     mustRR(t, "v6.service.consul. 0 IN AAAA 2001:db8::1"),
	})
	r := NewNameserverResolver(addr, 2*time.Second, nil)

	tests := []struct {
		name    string
		host    string
		want    string
		wantErr string
	}{
		{name: "A record", host: "orders.service.consul", want: "10.0.0.5"},
		{name: "AAAA fallback", host: "v6.service.consul", want: "2001:db8::1"},
		{name: "IP literal", host: "192.168.1.10", want: "192.168.1.10"},
		{name: "unknown host", host: "missing.service.consul", wantErr: "no such host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Resolve(context.Background(), tt.host)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewNameserverResolver_DefaultPort(t *testing.T) {
	t.Parallel()

	r := NewNameserverResolver("127.0.0.1", time.Second, nil)
	if r.nameserver != "127.0.0.1:53" {
		t.Errorf("nameserver = %q, want 127.0.0.1:53", r.nameserver)
	}
}

func TestSystemResolver_Resolve(t *testing.T) {
	t.Parallel()

	r := NewSystemResolver()

	got, err := r.Resolve(context.Background(), "::1")
	if err != nil || got != "::1" {
		t.Errorf("Resolve(::1) = %q, %v; want ::1", got, err)
	}

	got, err = r.Resolve(context.Background(), "localhost")
	if err != nil {
		t.Fatalf("Resolve(localhost) error = %v", err)
	}
	if ip := net.ParseIP(got); ip == nil || !ip.IsLoopback() {
		t.Errorf("Resolve(localhost) = %q, want loopback", got)
	}
}

func TestPick_PrefersIPv4(t *testing.T) {
	t.Parallel()

	got, err := pick("h", []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("10.0.0.1")})
	if err != nil || got != "10.0.0.1" {
		t.Errorf("pick() = %q, %v; want 10.0.0.1", got, err)
	}

	if _, err := pick("h", nil); err == nil {
		t.Error("pick(nil) error = nil, want error")
	}
}
