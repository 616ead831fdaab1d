package consul

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/config"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/httpclient"
)

// newTestGateway creates a Gateway pointing at the given test server with
// retry disabled and the circuit breaker tuned for fast tests.
func newTestGateway(t *testing.T, baseURL, datacenter string, opts ...httpclient.Option) *Gateway {
	t.Helper()
	return newGatewayWithAttempts(t, baseURL, datacenter, 1, opts...)
}

func newGatewayWithAttempts(t *testing.T, baseURL, datacenter string, attempts int, opts ...httpclient.Option) *Gateway {
	t.Helper()

	cfg := &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     attempts,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      1,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	}
	logger := slog.New(slog.DiscardHandler)

	return NewGateway(httpclient.New(cfg, "consul", nil, logger, opts...), datacenter, logger)
}

// writeJSON encodes v as JSON to the response writer, failing the test on error.
func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}

func TestGateway_Register(t *testing.T) {
	t.Parallel()

	var (
		gotBody  ServiceRegistrationDTO
		gotToken string
		gotDC    string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/v1/agent/service/register" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotToken = r.Header.Get("X-Consul-Token")
		gotDC = r.URL.Query().Get("dc")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	gw := newTestGateway(t, ts.URL, "dc1", httpclient.WithStaticHeader("X-Consul-Token", "secret"))
	err := gw.Register(context.Background(), &registration.Descriptor{
		Name: "orders",
		ID:   "orders-1",
		Port: 8080,
		Check: &registration.CheckDescriptor{
			Kind: registration.CheckKindTTL,
			ID:   "service:orders-1",
			TTL:  &registration.TTLCheck{TTL: 40 * time.Second},
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if gotToken != "secret" {
		t.Errorf("X-Consul-Token = %q, want secret", gotToken)
	}
	if gotDC != "dc1" {
		t.Errorf("dc = %q, want dc1", gotDC)
	}
	if gotBody.ID != "orders-1" || gotBody.Check == nil || gotBody.Check.TTL != "40s" {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestGateway_PassFailDeregister(t *testing.T) {
	t.Parallel()

	type call struct{ method, path, note string }
	var calls []call
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path, r.URL.Query().Get("note")})
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	gw := newTestGateway(t, ts.URL, "")
	ctx := context.Background()

	if err := gw.Pass(ctx, "service:orders-1"); err != nil {
		t.Fatalf("Pass() error = %v", err)
	}
	if err := gw.Fail(ctx, "service:orders-1", "disk full"); err != nil {
		t.Fatalf("Fail() error = %v", err)
	}
	if err := gw.Deregister(ctx, "orders-1"); err != nil {
		t.Fatalf("Deregister() error = %v", err)
	}

	want := []call{
		{http.MethodPut, "/v1/agent/check/pass/service:orders-1", ""},
		{http.MethodPut, "/v1/agent/check/fail/service:orders-1", "disk full"},
		{http.MethodPut, "/v1/agent/service/deregister/orders-1", ""},
	}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %+v, want %+v", calls, want)
	}
}

func TestGateway_PassUnknownCheck(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `CheckID "service:orders-1" does not have associated TTL`, http.StatusNotFound)
	}))
	defer ts.Close()

	err := newTestGateway(t, ts.URL, "").Pass(context.Background(), "service:orders-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Pass() error = %v, want ErrNotFound", err)
	}
}

func TestGateway_ServerErrorIsTransport(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rpc error", http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := newTestGateway(t, ts.URL, "").Pass(context.Background(), "service:orders-1")
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("Pass() error = %v, want ErrTransport", err)
	}
}

func TestGateway_RetriesOnlyReads(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		calls = map[string]int{}
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls[r.URL.Path]++
		n := calls[r.URL.Path]
		mu.Unlock()
		if n < 3 {
			http.Error(w, "no cluster leader", http.StatusInternalServerError)
			return
		}
		switch r.URL.Path {
		case "/v1/agent/services":
			writeJSON(t, w, map[string]any{"orders-1": map[string]any{"ID": "orders-1", "Service": "orders"}})
		case "/v1/health/service/orders":
			writeJSON(t, w, []any{})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer ts.Close()

	gw := newGatewayWithAttempts(t, ts.URL, "", 3)
	ctx := context.Background()

	if err := gw.Pass(ctx, "service:orders-1"); !errors.Is(err, domain.ErrTransport) {
		t.Errorf("Pass() error = %v, want ErrTransport", err)
	}
	if err := gw.Fail(ctx, "service:orders-1", "disk full"); !errors.Is(err, domain.ErrTransport) {
		t.Errorf("Fail() error = %v, want ErrTransport", err)
	}
	if err := gw.Register(ctx, &registration.Descriptor{ID: "orders-1", Name: "orders"}); !errors.Is(err, domain.ErrTransport) {
		t.Errorf("Register() error = %v, want ErrTransport", err)
	}
	if _, err := gw.ListServiceIDs(ctx); err != nil {
		t.Errorf("ListServiceIDs() error = %v, want recovery on the third attempt", err)
	}
	if _, err := gw.HealthService(ctx, "orders", false); err != nil {
		t.Errorf("HealthService() error = %v, want recovery on the third attempt", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := map[string]int{
		"/v1/agent/check/pass/service:orders-1": 1,
		"/v1/agent/check/fail/service:orders-1": 1,
		"/v1/agent/service/register":            1,
		"/v1/agent/services":                    3,
		"/v1/health/service/orders":             3,
	}
	for path, n := range want {
		if calls[path] != n {
			t.Errorf("calls[%s] = %d, want %d", path, calls[path], n)
		}
	}
}

func TestGateway_NetworkErrorIsTransport(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := newTestGateway(t, url, "").ListServiceIDs(context.Background())
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("ListServiceIDs() error = %v, want ErrTransport", err)
	}
}

func TestGateway_ListServiceIDs(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agent/services" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{
			"orders-1":  map[string]any{"ID": "orders-1", "Service": "orders", "Port": 8080},
			"billing-2": map[string]any{"ID": "billing-2", "Service": "billing"},
		})
	}))
	defer ts.Close()

	ids, err := newTestGateway(t, ts.URL, "").ListServiceIDs(context.Background())
	if err != nil {
		t.Fatalf("ListServiceIDs() error = %v", err)
	}
	slices.Sort(ids)
	if want := []string{"billing-2", "orders-1"}; !slices.Equal(ids, want) {
		t.Errorf("ListServiceIDs() = %v, want %v", ids, want)
	}
}

func TestGateway_HealthService(t *testing.T) {
	t.Parallel()

	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/health/service/orders" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		writeJSON(t, w, []map[string]any{{
			"Node": map[string]any{
				"ID": "a1", "Node": "node-a", "Address": "10.0.0.1",
				"Meta": map[string]string{"region": "eu"},
			},
			"Service": map[string]any{
				"ID": "orders-1", "Service": "orders", "Port": 8080,
				"Tags": []string{"region=us", "v=2"},
				"Meta": map[string]string{"v": "3"},
			},
			"Checks": []map[string]any{
				{"CheckID": "serfHealth", "Status": "passing"},
				{"CheckID": "service:orders-1", "Status": "passing"},
			},
		}})
	}))
	defer ts.Close()

	entries, err := newTestGateway(t, ts.URL, "").HealthService(context.Background(), "orders", true)
	if err != nil {
		t.Fatalf("HealthService() error = %v", err)
	}
	if gotQuery != "passing=true" {
		t.Errorf("query = %q, want passing=true", gotQuery)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Node.ID != "a1" || e.Service.ID != "orders-1" || e.Service.Port != 8080 || len(e.Checks) != 2 {
		t.Errorf("entry = %+v", e)
	}
}

func TestGateway_HealthCheck(t *testing.T) {
	t.Parallel()

	gw := newTestGateway(t, "http://127.0.0.1:8500", "")
	if gw.Name() != "consul" {
		t.Errorf("Name() = %q, want consul", gw.Name())
	}
	if err := gw.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil for closed breaker", err)
	}
}
