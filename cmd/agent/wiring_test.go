package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/consul-registrar/internal/app/registrar"
	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/config"
	"github.com/jsamuelsen11/consul-registrar/mocks"
)

// registryDouble stands in for a registry driver in the DI graph.
type registryDouble struct {
	*mocks.MockRegistryGateway
	*mocks.MockHealthReader
	*mocks.MockHealthChecker
}

// wiredAgent is the agent's DI graph with the registry driver mocked.
type wiredAgent struct {
	cfg      *config.Config
	inst     registration.Instance
	injector *do.RootScope
	gateway  *mocks.MockRegistryGateway
	checker  *mocks.MockHealthChecker
}

func newWiredAgent(t *testing.T, mutate func(*config.Config)) *wiredAgent {
	t.Helper()

	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	inst, err := newInstance(cfg, fixedHost("orders.local"))
	if err != nil {
		t.Fatalf("newInstance() error = %v", err)
	}
	inst.ID = "orders-1"

	a := &wiredAgent{
		cfg:      cfg,
		inst:     inst,
		injector: newInjector(cfg, testLogger(), nil, inst, "test"),
		gateway:  mocks.NewMockRegistryGateway(t),
		checker:  mocks.NewMockHealthChecker(t),
	}

	client := &backend{registryClient: registryDouble{a.gateway, mocks.NewMockHealthReader(t), a.checker}}
	do.OverrideValue(a.injector, client)
	registerHealthCheckers(a.injector, client)
	return a
}

func transportErr(msg string) error {
	return errors.Join(domain.ErrTransport, errors.New(msg))
}

func TestWiring_RegistryClientOutageStillPasses(t *testing.T) {
	t.Parallel()

	a := newWiredAgent(t, nil)
	a.checker.EXPECT().Name().Return("consul").Maybe()
	a.checker.EXPECT().HealthCheck(mock.Anything).
		Return(errors.New("consul: degraded (circuit breaker half-open)")).Maybe()
	ctx := context.Background()

	coordinator := do.MustInvoke[*registrar.Coordinator](a.injector)
	a.gateway.EXPECT().Register(mock.Anything, mock.Anything).Return(nil).Once()
	if err := coordinator.Register(ctx, a.inst); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	a.gateway.EXPECT().Pass(mock.Anything, "service:orders-1").Return(nil).Once()
	do.MustInvoke[*registrar.Heartbeat](a.injector).Beat(ctx)

	// The degraded client is visible on /health without failing the instance.
	rec := httptest.NewRecorder()
	do.MustInvoke[nethttp.Handler](a.injector).
		ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/health", nil))

	if rec.Code != nethttp.StatusOK {
		t.Errorf("GET /health status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "circuit breaker half-open") {
		t.Errorf("GET /health body = %s, want the registry client failure under checks", rec.Body.String())
	}
}

func TestWiring_FailedRegistrationRecoversWithHTTPCheck(t *testing.T) {
	t.Parallel()

	a := newWiredAgent(t, func(cfg *config.Config) {
		cfg.Registration.FailFast = false
		cfg.Registration.Check.HTTP = true
	})
	ctx := context.Background()

	if !heartbeatEnabled(a.cfg) {
		t.Fatal("heartbeatEnabled() = false, want a heartbeat to retry the registration")
	}

	coordinator := do.MustInvoke[*registrar.Coordinator](a.injector)
	a.gateway.EXPECT().Register(mock.Anything, mock.Anything).Return(transportErr("connection refused")).Once()
	if err := registerInstance(ctx, a.cfg, coordinator, a.inst, testLogger()); err != nil {
		t.Fatalf("registerInstance() error = %v, want startup to continue", err)
	}

	a.gateway.EXPECT().Register(mock.Anything, mock.MatchedBy(func(d *registration.Descriptor) bool {
		return d.ID == "orders-1" && d.Check != nil && d.Check.IsHTTP()
	})).Return(nil).Once()

	heartbeat := do.MustInvoke[*registrar.Heartbeat](a.injector)
	heartbeat.Beat(ctx)
	if !coordinator.IsRegistered(a.inst) {
		t.Fatal("IsRegistered() = false after the heartbeat retried the registration")
	}

	// The registry polls /health for an HTTP check; no TTL result is sent.
	heartbeat.Beat(ctx)
	a.gateway.AssertNotCalled(t, "Pass", mock.Anything, mock.Anything)
}

func TestWiring_FailedRegistrationAbortsWithoutHeartbeat(t *testing.T) {
	t.Parallel()

	a := newWiredAgent(t, func(cfg *config.Config) {
		cfg.Registration.FailFast = false
		cfg.Heartbeat.Enabled = false
	})

	coordinator := do.MustInvoke[*registrar.Coordinator](a.injector)
	a.gateway.EXPECT().Register(mock.Anything, mock.Anything).Return(transportErr("connection refused")).Once()

	err := registerInstance(context.Background(), a.cfg, coordinator, a.inst, testLogger())
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("registerInstance() error = %v, want the transport error since nothing retries", err)
	}
}
