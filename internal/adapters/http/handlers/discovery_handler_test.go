package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/dto"
	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/mocks"
)

func ordersView(t *testing.T) *catalog.ServiceHealthView {
	t.Helper()
	v, err := catalog.NewServiceHealthView(catalog.Entry{
		Node:    catalog.Node{ID: "node-a", Address: "10.0.0.1"},
		Service: catalog.Service{Name: "orders", ID: "orders-1", Port: 8080},
		Checks:  []catalog.CheckResult{{ID: "service:orders-1", Status: catalog.CheckPassing}},
	}, "")
	if err != nil {
		t.Fatalf("NewServiceHealthView() error = %v", err)
	}
	return v
}

func TestDiscovery_Instances(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockDiscoveryService(t)
	svc.EXPECT().Instances(mock.Anything, []string{"orders"}).Return(
		map[string][]*catalog.ServiceHealthView{"orders": {ordersView(t)}}, nil,
	)

	req := withChiParams(httptest.NewRequest(http.MethodGet, "/discovery/orders", nil),
		map[string]string{"service": "orders"})
	rec := httptest.NewRecorder()
	handlers.NewDiscoveryHandler(svc).Instances(rec, req)

	requireStatus(t, rec, http.StatusOK)

	resp := decodeJSON[dto.DiscoveryResponse](t, rec)
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Instances[0].URI != "http://10.0.0.1:8080" {
		t.Errorf("uri = %q, want http://10.0.0.1:8080", resp.Instances[0].URI)
	}
	if resp.Instances[0].Status != "UP" {
		t.Errorf("status = %q, want UP", resp.Instances[0].Status)
	}
}

func TestDiscovery_NoInstances(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockDiscoveryService(t)
	svc.EXPECT().Instances(mock.Anything, []string{"billing"}).Return(
		map[string][]*catalog.ServiceHealthView{"billing": nil}, nil,
	)

	req := withChiParams(httptest.NewRequest(http.MethodGet, "/discovery/billing", nil),
		map[string]string{"service": "billing"})
	rec := httptest.NewRecorder()
	handlers.NewDiscoveryHandler(svc).Instances(rec, req)

	requireStatus(t, rec, http.StatusOK)

	resp := decodeJSON[dto.DiscoveryResponse](t, rec)
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}
}

func TestDiscovery_RegistryFailure(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockDiscoveryService(t)
	svc.EXPECT().Instances(mock.Anything, []string{"orders"}).Return(
		map[string][]*catalog.ServiceHealthView{},
		fmt.Errorf("service orders: %w", domain.ErrTransport),
	)

	req := withChiParams(httptest.NewRequest(http.MethodGet, "/discovery/orders", nil),
		map[string]string{"service": "orders"})
	rec := httptest.NewRecorder()
	handlers.NewDiscoveryHandler(svc).Instances(rec, req)

	requireStatus(t, rec, http.StatusBadGateway)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}
