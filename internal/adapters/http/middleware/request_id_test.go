package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/middleware"
)

func TestRequestID_GeneratesUUID(t *testing.T) {
	t.Parallel()

	var gotID, gotCorr string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID = middleware.RequestIDFromContext(r.Context())
		gotCorr = middleware.CorrelationIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if _, err := uuid.Parse(gotID); err != nil {
		t.Errorf("request ID %q is not a UUID: %v", gotID, err)
	}
	if gotCorr != gotID {
		t.Errorf("correlation ID = %q, want request ID %q", gotCorr, gotID)
	}
	if rec.Header().Get("X-Request-ID") != gotID {
		t.Errorf("X-Request-ID response header = %q, want %q", rec.Header().Get("X-Request-ID"), gotID)
	}
	if rec.Header().Get("X-Correlation-ID") != gotID {
		t.Errorf("X-Correlation-ID response header = %q, want %q", rec.Header().Get("X-Correlation-ID"), gotID)
	}
}

func TestRequestID_ReusesIncomingHeaders(t *testing.T) {
	t.Parallel()

	var gotID, gotCorr string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID = middleware.RequestIDFromContext(r.Context())
		gotCorr = middleware.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/registration", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("X-Correlation-ID", "corr-456")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != "req-123" {
		t.Errorf("request ID = %q, want req-123", gotID)
	}
	if gotCorr != "corr-456" {
		t.Errorf("correlation ID = %q, want corr-456", gotCorr)
	}
}

func TestRequestID_UniqueAcrossRequests(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen[middleware.RequestIDFromContext(r.Context())] = true
	}))

	for range 10 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	}
	if len(seen) != 10 {
		t.Errorf("unique IDs = %d, want 10", len(seen))
	}
}

func TestRequestIDFromContext_NotFound(t *testing.T) {
	t.Parallel()

	if id := middleware.RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", id)
	}
	if id := middleware.CorrelationIDFromContext(context.Background()); id != "" {
		t.Errorf("CorrelationIDFromContext() = %q, want empty", id)
	}
}
