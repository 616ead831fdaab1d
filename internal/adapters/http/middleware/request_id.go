package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/consul-registrar/internal/platform/httpclient"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores id in ctx for this package and for httpclient, so
// outbound registry calls made while serving the request carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return httpclient.WithRequestID(ctx, id)
}

// RequestIDFromContext returns the request ID, or "" when none is stored.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// CorrelationIDFromContext returns the correlation ID, or "" when none is
// stored.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID returns middleware that reuses the incoming X-Request-ID or
// generates a UUID v4. X-Correlation-ID is reused when present and
// otherwise defaults to the request ID. Both are echoed as response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			corrID := r.Header.Get(headerCorrelationID)
			if corrID == "" {
				corrID = id
			}

			ctx := WithRequestID(r.Context(), id)
			ctx = context.WithValue(ctx, correlationIDKey{}, corrID)
			ctx = httpclient.WithCorrelationID(ctx, corrID)

			w.Header().Set(headerRequestID, id)
			w.Header().Set(headerCorrelationID, corrID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
