// Package logging builds the agent's structured logger and carries it
// through request and heartbeat contexts.
//
// The agent runs beside the instance it registers, so its log lines are
// usually interleaved with that instance's own output. Every line carries
// the registered service name under "agent.service":
//
//	logger := logging.New("info", "json", os.Stderr, logging.ServiceAttr("orders"))
//
// Context propagation (used by middleware to enrich with request metadata):
//
//	ctx = logging.WithLogger(ctx, logger)
//	logger = logging.FromContext(ctx)
//
// Registry failures are logged with the operation, the service or check
// identifier and the full error chain:
//
//	logger.WarnContext(ctx, "failed to report passing check",
//	    slog.String("operation", "Pulsate"),
//	    slog.String("check_id", checkID),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// ServiceKey is the attribute key naming the service the agent speaks for.
const ServiceKey = "agent.service"

type contextKey struct{}

// New creates the agent logger.
//
// level is one of "debug", "info", "warn" (or "warning") and "error";
// anything else means info. Debug output includes the source location.
// format "text" selects slog.NewTextHandler, every other value JSON.
// attrs are attached to every record. Sensitive attributes (the ACL
// token among them) are masked.
func New(level, format string, w io.Writer, attrs ...slog.Attr) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(handler)
}

// ServiceAttr tags records with the registered service name. An empty name
// yields an empty attribute, which handlers drop.
func ServiceAttr(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String(ServiceKey, name)
}

// WithLogger returns a new context with the given logger stored in it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a *slog.Logger from the context.
// If no logger is stored, it returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
