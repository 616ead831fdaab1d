// Package discovery resolves instances of other services from the registry's
// health endpoint and exposes them as normalized health views.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jsamuelsen11/consul-registrar/internal/app/fanout"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// Compile-time check that Service implements ports.DiscoveryService.
var _ ports.DiscoveryService = (*Service)(nil)

const defaultMaxWorkers = 4

// Config controls how instances are queried and presented.
type Config struct {
	// Scheme is used to build instance URIs. Defaults to http.
	Scheme string

	// PassingOnly asks the registry to omit instances with failing checks.
	PassingOnly bool

	// MaxWorkers bounds concurrent registry queries.
	MaxWorkers int
}

// Service implements [ports.DiscoveryService] over a [ports.HealthReader].
type Service struct {
	reader ports.HealthReader
	cfg    Config
	logger *slog.Logger
}

// NewService creates a discovery Service. logger may be nil.
func NewService(reader ports.HealthReader, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = defaultMaxWorkers
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{reader: reader, cfg: cfg, logger: logger}
}

type lookup struct {
	name  string
	views []*catalog.ServiceHealthView
}

// Instances queries every named service concurrently. Entries whose URI
// cannot be built are skipped and logged. A failed lookup is reported in the
// joined error and its service is absent from the result.
func (s *Service) Instances(ctx context.Context, names []string) (map[string][]*catalog.ServiceHealthView, error) {
	unique := slices.Compact(slices.Sorted(slices.Values(names)))

	results := fanout.Run(ctx, s.cfg.MaxWorkers, unique, func(ctx context.Context, name string) (lookup, error) {
		views, err := s.instances(ctx, name)
		if err != nil {
			return lookup{}, fmt.Errorf("service %s: %w", name, err)
		}
		return lookup{name: name, views: views}, nil
	})

	out := make(map[string][]*catalog.ServiceHealthView, len(results))
	for _, r := range results {
		if r.Err == nil {
			out[r.Value.name] = r.Value.views
		}
	}

	if errs := fanout.Errors(results); len(errs) > 0 {
		s.logger.WarnContext(ctx, "service discovery incomplete",
			slog.String("operation", "Instances"),
			slog.Int("failed", len(errs)),
			slog.Any("error", errors.Join(errs...)),
		)
		return out, errors.Join(errs...)
	}
	return out, nil
}

func (s *Service) instances(ctx context.Context, name string) ([]*catalog.ServiceHealthView, error) {
	entries, err := s.reader.HealthService(ctx, name, s.cfg.PassingOnly)
	if err != nil {
		return nil, err
	}

	views := make([]*catalog.ServiceHealthView, 0, len(entries))
	for _, e := range entries {
		v, err := catalog.NewServiceHealthView(e, s.cfg.Scheme)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping instance with invalid URI",
				slog.String("service", name),
				slog.String("service_id", e.Service.InstanceID()),
				slog.Any("error", err),
			)
			continue
		}
		views = append(views, v)
	}
	return views, nil
}
