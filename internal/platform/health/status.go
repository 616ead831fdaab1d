package health

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthFacility = (*Facility)(nil)

// Facility folds the results of a [ports.HealthRegistry] into a single
// UP/DOWN status. Any failing checker makes the instance DOWN; the
// description joins the failures with "; ", ordered by checker name.
// Checker errors are used as-is, so a checker that wants its name in the
// note prefixes its own error.
type Facility struct {
	registry ports.HealthRegistry
	logger   *slog.Logger
}

// NewFacility creates a Facility over registry.
func NewFacility(registry ports.HealthRegistry, logger *slog.Logger) *Facility {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Facility{registry: registry, logger: logger}
}

// Status runs every registered check and aggregates the results.
func (f *Facility) Status(ctx context.Context) domain.HealthStatus {
	results := f.registry.CheckAll(ctx)

	names := make([]string, 0, len(results))
	for name, err := range results {
		if err != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return domain.Up()
	}
	sort.Strings(names)

	failures := make([]string, len(names))
	for i, name := range names {
		failures[i] = results[name].Error()
	}
	desc := strings.Join(failures, "; ")

	f.logger.DebugContext(ctx, "instance health is down",
		slog.Int("failing", len(names)),
		slog.String("description", desc),
	)
	return domain.Down(desc)
}
