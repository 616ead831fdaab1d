// Package registrar keeps the local instance's registry entry consistent with
// its liveness. The Coordinator registers and deregisters instances, reports
// TTL check results, and re-registers when the registry has forgotten an
// instance. The Heartbeat drives the Coordinator on a fixed interval.
package registrar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/telemetry"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// Compile-time check that Coordinator implements ports.RegistrationService.
var _ ports.RegistrationService = (*Coordinator)(nil)

// Config holds the registration settings shared by every instance the
// coordinator manages.
type Config struct {
	Settings  registration.Settings
	Check     registration.CheckConfig
	Heartbeat registration.HeartbeatConfig

	// HealthPath is the path HTTP checks poll, relative to the instance base
	// URL. Defaults to registration.DefaultHealthPath.
	HealthPath string

	// PreferIPAddress advertises an IP address instead of the host name.
	// IPAddress is used when set; otherwise the host is resolved.
	PreferIPAddress bool
	IPAddress       string

	Environment registration.Environment

	// CallTimeout bounds each registry call on its own, so a pass that hangs
	// until its deadline still leaves the self-heal list and register a full
	// budget. [WithCallTimeout] overrides it per context. Zero leaves calls
	// bounded by the caller's context only.
	CallTimeout time.Duration

	// IDGenerator defaults to registration.DefaultIDGenerator.
	IDGenerator registration.IDGenerator
}

// Coordinator implements [ports.RegistrationService] over a
// [ports.RegistryGateway]. It is safe for concurrent use.
type Coordinator struct {
	gateway  ports.RegistryGateway
	resolver ports.AddressResolver
	cfg      Config
	metrics  ports.RegistrarMetrics
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry

	closing atomic.Bool
}

// NewCoordinator creates a Coordinator. resolver may be nil when
// PreferIPAddress is off or a static IPAddress is configured. metrics and
// logger may be nil.
func NewCoordinator(
	gateway ports.RegistryGateway,
	resolver ports.AddressResolver,
	cfg Config,
	metrics ports.RegistrarMetrics,
	logger *slog.Logger,
) *Coordinator {
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = registration.DefaultIDGenerator
	}
	if metrics == nil {
		metrics = (*telemetry.Metrics)(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{
		gateway:  gateway,
		resolver: resolver,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		entries:  make(map[string]*entry),
	}
}

// ServiceID returns the registry-facing ID of inst.
func (c *Coordinator) ServiceID(inst registration.Instance) string {
	return c.cfg.IDGenerator(c.cfg.Environment, inst)
}

// CheckID returns the ID of the TTL check registered for inst.
func (c *Coordinator) CheckID(inst registration.Instance) string {
	return registration.CheckID(c.cfg.Check.ID, c.ServiceID(inst))
}

// Register builds a fresh descriptor for inst and registers it. On success
// the instance is Registered; on failure it stays Unregistered and the error
// is returned.
func (c *Coordinator) Register(ctx context.Context, inst registration.Instance) error {
	if err := inst.Validate(); err != nil {
		c.metrics.RecordRegistration(ctx, inst.Name, telemetry.ResultInvalid)
		c.logger.ErrorContext(ctx, "invalid registration",
			slog.String("operation", "Register"),
			slog.String("service", inst.Name),
			slog.Any("error", err),
		)
		return err
	}

	id := c.ServiceID(inst)
	e := c.entry(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if c.closing.Load() {
		return domain.ErrClosed
	}

	return c.registerLocked(ctx, inst, id, e, false)
}

// registerLocked performs one register call. e.mu must be held. A failed
// self-heal leaves the instance marked registered so the next heartbeat
// tries again.
func (c *Coordinator) registerLocked(ctx context.Context, inst registration.Instance, id string, e *entry, selfHeal bool) error {
	prev := e.load()
	e.store(StateRegistering)

	logger := c.logger.With(slog.String("service_id", id))

	desc, err := c.buildDescriptor(ctx, inst, id)
	if err == nil {
		callCtx, cancel := c.call(ctx)
		err = c.gateway.Register(callCtx, desc)
		cancel()
	}

	if err != nil {
		result := telemetry.ResultError
		if errors.Is(err, domain.ErrConfiguration) {
			result = telemetry.ResultInvalid
		}
		c.metrics.RecordRegistration(ctx, inst.Name, result)

		if selfHeal && e.registered.Load() {
			e.store(StateRegistered)
		} else {
			e.store(prevOrUnregistered(prev))
		}

		logger.ErrorContext(ctx, "failed to register service",
			slog.String("operation", "Register"),
			slog.String("service", inst.Name),
			slog.Bool("self_heal", selfHeal),
			slog.Any("error", err),
		)
		return fmt.Errorf("registering %s: %w", id, err)
	}

	e.registered.Store(true)
	e.store(StateRegistered)
	c.metrics.RecordRegistration(ctx, inst.Name, telemetry.ResultSuccess)

	attrs := []any{
		slog.String("service", inst.Name),
		slog.String("address", desc.Address),
		slog.Int("port", desc.Port),
		slog.Bool("self_heal", selfHeal),
	}
	if desc.Check != nil {
		attrs = append(attrs,
			slog.String("check_id", desc.Check.ID),
			slog.String("check_kind", desc.Check.Kind.String()),
		)
	}
	logger.InfoContext(ctx, "registered service", attrs...)
	return nil
}

func prevOrUnregistered(prev State) State {
	if prev == StateRegistered || prev == StatePulsating {
		return StateRegistered
	}
	return StateUnregistered
}

func (c *Coordinator) buildDescriptor(ctx context.Context, inst registration.Instance, id string) (*registration.Descriptor, error) {
	address, err := c.resolveAddress(ctx, inst)
	if err != nil {
		return nil, err
	}

	base, err := inst.BaseURL()
	if err != nil {
		return nil, err
	}

	check, err := registration.BuildCheck(c.cfg.Check, c.cfg.Heartbeat, registration.CheckTarget{
		ServiceID:       id,
		BaseURL:         base,
		HealthPath:      c.cfg.HealthPath,
		Address:         address,
		PreferIPAddress: c.cfg.PreferIPAddress,
	})
	if err != nil {
		return nil, err
	}

	return registration.NewDescriptor(inst, id, address, c.cfg.Settings, check), nil
}

// resolveAddress returns the host unless PreferIPAddress is set, in which
// case the static IP wins and a DNS lookup is the fallback. A failed lookup
// is fatal for the attempt.
func (c *Coordinator) resolveAddress(ctx context.Context, inst registration.Instance) (string, error) {
	if !c.cfg.PreferIPAddress {
		return inst.Host, nil
	}
	if c.cfg.IPAddress != "" {
		return c.cfg.IPAddress, nil
	}
	if c.resolver == nil {
		return "", domain.NewConfigurationError("registration.ip_addr",
			"prefer_ip_address is set but no IP address or resolver is configured", nil)
	}

	addr, err := c.resolver.Resolve(ctx, inst.Host)
	if err != nil {
		return "", domain.NewConfigurationError("registration.host",
			"failed to resolve "+inst.Host, err)
	}
	return addr, nil
}

// heartbeatActive reports whether registrations carry a TTL check the
// instance must keep alive.
func (c *Coordinator) heartbeatActive() bool {
	return c.cfg.Check.Enabled && c.cfg.Heartbeat.Enabled && !c.cfg.Check.ForceHTTP
}

// Pulsate reports status to the instance's TTL check. It is a no-op unless
// a TTL check is in use, the instance is registered and the coordinator is
// not closing. A failed pass triggers one reconciliation: if the registry no
// longer lists the instance it is registered again. Failures are logged, not
// returned.
func (c *Coordinator) Pulsate(ctx context.Context, inst registration.Instance, status domain.HealthStatus) {
	if c.closing.Load() || !c.heartbeatActive() {
		return
	}

	id := c.ServiceID(inst)
	e := c.lookup(id)
	if e == nil || !e.registered.Load() {
		return
	}

	// Register and deregister own the state while they run.
	if !e.transition(StateRegistered, StatePulsating) {
		c.logger.DebugContext(ctx, "skipping pulsate",
			slog.String("service_id", id),
			slog.String("state", e.load().String()),
		)
		return
	}
	defer e.transition(StatePulsating, StateRegistered)

	checkID := registration.CheckID(c.cfg.Check.ID, id)
	logger := c.logger.With(slog.String("service_id", id), slog.String("check_id", checkID))

	if !status.IsUp() {
		callCtx, cancel := c.call(ctx)
		err := c.gateway.Fail(callCtx, checkID, status.Description)
		cancel()
		if c.closing.Load() {
			return
		}
		if err != nil {
			c.metrics.RecordHeartbeat(ctx, inst.Name, "critical", telemetry.ResultError)
			logger.WarnContext(ctx, "failed to report critical check",
				slog.String("operation", "Pulsate"),
				slog.String("description", status.Description),
				slog.Any("error", err),
			)
			return
		}
		c.metrics.RecordHeartbeat(ctx, inst.Name, "critical", telemetry.ResultSuccess)
		logger.DebugContext(ctx, "reported critical check", slog.String("description", status.Description))
		return
	}

	callCtx, cancel := c.call(ctx)
	err := c.gateway.Pass(callCtx, checkID)
	cancel()
	if c.closing.Load() {
		return
	}
	if err == nil {
		c.metrics.RecordHeartbeat(ctx, inst.Name, "passing", telemetry.ResultSuccess)
		return
	}

	c.metrics.RecordHeartbeat(ctx, inst.Name, "passing", telemetry.ResultError)
	logger.WarnContext(ctx, "failed to report passing check",
		slog.String("operation", "Pulsate"),
		slog.Any("error", err),
	)

	c.selfHeal(ctx, inst, id, e)
}

// selfHeal re-registers the instance when the registry no longer lists it.
func (c *Coordinator) selfHeal(ctx context.Context, inst registration.Instance, id string, e *entry) {
	callCtx, cancel := c.call(ctx)
	ids, err := c.gateway.ListServiceIDs(callCtx)
	cancel()
	if err != nil {
		c.metrics.RecordSelfHeal(ctx, inst.Name, telemetry.ResultError)
		c.logger.ErrorContext(ctx, "failed to list registered services",
			slog.String("operation", "SelfHeal"),
			slog.String("service_id", id),
			slog.Any("error", err),
		)
		return
	}

	if slices.Contains(ids, id) {
		c.metrics.RecordSelfHeal(ctx, inst.Name, telemetry.ResultPresent)
		c.logger.DebugContext(ctx, "registration still present",
			slog.String("service_id", id),
		)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if c.closing.Load() || !e.registered.Load() {
		c.metrics.RecordSelfHeal(ctx, inst.Name, telemetry.ResultSkipped)
		return
	}

	c.logger.WarnContext(ctx, "registry lost registration, re-registering",
		slog.String("operation", "SelfHeal"),
		slog.String("service_id", id),
	)

	if err := c.registerLocked(ctx, inst, id, e, true); err != nil {
		c.metrics.RecordSelfHeal(ctx, inst.Name, telemetry.ResultError)
		return
	}
	c.metrics.RecordSelfHeal(ctx, inst.Name, telemetry.ResultSuccess)
}

// Deregister removes inst from the registry. It waits for any in-flight
// register of the same instance and leaves the instance Unregistered even
// when the registry call fails.
func (c *Coordinator) Deregister(ctx context.Context, inst registration.Instance) error {
	id := c.ServiceID(inst)
	e := c.entry(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.store(StateDeregistering)
	callCtx, cancel := c.call(ctx)
	err := c.gateway.Deregister(callCtx, id)
	cancel()
	e.registered.Store(false)
	e.store(StateUnregistered)

	if err != nil {
		c.logger.ErrorContext(ctx, "failed to deregister service",
			slog.String("operation", "Deregister"),
			slog.String("service_id", id),
			slog.Any("error", err),
		)
		return fmt.Errorf("deregistering %s: %w", id, err)
	}

	c.logger.InfoContext(ctx, "deregistered service", slog.String("service_id", id))
	return nil
}

type callTimeoutKey struct{}

// WithCallTimeout returns a copy of ctx whose registry calls are each
// bounded by d instead of Config.CallTimeout.
func WithCallTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, callTimeoutKey{}, d)
}

// call derives the context for a single registry call.
func (c *Coordinator) call(ctx context.Context) (context.Context, context.CancelFunc) {
	d := c.cfg.CallTimeout
	if v, ok := ctx.Value(callTimeoutKey{}).(time.Duration); ok {
		d = v
	}
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// Close stops the coordinator from starting new registrations and makes
// in-flight pulsates discard their results. Deregister still works.
func (c *Coordinator) Close() {
	c.closing.Store(true)
}

// Closing reports whether Close has been called.
func (c *Coordinator) Closing() bool {
	return c.closing.Load()
}

// IsRegistered reports whether inst is currently registered.
func (c *Coordinator) IsRegistered(inst registration.Instance) bool {
	e := c.lookup(c.ServiceID(inst))
	return e != nil && e.registered.Load()
}

// Snapshot reports the current registration state of inst.
func (c *Coordinator) Snapshot(inst registration.Instance) ports.RegistrationSnapshot {
	id := c.ServiceID(inst)
	snap := ports.RegistrationSnapshot{
		ServiceID: id,
		State:     StateUnregistered.String(),
	}
	if c.heartbeatActive() {
		snap.CheckID = registration.CheckID(c.cfg.Check.ID, id)
	}
	if e := c.lookup(id); e != nil {
		snap.State = e.load().String()
		snap.Registered = e.registered.Load()
	}
	return snap
}

func (c *Coordinator) entry(id string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{}
		c.entries[id] = e
	}
	return e
}

func (c *Coordinator) lookup(id string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[id]
}
