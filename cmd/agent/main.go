// Package main is the entry point for the registration agent. It wires all
// dependencies using samber/do v2, serves the instance HTTP surface,
// registers the instance with the configured registry, keeps its TTL check
// alive, and deregisters on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/consul-registrar/internal/adapters/http"
	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/consul-registrar/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/consul-registrar/internal/app/discovery"
	"github.com/jsamuelsen11/consul-registrar/internal/app/registrar"
	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/config"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/health"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/logging"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/telemetry"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

// dependencyHealth names the registry holding the agent's own dependencies
// (the registry client). Its results are reported on /health but never feed
// the instance status the heartbeat forwards.
const dependencyHealth = "health.dependencies"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr, logging.ServiceAttr(cfg.Registration.Name))

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	inst, err := newInstance(cfg, os.Hostname)
	if err != nil {
		return err
	}

	injector := newInjector(cfg, logger, otel.metrics, inst, profile)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	client := do.MustInvoke[*backend](injector)
	coordinator := do.MustInvoke[*registrar.Coordinator](injector)
	registerHealthCheckers(injector, client)

	// Bind before registering so an HTTP check can reach /health as soon as
	// the registry learns about the instance.
	if err := server.Listen(); err != nil {
		_ = client.Shutdown()
		_ = otel.Shutdown(ctx)
		return err
	}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	if cfg.Registration.Enabled {
		if err := registerInstance(ctx, cfg, coordinator, inst, logger); err != nil {
			shutdownServer(server, serverErr, logger)
			_ = client.Shutdown()
			_ = otel.Shutdown(ctx)
			return err
		}
	}

	var heartbeat *registrar.Heartbeat
	if heartbeatEnabled(cfg) {
		heartbeat = do.MustInvoke[*registrar.Heartbeat](injector)
		heartbeat.Start(ctx)
	}

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
		serverErr <- nil
	}

	// Stop reporting before leaving the registry so no pass races the
	// deregister.
	if heartbeat != nil {
		heartbeat.Stop()
	}
	coordinator.Close()

	if cfg.Registration.Enabled {
		deregCtx, cancel := context.WithTimeout(context.Background(), cfg.Registry.CallTimeout)
		if err := coordinator.Deregister(deregCtx, inst); err != nil {
			logger.Error("deregister on shutdown failed",
				slog.String("operation", "Shutdown"),
				slog.Any("error", err),
			)
		}
		cancel()
	}

	shutdownServer(server, serverErr, logger)

	if err := client.Shutdown(); err != nil {
		logger.Error("registry client shutdown error", slog.Any("error", err))
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("shutdown complete")
	return nil
}

// registerInstance performs the startup registration. Configuration errors
// always abort. Transport errors abort unless the heartbeat retries the
// registration (fail_fast off and heartbeat enabled).
func registerInstance(
	ctx context.Context,
	cfg *config.Config,
	coordinator *registrar.Coordinator,
	inst registration.Instance,
	logger *slog.Logger,
) error {
	regCtx, cancel := context.WithTimeout(ctx, cfg.Registry.CallTimeout)
	defer cancel()

	err := coordinator.Register(regCtx, inst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConfiguration), !retryRegistration(cfg):
		return fmt.Errorf("registering %s: %w", inst.Name, err)
	default:
		logger.Warn("initial registration failed, retrying on heartbeat",
			slog.String("operation", "Register"),
			slog.String("service", inst.Name),
			slog.Any("error", err),
		)
		return nil
	}
}

// shutdownServer drains HTTP requests and waits for Start to return.
func shutdownServer(server *adapthttp.Server, serverErr <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	<-serverErr
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.Registration.Name
	}

	tp, err := telemetry.InitTracer(ctx, serviceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx, serviceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

// newInjector seeds the DI container with the bootstrap values and declares
// every provider. Nothing is constructed until first invoked.
func newInjector(
	cfg *config.Config,
	logger *slog.Logger,
	metrics *telemetry.Metrics,
	inst registration.Instance,
	profile string,
) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, metrics)
	do.ProvideValue(injector, inst)
	do.ProvideValue(injector, registration.NewEnvironment(profile))

	registerDependencies(injector, cfg, logger)
	return injector
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*backend, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return newBackend(cfg, metrics, logger)
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.HealthFacility, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return health.NewFacility(registry, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*registrar.Coordinator, error) {
		b := do.MustInvoke[*backend](i)
		env := do.MustInvoke[registration.Environment](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return registrar.NewCoordinator(b, newResolver(cfg, logger), registrarConfig(cfg, env), metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*registrar.Heartbeat, error) {
		coordinator := do.MustInvoke[*registrar.Coordinator](i)
		facility := do.MustInvoke[ports.HealthFacility](i)
		inst := do.MustInvoke[registration.Instance](i)
		return registrar.NewHeartbeat(coordinator, facility, inst, heartbeatConfig(cfg), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.DiscoveryService, error) {
		b := do.MustInvoke[*backend](i)
		return discovery.NewService(b, discoveryConfig(cfg), logger), nil
	})

	do.ProvideNamed(injector, dependencyHealth, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		facility := do.MustInvoke[ports.HealthFacility](i)
		deps := do.MustInvokeNamed[ports.HealthRegistry](i, dependencyHealth)
		return handlers.NewHealthHandler(facility, deps), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.RegistrationHandler, error) {
		coordinator := do.MustInvoke[*registrar.Coordinator](i)
		inst := do.MustInvoke[registration.Instance](i)
		return handlers.NewRegistrationHandler(coordinator, inst), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.DiscoveryHandler, error) {
		svc := do.MustInvoke[ports.DiscoveryService](i)
		return handlers.NewDiscoveryHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		regH := do.MustInvoke[*handlers.RegistrationHandler](i)
		discH := do.MustInvoke[*handlers.DiscoveryHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(healthH, regH, discH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger, "/health", "/health/live"),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// registerHealthCheckers adds the registry client to the dependency
// registry. The instance registry behind the Facility stays reserved for
// checks of the instance itself, so a registry outage surfaces as a failed
// pass (and self-heal) rather than as a DOWN report.
func registerHealthCheckers(injector do.Injector, client *backend) {
	deps := do.MustInvokeNamed[ports.HealthRegistry](injector, dependencyHealth)
	deps.Register(client)
}
