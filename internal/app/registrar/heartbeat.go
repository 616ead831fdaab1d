package registrar

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// HeartbeatConfig controls the heartbeat schedule.
type HeartbeatConfig struct {
	Interval time.Duration

	// CallTimeout bounds each registry call of a tick: the pass or fail, and
	// separately the self-heal list and register that may follow. Defaults
	// to Interval.
	CallTimeout time.Duration

	// RetryRegistration makes a tick register the instance when it is not
	// registered yet, so a failed startup registration recovers.
	RetryRegistration bool
}

// Heartbeat periodically forwards the instance's health to the coordinator.
// Each tick runs in its own goroutine and every registry call it makes gets
// its own CallTimeout. A tick that fires while the previous one is still
// running is skipped.
type Heartbeat struct {
	coord  *Coordinator
	health ports.HealthFacility
	inst   registration.Instance
	cfg    HeartbeatConfig
	logger *slog.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// NewHeartbeat creates a stopped Heartbeat for inst.
func NewHeartbeat(
	coord *Coordinator,
	health ports.HealthFacility,
	inst registration.Instance,
	cfg HeartbeatConfig,
	logger *slog.Logger,
) *Heartbeat {
	if cfg.CallTimeout <= 0 || cfg.CallTimeout > cfg.Interval {
		cfg.CallTimeout = cfg.Interval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Heartbeat{
		coord:  coord,
		health: health,
		inst:   inst,
		cfg:    cfg,
		logger: logger,
	}
}

// Start launches the ticker loop. Calling Start more than once, or after
// Stop, has no effect.
func (h *Heartbeat) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil || h.stopped || h.cfg.Interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	h.wg.Add(1)
	go h.loop(ctx)

	h.logger.InfoContext(ctx, "heartbeat started",
		slog.String("service", h.inst.Name),
		slog.Duration("interval", h.cfg.Interval),
	)
}

// Stop cancels the ticker and any in-flight tick, then waits for them to
// return. Safe to call more than once.
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	h.stopped = true
	cancel := h.cancel
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}

func (h *Heartbeat) loop(ctx context.Context) {
	defer h.wg.Done()

	ticker := time.NewTicker(h.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.tick(ctx)
		}
	}
}

func (h *Heartbeat) tick(ctx context.Context) {
	if !h.inFlight.CompareAndSwap(false, true) {
		h.logger.WarnContext(ctx, "previous heartbeat still running, skipping tick",
			slog.String("service", h.inst.Name),
		)
		return
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.inFlight.Store(false)

		h.Beat(ctx)
	}()
}

// Beat runs one heartbeat cycle synchronously.
func (h *Heartbeat) Beat(ctx context.Context) {
	if h.coord.Closing() {
		return
	}
	ctx = WithCallTimeout(ctx, h.cfg.CallTimeout)

	if !h.coord.IsRegistered(h.inst) {
		if h.cfg.RetryRegistration {
			// Register logs its own failures.
			_ = h.coord.Register(ctx, h.inst)
		}
		return
	}

	statusCtx, cancel := context.WithTimeout(ctx, h.cfg.CallTimeout)
	status := h.health.Status(statusCtx)
	cancel()

	h.coord.Pulsate(ctx, h.inst, status)
}
