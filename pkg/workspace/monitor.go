package workspace

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/telemetry/health"
	"regoplay/playground/pkg/telemetry/logging"
	"regoplay/playground/pkg/telemetry/metrics"
)

const shutdownTimeout = 5 * time.Second

// Monitor serves metrics and health probes while watch mode runs.
type Monitor struct {
	config  *config.MetricsConfig
	handler http.Handler
	logger  *logging.Logger

	mu   sync.Mutex
	addr net.Addr
}

// NewMonitor creates the monitor endpoint. Metrics are served on cfg.Path and
// the probes on the health package paths.
func NewMonitor(cfg *config.MetricsConfig, collector *metrics.Collector, checker *health.Checker, version, commit string, logger *logging.Logger) *Monitor {
	if logger == nil {
		logger = logging.Nop()
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, collector.Handler())
	checker.Mount(mux, version, commit)

	return &Monitor{
		config:  cfg,
		handler: mux,
		logger:  logger,
	}
}

// Handler returns the monitor's routes.
func (m *Monitor) Handler() http.Handler {
	return m.handler
}

// Addr returns the listening address once Start has bound it.
func (m *Monitor) Addr() net.Addr {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addr
}

// Start serves until ctx is cancelled, then shuts the server down.
func (m *Monitor) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", m.config.Address, err)
	}

	m.mu.Lock()
	m.addr = ln.Addr()
	m.mu.Unlock()

	srv := &http.Server{
		Handler:           m.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		m.logger.Info("starting monitor server", "address", ln.Addr().String(), "metrics_path", m.config.Path)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("monitor server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("monitor shutdown error: %w", err)
	}
	m.logger.Info("monitor server stopped")
	return nil
}
