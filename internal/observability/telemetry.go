package observability

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/pool-league/internal/config"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

// mutexProfileRate samples one in every N contended mutex events. The match
// guard and feed subscriber maps are the locks worth watching.
const mutexProfileRate = 5

// Telemetry owns the process-wide tracing exporter and profiler.
type Telemetry struct {
	tracing   bool
	profiler  *pyroscope.Profiler
	shutdowns []func(context.Context) error
}

// Start enables whichever of Uptrace and Pyroscope the config turns on.
// A zero Telemetry is valid and shuts down as a no-op.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("telemetry")

	t := &Telemetry{}
	if err := t.startTracing(cfg, logger); err != nil {
		return nil, err
	}
	if err := t.startProfiling(cfg, logger); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	return t, nil
}

func (t *Telemetry) startTracing(cfg config.Config, logger *logging.Logger) error {
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Warn("tracing disabled", "reason", "UPTRACE_DSN empty")
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("league.storage_driver", cfg.StorageDriver),
		),
	)
	t.tracing = true
	t.shutdowns = append(t.shutdowns, uptrace.Shutdown)
	logger.Info("tracing enabled", "exporter", "uptrace", "environment", cfg.AppEnv)
	return nil
}

func (t *Telemetry) startProfiling(cfg config.Config, logger *logging.Logger) error {
	if !cfg.PyroscopeEnabled {
		logger.Info("profiling disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	runtime.SetMutexProfileFraction(mutexProfileRate)
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"storage": cfg.StorageDriver,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope: %w", err)
	}
	t.profiler = profiler
	t.shutdowns = append(t.shutdowns, func(context.Context) error { return profiler.Stop() })
	logger.Info("profiling enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

// Enabled reports whether any exporter is running.
func (t *Telemetry) Enabled() bool {
	return t != nil && (t.tracing || t.profiler != nil)
}

// Shutdown flushes in reverse start order.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdowns = nil
	return errors.Join(errs...)
}
