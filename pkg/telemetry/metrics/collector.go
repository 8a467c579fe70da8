package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"regoplay/playground/pkg/config"
)

// Collector owns the Prometheus metrics of regofmt. It manages metric
// registration and gives the workspace runner a single place to record
// what happened to each file.
//
// A disabled collector still registers its metrics but records nothing, so
// callers never need to check for nil.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	files *FileMetrics
	watch *WatchMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "regofmt"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:   cfg,
		registry: registry,
		files:    NewFileMetrics(cfg, registry),
		watch:    NewWatchMetrics(cfg, registry),
	}
}

// Disabled returns a collector that records nothing.
func Disabled() *Collector {
	return NewCollector(&config.MetricsConfig{}, nil)
}

// Enabled reports whether metrics are recorded.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordFile records the outcome of processing one file.
//
// Parameters:
//   - result: ResultUnchanged, ResultChanged or ResultError
//   - duration: Time spent reading, parsing and formatting the file
//   - size: Size of the source in bytes
func (c *Collector) RecordFile(result string, duration time.Duration, size int) {
	if !c.config.Enabled {
		return
	}

	c.files.RecordFile(result, duration, size)
}

// RecordStage records the duration of one processing stage (parse, validate,
// format).
func (c *Collector) RecordStage(stage string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.files.RecordStage(stage, duration)
}

// RecordError records an error by kind (syntax, type, invariant, io,
// structural, semantic).
func (c *Collector) RecordError(kind string) {
	if !c.config.Enabled {
		return
	}

	c.files.RecordError(kind)
}

// RecordWatchEvent records a file system event seen by watch mode.
func (c *Collector) RecordWatchEvent(op string) {
	if !c.config.Enabled {
		return
	}

	c.watch.RecordEvent(op)
}

// RecordWatchRun records a debounced formatting run triggered by watch mode.
func (c *Collector) RecordWatchRun(files int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.watch.RecordRun(files, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
