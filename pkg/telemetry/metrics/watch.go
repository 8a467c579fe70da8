package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"regoplay/playground/pkg/config"
)

// WatchMetrics tracks watch mode.
//
// Metrics:
//   - regofmt_watch_events_total: File system events by operation
//   - regofmt_watch_runs_total: Debounced formatting runs
//   - regofmt_watch_run_files: Files formatted per run
//   - regofmt_watch_run_duration_seconds: Duration of a run
type WatchMetrics struct {
	eventsTotal *prometheus.CounterVec
	runsTotal   prometheus.Counter
	runFiles    prometheus.Histogram
	runDuration prometheus.Histogram
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "events_total",
				Help:      "Total number of file system events",
			},
			[]string{"op"},
		),

		runsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "runs_total",
				Help:      "Total number of formatting runs triggered by changes",
			},
		),

		runFiles: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "run_files",
				Help:      "Number of files formatted per run",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "run_duration_seconds",
				Help:      "Duration of a formatting run in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	registry.MustRegister(wm.eventsTotal, wm.runsTotal, wm.runFiles, wm.runDuration)

	return wm
}

// RecordEvent records a file system event.
func (wm *WatchMetrics) RecordEvent(op string) {
	wm.eventsTotal.WithLabelValues(op).Inc()
}

// RecordRun records one formatting run.
func (wm *WatchMetrics) RecordRun(files int, duration time.Duration) {
	wm.runsTotal.Inc()
	wm.runFiles.Observe(float64(files))
	wm.runDuration.Observe(duration.Seconds())
}
