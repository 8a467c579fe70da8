package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"regoplay/playground/pkg/config"
)

// File results.
const (
	ResultUnchanged = "unchanged"
	ResultChanged   = "changed"
	ResultError     = "error"
)

// Processing stages.
const (
	StageParse  = "parse"
	StageFormat = "format"
)

// FileMetrics tracks per-file processing.
//
// Metrics:
//   - regofmt_files_total: Files processed by result
//   - regofmt_file_duration_seconds: Time spent on one file
//   - regofmt_file_size_bytes: Source size of processed files
//   - regofmt_stage_duration_seconds: Duration of parse, validate and format
//   - regofmt_errors_total: Errors by kind
type FileMetrics struct {
	filesTotal    *prometheus.CounterVec
	fileDuration  prometheus.Histogram
	fileSize      prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
}

// NewFileMetrics creates and registers file metrics with the provided registry.
func NewFileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *FileMetrics {
	fm := &FileMetrics{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "files_total",
				Help:      "Total number of files processed",
			},
			[]string{"result"},
		),

		fileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "file_duration_seconds",
				Help:      "Time spent processing one file in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to 26s
			},
		),

		fileSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "file_size_bytes",
				Help:      "Size of processed source files in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
			},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of a processing stage in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
			},
			[]string{"stage"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "errors_total",
				Help:      "Total number of errors by kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		fm.filesTotal,
		fm.fileDuration,
		fm.fileSize,
		fm.stageDuration,
		fm.errorsTotal,
	)

	return fm
}

// RecordFile records the result, duration and size of one file.
func (fm *FileMetrics) RecordFile(result string, duration time.Duration, size int) {
	fm.filesTotal.WithLabelValues(result).Inc()
	fm.fileDuration.Observe(duration.Seconds())
	fm.fileSize.Observe(float64(size))
}

// RecordStage records the duration of a processing stage.
func (fm *FileMetrics) RecordStage(stage string, duration time.Duration) {
	fm.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordError records an error of the given kind.
func (fm *FileMetrics) RecordError(kind string) {
	fm.errorsTotal.WithLabelValues(kind).Inc()
}
