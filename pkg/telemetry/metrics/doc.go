// Package metrics provides Prometheus metrics for regofmt.
//
// # Metrics
//
//   - File Metrics: files processed by result, per-file duration and size,
//     stage durations, errors by kind
//   - Watch Metrics: file system events, debounced runs, files per run
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordFile(metrics.ResultChanged, time.Since(start), len(src))
//	http.Handle("/metrics", collector.Handler())
//
// The endpoint is only served while watch mode runs with metrics enabled. A
// one-shot run records into the registry and discards it.
package metrics
