// Package telemetry groups the observability packages of regofmt.
//
// # Components
//
//   - logging: Structured logging with run and file context
//   - metrics: Prometheus counters and histograms for formatted files
//   - tracing: OpenTelemetry spans around parsing and formatting
//   - health: Liveness and readiness probes for watch mode
//
// Logs go to stderr so they never mix with formatted source on stdout.
// Metrics and probes are only served while fmt --watch runs with
// telemetry.metrics.enabled set.
package telemetry
