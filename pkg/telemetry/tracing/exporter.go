package tracing

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"regoplay/playground/pkg/telemetry/logging"
)

// LogExporter writes finished spans as debug log entries. A command line run
// has no collector to ship spans to; the log keeps them next to the other
// diagnostics of the run.
type LogExporter struct {
	logger *logging.Logger

	mu       sync.Mutex
	stopped  bool
	exported int
}

// NewLogExporter creates an exporter writing to logger.
func NewLogExporter(logger *logging.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return nil
	}

	for _, s := range spans {
		args := []any{
			"span", s.Name(),
			"trace_id", s.SpanContext().TraceID().String(),
			"span_id", s.SpanContext().SpanID().String(),
			"duration", s.EndTime().Sub(s.StartTime()),
			"status", s.Status().Code.String(),
		}
		if s.Parent().IsValid() {
			args = append(args, "parent_id", s.Parent().SpanID().String())
		}
		for _, kv := range s.Attributes() {
			args = append(args, string(kv.Key), kv.Value.Emit())
		}
		e.logger.DebugContext(ctx, "span finished", args...)
		e.exported++
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter. Spans exported afterwards are
// dropped.
func (e *LogExporter) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	return nil
}

// Exported returns the number of spans written so far.
func (e *LogExporter) Exported() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exported
}
