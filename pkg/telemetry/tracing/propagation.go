package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/propagation"
)

// Parent trace context is read from the TRACEPARENT and TRACESTATE
// environment variables, so a CI job or a wrapping tool can make a run part
// of its own trace:
//
//	TRACEPARENT=00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01 regofmt fmt .
const (
	EnvTraceParent = "TRACEPARENT"
	EnvTraceState  = "TRACESTATE"
)

var propagator = propagation.TraceContext{}

// Propagator returns the W3C trace context propagator.
func Propagator() propagation.TextMapPropagator {
	return propagator
}

// ExtractFromEnv returns ctx carrying the parent span described by the
// environment, as read by getenv. An absent or malformed TRACEPARENT leaves
// ctx unchanged.
func ExtractFromEnv(ctx context.Context, getenv func(string) string) context.Context {
	traceparent := getenv(EnvTraceParent)
	if !ValidateTraceParent(traceparent) {
		return ctx
	}
	carrier := propagation.MapCarrier{"traceparent": traceparent}
	if state := getenv(EnvTraceState); state != "" {
		carrier["tracestate"] = state
	}
	return propagator.Extract(ctx, carrier)
}

// InjectToMap writes the trace context of ctx into carrier using the header
// names of the W3C specification.
func InjectToMap(ctx context.Context, carrier map[string]string) {
	propagator.Inject(ctx, propagation.MapCarrier(carrier))
}

// ValidateTraceParent validates the traceparent format.
//
// Format: version-trace_id-parent_id-trace_flags
//   - version: 2 hex digits (00)
//   - trace_id: 32 hex digits (128-bit)
//   - parent_id: 16 hex digits (64-bit)
//   - trace_flags: 2 hex digits (8-bit)
func ValidateTraceParent(traceparent string) bool {
	parts := strings.Split(traceparent, "-")
	if len(parts) != 4 {
		return false
	}

	for i, size := range []int{2, 32, 16, 2} {
		if len(parts[i]) != size || !isHexString(parts[i]) {
			return false
		}
	}

	// All-zero ids are invalid.
	if strings.Trim(parts[1], "0") == "" || strings.Trim(parts[2], "0") == "" {
		return false
	}

	return true
}

func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
