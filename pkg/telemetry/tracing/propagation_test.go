package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

const traceParent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func envFunc(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestValidateTraceParent(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid", traceParent, true},
		{"empty", "", false},
		{"too few parts", "00-4bf92f3577b34da6a3ce929d0e0e4736-01", false},
		{"short trace id", "00-4bf92f35-00f067aa0ba902b7-01", false},
		{"non hex", "00-4bf92f3577b34da6a3ce929d0e0e473z-00f067aa0ba902b7-01", false},
		{"zero trace id", "00-00000000000000000000000000000000-00f067aa0ba902b7-01", false},
		{"zero span id", "00-4bf92f3577b34da6a3ce929d0e0e4736-0000000000000000-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTraceParent(tt.value); got != tt.want {
				t.Errorf("ValidateTraceParent(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestExtractFromEnv(t *testing.T) {
	ctx := ExtractFromEnv(context.Background(), envFunc(map[string]string{
		EnvTraceParent: traceParent,
		EnvTraceState:  "vendor=value",
	}))

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsRemote() {
		t.Fatal("extracted span context should be remote")
	}
	if got := sc.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s", got)
	}
	if got := sc.TraceState().Get("vendor"); got != "value" {
		t.Errorf("tracestate vendor = %q", got)
	}
}

func TestExtractFromEnv_Invalid(t *testing.T) {
	ctx := context.Background()
	if got := ExtractFromEnv(ctx, envFunc(map[string]string{EnvTraceParent: "garbage"})); got != ctx {
		t.Error("invalid traceparent should leave the context unchanged")
	}
	if got := ExtractFromEnv(ctx, envFunc(nil)); got != ctx {
		t.Error("missing traceparent should leave the context unchanged")
	}
}

func TestExtractFromEnv_ParentOfRun(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tracer, err := New(enabledConfig(), WithExporter(exp))
	if err != nil {
		t.Fatal(err)
	}
	defer tracer.Shutdown(context.Background())

	ctx := ExtractFromEnv(context.Background(), envFunc(map[string]string{EnvTraceParent: traceParent}))
	ctx, span := tracer.Start(ctx, "run")
	span.End()

	if got := TraceID(ctx); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("TraceID() = %q, want the parent's trace id", got)
	}

	carrier := map[string]string{}
	InjectToMap(ctx, carrier)
	if !ValidateTraceParent(carrier["traceparent"]) {
		t.Errorf("injected traceparent %q is invalid", carrier["traceparent"])
	}
}
