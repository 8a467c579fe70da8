package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys use the "regofmt.*" namespace.
const (
	AttrFile        = "regofmt.file"
	AttrFileSize    = "regofmt.file.size"
	AttrRegoVersion = "regofmt.rego_version"
	AttrChanged     = "regofmt.changed"
	AttrRules       = "regofmt.rules"
	AttrMode        = "regofmt.mode"
	AttrFiles       = "regofmt.files"

	AttrErrorKind    = "regofmt.error.kind"
	AttrErrorMessage = "error.message"
)

// SetFileAttributes sets the file being processed on a span.
func SetFileAttributes(span trace.Span, path string, size int) {
	span.SetAttributes(
		attribute.String(AttrFile, path),
		attribute.Int(AttrFileSize, size),
	)
}

// SetResultAttributes records whether formatting changed the source and how
// many rules the module has.
func SetResultAttributes(span trace.Span, changed bool, rules int) {
	span.SetAttributes(
		attribute.Bool(AttrChanged, changed),
		attribute.Int(AttrRules, rules),
	)
}

// SetErrorAttributes records err on the span together with its kind, and
// marks the span as failed.
func SetErrorAttributes(span trace.Span, err error, kind string) {
	if err == nil {
		return
	}
	if kind != "" {
		span.SetAttributes(attribute.String(AttrErrorKind, kind))
	}
	SetError(span, err)
	SetStatus(span, err)
}

// AddEvent adds a named event with attributes to the span.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
