// Package tracing records OpenTelemetry spans around parsing and formatting.
//
// Tracing is off by default. When enabled, every run gets a root span with a
// child span per file:
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithLogger(logger))
//	defer tracer.Shutdown(ctx)
//
//	ctx = tracing.ExtractFromEnv(ctx, os.Getenv)
//	ctx, span := tracer.Start(ctx, "format_file")
//	tracing.SetFileAttributes(span, path, len(src))
//	defer span.End()
//
// Finished spans are written to the debug log unless another exporter is
// given with WithExporter.
package tracing
