// Package logging provides structured logging for regofmt.
//
// The package wraps log/slog with JSON and text output, level filtering, and
// context fields:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "text"})
//	ctx := logging.WithFile(logging.NewRunID(ctx), "policy.rego")
//	logger.InfoContext(ctx, "formatted", "changed", true)
//
// Context-aware methods prepend the run_id, command, and file fields found in
// the context. Logs go to stderr unless another writer is configured.
package logging
