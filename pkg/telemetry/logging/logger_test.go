package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"regoplay/playground/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid JSON config", Config{Level: "info", Format: "json"}, false},
		{"valid text config", Config{Level: "debug", Format: "text"}, false},
		{"defaults", Config{}, false},
		{"upper case", Config{Level: "WARN", Format: "JSON"}, false},
		{"invalid log level", Config{Level: "invalid", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "console"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}

			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{"debug level logs debug", "debug", func(l *Logger, msg string) { l.Debug(msg) }, true},
		{"info level filters debug", "info", func(l *Logger, msg string) { l.Debug(msg) }, false},
		{"info level logs info", "info", func(l *Logger, msg string) { l.Info(msg) }, true},
		{"warn level filters info", "warn", func(l *Logger, msg string) { l.Info(msg) }, false},
		{"warn level logs warn", "warn", func(l *Logger, msg string) { l.Warn(msg) }, true},
		{"error level filters warn", "error", func(l *Logger, msg string) { l.Warn(msg) }, false},
		{"error level logs error", "error", func(l *Logger, msg string) { l.Error(msg) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.logLevel, Format: "json", Writer: buf})
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			tt.logMethod(logger, "test message")

			if hasLog := strings.Contains(buf.String(), "test message"); hasLog != tt.wantLog {
				t.Errorf("Log filtering failed: got log=%v, want log=%v, output=%s",
					hasLog, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.With("component", "workspace").Info("formatted", "changed", true, "bytes", 42)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output: %v\n%s", err, buf.String())
	}

	want := map[string]any{"msg": "formatted", "component": "workspace", "changed": true, "bytes": float64(42)}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("field %s = %v, want %v", k, entry[k], v)
		}
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestLogger_ContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Format: "text", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	ctx := WithFile(WithCommand(WithRunID(context.Background(), "run-1"), "fmt"), "a.rego")
	logger.DebugContext(ctx, "parsed", "rules", 3)

	got := buf.String()
	for _, want := range []string{"run_id=run-1", "command=fmt", "file=a.rego", "rules=3", "msg=parsed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %s", want, got)
		}
	}
	// Context fields come before call arguments.
	if strings.Index(got, "run_id") > strings.Index(got, "rules") {
		t.Errorf("context fields should be prepended: %s", got)
	}

	buf.Reset()
	logger.WithContext(ctx).Warn("slow")
	if !strings.Contains(buf.String(), "file=a.rego") {
		t.Errorf("WithContext() lost the fields: %s", buf.String())
	}

	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext() without fields should return the same logger")
	}
}

func TestLogger_Enabled(t *testing.T) {
	logger, err := New(Config{Level: "warn", Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Enabled(slog.LevelInfo) || !logger.Enabled(slog.LevelError) {
		t.Error("Enabled() does not follow the configured level")
	}
	if Nop().Enabled(slog.LevelError) {
		t.Error("Nop() should discard every level")
	}
	if logger.Slog() == nil {
		t.Error("Slog() = nil")
	}
}

func TestFromConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := FromConfig(config.LoggingConfig{Level: "error", Format: "json", AddSource: true}, buf)

	if cfg.Level != "error" || cfg.Format != "json" || !cfg.AddSource || cfg.Writer != buf {
		t.Errorf("FromConfig() = %+v", cfg)
	}
}
