package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"tab indent", func(c *Config) { c.Format.Indent = "\t" }, nil},
		{"empty indent", func(c *Config) { c.Format.Indent = "" }, []string{"format.indent"}},
		{"visible indent", func(c *Config) { c.Format.Indent = "--" }, []string{"format.indent"}},
		{"keyword modes", func(c *Config) {
			c.Format.IfKeyword = "yes"
			c.Format.ContainsKeyword = "no"
		}, []string{"format.if_keyword", "format.contains_keyword"}},
		{"rego version", func(c *Config) { c.Parser.RegoVersion = "v2" }, []string{"parser.rego_version"}},
		{"file size", func(c *Config) { c.Parser.MaxFileSize = -1 }, []string{"parser.max_file_size"}},
		{"exclude pattern", func(c *Config) { c.Workspace.Exclude = []string{"ok", "[bad"} }, []string{"workspace.exclude[1]"}},
		{"debounce", func(c *Config) { c.Workspace.Debounce = -1 }, []string{"workspace.debounce"}},
		{"logging", func(c *Config) {
			c.Telemetry.Logging.Level = "trace"
			c.Telemetry.Logging.Format = "xml"
		}, []string{"telemetry.logging.level", "telemetry.logging.format"}},
		{"tracing", func(c *Config) {
			c.Telemetry.Tracing.Sampler = "sometimes"
			c.Telemetry.Tracing.SampleRatio = 2
		}, []string{"telemetry.tracing.sampler", "telemetry.tracing.sample_ratio"}},
		{"metrics disabled ignores address", func(c *Config) { c.Telemetry.Metrics.Address = "nope" }, nil},
		{"metrics enabled", func(c *Config) {
			c.Telemetry.Metrics.Enabled = true
			c.Telemetry.Metrics.Address = "nope"
			c.Telemetry.Metrics.Path = "metrics"
		}, []string{"telemetry.metrics.address", "telemetry.metrics.path"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if len(verr.Errors) != len(tt.fields) {
				t.Fatalf("expected %d errors, got %v", len(tt.fields), verr.Errors)
			}
			for i, field := range tt.fields {
				if verr.Errors[i].Field != field {
					t.Errorf("error %d: expected field %q, got %q", i, field, verr.Errors[i].Field)
				}
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	one := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := one.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("Error() = %q", got)
	}

	two := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	got := two.Error()
	if !strings.Contains(got, "with 2 errors") || !strings.Contains(got, "  - b: worse\n") {
		t.Errorf("Error() = %q", got)
	}

	if got := (ValidationError{}).Error(); got != "configuration validation failed" {
		t.Errorf("Error() = %q", got)
	}
}
