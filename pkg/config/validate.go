package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "format.indent").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateFormat(&cfg.Format)...)
	errs = append(errs, validateParser(&cfg.Parser)...)
	errs = append(errs, validateWorkspace(&cfg.Workspace)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateFormat(cfg *FormatConfig) []FieldError {
	var errs []FieldError

	if cfg.Indent == "" || strings.Trim(cfg.Indent, " \t") != "" {
		errs = append(errs, FieldError{
			Field:   "format.indent",
			Message: fmt.Sprintf("invalid indent %q: must be spaces or tabs", cfg.Indent),
		})
	}

	validModes := map[string]bool{KeywordAuto: true, KeywordAlways: true, KeywordNever: true}
	if !validModes[cfg.IfKeyword] {
		errs = append(errs, FieldError{
			Field:   "format.if_keyword",
			Message: fmt.Sprintf("invalid mode %q: must be 'auto', 'always', or 'never'", cfg.IfKeyword),
		})
	}
	if !validModes[cfg.ContainsKeyword] {
		errs = append(errs, FieldError{
			Field:   "format.contains_keyword",
			Message: fmt.Sprintf("invalid mode %q: must be 'auto', 'always', or 'never'", cfg.ContainsKeyword),
		})
	}

	return errs
}

func validateParser(cfg *ParserConfig) []FieldError {
	var errs []FieldError

	if cfg.RegoVersion != "v0" && cfg.RegoVersion != "v1" {
		errs = append(errs, FieldError{
			Field:   "parser.rego_version",
			Message: fmt.Sprintf("invalid version %q: must be 'v0' or 'v1'", cfg.RegoVersion),
		})
	}
	if cfg.MaxFileSize < 0 {
		errs = append(errs, FieldError{
			Field:   "parser.max_file_size",
			Message: "max file size must be positive",
		})
	}

	return errs
}

func validateWorkspace(cfg *WorkspaceConfig) []FieldError {
	var errs []FieldError

	for i, pattern := range cfg.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("workspace.exclude[%d]", i),
				Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
			})
		}
	}
	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "workspace.debounce",
			Message: "debounce must not be negative",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Address); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.address",
				Message: fmt.Sprintf("invalid address %q: %v", cfg.Metrics.Address, err),
			})
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/'",
			})
		}
	}

	validSamplers := map[string]bool{"always": true, "never": true, "ratio": true}
	if !validSamplers[cfg.Tracing.Sampler] {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q: must be 'always', 'never', or 'ratio'", cfg.Tracing.Sampler),
		})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1.0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	return errs
}
