package config

import "time"

// Config is the root configuration structure for regofmt.
// It contains the formatter layout, parser, builtin capabilities, workspace
// discovery, and telemetry settings.
type Config struct {
	// Format contains the canonical layout settings.
	Format FormatConfig `yaml:"format"`

	// Parser contains the language version and input limits.
	Parser ParserConfig `yaml:"parser"`

	// Capabilities selects the builtin descriptor used to recognize
	// operators and function names.
	Capabilities CapabilitiesConfig `yaml:"capabilities"`

	// Workspace contains file discovery and watch mode settings.
	Workspace WorkspaceConfig `yaml:"workspace"`

	// Telemetry contains logging, metrics, and tracing settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FormatConfig contains the formatter settings.
type FormatConfig struct {
	// Indent is the indentation unit.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// Strict lays collections out one element per line unless they are
	// empty or already inline. When false, collections written on a single
	// line stay inline.
	// Default: true
	Strict *bool `yaml:"strict"`

	// IfKeyword controls "if" rendering.
	// Options: "auto" (derived from imports and the language version),
	// "always", "never"
	// Default: "auto"
	IfKeyword string `yaml:"if_keyword"`

	// ContainsKeyword controls "contains" rendering of partial set heads.
	// Options: "auto", "always", "never"
	// Default: "auto"
	ContainsKeyword string `yaml:"contains_keyword"`

	// Validate runs the structural and semantic checks before formatting.
	// Default: false
	Validate bool `yaml:"validate"`
}

// IsStrict reports whether strict layout is selected.
func (c FormatConfig) IsStrict() bool {
	return c.Strict == nil || *c.Strict
}

// ParserConfig contains parser settings.
type ParserConfig struct {
	// RegoVersion is the language version of the input.
	// Options: "v0", "v1"
	// Default: "v1"
	RegoVersion string `yaml:"rego_version"`

	// AllFutureKeywords enables every future keyword for v0 input without
	// requiring imports.
	// Default: false
	AllFutureKeywords bool `yaml:"all_future_keywords"`

	// MaxFileSize is the largest file, in bytes, that is read.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// CapabilitiesConfig selects the builtin descriptor.
type CapabilitiesConfig struct {
	// File is a capabilities JSON file. Empty uses the embedded descriptor.
	File string `yaml:"file"`
}

// WorkspaceConfig contains file discovery settings.
type WorkspaceConfig struct {
	// Paths are the files and directories formatted when none are given on
	// the command line.
	// Default: ["."]
	Paths []string `yaml:"paths"`

	// Exclude contains glob patterns matched against file and directory base
	// names. Matching directories are not descended into.
	// Default: [".git", "vendor", "node_modules"]
	Exclude []string `yaml:"exclude"`

	// Debounce is how long watch mode waits after the last change before
	// formatting.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled serves Prometheus metrics while watch mode runs.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Address is the listen address of the metrics endpoint.
	// Default: "127.0.0.1:9464"
	Address string `yaml:"address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "regofmt"
	Namespace string `yaml:"namespace"`
}

// TracingConfig contains tracing configuration.
type TracingConfig struct {
	// Enabled records spans around parsing and formatting.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ServiceName is the instrumentation name of the tracer.
	// Default: "regofmt"
	ServiceName string `yaml:"service_name"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of runs to trace (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`
}
