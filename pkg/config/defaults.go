package config

import "time"

// Default values for configuration fields.
const (
	// Format defaults
	DefaultIndent          = "  "
	DefaultStrict          = true
	DefaultIfKeyword       = KeywordAuto
	DefaultContainsKeyword = KeywordAuto

	// Parser defaults
	DefaultRegoVersion = "v1"
	DefaultMaxFileSize = int64(10 * 1024 * 1024)

	// Workspace defaults
	DefaultDebounce = 200 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "text"
	DefaultMetricsAddress    = "127.0.0.1:9464"
	DefaultMetricsPath       = "/metrics"
	DefaultMetricsNamespace  = "regofmt"
	DefaultTracingService    = "regofmt"
	DefaultTracingSampler    = "always"
	DefaultTracingRatio      = 1.0
	DefaultConfigFileName    = ".regofmt.yaml"
	DefaultWorkspacePathRoot = "."
)

// Keyword rendering modes.
const (
	KeywordAuto   = "auto"
	KeywordAlways = "always"
	KeywordNever  = "never"
)

// DefaultExclude lists the directory names skipped during discovery.
var DefaultExclude = []string{".git", "vendor", "node_modules"}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Format defaults
	if cfg.Format.Indent == "" {
		cfg.Format.Indent = DefaultIndent
	}
	if cfg.Format.Strict == nil {
		strict := DefaultStrict
		cfg.Format.Strict = &strict
	}
	if cfg.Format.IfKeyword == "" {
		cfg.Format.IfKeyword = DefaultIfKeyword
	}
	if cfg.Format.ContainsKeyword == "" {
		cfg.Format.ContainsKeyword = DefaultContainsKeyword
	}

	// Parser defaults
	if cfg.Parser.RegoVersion == "" {
		cfg.Parser.RegoVersion = DefaultRegoVersion
	}
	if cfg.Parser.MaxFileSize == 0 {
		cfg.Parser.MaxFileSize = DefaultMaxFileSize
	}

	// Workspace defaults
	if len(cfg.Workspace.Paths) == 0 {
		cfg.Workspace.Paths = []string{DefaultWorkspacePathRoot}
	}
	if cfg.Workspace.Exclude == nil {
		cfg.Workspace.Exclude = append([]string(nil), DefaultExclude...)
	}
	if cfg.Workspace.Debounce == 0 {
		cfg.Workspace.Debounce = DefaultDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Address == "" {
		cfg.Telemetry.Metrics.Address = DefaultMetricsAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingRatio
	}
}
