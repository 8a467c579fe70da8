package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "REGOFMT_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention REGOFMT_SECTION_FIELD (e.g., REGOFMT_FORMAT_INDENT).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadOptional behaves like LoadConfigWithEnvOverrides, except that a missing
// file yields the defaults with environment overrides applied.
func LoadOptional(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = Default()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format REGOFMT_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Format overrides
	if val := os.Getenv("REGOFMT_FORMAT_INDENT"); val != "" {
		cfg.Format.Indent = unescapeIndent(val)
	}
	if val := os.Getenv("REGOFMT_FORMAT_STRICT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Format.Strict = &b
		}
	}
	if val := os.Getenv("REGOFMT_FORMAT_IF_KEYWORD"); val != "" {
		cfg.Format.IfKeyword = val
	}
	if val := os.Getenv("REGOFMT_FORMAT_CONTAINS_KEYWORD"); val != "" {
		cfg.Format.ContainsKeyword = val
	}
	if val := os.Getenv("REGOFMT_FORMAT_VALIDATE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Format.Validate = b
		}
	}

	// Parser overrides
	if val := os.Getenv("REGOFMT_PARSER_REGO_VERSION"); val != "" {
		cfg.Parser.RegoVersion = val
	}
	if val := os.Getenv("REGOFMT_PARSER_ALL_FUTURE_KEYWORDS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Parser.AllFutureKeywords = b
		}
	}
	if val := os.Getenv("REGOFMT_PARSER_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Parser.MaxFileSize = i
		}
	}

	// Capabilities overrides
	if val := os.Getenv("REGOFMT_CAPABILITIES_FILE"); val != "" {
		cfg.Capabilities.File = val
	}

	// Workspace overrides
	if val := os.Getenv("REGOFMT_WORKSPACE_EXCLUDE"); val != "" {
		cfg.Workspace.Exclude = splitList(val)
	}
	if val := os.Getenv("REGOFMT_WORKSPACE_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Workspace.Debounce = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("REGOFMT_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("REGOFMT_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("REGOFMT_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("REGOFMT_TELEMETRY_METRICS_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.Address = val
	}
	if val := os.Getenv("REGOFMT_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
}

// unescapeIndent lets "\t" be written literally in environment variables.
func unescapeIndent(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
