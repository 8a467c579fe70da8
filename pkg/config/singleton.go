package config

import (
	"fmt"
	"sync"
)

var (
	current *Config
	mu      sync.RWMutex
)

// GetConfig returns the configuration of the running command, or nil before
// SetConfig has been called. Safe for concurrent use.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetConfig stores cfg as the configuration of the running command.
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// An Adjustment modifies a freshly loaded configuration before it is
// validated, for example to apply command line flags.
type Adjustment func(*Config) error

// ReloadConfig loads the file at path again, applies each adjustment in order
// and validates the result. Only a configuration that passes every step
// replaces the current one; on error the current configuration is kept.
func ReloadConfig(path string, adjust ...Adjustment) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}

	for _, a := range adjust {
		if err := a(cfg); err != nil {
			return nil, fmt.Errorf("failed to reload configuration: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}

	SetConfig(cfg)
	return cfg, nil
}
