package ast

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

//go:embed capabilities.json
var defaultCapabilities []byte

// Capabilities is the capability descriptor: the builtins and future keywords
// supported by the targeted policy engine.
type Capabilities struct {
	Builtins       []*Builtin `json:"builtins"`
	FutureKeywords []string   `json:"future_keywords"`
	Features       []string   `json:"features,omitempty"`
}

// ParseCapabilities decodes a capability descriptor.
func ParseCapabilities(r io.Reader) (*Capabilities, error) {
	var caps Capabilities
	if err := json.NewDecoder(r).Decode(&caps); err != nil {
		return nil, fmt.Errorf("failed to decode capabilities: %w", err)
	}

	for i, b := range caps.Builtins {
		if b == nil || b.Name == "" {
			return nil, fmt.Errorf("builtin %d: name is required", i)
		}
	}

	return &caps, nil
}

// Registry builds the registry for the descriptor.
func (c *Capabilities) Registry() *Registry {
	r := NewRegistry(c.Builtins...)
	r.futureKeywords = append([]string(nil), c.FutureKeywords...)
	return r
}

// LoadCapabilities reads a capability descriptor and builds its registry.
func LoadCapabilities(r io.Reader) (*Registry, error) {
	caps, err := ParseCapabilities(r)
	if err != nil {
		return nil, err
	}
	return caps.Registry(), nil
}

// LoadCapabilitiesFile reads a capability descriptor from a file.
func LoadCapabilitiesFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capabilities file: %w", err)
	}
	defer f.Close()

	reg, err := LoadCapabilities(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry built from the embedded capability
// descriptor. It is built on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		reg, err := LoadCapabilities(bytes.NewReader(defaultCapabilities))
		if err != nil {
			panic(fmt.Sprintf("embedded capabilities are invalid: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}
