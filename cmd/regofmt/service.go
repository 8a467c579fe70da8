package main

import (
	"regoplay/playground/pkg/cli"
	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/rego"
	"regoplay/playground/pkg/rego/ast"
	"regoplay/playground/pkg/rego/format"
	"regoplay/playground/pkg/rego/parser"
)

// newParser creates the parser selected by the configuration.
func newParser(cfg *config.Config) (*parser.Parser, error) {
	version, err := parser.ParseRegoVersion(cfg.Parser.RegoVersion)
	if err != nil {
		return nil, cli.NewConfigError("parser.rego_version", err.Error())
	}
	return parser.NewParser().
		WithRegoVersion(version).
		WithAllFutureKeywords(cfg.Parser.AllFutureKeywords).
		WithMaxFileSize(cfg.Parser.MaxFileSize), nil
}

// newRegistry loads the capabilities file, or returns the embedded registry.
func newRegistry(cfg *config.Config) (*ast.Registry, error) {
	if cfg.Capabilities.File == "" {
		return ast.DefaultRegistry(), nil
	}
	reg, err := ast.LoadCapabilitiesFile(cfg.Capabilities.File)
	if err != nil {
		return nil, cli.NewConfigError("capabilities.file", err.Error())
	}
	return reg, nil
}

// newService builds the formatting service from the configuration.
func newService(cfg *config.Config) (*rego.Service, error) {
	p, err := newParser(cfg)
	if err != nil {
		return nil, err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	opts := []format.Option{
		format.WithIndent(cfg.Format.Indent),
		format.WithStrict(cfg.Format.IsStrict()),
	}

	// Version 1 cannot be written without the keywords.
	if p.RegoVersion() == parser.RegoV1 {
		if cfg.Format.IfKeyword == config.KeywordNever {
			return nil, cli.NewConfigError("format.if_keyword", "\"never\" cannot be used with rego_version v1")
		}
		if cfg.Format.ContainsKeyword == config.KeywordNever {
			return nil, cli.NewConfigError("format.contains_keyword", "\"never\" cannot be used with rego_version v1")
		}
	}
	if opt, ok := keywordOption(cfg.Format.IfKeyword, format.WithIfKeyword); ok {
		opts = append(opts, opt)
	}
	if opt, ok := keywordOption(cfg.Format.ContainsKeyword, format.WithContainsKeyword); ok {
		opts = append(opts, opt)
	}

	return rego.New(
		rego.WithParser(p),
		rego.WithRegistry(reg),
		rego.WithValidation(cfg.Format.Validate),
		rego.WithFormatOptions(opts...),
	), nil
}

// keywordOption maps a keyword mode to a formatter option. The auto mode
// leaves the choice to the formatter; modes are checked by config.Validate.
func keywordOption(mode string, option func(bool) format.Option) (format.Option, bool) {
	switch mode {
	case config.KeywordAlways:
		return option(true), true
	case config.KeywordNever:
		return option(false), true
	default:
		return nil, false
	}
}
