// Package rego ties the parser, validator and formatter together: source text
// goes in, canonical source text comes out.
//
//	out, err := rego.FormatSource("policy.rego", src)
//
// A Service keeps its parser, validator and formatter options between calls
// and is safe for concurrent use.
package rego

import (
	"regoplay/playground/pkg/rego/ast"
	"regoplay/playground/pkg/rego/format"
	"regoplay/playground/pkg/rego/parser"
	"regoplay/playground/pkg/rego/validator"
)

// Service formats policy source.
type Service struct {
	parser     *parser.Parser
	registry   *ast.Registry
	validate   bool
	formatOpts []format.Option
}

// Option configures a Service.
type Option func(*Service)

// WithParser sets the parser used by FormatSource.
func WithParser(p *parser.Parser) Option {
	return func(s *Service) {
		s.parser = p
	}
}

// WithRegistry sets the builtin registry used for validation and formatting.
func WithRegistry(reg *ast.Registry) Option {
	return func(s *Service) {
		s.registry = reg
	}
}

// WithValidation runs the validator on every module before it is formatted.
func WithValidation(enabled bool) Option {
	return func(s *Service) {
		s.validate = enabled
	}
}

// WithFormatOptions appends formatter options. They are applied after the
// options derived from the parser's language version, so they take precedence.
func WithFormatOptions(opts ...format.Option) Option {
	return func(s *Service) {
		s.formatOpts = append(s.formatOpts, opts...)
	}
}

// New creates a Service. The defaults are a v1 parser, the default registry
// and no validation.
func New(opts ...Option) *Service {
	s := &Service{
		parser:   parser.NewParser(),
		registry: ast.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parser returns the parser used by the service.
func (s *Service) Parser() *parser.Parser { return s.parser }

// FormatSource parses src and returns its canonical form.
func (s *Service) FormatSource(filename string, src []byte) (string, error) {
	m, err := s.parser.ParseModule(filename, string(src))
	if err != nil {
		return "", err
	}
	return s.FormatModule(m)
}

// FormatModule validates m if validation is enabled and returns its canonical
// form.
func (s *Service) FormatModule(m *ast.Module) (string, error) {
	if s.validate {
		if err := validator.NewValidator(s.registry).Validate(m); err != nil {
			return "", err
		}
	}
	return format.New(s.options()...).Format(m)
}

// options returns the formatter options for the parser's language version.
// Version 1 requires the if and contains keywords, so they are always written.
func (s *Service) options() []format.Option {
	opts := []format.Option{format.WithRegistry(s.registry)}
	if s.parser.RegoVersion() == parser.RegoV1 {
		opts = append(opts, format.WithIfKeyword(true), format.WithContainsKeyword(true))
	}
	return append(opts, s.formatOpts...)
}

// FormatSource formats src with a Service built from opts.
func FormatSource(filename string, src []byte, opts ...Option) (string, error) {
	return New(opts...).FormatSource(filename, src)
}

// FormatModule formats m with a Service built from opts.
func FormatModule(m *ast.Module, opts ...Option) (string, error) {
	return New(opts...).FormatModule(m)
}
