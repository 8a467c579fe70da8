package format

import "regoplay/playground/pkg/rego/ast"

const (
	// DefaultIndent is the indentation unit.
	DefaultIndent = "  "

	// DefaultTrailer is appended after the last non-whitespace character.
	DefaultTrailer = "\n"
)

type options struct {
	annotate bool
	indent   string
	strict   bool
	trailer  string
	registry *ast.Registry

	// nil means derive from the module's imports.
	ifKeyword       *bool
	containsKeyword *bool
}

func defaultOptions() options {
	return options{
		indent:  DefaultIndent,
		strict:  true,
		trailer: DefaultTrailer,
	}
}

// Option configures a Formatter.
type Option func(*options)

// WithAnnotate wraps every emitted term in <kind: ...> markers, for debugging
// the layout.
func WithAnnotate(annotate bool) Option {
	return func(o *options) {
		o.annotate = annotate
	}
}

// WithIndent sets the indentation unit.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// WithStrict selects the layout heuristic. In strict mode collections are laid
// out one element per line unless they are empty or already inside an inline
// context. Non-strict mode additionally keeps collections inline when they
// were written on a single line.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithTrailer sets the text appended after the last non-whitespace character.
func WithTrailer(trailer string) Option {
	return func(o *options) {
		o.trailer = trailer
	}
}

// WithIfKeyword forces "if" rendering on or off instead of deriving it from
// the module's imports.
func WithIfKeyword(enabled bool) Option {
	return func(o *options) {
		o.ifKeyword = &enabled
	}
}

// WithContainsKeyword forces "contains" rendering of partial set heads on or
// off instead of deriving it from the module's imports.
func WithContainsKeyword(enabled bool) Option {
	return func(o *options) {
		o.containsKeyword = &enabled
	}
}

// WithRegistry sets the builtin registry used to recognize infix operators.
func WithRegistry(reg *ast.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}
