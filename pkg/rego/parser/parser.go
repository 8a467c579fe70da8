package parser

import (
	"fmt"
	"os"

	opa "github.com/open-policy-agent/opa/v1/ast"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
)

// DefaultMaxFileSize is the largest file ParseFile reads.
const DefaultMaxFileSize = 10 * 1024 * 1024

// StartRule selects the construct the source text must contain.
type StartRule string

const (
	Module     StartRule = "Module"
	Rule       StartRule = "Rule"
	Expression StartRule = "Expression"
	Import     StartRule = "Import"
	Reference  StartRule = "Reference"
)

// RegoVersion selects the language version accepted by the parser.
type RegoVersion int

const (
	// RegoV1 requires "if" and "contains" and enables all keywords.
	RegoV1 RegoVersion = iota

	// RegoV0 accepts the original syntax; keywords need future imports.
	RegoV0
)

// ParseRegoVersion maps "v0" and "v1" to a version.
func ParseRegoVersion(s string) (RegoVersion, error) {
	switch s {
	case "v1", "1", "":
		return RegoV1, nil
	case "v0", "0":
		return RegoV0, nil
	default:
		return RegoV1, fmt.Errorf("unknown rego version %q", s)
	}
}

func (v RegoVersion) String() string {
	if v == RegoV0 {
		return "v0"
	}
	return "v1"
}

// Parser parses policy source text into ast trees.
type Parser struct {
	regoVersion       RegoVersion
	allFutureKeywords bool
	maxFileSize       int64
}

// NewParser creates a parser for Rego v1 with the default file size limit.
func NewParser() *Parser {
	return &Parser{
		regoVersion: RegoV1,
		maxFileSize: DefaultMaxFileSize,
	}
}

// WithRegoVersion sets the accepted language version.
func (p *Parser) WithRegoVersion(v RegoVersion) *Parser {
	p.regoVersion = v
	return p
}

// WithAllFutureKeywords enables every future keyword without imports. It only
// matters for RegoV0.
func (p *Parser) WithAllFutureKeywords(enabled bool) *Parser {
	p.allFutureKeywords = enabled
	return p
}

// WithMaxFileSize sets the maximum file size accepted by ParseFile.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// RegoVersion returns the accepted language version.
func (p *Parser) RegoVersion() RegoVersion {
	return p.regoVersion
}

func (p *Parser) options() opa.ParserOptions {
	opts := opa.ParserOptions{AllFutureKeywords: p.allFutureKeywords}
	switch p.regoVersion {
	case RegoV0:
		opts.RegoVersion = opa.RegoV0
	default:
		opts.RegoVersion = opa.RegoV1
	}
	return opts
}

// Parse parses source as the construct named by start. The result is an
// *ast.Module, *ast.Rule, *ast.Expression, *ast.Import or *ast.Reference.
func (p *Parser) Parse(source string, start StartRule) (ast.Node, error) {
	switch start {
	case Module:
		return p.ParseModule("", source)
	case Rule:
		return p.ParseRule(source)
	case Expression:
		return p.ParseExpression(source)
	case Import:
		return p.ParseImport(source)
	case Reference:
		return p.ParseReference(source)
	default:
		return nil, fmt.Errorf("unknown start rule %q", start)
	}
}

// ParseModule parses a complete module. filename is only used in errors.
func (p *Parser) ParseModule(filename, source string) (*ast.Module, error) {
	m, err := opa.ParseModuleWithOpts(filename, source, p.options())
	if err != nil {
		return nil, syntaxError(filename, source, err)
	}
	if m == nil {
		return nil, regoerrors.NewSyntaxError("empty module", nil)
	}
	return convertModule(m)
}

// ParseRule parses a single rule.
func (p *Parser) ParseRule(source string) (*ast.Rule, error) {
	r, err := opa.ParseRuleWithOpts(source, p.options())
	if err != nil {
		return nil, syntaxError("", source, err)
	}
	return convertRule(r)
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression(source string) (*ast.Expression, error) {
	body, err := opa.ParseBodyWithOpts(source, p.options())
	if err != nil {
		return nil, syntaxError("", source, err)
	}
	if len(body) != 1 {
		return nil, regoerrors.NewSyntaxError(
			fmt.Sprintf("expected one expression, found %d", len(body)), nil)
	}
	return convertExpr(body[0])
}

// ParseImport parses a single import statement.
func (p *Parser) ParseImport(source string) (*ast.Import, error) {
	stmts, _, err := opa.ParseStatementsWithOpts("", source, p.options())
	if err != nil {
		return nil, syntaxError("", source, err)
	}
	if len(stmts) != 1 {
		return nil, regoerrors.NewSyntaxError(
			fmt.Sprintf("expected one import, found %d statements", len(stmts)), nil)
	}
	imp, ok := stmts[0].(*opa.Import)
	if !ok {
		return nil, regoerrors.NewSyntaxError("expected an import", location(stmts[0].Loc()))
	}
	return convertImport(imp)
}

// ParseReference parses a reference such as data.servers[i].name. A bare
// variable becomes a single-segment reference.
func (p *Parser) ParseReference(source string) (*ast.Reference, error) {
	t, err := opa.ParseTerm(source)
	if err != nil {
		return nil, syntaxError("", source, err)
	}

	term, err := convertTerm(t)
	if err != nil {
		return nil, err
	}

	switch v := term.(type) {
	case *ast.Reference:
		return v, nil
	case *ast.Variable:
		return ast.NewReference(v.Location, v), nil
	default:
		return nil, regoerrors.NewSyntaxError(
			fmt.Sprintf("expected a reference, found %s", term.Kind()), term.Loc())
	}
}

// MaxFileSize returns the largest file ParseFile accepts.
func (p *Parser) MaxFileSize() int64 {
	return p.maxFileSize
}

// ParseFile reads and parses a module file.
func (p *Parser) ParseFile(path string) (*ast.Module, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, regoerrors.NewIOError(path, err)
	}

	if info.Size() > p.maxFileSize {
		e := regoerrors.NewIOError(path,
			fmt.Errorf("file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize))
		e.Suggestion = "Split the module or raise the parser's max_file_size"
		return nil, e
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, regoerrors.NewIOError(path, err)
	}

	return p.ParseModule(path, string(data))
}

var defaultParser = NewParser()

// Parse parses source with the default parser.
func Parse(source string, start StartRule) (ast.Node, error) {
	return defaultParser.Parse(source, start)
}

// ParseModule parses a module with the default parser.
func ParseModule(filename, source string) (*ast.Module, error) {
	return defaultParser.ParseModule(filename, source)
}

// ParseRule parses a rule with the default parser.
func ParseRule(source string) (*ast.Rule, error) {
	return defaultParser.ParseRule(source)
}

// ParseExpression parses an expression with the default parser.
func ParseExpression(source string) (*ast.Expression, error) {
	return defaultParser.ParseExpression(source)
}

// ParseImport parses an import with the default parser.
func ParseImport(source string) (*ast.Import, error) {
	return defaultParser.ParseImport(source)
}

// ParseReference parses a reference with the default parser.
func ParseReference(source string) (*ast.Reference, error) {
	return defaultParser.ParseReference(source)
}
