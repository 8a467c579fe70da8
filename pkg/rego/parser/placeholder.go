package parser

import (
	"strings"

	"regoplay/playground/pkg/rego/ast"
)

// ParsePlaceholderExpression parses source as an expression tagged as a
// placeholder. An empty source yields ast.PlaceholderExpression.
func (p *Parser) ParsePlaceholderExpression(source string) (*ast.Expression, error) {
	if strings.TrimSpace(source) == "" {
		return ast.PlaceholderExpression(), nil
	}

	e, err := p.ParseExpression(source)
	if err != nil {
		return nil, err
	}
	e.IsPlaceholder = true
	return e, nil
}

// ParsePlaceholderRule parses "<head> { <body> }" as a rule tagged as a
// placeholder, along with its body expressions. An empty head uses
// ast.PlaceholderRuleName and an empty body is "true".
func (p *Parser) ParsePlaceholderRule(head, body string) (*ast.Rule, error) {
	if strings.TrimSpace(head) == "" {
		head = ast.PlaceholderRuleName
	}
	if strings.TrimSpace(body) == "" {
		body = "true"
	}

	src := head + " { " + body + " }"
	if p.regoVersion == RegoV1 {
		src = head + " if { " + body + " }"
	}

	r, err := p.ParseRule(src)
	if err != nil {
		return nil, err
	}

	r.IsPlaceholder = true
	for _, e := range r.Body.Exprs() {
		e.IsPlaceholder = true
	}
	return r, nil
}

// ParsePlaceholderExpression parses a placeholder expression with the default
// parser.
func ParsePlaceholderExpression(source string) (*ast.Expression, error) {
	return defaultParser.ParsePlaceholderExpression(source)
}

// ParsePlaceholderRule parses a placeholder rule with the default parser.
func ParsePlaceholderRule(head, body string) (*ast.Rule, error) {
	return defaultParser.ParsePlaceholderRule(head, body)
}
