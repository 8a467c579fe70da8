package ast

import "strings"

// Kind identifies the variant of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindVariable
	KindReference
	KindArray
	KindSet
	KindObject
	KindArrayComprehension
	KindSetComprehension
	KindObjectComprehension
	KindExpression
	KindWith
	KindSome
	KindEvery
	KindRuleHead
	KindRuleBody
	KindRule
	KindImport
	KindPackage
	KindModule
	KindComment
)

var kindNames = [...]string{
	KindNull:                "null",
	KindBoolean:             "boolean",
	KindNumber:              "number",
	KindString:              "string",
	KindVariable:            "variable",
	KindReference:           "reference",
	KindArray:               "array",
	KindSet:                 "set",
	KindObject:              "object",
	KindArrayComprehension:  "arraycomprehension",
	KindSetComprehension:    "setcomprehension",
	KindObjectComprehension: "objectcomprehension",
	KindExpression:          "expression",
	KindWith:                "with",
	KindSome:                "some",
	KindEvery:               "every",
	KindRuleHead:            "rulehead",
	KindRuleBody:            "body",
	KindRule:                "rule",
	KindImport:              "import",
	KindPackage:             "package",
	KindModule:              "module",
	KindComment:             "comment",
}

// String returns the type tag used in the canonical JSON form.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Field is a named child value of a node, as visited by FindContext.
type Field struct {
	Name  string
	Value any
}

// Node is the closed set of AST variants.
type Node interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Loc returns the source span, or nil if the node was built without one.
	Loc() *Location

	// Fields returns the node's own fields in declaration order.
	Fields() []Field

	node()
}

// Term is a Node that can appear as a value: scalars, variables, references,
// collections, comprehensions, call expressions, some and every.
type Term interface {
	Node

	// String returns a compact textual form of the term.
	String() string

	term()
}

// termText renders a term the way it appears inside a composite value, with
// strings quoted.
func termText(t Term) string {
	if t == nil {
		return ""
	}
	if s, ok := t.(*String); ok {
		return s.Quote()
	}
	return t.String()
}

func joinTerms(terms []Term, sep string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = termText(t)
	}
	return strings.Join(parts, sep)
}
