package ast

import (
	"fmt"
	"strings"
)

// Module is a parsed policy file.
type Module struct {
	Package  *Package
	Imports  []*Import
	Rules    Rules
	Comments []*Comment
}

// NewModule creates an empty module.
func NewModule() *Module {
	return &Module{}
}

// TypeError reports a value or statement that the tree cannot represent.
type TypeError struct {
	Message  string
	Location *Location
}

func (e *TypeError) Error() string {
	return e.Message
}

func typeErrorf(loc *Location, format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...), Location: loc}
}

// AddStatement appends a top-level statement to the module: a comment, rule,
// import or package. Any other node is a TypeError.
func (m *Module) AddStatement(stmt Node) error {
	switch s := stmt.(type) {
	case *Comment:
		m.Comments = append(m.Comments, s)
	case *Rule:
		m.Rules = append(m.Rules, s)
	case *Import:
		m.Imports = append(m.Imports, s)
	case *Package:
		m.Package = s
	case nil:
		return typeErrorf(nil, "unexpected statement: <nil>")
	default:
		return typeErrorf(stmt.Loc(), "unexpected statement: %s", stmt.Kind())
	}
	return nil
}

// RootName returns the name of the chain a rule of this module belongs to.
func (m *Module) RootName(r *Rule) string {
	return m.Rules.RootName(r)
}

// HasImport returns true if the module imports the given path, for example
// "future.keywords.if".
func (m *Module) HasImport(path string) bool {
	for _, imp := range m.Imports {
		if imp.ID() == path {
			return true
		}
	}
	return false
}

func (m *Module) Kind() Kind     { return KindModule }
func (m *Module) Loc() *Location { return nil }
func (m *Module) Fields() []Field {
	return []Field{
		{Name: "package", Value: m.Package},
		{Name: "imports", Value: m.Imports},
		{Name: "rules", Value: m.Rules},
		{Name: "comments", Value: m.Comments},
	}
}

// String returns a one-line-per-statement summary of the module.
func (m *Module) String() string {
	var lines []string
	if m.Package != nil {
		lines = append(lines, m.Package.String())
	}
	for _, imp := range m.Imports {
		lines = append(lines, imp.String())
	}
	for _, r := range m.Rules {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
func (*Module) node() {}
