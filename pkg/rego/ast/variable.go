package ast

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultRootName is the root of every package and of the data document.
	DefaultRootName = "data"

	// InputRootName is the root of the input document.
	InputRootName = "input"

	// FutureRootName is the root of future keyword imports.
	FutureRootName = "future"

	// WildcardPrefix marks generated variables that render as "_".
	WildcardPrefix = "$"
)

// Keywords are the reserved words that can never be used as bare identifiers.
var Keywords = []string{
	"as", "default", "else", "false", "import", "not",
	"null", "package", "some", "true", "with",
}

// FutureKeywords are reserved under rego.v1 and by the future.keywords imports.
var FutureKeywords = []string{"contains", "every", "if", "in"}

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*$`)

// IsKeyword returns true if s is a reserved word.
func IsKeyword(s string) bool {
	return slices.Contains(Keywords, s)
}

// IsFutureKeyword returns true if s is one of the future keywords.
func IsFutureKeyword(s string) bool {
	return slices.Contains(FutureKeywords, s)
}

// IsValidIdentifier returns true if s can be written as a bare identifier.
func IsValidIdentifier(s string) bool {
	return !IsKeyword(s) && identifierRegex.MatchString(s)
}

// Variable is an identifier.
type Variable struct {
	Value    string
	Location *Location
}

// NewVariable creates a variable.
func NewVariable(name string, loc *Location) *Variable {
	return &Variable{Value: name, Location: loc}
}

// DefaultRoot returns a new "data" variable.
func DefaultRoot() *Variable { return NewVariable(DefaultRootName, nil) }

// InputRoot returns a new "input" variable.
func InputRoot() *Variable { return NewVariable(InputRootName, nil) }

// FutureRoot returns a new "future" variable.
func FutureRoot() *Variable { return NewVariable(FutureRootName, nil) }

// Len returns the number of characters in the identifier.
func (v *Variable) Len() int {
	return utf8.RuneCountInString(v.Value)
}

// IsRoot returns true for the data and input roots.
func (v *Variable) IsRoot() bool {
	return v.Value == DefaultRootName || v.Value == InputRootName
}

// IsWildcard returns true for generated variables.
func (v *Variable) IsWildcard() bool {
	return strings.HasPrefix(v.Value, WildcardPrefix)
}

func (v *Variable) Kind() Kind     { return KindVariable }
func (v *Variable) Loc() *Location { return v.Location }
func (v *Variable) Fields() []Field {
	return []Field{{Name: "value", Value: v.Value}, {Name: "location", Value: v.Location}}
}

// String returns the identifier, or "_" for a wildcard.
func (v *Variable) String() string {
	if v.IsWildcard() {
		return "_"
	}
	return v.Value
}
func (*Variable) node() {}
func (*Variable) term() {}
