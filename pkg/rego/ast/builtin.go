package ast

import (
	"encoding/json"
	"regexp"
	"sort"
)

var referenceNameRegex = regexp.MustCompile(`^[a-z0-9_]+\.[a-z0-9_]+`)

// Builtin describes a built-in function or operator.
type Builtin struct {
	Name string `json:"name"`

	// Infix is the operator token for builtins written between their operands,
	// such as "+" for plus. It is empty for ordinary functions.
	Infix string `json:"infix,omitempty"`

	// Decl is the type declaration as found in the capability descriptor.
	Decl json.RawMessage `json:"decl,omitempty"`
}

// ToExpression builds a call to the builtin with the given operands.
func (b *Builtin) ToExpression(operands ...Term) *Expression {
	return NewCall(nil, ReferenceFromDotted(b.Name, nil), operands...)
}

// Registry indexes builtins by name and by infix token. A Registry is
// immutable once built and safe for concurrent use.
type Registry struct {
	byName         map[string]*Builtin
	plain          []string
	references     []string
	infixes        []string
	infixNames     map[string]struct{}
	futureKeywords []string
}

// NewRegistry creates a registry from a list of builtins. Later entries with
// the same name replace earlier ones.
func NewRegistry(builtins ...*Builtin) *Registry {
	r := &Registry{
		byName:     make(map[string]*Builtin, len(builtins)*2),
		infixNames: make(map[string]struct{}),
	}

	plain := make(map[string]struct{})
	references := make(map[string]struct{})

	for _, b := range builtins {
		if b == nil || b.Name == "" {
			continue
		}
		r.byName[b.Name] = b

		switch {
		case b.Infix != "":
			r.byName[b.Infix] = b
			r.infixNames[b.Name] = struct{}{}
		case referenceNameRegex.MatchString(b.Name):
			references[b.Name] = struct{}{}
		default:
			plain[b.Name] = struct{}{}
		}
	}

	r.plain = sortedKeys(plain)
	r.references = sortedKeys(references)
	r.infixes = sortedKeys(r.infixNames)
	return r
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the builtin registered under name or under the infix token
// name.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	if r == nil {
		return nil, false
	}
	b, ok := r.byName[name]
	return b, ok
}

// IsInfixName returns true if name is the name of an infix builtin.
func (r *Registry) IsInfixName(name string) bool {
	_, ok := r.infixNames[name]
	return ok
}

// PlainNames returns the sorted names of builtins that are neither infix nor
// namespaced.
func (r *Registry) PlainNames() []string { return append([]string(nil), r.plain...) }

// ReferenceNames returns the sorted names of namespaced builtins, such as
// "io.jwt.decode".
func (r *Registry) ReferenceNames() []string { return append([]string(nil), r.references...) }

// InfixNames returns the sorted names of infix builtins.
func (r *Registry) InfixNames() []string { return append([]string(nil), r.infixes...) }

// FutureKeywords returns the keywords that can be imported from future.keywords.
func (r *Registry) FutureKeywords() []string { return append([]string(nil), r.futureKeywords...) }

// Len returns the number of registered builtins.
func (r *Registry) Len() int {
	return len(r.plain) + len(r.references) + len(r.infixes)
}
