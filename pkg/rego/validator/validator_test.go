package validator

import (
	stderrors "errors"
	"strings"
	"testing"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
	"regoplay/playground/pkg/rego/parser"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	m, err := parser.ParseModule("test.rego", src)
	if err != nil {
		t.Fatalf("ParseModule() failed: %v", err)
	}
	return m
}

func errorList(t *testing.T, err error) *regoerrors.ErrorList {
	t.Helper()
	var list *regoerrors.ErrorList
	if !stderrors.As(err, &list) {
		t.Fatalf("Expected ErrorList, got %T", err)
	}
	return list
}

func hasMessage(list *regoerrors.ErrorList, substr string) bool {
	for _, e := range list.Errors {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func module(rules ...*ast.Rule) *ast.Module {
	m := ast.NewModule()
	m.Package = ast.NewPackage(ast.NewVariable("play", nil), nil)
	m.Rules = rules
	return m
}

func simpleRule(name string) *ast.Rule {
	return ast.NewRule(ast.NewRuleHead(ast.NewVariable(name, nil), ast.NewBoolean(true, nil), true, nil), nil, nil)
}

func TestValidator_ParsedModules(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
		kind    regoerrors.Kind
		message string
	}{
		{
			name: "valid module",
			src: `package play

import data.lib.util

default allow := false

allow if {
	count(input.roles) > 0
	util.is_admin(input.user)
}

users contains name if {
	some name in input.names
}

double(x) := x * 2
`,
		},
		{
			name: "unknown function",
			src: `package play

allow if cont(input.roles) > 0
`,
			wantErr: true,
			kind:    regoerrors.KindSemantic,
			message: `Unknown function "cont"`,
		},
		{
			name: "conflicting kinds",
			src: `package play

p contains 1

p := 2
`,
			wantErr: true,
			kind:    regoerrors.KindSemantic,
			message: "both a set and a complete rule",
		},
		{
			name: "multiple defaults",
			src: `package play

default allow := false

default allow := true
`,
			wantErr: true,
			kind:    regoerrors.KindSemantic,
			message: "Multiple default rules",
		},
		{
			name: "local function",
			src: `package play

f(x) := x

y := f(1)
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidator(nil).Validate(mustParse(t, tt.src))

			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			list := errorList(t, err)
			if !list.HasKind(tt.kind) {
				t.Errorf("Expected error kind %v, got errors: %v", tt.kind, list.Errors)
			}
			if !hasMessage(list, tt.message) {
				t.Errorf("Expected a message containing %q, got errors: %v", tt.message, list.Errors)
			}
		})
	}
}

func TestStructuralValidator_Package(t *testing.T) {
	m := module(simpleRule("p"))
	m.Package = nil

	list := errorList(t, NewStructuralValidator(ast.DefaultRegistry()).Validate(m))
	if !hasMessage(list, "no package declaration") {
		t.Errorf("Expected a missing package error, got %v", list.Errors)
	}
	if list.Errors[0].Suggestion == "" {
		t.Error("Expected a suggestion")
	}

	m.Package = &ast.Package{Path: ast.NewReference(nil, ast.InputRoot(), ast.NewString("x", nil))}
	list = errorList(t, NewStructuralValidator(ast.DefaultRegistry()).Validate(m))
	if !hasMessage(list, "not rooted at data") {
		t.Errorf("Expected a rooting error, got %v", list.Errors)
	}
}

func TestStructuralValidator_Imports(t *testing.T) {
	ref := func(segs ...string) *ast.Reference {
		terms := []ast.Term{ast.NewVariable(segs[0], nil)}
		for _, s := range segs[1:] {
			terms = append(terms, ast.NewString(s, nil))
		}
		return ast.NewReference(nil, terms...)
	}

	tests := []struct {
		name    string
		imports []*ast.Import
		message string
	}{
		{"valid", []*ast.Import{
			ast.NewImport(ref("data", "lib"), nil, nil),
			ast.NewImport(ref("future", "keywords", "if"), nil, nil),
			ast.NewImport(ref("rego", "v1"), nil, nil),
			ast.NewImport(ref("input", "user"), ast.NewVariable("u", nil), nil),
		}, ""},
		{"bad root", []*ast.Import{ast.NewImport(ref("dato", "lib"), nil, nil)}, "must start with"},
		{"unknown future keyword", []*ast.Import{ast.NewImport(ref("future", "keywords", "unless"), nil, nil)}, `Unknown future keyword "unless"`},
		{"unknown future import", []*ast.Import{ast.NewImport(ref("future", "magic"), nil, nil)}, `Unknown import "future.magic"`},
		{"unknown rego import", []*ast.Import{ast.NewImport(ref("rego", "v2"), nil, nil)}, `Unknown import "rego.v2"`},
		{"future alias", []*ast.Import{ast.NewImport(ref("future", "keywords"), ast.NewVariable("kw", nil), nil)}, "cannot have an alias"},
		{"keyword alias", []*ast.Import{ast.NewImport(ref("data", "lib"), ast.NewVariable("default", nil), nil)}, "not a valid identifier"},
		{"duplicate names", []*ast.Import{
			ast.NewImport(ref("data", "a", "lib"), nil, nil),
			ast.NewImport(ref("data", "b", "lib"), nil, nil),
		}, `Import name "lib" is already defined`},
		{"placeholder", []*ast.Import{ast.PlaceholderImport()}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := module(simpleRule("p"))
			m.Imports = tt.imports

			err := NewStructuralValidator(ast.DefaultRegistry()).Validate(m)
			if tt.message == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if list := errorList(t, err); !hasMessage(list, tt.message) {
				t.Errorf("Expected a message containing %q, got %v", tt.message, list.Errors)
			}
		})
	}
}

func TestStructuralValidator_Rules(t *testing.T) {
	body := func() *ast.RuleBody {
		return ast.NewRuleBody(nil, ast.NewValueExpression(ast.NewReference(nil, ast.InputRoot(), ast.NewString("x", nil)), nil))
	}

	tests := []struct {
		name    string
		build   func() *ast.Module
		message string
	}{
		{
			name: "default without value",
			build: func() *ast.Module {
				r := ast.NewRule(ast.NewRuleHead(ast.NewVariable("allow", nil), nil, false, nil), nil, nil)
				return module(r.SetDefault(true))
			},
			message: "has no value",
		},
		{
			name: "default with body",
			build: func() *ast.Module {
				r := ast.NewRule(ast.NewRuleHead(ast.NewVariable("allow", nil), ast.NewBoolean(false, nil), true, nil), body(), nil)
				return module(r.SetDefault(true))
			},
			message: "cannot have a body",
		},
		{
			name: "partial with else",
			build: func() *ast.Module {
				r := ast.NewRule(ast.NewPartialHead(ast.NewVariable("users", nil), ast.NewVariable("x", nil), nil, false, nil), body(), nil)
				_ = r.SetElse(simpleRule("x"))
				return module(r)
			},
			message: "cannot have an else continuation",
		},
		{
			name: "else from another chain",
			build: func() *ast.Module {
				a, c := simpleRule("a"), simpleRule("c")
				_ = a.SetElse(simpleRule("b"))
				c.Else = a.Else
				return module(c)
			},
			message: "refers to another chain",
		},
		{
			name: "top-level else",
			build: func() *ast.Module {
				a := simpleRule("a")
				_ = a.SetElse(simpleRule("b"))
				return module(a, a.Else)
			},
			message: "cannot be a top-level rule",
		},
		{
			name: "unnamed rule",
			build: func() *ast.Module {
				return module(ast.NewRule(ast.NewRuleHead(ast.NewVariable("", nil), nil, false, nil), nil, nil))
			},
			message: "Rule has no name",
		},
		{
			name: "function with key",
			build: func() *ast.Module {
				head := ast.NewFunctionHead(ast.NewVariable("f", nil), nil, ast.NewBoolean(true, nil), true, nil)
				head.Key = ast.NewString("k", nil)
				return module(ast.NewRule(head, nil, nil))
			},
			message: "cannot define a key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStructuralValidator(ast.DefaultRegistry()).Validate(tt.build())
			if err == nil {
				t.Fatal("Validate() error = nil")
			}
			list := errorList(t, err)
			if !list.HasKind(regoerrors.KindStructural) || !hasMessage(list, tt.message) {
				t.Errorf("Expected a message containing %q, got %v", tt.message, list.Errors)
			}
		})
	}
}

func TestStructuralValidator_Bodies(t *testing.T) {
	e := ast.NewValueExpression(ast.NewBoolean(true, nil), nil)
	body := ast.NewRuleBody(nil, ast.NewValueExpression(ast.NewVariable("x", nil), nil), e)
	e.Index = 5

	r := ast.NewRule(ast.NewRuleHead(ast.NewVariable("p", nil), nil, false, nil), body, nil)
	list := errorList(t, NewStructuralValidator(ast.DefaultRegistry()).Validate(module(r)))
	if !hasMessage(list, "has index 5 at position 1") {
		t.Errorf("Expected an index error, got %v", list.Errors)
	}

	body.Renumber()
	if err := NewStructuralValidator(ast.DefaultRegistry()).Validate(module(r)); err != nil {
		t.Errorf("Validate() after Renumber error = %v", err)
	}
}

func TestStructuralValidator_ObjectKeys(t *testing.T) {
	obj := ast.NewObject(nil,
		ast.Item(ast.NumberFromInt(1, nil), ast.NewNull(nil)),
		ast.Item(ast.NewNumber("1.0", nil), ast.NewNull(nil)),
		ast.Item(ast.NewString("1", nil), ast.NewNull(nil)),
	)
	r := ast.NewRule(ast.NewRuleHead(ast.NewVariable("p", nil), obj, true, nil), nil, nil)

	list := errorList(t, NewStructuralValidator(ast.DefaultRegistry()).Validate(module(r)))
	if list.Count() != 1 || !hasMessage(list, `Object key "1.0" is defined more than once`) {
		t.Errorf("Expected one duplicate key error, got %v", list.Errors)
	}
}

func TestValidator_SkipsSemanticOnStructuralErrors(t *testing.T) {
	call := ast.NewCall(nil, ast.NewReference(nil, ast.NewVariable("nope", nil)), ast.NumberFromInt(1, nil))
	r := ast.NewRule(ast.NewRuleHead(ast.NewVariable("p", nil), nil, false, nil), ast.NewRuleBody(nil, call), nil)
	m := module(r)

	list := errorList(t, NewValidator(nil).Validate(m))
	if !list.HasKind(regoerrors.KindSemantic) {
		t.Fatalf("Expected a semantic error, got %v", list.Errors)
	}

	m.Package = nil
	list = errorList(t, NewValidator(nil).Validate(m))
	if list.HasKind(regoerrors.KindSemantic) {
		t.Errorf("Semantic checks should not run on a malformed tree: %v", list.Errors)
	}
}

func TestSemanticValidator_Suggestion(t *testing.T) {
	m := mustParse(t, "package play\n\nallow if startwith(input.path, \"/admin\")\n")

	list := errorList(t, NewSemanticValidator(ast.DefaultRegistry()).Validate(m))
	if got := list.Errors[0].Suggestion; got != "did you mean 'startswith'?" {
		t.Errorf("Suggestion = %q", got)
	}
}
