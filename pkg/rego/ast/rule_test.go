package ast

import (
	"errors"
	"testing"
)

func rule(name string, head *RuleHead, body *RuleBody) *Rule {
	if head == nil {
		head = NewRuleHead(NewVariable(name, nil), nil, false, nil)
	}
	return NewRule(head, body, nil)
}

func TestRule_ChainKind(t *testing.T) {
	x := NewVariable("x", nil)
	body := NewRuleBody(nil, NewValueExpression(NewReference(nil, InputRoot(), NewString("admin", nil)), nil))

	tests := []struct {
		name string
		rule *Rule
		want RuleKind
	}{
		{"constant", rule("allow", nil, nil), RuleConstant},
		{"complete", rule("allow", nil, body), RuleComplete},
		{"function", rule("", NewFunctionHead(NewVariable("f", nil), []Term{x}, x, true, nil), body), RuleFunction},
		{"function without parameters", rule("", NewFunctionHead(NewVariable("f", nil), nil, nil, false, nil), nil), RuleFunction},
		{"partial set", rule("", NewPartialHead(NewVariable("users", nil), x, nil, false, nil), body), RulePartialSet},
		{"partial object", rule("", NewPartialHead(NewVariable("roles", nil), x, NewBoolean(true, nil), true, nil), body), RulePartialObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.ChainKind(); got != tt.want {
				t.Errorf("ChainKind() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewRule_TrueBody(t *testing.T) {
	r := rule("allow", nil, nil)
	if r.Body == nil || r.Body.Len() != 1 || !r.Body.IsTrue() {
		t.Fatalf("Body = %v, want the true body", r.Body)
	}
	if !r.IsConstant() || !r.IsComplete() {
		t.Error("a rule without a body is a constant complete rule")
	}
}

func TestRule_SetElse(t *testing.T) {
	root := rule("score", NewFunctionHead(NewVariable("score", nil), []Term{NewVariable("x", nil)}, NumberFromInt(1, nil), true, nil), nil)
	first := rule("other", NewFunctionHead(NewVariable("other", nil), []Term{NewVariable("y", nil)}, NumberFromInt(2, nil), true, nil), nil)
	second := rule("third", nil, nil)

	if err := first.SetElse(second); err != nil {
		t.Fatalf("SetElse() error = %v", err)
	}
	if err := root.SetElse(first); err != nil {
		t.Fatalf("SetElse() error = %v", err)
	}

	for _, r := range []*Rule{first, second} {
		if r.Name() != ElseName {
			t.Errorf("Name() = %q, want else", r.Name())
		}
		if r.RootHandle() != root.Token {
			t.Errorf("RootHandle() = %q, want the root token", r.RootHandle())
		}
		if !r.IsElse() {
			t.Error("IsElse() = false")
		}
	}
	if first.Head.Args != nil {
		t.Error("SetElse() should drop the continuation's arguments")
	}
	if root.IsElse() || root.RootHandle() != root.Token {
		t.Error("the root should be its own handle")
	}
	if got := len(root.Chain()); got != 3 {
		t.Errorf("len(Chain()) = %d, want 3", got)
	}

	rules := Rules{root}
	if got := rules.RootName(second); got != "score" {
		t.Errorf("RootName() = %q, want score", got)
	}
	if rules.Root(second) != root {
		t.Error("Root() should resolve the handle")
	}
	if got := (Rules{}).RootName(second); got != "" {
		t.Errorf("RootName() with no root = %q, want empty", got)
	}
}

func TestRule_SetElseCycle(t *testing.T) {
	a := rule("a", nil, nil)
	b := rule("b", nil, nil)

	if err := a.SetElse(b); err != nil {
		t.Fatalf("SetElse() error = %v", err)
	}
	if err := b.SetElse(a); !errors.Is(err, ErrElseCycle) {
		t.Errorf("SetElse() error = %v, want ErrElseCycle", err)
	}
	if err := a.SetElse(a); !errors.Is(err, ErrElseCycle) {
		t.Errorf("SetElse(self) error = %v, want ErrElseCycle", err)
	}
	if b.HasElse() {
		t.Error("a rejected continuation must not be attached")
	}
}

func TestRule_UnsetElse(t *testing.T) {
	root := rule("p", nil, nil)
	mid := rule("q", nil, nil)
	tail := rule("r", nil, nil)
	_ = mid.SetElse(tail)
	_ = root.SetElse(mid)

	detached := root.UnsetElse()
	if detached != mid {
		t.Fatal("UnsetElse() should return the continuation")
	}
	if root.HasElse() {
		t.Error("root still has a continuation")
	}
	if mid.IsElse() {
		t.Error("the detached rule should become a root")
	}
	if tail.RootHandle() != mid.Token {
		t.Error("the remaining chain should be re-rooted at the detached rule")
	}
	if root.UnsetElse() != nil {
		t.Error("UnsetElse() without a continuation should return nil")
	}
}

func TestRule_Clone(t *testing.T) {
	root := rule("p", nil, nil)
	_ = root.SetElse(rule("q", nil, nil))

	clone := root.Clone()
	if clone.Token == root.Token || clone.Else.Token == root.Else.Token {
		t.Error("Clone() should assign new tokens")
	}
	if clone.Else.RootHandle() != clone.Token {
		t.Error("the cloned chain should be rooted at the clone")
	}
	if clone.Head == root.Head || clone.Body == root.Body {
		t.Error("Clone() should copy the head and body")
	}
	if clone.Else.Name() != ElseName {
		t.Errorf("cloned continuation name = %q", clone.Else.Name())
	}
}

func TestRule_CloneContinuation(t *testing.T) {
	root := rule("p", nil, nil)
	mid := rule("q", nil, nil)
	_ = mid.SetElse(rule("r", nil, nil))
	_ = root.SetElse(mid)

	clone := root.Else.Clone()
	if !clone.IsElse() {
		t.Fatal("a cloned continuation should stay a continuation")
	}
	if clone.RootHandle() != root.Token || clone.Else.RootHandle() != root.Token {
		t.Error("a cloned continuation should keep the original root handle")
	}
	if (Rules{root}).Root(clone) != root {
		t.Error("Root() of the cloned continuation should resolve to the original root")
	}
}

func TestRules_Resolve(t *testing.T) {
	a, b := rule("a", nil, nil), rule("b", nil, nil)
	rules := Rules{a, b}

	if rules.Resolve(b.Token) != b {
		t.Error("Resolve() did not find b")
	}
	if rules.Resolve("missing") != nil {
		t.Error("Resolve() should return nil for an unknown handle")
	}
	if rules.Root(a) != a {
		t.Error("Root() of a root should be itself")
	}
}

func TestRuleHead_String(t *testing.T) {
	tests := []struct {
		name string
		head *RuleHead
		want string
	}{
		{"complete", NewRuleHead(NewVariable("allow", nil), NewBoolean(true, nil), false, nil), "allow = true"},
		{"function", NewFunctionHead(NewVariable("f", nil), []Term{NewVariable("x", nil), NewString("y", nil)}, NewVariable("z", nil), true, nil), `f(x, "y") = z`},
		{"partial set", NewPartialHead(NewVariable("p", nil), NewString("k", nil), nil, false, nil), `p["k"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.head.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	r := rule("allow", NewRuleHead(NewVariable("allow", nil), NewBoolean(true, nil), false, nil), nil)
	if got := r.String(); got != "allow is a complete value (allow = true)" {
		t.Errorf("Rule.String() = %q", got)
	}
}

func TestModule_AddStatement(t *testing.T) {
	m := NewModule()

	stmts := []Node{
		NewPackage(NewReference(nil, NewVariable("play", nil)), nil),
		NewImport(NewReference(nil, InputRoot()), nil, nil),
		rule("allow", nil, nil),
		NewComment(" hi", nil),
	}
	for _, s := range stmts {
		if err := m.AddStatement(s); err != nil {
			t.Fatalf("AddStatement(%s) error = %v", s.Kind(), err)
		}
	}
	if m.Package == nil || len(m.Imports) != 1 || len(m.Rules) != 1 || len(m.Comments) != 1 {
		t.Errorf("module = %+v", m)
	}

	var typeErr *TypeError
	if err := m.AddStatement(NewString("x", nil)); !errors.As(err, &typeErr) {
		t.Errorf("AddStatement(string) error = %v, want *TypeError", err)
	}
	if err := m.AddStatement(nil); !errors.As(err, &typeErr) {
		t.Errorf("AddStatement(nil) error = %v, want *TypeError", err)
	}
}
