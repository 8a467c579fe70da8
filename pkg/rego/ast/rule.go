package ast

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// RuleKind classifies a rule.
type RuleKind string

const (
	RuleComplete      RuleKind = "complete"
	RuleConstant      RuleKind = "constant"
	RuleFunction      RuleKind = "function"
	RulePartialObject RuleKind = "object"
	RulePartialSet    RuleKind = "set"
)

// ElseName is the head name of every else continuation.
const ElseName = "else"

// ErrElseCycle is returned when an else continuation would make a chain
// refer back to itself.
var ErrElseCycle = errors.New("else chain would contain a cycle")

// Rule is a rule definition. A rule owns at most one else continuation; the
// continuation knows its chain root only by handle.
type Rule struct {
	// Token identifies this rule instance and is the handle used by else
	// continuations to refer to their root.
	Token string

	Default       bool
	Head          *RuleHead
	Body          *RuleBody
	Else          *Rule
	IsPlaceholder bool
	Location      *Location

	root string
}

// NewRule creates a rule. A nil body is replaced by the canonical true body.
func NewRule(head *RuleHead, body *RuleBody, loc *Location) *Rule {
	if body == nil {
		body = TrueBody(loc)
	}
	return &Rule{Token: uuid.NewString(), Head: head, Body: body, Location: loc}
}

// Name returns the syntactic name of the rule, which is "else" for
// continuations.
func (r *Rule) Name() string {
	if r.Head == nil || r.Head.Name == nil {
		return ""
	}
	return r.Head.Name.String()
}

// RootHandle returns the token of the chain root: the rule's own token for a
// root, the recorded handle for a continuation.
func (r *Rule) RootHandle() string {
	if r.root != "" {
		return r.root
	}
	return r.Token
}

// IsElse returns true if the rule is an else continuation.
func (r *Rule) IsElse() bool { return r.root != "" }

// HasElse returns true if the rule has an else continuation.
func (r *Rule) HasElse() bool { return r.Else != nil }

// IsComplete returns true if the head defines a complete value.
func (r *Rule) IsComplete() bool { return r.Head.HeadKind() == HeadComplete }

// IsPartialObject returns true if the head defines an object key.
func (r *Rule) IsPartialObject() bool { return r.Head.HeadKind() == HeadPartialObject }

// IsPartialSet returns true if the head defines a set element.
func (r *Rule) IsPartialSet() bool { return r.Head.HeadKind() == HeadPartialSet }

// IsConstant returns true if every body expression is trivially true.
func (r *Rule) IsConstant() bool { return r.Body.IsTrue() }

// IsFunction returns true if the head has arguments.
func (r *Rule) IsFunction() bool { return r.Head.HasArguments() }

// ChainKind classifies the rule.
func (r *Rule) ChainKind() RuleKind {
	switch {
	case r.IsFunction():
		return RuleFunction
	case r.IsPartialObject():
		return RulePartialObject
	case r.IsPartialSet():
		return RulePartialSet
	case r.IsConstant():
		return RuleConstant
	default:
		return RuleComplete
	}
}

// SetDefault sets the default flag.
func (r *Rule) SetDefault(v bool) *Rule {
	r.Default = v
	return r
}

// SetElse makes e the else continuation of r, replacing any existing
// continuation. e is renamed to "else", loses its arguments and, along with its
// own continuations, is re-rooted at r's chain root.
func (r *Rule) SetElse(e *Rule) error {
	for x := e; x != nil; x = x.Else {
		if x == r {
			return ErrElseCycle
		}
	}

	if e.Name() != ElseName {
		var loc *Location
		if e.Head.Name != nil {
			loc = cloneLocation(e.Head.Name.Location)
		}
		e.Head.Name = NewVariable(ElseName, loc)
	}
	e.Head.Args = nil

	handle := r.RootHandle()
	for x := e; x != nil; x = x.Else {
		x.root = handle
	}

	r.Else = e
	return nil
}

// UnsetElse detaches the else continuation of r and returns it. The detached
// rule becomes the root of whatever chain continues from it.
func (r *Rule) UnsetElse() *Rule {
	e := r.Else
	if e == nil {
		return nil
	}
	r.Else = nil
	e.root = ""
	for x := e.Else; x != nil; x = x.Else {
		x.root = e.Token
	}
	return e
}

// Chain returns r followed by each of its else continuations.
func (r *Rule) Chain() []*Rule {
	var chain []*Rule
	for x := r; x != nil; x = x.Else {
		chain = append(chain, x)
	}
	return chain
}

// Clone returns a deep copy with new tokens. Cloning a root gives a chain
// rooted at the clone. A cloned continuation keeps the handle of its original
// root, and so does every continuation that follows it.
func (r *Rule) Clone() *Rule {
	clone := &Rule{
		Token:         uuid.NewString(),
		Default:       r.Default,
		Head:          r.Head.Clone(),
		Body:          r.Body.Clone(),
		IsPlaceholder: r.IsPlaceholder,
		Location:      cloneLocation(r.Location),
		root:          r.root,
	}
	handle := clone.RootHandle()
	prev := clone
	for x := r.Else; x != nil; x = x.Else {
		next := &Rule{
			Token:         uuid.NewString(),
			Default:       x.Default,
			Head:          x.Head.Clone(),
			Body:          x.Body.Clone(),
			IsPlaceholder: x.IsPlaceholder,
			Location:      cloneLocation(x.Location),
			root:          handle,
		}
		prev.Else = next
		prev = next
	}
	return clone
}

func (r *Rule) Kind() Kind     { return KindRule }
func (r *Rule) Loc() *Location { return r.Location }
func (r *Rule) Fields() []Field {
	return []Field{
		{Name: "default", Value: r.Default},
		{Name: "head", Value: r.Head},
		{Name: "body", Value: r.Body},
		{Name: "else", Value: r.Else},
		{Name: "location", Value: r.Location},
	}
}

// String describes the rule, for example "allow is a complete value (allow = true)".
func (r *Rule) String() string {
	var what string
	switch r.Head.HeadKind() {
	case HeadComplete:
		what = fmt.Sprintf("is a complete value (%s)", r.Head)
	case HeadPartialObject:
		what = fmt.Sprintf("defines a key in an object (%s)", r.Head)
	case HeadPartialSet:
		what = fmt.Sprintf("defines an element in a set (%s)", r.Head)
	}
	return r.Name() + " " + what
}
func (*Rule) node() {}

// Rules is an ordered list of top-level rules. It resolves the root handles
// recorded by else continuations.
type Rules []*Rule

// Resolve returns the rule whose token is handle.
func (rs Rules) Resolve(handle string) *Rule {
	for _, r := range rs {
		if r.Token == handle {
			return r
		}
	}
	return nil
}

// Root returns the chain root of r, or r itself for a root. It returns nil if
// r is a continuation whose root is not in the list.
func (rs Rules) Root(r *Rule) *Rule {
	if !r.IsElse() {
		return r
	}
	return rs.Resolve(r.root)
}

// RootName returns the name of the rule defined by the chain r belongs to.
func (rs Rules) RootName(r *Rule) string {
	root := rs.Root(r)
	if root == nil {
		return ""
	}
	return root.Name()
}
