package ast

import "strings"

// HeadKind classifies what a rule head defines.
type HeadKind string

const (
	// HeadComplete defines a complete value.
	HeadComplete HeadKind = "complete"

	// HeadPartialObject defines one key of an object.
	HeadPartialObject HeadKind = "object"

	// HeadPartialSet defines one element of a set.
	HeadPartialSet HeadKind = "set"
)

// RuleHead is the name, arguments, key and value of a rule.
type RuleHead struct {
	Name *Variable

	// Args is nil for rules that are not functions. A function with no
	// parameters has a non-nil, empty Args.
	Args []Term

	Key   Term
	Value Term

	// Assign is true when the value is introduced with := rather than =.
	Assign bool

	Location *Location
}

// NewRuleHead creates the head of a complete rule. value may be nil.
func NewRuleHead(name *Variable, value Term, assign bool, loc *Location) *RuleHead {
	return &RuleHead{Name: name, Value: value, Assign: assign, Location: loc}
}

// NewFunctionHead creates the head of a function.
func NewFunctionHead(name *Variable, args []Term, value Term, assign bool, loc *Location) *RuleHead {
	if args == nil {
		args = []Term{}
	}
	return &RuleHead{Name: name, Args: args, Value: value, Assign: assign, Location: loc}
}

// NewPartialHead creates the head of a partial rule. A nil value defines a set
// element; otherwise the head defines an object key.
func NewPartialHead(name *Variable, key, value Term, assign bool, loc *Location) *RuleHead {
	return &RuleHead{Name: name, Key: key, Value: value, Assign: assign, Location: loc}
}

// HeadKind derives the kind of the head from its key and value.
func (h *RuleHead) HeadKind() HeadKind {
	if h.Key != nil {
		if h.Value != nil {
			return HeadPartialObject
		}
		return HeadPartialSet
	}
	return HeadComplete
}

// HasArguments returns true for function heads.
func (h *RuleHead) HasArguments() bool {
	return h.Args != nil
}

// Clone returns a deep copy.
func (h *RuleHead) Clone() *RuleHead {
	clone := &RuleHead{
		Key:      CloneTerm(h.Key),
		Value:    CloneTerm(h.Value),
		Assign:   h.Assign,
		Location: cloneLocation(h.Location),
	}
	if h.Name != nil {
		clone.Name = CloneTerm(h.Name).(*Variable)
	}
	if h.Args != nil {
		clone.Args = cloneTerms(h.Args)
	}
	return clone
}

func (h *RuleHead) Kind() Kind     { return KindRuleHead }
func (h *RuleHead) Loc() *Location { return h.Location }
func (h *RuleHead) Fields() []Field {
	return []Field{
		{Name: "name", Value: h.Name},
		{Name: "arguments", Value: h.Args},
		{Name: "assign", Value: h.Assign},
		{Name: "key", Value: h.Key},
		{Name: "value", Value: h.Value},
		{Name: "location", Value: h.Location},
	}
}

// String returns a compact form such as `f(x, "y") = z` or `p["k"]`.
func (h *RuleHead) String() string {
	var b strings.Builder
	if h.Name != nil {
		b.WriteString(h.Name.String())
	}
	switch {
	case h.Args != nil:
		b.WriteByte('(')
		b.WriteString(joinTerms(h.Args, ", "))
		b.WriteByte(')')
	case h.Key != nil:
		b.WriteByte('[')
		b.WriteString(termText(h.Key))
		b.WriteByte(']')
	}
	if h.Value != nil {
		b.WriteString(" = ")
		b.WriteString(termText(h.Value))
	}
	return b.String()
}
func (*RuleHead) node() {}
