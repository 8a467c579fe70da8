package ast

import (
	"strings"

	"github.com/google/uuid"
)

// Expression is one statement of a rule body. It is either a call, where
// Terms[0] is the operator and the remaining terms are operands, or a bare
// value held in Value.
type Expression struct {
	// Token identifies this expression instance. Clones receive a new token.
	Token string

	// Index is the position of the expression within its body, or -1 before
	// the expression is added to one.
	Index int

	Negated bool

	// Terms holds the operator and operands of a call. It is nil for a bare
	// value.
	Terms []Term

	// Value holds a bare value. It is nil for a call.
	Value Term

	With          []*With
	IsPlaceholder bool
	Location      *Location
}

// NewCall creates a call expression from an operator and its operands.
func NewCall(loc *Location, operator Term, operands ...Term) *Expression {
	terms := make([]Term, 0, len(operands)+1)
	terms = append(terms, operator)
	terms = append(terms, operands...)
	return &Expression{Token: uuid.NewString(), Index: -1, Terms: terms, Location: loc}
}

// NewValueExpression creates an expression that holds a single value.
func NewValueExpression(value Term, loc *Location) *Expression {
	return &Expression{Token: uuid.NewString(), Index: -1, Value: value, Location: loc}
}

// IsCall returns true if the expression has an operator.
func (e *Expression) IsCall() bool {
	return len(e.Terms) > 0
}

// Operator returns the operator name of a call, or "" for a bare value.
func (e *Expression) Operator() string {
	if !e.IsCall() {
		return ""
	}
	return e.Terms[0].String()
}

// LeftOperand returns the first operand of a call.
func (e *Expression) LeftOperand() Term {
	if len(e.Terms) < 2 {
		return nil
	}
	return e.Terms[1]
}

// RightOperand returns the second operand of a call.
func (e *Expression) RightOperand() Term {
	if len(e.Terms) < 3 {
		return nil
	}
	return e.Terms[2]
}

// Arguments returns the operands of a call.
func (e *Expression) Arguments() []Term {
	if !e.IsCall() {
		return nil
	}
	return e.Terms[1:]
}

// Inputs returns the operands of a call without its output operand. A call
// with a single operand returns that operand.
func (e *Expression) Inputs() []Term {
	switch n := len(e.Terms); {
	case n == 0:
		return nil
	case n == 2:
		return e.Terms[1:2]
	case n == 1:
		return []Term{}
	default:
		return e.Terms[1 : n-1]
	}
}

// Output returns the last term of a call.
func (e *Expression) Output() Term {
	if !e.IsCall() {
		return nil
	}
	return e.Terms[len(e.Terms)-1]
}

// IsAssignment returns true for calls to the := operator.
func (e *Expression) IsAssignment(reg *Registry) bool {
	b, ok := reg.Lookup(":=")
	return ok && e.IsCall() && e.Operator() == b.Name
}

// IsEquality returns true for calls to the = operator.
func (e *Expression) IsEquality(reg *Registry) bool {
	b, ok := reg.Lookup("=")
	return ok && e.IsCall() && e.Operator() == b.Name
}

// IsTrue returns true if the expression is trivially true: the literal true,
// the negation of the literal false, or a call consisting only of true.
func (e *Expression) IsTrue() bool {
	if e.Terms == nil {
		b, ok := e.Value.(*Boolean)
		if !ok {
			return false
		}
		return b.Value != e.Negated
	}
	if e.Negated || len(e.Terms) != 1 {
		return false
	}
	b, ok := e.Terms[0].(*Boolean)
	return ok && b.Value
}

// SetNegated sets the negation flag.
func (e *Expression) SetNegated(negated bool) *Expression {
	e.Negated = negated
	return e
}

// AddWith appends a with-modifier.
func (e *Expression) AddWith(w *With) *Expression {
	e.With = append(e.With, w)
	return e
}

// Clone returns a deep copy with a new token.
func (e *Expression) Clone() *Expression {
	clone := &Expression{
		Token:         uuid.NewString(),
		Index:         e.Index,
		Negated:       e.Negated,
		IsPlaceholder: e.IsPlaceholder,
		Location:      cloneLocation(e.Location),
	}
	if e.Terms != nil {
		clone.Terms = cloneTerms(e.Terms)
	} else {
		clone.Value = CloneTerm(e.Value)
	}
	for _, w := range e.With {
		clone.With = append(clone.With, w.Clone())
	}
	return clone
}

func (e *Expression) Kind() Kind     { return KindExpression }
func (e *Expression) Loc() *Location { return e.Location }
func (e *Expression) Fields() []Field {
	var terms any = e.Value
	if e.Terms != nil {
		terms = e.Terms
	}
	return []Field{
		{Name: "index", Value: e.Index},
		{Name: "negated", Value: e.Negated},
		{Name: "terms", Value: terms},
		{Name: "with", Value: e.With},
		{Name: "location", Value: e.Location},
	}
}

// String returns a compact form such as "not eq(x, 1) with input as {}".
func (e *Expression) String() string {
	var b strings.Builder
	if e.Negated {
		b.WriteString("not ")
	}
	if e.IsCall() {
		b.WriteString(e.Operator())
		b.WriteByte('(')
		b.WriteString(joinTerms(e.Terms[1:], ", "))
		b.WriteByte(')')
	} else {
		b.WriteString(termText(e.Value))
	}
	for _, w := range e.With {
		b.WriteByte(' ')
		b.WriteString(w.String())
	}
	return b.String()
}
func (*Expression) node() {}
func (*Expression) term() {}
