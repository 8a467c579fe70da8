package ast

import "strings"

// RuleBody is the ordered list of expressions of a rule, comprehension or
// quantifier. Every edit renumbers the expressions so that At(i).Index == i.
type RuleBody struct {
	exprs    []*Expression
	Location *Location
}

// NewRuleBody creates a body and numbers its expressions.
func NewRuleBody(loc *Location, exprs ...*Expression) *RuleBody {
	b := &RuleBody{exprs: append([]*Expression(nil), exprs...), Location: loc}
	return b.Renumber()
}

// TrueBody returns the canonical body of a rule that has none: a single true
// expression.
func TrueBody(loc *Location) *RuleBody {
	return NewRuleBody(loc, NewValueExpression(NewBoolean(true, loc), loc))
}

// Len returns the number of expressions.
func (b *RuleBody) Len() int { return len(b.exprs) }

// At returns the expression at index i.
func (b *RuleBody) At(i int) *Expression { return b.exprs[i] }

// Exprs returns the expressions in order.
func (b *RuleBody) Exprs() []*Expression {
	out := make([]*Expression, len(b.exprs))
	copy(out, b.exprs)
	return out
}

// IndexOf returns the position of e, or -1.
func (b *RuleBody) IndexOf(e *Expression) int {
	for i, x := range b.exprs {
		if x == e {
			return i
		}
	}
	return -1
}

// Add inserts e at index and returns the line after which it was inserted:
// the end line of the preceding expression, or the line before the body when
// inserting first.
func (b *RuleBody) Add(index int, e *Expression) int {
	line := 0
	if index > 0 && index <= len(b.exprs) {
		if loc := b.exprs[index-1].Location; loc != nil {
			line = loc.End.Line
		}
	} else if b.Location != nil {
		line = b.Location.Start.Line - 1
	}
	b.Splice(index, 0, e)
	return line
}

// Remove deletes the expression at index.
func (b *RuleBody) Remove(index int) {
	b.Splice(index, 1)
}

// Replace swaps the expression at index for e.
func (b *RuleBody) Replace(index int, e *Expression) {
	b.Splice(index, 1, e)
}

// Splice removes deleteCount expressions starting at start, inserts items in
// their place and returns the removed expressions. A negative start counts
// from the end.
func (b *RuleBody) Splice(start, deleteCount int, items ...*Expression) []*Expression {
	n := len(b.exprs)
	start = clampIndex(start, n)
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}

	removed := append([]*Expression(nil), b.exprs[start:start+deleteCount]...)

	next := make([]*Expression, 0, n-deleteCount+len(items))
	next = append(next, b.exprs[:start]...)
	next = append(next, items...)
	next = append(next, b.exprs[start+deleteCount:]...)
	b.exprs = next

	b.Renumber()
	return removed
}

// Renumber sets every expression's Index to its position.
func (b *RuleBody) Renumber() *RuleBody {
	for i, e := range b.exprs {
		e.Index = i
	}
	return b
}

// IsTrue returns true if every expression is trivially true.
func (b *RuleBody) IsTrue() bool {
	for _, e := range b.exprs {
		if !e.IsTrue() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (b *RuleBody) Clone() *RuleBody {
	exprs := make([]*Expression, len(b.exprs))
	for i, e := range b.exprs {
		exprs[i] = e.Clone()
	}
	return NewRuleBody(cloneLocation(b.Location), exprs...)
}

func (b *RuleBody) Kind() Kind     { return KindRuleBody }
func (b *RuleBody) Loc() *Location { return b.Location }
func (b *RuleBody) Fields() []Field {
	return []Field{{Name: "value", Value: b.exprs}, {Name: "location", Value: b.Location}}
}

// String joins the expressions with "; ".
func (b *RuleBody) String() string {
	if b == nil {
		return ""
	}
	parts := make([]string, len(b.exprs))
	for i, e := range b.exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
func (*RuleBody) node() {}
