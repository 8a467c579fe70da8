package ast

import "github.com/google/uuid"

// With replaces a document or function for the duration of one expression:
// "with target as value".
type With struct {
	Token         string
	Target        Term
	Value         Term
	IsPlaceholder bool
	Location      *Location
}

// NewWith creates a with-modifier.
func NewWith(target, value Term, loc *Location) *With {
	return &With{Token: uuid.NewString(), Target: target, Value: value, Location: loc}
}

// Clone returns a deep copy with a new token.
func (w *With) Clone() *With {
	clone := NewWith(CloneTerm(w.Target), CloneTerm(w.Value), cloneLocation(w.Location))
	clone.IsPlaceholder = w.IsPlaceholder
	return clone
}

func (w *With) Kind() Kind     { return KindWith }
func (w *With) Loc() *Location { return w.Location }
func (w *With) Fields() []Field {
	return []Field{
		{Name: "target", Value: w.Target},
		{Name: "value", Value: w.Value},
		{Name: "location", Value: w.Location},
	}
}
func (w *With) String() string {
	return "with " + termText(w.Target) + " as " + termText(w.Value)
}
func (*With) node() {}
