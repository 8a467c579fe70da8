package ast

// ArrayComprehension is [term | body].
type ArrayComprehension struct {
	Term     Term
	Body     *RuleBody
	Location *Location
}

// NewArrayComprehension creates an array comprehension.
func NewArrayComprehension(term Term, body *RuleBody, loc *Location) *ArrayComprehension {
	return &ArrayComprehension{Term: term, Body: body, Location: loc}
}

func (c *ArrayComprehension) Kind() Kind     { return KindArrayComprehension }
func (c *ArrayComprehension) Loc() *Location { return c.Location }
func (c *ArrayComprehension) Fields() []Field {
	return []Field{
		{Name: "term", Value: c.Term},
		{Name: "body", Value: c.Body},
		{Name: "location", Value: c.Location},
	}
}
func (c *ArrayComprehension) String() string {
	return "[" + termText(c.Term) + " | " + c.Body.String() + "]"
}
func (*ArrayComprehension) node() {}
func (*ArrayComprehension) term() {}

// SetComprehension is {term | body}.
type SetComprehension struct {
	Term     Term
	Body     *RuleBody
	Location *Location
}

// NewSetComprehension creates a set comprehension.
func NewSetComprehension(term Term, body *RuleBody, loc *Location) *SetComprehension {
	return &SetComprehension{Term: term, Body: body, Location: loc}
}

func (c *SetComprehension) Kind() Kind     { return KindSetComprehension }
func (c *SetComprehension) Loc() *Location { return c.Location }
func (c *SetComprehension) Fields() []Field {
	return []Field{
		{Name: "term", Value: c.Term},
		{Name: "body", Value: c.Body},
		{Name: "location", Value: c.Location},
	}
}
func (c *SetComprehension) String() string {
	return "{" + termText(c.Term) + " | " + c.Body.String() + "}"
}
func (*SetComprehension) node() {}
func (*SetComprehension) term() {}

// ObjectComprehension is {key: value | body}.
type ObjectComprehension struct {
	Key      Term
	Value    Term
	Body     *RuleBody
	Location *Location
}

// NewObjectComprehension creates an object comprehension.
func NewObjectComprehension(key, value Term, body *RuleBody, loc *Location) *ObjectComprehension {
	return &ObjectComprehension{Key: key, Value: value, Body: body, Location: loc}
}

func (c *ObjectComprehension) Kind() Kind     { return KindObjectComprehension }
func (c *ObjectComprehension) Loc() *Location { return c.Location }
func (c *ObjectComprehension) Fields() []Field {
	return []Field{
		{Name: "key", Value: c.Key},
		{Name: "value", Value: c.Value},
		{Name: "body", Value: c.Body},
		{Name: "location", Value: c.Location},
	}
}
func (c *ObjectComprehension) String() string {
	return "{" + termText(c.Key) + ": " + termText(c.Value) + " | " + c.Body.String() + "}"
}
func (*ObjectComprehension) node() {}
func (*ObjectComprehension) term() {}
