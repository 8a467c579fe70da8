package ast

// Some declares local variables: "some x, y" or "some k, v in xs". Membership
// forms carry a single call expression as their symbol.
type Some struct {
	Symbols  []Term
	Location *Location
}

// NewSome creates a some declaration.
func NewSome(loc *Location, symbols ...Term) *Some {
	if symbols == nil {
		symbols = []Term{}
	}
	return &Some{Symbols: symbols, Location: loc}
}

func (s *Some) Kind() Kind     { return KindSome }
func (s *Some) Loc() *Location { return s.Location }
func (s *Some) Fields() []Field {
	return []Field{{Name: "symbols", Value: s.Symbols}, {Name: "location", Value: s.Location}}
}
func (s *Some) String() string { return "some " + joinTerms(s.Symbols, ", ") }
func (*Some) node()            {}
func (*Some) term()            {}

// Every is universal quantification: "every k, v in domain { body }". Symbols
// holds the value variable, preceded by the key variable when present.
type Every struct {
	Symbols  []Term
	Domain   Term
	Body     *RuleBody
	Location *Location
}

// NewEvery creates an every expression.
func NewEvery(symbols []Term, domain Term, body *RuleBody, loc *Location) *Every {
	if symbols == nil {
		symbols = []Term{}
	}
	return &Every{Symbols: symbols, Domain: domain, Body: body, Location: loc}
}

func (e *Every) Kind() Kind     { return KindEvery }
func (e *Every) Loc() *Location { return e.Location }
func (e *Every) Fields() []Field {
	return []Field{
		{Name: "symbols", Value: e.Symbols},
		{Name: "domain", Value: e.Domain},
		{Name: "body", Value: e.Body},
		{Name: "location", Value: e.Location},
	}
}
func (e *Every) String() string {
	s := "every " + joinTerms(e.Symbols, ", ")
	if e.Domain != nil {
		s += " in " + termText(e.Domain)
	}
	if e.Body != nil {
		s += " { " + e.Body.String() + " }"
	}
	return s
}
func (*Every) node() {}
func (*Every) term() {}
