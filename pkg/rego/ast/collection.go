package ast

// Array is an ordered collection literal.
type Array struct {
	Elems    []Term
	Location *Location
}

// NewArray creates an array literal.
func NewArray(loc *Location, elems ...Term) *Array {
	if elems == nil {
		elems = []Term{}
	}
	return &Array{Elems: elems, Location: loc}
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.Elems) }

func (a *Array) Kind() Kind     { return KindArray }
func (a *Array) Loc() *Location { return a.Location }
func (a *Array) Fields() []Field {
	return []Field{{Name: "value", Value: a.Elems}, {Name: "location", Value: a.Location}}
}
func (a *Array) String() string { return "[" + joinTerms(a.Elems, ", ") + "]" }
func (*Array) node()            {}
func (*Array) term()            {}

// Set is an unordered collection literal. Elements are unique by value and keep
// their insertion order.
type Set struct {
	elems    []Term
	keys     map[string]struct{}
	Location *Location
}

// NewSet creates a set literal. Elements equal by value to an earlier element
// are dropped.
func NewSet(loc *Location, elems ...Term) *Set {
	s := &Set{keys: make(map[string]struct{}, len(elems)), Location: loc}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add inserts t unless an element with the same value is already present. It
// returns true if the set changed.
func (s *Set) Add(t Term) bool {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
		for _, e := range s.elems {
			s.keys[valueKey(e)] = struct{}{}
		}
	}
	k := valueKey(t)
	if _, ok := s.keys[k]; ok {
		return false
	}
	s.keys[k] = struct{}{}
	s.elems = append(s.elems, t)
	return true
}

// Has returns true if an element with the same value as t is present.
func (s *Set) Has(t Term) bool {
	for _, e := range s.elems {
		if valueKey(e) == valueKey(t) {
			return true
		}
	}
	return false
}

// Elems returns the elements in insertion order.
func (s *Set) Elems() []Term {
	out := make([]Term, len(s.elems))
	copy(out, s.elems)
	return out
}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.elems) }

func (s *Set) Kind() Kind     { return KindSet }
func (s *Set) Loc() *Location { return s.Location }
func (s *Set) Fields() []Field {
	return []Field{{Name: "value", Value: s.elems}, {Name: "location", Value: s.Location}}
}
func (s *Set) String() string {
	if len(s.elems) == 0 {
		return "set()"
	}
	return "{" + joinTerms(s.elems, ", ") + "}"
}
func (*Set) node() {}
func (*Set) term() {}

// ObjectItem is one key/value pair of an object literal.
type ObjectItem struct {
	Key   Term
	Value Term
}

// Item creates an object item.
func Item(key, value Term) ObjectItem {
	return ObjectItem{Key: key, Value: value}
}

// Object is a key/value collection literal. Items keep their source order.
type Object struct {
	Items    []ObjectItem
	Location *Location
}

// NewObject creates an object literal.
func NewObject(loc *Location, items ...ObjectItem) *Object {
	if items == nil {
		items = []ObjectItem{}
	}
	return &Object{Items: items, Location: loc}
}

// Get returns the value of the first item whose key equals key by value.
func (o *Object) Get(key Term) (Term, bool) {
	k := valueKey(key)
	for _, item := range o.Items {
		if valueKey(item.Key) == k {
			return item.Value, true
		}
	}
	return nil, false
}

// Len returns the number of items.
func (o *Object) Len() int { return len(o.Items) }

func (o *Object) Kind() Kind     { return KindObject }
func (o *Object) Loc() *Location { return o.Location }
func (o *Object) Fields() []Field {
	return []Field{{Name: "value", Value: o.Items}, {Name: "location", Value: o.Location}}
}
func (o *Object) String() string {
	s := "{"
	for i, item := range o.Items {
		if i > 0 {
			s += ", "
		}
		s += termText(item.Key) + ": " + termText(item.Value)
	}
	return s + "}"
}
func (*Object) node() {}
func (*Object) term() {}
