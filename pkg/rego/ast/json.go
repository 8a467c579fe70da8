package ast

import "encoding/json"

// Canonical JSON form of the tree. Terms are {type, value, location}; other
// nodes use their own shapes. Absent optional fields are omitted, never null,
// except Module.package.

type termJSON struct {
	Type     string    `json:"type"`
	Value    any       `json:"value"`
	Location *Location `json:"location,omitempty"`
}

func marshalTerm(k Kind, value any, loc *Location) ([]byte, error) {
	return json.Marshal(termJSON{Type: k.String(), Value: value, Location: loc})
}

func (n *Null) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindNull, struct{}{}, n.Location)
}

func (b *Boolean) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindBoolean, b.Value, b.Location)
}

func (n *Number) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindNumber, n.Value, n.Location)
}

func (s *String) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindString, s.Value, s.Location)
}

func (v *Variable) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindVariable, v.Value, v.Location)
}

func (r *Reference) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindReference, r.Segments, r.Location)
}

func (a *Array) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindArray, a.Elems, a.Location)
}

func (s *Set) MarshalJSON() ([]byte, error) {
	elems := s.elems
	if elems == nil {
		elems = []Term{}
	}
	return marshalTerm(KindSet, elems, s.Location)
}

// MarshalJSON writes the item as a [key, value] pair.
func (i ObjectItem) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]Term{i.Key, i.Value})
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindObject, o.Items, o.Location)
}

func (c *ArrayComprehension) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindArrayComprehension, struct {
		Term Term      `json:"term"`
		Body *RuleBody `json:"body"`
	}{c.Term, c.Body}, c.Location)
}

func (c *SetComprehension) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindSetComprehension, struct {
		Term Term      `json:"term"`
		Body *RuleBody `json:"body"`
	}{c.Term, c.Body}, c.Location)
}

func (c *ObjectComprehension) MarshalJSON() ([]byte, error) {
	return marshalTerm(KindObjectComprehension, struct {
		Key   Term      `json:"key"`
		Value Term      `json:"value"`
		Body  *RuleBody `json:"body"`
	}{c.Key, c.Value, c.Body}, c.Location)
}

func (s *Some) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Symbols  []Term    `json:"symbols"`
		Location *Location `json:"location,omitempty"`
	}{KindSome.String(), s.Symbols, s.Location})
}

func (e *Every) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Symbols  []Term    `json:"symbols"`
		Domain   Term      `json:"domain"`
		Body     *RuleBody `json:"body"`
		Location *Location `json:"location,omitempty"`
	}{KindEvery.String(), e.Symbols, e.Domain, e.Body, e.Location})
}

func (e *Expression) MarshalJSON() ([]byte, error) {
	var terms any = e.Value
	if e.Terms != nil {
		terms = e.Terms
	}
	return json.Marshal(struct {
		Index    int       `json:"index"`
		Negated  bool      `json:"negated,omitempty"`
		Terms    any       `json:"terms"`
		With     []*With   `json:"with,omitempty"`
		Location *Location `json:"location,omitempty"`
	}{e.Index, e.Negated, terms, e.With, e.Location})
}

func (w *With) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Target   Term      `json:"target"`
		Value    Term      `json:"value"`
		Location *Location `json:"location,omitempty"`
	}{w.Target, w.Value, w.Location})
}

// MarshalJSON writes the body as an array of expressions.
func (b *RuleBody) MarshalJSON() ([]byte, error) {
	exprs := b.exprs
	if exprs == nil {
		exprs = []*Expression{}
	}
	return json.Marshal(exprs)
}

func (h *RuleHead) MarshalJSON() ([]byte, error) {
	var args *[]Term
	if h.Args != nil {
		args = &h.Args
	}
	var name string
	if h.Name != nil {
		name = h.Name.Value
	}
	return json.Marshal(struct {
		Name      string    `json:"name"`
		Arguments *[]Term   `json:"arguments,omitempty"`
		Assign    bool      `json:"assign"`
		Key       Term      `json:"key,omitempty"`
		Value     Term      `json:"value,omitempty"`
		Location  *Location `json:"location,omitempty"`
	}{name, args, h.Assign, h.Key, h.Value, h.Location})
}

func (r *Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Default  bool      `json:"default,omitempty"`
		Head     *RuleHead `json:"head"`
		Body     *RuleBody `json:"body"`
		Else     *Rule     `json:"else,omitempty"`
		Location *Location `json:"location,omitempty"`
	}{r.Default, r.Head, r.Body, r.Else, r.Location})
}

func (i *Import) MarshalJSON() ([]byte, error) {
	var alias string
	if i.Alias != nil {
		alias = i.Alias.Value
	}
	return json.Marshal(struct {
		Path     *Reference `json:"path"`
		Alias    string     `json:"alias,omitempty"`
		Location *Location  `json:"location,omitempty"`
	}{i.Path, alias, i.Location})
}

func (p *Package) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path     []Term    `json:"path"`
		Location *Location `json:"location,omitempty"`
	}{p.Path.Segments, p.Location})
}

func (c *Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value    string    `json:"value"`
		Location *Location `json:"location,omitempty"`
	}{c.Text, c.Location})
}

func (m *Module) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Package  *Package   `json:"package"`
		Imports  []*Import  `json:"imports,omitempty"`
		Rules    []*Rule    `json:"rules,omitempty"`
		Comments []*Comment `json:"comments,omitempty"`
	}{m.Package, m.Imports, m.Rules, m.Comments})
}
