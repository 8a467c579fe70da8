package ast

func cloneLocation(loc *Location) *Location {
	if loc == nil {
		return nil
	}
	clone := *loc
	return &clone
}

func cloneTerms(terms []Term) []Term {
	if terms == nil {
		return nil
	}
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = CloneTerm(t)
	}
	return out
}

func cloneBody(b *RuleBody) *RuleBody {
	if b == nil {
		return nil
	}
	return b.Clone()
}

// CloneTerm returns a deep copy of t, preserving locations.
func CloneTerm(t Term) Term {
	switch v := t.(type) {
	case nil:
		return nil
	case *Null:
		return NewNull(cloneLocation(v.Location))
	case *Boolean:
		return NewBoolean(v.Value, cloneLocation(v.Location))
	case *Number:
		return NewNumber(v.Value.String(), cloneLocation(v.Location))
	case *String:
		return NewString(v.Value, cloneLocation(v.Location))
	case *Variable:
		return NewVariable(v.Value, cloneLocation(v.Location))
	case *Reference:
		ref := NewReference(cloneLocation(v.Location), cloneTerms(v.Segments)...)
		ref.IsPlaceholder = v.IsPlaceholder
		return ref
	case *Array:
		return NewArray(cloneLocation(v.Location), cloneTerms(v.Elems)...)
	case *Set:
		return NewSet(cloneLocation(v.Location), cloneTerms(v.elems)...)
	case *Object:
		items := make([]ObjectItem, len(v.Items))
		for i, item := range v.Items {
			items[i] = Item(CloneTerm(item.Key), CloneTerm(item.Value))
		}
		return NewObject(cloneLocation(v.Location), items...)
	case *ArrayComprehension:
		return NewArrayComprehension(CloneTerm(v.Term), cloneBody(v.Body), cloneLocation(v.Location))
	case *SetComprehension:
		return NewSetComprehension(CloneTerm(v.Term), cloneBody(v.Body), cloneLocation(v.Location))
	case *ObjectComprehension:
		return NewObjectComprehension(CloneTerm(v.Key), CloneTerm(v.Value), cloneBody(v.Body), cloneLocation(v.Location))
	case *Expression:
		return v.Clone()
	case *Some:
		return NewSome(cloneLocation(v.Location), cloneTerms(v.Symbols)...)
	case *Every:
		return NewEvery(cloneTerms(v.Symbols), CloneTerm(v.Domain), cloneBody(v.Body), cloneLocation(v.Location))
	default:
		return t
	}
}
