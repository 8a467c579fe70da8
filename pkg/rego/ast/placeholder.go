package ast

// Placeholders stand in for nodes that an interactive edit has started but not
// finished. They are ordinary nodes tagged IsPlaceholder.

const (
	// PlaceholderRuleName is the head name of a placeholder rule.
	PlaceholderRuleName = "placeholder"

	placeholderSubject = "regoplay.placeholder"
	placeholderIgnore  = "ignore"
)

// PlaceholderReference returns an empty-named reference.
func PlaceholderReference() *Reference {
	ref := NewReference(MakeLocation(nil), NewVariable("", nil))
	ref.IsPlaceholder = true
	return ref
}

// PlaceholderImport returns an import of a placeholder reference.
func PlaceholderImport() *Import {
	imp := NewImport(PlaceholderReference(), nil, MakeLocation(nil))
	imp.IsPlaceholder = true
	return imp
}

// PlaceholderExpression returns the expression
// "regoplay.placeholder" > "ignore", which is always true.
func PlaceholderExpression() *Expression {
	loc := MakeLocation(nil)
	e := NewCall(loc,
		NewReference(nil, NewVariable("gt", nil)),
		NewString(placeholderSubject, nil),
		NewString(placeholderIgnore, nil),
	)
	e.IsPlaceholder = true
	return e
}

// PlaceholderValueExpression returns a placeholder expression holding value.
func PlaceholderValueExpression(value Term) *Expression {
	e := NewValueExpression(value, MakeLocation(nil))
	e.IsPlaceholder = true
	return e
}

// PlaceholderRule returns "<name> { 1 }" with a placeholder body. An empty
// name uses PlaceholderRuleName.
func PlaceholderRule(name string) *Rule {
	if name == "" {
		name = PlaceholderRuleName
	}
	loc := MakeLocation(nil)
	head := NewRuleHead(NewVariable(name, nil), nil, false, MakeLocation(nil))
	body := NewRuleBody(MakeLocation(nil), PlaceholderValueExpression(NumberFromInt(1, nil)))

	r := NewRule(head, body, loc)
	r.IsPlaceholder = true
	return r
}

// PlaceholderWith returns `with input.x as "x"`.
func PlaceholderWith() *With {
	target := NewReference(nil, InputRoot(), NewString("x", nil))
	w := NewWith(target, NewString("x", nil), MakeLocation(nil))
	w.IsPlaceholder = true
	return w
}
