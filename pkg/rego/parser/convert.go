package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	opa "github.com/open-policy-agent/opa/v1/ast"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
)

// location converts a parser location. The end position is derived from the
// text the location covers.
func location(loc *opa.Location) *ast.Location {
	if loc == nil {
		return nil
	}

	start := ast.Position{Offset: loc.Offset, Line: loc.Row, Column: loc.Col}
	end := start
	end.Offset += len(loc.Text)

	if i := bytes.LastIndexByte(loc.Text, '\n'); i >= 0 {
		end.Line += bytes.Count(loc.Text, []byte{'\n'})
		end.Column = utf8.RuneCount(loc.Text[i+1:]) + 1
	} else {
		end.Column += utf8.RuneCount(loc.Text)
	}

	return &ast.Location{Start: start, End: end}
}

func convertModule(m *opa.Module) (*ast.Module, error) {
	mod := ast.NewModule()

	if m.Package != nil {
		pkg, err := convertPackage(m.Package)
		if err != nil {
			return nil, err
		}
		mod.Package = pkg
	}

	for _, imp := range m.Imports {
		i, err := convertImport(imp)
		if err != nil {
			return nil, err
		}
		mod.Imports = append(mod.Imports, i)
	}

	for _, r := range m.Rules {
		rule, err := convertRule(r)
		if err != nil {
			return nil, err
		}
		mod.Rules = append(mod.Rules, rule)
	}

	for _, c := range m.Comments {
		mod.Comments = append(mod.Comments, ast.NewComment(string(c.Text), location(c.Location)))
	}

	return mod, nil
}

func convertPackage(p *opa.Package) (*ast.Package, error) {
	// The parsed path is already rooted at data.
	path := p.Path
	if len(path) > 0 && path[0].Equal(opa.DefaultRootDocument) {
		path = path[1:]
	}

	segments, err := convertTerms(path)
	if err != nil {
		return nil, err
	}

	loc := location(p.Location)
	return ast.NewPackage(ast.NewReference(loc, segments...), loc), nil
}

func convertImport(i *opa.Import) (*ast.Import, error) {
	t, err := convertTerm(i.Path)
	if err != nil {
		return nil, err
	}

	var path *ast.Reference
	switch v := t.(type) {
	case *ast.Reference:
		path = v
	case *ast.Variable:
		path = ast.NewReference(v.Location, v)
	default:
		return nil, regoerrors.NewSyntaxError("import path must be a reference", t.Loc())
	}

	var alias *ast.Variable
	if i.Alias != "" {
		alias = ast.NewVariable(string(i.Alias), nil)
	}

	return ast.NewImport(path, alias, location(i.Location)), nil
}

func convertRule(r *opa.Rule) (*ast.Rule, error) {
	head, err := convertHead(r.Head)
	if err != nil {
		return nil, err
	}

	loc := location(r.Location)
	body, err := convertBody(r.Body, loc)
	if err != nil {
		return nil, err
	}

	rule := ast.NewRule(head, body, loc)
	rule.Default = r.Default

	if r.Else != nil {
		e, err := convertRule(r.Else)
		if err != nil {
			return nil, err
		}
		if err := rule.SetElse(e); err != nil {
			return nil, err
		}
	}

	return rule, nil
}

func convertHead(h *opa.Head) (*ast.RuleHead, error) {
	loc := location(h.Location)

	ref := h.Ref()
	keyTerm := h.Key
	if n := len(ref); n > 1 {
		last := ref[n-1]
		_, isString := last.Value.(opa.String)
		switch {
		case keyTerm != nil && last.Equal(keyTerm):
			ref = ref[:n-1]
		case keyTerm == nil && !isString && h.Args == nil:
			// p.q[x] := y defines an object key.
			keyTerm, ref = last, ref[:n-1]
		}
	}

	var nameLoc *ast.Location
	if len(ref) > 0 {
		nameLoc = location(ref[0].Location)
	}
	name := ast.NewVariable(headName(ref), nameLoc)

	value, err := convertOptional(h.Value)
	if err != nil {
		return nil, err
	}

	if h.Args != nil {
		args, err := convertTerms(h.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionHead(name, args, value, h.Assign, loc), nil
	}

	if keyTerm != nil {
		key, err := convertTerm(keyTerm)
		if err != nil {
			return nil, err
		}
		return ast.NewPartialHead(name, key, value, h.Assign, loc), nil
	}

	return ast.NewRuleHead(name, value, h.Assign, loc), nil
}

// headName renders a rule reference such as p or p.q["r"] as the rule's name.
func headName(ref opa.Ref) string {
	if len(ref) == 1 {
		if v, ok := ref[0].Value.(opa.Var); ok {
			return string(v)
		}
	}
	return ref.String()
}

func convertBody(body opa.Body, fallback *ast.Location) (*ast.RuleBody, error) {
	exprs := make([]*ast.Expression, 0, len(body))
	for _, e := range body {
		expr, err := convertExpr(e)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	loc := fallback
	if n := len(exprs); n > 0 && exprs[0].Location != nil && exprs[n-1].Location != nil {
		loc = &ast.Location{Start: exprs[0].Location.Start, End: exprs[n-1].Location.End}
	}

	return ast.NewRuleBody(loc, exprs...), nil
}

func convertExpr(e *opa.Expr) (*ast.Expression, error) {
	loc := location(e.Location)

	var expr *ast.Expression
	switch terms := e.Terms.(type) {
	case *opa.Term:
		value, err := convertTerm(terms)
		if err != nil {
			return nil, err
		}
		expr = ast.NewValueExpression(value, loc)
	case []*opa.Term:
		call, err := convertCall(terms, loc)
		if err != nil {
			return nil, err
		}
		expr = call
	case *opa.SomeDecl:
		symbols, err := convertTerms(terms.Symbols)
		if err != nil {
			return nil, err
		}
		expr = ast.NewValueExpression(ast.NewSome(location(terms.Location), symbols...), loc)
	case *opa.Every:
		every, err := convertEvery(terms)
		if err != nil {
			return nil, err
		}
		expr = ast.NewValueExpression(every, loc)
	default:
		return nil, regoerrors.NewTypeError(fmt.Sprintf("unsupported expression: %T", e.Terms), loc)
	}

	expr.Negated = e.Negated

	for _, w := range e.With {
		target, err := convertTerm(w.Target)
		if err != nil {
			return nil, err
		}
		value, err := convertTerm(w.Value)
		if err != nil {
			return nil, err
		}
		expr.AddWith(ast.NewWith(target, value, location(w.Location)))
	}

	return expr, nil
}

func convertCall(terms []*opa.Term, loc *ast.Location) (*ast.Expression, error) {
	if len(terms) == 0 {
		return nil, regoerrors.NewSyntaxError("empty call", loc)
	}

	converted, err := convertTerms(terms)
	if err != nil {
		return nil, err
	}

	op := converted[0]
	if v, ok := op.(*ast.Variable); ok {
		op = ast.NewReference(v.Location, v)
	}

	return ast.NewCall(loc, op, converted[1:]...), nil
}

func convertEvery(e *opa.Every) (*ast.Every, error) {
	var symbols []ast.Term
	for _, t := range []*opa.Term{e.Key, e.Value} {
		if t == nil {
			continue
		}
		sym, err := convertTerm(t)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}

	domain, err := convertTerm(e.Domain)
	if err != nil {
		return nil, err
	}

	loc := location(e.Location)
	body, err := convertBody(e.Body, loc)
	if err != nil {
		return nil, err
	}

	return ast.NewEvery(symbols, domain, body, loc), nil
}

func convertOptional(t *opa.Term) (ast.Term, error) {
	if t == nil {
		return nil, nil
	}
	return convertTerm(t)
}

func convertTerms(terms []*opa.Term) ([]ast.Term, error) {
	out := make([]ast.Term, 0, len(terms))
	for _, t := range terms {
		term, err := convertTerm(t)
		if err != nil {
			return nil, err
		}
		out = append(out, term)
	}
	return out, nil
}

func convertTerm(t *opa.Term) (ast.Term, error) {
	if t == nil {
		return nil, regoerrors.NewTypeError("missing term", nil)
	}

	loc := location(t.Location)

	switch v := t.Value.(type) {
	case opa.Null:
		return ast.NewNull(loc), nil
	case opa.Boolean:
		return ast.NewBoolean(bool(v), loc), nil
	case opa.Number:
		return ast.NewNumber(string(v), loc), nil
	case opa.String:
		return ast.NewString(string(v), loc), nil
	case opa.Var:
		return ast.NewVariable(string(v), loc), nil
	case opa.Ref:
		segments, err := convertTerms(v)
		if err != nil {
			return nil, err
		}
		return ast.NewReference(loc, segments...), nil
	case *opa.Array:
		elems := make([]ast.Term, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := convertTerm(v.Elem(i))
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return ast.NewArray(loc, elems...), nil
	case opa.Set:
		var elems []ast.Term
		var err error
		v.Foreach(func(x *opa.Term) {
			if err != nil {
				return
			}
			var elem ast.Term
			elem, err = convertTerm(x)
			elems = append(elems, elem)
		})
		if err != nil {
			return nil, err
		}
		return ast.NewSet(loc, elems...), nil
	case opa.Object:
		var items []ast.ObjectItem
		var err error
		v.Foreach(func(k, x *opa.Term) {
			if err != nil {
				return
			}
			var key, value ast.Term
			if key, err = convertTerm(k); err != nil {
				return
			}
			if value, err = convertTerm(x); err != nil {
				return
			}
			items = append(items, ast.Item(key, value))
		})
		if err != nil {
			return nil, err
		}
		return ast.NewObject(loc, items...), nil
	case *opa.ArrayComprehension:
		term, body, err := convertClosure(v.Term, v.Body, loc)
		if err != nil {
			return nil, err
		}
		return ast.NewArrayComprehension(term, body, loc), nil
	case *opa.SetComprehension:
		term, body, err := convertClosure(v.Term, v.Body, loc)
		if err != nil {
			return nil, err
		}
		return ast.NewSetComprehension(term, body, loc), nil
	case *opa.ObjectComprehension:
		key, body, err := convertClosure(v.Key, v.Body, loc)
		if err != nil {
			return nil, err
		}
		value, err := convertTerm(v.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewObjectComprehension(key, value, body, loc), nil
	case opa.Call:
		return convertCall(v, loc)
	default:
		return nil, regoerrors.NewTypeError(fmt.Sprintf("unsupported term: %T", t.Value), loc)
	}
}

func convertClosure(t *opa.Term, body opa.Body, loc *ast.Location) (ast.Term, *ast.RuleBody, error) {
	term, err := convertTerm(t)
	if err != nil {
		return nil, nil, err
	}
	b, err := convertBody(body, loc)
	if err != nil {
		return nil, nil, err
	}
	return term, b, nil
}
