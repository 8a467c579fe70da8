package validator

import (
	"fmt"
	"slices"
	"strings"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
)

var importRoots = []string{ast.DefaultRootName, ast.InputRootName, ast.FutureRootName, "rego"}

// StructuralValidator checks that a tree has a shape the formatter and the
// policy engine accept.
type StructuralValidator struct {
	registry *ast.Registry
	errors   *regoerrors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator(reg *ast.Registry) *StructuralValidator {
	return &StructuralValidator{
		registry: reg,
		errors:   regoerrors.NewErrorList(),
	}
}

// Validate performs structural validation on a module.
// It returns an ErrorList containing all structural errors found.
func (v *StructuralValidator) Validate(m *ast.Module) error {
	v.errors = regoerrors.NewErrorList()

	v.validatePackage(m.Package)
	v.validateImports(m.Imports)

	for _, r := range m.Rules {
		v.validateRule(r)
	}

	for _, b := range collect[*ast.RuleBody](m, nil) {
		v.validateBody(b)
	}
	for _, o := range collect[*ast.Object](m, nil) {
		v.validateObject(o)
	}

	return v.errors.ToError()
}

func (v *StructuralValidator) validatePackage(pkg *ast.Package) {
	if pkg == nil {
		v.errors.AddErrorWithSuggestion(
			regoerrors.KindStructural,
			"Module has no package declaration",
			nil,
			"Add a declaration such as 'package play'",
		)
		return
	}

	segments := pkg.Path.Segments
	if len(segments) < 2 {
		v.errors.AddError(regoerrors.KindStructural, "Package path is empty", pkg.Location)
		return
	}
	if root, ok := segments[0].(*ast.Variable); !ok || root.Value != ast.DefaultRootName {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Package path %q is not rooted at data", pkg.Path), pkg.Location)
	}
	for _, seg := range segments[1:] {
		if _, ok := seg.(*ast.String); !ok {
			v.errors.AddError(regoerrors.KindStructural,
				fmt.Sprintf("Package path segment %s must be a string", seg), pkg.Location)
		}
	}
}

func (v *StructuralValidator) validateImports(imports []*ast.Import) {
	seen := make(map[string]*ast.Import)

	for _, imp := range imports {
		if imp.IsPlaceholder {
			continue
		}
		if imp.Path == nil || imp.Path.Len() == 0 {
			v.errors.AddError(regoerrors.KindStructural, "Import has no path", imp.Location)
			continue
		}

		root, ok := imp.Path.Segments[0].(*ast.Variable)
		if !ok || !slices.Contains(importRoots, root.Value) {
			v.errors.AddErrorWithSuggestion(
				regoerrors.KindStructural,
				fmt.Sprintf("Import path %q must start with %s", imp.ID(), strings.Join(importRoots, ", ")),
				imp.Location,
				regoerrors.SuggestName(imp.Path.Segments[0].String(), importRoots),
			)
			continue
		}

		switch root.Value {
		case ast.FutureRootName:
			v.validateFutureImport(imp)
		case "rego":
			if imp.ID() != "rego.v1" {
				v.errors.AddErrorWithSuggestion(regoerrors.KindStructural,
					fmt.Sprintf("Unknown import %q", imp.ID()), imp.Location, "did you mean 'rego.v1'?")
			}
		}

		if imp.Alias != nil && imp.Alias.Value != "" {
			switch {
			case root.Value == ast.FutureRootName || root.Value == "rego":
				v.errors.AddError(regoerrors.KindStructural,
					fmt.Sprintf("Import %q cannot have an alias", imp.ID()), imp.Location)
			case !ast.IsValidIdentifier(imp.Alias.Value):
				v.errors.AddError(regoerrors.KindStructural,
					fmt.Sprintf("Import alias %q is not a valid identifier", imp.Alias.Value), imp.Location)
			}
		}

		name := imp.Name()
		if name == "" || root.Value == ast.FutureRootName || root.Value == "rego" {
			continue
		}
		if prev, ok := seen[name]; ok {
			v.errors.AddErrorWithSuggestion(
				regoerrors.KindStructural,
				fmt.Sprintf("Import name %q is already defined by %q", name, prev.ID()),
				imp.Location,
				"Use 'as' to give one of the imports a different name",
			)
			continue
		}
		seen[name] = imp
	}
}

func (v *StructuralValidator) validateFutureImport(imp *ast.Import) {
	segments := imp.Path.Segments
	if len(segments) < 2 || segments[1].String() != "keywords" || len(segments) > 3 {
		v.errors.AddErrorWithSuggestion(regoerrors.KindStructural,
			fmt.Sprintf("Unknown import %q", imp.ID()), imp.Location, "did you mean 'future.keywords'?")
		return
	}
	if len(segments) == 3 {
		kw := segments[2].String()
		known := v.registry.FutureKeywords()
		if !slices.Contains(known, kw) {
			v.errors.AddErrorWithSuggestion(regoerrors.KindStructural,
				fmt.Sprintf("Unknown future keyword %q", kw), imp.Location, regoerrors.SuggestName(kw, known))
		}
	}
}

func (v *StructuralValidator) validateRule(r *ast.Rule) {
	if r.IsElse() {
		v.errors.AddError(regoerrors.KindStructural,
			"An else continuation cannot be a top-level rule", r.Location)
		return
	}
	if r.Head == nil || r.Name() == "" {
		v.errors.AddError(regoerrors.KindStructural, "Rule has no name", r.Location)
		return
	}
	if r.Body == nil {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Rule %q has no body", r.Name()), r.Location)
		return
	}

	if r.IsFunction() && r.Head.Key != nil {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Function %q cannot define a key", r.Name()), r.Head.Location)
	}

	if r.Default {
		switch {
		case r.Head.Value == nil:
			v.errors.AddErrorWithSuggestion(regoerrors.KindStructural,
				fmt.Sprintf("Default rule %q has no value", r.Name()), r.Location,
				fmt.Sprintf("Write 'default %s := false'", r.Name()))
		case r.Head.Key != nil:
			v.errors.AddError(regoerrors.KindStructural,
				fmt.Sprintf("Default rule %q cannot define a key", r.Name()), r.Location)
		case !r.Body.IsTrue():
			v.errors.AddError(regoerrors.KindStructural,
				fmt.Sprintf("Default rule %q cannot have a body", r.Name()), r.Location)
		}
		if r.HasElse() {
			v.errors.AddError(regoerrors.KindStructural,
				fmt.Sprintf("Default rule %q cannot have an else continuation", r.Name()), r.Location)
		}
	}

	if r.HasElse() && (r.IsPartialSet() || r.IsPartialObject()) {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Partial rule %q cannot have an else continuation", r.Name()), r.Location)
	}

	for _, e := range r.Chain()[1:] {
		v.validateElse(r, e)
	}
}

func (v *StructuralValidator) validateElse(root, e *ast.Rule) {
	if e.RootHandle() != root.Token {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Else continuation of %q refers to another chain", root.Name()), e.Location)
	}
	if e.Name() != ast.ElseName {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Else continuation of %q is named %q", root.Name(), e.Name()), e.Location)
	}
	if e.Head != nil && e.Head.Args != nil {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Else continuation of %q cannot declare arguments", root.Name()), e.Location)
	}
	if e.Body == nil {
		v.errors.AddError(regoerrors.KindStructural,
			fmt.Sprintf("Else continuation of %q has no body", root.Name()), e.Location)
	}
}

func (v *StructuralValidator) validateBody(b *ast.RuleBody) {
	if b.Len() == 0 {
		v.errors.AddError(regoerrors.KindStructural, "Body has no expressions", b.Location)
		return
	}
	for i, e := range b.Exprs() {
		if e.Index != i {
			v.errors.AddErrorWithSuggestion(
				regoerrors.KindStructural,
				fmt.Sprintf("Expression %q has index %d at position %d", e, e.Index, i),
				e.Location,
				"Call Renumber on the body after editing it",
			)
		}
	}
}

func (v *StructuralValidator) validateObject(o *ast.Object) {
	for i, item := range o.Items {
		for _, prev := range o.Items[:i] {
			if ast.Equal(prev.Key, item.Key) {
				loc := item.Key.Loc()
				if loc == nil {
					loc = o.Location
				}
				v.errors.AddError(regoerrors.KindStructural,
					fmt.Sprintf("Object key %q is defined more than once", item.Key.String()), loc)
				break
			}
		}
	}
}
