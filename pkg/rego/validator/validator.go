package validator

import (
	stderrors "errors"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
)

// Validator runs the structural and semantic passes in sequence.
type Validator struct {
	structural *StructuralValidator
	semantic   *SemanticValidator
}

// NewValidator creates a validator that resolves builtins against reg. A nil
// registry uses ast.DefaultRegistry.
func NewValidator(reg *ast.Registry) *Validator {
	if reg == nil {
		reg = ast.DefaultRegistry()
	}
	return &Validator{
		structural: NewStructuralValidator(reg),
		semantic:   NewSemanticValidator(reg),
	}
}

// Validate runs all validation passes on a module and returns their errors
// together as an *errors.ErrorList.
func (v *Validator) Validate(m *ast.Module) error {
	errs := regoerrors.NewErrorList()

	appendErrors(errs, v.structural.Validate(m))

	// Skip semantic checks on a malformed tree.
	if !errs.HasKind(regoerrors.KindStructural) {
		appendErrors(errs, v.semantic.Validate(m))
	}

	return errs.ToError()
}

// ValidateStructural runs only structural validation.
func (v *Validator) ValidateStructural(m *ast.Module) error {
	return v.structural.Validate(m)
}

// ValidateSemantic runs only semantic validation.
func (v *Validator) ValidateSemantic(m *ast.Module) error {
	return v.semantic.Validate(m)
}

func appendErrors(dst *regoerrors.ErrorList, err error) {
	var list *regoerrors.ErrorList
	if stderrors.As(err, &list) {
		dst.Errors = append(dst.Errors, list.Errors...)
	}
}

// collect walks every value below root and returns the ones keep selects.
func collect[T any](root any, keep func(T) bool) []T {
	var out []T
	ast.FindContext(root, func(_ any, _ string, value any) ast.MatchResult {
		if x, ok := value.(T); ok && (keep == nil || keep(x)) {
			out = append(out, x)
		}
		return ast.NoMatch
	})
	return out
}
