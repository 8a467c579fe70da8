package validator

import (
	"fmt"
	"slices"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
)

// ruleGroup is the kind of document a rule contributes to. Rules of one name
// must agree on it.
type ruleGroup string

const (
	groupComplete ruleGroup = "complete"
	groupSet      ruleGroup = "set"
	groupObject   ruleGroup = "object"
	groupFunction ruleGroup = "function"
)

func groupOf(r *ast.Rule) ruleGroup {
	switch r.ChainKind() {
	case ast.RuleFunction:
		return groupFunction
	case ast.RulePartialSet:
		return groupSet
	case ast.RulePartialObject:
		return groupObject
	default:
		return groupComplete
	}
}

// SemanticValidator checks that the names a module uses can resolve.
type SemanticValidator struct {
	registry *ast.Registry
	module   *ast.Module
	known    map[string]struct{}
	errors   *regoerrors.ErrorList
}

// NewSemanticValidator creates a new semantic validator.
func NewSemanticValidator(reg *ast.Registry) *SemanticValidator {
	return &SemanticValidator{
		registry: reg,
		errors:   regoerrors.NewErrorList(),
	}
}

// Validate performs semantic validation on a module.
func (v *SemanticValidator) Validate(m *ast.Module) error {
	v.module = m
	v.errors = regoerrors.NewErrorList()
	v.known = v.localNames()

	v.validateRuleGroups()

	calls := collect(m, func(e *ast.Expression) bool { return e.IsCall() && !e.IsPlaceholder })
	for _, e := range calls {
		v.validateCall(e)
	}

	return v.errors.ToError()
}

// localNames returns the rule names and import names a call may refer to.
func (v *SemanticValidator) localNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, r := range v.module.Rules {
		names[r.Name()] = struct{}{}
	}
	for _, imp := range v.module.Imports {
		if name := imp.Name(); name != "" {
			names[name] = struct{}{}
		}
	}
	return names
}

func (v *SemanticValidator) validateRuleGroups() {
	groups := make(map[string]ruleGroup)
	defaults := make(map[string]bool)

	for _, r := range v.module.Rules {
		name := r.Name()

		if r.Default {
			if defaults[name] {
				v.errors.AddErrorWithSuggestion(
					regoerrors.KindSemantic,
					fmt.Sprintf("Multiple default rules named %q", name),
					r.Location,
					"Remove all but one default rule",
				)
			}
			defaults[name] = true
		}

		g := groupOf(r)
		if prev, ok := groups[name]; ok && prev != g {
			v.errors.AddError(
				regoerrors.KindSemantic,
				fmt.Sprintf("Rule %q is defined as both a %s and a %s rule", name, prev, g),
				r.Location,
			)
			continue
		}
		groups[name] = g
	}
}

func (v *SemanticValidator) validateCall(e *ast.Expression) {
	op := e.Operator()
	if _, ok := v.registry.Lookup(op); ok {
		return
	}

	// Calls into documents or imported packages resolve at evaluation time.
	if ref, ok := e.Terms[0].(*ast.Reference); ok && ref.Len() > 0 {
		if root, ok := ref.Segments[0].(*ast.Variable); ok {
			if root.IsRoot() {
				return
			}
			if _, ok := v.known[root.Value]; ok {
				return
			}
		}
	}

	candidates := append(v.registry.PlainNames(), v.registry.ReferenceNames()...)
	for name := range v.known {
		candidates = append(candidates, name)
	}
	slices.Sort(candidates)

	v.errors.AddErrorWithSuggestion(
		regoerrors.KindSemantic,
		fmt.Sprintf("Unknown function %q", op),
		e.Location,
		regoerrors.SuggestName(op, candidates),
	)
}
