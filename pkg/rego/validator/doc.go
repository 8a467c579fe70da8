// Package validator checks parsed or hand-built modules before they are
// formatted.
//
// The validator performs two types of validation:
//
// 1. Structural Validation: package rooting, import paths and aliases, rule
// head shapes, else chain handles, expression index contiguity and duplicate
// object keys
//
// 2. Semantic Validation: calls to unknown functions and rules defined with
// conflicting kinds or more than one default
//
// # Basic Usage
//
//	v := validator.NewValidator(ast.DefaultRegistry())
//	if err := v.Validate(module); err != nil {
//	    if errList, ok := err.(*errors.ErrorList); ok {
//	        for _, e := range errList.Errors {
//	            fmt.Println(e.Error())
//	        }
//	    }
//	}
//
// Semantic validation only runs when the structural pass found nothing, so a
// malformed tree does not produce a cascade of follow-up errors.
package validator
