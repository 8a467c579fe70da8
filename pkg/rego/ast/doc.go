// Package ast provides the Abstract Syntax Tree (AST) of the Rego policy language.
//
// The tree is the working representation used by the formatter and by editor
// integrations. It mirrors every syntactic construct of the language and carries
// source locations so that comments and blank lines can be re-attached when the
// tree is rendered back into text.
//
// # Core Types
//
// Module: Top-level container (package, imports, rules, comments)
//
// Rule, RuleHead, RuleBody: Rule structure, including default rules and else chains
//
// Expression: A call (operator plus operands) or a bare value, with negation and
// with-modifiers
//
// Terms: Null, Boolean, Number, String, Variable, Reference, Array, Set, Object,
// the three comprehensions, Some and Every
//
// Builtin, Registry: Built-in function metadata loaded from a capability descriptor
//
// # Node Variants
//
// Node is a closed union. Every variant implements an unexported marker method, so
// code outside this package cannot add variants, and a type switch over the exported
// variants is exhaustive:
//
//	switch n := node.(type) {
//	case *ast.Rule:
//	    fmt.Println("rule", n.Name())
//	case *ast.Expression:
//	    fmt.Println("expression", n.Index)
//	}
//
// # Builtins
//
// The Registry is built once from the embedded capability descriptor and is
// read-only afterwards. Pass it explicitly to consumers:
//
//	reg := ast.DefaultRegistry()
//	if b, ok := reg.Lookup("plus"); ok {
//	    fmt.Println(b.Infix) // "+"
//	}
//
// # Else Chains
//
// A rule owns at most one else continuation through Rule.Else. The continuation
// records the root of its chain as a handle (the root rule's Token), not as a
// pointer, so the ownership graph stays acyclic. Use Rules.Resolve or
// Rules.RootName to look the root up.
//
// # Mutation
//
// Nodes are treated as immutable once built, except for the explicitly mutable
// fields: Expression.Index, Expression.Negated, Expression.With, Rule.Default and
// Rule.Else. RuleBody edits (Add, Remove, Replace, Splice) renumber every
// expression index before returning. Use Clone when an edit must not affect a
// tree that is still referenced elsewhere.
package ast
