// Package format renders ast trees as canonical policy source text.
//
// The output is deterministic: the same tree and options always produce the
// same text. Formatting a module keeps its comments, one blank line wherever
// the source had one or more, and the layout chosen by the options.
//
// # Basic Usage
//
//	out, err := format.Format(module)
//
// or, reusing a formatter:
//
//	f := format.New(format.WithIndent("\t"))
//	out, err := f.Format(module)
//
// # Keywords
//
// "if" bodies and "contains" heads are used when the module imports
// future.keywords, the matching future.keywords.<kw> or rego.v1. WithIfKeyword
// and WithContainsKeyword override the detection.
//
// # Layout
//
// In strict mode (the default) collections are written one element per line
// unless empty or nested in an inline context, and with modifiers go on their
// own lines. WithStrict(false) keeps collections inline when their source
// spans a single line.
//
// # Errors
//
// A node of a type the formatter does not know is an invariant error
// (errors.KindInvariant). The call returns it after resetting the formatter.
package format
