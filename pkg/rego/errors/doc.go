// Package errors defines the error types reported while parsing and formatting
// policies.
//
// Every error carries a Kind:
//
//   - syntax: the source text is not a valid policy
//   - type: a value or statement the tree cannot represent
//   - invariant: the formatter met a node it does not know, which indicates a
//     parser/formatter version mismatch rather than bad input
//   - io: the source could not be read
//
// Errors print as "[kind] message" followed by the source location and, when
// available, the surrounding lines of source:
//
//	[syntax] unexpected assign token: expected rule value term
//	  --> policy.rego:3:7
//	  |
//	   2 |
//	-> 3 | allow :=
//	     |         ^
//	  |
//
// ErrorList accumulates several errors so that a validation pass can report
// all problems at once.
package errors
