// regofmt formats Rego policy files into their canonical layout.
//
// Usage:
//
//	# Print the formatted form of a file
//	regofmt fmt policy.rego
//
//	# Rewrite every policy under a directory
//	regofmt fmt --write policies/
//
//	# Fail when files are not formatted (for CI)
//	regofmt fmt --check .
//
//	# Keep a workspace formatted while editing
//	regofmt fmt --write --watch policies/
//
//	# Dump the syntax tree of an expression as JSON
//	echo 'x := count(input.items)' | regofmt parse --start expression -
//
//	# List the infix builtins known to the formatter
//	regofmt builtins --kind infix
package main

func main() {
	Execute()
}
