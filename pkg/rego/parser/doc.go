// Package parser turns policy source text into trees of the ast package.
//
// Parsing is delegated to the Rego parser of the Open Policy Agent; this
// package converts its output into ast nodes, computes full start/end
// locations, and reports failures as *errors.Error values of KindSyntax.
//
// # Basic Usage
//
// Parse a module:
//
//	m, err := parser.ParseModule("policy.rego", src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse a fragment with an explicit start rule:
//
//	node, err := parser.Parse(`input.x == 1`, parser.Expression)
//
// # Configuration
//
// A Parser carries the language version and file limits:
//
//	p := parser.NewParser().
//	    WithRegoVersion(parser.RegoV0).
//	    WithAllFutureKeywords(true).
//	    WithMaxFileSize(1 << 20)
//
// # Keyword Errors
//
// When a parse fails because a reserved keyword was used where a name was
// expected, the returned error carries the keyword and whether it appeared
// in an import statement:
//
//	var e *errors.Error
//	if stderrors.As(err, &e) && e.Keyword != "" {
//	    fmt.Println(e.Keyword, e.InImport)
//	}
package parser
