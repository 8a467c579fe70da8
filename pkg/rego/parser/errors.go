package parser

import (
	stderrors "errors"
	"regexp"
	"slices"
	"strings"

	opa "github.com/open-policy-agent/opa/v1/ast"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
)

// Messages naming a misused keyword, e.g. "unexpected if keyword" or
// `keyword "every" ...`.
var keywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([a-z]+) keyword\b`),
	regexp.MustCompile(`\bkeyword "?([a-z]+)"?`),
}

var importLine = regexp.MustCompile(`^\s*import\b`)

// syntaxError converts a parser failure into an error list of KindSyntax
// errors, or a single error when there is only one.
func syntaxError(filename, source string, err error) error {
	var errs opa.Errors
	if !stderrors.As(err, &errs) || len(errs) == 0 {
		e := regoerrors.NewSyntaxError(err.Error(), nil)
		e.File = filename
		e.Err = err
		return e
	}

	list := regoerrors.NewErrorList()
	for _, oe := range errs {
		list.Add(convertError(filename, source, oe))
	}

	if list.Count() == 1 {
		return list.Errors[0]
	}
	return list
}

func convertError(filename, source string, oe *opa.Error) *regoerrors.Error {
	loc := location(oe.Location)

	var e *regoerrors.Error
	if kw := keywordOf(oe.Message); kw != "" {
		e = regoerrors.NewKeywordError(kw, inImport(source, loc), loc)
		e.Message = oe.Message
	} else {
		e = regoerrors.NewSyntaxError(oe.Message, loc)
	}

	e.File = filename
	e.Err = oe
	return regoerrors.WithContext(e, []byte(source), 1)
}

// keywordOf returns the reserved keyword a parser message is about, or "".
func keywordOf(msg string) string {
	for _, re := range keywordPatterns {
		for _, m := range re.FindAllStringSubmatch(msg, -1) {
			if isReserved(m[1]) {
				return m[1]
			}
		}
	}
	return ""
}

func isReserved(word string) bool {
	return ast.IsKeyword(word) || slices.Contains(ast.DefaultRegistry().FutureKeywords(), word)
}

// inImport reports whether loc falls on a line of an import statement.
func inImport(source string, loc *ast.Location) bool {
	if loc == nil {
		return false
	}
	lines := strings.Split(source, "\n")
	if loc.Start.Line < 1 || loc.Start.Line > len(lines) {
		return false
	}
	return importLine.MatchString(lines[loc.Start.Line-1])
}
