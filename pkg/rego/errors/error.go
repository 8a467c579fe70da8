package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"regoplay/playground/pkg/rego/ast"
)

// Kind categorizes an error.
type Kind string

const (
	KindSyntax    Kind = "syntax"    // Source text is not valid
	KindType      Kind = "type"      // Unsupported value or statement
	KindInvariant Kind = "invariant" // Formatter/tree mismatch
	KindIO        Kind = "io"        // File I/O error

	KindStructural Kind = "structural" // Tree shape violates an invariant
	KindSemantic   Kind = "semantic"   // Names or uses that cannot resolve
)

// Error is an error with a kind, a source location and optional context.
type Error struct {
	Kind     Kind
	Message  string
	File     string
	Location *ast.Location

	// Keyword is set for syntax errors caused by the misuse of a reserved
	// keyword. InImport reports whether the misuse was in an import.
	Keyword  string
	InImport bool

	Context    string // Surrounding lines of source
	Suggestion string // Suggested fix (optional)

	Err error // Underlying cause (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))

	if where := e.Position(); where != "" {
		sb.WriteString(fmt.Sprintf("\n  --> %s", where))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
		sb.WriteString("\n  |")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Position returns "file:line:col", omitting whichever part is unknown.
func (e *Error) Position() string {
	var parts []string
	if e.File != "" {
		parts = append(parts, e.File)
	}
	if e.Location != nil {
		parts = append(parts, fmt.Sprintf("%d:%d", e.Location.Start.Line, e.Location.Start.Column))
	}
	return strings.Join(parts, ":")
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewSyntaxError creates a syntax error.
func NewSyntaxError(message string, loc *ast.Location) *Error {
	return &Error{Kind: KindSyntax, Message: message, Location: loc}
}

// NewKeywordError creates a syntax error for the misuse of a reserved keyword.
func NewKeywordError(keyword string, inImport bool, loc *ast.Location) *Error {
	msg := fmt.Sprintf("unexpected keyword %q", keyword)
	if inImport {
		msg = fmt.Sprintf("unexpected keyword %q in import", keyword)
	}
	return &Error{
		Kind:       KindSyntax,
		Message:    msg,
		Location:   loc,
		Keyword:    keyword,
		InImport:   inImport,
		Suggestion: SuggestKeyword(keyword, inImport),
	}
}

// NewTypeError creates a type error.
func NewTypeError(message string, loc *ast.Location) *Error {
	return &Error{Kind: KindType, Message: message, Location: loc}
}

// NewInvariantError creates an invariant error.
func NewInvariantError(message string, loc *ast.Location) *Error {
	return &Error{Kind: KindInvariant, Message: message, Location: loc}
}

// NewIOError creates an I/O error for a file.
func NewIOError(file string, err error) *Error {
	return &Error{Kind: KindIO, Message: err.Error(), File: file, Err: err}
}

// Wrap converts err to an *Error. Type errors from the ast package become
// KindType; errors that are already *Error are returned unchanged; anything
// else is returned as KindIO with err as the cause.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if stderrors.As(err, &e) {
		return e
	}

	var te *ast.TypeError
	if stderrors.As(err, &te) {
		return &Error{Kind: KindType, Message: te.Message, Location: te.Location, Err: err}
	}

	return &Error{Kind: KindIO, Message: err.Error(), Err: err}
}

// IsKind returns true if err is, or wraps, an *Error of the given kind. Type
// errors from the ast package count as KindType. For an ErrorList it reports
// whether any member has the kind.
func IsKind(err error, kind Kind) bool {
	var list *ErrorList
	if stderrors.As(err, &list) {
		return list.HasKind(kind)
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	var te *ast.TypeError
	if kind == KindType && stderrors.As(err, &te) {
		return true
	}
	return false
}

// ErrorList represents a collection of errors.
// It allows accumulating multiple errors instead of failing on the first error.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(kind Kind, message string, loc *ast.Location) {
	el.Add(&Error{
		Kind:     kind,
		Message:  message,
		Location: loc,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(kind Kind, message string, loc *ast.Location, suggestion string) {
	el.Add(&Error{
		Kind:       kind,
		Message:    message,
		Location:   loc,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", el.Count()))

	for _, err := range el.Errors {
		sb.WriteString("\n")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByKind returns all errors of the given kind.
func (el *ErrorList) ByKind(kind Kind) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// HasKind returns true if the error list contains at least one error of the given kind.
func (el *ErrorList) HasKind(kind Kind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}
