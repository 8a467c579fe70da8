package ast

import "fmt"

// Position is a point in the source text. Line and Column are 1-based, Offset is
// the 0-based byte offset.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location represents the span of an AST node in the original source text.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// String returns a human-readable representation of the location.
// Format: "line:column" or "line:column-line:column" for multi-line spans.
func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}
	if l.Start.Line == l.End.Line {
		return fmt.Sprintf("%d:%d", l.Start.Line, l.Start.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", l.Start.Line, l.Start.Column, l.End.Line, l.End.Column)
}

// IsMultiline returns true if the span ends on a later line than it starts.
func (l *Location) IsMultiline() bool {
	return l != nil && l.End.Line > l.Start.Line
}

// MakeLocation returns a copy of loc if it is non-nil; otherwise, it returns a
// synthetic location at the very start of the source.
func MakeLocation(loc *Location) *Location {
	if loc != nil {
		clone := *loc
		return &clone
	}

	return &Location{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 1, Offset: 0},
	}
}

// spanLocation builds a location running from the start of one location to the
// end of another.
func spanLocation(start, end *Location) *Location {
	switch {
	case start == nil && end == nil:
		return MakeLocation(nil)
	case start == nil:
		start = end
	case end == nil:
		end = start
	}
	return &Location{Start: start.Start, End: end.End}
}
