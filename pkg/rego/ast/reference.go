package ast

import (
	"strings"
)

// Reference is a path of segments such as data.servers[i].name. The first
// segment is usually a Variable; the rest are arbitrary terms.
type Reference struct {
	Segments      []Term
	IsPlaceholder bool
	Location      *Location
}

// NewReference creates a reference from its segments.
func NewReference(loc *Location, segments ...Term) *Reference {
	if segments == nil {
		segments = []Term{}
	}
	return &Reference{Segments: segments, Location: loc}
}

// ReferenceFromPathname builds a reference from a slash-separated path. The
// first element becomes a variable and the rest become strings. A nil location
// is replaced by a synthetic one.
func ReferenceFromPathname(pathname string, loc *Location) *Reference {
	parts := strings.Split(pathname, "/")
	segments := make([]Term, 0, len(parts))
	segments = append(segments, NewVariable(parts[0], nil))
	for _, p := range parts[1:] {
		segments = append(segments, NewString(p, nil))
	}
	return NewReference(MakeLocation(loc), segments...)
}

// ReferenceFromDotted builds a reference from a dotted name such as
// "io.jwt.decode".
func ReferenceFromDotted(name string, loc *Location) *Reference {
	return ReferenceFromPathname(strings.ReplaceAll(name, ".", "/"), loc)
}

// IsValidReference returns true if segments is non-empty and its first segment
// renders as a valid identifier.
func IsValidReference(segments []Term) bool {
	return len(segments) > 0 && IsValidIdentifier(segments[0].String())
}

// Stringify renders reference segments. String segments that are valid
// identifiers use dot notation; other strings use quoted brackets, and any
// other term is written inside brackets.
func Stringify(segments []Term) string {
	return stringify(segments, StringSegment)
}

// stringifyPath renders an import path. Future keywords stay dotted, as in
// "future.keywords.if".
func stringifyPath(segments []Term) string {
	return stringify(segments, func(key string) string {
		if IsFutureKeyword(key) {
			return "." + key
		}
		return StringSegment(key)
	})
}

func stringify(segments []Term, segment func(string) string) string {
	if len(segments) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(segments[0].String())

	for _, seg := range segments[1:] {
		if s, ok := seg.(*String); ok {
			b.WriteString(segment(s.Value))
			continue
		}
		b.WriteByte('[')
		b.WriteString(seg.String())
		b.WriteByte(']')
	}

	return b.String()
}

// StringSegment renders a string segment that follows the first segment of a
// reference: ".key" for identifiers, ["key"] otherwise. Future keywords always
// use brackets, whichever keywords the module enables.
func StringSegment(key string) string {
	if IsValidIdentifier(key) && !IsFutureKeyword(key) {
		return "." + key
	}
	return `["` + strings.ReplaceAll(key, `"`, `\"`) + `"]`
}

// Len returns the number of segments.
func (r *Reference) Len() int {
	return len(r.Segments)
}

// HasRoot returns true if the first segment is the data or input root.
func (r *Reference) HasRoot() bool {
	if len(r.Segments) == 0 {
		return false
	}
	v, ok := r.Segments[0].(*Variable)
	return ok && v.IsRoot()
}

// IsRoot returns true if the reference is exactly a root variable.
func (r *Reference) IsRoot() bool {
	return len(r.Segments) == 1 && r.HasRoot()
}

// Slice returns the segments in [from, to) as a new reference whose location
// spans the selected segments. Negative indices count from the end.
func (r *Reference) Slice(from, to int) *Reference {
	n := len(r.Segments)
	from, to = clampIndex(from, n), clampIndex(to, n)

	var start, end *Location
	if from < n {
		start = r.Segments[from].Loc()
	}
	if to > 0 && to <= n {
		end = r.Segments[to-1].Loc()
	}
	if start == nil {
		start = r.Location
	}
	if end == nil {
		end = r.Location
	}

	var segments []Term
	if from < to {
		segments = append(segments, r.Segments[from:to]...)
	}
	return NewReference(spanLocation(start, end), segments...)
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// Pathname returns the segments joined by "/".
func (r *Reference) Pathname() string {
	parts := make([]string, len(r.Segments))
	for i, seg := range r.Segments {
		parts[i] = seg.String()
	}
	return strings.Join(parts, "/")
}

func (r *Reference) Kind() Kind     { return KindReference }
func (r *Reference) Loc() *Location { return r.Location }
func (r *Reference) Fields() []Field {
	return []Field{{Name: "value", Value: r.Segments}, {Name: "location", Value: r.Location}}
}
func (r *Reference) String() string { return Stringify(r.Segments) }
func (*Reference) node()            {}
func (*Reference) term()            {}
