package ast

import "github.com/google/uuid"

// Package is the package declaration of a module. Its path is always rooted at
// the data document.
type Package struct {
	Token    string
	Path     *Reference
	Location *Location
}

// NewPackage creates a package declaration from the path as written, which
// must be a reference or a variable. Every segment is stored as a string under
// an implicit data root.
func NewPackage(path Term, loc *Location) *Package {
	segments := []Term{DefaultRoot()}

	switch p := path.(type) {
	case *Reference:
		for _, seg := range p.Segments {
			segments = append(segments, NewString(segmentValue(seg), cloneLocation(seg.Loc())))
		}
	case *Variable:
		segments = append(segments, NewString(p.Value, cloneLocation(p.Location)))
	}

	return &Package{Token: uuid.NewString(), Path: NewReference(nil, segments...), Location: loc}
}

func segmentValue(t Term) string {
	switch v := t.(type) {
	case *Variable:
		return v.Value
	case *String:
		return v.Value
	default:
		return t.String()
	}
}

// ID returns the stringified path without the data root.
func (p *Package) ID() string {
	return Stringify(p.Path.Segments[1:])
}

// Name returns the last path segment.
func (p *Package) Name() string {
	n := len(p.Path.Segments)
	return p.Path.Segments[n-1].String()
}

func (p *Package) Kind() Kind     { return KindPackage }
func (p *Package) Loc() *Location { return p.Location }
func (p *Package) Fields() []Field {
	return []Field{{Name: "path", Value: p.Path.Segments}, {Name: "location", Value: p.Location}}
}
func (p *Package) String() string { return "package " + p.ID() }
func (*Package) node()            {}
