package ast

import "github.com/google/uuid"

// Import is "import <path> [as <alias>]".
type Import struct {
	Token         string
	Path          *Reference
	Alias         *Variable
	IsPlaceholder bool
	Location      *Location
}

// NewImport creates an import. alias may be nil.
func NewImport(path *Reference, alias *Variable, loc *Location) *Import {
	return &Import{Token: uuid.NewString(), Path: path, Alias: alias, Location: loc}
}

// ID returns the stringified import path.
func (i *Import) ID() string {
	return stringifyPath(i.Path.Segments)
}

// Name returns the alias, or the real name when there is none.
func (i *Import) Name() string {
	if i.Alias != nil && i.Alias.Value != "" {
		return i.Alias.String()
	}
	return i.RealName()
}

// RealName returns the last path segment, or "" for single-segment paths.
func (i *Import) RealName() string {
	n := len(i.Path.Segments)
	if n < 2 {
		return ""
	}
	return i.Path.Segments[n-1].String()
}

// Clone returns a deep copy with a new token.
func (i *Import) Clone() *Import {
	clone := NewImport(CloneTerm(i.Path).(*Reference), nil, cloneLocation(i.Location))
	if i.Alias != nil {
		clone.Alias = CloneTerm(i.Alias).(*Variable)
	}
	clone.IsPlaceholder = i.IsPlaceholder
	return clone
}

func (i *Import) Kind() Kind     { return KindImport }
func (i *Import) Loc() *Location { return i.Location }
func (i *Import) Fields() []Field {
	return []Field{
		{Name: "path", Value: i.Path},
		{Name: "alias", Value: i.Alias},
		{Name: "location", Value: i.Location},
	}
}
func (i *Import) String() string {
	s := "import " + i.ID()
	if i.Alias != nil && i.Alias.Value != "" {
		s += " as " + i.Alias.String()
	}
	return s
}
func (*Import) node() {}
