package ast

// Comment is a line comment. Text excludes the leading "#".
type Comment struct {
	Text     string
	Location *Location
}

// NewComment creates a comment.
func NewComment(text string, loc *Location) *Comment {
	return &Comment{Text: text, Location: loc}
}

func (c *Comment) Kind() Kind     { return KindComment }
func (c *Comment) Loc() *Location { return c.Location }
func (c *Comment) Fields() []Field {
	return []Field{{Name: "value", Value: c.Text}, {Name: "location", Value: c.Location}}
}
func (c *Comment) String() string { return "#" + c.Text }
func (*Comment) node()            {}
