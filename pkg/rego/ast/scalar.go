package ast

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Null is the null literal.
type Null struct {
	Location *Location
}

// NewNull creates a null literal.
func NewNull(loc *Location) *Null {
	return &Null{Location: loc}
}

func (n *Null) Kind() Kind      { return KindNull }
func (n *Null) Loc() *Location  { return n.Location }
func (n *Null) Fields() []Field { return []Field{{Name: "location", Value: n.Location}} }
func (n *Null) String() string  { return "null" }
func (*Null) node()             {}
func (*Null) term()             {}

// Boolean is a true or false literal.
type Boolean struct {
	Value    bool
	Location *Location
}

// NewBoolean creates a boolean literal.
func NewBoolean(v bool, loc *Location) *Boolean {
	return &Boolean{Value: v, Location: loc}
}

func (b *Boolean) Kind() Kind     { return KindBoolean }
func (b *Boolean) Loc() *Location { return b.Location }
func (b *Boolean) Fields() []Field {
	return []Field{{Name: "value", Value: b.Value}, {Name: "location", Value: b.Location}}
}
func (b *Boolean) String() string { return strconv.FormatBool(b.Value) }
func (*Boolean) node()            {}
func (*Boolean) term()            {}

// Number is a numeric literal. The literal text is preserved exactly as written.
type Number struct {
	Value    json.Number
	Location *Location
}

// NewNumber creates a number literal from its source text.
func NewNumber(literal string, loc *Location) *Number {
	return &Number{Value: json.Number(literal), Location: loc}
}

// NumberFromInt creates a number literal from an integer.
func NumberFromInt(v int64, loc *Location) *Number {
	return NewNumber(strconv.FormatInt(v, 10), loc)
}

// NumberFromFloat creates a number literal from a float. Integral values are
// written without a fraction or exponent.
func NumberFromFloat(v float64, loc *Location) *Number {
	return NewNumber(formatFloat(v), loc)
}

func formatFloat(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	// 1e-07 -> 1e-7
	if i := strings.IndexAny(s, "+-"); i > 0 && s[i-1] == 'e' {
		exp := strings.TrimLeft(s[i+1:], "0")
		if exp == "" {
			exp = "0"
		}
		s = s[:i+1] + exp
	}
	return s
}

// Float64 returns the numeric value of the literal.
func (n *Number) Float64() (float64, error) {
	return n.Value.Float64()
}

// Int64 returns the numeric value of the literal if it is an integer.
func (n *Number) Int64() (int64, error) {
	return n.Value.Int64()
}

func (n *Number) Kind() Kind     { return KindNumber }
func (n *Number) Loc() *Location { return n.Location }
func (n *Number) Fields() []Field {
	return []Field{{Name: "value", Value: n.Value}, {Name: "location", Value: n.Location}}
}
func (n *Number) String() string { return n.Value.String() }
func (*Number) node()            {}
func (*Number) term()            {}

// String is a string literal. Value holds the decoded text.
type String struct {
	Value    string
	Location *Location
}

// NewString creates a string literal.
func NewString(v string, loc *Location) *String {
	return &String{Value: v, Location: loc}
}

// Len returns the number of characters in the string.
func (s *String) Len() int {
	return utf8.RuneCountInString(s.Value)
}

// Quote returns the string as a double-quoted literal.
func (s *String) Quote() string {
	return QuoteString(s.Value)
}

func (s *String) Kind() Kind     { return KindString }
func (s *String) Loc() *Location { return s.Location }
func (s *String) Fields() []Field {
	return []Field{{Name: "value", Value: s.Value}, {Name: "location", Value: s.Location}}
}

// String returns the raw, unquoted text.
func (s *String) String() string { return s.Value }
func (*String) node()            {}
func (*String) term()            {}

// QuoteString renders text as a double-quoted literal using the escapes of
// JSON encoding, without HTML escaping.
func QuoteString(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('"')
	for _, r := range text {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte("0123456789abcdef"[r>>4])
				b.WriteByte("0123456789abcdef"[r&0xf])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
