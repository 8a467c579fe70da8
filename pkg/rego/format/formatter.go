package format

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
)

var trailingBlanks = regexp.MustCompile(`(?m)[ \t]+$`)

// Imports that enable keyword syntax in the formatted output.
var (
	ifImports       = []string{"future.keywords", "future.keywords.if", "rego.v1"}
	containsImports = []string{"future.keywords", "future.keywords.contains", "rego.v1"}
)

// Operator precedence of infix builtins, lowest first.
var precedence = map[string]int{
	":=": 0, "=": 0,
	"in": 1,
	"==": 2, "!=": 2, "<": 2, "<=": 2, ">": 2, ">=": 2,
	"|": 3,
	"&": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

type keywords struct {
	ifKeyword       bool
	containsKeyword bool
}

// invariantPanic carries an invariant error out of the recursive writer.
type invariantPanic struct {
	err *regoerrors.Error
}

// Formatter renders trees as canonical policy text. A Formatter may be reused,
// but not concurrently: each call to Format owns the formatter's state.
type Formatter struct {
	opts options
	reg  *ast.Registry

	buf              strings.Builder
	comment          *ast.Comment
	comments         []*ast.Comment
	inline           int
	level            int
	nLines           int
	isWritingComment bool
	isWritingLine    bool
	keywords         keywords
	location         *ast.Location
}

// New creates a formatter.
func New(opts ...Option) *Formatter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	f := &Formatter{opts: o}
	f.reset()
	return f
}

// Format renders node with a new formatter.
func Format(node ast.Node, opts ...Option) (string, error) {
	return New(opts...).Format(node)
}

// Format renders node. Modules are rendered with their comments; any other
// node is rendered on its own.
func (f *Formatter) Format(node ast.Node) (out string, err error) {
	f.reset()
	defer f.reset()

	defer func() {
		if r := recover(); r != nil {
			p, ok := r.(invariantPanic)
			if !ok {
				panic(r)
			}
			out, err = "", p.err
		}
	}()

	if m, ok := node.(*ast.Module); ok {
		f.keywords = deriveKeywords(m)
		f.comments = sortedComments(m.Comments)
	}
	if f.opts.ifKeyword != nil {
		f.keywords.ifKeyword = *f.opts.ifKeyword
	}
	if f.opts.containsKeyword != nil {
		f.keywords.containsKeyword = *f.opts.containsKeyword
	}

	f.write(strings.Repeat(f.opts.indent, f.level))
	f.writeTerm(node)

	return finish(f.buf.String(), f.opts.trailer), nil
}

func (f *Formatter) reset() {
	f.reg = f.opts.registry
	if f.reg == nil {
		f.reg = ast.DefaultRegistry()
	}
	f.buf.Reset()
	f.comment = nil
	f.comments = nil
	f.inline = 0
	f.level = 0
	f.nLines = 0
	f.isWritingComment = false
	f.isWritingLine = false
	f.keywords = keywords{}
	f.location = nil
}

func deriveKeywords(m *ast.Module) keywords {
	var kw keywords
	for _, imp := range m.Imports {
		id := imp.ID()
		for _, p := range ifImports {
			if id == p {
				kw.ifKeyword = true
			}
		}
		for _, p := range containsImports {
			if id == p {
				kw.containsKeyword = true
			}
		}
	}
	return kw
}

func sortedComments(comments []*ast.Comment) []*ast.Comment {
	out := make([]*ast.Comment, 0, len(comments))
	for _, c := range comments {
		if c != nil && c.Location != nil {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location.Start.Offset < out[j].Location.Start.Offset
	})
	return out
}

// finish strips trailing blanks from every line and ends the text with the
// trailer.
func finish(s, trailer string) string {
	s = trailingBlanks.ReplaceAllString(s, "")
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	if trimmed == "" {
		return s
	}
	return trimmed + trailer
}

func (f *Formatter) fail(node ast.Node) {
	where := ""
	if loc := f.location; loc != nil {
		if loc.End.Line > loc.Start.Line {
			where = fmt.Sprintf(" at lines %d-%d", loc.Start.Line, loc.End.Line)
		} else {
			where = fmt.Sprintf(" at line %d", loc.Start.Line)
		}
	}
	panic(invariantPanic{err: regoerrors.NewInvariantError(
		fmt.Sprintf("unexpected term%s: %T", where, node), f.location)})
}

func (f *Formatter) writeTerm(node ast.Node) {
	if node == nil {
		return
	}

	if loc := node.Loc(); loc != nil {
		f.location = loc
		f.writeComments(loc)
	}

	if f.opts.annotate {
		f.write("<" + node.Kind().String() + ": ")
	}

	switch n := node.(type) {
	case *ast.Null:
		f.write(n.String())
	case *ast.Boolean:
		f.write(n.String())
	case *ast.Number:
		f.write(n.String())
	case *ast.String:
		f.write(n.Quote())
	case *ast.Variable:
		f.write(n.String())
	case *ast.Reference:
		f.writeReference(n)
	case *ast.Array:
		f.writeArray(n)
	case *ast.Set:
		f.writeSet(n)
	case *ast.Object:
		f.writeObject(n)
	case *ast.ArrayComprehension:
		f.writeComprehension("[", n.Term, nil, n.Body, "]", n.Location)
	case *ast.SetComprehension:
		f.writeComprehension("{", n.Term, nil, n.Body, "}", n.Location)
	case *ast.ObjectComprehension:
		f.writeComprehension("{", n.Key, n.Value, n.Body, "}", n.Location)
	case *ast.Expression:
		f.writeExpression(n)
	case *ast.With:
		f.writeWith(n, true)
	case *ast.Some:
		f.writeSome(n)
	case *ast.Every:
		f.writeEvery(n)
	case *ast.RuleHead:
		f.writeHead(n, true)
	case *ast.RuleBody:
		f.writeBody(n, true, false)
	case *ast.Rule:
		f.writeRule(n)
	case *ast.Import:
		f.writeImport(n)
	case *ast.Package:
		f.writePackage(n)
	case *ast.Module:
		f.writeModule(n)
	case *ast.Comment:
		f.write(n.String())
	default:
		f.fail(node)
	}

	if f.opts.annotate {
		f.write(">")
	}
}

// writeComments flushes the comments that precede loc and defers the comment
// on loc's line until that line ends.
func (f *Formatter) writeComments(loc *ast.Location) {
	if loc == nil {
		return
	}

	var before, after []*ast.Comment
	comment := f.comment

	for _, c := range f.comments {
		diff := c.Location.Start.Line - loc.Start.Line
		switch {
		case diff < 0:
			before = append(before, c)
		case diff > 0:
			after = append(after, c)
		default:
			comment = c
		}
	}

	f.comments = after
	f.comment = comment

	f.startComments()

	var prev *ast.Location
	for _, c := range before {
		f.maybeWriteBlank(prev, c.Location)

		if f.isWritingLine {
			f.write(c.String())
			f.endLine()
			f.startLine()
		} else {
			f.writeLine(c.String())
		}
		prev = c.Location
	}

	if len(before) > 0 {
		f.maybeWriteBlank(prev, loc)
	}

	f.endComments()
}

// nextAnchor returns the location of the first text that will be written for
// a statement at loc: its first leading comment, or the statement itself.
func (f *Formatter) nextAnchor(loc *ast.Location) *ast.Location {
	if loc != nil && len(f.comments) > 0 && f.comments[0].Location.Start.Line < loc.Start.Line {
		return f.comments[0].Location
	}
	return loc
}

func (f *Formatter) writeModule(m *ast.Module) {
	if m.Package != nil {
		f.writePackage(m.Package)
	}
	f.writeImports(m.Imports)
	f.writeRules(m.Rules)
	f.writeTrailingComments(m)
}

func (f *Formatter) writePackage(p *ast.Package) {
	f.writeComments(p.Location)
	f.writeLine(p.String())
	f.writeLine("")
}

func (f *Formatter) writeImports(imports []*ast.Import) {
	if len(imports) == 0 {
		return
	}

	for i, imp := range imports {
		if i > 0 {
			f.maybeWriteBlank(imports[i-1].Location, f.nextAnchor(imp.Location))
		}
		f.writeComments(imp.Location)
		f.writeImport(imp)
	}

	f.writeLine("")
}

func (f *Formatter) writeImport(imp *ast.Import) {
	f.writeLine(imp.String())
}

func (f *Formatter) writeRules(rules ast.Rules) {
	for i, r := range rules {
		if i > 0 {
			f.maybeWriteBlank(rules[i-1].Location, f.nextAnchor(r.Location))
		}
		f.writeComments(r.Location)
		f.writeRule(r)
	}
}

// writeTrailingComments writes the comments that follow the last statement.
func (f *Formatter) writeTrailingComments(m *ast.Module) {
	var prev *ast.Location
	switch {
	case len(m.Rules) > 0:
		prev = m.Rules[len(m.Rules)-1].Location
	case len(m.Imports) > 0:
		prev = m.Imports[len(m.Imports)-1].Location
	case m.Package != nil:
		prev = m.Package.Location
	}

	for _, c := range f.comments {
		f.maybeWriteBlank(prev, c.Location)
		f.writeLine(c.String())
		prev = c.Location
	}
	f.comments = nil

	if f.comment != nil {
		f.write(" " + f.comment.String())
		f.comment = nil
	}
}

func (f *Formatter) writeRule(r *ast.Rule) {
	if r.IsElse() {
		f.writeElse(r)
		return
	}

	nLines := f.nLines

	if r.Default {
		f.write("default ")
	}

	f.writeHead(r.Head, !r.Default && !r.Body.IsTrue())

	withIf := f.keywords.ifKeyword
	f.writeBody(r.Body, f.needsBraces(r), withIf)

	f.writeElse(r.Else)

	f.writeLine("")

	if f.nLines-nLines > 1 {
		f.writeLine("")
	}
}

// needsBraces reports whether the body of r is wrapped in braces. Only a
// single-expression body in if mode, not followed by an else, goes without.
func (f *Formatter) needsBraces(r *ast.Rule) bool {
	return !(f.keywords.ifKeyword && r.Body.Len() == 1 && r.Else == nil)
}

func (f *Formatter) writeElse(r *ast.Rule) {
	if r == nil {
		return
	}

	// "} " before the else keyword.
	f.write(" ")

	isRuleTrue := isLiteralTrue(r.Head.Value) && r.Body.IsTrue()

	if isRuleTrue {
		f.writeHead(r.Head, true)
		f.write(" = true")
	} else {
		f.writeHead(r.Head, !r.Body.IsTrue())
		f.writeBody(r.Body, f.needsBraces(r), f.keywords.ifKeyword)
	}

	f.writeElse(r.Else)
}

// writeHead writes the name, arguments, key and value of a rule. A literal
// true value is left out when omitTrue is set, since the body implies it.
func (f *Formatter) writeHead(h *ast.RuleHead, omitTrue bool) {
	isElse := h.Name != nil && h.Name.Value == ast.ElseName

	f.writeTerm(h.Name)

	if !isElse && len(h.Args) > 0 && f.hasCommentsWithin(h.Location, h.Args[len(h.Args)-1].Loc()) {
		f.write("(")
		f.writeArgs(h.Args)
		f.write(")")
	} else if !isElse && h.Args != nil {
		inline := !f.isContextMultiline(h.Location, true)

		if inline {
			f.startInline()
		}

		f.write("(")
		f.writeIterable(h.Args, h.Location)
		f.write(")")

		if inline {
			f.endInline()
		}
	}

	if h.Key != nil {
		if f.keywords.containsKeyword && h.Value == nil {
			f.write(" contains ")
			f.writeTerm(h.Key)
		} else {
			f.write("[")
			f.writeTerm(h.Key)
			f.write("]")
		}
	}

	if h.Value != nil && !(omitTrue && isLiteralTrue(h.Value)) {
		if h.Assign {
			f.write(" := ")
		} else {
			f.write(" = ")
		}
		f.writeTerm(h.Value)
	}
}

func isLiteralTrue(t ast.Term) bool {
	b, ok := t.(*ast.Boolean)
	return ok && b.Value
}

func (f *Formatter) writeBody(body *ast.RuleBody, withBraces, withIf bool) {
	// A trivially true body is left out entirely.
	if body == nil || body.IsTrue() {
		return
	}

	exprs := body.Exprs()
	n := len(exprs)
	m := n - 1
	isInline := f.isInline() || (withIf && !withBraces)

	if withIf {
		f.write(" if")
		if isInline {
			f.write(" ")
		}
	}

	if withBraces {
		f.write(" {")
	}

	if !isInline {
		f.endLine()
		f.deeper()
	}

	for i, e := range exprs {
		nLines := f.nLines
		addLine := 0

		if !isInline {
			var prev *ast.Location
			if i > 0 {
				prev = exprs[i-1].Location
			}
			addLine = f.maybeWriteBlank(prev, e.Location)
			f.startLine()
		}

		f.writeTerm(e)

		if isInline {
			if i < m {
				f.write("; ")
			}
		} else if i < m {
			f.endLine()

			if f.nLines-nLines-addLine > 1 {
				f.writeLine("")
			}
		}
	}

	if !isInline {
		f.shallower()
		f.endLine()
		f.startLine()
	}

	if withBraces {
		f.write("}")
	}
}

func (f *Formatter) writeArray(a *ast.Array) {
	inline := f.isContextInline(a.Location, a.Len())

	f.write("[")

	if a.Len() > 0 {
		if !inline {
			f.endLine()
			f.deeper()
		}

		f.writeIterable(a.Elems, a.Location)

		if !inline {
			f.shallower()
			f.endLine()
			f.startLine()
		}
	}

	f.write("]")
}

func (f *Formatter) writeSet(s *ast.Set) {
	if s.Len() == 0 {
		f.write("set()")
		return
	}

	inline := f.isContextInline(s.Location, s.Len())

	f.write("{")

	if !inline {
		f.endLine()
		f.deeper()
	}

	f.writeIterable(s.Elems(), s.Location)

	if !inline {
		f.shallower()
		f.endLine()
		f.startLine()
	}

	f.write("}")
}

func (f *Formatter) writeObject(o *ast.Object) {
	n := o.Len()
	m := n - 1
	inline := f.isContextInline(o.Location, n)

	f.write("{")

	if !inline {
		f.endLine()
		f.deeper()
	}

	for i, item := range o.Items {
		if !inline {
			f.startLine()
		}

		f.writeTerm(item.Key)
		f.write(": ")
		f.writeTerm(item.Value)

		if i < m {
			if inline {
				f.write(", ")
			} else {
				f.write(",")
				f.endLine()
			}
		}
	}

	if !inline {
		f.shallower()
		f.endLine()
		f.startLine()
	}

	f.write("}")
}

// writeComprehension writes [term | body], {term | body} or
// {key: value | body}.
func (f *Formatter) writeComprehension(open string, term, value ast.Term, body *ast.RuleBody, closing string, loc *ast.Location) {
	inline := f.isContextInline(loc, 2)

	if inline {
		f.startInline()
	}

	f.write(open)

	if !f.isInline() {
		f.endLine()
		f.deeper()
		f.startLine()
		f.shallower()
	}

	f.writeTerm(term)
	if value != nil {
		f.write(": ")
		f.writeTerm(value)
	}
	f.write(" | ")
	if body == nil || body.IsTrue() {
		f.write("true")
	} else {
		f.writeBody(body, false, false)
	}
	f.write(closing)

	if inline {
		f.endInline()
	}
}

func (f *Formatter) writeIterable(terms []ast.Term, loc *ast.Location) {
	n := len(terms)
	m := n - 1

	if f.isContextInline(loc, n) {
		for i, t := range terms {
			f.writeTerm(t)
			if i < m {
				f.write(", ")
			}
		}
		return
	}

	for i, t := range terms {
		f.startLine()
		f.writeTerm(t)
		if i < m {
			f.write(",")
			f.endLine()
		}
	}
}

// writeArgs writes the arguments of a call or rule head one per line, closing
// the line before the closing parenthesis.
func (f *Formatter) writeArgs(terms []ast.Term) {
	m := len(terms) - 1

	f.endLine()
	f.deeper()

	for i, t := range terms {
		f.startLine()
		f.writeTerm(t)
		if i < m {
			f.write(",")
			f.endLine()
		}
	}

	f.shallower()
	f.endLine()
	f.startLine()
}

// hasCommentsWithin reports whether a comment that is still to be written
// starts after from begins and before to ends. Such a comment needs a line
// break after it, so the enclosing arguments cannot be written inline.
func (f *Formatter) hasCommentsWithin(from, to *ast.Location) bool {
	if from == nil || to == nil {
		return false
	}
	for _, c := range f.comments {
		if off := c.Location.Start.Offset; off > from.Start.Offset && off < to.End.Offset {
			return true
		}
	}
	return false
}

// infixOf returns the builtin of a call that is rendered infix: the operator
// has an infix token and the call has exactly the operands the token takes.
func (f *Formatter) infixOf(e *ast.Expression) (*ast.Builtin, bool) {
	if !e.IsCall() {
		return nil, false
	}
	b, ok := f.reg.Lookup(e.Operator())
	if !ok || b.Infix == "" {
		return nil, false
	}
	switch n := len(e.Arguments()); {
	case n == 2:
		return b, true
	case n == 3 && b.Infix == "in":
		return b, true
	default:
		return nil, false
	}
}

func (f *Formatter) writeCall(e *ast.Expression) {
	if b, ok := f.infixOf(e); ok {
		args := e.Arguments()
		prec := precedence[b.Infix]

		if len(args) == 3 {
			f.writeOperand(args[0], prec, false)
			f.write(", ")
			f.writeOperand(args[1], prec, false)
		} else {
			f.writeOperand(args[0], prec, false)
		}
		f.write(" " + b.Infix + " ")
		f.writeOperand(args[len(args)-1], prec, true)
		return
	}

	args := e.Arguments()
	m := len(args) - 1

	f.write(e.Operator())
	f.write("(")

	if m >= 0 && f.hasCommentsWithin(e.Location, args[m].Loc()) {
		f.writeArgs(args)
		f.write(")")
		return
	}

	inline := !f.isContextMultiline(e.Location, f.opts.strict)

	if inline {
		f.startInline()
	}

	for i, t := range args {
		f.writeTerm(t)
		if i < m {
			f.write(", ")
		}
	}

	if inline {
		f.endInline()
	}

	f.write(")")
}

// writeOperand writes an operand of an infix call, in parentheses when it is
// itself an infix call that binds less tightly than its parent.
func (f *Formatter) writeOperand(t ast.Term, parent int, right bool) {
	parens := false
	if e, ok := t.(*ast.Expression); ok {
		if b, ok := f.infixOf(e); ok {
			child := precedence[b.Infix]
			parens = child < parent || (right && child == parent)
		}
	}

	if parens {
		f.write("(")
	}
	f.writeTerm(t)
	if parens {
		f.write(")")
	}
}

func (f *Formatter) writeExpression(e *ast.Expression) {
	if e.Negated {
		f.write("not ")
	}

	if e.IsCall() {
		f.writeCall(e)
	} else {
		f.writeTerm(e.Value)
	}

	if n := len(e.With); n > 0 {
		first, last := e.With[0], e.With[n-1]
		inline := !f.opts.strict && (first == last || lineOf(last.Location) > lineOf(first.Location))

		if !inline {
			f.endLine()
			f.deeper()
		}

		for _, w := range e.With {
			f.writeWith(w, inline)
		}

		if !inline {
			f.shallower()
		}
	}
}

func lineOf(loc *ast.Location) int {
	if loc == nil {
		return 0
	}
	return loc.Start.Line
}

func (f *Formatter) writeWith(w *ast.With, inline bool) {
	if inline {
		f.write(" with ")
	} else {
		f.startLine()
		f.write("with ")
	}

	f.writeTerm(w.Target)
	f.write(" as ")
	f.writeTerm(w.Value)
}

func (f *Formatter) writeReference(r *ast.Reference) {
	if r.Len() == 0 {
		return
	}

	f.writeTerm(r.Segments[0])

	for _, seg := range r.Segments[1:] {
		if s, ok := seg.(*ast.String); ok {
			f.write(ast.StringSegment(s.Value))
			continue
		}
		f.write("[")
		f.writeTerm(seg)
		f.write("]")
	}
}

func (f *Formatter) writeSome(s *ast.Some) {
	f.write("some ")
	m := len(s.Symbols) - 1
	for i, sym := range s.Symbols {
		f.writeTerm(sym)
		if i < m {
			f.write(", ")
		}
	}
}

func (f *Formatter) writeEvery(e *ast.Every) {
	f.write("every ")
	m := len(e.Symbols) - 1
	for i, sym := range e.Symbols {
		f.writeTerm(sym)
		if i < m {
			f.write(", ")
		}
	}
	f.write(" in ")
	f.writeTerm(e.Domain)

	if e.Body == nil || e.Body.IsTrue() {
		f.write(" { true }")
		return
	}
	f.writeBody(e.Body, true, false)
}

// isContextInline decides the layout of a collection of n elements.
func (f *Formatter) isContextInline(loc *ast.Location, n int) bool {
	if f.opts.strict {
		return f.isInline() || n < 1
	}
	return f.isInline() || n < 1 || lineSpan(loc) == 0
}

// isContextMultiline reports whether loc spans several lines. In strict mode
// a strictly inline context is never multi-line.
func (f *Formatter) isContextMultiline(loc *ast.Location, strictlyInline bool) bool {
	if strictlyInline && f.opts.strict {
		return false
	}
	return lineSpan(loc) > 0
}

func lineSpan(loc *ast.Location) int {
	if loc == nil {
		return 0
	}
	return loc.End.Line - loc.Start.Line
}

// maybeWriteBlank writes one blank line between two parts that were separated
// by at least one blank line in the source, unless one was just written. It
// returns the number of lines written.
func (f *Formatter) maybeWriteBlank(prev, next *ast.Location) int {
	nextLine := 0
	if next != nil {
		nextLine = next.Start.Line
	}
	prevLine := nextLine
	if prev != nil {
		prevLine = prev.End.Line
	}

	if nextLine-prevLine < 2 || strings.HasSuffix(f.buf.String(), "\n\n") {
		return 0
	}

	if f.isWritingLine {
		f.endLine()
		f.startLine()
	} else {
		f.writeLine("")
	}
	return 1
}

func (f *Formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *Formatter) writeLine(s string) {
	if s != "" {
		f.startLine()
		f.write(s)
	}
	f.endLine()
}

func (f *Formatter) deeper()         { f.level++ }
func (f *Formatter) shallower()      { f.level-- }
func (f *Formatter) startComments()  { f.isWritingComment = true }
func (f *Formatter) endComments()    { f.isWritingComment = false }
func (f *Formatter) startInline()    { f.inline++ }
func (f *Formatter) endInline()      { f.inline-- }
func (f *Formatter) isInline() bool  { return f.inline > 0 }

func (f *Formatter) startLine() {
	if f.isWritingLine {
		f.endLine()
	}
	f.isWritingLine = true
	f.write(strings.Repeat(f.opts.indent, f.level))
}

func (f *Formatter) endLine() {
	f.isWritingLine = false

	if !f.isWritingComment {
		f.nLines++

		if f.comment != nil {
			f.write(" " + f.comment.String())
			f.comment = nil
		}
	}

	if f.isInline() {
		f.write(" ")
	} else {
		f.write("\n")
	}
}
