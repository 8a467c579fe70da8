package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Differ writes unified diffs between original and formatted source.
type Differ struct {
	Context int

	header, hunk, del, ins *color.Color
}

// NewDiffer creates a differ. With useColor set, removed and added lines are
// coloured regardless of the output device.
func NewDiffer(useColor bool) *Differ {
	d := &Differ{
		Context: DefaultContext,
		header:  color.New(color.Bold),
		hunk:    color.New(color.FgCyan),
		del:     color.New(color.FgRed),
		ins:     color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{d.header, d.hunk, d.del, d.ins} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return d
}

// ColorEnabled reports whether output to f should be coloured: f is a
// terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type lineOp struct {
	kind byte // ' ', '-' or '+'
	text string
	eol  bool
}

// Write writes the diff from before to after. Nothing is written when they
// are equal. Its signature matches workspace.DiffFunc.
func (d *Differ) Write(w io.Writer, path, before, after string) error {
	if before == after {
		return nil
	}

	ops := lineOps(before, after)
	var sb strings.Builder
	sb.WriteString(d.header.Sprintf("--- a/%s", path) + "\n")
	sb.WriteString(d.header.Sprintf("+++ b/%s", path) + "\n")

	// oldAt[i] and newAt[i] count the lines of each side before ops[i].
	oldAt := make([]int, len(ops)+1)
	newAt := make([]int, len(ops)+1)
	for i, op := range ops {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if op.kind != '+' {
			oldAt[i+1]++
		}
		if op.kind != '-' {
			newAt[i+1]++
		}
	}

	for _, h := range hunks(ops, d.Context) {
		oldCount := oldAt[h[1]] - oldAt[h[0]]
		newCount := newAt[h[1]] - newAt[h[0]]
		sb.WriteString(d.hunk.Sprintf("@@ -%s +%s @@", span(oldAt[h[0]], oldCount), span(newAt[h[0]], newCount)) + "\n")

		for _, op := range ops[h[0]:h[1]] {
			line := string(op.kind) + op.text
			switch op.kind {
			case '-':
				line = d.del.Sprint(line)
			case '+':
				line = d.ins.Sprint(line)
			}
			sb.WriteString(line + "\n")
			if !op.eol {
				sb.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// span renders a hunk range. An empty range names the line before it.
func span(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}

// hunks groups the changed operations with their context into half-open
// index ranges, merging ranges whose context overlaps.
func hunks(ops []lineOp, context int) [][2]int {
	var out [][2]int
	for i, op := range ops {
		if op.kind == ' ' {
			continue
		}
		lo := max(i-context, 0)
		hi := min(i+context+1, len(ops))
		if n := len(out); n > 0 && lo <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], hi)
			continue
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// lineBase is the first rune used to encode a line. Runes from the private
// use area survive the conversion to string that diff texts go through.
const lineBase = 0xE000

// lineOps diffs before and after line by line. Each distinct line is encoded
// as one rune so the character diff works on whole lines.
func lineOps(before, after string) []lineOp {
	index := make(map[string]rune)
	var table []string
	encode := func(s string) []rune {
		lines := splitLines(s)
		out := make([]rune, len(lines))
		for i, line := range lines {
			r, ok := index[line]
			if !ok {
				r = rune(lineBase + len(table))
				index[line] = r
				table = append(table, line)
			}
			out[i] = r
		}
		return out
	}
	a, b := encode(before), encode(after)

	var ops []lineOp
	for _, diff := range diffpatch.New().DiffMainRunes(a, b, false) {
		kind := byte(' ')
		switch diff.Type {
		case diffpatch.DiffDelete:
			kind = '-'
		case diffpatch.DiffInsert:
			kind = '+'
		}
		for _, r := range diff.Text {
			line := table[int(r)-lineBase]
			ops = append(ops, lineOp{
				kind: kind,
				text: strings.TrimSuffix(line, "\n"),
				eol:  strings.HasSuffix(line, "\n"),
			})
		}
	}
	return ops
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
