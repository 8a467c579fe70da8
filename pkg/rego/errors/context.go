package errors

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"regoplay/playground/pkg/rego/ast"
)

// ExtractContext returns the lines of src around loc, numbered, with the
// error line marked and a column indicator below it.
func ExtractContext(src []byte, loc *ast.Location, contextLines int) string {
	if loc == nil || loc.Start.Line < 1 {
		return ""
	}

	scanner := bufio.NewScanner(bytes.NewReader(src))
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return ""
	}

	errorLine := loc.Start.Line - 1
	if errorLine >= len(lines) {
		return ""
	}

	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, lines[i]))

		if i == errorLine && loc.Start.Column > 0 {
			padding := strings.Repeat(" ", loc.Start.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), padding))
		}
	}

	return sb.String()
}

// WithContext attaches the source lines around the error location.
func WithContext(err *Error, src []byte, contextLines int) *Error {
	if err.Location != nil {
		err.Context = ExtractContext(src, err.Location, contextLines)
	}
	return err
}
