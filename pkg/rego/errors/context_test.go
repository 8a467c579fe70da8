package errors

import (
	"strings"
	"testing"
)

var source = []byte("package play\n\nallow if {\n\tinput.user == \"admin\"\n}\n")

func TestExtractContext(t *testing.T) {
	got := ExtractContext(source, loc(3, 7), 1)

	want := strings.Join([]string{
		"   2 | ",
		"-> 3 | allow if {",
		"     |       ^",
		"   4 | \tinput.user == \"admin\"",
		"",
	}, "\n")

	if got != want {
		t.Errorf("ExtractContext() =\n%s\nwant\n%s", got, want)
	}
}

func TestExtractContext_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		line  int
		lines int
		empty bool
	}{
		{"first line", 1, 2, false},
		{"last line", 5, 3, false},
		{"past the end", 9, 1, true},
		{"line zero", 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractContext(source, loc(tt.line, 1), tt.lines)
			if (got == "") != tt.empty {
				t.Errorf("ExtractContext() = %q", got)
			}
			if !tt.empty && !strings.Contains(got, "->") {
				t.Errorf("ExtractContext() = %q, want a marked line", got)
			}
		})
	}

	if got := ExtractContext(source, nil, 1); got != "" {
		t.Errorf("ExtractContext(nil) = %q", got)
	}
}

func TestWithContext(t *testing.T) {
	err := WithContext(NewSyntaxError("bad", loc(1, 1)), source, 0)
	if err.Context != "-> 1 | package play\n     | ^\n" {
		t.Errorf("Context = %q", err.Context)
	}

	none := WithContext(NewSyntaxError("bad", nil), source, 2)
	if none.Context != "" {
		t.Errorf("Context = %q, want empty without a location", none.Context)
	}
}
