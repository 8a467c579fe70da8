package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiffer_Write(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "equal",
			before: "package play\n",
			after:  "package play\n",
			want:   "",
		},
		{
			name:   "changed line",
			before: "a\nb\nc\n",
			after:  "a\nB\nc\n",
			want: "--- a/p.rego\n+++ b/p.rego\n" +
				"@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n",
		},
		{
			name:   "inserted line",
			before: "package play\nallow if input.ok\n",
			after:  "package play\n\nallow if input.ok\n",
			want: "--- a/p.rego\n+++ b/p.rego\n" +
				"@@ -1,2 +1,3 @@\n package play\n+\n allow if input.ok\n",
		},
		{
			name:   "missing final newline",
			before: "package play",
			after:  "package play\n",
			want: "--- a/p.rego\n+++ b/p.rego\n" +
				"@@ -1,1 +1,1 @@\n-package play\n\\ No newline at end of file\n+package play\n",
		},
		{
			name:   "separate hunks",
			before: "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n",
			after:  "one\n2\n3\n4\n5\n6\n7\n8\n9\nten\n",
			want: "--- a/p.rego\n+++ b/p.rego\n" +
				"@@ -1,4 +1,4 @@\n-1\n+one\n 2\n 3\n 4\n" +
				"@@ -7,4 +7,4 @@\n 7\n 8\n 9\n-10\n+ten\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewDiffer(false).Write(&buf, "p.rego", tt.before, tt.after); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("Write() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffer_Color(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDiffer(true).Write(&buf, "p.rego", "a\n", "b\n"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[31m-a") || !strings.Contains(out, "\x1b[32m+b") {
		t.Errorf("expected coloured lines, got %q", out)
	}
}

func TestHunks_Merge(t *testing.T) {
	ops := []lineOp{{kind: '-'}, {kind: ' '}, {kind: ' '}, {kind: '+'}, {kind: ' '}}
	got := hunks(ops, 1)
	want := [][2]int{{0, 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hunks() mismatch (-want +got):\n%s", diff)
	}
}
