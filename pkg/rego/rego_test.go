package rego

import (
	"strings"
	"testing"

	"regoplay/playground/pkg/rego/ast"
	regoerrors "regoplay/playground/pkg/rego/errors"
	"regoplay/playground/pkg/rego/format"
	"regoplay/playground/pkg/rego/parser"
)

var sources = []string{
	"package play\n\ndefault hello := false\n\nhello if input.message == \"world\"\n",
	"package play\n\nimport data.lib.util\n\n# admins only\nallow if {\n\tutil.is_admin(input.user)\n\tinput.method == \"GET\" # read\n}\n",
	"package play\n\nusers contains name if {\n\tsome name in input.users\n\tname != \"root\"\n}\n",
	"package play\n\nf(x) := y if {\n\ty := x * 2\n}\n\nlimit := count(input.items) + 1\n",
	"package play\n\n# leading comment\nallow if input.ok # same line\n\n# trailing\n",
	"package play\n\nx := concat(\",\", [\n\t\"a\",\n\t# own line\n\t\"b\",\n])\n\nkey := input[\"if\"][\"contains\"]\n",
}

func TestFormatSource_PlayModule(t *testing.T) {
	got, err := FormatSource("play.rego", []byte(sources[0]))
	if err != nil {
		t.Fatalf("FormatSource() error = %v", err)
	}
	if got != sources[0] {
		t.Errorf("FormatSource() =\n%s\nwant\n%s", got, sources[0])
	}
}

func TestFormatSource_Idempotent(t *testing.T) {
	for _, src := range sources {
		first, err := FormatSource("test.rego", []byte(src))
		if err != nil {
			t.Fatalf("FormatSource() error = %v\n%s", err, src)
		}
		second, err := FormatSource("test.rego", []byte(first))
		if err != nil {
			t.Fatalf("FormatSource() of formatted output error = %v\n%s", err, first)
		}
		if first != second {
			t.Errorf("formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
		}
	}
}

// The formatted text must parse back into a tree with the same shape.
func TestFormatSource_RoundTrip(t *testing.T) {
	for _, src := range sources {
		before, err := parser.ParseModule("test.rego", src)
		if err != nil {
			t.Fatalf("ParseModule() error = %v", err)
		}
		out, err := FormatModule(before)
		if err != nil {
			t.Fatalf("FormatModule() error = %v", err)
		}
		after, err := parser.ParseModule("test.rego", out)
		if err != nil {
			t.Fatalf("ParseModule() of formatted output error = %v\n%s", err, out)
		}

		if before.Package.ID() != after.Package.ID() || len(before.Imports) != len(after.Imports) ||
			len(before.Rules) != len(after.Rules) || len(before.Comments) != len(after.Comments) {
			t.Fatalf("module shape changed:\n%s\nbecame\n%s", before, after)
		}
		for i := range before.Rules {
			b, a := before.Rules[i], after.Rules[i]
			if b.Name() != a.Name() || b.ChainKind() != a.ChainKind() || b.Body.Len() != a.Body.Len() {
				t.Errorf("rule %d changed: %s became %s", i, b, a)
			}
		}
	}
}

func TestFormatSource_RegoV0(t *testing.T) {
	src := "package play\n\nallow {\n\tinput.user == \"admin\"\n}\n"
	p := parser.NewParser().WithRegoVersion(parser.RegoV0)

	got, err := FormatSource("v0.rego", []byte(src), WithParser(p), WithFormatOptions(format.WithIndent("\t")))
	if err != nil {
		t.Fatalf("FormatSource() error = %v", err)
	}
	if got != src {
		t.Errorf("FormatSource() =\n%s\nwant\n%s", got, src)
	}

	withIf, err := FormatSource("v0.rego", []byte(src), WithParser(p), WithFormatOptions(format.WithIfKeyword(true)))
	if err != nil {
		t.Fatalf("FormatSource() error = %v", err)
	}
	if !strings.Contains(withIf, "allow if input.user == \"admin\"") {
		t.Errorf("FormatSource() = %q, want the if form", withIf)
	}
}

func TestFormatSource_Errors(t *testing.T) {
	_, err := FormatSource("bad.rego", []byte("package play\n\nallow if {\n"))
	if !regoerrors.IsKind(err, regoerrors.KindSyntax) {
		t.Errorf("FormatSource() error = %v, want a syntax error", err)
	}

	src := []byte("package play\n\nallow if cont(input.roles) > 0\n")
	if _, err := FormatSource("unknown.rego", src); err != nil {
		t.Errorf("FormatSource() without validation error = %v", err)
	}
	_, err = FormatSource("unknown.rego", src, WithValidation(true))
	if !regoerrors.IsKind(err, regoerrors.KindSemantic) {
		t.Errorf("FormatSource() with validation error = %v, want a semantic error", err)
	}
}

func TestService_Registry(t *testing.T) {
	reg, err := ast.LoadCapabilities(strings.NewReader(`{"builtins": [{"name": "count"}, {"name": "assign", "infix": ":="}]}`))
	if err != nil {
		t.Fatal(err)
	}

	svc := New(WithRegistry(reg))
	got, err := svc.FormatSource("r.rego", []byte("package play\n\nx := count(input.items) + 1\n"))
	if err != nil {
		t.Fatalf("FormatSource() error = %v", err)
	}
	// plus is not registered, so it is written as a call.
	if !strings.Contains(got, "x := plus(count(input.items), 1)") {
		t.Errorf("FormatSource() = %q", got)
	}
	if svc.Parser().RegoVersion() != parser.RegoV1 {
		t.Error("default parser should be v1")
	}
}
