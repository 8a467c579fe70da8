package ast

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	if reg != DefaultRegistry() {
		t.Fatal("DefaultRegistry() should be built once")
	}

	tests := []struct {
		lookup string
		name   string
		infix  string
	}{
		{"==", "equal", "=="},
		{"equal", "equal", "=="},
		{"+", "plus", "+"},
		{":=", "assign", ":="},
		{"=", "eq", "="},
		{"count", "count", ""},
		{"io.jwt.decode", "io.jwt.decode", ""},
	}

	for _, tt := range tests {
		t.Run(tt.lookup, func(t *testing.T) {
			b, ok := reg.Lookup(tt.lookup)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.lookup)
			}
			if b.Name != tt.name || b.Infix != tt.infix {
				t.Errorf("Lookup(%q) = {%s %q}, want {%s %q}", tt.lookup, b.Name, b.Infix, tt.name, tt.infix)
			}
		})
	}

	if b, ok := reg.Lookup("in"); !ok || !strings.HasPrefix(b.Name, "internal.member_") {
		t.Errorf("Lookup(in) = %v, %v", b, ok)
	}
	if _, ok := reg.Lookup("no_such_builtin"); ok {
		t.Error("Lookup() found an unknown builtin")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := DefaultRegistry()

	plain, refs, infixes := reg.PlainNames(), reg.ReferenceNames(), reg.InfixNames()
	for _, names := range [][]string{plain, refs, infixes} {
		if !sort.StringsAreSorted(names) {
			t.Errorf("names are not sorted: %v", names)
		}
	}

	has := func(names []string, name string) bool {
		i := sort.SearchStrings(names, name)
		return i < len(names) && names[i] == name
	}

	if !has(plain, "count") || has(plain, "plus") || has(plain, "io.jwt.decode") {
		t.Error("PlainNames() mismatch")
	}
	if !has(refs, "io.jwt.decode") || has(refs, "count") {
		t.Error("ReferenceNames() mismatch")
	}
	if !has(infixes, "plus") || !has(infixes, "internal.member_2") || has(infixes, "count") {
		t.Error("InfixNames() mismatch")
	}
	if !reg.IsInfixName("assign") || reg.IsInfixName("count") {
		t.Error("IsInfixName() mismatch")
	}
	if got := reg.Len(); got != len(plain)+len(refs)+len(infixes) {
		t.Errorf("Len() = %d", got)
	}

	if diff := cmp.Diff([]string{"contains", "every", "if", "in"}, reg.FutureKeywords()); diff != "" {
		t.Errorf("FutureKeywords() mismatch (-want +got):\n%s", diff)
	}

	plain[0] = "mutated"
	if reg.PlainNames()[0] == "mutated" {
		t.Error("PlainNames() should return a copy")
	}
}

func TestLoadCapabilities(t *testing.T) {
	src := `{
		"builtins": [
			{"name": "concat_op", "infix": "++"},
			{"name": "custom.lookup"},
			{"name": "shout", "decl": {"type": "function"}}
		],
		"future_keywords": ["if"]
	}`

	reg, err := LoadCapabilities(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadCapabilities() error = %v", err)
	}

	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
	if b, ok := reg.Lookup("++"); !ok || b.Name != "concat_op" {
		t.Errorf("Lookup(++) = %v, %v", b, ok)
	}
	if diff := cmp.Diff([]string{"custom.lookup"}, reg.ReferenceNames()); diff != "" {
		t.Errorf("ReferenceNames() mismatch (-want +got):\n%s", diff)
	}
	if b, _ := reg.Lookup("shout"); string(b.Decl) != `{"type": "function"}` {
		t.Errorf("Decl = %s", b.Decl)
	}
	if diff := cmp.Diff([]string{"if"}, reg.FutureKeywords()); diff != "" {
		t.Errorf("FutureKeywords() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCapabilities_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"invalid json", `{"builtins": [`},
		{"missing name", `{"builtins": [{"infix": "+"}]}`},
		{"null builtin", `{"builtins": [null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCapabilities(strings.NewReader(tt.src)); err == nil {
				t.Error("LoadCapabilities() error = nil")
			}
		})
	}
}

func TestLoadCapabilitiesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caps.json")
	if err := os.WriteFile(path, []byte(`{"builtins": [{"name": "f"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadCapabilitiesFile(path)
	if err != nil {
		t.Fatalf("LoadCapabilitiesFile() error = %v", err)
	}
	if _, ok := reg.Lookup("f"); !ok {
		t.Error("Lookup(f) not found")
	}

	if _, err := LoadCapabilitiesFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadCapabilitiesFile() of a missing file error = nil")
	}
}

func TestNewRegistry_Replace(t *testing.T) {
	reg := NewRegistry(&Builtin{Name: "f"}, nil, &Builtin{}, &Builtin{Name: "f", Infix: "~"})

	b, ok := reg.Lookup("f")
	if !ok || b.Infix != "~" {
		t.Errorf("Lookup(f) = %v, want the later entry", b)
	}
	if got := b.ToExpression(NumberFromInt(1, nil)).String(); got != "f(1)" {
		t.Errorf("ToExpression() = %q", got)
	}
}
