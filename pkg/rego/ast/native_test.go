package ast

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromNative(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		kind  Kind
	}{
		{"nil", nil, "null", KindNull},
		{"bool", true, "true", KindBoolean},
		{"int", 42, "42", KindNumber},
		{"negative int64", int64(-7), "-7", KindNumber},
		{"uint64", uint64(math.MaxUint64), "18446744073709551615", KindNumber},
		{"float", 1.5, "1.5", KindNumber},
		{"integral float", 3.0, "3", KindNumber},
		{"small float", 1e-7, "1e-7", KindNumber},
		{"large float", 1e21, "1e+21", KindNumber},
		{"json number", json.Number("1.250"), "1.250", KindNumber},
		{"string", "hi", "hi", KindString},
		{"slice", []any{1, "x", nil}, `[1, "x", null]`, KindArray},
		{"strings", []string{"a", "b"}, `["a", "b"]`, KindArray},
		{"native set", NativeSet{1, 1.0, 2}, "{1, 2}", KindSet},
		{"map", map[string]any{"b": 2, "a": []any{true}}, `{"a": [true], "b": 2}`, KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromNative(tt.input)
			if err != nil {
				t.Fatalf("FromNative() error = %v", err)
			}
			if got.Kind() != tt.kind {
				t.Errorf("Kind() = %s, want %s", got.Kind(), tt.kind)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestFromNative_Term(t *testing.T) {
	v := NewVariable("x", nil)
	got, err := FromNative(v)
	if err != nil {
		t.Fatalf("FromNative() error = %v", err)
	}
	if got != v {
		t.Error("FromNative() should return an existing term unchanged")
	}
}

func TestFromNative_Unsupported(t *testing.T) {
	inputs := []any{
		struct{}{},
		map[int]any{1: "x"},
		[]any{1, make(chan int)},
		map[string]any{"f": func() {}},
	}

	for _, in := range inputs {
		_, err := FromNative(in)
		var typeErr *TypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("FromNative(%T) error = %v, want *TypeError", in, err)
		}
	}
}

func TestFromNative_ValueOf(t *testing.T) {
	in := map[string]any{
		"user":  "alice",
		"roles": []any{"admin", "dev"},
		"limit": json.Number("10"),
		"meta":  map[string]any{"active": false, "parent": nil},
	}

	term, err := FromNative(in)
	if err != nil {
		t.Fatalf("FromNative() error = %v", err)
	}
	if diff := cmp.Diff(in, ValueOf(term)); diff != "" {
		t.Errorf("ValueOf(FromNative()) mismatch (-want +got):\n%s", diff)
	}
}
