package ast

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSet_Dedup(t *testing.T) {
	s := NewSet(nil, NewNumber("1", nil), NewNumber("1.0", nil), NewString("1", nil), NewNumber("2", nil))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if got := s.String(); got != `{1, "1", 2}` {
		t.Errorf("String() = %q", got)
	}
	if s.Add(NewNumber("2.00", nil)) {
		t.Error("Add() of an equal number should not change the set")
	}
	if !s.Add(NewBoolean(false, nil)) || s.Len() != 4 {
		t.Error("Add() of a new value should change the set")
	}
	if !s.Has(NewNumber("10e-1", nil)) {
		t.Error("Has() should compare numbers by value")
	}

	elems := s.Elems()
	elems[0] = NewNull(nil)
	if _, ok := s.Elems()[0].(*Number); !ok {
		t.Error("Elems() should return a copy")
	}

	if got := NewSet(nil).String(); got != "set()" {
		t.Errorf("empty String() = %q", got)
	}
}

func TestObject_Get(t *testing.T) {
	o := NewObject(nil,
		Item(NewString("a", nil), NumberFromInt(1, nil)),
		Item(NumberFromInt(2, nil), NewString("two", nil)),
	)

	if v, ok := o.Get(NewString("a", nil)); !ok || v.String() != "1" {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if v, ok := o.Get(NewNumber("2.0", nil)); !ok || v.String() != "two" {
		t.Errorf("Get(2.0) = %v, %v", v, ok)
	}
	if _, ok := o.Get(NewString("2", nil)); ok {
		t.Error("Get() should not match a string key against a number")
	}
	if got := o.String(); got != `{"a": 1, 2: "two"}` {
		t.Errorf("String() = %q", got)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Term
		want bool
	}{
		{"numbers", NewNumber("1", nil), NewNumber("1.0", nil), true},
		{"exponent", NewNumber("100", nil), NewNumber("1e2", nil), true},
		{"different numbers", NewNumber("1", nil), NewNumber("2", nil), false},
		{"string and variable", NewString("x", nil), NewVariable("x", nil), false},
		{"arrays in order", NewArray(nil, NumberFromInt(1, nil), NumberFromInt(2, nil)), NewArray(nil, NumberFromInt(1, nil), NumberFromInt(2, nil)), true},
		{"arrays out of order", NewArray(nil, NumberFromInt(1, nil), NumberFromInt(2, nil)), NewArray(nil, NumberFromInt(2, nil), NumberFromInt(1, nil)), false},
		{"sets out of order", NewSet(nil, NumberFromInt(1, nil), NumberFromInt(2, nil)), NewSet(nil, NumberFromInt(2, nil), NumberFromInt(1, nil)), true},
		{
			"objects out of order",
			NewObject(nil, Item(NewString("a", nil), NewNull(nil)), Item(NewString("b", nil), NewBoolean(true, nil))),
			NewObject(nil, Item(NewString("b", nil), NewBoolean(true, nil)), Item(NewString("a", nil), NewNull(nil))),
			true,
		},
		{"references", NewReference(nil, InputRoot(), NewString("x", nil)), NewReference(nil, InputRoot(), NewString("x", nil)), true},
		{"nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueOf(t *testing.T) {
	term := NewObject(nil,
		Item(NewString("name", nil), NewString("alice", nil)),
		Item(NewString("admin", nil), NewBoolean(true, nil)),
		Item(NewString("tags", nil), NewArray(nil, NewString("a", nil), NewNull(nil))),
		Item(NewString("ids", nil), NewSet(nil, NumberFromInt(7, nil))),
		Item(NewString("ref", nil), NewReference(nil, InputRoot(), NewString("x", nil))),
	)

	want := map[string]any{
		"name":  "alice",
		"admin": true,
		"tags":  []any{"a", nil},
		"ids":   []any{json.Number("7")},
		"ref":   "input.x",
	}

	if diff := cmp.Diff(want, ValueOf(term)); diff != "" {
		t.Errorf("ValueOf() mismatch (-want +got):\n%s", diff)
	}
	if ValueOf(nil) != nil {
		t.Error("ValueOf(nil) should be nil")
	}
}

func TestCloneTerm(t *testing.T) {
	loc := &Location{Start: Position{Line: 2, Column: 1}, End: Position{Line: 2, Column: 9}}
	orig := NewArray(loc, NewString("a", loc), NewSet(nil, NumberFromInt(1, nil)))

	clone := CloneTerm(orig).(*Array)
	if clone == orig || clone.Location == orig.Location {
		t.Error("CloneTerm() should copy the node and its location")
	}
	if !Equal(clone, orig) {
		t.Error("CloneTerm() should preserve the value")
	}
	if *clone.Location != *orig.Location {
		t.Error("CloneTerm() should preserve the location")
	}

	clone.Elems[0].(*String).Value = "b"
	if orig.Elems[0].(*String).Value != "a" {
		t.Error("editing a clone changed the original")
	}
}
