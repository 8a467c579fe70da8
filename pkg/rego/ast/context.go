package ast

import (
	"reflect"
	"strconv"
)

// MatchResult is the answer of a MatchFunc for one field.
type MatchResult int

const (
	// NoOpinion skips the value and everything below it.
	NoOpinion MatchResult = iota

	// NoMatch rejects the value but keeps searching below it.
	NoMatch

	// Match ends the search at the value.
	Match
)

// MatchFunc inspects one field of a parent value.
type MatchFunc func(parent any, key string, value any) MatchResult

// Context is the result of FindContext: the field Key of Node holds Value.
type Context struct {
	Key   string
	Node  any
	Value any
}

// FindContext searches the tree below root depth-first, visiting each value's
// fields in order, and returns the first field for which match reports Match.
// Each node is visited at most once.
func FindContext(root any, match MatchFunc) *Context {
	return findContext(root, match, make(map[any]struct{}))
}

func findContext(v any, match MatchFunc, visited map[any]struct{}) *Context {
	if isNilValue(v) {
		return nil
	}

	switch v.(type) {
	case Node, *Location:
		if _, ok := visited[v]; ok {
			return nil
		}
		visited[v] = struct{}{}
	}

	for _, f := range children(v) {
		switch match(v, f.Name, f.Value) {
		case Match:
			return &Context{Key: f.Name, Node: v, Value: f.Value}
		case NoMatch:
			if ctx := findContext(f.Value, match, visited); ctx != nil {
				return ctx
			}
		}
	}
	return nil
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func children(v any) []Field {
	switch x := v.(type) {
	case Node:
		return x.Fields()
	case *Location:
		return []Field{{Name: "start", Value: x.Start}, {Name: "end", Value: x.End}}
	case Position:
		return []Field{
			{Name: "offset", Value: x.Offset},
			{Name: "line", Value: x.Line},
			{Name: "column", Value: x.Column},
		}
	case ObjectItem:
		return []Field{{Name: "0", Value: x.Key}, {Name: "1", Value: x.Value}}
	case []Term:
		return indexed(len(x), func(i int) any { return x[i] })
	case []ObjectItem:
		return indexed(len(x), func(i int) any { return x[i] })
	case []*Expression:
		return indexed(len(x), func(i int) any { return x[i] })
	case []*With:
		return indexed(len(x), func(i int) any { return x[i] })
	case []*Import:
		return indexed(len(x), func(i int) any { return x[i] })
	case []*Comment:
		return indexed(len(x), func(i int) any { return x[i] })
	case []*Rule:
		return indexed(len(x), func(i int) any { return x[i] })
	case Rules:
		return indexed(len(x), func(i int) any { return x[i] })
	default:
		return nil
	}
}

func indexed(n int, at func(int) any) []Field {
	fields := make([]Field, n)
	for i := range fields {
		fields[i] = Field{Name: strconv.Itoa(i), Value: at(i)}
	}
	return fields
}
