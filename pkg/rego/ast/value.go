package ast

import (
	"encoding/json"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// ValueOf reduces a term to a native Go value. Scalars become nil, bool,
// json.Number and string; arrays and sets become []any; objects become
// map[string]any keyed by the key's text. Any other term reduces to its textual
// form.
func ValueOf(t Term) any {
	switch v := t.(type) {
	case nil:
		return nil
	case *Null:
		return nil
	case *Boolean:
		return v.Value
	case *Number:
		return v.Value
	case *String:
		return v.Value
	case *Array:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = ValueOf(e)
		}
		return out
	case *Set:
		out := make([]any, 0, v.Len())
		for _, e := range v.elems {
			out = append(out, ValueOf(e))
		}
		return out
	case *Object:
		out := make(map[string]any, len(v.Items))
		for _, item := range v.Items {
			out[item.Key.String()] = ValueOf(item.Value)
		}
		return out
	default:
		return t.String()
	}
}

// valueKey returns a string that is equal for two terms exactly when they are
// equal by value. Numbers compare numerically, sets and objects ignore order.
func valueKey(t Term) string {
	switch v := t.(type) {
	case nil:
		return "<nil>"
	case *Null:
		return "null"
	case *Boolean:
		return "b:" + strconv.FormatBool(v.Value)
	case *Number:
		return "n:" + numberKey(v.Value)
	case *String:
		return "s:" + strconv.Quote(v.Value)
	case *Variable:
		return "v:" + v.Value
	case *Array:
		keys := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			keys[i] = valueKey(e)
		}
		return "a[" + strings.Join(keys, ",") + "]"
	case *Set:
		keys := make([]string, 0, v.Len())
		for _, e := range v.elems {
			keys = append(keys, valueKey(e))
		}
		sort.Strings(keys)
		return "S{" + strings.Join(keys, ",") + "}"
	case *Object:
		keys := make([]string, len(v.Items))
		for i, item := range v.Items {
			keys[i] = valueKey(item.Key) + ":" + valueKey(item.Value)
		}
		sort.Strings(keys)
		return "o{" + strings.Join(keys, ",") + "}"
	default:
		return t.Kind().String() + ":" + t.String()
	}
}

func numberKey(n json.Number) string {
	r, ok := new(big.Rat).SetString(n.String())
	if !ok {
		return n.String()
	}
	return r.RatString()
}

// Equal reports whether two terms are equal by value.
func Equal(a, b Term) bool {
	return valueKey(a) == valueKey(b)
}
