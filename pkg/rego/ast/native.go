package ast

import (
	"encoding/json"
	"sort"
	"strconv"
)

// NativeSet is a native collection converted to a Set by FromNative.
type NativeSet []any

// FromNative converts a native Go value into a term. Supported values are nil,
// bool, integers, floats, json.Number, string, []any, []string, map[string]any
// (keys in sorted order), NativeSet and existing terms.
func FromNative(v any) (Term, error) {
	switch x := v.(type) {
	case nil:
		return NewNull(nil), nil
	case Term:
		return x, nil
	case bool:
		return NewBoolean(x, nil), nil
	case string:
		return NewString(x, nil), nil
	case json.Number:
		return NewNumber(x.String(), nil), nil
	case int:
		return NumberFromInt(int64(x), nil), nil
	case int8:
		return NumberFromInt(int64(x), nil), nil
	case int16:
		return NumberFromInt(int64(x), nil), nil
	case int32:
		return NumberFromInt(int64(x), nil), nil
	case int64:
		return NumberFromInt(x, nil), nil
	case uint:
		return NewNumber(strconv.FormatUint(uint64(x), 10), nil), nil
	case uint8:
		return NumberFromInt(int64(x), nil), nil
	case uint16:
		return NumberFromInt(int64(x), nil), nil
	case uint32:
		return NumberFromInt(int64(x), nil), nil
	case uint64:
		return NewNumber(strconv.FormatUint(x, 10), nil), nil
	case float32:
		return NumberFromFloat(float64(x), nil), nil
	case float64:
		return NumberFromFloat(x, nil), nil
	case []any:
		elems, err := fromNativeSlice(x)
		if err != nil {
			return nil, err
		}
		return NewArray(nil, elems...), nil
	case []string:
		elems := make([]Term, len(x))
		for i, s := range x {
			elems[i] = NewString(s, nil)
		}
		return NewArray(nil, elems...), nil
	case NativeSet:
		elems, err := fromNativeSlice(x)
		if err != nil {
			return nil, err
		}
		return NewSet(nil, elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		items := make([]ObjectItem, 0, len(keys))
		for _, k := range keys {
			value, err := FromNative(x[k])
			if err != nil {
				return nil, err
			}
			items = append(items, Item(NewString(k, nil), value))
		}
		return NewObject(nil, items...), nil
	default:
		return nil, typeErrorf(nil, "unexpected value: %v (%T)", v, v)
	}
}

func fromNativeSlice(values []any) ([]Term, error) {
	elems := make([]Term, len(values))
	for i, e := range values {
		t, err := FromNative(e)
		if err != nil {
			return nil, err
		}
		elems[i] = t
	}
	return elems, nil
}
