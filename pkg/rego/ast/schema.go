package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema is the subset of JSON Schema used to derive default values for
// policy inputs and configuration.
type Schema struct {
	Type        string
	Default     any
	Items       *Schema
	UniqueItems bool

	// Properties keeps the declaration order of the schema document.
	Properties []SchemaProperty

	// AdditionalProperties is set only when the keyword holds a schema.
	AdditionalProperties *Schema

	// Order is the "hint:order" extension: property names to emit first.
	Order []string

	Enum []any
}

// SchemaProperty is one named property of an object schema.
type SchemaProperty struct {
	Name   string
	Schema *Schema
}

type schemaJSON struct {
	Type                 string          `json:"type"`
	Default              any             `json:"default"`
	Items                *Schema         `json:"items"`
	UniqueItems          bool            `json:"uniqueItems"`
	Properties           json.RawMessage `json:"properties"`
	AdditionalProperties json.RawMessage `json:"additionalProperties"`
	Order                []string        `json:"hint:order"`
	Enum                 []any           `json:"enum"`
}

// UnmarshalJSON decodes a schema, preserving property order.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var aux schemaJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&aux); err != nil {
		return err
	}

	*s = Schema{
		Type:        aux.Type,
		Default:     aux.Default,
		Items:       aux.Items,
		UniqueItems: aux.UniqueItems,
		Order:       aux.Order,
		Enum:        aux.Enum,
	}

	if len(aux.Properties) > 0 {
		props, err := decodeOrderedProperties(aux.Properties)
		if err != nil {
			return fmt.Errorf("properties: %w", err)
		}
		s.Properties = props
	}

	if raw := bytes.TrimSpace(aux.AdditionalProperties); len(raw) > 0 && raw[0] == '{' {
		var additional Schema
		if err := json.Unmarshal(raw, &additional); err != nil {
			return fmt.Errorf("additionalProperties: %w", err)
		}
		s.AdditionalProperties = &additional
	}

	return nil
}

func decodeOrderedProperties(data []byte) ([]SchemaProperty, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an object")
	}

	var props []SchemaProperty
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a property name")
		}
		var prop Schema
		if err := dec.Decode(&prop); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		props = append(props, SchemaProperty{Name: name, Schema: &prop})
	}
	return props, nil
}

// UnmarshalYAML decodes a schema from YAML, preserving property order.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: schema must be a mapping", node.Line)
	}

	*s = Schema{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]

		var err error
		switch key {
		case "type":
			err = value.Decode(&s.Type)
		case "default":
			err = value.Decode(&s.Default)
		case "items":
			s.Items = &Schema{}
			err = value.Decode(s.Items)
		case "uniqueItems":
			err = value.Decode(&s.UniqueItems)
		case "properties":
			s.Properties, err = decodeYAMLProperties(value)
		case "additionalProperties":
			if value.Kind == yaml.MappingNode {
				s.AdditionalProperties = &Schema{}
				err = value.Decode(s.AdditionalProperties)
			}
		case "hint:order":
			err = value.Decode(&s.Order)
		case "enum":
			err = value.Decode(&s.Enum)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func decodeYAMLProperties(node *yaml.Node) ([]SchemaProperty, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	props := make([]SchemaProperty, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var prop Schema
		if err := node.Content[i+1].Decode(&prop); err != nil {
			return nil, err
		}
		props = append(props, SchemaProperty{Name: node.Content[i].Value, Schema: &prop})
	}
	return props, nil
}

// FromJSONSchema builds a value of the shape described by schema. value takes
// precedence over the schema's default. When isValueJSON is true, sets are
// given as JSON arrays.
func FromJSONSchema(schema *Schema, value any, isValueJSON bool) (Term, error) {
	if schema == nil {
		return nil, typeErrorf(nil, "schema is required")
	}

	v := value
	if v == nil {
		v = schema.Default
	}

	switch schema.Type {
	case "array":
		var elems []any
		switch x := v.(type) {
		case nil:
		case []any:
			elems = x
		case NativeSet:
			if isValueJSON {
				return nil, typeErrorf(nil, "unexpected set in JSON value")
			}
			elems = x
		default:
			return nil, typeErrorf(nil, "expected an array, got %T", v)
		}

		terms := make([]Term, 0, len(elems))
		for _, e := range elems {
			t, err := fromItemSchema(schema.Items, e, isValueJSON)
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		}
		if schema.UniqueItems {
			return NewSet(nil, terms...), nil
		}
		return NewArray(nil, terms...), nil

	case "boolean":
		return NewBoolean(truthy(v), nil), nil

	case "null":
		return NewNull(nil), nil

	case "number":
		if n, ok := toNumber(v); ok {
			return NewNumber(n, nil), nil
		}
		return NumberFromInt(0, nil), nil

	case "object":
		obj, _ := v.(map[string]any)

		if len(schema.Properties) > 0 {
			props := orderProperties(schema.Properties, schema.Order)
			items := make([]ObjectItem, 0, len(props))
			for _, p := range props {
				var pv any
				if obj != nil {
					pv = obj[p.Name]
				}
				t, err := FromJSONSchema(p.Schema, pv, isValueJSON)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", p.Name, err)
				}
				items = append(items, Item(NewString(p.Name, nil), t))
			}
			return NewObject(nil, items...), nil
		}

		if schema.AdditionalProperties != nil {
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			items := make([]ObjectItem, 0, len(keys))
			for _, k := range keys {
				t, err := FromJSONSchema(schema.AdditionalProperties, obj[k], isValueJSON)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", k, err)
				}
				items = append(items, Item(NewString(k, nil), t))
			}
			return NewObject(nil, items...), nil
		}

		return NewObject(nil), nil

	case "string":
		if truthy(v) {
			return NewString(toText(v), nil), nil
		}
		return NewString("", nil), nil

	default:
		if len(schema.Enum) > 0 {
			return FromNative(schema.Enum[0])
		}
		return nil, typeErrorf(nil, "unexpected type in schema: %q", schema.Type)
	}
}

func fromItemSchema(items *Schema, v any, isValueJSON bool) (Term, error) {
	if items == nil {
		return FromNative(v)
	}
	return FromJSONSchema(items, v, isValueJSON)
}

// orderProperties moves the properties named in order to the front, in the
// order given, and keeps the rest in declaration order.
func orderProperties(props []SchemaProperty, order []string) []SchemaProperty {
	out := append([]SchemaProperty(nil), props...)
	if len(order) == 0 {
		return out
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Name]
		rj, jok := rank[out[j].Name]
		switch {
		case iok && jok:
			return ri < rj
		default:
			return iok && !jok
		}
	})
	return out
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

func toNumber(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case json.Number:
		return x.String(), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		return formatFloat(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		if x {
			return "1", true
		}
		return "0", true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return "0", true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			return "", false
		}
		return formatFloat(f), true
	default:
		return "", false
	}
}

func toText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return formatFloat(x)
	default:
		return fmt.Sprint(v)
	}
}
