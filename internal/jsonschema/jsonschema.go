package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Schema is the subset of JSON Schema needed to describe the shape of a
// structured response.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	Ref                  string             `json:"$ref,omitempty"`
	Defs                 map[string]*Schema `json:"$defs,omitempty"`
}

// JSON returns the compact encoding of the schema.
func (s *Schema) JSON() ([]byte, error) {
	return json.Marshal(s)
}

var timeType = reflect.TypeFor[time.Time]()

// For derives the schema of T from its json and jsonschema struct tags.
//
// A field is required unless it is a pointer or tagged omitempty; the tag
// `jsonschema:"required"` forces it. Other jsonschema tag entries are
// description=... and repeated enum=... values. A struct type that refers back
// to itself is emitted once under $defs and referenced elsewhere.
func For[T any]() (*Schema, error) {
	root := reflect.TypeFor[T]()
	for root.Kind() == reflect.Pointer {
		root = root.Elem()
	}

	g := &generator{
		root:     root,
		building: map[reflect.Type]bool{},
		cyclic:   map[reflect.Type]bool{},
		defs:     map[string]*Schema{},
	}
	schema, err := g.schemaOf(root)
	if err != nil {
		return nil, err
	}
	if len(g.defs) > 0 {
		schema.Defs = g.defs
	}
	return schema, nil
}

type generator struct {
	root     reflect.Type
	building map[reflect.Type]bool
	cyclic   map[reflect.Type]bool
	defs     map[string]*Schema
}

func (g *generator) schemaOf(t reflect.Type) (*Schema, error) {
	if t == timeType {
		return &Schema{Type: "string", Format: "date-time"}, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		return g.schemaOf(t.Elem())
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			// encoding/json writes byte slices as base64 strings
			return &Schema{Type: "string"}, nil
		}
		items, err := g.schemaOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		values, err := g.schemaOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Struct:
		return g.structSchema(t)
	default:
		// interfaces and anything encoding/json decodes loosely
		return &Schema{}, nil
	}
}

func (g *generator) structSchema(t reflect.Type) (*Schema, error) {
	if g.building[t] {
		g.cyclic[t] = true
		return &Schema{Ref: g.refTo(t)}, nil
	}
	g.building[t] = true
	defer delete(g.building, t)

	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fieldSchema, err := g.schemaOf(field.Type)
		if err != nil {
			return nil, err
		}
		forced, err := applyTag(field, fieldSchema)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name(), field.Name, err)
		}

		schema.Properties[name] = fieldSchema
		if forced || (field.Type.Kind() != reflect.Pointer && !omitEmpty) {
			schema.Required = append(schema.Required, name)
		}
	}

	if g.cyclic[t] && t != g.root {
		g.defs[defName(t)] = schema
		return &Schema{Ref: g.refTo(t)}, nil
	}
	return schema, nil
}

func (g *generator) refTo(t reflect.Type) string {
	if t == g.root {
		return "#"
	}
	return "#/$defs/" + defName(t)
}

func defName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return strings.ReplaceAll(t.String(), ".", "_")
}

// jsonName reports the property name encoding/json would use for field.
func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty") || strings.Contains(opts, "omitzero"), false
}

// applyTag copies the jsonschema tag of field into schema and reports whether
// the field was explicitly marked required.
func applyTag(field reflect.StructField, schema *Schema) (bool, error) {
	tag := field.Tag.Get("jsonschema")
	if tag == "" || schema.Ref != "" {
		return tag == "required", nil
	}

	required := false
	for _, entry := range strings.Split(tag, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(entry), "=")
		switch key {
		case "required":
			required = true
		case "description":
			schema.Description = value
		case "enum":
			v, err := enumValue(field.Type, value)
			if err != nil {
				return false, err
			}
			schema.Enum = append(schema.Enum, v)
		case "":
		default:
			return false, fmt.Errorf("unknown jsonschema tag entry %q", key)
		}
	}
	return required, nil
}

func enumValue(t reflect.Type, raw string) (any, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("enum value %q is not an integer", raw)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("enum value %q is not a number", raw)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("enum value %q is not a boolean", raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}
