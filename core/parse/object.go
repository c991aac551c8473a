package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxExactInt is the largest integer magnitude float64 represents exactly.
const maxExactInt = 1 << 53

// ErrNotObject is returned by [ParseObject] when the input is valid JSON whose
// top-level value is an array or a scalar.
var ErrNotObject = errors.New("json value is not an object")

// Object is a JSON object that remembers the order its keys appeared in.
// Nested objects are *Object, arrays are []any, and strings, booleans and null
// map to string, bool and nil. Numbers are float64 when float64 holds them
// exactly; integers beyond 2^53 and literals outside the float64 range are
// kept verbatim as json.Number.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores value under key. A key that already exists keeps its position.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// ToMap converts the object, recursively, into plain maps and slices.
func (o *Object) ToMap() map[string]any {
	if o == nil {
		return nil
	}
	m := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		m[k] = plain(o.values[k])
	}
	return m
}

func plain(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the object with its keys in document order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshaling key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := parseObjectBytes(data)
	if err != nil {
		return err
	}
	*o = *parsed
	return nil
}

// ParseObject parses s as exactly one JSON object. Leading and trailing
// whitespace is allowed; anything else around the object is an error.
func ParseObject(s string) (*Object, error) {
	return parseObjectBytes([]byte(s))
}

func parseObjectBytes(data []byte) (*Object, error) {
	// json.Valid bounds nesting depth, so the recursive walk below cannot run away.
	if !json.Valid(data) {
		return nil, errors.New("invalid json")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	obj, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}
	return obj, nil
}

// decodeObject reads key/value pairs up to the closing brace; the opening
// brace has already been consumed.
func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		return numberValue(t), nil
	default:
		return t, nil
	}
}

func numberValue(n json.Number) any {
	f, err := n.Float64()
	if err != nil {
		return n
	}
	if strings.ContainsAny(n.String(), ".eE") {
		return f
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || i > maxExactInt || i < -maxExactInt {
		return n
	}
	return f
}
