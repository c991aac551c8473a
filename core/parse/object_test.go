package parse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_SetGet(t *testing.T) {
	obj := NewObject()
	obj.Set("b", 1)
	obj.Set("a", "x")
	obj.Set("b", 2)

	assert.Equal(t, []string{"b", "a"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())

	v, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = obj.Get("missing")
	assert.False(t, ok)

	keys := obj.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"b", "a"}, obj.Keys())
}

// TestObject_MarshalJSON verifies keys are written in insertion order, nested objects included.
func TestObject_MarshalJSON(t *testing.T) {
	inner := NewObject()
	inner.Set("z", true)
	inner.Set("a", nil)

	obj := NewObject()
	obj.Set("second", 2.5)
	obj.Set("first", []any{inner, "s"})

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"second":2.5,"first":[{"z":true,"a":null},"s"]}`, string(data))

	var nilObj *Object
	data, err = json.Marshal(nilObj)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestObject_UnmarshalJSON(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"k2": [1, {"n": "v"}], "k1": false}`), &obj))
	assert.Equal(t, []string{"k2", "k1"}, obj.Keys())
	assert.Equal(t, map[string]any{
		"k2": []any{1.0, map[string]any{"n": "v"}},
		"k1": false,
	}, obj.ToMap())

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &obj))
}

func TestParseObject(t *testing.T) {
	obj, err := ParseObject("  {\"a\": 1}\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, obj.ToMap())

	_, err = ParseObject(`[1, 2]`)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = ParseObject(`{"a": 1} {"b": 2}`)
	assert.Error(t, err)

	_, err = ParseObject(`{"a": }`)
	assert.Error(t, err)

	empty, err := ParseObject(`{}`)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}
