package jsonschema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type review struct {
	Product  string         `json:"product" jsonschema:"description=Name of the product"`
	Rating   int            `json:"rating" jsonschema:"enum=1,enum=2,enum=3,enum=4,enum=5"`
	Score    float64        `json:"score,omitempty"`
	Verified *bool          `json:"verified"`
	Tags     []string       `json:"tags,omitempty" jsonschema:"required"`
	Meta     map[string]int `json:"meta,omitempty"`
	Posted   time.Time      `json:"posted"`
	Raw      []byte         `json:"raw,omitempty"`
	Extra    any            `json:"extra,omitempty"`
	Ignored  string         `json:"-"`
	internal string
	Mood     string           `json:"mood" jsonschema:"enum=happy,enum=sad"`
	Nested   struct{ A bool } `json:"nested"`
}

func TestFor_Struct(t *testing.T) {
	s, err := For[review]()
	require.NoError(t, err)

	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"product", "rating", "tags", "posted", "mood", "nested"}, s.Required)
	assert.NotContains(t, s.Properties, "Ignored")
	assert.NotContains(t, s.Properties, "internal")

	assert.Equal(t, "Name of the product", s.Properties["product"].Description)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4), int64(5)}, s.Properties["rating"].Enum)
	assert.Equal(t, []any{"happy", "sad"}, s.Properties["mood"].Enum)
	assert.Equal(t, "number", s.Properties["score"].Type)
	assert.Equal(t, "boolean", s.Properties["verified"].Type)
	assert.Equal(t, "string", s.Properties["tags"].Items.Type)
	assert.Equal(t, "integer", s.Properties["meta"].AdditionalProperties.Type)
	assert.Equal(t, "date-time", s.Properties["posted"].Format)
	assert.Equal(t, "string", s.Properties["raw"].Type)
	assert.Empty(t, s.Properties["extra"].Type)
	assert.Equal(t, []string{"A"}, s.Properties["nested"].Required)
	assert.Nil(t, s.Defs)
}

func TestFor_Primitives(t *testing.T) {
	s, err := For[[]int]()
	require.NoError(t, err)
	assert.Equal(t, "array", s.Type)
	assert.Equal(t, "integer", s.Items.Type)

	p, err := For[*string]()
	require.NoError(t, err)
	assert.Equal(t, "string", p.Type)
}

type node struct {
	Value    string  `json:"value"`
	Children []*node `json:"children,omitempty"`
}

type tree struct {
	Root  category `json:"root"`
	Label string   `json:"label"`
}

type category struct {
	Name string     `json:"name"`
	Subs []category `json:"subs,omitempty"`
}

func TestFor_RecursiveRoot(t *testing.T) {
	s, err := For[node]()
	require.NoError(t, err)
	assert.Equal(t, "#", s.Properties["children"].Items.Ref)
	assert.Nil(t, s.Defs)
}

func TestFor_RecursiveNested(t *testing.T) {
	s, err := For[tree]()
	require.NoError(t, err)

	assert.Equal(t, "#/$defs/category", s.Properties["root"].Ref)
	require.Contains(t, s.Defs, "category")
	assert.Equal(t, "#/$defs/category", s.Defs["category"].Properties["subs"].Items.Ref)
}

func TestFor_TagErrors(t *testing.T) {
	type badEnum struct {
		N int `json:"n" jsonschema:"enum=one"`
	}
	_, err := For[badEnum]()
	assert.ErrorContains(t, err, `"one" is not an integer`)

	type badKey struct {
		S string `json:"s" jsonschema:"minLength=3"`
	}
	_, err = For[badKey]()
	assert.ErrorContains(t, err, "minLength")
}

func TestSchema_JSON(t *testing.T) {
	s, err := For[node]()
	require.NoError(t, err)

	data, err := s.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "object", decoded["type"])
	assert.Equal(t, []any{"value"}, decoded["required"])
}
