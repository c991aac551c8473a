package ai

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/core/parse"
)

type verdict struct {
	Label      string  `json:"label" jsonschema:"enum=spam,enum=ham"`
	Confidence float64 `json:"confidence"`
}

type cannedStructured struct {
	bareProvider
	answer string
	got    StructuredRequest
}

func (c *cannedStructured) GenerateStructuredContent(_ context.Context, request StructuredRequest) (*StructuredResponse, error) {
	c.got = request
	obj, ok := parse.ExtractObject(c.answer)
	if !ok {
		return nil, aierr.New(aierr.InvalidStructuredOutput, c.ID(), string(OpGenerateStructuredContent), "no object")
	}
	return &StructuredResponse{Model: "m", Object: obj, Raw: c.answer}, nil
}

func TestGenerateStructuredAs(t *testing.T) {
	p := &cannedStructured{answer: `{"label": "spam", "confidence": 0.93}`}

	v, raw, err := GenerateStructuredAs[verdict](context.Background(), p, StructuredRequest{Prompt: "classify"})
	require.NoError(t, err)
	assert.Equal(t, &verdict{Label: "spam", Confidence: 0.93}, v)
	assert.Equal(t, "m", raw.Model)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(p.got.Schema, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["properties"], "label")
}

// TestGenerateStructuredAs_KeepsSchema verifies a caller-supplied schema is sent unchanged.
func TestGenerateStructuredAs_KeepsSchema(t *testing.T) {
	p := &cannedStructured{answer: `{"label": "ham", "confidence": 1}`}
	custom := []byte(`{"type":"object"}`)

	_, _, err := GenerateStructuredAs[verdict](context.Background(), p, StructuredRequest{Schema: custom})
	require.NoError(t, err)
	assert.Equal(t, custom, p.got.Schema)
}

func TestGenerateStructuredAs_ShapeMismatch(t *testing.T) {
	p := &cannedStructured{answer: `{"label": ["not", "a", "string"]}`}

	v, raw, err := GenerateStructuredAs[verdict](context.Background(), p, StructuredRequest{})
	assert.Nil(t, v)
	require.NotNil(t, raw)
	kind, ok := aierr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, aierr.InvalidStructuredOutput, kind)
}

func TestGenerateStructuredAs_Unsupported(t *testing.T) {
	_, _, err := GenerateStructuredAs[verdict](context.Background(), bareProvider{}, StructuredRequest{})
	assert.ErrorIs(t, err, ErrCapabilityUnsupported)
}
