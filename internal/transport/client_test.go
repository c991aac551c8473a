package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/providers/ai"
)

func TestBaseURL(t *testing.T) {
	const envKey = "AIBRIDGE_TEST_BASE_URL"

	t.Setenv(envKey, "")
	assert.Equal(t, "https://api.example.com/v1", BaseURL(ai.ResolvedConfig{}, envKey, "https://api.example.com/v1/"))

	t.Setenv(envKey, "http://proxy.local/")
	assert.Equal(t, "http://proxy.local", BaseURL(ai.ResolvedConfig{}, envKey, "https://api.example.com/v1"))

	cfg := ai.ResolvedConfig{BaseURL: "http://localhost:9000/"}
	assert.Equal(t, "http://localhost:9000", BaseURL(cfg, envKey, "https://api.example.com/v1"))
}

func TestRequireModel(t *testing.T) {
	assert.NoError(t, RequireModel("openai", ai.OpChat, "gpt-4o"))

	err := RequireModel("elevenlabs", ai.OpTextToSpeech, "")
	kind, ok := aierr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, aierr.ModelNotFound, kind)
	assert.Contains(t, err.Error(), "no audio model configured")
}

func TestStructuredInstruction(t *testing.T) {
	plain := StructuredInstruction("", nil)
	assert.Equal(t, "Respond with a single JSON object and nothing else.", plain)

	withSchema := StructuredInstruction("You are terse.", []byte(`{"type":"object"}`))
	assert.True(t, len(withSchema) > len(plain))
	assert.Contains(t, withSchema, "You are terse.\n\n")
	assert.Contains(t, withSchema, `{"type":"object"}`)
}

func TestNewHTTPClient(t *testing.T) {
	a := NewHTTPClient(time.Second)
	b := NewHTTPClient(time.Second)

	assert.Equal(t, time.Second, a.Timeout)
	assert.NotSame(t, a.Transport, b.Transport)

	CloseClient(a)
	CloseClient(a)
	CloseClient(nil)
}
