package openrouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/providers/ai"
)

func TestDescriptor_Dynamic(t *testing.T) {
	catalog, err := capability.NewCatalog(Descriptor())
	require.NoError(t, err)

	d := catalog.CapabilitiesOf(ID)
	assert.True(t, d.HasDynamicModels())
	assert.True(t, catalog.ModelsFor(ID, ai.ModalityChat).Dynamic)
	_, ok := catalog.DefaultModelFor(ID, ai.ModalityChat)
	assert.False(t, ok)
	assert.False(t, d.Supports(ai.ModalityImage))
}

func TestChat_Headers(t *testing.T) {
	t.Setenv("OPENROUTER_APP_TITLE", "")
	t.Setenv("OPENROUTER_HTTP_REFERER", "https://example.com/app")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		assert.Equal(t, defaultTitle, r.Header.Get("X-Title"))
		assert.Equal(t, "https://example.com/app", r.Header.Get("HTTP-Referer"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "meta-llama/llama-3.3-70b-instruct", body["model"])

		_, _ = io.WriteString(w, `{"id":"gen-1","model":"meta-llama/llama-3.3-70b-instruct",
			"choices":[{"index":0,"message":{"role":"assistant","content":"hey"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	p, err := New("or-key", ai.ResolvedConfig{BaseURL: server.URL, ChatModel: "meta-llama/llama-3.3-70b-instruct"})
	require.NoError(t, err)
	defer p.Close()

	resp, err := ai.Chat(context.Background(), p, ai.ChatRequest{Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "hey", resp.Content)
	assert.Nil(t, resp.Usage)
	assert.Equal(t, ID, p.ID())
}

// TestChat_RequiresModel verifies a dynamic provider refuses to guess a model.
func TestChat_RequiresModel(t *testing.T) {
	p, err := New("or-key", ai.ResolvedConfig{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = ai.Chat(context.Background(), p, ai.ChatRequest{})
	kind, ok := aierr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, aierr.ModelNotFound, kind)
}

func TestValidateCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/key", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"No auth credentials found","code":401}}`)
	}))
	defer server.Close()

	p, err := New("or-key", ai.ResolvedConfig{BaseURL: server.URL})
	require.NoError(t, err)

	status, err := ai.ValidateCredential(context.Background(), p)
	assert.NoError(t, err)
	assert.Equal(t, ai.CredentialInvalid, status)
}

func TestNew_MissingCredential(t *testing.T) {
	_, err := New("", ai.ResolvedConfig{})
	assert.ErrorIs(t, err, ai.ErrMissingCredential)
}
