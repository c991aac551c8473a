package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/providers/ai"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, config ai.ResolvedConfig) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.BaseURL = server.URL
	p, err := New("AIza-test", config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p.(*GeminiProvider)
}

func decodeRequest(t *testing.T, r *http.Request) generateContentRequest {
	t.Helper()
	var body generateContentRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func writeParts(w http.ResponseWriter, parts ...part) {
	_ = json.NewEncoder(w).Encode(generateContentResponse{
		Candidates: []candidate{{
			Content:      content{Role: "model", Parts: parts},
			FinishReason: "STOP",
		}},
		UsageMetadata: &usageMetadata{PromptTokenCount: 5, CandidatesTokenCount: 2, TotalTokenCount: 7},
		ModelVersion:  "gemini-2.5-flash",
		ResponseID:    "resp-1",
	})
}

func TestChat(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "AIza-test", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		body := decodeRequest(t, r)
		require.NotNil(t, body.SystemInstruction)
		assert.Equal(t, "be brief", body.SystemInstruction.Parts[0].Text)
		require.Len(t, body.Contents, 2)
		assert.Equal(t, "user", body.Contents[0].Role)
		assert.Equal(t, "model", body.Contents[1].Role)
		require.NotNil(t, body.GenerationConfig)
		assert.Equal(t, 100, *body.GenerationConfig.MaxOutputTokens)

		writeParts(w, part{Text: "thinking...", Thought: true}, part{Text: "Hi there"})
	}, ai.ResolvedConfig{ChatModel: "gemini-2.5-flash", MaxTokens: 100})

	resp, err := p.Chat(context.Background(), ai.ChatRequest{
		SystemPrompt: "be brief",
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: "hello"},
			{Role: ai.RoleAssistant, Content: "hey"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", resp.Content)
	assert.Equal(t, "resp-1", resp.Id)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
}

func TestGenerateContent_NoGenerationConfig(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeRequest(t, r)
		assert.Nil(t, body.GenerationConfig)
		assert.Nil(t, body.SystemInstruction)
		writeParts(w, part{Text: "done"})
	}, ai.ResolvedConfig{ContentModel: "gemini-2.0-flash"})

	resp, err := p.GenerateContent(context.Background(), ai.ContentRequest{Prompt: "go"})
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Content)
}

func TestGenerateContent_Blocked(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	}, ai.ResolvedConfig{ContentModel: "gemini-2.0-flash"})

	_, err := p.GenerateContent(context.Background(), ai.ContentRequest{Prompt: "go"})
	kind, _ := aierr.KindOf(err)
	assert.Equal(t, aierr.GenericProviderError, kind)
	assert.Contains(t, err.Error(), "prompt blocked: SAFETY")
}

func TestGenerateStructuredContent(t *testing.T) {
	schema := []byte(`{"type":"object","properties":{"n":{"type":"integer"}}}`)

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeRequest(t, r)
		require.NotNil(t, body.GenerationConfig)
		assert.Equal(t, "application/json", body.GenerationConfig.ResponseMimeType)
		assert.JSONEq(t, string(schema), string(body.GenerationConfig.ResponseJSONSchema))
		writeParts(w, part{Text: `{"n": 3}`})
	}, ai.ResolvedConfig{ContentModel: "gemini-2.5-flash"})

	resp, err := p.GenerateStructuredContent(context.Background(), ai.StructuredRequest{Prompt: "count", Schema: schema})
	require.NoError(t, err)
	n, ok := resp.Object.Get("n")
	require.True(t, ok)
	assert.Equal(t, 3.0, n)
}

func TestGenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		body := decodeRequest(t, r)
		assert.Equal(t, []string{"TEXT", "IMAGE"}, body.GenerationConfig.ResponseModalities)
		writeParts(w,
			part{Text: "Here is your image"},
			part{InlineData: &inlineData{MimeType: "image/png", Data: base64.StdEncoding.EncodeToString(png)}},
		)
	}, ai.ResolvedConfig{ImageModel: "gemini-2.5-flash-image"})

	img, err := p.GenerateImage(context.Background(), ai.ImageRequest{Prompt: "a cat"})
	require.NoError(t, err)
	assert.Equal(t, png, img.Data)
	assert.Equal(t, "image/png", img.MimeType)
}

func TestGenerateImage_TextOnly(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeParts(w, part{Text: "I can't draw that"})
	}, ai.ResolvedConfig{ImageModel: "gemini-2.5-flash-image"})

	_, err := p.GenerateImage(context.Background(), ai.ImageRequest{Prompt: "x"})
	kind, ok := aierr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, aierr.GenericProviderError, kind)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   aierr.Kind
	}{
		{"bad key", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`, aierr.GenericProviderError},
		{"api disabled", http.StatusForbidden, `{"error":{"code":403,"message":"Generative Language API has not been used in project 1 before or it is disabled.","status":"PERMISSION_DENIED"}}`, aierr.ServiceInactive},
		{"exhausted", http.StatusTooManyRequests, `{"error":{"code":429,"message":"You exceeded your current quota","status":"RESOURCE_EXHAUSTED"}}`, aierr.QuotaExceeded},
		{"unknown model", http.StatusNotFound, `{"error":{"code":404,"message":"models/gemini-9 is not found for API version v1beta","status":"NOT_FOUND"}}`, aierr.ModelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, ai.ResolvedConfig{ContentModel: "gemini-2.5-flash"})

			_, err := p.GenerateContent(context.Background(), ai.ContentRequest{Prompt: "x"})
			kind, ok := aierr.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestValidateCredential(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"message":"Permission denied"}}`)
	}, ai.ResolvedConfig{})

	status, err := p.ValidateCredential(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ai.CredentialInvalid, status)
}
