package aierr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMessageFromBody covers the vendor body shapes, in attempt order, and
// the raw-text fallbacks.
func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"openai nested", `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, "Incorrect API key provided"},
		{"gemini nested", `{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`, "Quota exceeded"},
		{"error string", `{"error":"model not found"}`, "model not found"},
		{"nested wins over top message", `{"message":"outer","error":{"message":"inner"}}`, "inner"},
		{"top message", `{"message":"Too many requests"}`, "Too many requests"},
		{"detail nested", `{"detail":{"status":"quota_exceeded","message":"character limit reached"}}`, "character limit reached"},
		{"detail string", `{"detail":"Not authenticated"}`, "Not authenticated"},
		{"errors list", `{"errors":[{"message":"first"},{"message":"second"}]}`, "first"},
		{"error_description", `{"error_description":"token expired"}`, "token expired"},
		{"blank message skipped", `{"error":{"message":"  "},"message":"fallback"}`, "fallback"},
		{"truncated json repaired", `{"error": {"message": "API is disabled"`, "API is disabled"},
		{"plain text", "  upstream connect error  ", "upstream connect error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFromBody([]byte(tt.body)))
		})
	}
}

// TestMessageFromBody_HTML verifies gateway error pages are rendered to text.
func TestMessageFromBody_HTML(t *testing.T) {
	body := `<!DOCTYPE html><html><head><title>502</title></head><body><h1>502 Bad Gateway</h1><p>nginx</p></body></html>`
	got := MessageFromBody([]byte(body))
	assert.Contains(t, got, "502 Bad Gateway")
	assert.NotContains(t, got, "<h1>")
}

// TestMessageFromBody_Truncated verifies long raw bodies are capped on a rune boundary.
func TestMessageFromBody_Truncated(t *testing.T) {
	got := MessageFromBody([]byte(strings.Repeat("é", 400)))
	assert.LessOrEqual(t, len(got), maxDetailLength+len("..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.NotContains(t, got, "�")
}
