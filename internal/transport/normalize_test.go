package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   aierr.Kind
		wantStatus int
	}{
		{
			name:       "unauthorized",
			err:        &utils.HTTPStatusError{StatusCode: 401, Body: []byte(`{"error":{"message":"bad key"}}`)},
			wantKind:   aierr.CredentialInvalid,
			wantStatus: 401,
		},
		{
			name:       "quota",
			err:        &utils.HTTPStatusError{StatusCode: 429, Body: []byte(`{"error":{"message":"You exceeded your current quota"}}`)},
			wantKind:   aierr.QuotaExceeded,
			wantStatus: 429,
		},
		{
			name:       "5xx falls back to service unavailable",
			err:        fmt.Errorf("wrapped: %w", &utils.HTTPStatusError{StatusCode: 502, Body: []byte("bad gateway")}),
			wantKind:   aierr.ServiceUnavailable,
			wantStatus: 502,
		},
		{
			name:       "unclassified 4xx keeps the fallback",
			err:        &utils.HTTPStatusError{StatusCode: 422, Body: []byte(`{"message":"messages must not be empty"}`)},
			wantKind:   aierr.GenericProviderError,
			wantStatus: 422,
		},
		{
			name:     "deadline",
			err:      fmt.Errorf("error sending request: %w", context.DeadlineExceeded),
			wantKind: aierr.Timeout,
		},
		{
			name:     "connection refused",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantKind: aierr.Unreachable,
		},
		{
			name:     "decode failure",
			err:      errors.New("error unmarshaling response"),
			wantKind: aierr.GenericProviderError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Normalize("openai", ai.OpChat, tt.err, aierr.GenericProviderError)

			var normalized *aierr.Error
			require.ErrorAs(t, err, &normalized)
			assert.Equal(t, tt.wantKind, normalized.Kind)
			assert.Equal(t, tt.wantStatus, normalized.StatusCode)
			assert.Equal(t, "openai", normalized.Provider)
			assert.Equal(t, string(ai.OpChat), normalized.Op)
		})
	}
}

func TestNormalize_Passthrough(t *testing.T) {
	assert.NoError(t, Normalize("openai", ai.OpChat, nil, aierr.GenericProviderError))

	already := aierr.New(aierr.RateLimited, "gemini", "chat", "slow down")
	assert.Same(t, already, Normalize("openai", ai.OpChat, already, aierr.GenericProviderError))

	unsupported := &ai.UnsupportedError{Op: ai.OpTextToSpeech, Provider: "anthropic"}
	got := Normalize("anthropic", ai.OpTextToSpeech, unsupported, aierr.GenericProviderError)
	assert.ErrorIs(t, got, ai.ErrCapabilityUnsupported)
}

// TestNormalize_ExplicitFallbackKept verifies only the generic fallback is promoted for 5xx.
func TestNormalize_ExplicitFallbackKept(t *testing.T) {
	err := Normalize("openai", ai.OpChat, &utils.HTTPStatusError{StatusCode: 500}, aierr.Timeout)
	kind, ok := aierr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, aierr.Timeout, kind)
}

func TestExtractStructured(t *testing.T) {
	obj, err := ExtractStructured("openai", "Sure! ```json\n{\"city\": \"Rome\"}\n```")
	require.NoError(t, err)
	city, ok := obj.Get("city")
	require.True(t, ok)
	assert.Equal(t, "Rome", city)

	_, err = ExtractStructured("openai", "I cannot answer that.")
	kind, ok := aierr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, aierr.InvalidStructuredOutput, kind)
	assert.Contains(t, err.Error(), "I cannot answer that.")
}
