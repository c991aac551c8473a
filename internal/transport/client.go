package transport

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/providers/ai"
)

// NewHTTPClient returns a client with its own connection pool, so closing one
// adapter never drops the idle connections of another.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

// CloseClient releases the idle connections held by client. It is safe to call repeatedly.
func CloseClient(client *http.Client) {
	if client != nil {
		client.CloseIdleConnections()
	}
}

// BaseURL resolves the vendor endpoint: the resolved config wins, then the
// environment variable envKey, then fallback. Trailing slashes are removed.
func BaseURL(config ai.ResolvedConfig, envKey, fallback string) string {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv(envKey)
	}
	if baseURL == "" {
		baseURL = fallback
	}
	return strings.TrimRight(baseURL, "/")
}

// RequireModel fails when neither the request nor the config named a model.
func RequireModel(provider string, op ai.Operation, model string) error {
	if model != "" {
		return nil
	}
	return aierr.New(aierr.ModelNotFound, provider, string(op),
		fmt.Sprintf("no %s model configured", op.Modality()))
}

// StructuredInstruction is appended to the system prompt of structured calls.
// The schema, when given, is embedded verbatim.
func StructuredInstruction(systemPrompt string, schema []byte) string {
	instruction := "Respond with a single JSON object and nothing else."
	if len(schema) > 0 {
		instruction += " The object must conform to this JSON Schema:\n" + string(schema)
	}
	if systemPrompt == "" {
		return instruction
	}
	return systemPrompt + "\n\n" + instruction
}
