package openrouter

import (
	"context"
	"os"
	"time"

	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/internal/transport"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/ai/openai"
)

const (
	// ID is the provider identifier OpenRouter is registered under.
	ID = "openrouter"

	defaultBaseURL = "https://openrouter.ai/api/v1"
	keyEndpoint    = "/key"
	defaultTitle   = "aibridge"

	validateTimeout = 10 * time.Second
)

// Descriptor returns the capabilities of OpenRouter. Its catalog spans
// hundreds of upstream models and changes constantly, so every modality is
// dynamic and no default is declared: the caller must resolve a model.
func Descriptor() capability.Descriptor {
	return capability.Descriptor{
		ID: ID,
		Models: map[ai.Modality]capability.ModelList{
			ai.ModalityChat:    capability.Dynamic(),
			ai.ModalityContent: capability.Dynamic(),
		},
		Constructor: New,
	}
}

// OpenRouterProvider routes chat, content and structured generation through
// OpenRouter's OpenAI-compatible endpoint.
type OpenRouterProvider struct {
	*openai.Compatible
}

// New builds an OpenRouter adapter. OPENROUTER_API_BASE_URL overrides the
// endpoint; OPENROUTER_HTTP_REFERER and OPENROUTER_APP_TITLE set the
// attribution headers OpenRouter uses for app rankings.
func New(credential string, config ai.ResolvedConfig) (ai.Provider, error) {
	if credential == "" {
		return nil, ai.ErrMissingCredential
	}

	headers := []utils.HeaderOption{{Key: "X-Title", Value: envOr("OPENROUTER_APP_TITLE", defaultTitle)}}
	if referer := os.Getenv("OPENROUTER_HTTP_REFERER"); referer != "" {
		headers = append(headers, utils.HeaderOption{Key: "HTTP-Referer", Value: referer})
	}

	baseURL := transport.BaseURL(config, "OPENROUTER_API_BASE_URL", defaultBaseURL)
	return &OpenRouterProvider{Compatible: openai.NewCompatible(ID, credential, baseURL, config, headers...)}, nil
}

// ValidateCredential asks OpenRouter about the key itself.
func (p *OpenRouterProvider) ValidateCredential(ctx context.Context) (ai.CredentialStatus, error) {
	return transport.ValidateCredential(ctx, ID, validateTimeout, func(ctx context.Context) error {
		return p.CheckEndpoint(ctx, keyEndpoint)
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	_ ai.Chatter             = (*OpenRouterProvider)(nil)
	_ ai.ContentGenerator    = (*OpenRouterProvider)(nil)
	_ ai.StructuredGenerator = (*OpenRouterProvider)(nil)
	_ ai.CredentialValidator = (*OpenRouterProvider)(nil)
)
