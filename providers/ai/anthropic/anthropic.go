package anthropic

import (
	"context"
	"net/http"
	"time"

	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/internal/transport"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/observability"
)

const (
	// ID is the provider identifier Anthropic is registered under.
	ID = "anthropic"

	defaultBaseURL   = "https://api.anthropic.com/v1"
	messagesEndpoint = "/messages"
	modelsEndpoint   = "/models"

	// anthropicVersion pins the wire format of every response.
	anthropicVersion = "2023-06-01"

	defaultMaxTokens = 4096

	requestTimeout  = 120 * time.Second
	validateTimeout = 10 * time.Second
)

// Descriptor returns the capabilities and model catalog of Anthropic.
func Descriptor() capability.Descriptor {
	models := capability.Static("claude-sonnet-4-20250514", "claude-opus-4-20250514", "claude-3-5-haiku-20241022")
	return capability.Descriptor{
		ID: ID,
		Models: map[ai.Modality]capability.ModelList{
			ai.ModalityChat:    models,
			ai.ModalityContent: models,
		},
		Defaults: map[ai.Modality]string{
			ai.ModalityChat:    "claude-sonnet-4-20250514",
			ai.ModalityContent: "claude-3-5-haiku-20241022",
		},
		Constructor: New,
	}
}

// AnthropicProvider implements chat, content and structured generation over
// Anthropic's Messages API.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	config  ai.ResolvedConfig
	client  *http.Client
}

// New builds an Anthropic adapter. The endpoint comes from config.BaseURL,
// then ANTHROPIC_API_BASE_URL, then the public API.
func New(credential string, config ai.ResolvedConfig) (ai.Provider, error) {
	if credential == "" {
		return nil, ai.ErrMissingCredential
	}
	return &AnthropicProvider{
		apiKey:  credential,
		baseURL: transport.BaseURL(config, "ANTHROPIC_API_BASE_URL", defaultBaseURL),
		config:  config,
		client:  transport.NewHTTPClient(requestTimeout),
	}, nil
}

func (p *AnthropicProvider) ID() string {
	return ID
}

func (p *AnthropicProvider) Close() error {
	transport.CloseClient(p.client)
	return nil
}

// buildHeaders returns the auth and version headers. Anthropic does not use
// Bearer tokens.
func (p *AnthropicProvider) buildHeaders() []utils.HeaderOption {
	return []utils.HeaderOption{
		{Key: "x-api-key", Value: p.apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
}

func (p *AnthropicProvider) Chat(ctx context.Context, request ai.ChatRequest) (*ai.TextResponse, error) {
	model := p.config.PickModel(request.Model, ai.ModalityChat)
	return p.send(ctx, ai.OpChat, buildRequest(model, request.SystemPrompt, request.Messages, p.config))
}

func (p *AnthropicProvider) GenerateContent(ctx context.Context, request ai.ContentRequest) (*ai.TextResponse, error) {
	model := p.config.PickModel(request.Model, ai.ModalityContent)
	return p.send(ctx, ai.OpGenerateContent, buildRequest(model, request.SystemPrompt,
		[]ai.Message{{Role: ai.RoleUser, Content: request.Prompt}}, p.config))
}

// GenerateStructuredContent has no native JSON mode to lean on: the schema is
// described in the system prompt and the object is extracted from the text.
func (p *AnthropicProvider) GenerateStructuredContent(ctx context.Context, request ai.StructuredRequest) (*ai.StructuredResponse, error) {
	model := p.config.PickModel(request.Model, ai.ModalityContent)
	resp, err := p.send(ctx, ai.OpGenerateStructuredContent, buildRequest(model,
		transport.StructuredInstruction(request.SystemPrompt, request.Schema),
		[]ai.Message{{Role: ai.RoleUser, Content: request.Prompt}}, p.config))
	if err != nil {
		return nil, err
	}

	obj, err := transport.ExtractStructured(ID, resp.Content)
	if err != nil {
		return nil, err
	}
	return &ai.StructuredResponse{Model: resp.Model, Object: obj, Raw: resp.Content, Usage: resp.Usage}, nil
}

// ValidateCredential lists models with the credential.
func (p *AnthropicProvider) ValidateCredential(ctx context.Context) (ai.CredentialStatus, error) {
	return transport.ValidateCredential(ctx, ID, validateTimeout, func(ctx context.Context) error {
		_, err := utils.DoGet(ctx, p.client, p.baseURL+modelsEndpoint, "", p.buildHeaders()...)
		return err
	})
}

func (p *AnthropicProvider) send(ctx context.Context, op ai.Operation, body anthropicRequest) (*ai.TextResponse, error) {
	if err := transport.RequireModel(ID, op, body.Model); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	ctx, call := transport.Start(ctx, ID, op, body.Model)

	resp, err := utils.DoPostSync[anthropicResponse](ctx, p.client, p.baseURL+messagesEndpoint, "", body, p.buildHeaders()...)
	if err != nil {
		return nil, call.Finish(err)
	}

	out := textResponse(resp, body.Model)
	attrs := append(transport.UsageAttrs(out.Usage), observability.String(observability.AttrFinishReason, out.FinishReason))
	return out, call.Finish(nil, attrs...)
}

var (
	_ ai.Chatter             = (*AnthropicProvider)(nil)
	_ ai.ContentGenerator    = (*AnthropicProvider)(nil)
	_ ai.StructuredGenerator = (*AnthropicProvider)(nil)
	_ ai.CredentialValidator = (*AnthropicProvider)(nil)
)
