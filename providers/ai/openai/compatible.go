package openai

import (
	"context"
	"net/http"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/internal/transport"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/observability"
)

const chatCompletionsEndpoint = "/chat/completions"

// Compatible implements chat, content and structured generation against any
// vendor speaking the OpenAI chat completions protocol with Bearer auth.
// Vendors embed it and add their own remaining operations.
type Compatible struct {
	id      string
	apiKey  string
	baseURL string
	headers []utils.HeaderOption
	config  ai.ResolvedConfig
	client  *http.Client
}

// NewCompatible builds the shared chat client. headers are sent on every request.
func NewCompatible(id, apiKey, baseURL string, config ai.ResolvedConfig, headers ...utils.HeaderOption) *Compatible {
	return &Compatible{
		id:      id,
		apiKey:  apiKey,
		baseURL: baseURL,
		headers: headers,
		config:  config,
		client:  transport.NewHTTPClient(requestTimeout),
	}
}

func (c *Compatible) ID() string {
	return c.id
}

// BaseURL returns the endpoint the client talks to.
func (c *Compatible) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections. Later calls open new ones.
func (c *Compatible) Close() error {
	transport.CloseClient(c.client)
	return nil
}

// Chat sends the conversation to /chat/completions.
func (c *Compatible) Chat(ctx context.Context, request ai.ChatRequest) (*ai.TextResponse, error) {
	model := c.config.PickModel(request.Model, ai.ModalityChat)
	body := buildChatRequest(model, request.SystemPrompt, request.Messages, c.config)
	return c.complete(ctx, ai.OpChat, body)
}

// GenerateContent sends a single user prompt.
func (c *Compatible) GenerateContent(ctx context.Context, request ai.ContentRequest) (*ai.TextResponse, error) {
	model := c.config.PickModel(request.Model, ai.ModalityContent)
	body := buildChatRequest(model, request.SystemPrompt,
		[]ai.Message{{Role: ai.RoleUser, Content: request.Prompt}}, c.config)
	return c.complete(ctx, ai.OpGenerateContent, body)
}

// GenerateStructuredContent requests JSON output and extracts the object from
// the answer text.
func (c *Compatible) GenerateStructuredContent(ctx context.Context, request ai.StructuredRequest) (*ai.StructuredResponse, error) {
	model := c.config.PickModel(request.Model, ai.ModalityContent)
	body := buildChatRequest(model, transport.StructuredInstruction(request.SystemPrompt, request.Schema),
		[]ai.Message{{Role: ai.RoleUser, Content: request.Prompt}}, c.config)
	body.ResponseFormat = responseFormatFor(request.Schema)

	resp, err := c.complete(ctx, ai.OpGenerateStructuredContent, body)
	if err != nil {
		return nil, err
	}

	obj, err := transport.ExtractStructured(c.id, resp.Content)
	if err != nil {
		return nil, err
	}
	return &ai.StructuredResponse{
		Model:  resp.Model,
		Object: obj,
		Raw:    resp.Content,
		Usage:  resp.Usage,
	}, nil
}

// CheckEndpoint GETs path and reports only whether the call succeeded. It is
// the probe behind credential validation.
func (c *Compatible) CheckEndpoint(ctx context.Context, path string) error {
	_, err := utils.DoGet(ctx, c.client, c.baseURL+path, c.apiKey, c.headers...)
	return err
}

func (c *Compatible) complete(ctx context.Context, op ai.Operation, body chatCompletionRequest) (*ai.TextResponse, error) {
	if err := transport.RequireModel(c.id, op, body.Model); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	ctx, call := transport.Start(ctx, c.id, op, body.Model)

	resp, err := utils.DoPostSync[chatCompletionResponse](ctx, c.client, c.baseURL+chatCompletionsEndpoint, c.apiKey, body, c.headers...)
	if err != nil {
		return nil, call.Finish(err)
	}
	if len(resp.Choices) == 0 {
		return nil, call.Finish(aierr.New(aierr.GenericProviderError, c.id, string(op), "response has no choices"))
	}

	out := textResponseFromChat(resp, body.Model)
	attrs := append(transport.UsageAttrs(out.Usage), observability.String(observability.AttrFinishReason, out.FinishReason))
	return out, call.Finish(nil, attrs...)
}
