package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/internal/transport"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/observability"
)

const (
	// ID is the provider identifier Gemini is registered under.
	ID = "gemini"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	modelsEndpoint = "/models"

	requestTimeout  = 120 * time.Second
	validateTimeout = 10 * time.Second
)

// Descriptor returns the capabilities and model catalog of Gemini.
func Descriptor() capability.Descriptor {
	textModels := capability.Static("gemini-2.5-flash", "gemini-2.5-pro", "gemini-2.0-flash")
	return capability.Descriptor{
		ID: ID,
		Models: map[ai.Modality]capability.ModelList{
			ai.ModalityChat:    textModels,
			ai.ModalityContent: textModels,
			ai.ModalityImage:   capability.Static("gemini-2.5-flash-image", "gemini-2.0-flash-preview-image-generation"),
		},
		Defaults: map[ai.Modality]string{
			ai.ModalityChat:    "gemini-2.5-flash",
			ai.ModalityContent: "gemini-2.5-flash",
			ai.ModalityImage:   "gemini-2.5-flash-image",
		},
		Constructor: New,
	}
}

// GeminiProvider implements chat, content, structured and image generation
// over the Gemini generateContent API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	config  ai.ResolvedConfig
	client  *http.Client
}

// New builds a Gemini adapter. The endpoint comes from config.BaseURL, then
// GEMINI_API_BASE_URL, then the public API.
func New(credential string, config ai.ResolvedConfig) (ai.Provider, error) {
	if credential == "" {
		return nil, ai.ErrMissingCredential
	}
	return &GeminiProvider{
		apiKey:  credential,
		baseURL: transport.BaseURL(config, "GEMINI_API_BASE_URL", defaultBaseURL),
		config:  config,
		client:  transport.NewHTTPClient(requestTimeout),
	}, nil
}

func (p *GeminiProvider) ID() string {
	return ID
}

func (p *GeminiProvider) Close() error {
	transport.CloseClient(p.client)
	return nil
}

func (p *GeminiProvider) authHeader() utils.HeaderOption {
	return utils.HeaderOption{Key: "x-goog-api-key", Value: p.apiKey}
}

func (p *GeminiProvider) Chat(ctx context.Context, request ai.ChatRequest) (*ai.TextResponse, error) {
	model := p.config.PickModel(request.Model, ai.ModalityChat)
	resp, err := p.generate(ctx, ai.OpChat, model, buildRequest(request.SystemPrompt, request.Messages, p.config))
	if err != nil {
		return nil, err
	}
	return textResponse(resp, model), nil
}

func (p *GeminiProvider) GenerateContent(ctx context.Context, request ai.ContentRequest) (*ai.TextResponse, error) {
	model := p.config.PickModel(request.Model, ai.ModalityContent)
	body := buildRequest(request.SystemPrompt, []ai.Message{{Role: ai.RoleUser, Content: request.Prompt}}, p.config)
	resp, err := p.generate(ctx, ai.OpGenerateContent, model, body)
	if err != nil {
		return nil, err
	}
	return textResponse(resp, model), nil
}

// GenerateStructuredContent asks for application/json output, forwarding the
// schema when one is given, and extracts the object from the answer.
func (p *GeminiProvider) GenerateStructuredContent(ctx context.Context, request ai.StructuredRequest) (*ai.StructuredResponse, error) {
	model := p.config.PickModel(request.Model, ai.ModalityContent)
	body := buildRequest(transport.StructuredInstruction(request.SystemPrompt, nil),
		[]ai.Message{{Role: ai.RoleUser, Content: request.Prompt}}, p.config)
	body.ensureConfig().ResponseMimeType = "application/json"
	if len(request.Schema) > 0 {
		body.ensureConfig().ResponseJSONSchema = request.Schema
	}

	resp, err := p.generate(ctx, ai.OpGenerateStructuredContent, model, body)
	if err != nil {
		return nil, err
	}

	text := textResponse(resp, model)
	obj, err := transport.ExtractStructured(ID, text.Content)
	if err != nil {
		return nil, err
	}
	return &ai.StructuredResponse{Model: text.Model, Object: obj, Raw: text.Content, Usage: text.Usage}, nil
}

// GenerateImage requests an IMAGE response modality and returns the first
// inline image part.
func (p *GeminiProvider) GenerateImage(ctx context.Context, request ai.ImageRequest) (*ai.ImageResult, error) {
	model := p.config.PickModel(request.Model, ai.ModalityImage)
	body := buildRequest("", []ai.Message{{Role: ai.RoleUser, Content: request.Prompt}}, ai.ResolvedConfig{})
	body.ensureConfig().ResponseModalities = []string{"TEXT", "IMAGE"}

	resp, err := p.generate(ctx, ai.OpGenerateImage, model, body)
	if err != nil {
		return nil, err
	}

	image := firstInlineData(resp)
	if image == nil {
		return nil, aierr.New(aierr.GenericProviderError, ID, string(ai.OpGenerateImage), "response has no image part")
	}
	data, err := base64.StdEncoding.DecodeString(image.Data)
	if err != nil {
		return nil, aierr.New(aierr.GenericProviderError, ID, string(ai.OpGenerateImage), "image payload is not valid base64")
	}
	return &ai.ImageResult{Model: model, MimeType: image.MimeType, Data: data}, nil
}

// ValidateCredential lists models with the credential.
func (p *GeminiProvider) ValidateCredential(ctx context.Context) (ai.CredentialStatus, error) {
	return transport.ValidateCredential(ctx, ID, validateTimeout, func(ctx context.Context) error {
		_, err := utils.DoGet(ctx, p.client, p.baseURL+modelsEndpoint, "", p.authHeader())
		return err
	})
}

// generate performs one generateContent call. A response without candidates
// (typically a blocked prompt) is a failure.
func (p *GeminiProvider) generate(ctx context.Context, op ai.Operation, model string, body generateContentRequest) (*generateContentResponse, error) {
	if err := transport.RequireModel(ID, op, model); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	ctx, call := transport.Start(ctx, ID, op, model)

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, url.PathEscape(model))
	resp, err := utils.DoPostSync[generateContentResponse](ctx, p.client, endpoint, "", body, p.authHeader())
	if err != nil {
		return nil, call.Finish(err)
	}
	if len(resp.Candidates) == 0 {
		detail := "response has no candidates"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			detail = "prompt blocked: " + resp.PromptFeedback.BlockReason
		}
		return nil, call.Finish(aierr.New(aierr.GenericProviderError, ID, string(op), detail))
	}

	attrs := []observability.Attribute{observability.String(observability.AttrFinishReason, resp.Candidates[0].FinishReason)}
	if resp.UsageMetadata != nil {
		attrs = append(attrs, observability.Int(observability.AttrTokensTotal, resp.UsageMetadata.TotalTokenCount))
	}
	return resp, call.Finish(nil, attrs...)
}

var (
	_ ai.Chatter             = (*GeminiProvider)(nil)
	_ ai.ContentGenerator    = (*GeminiProvider)(nil)
	_ ai.StructuredGenerator = (*GeminiProvider)(nil)
	_ ai.ImageGenerator      = (*GeminiProvider)(nil)
	_ ai.CredentialValidator = (*GeminiProvider)(nil)
)
