package openai

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/internal/transport"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/observability"
)

const (
	// ID is the provider identifier OpenAI is registered under.
	ID = "openai"

	defaultBaseURL     = "https://api.openai.com/v1"
	imagesEndpoint     = "/images/generations"
	speechEndpoint     = "/audio/speech"
	modelsEndpoint     = "/models"
	defaultVoice       = "alloy"
	defaultSpeechCodec = "mp3"

	requestTimeout  = 120 * time.Second
	validateTimeout = 10 * time.Second
)

// Descriptor returns the capabilities and model catalog of OpenAI.
func Descriptor() capability.Descriptor {
	textModels := capability.Static("gpt-4o-mini", "gpt-4o", "gpt-4.1-mini", "gpt-4.1", "o3-mini")
	return capability.Descriptor{
		ID: ID,
		Models: map[ai.Modality]capability.ModelList{
			ai.ModalityChat:    textModels,
			ai.ModalityContent: textModels,
			ai.ModalityImage:   capability.Static("dall-e-3", "gpt-image-1"),
			ai.ModalityAudio:   capability.Static("tts-1", "tts-1-hd", "gpt-4o-mini-tts"),
		},
		Defaults: map[ai.Modality]string{
			ai.ModalityChat:    "gpt-4o-mini",
			ai.ModalityContent: "gpt-4o-mini",
			ai.ModalityImage:   "dall-e-3",
			ai.ModalityAudio:   "tts-1",
		},
		Constructor: New,
	}
}

// OpenAIProvider implements every operation of the capability set against the
// OpenAI REST API.
type OpenAIProvider struct {
	*Compatible
}

// New builds an OpenAI adapter. The endpoint comes from config.BaseURL, then
// OPENAI_API_BASE_URL, then the public API.
func New(credential string, config ai.ResolvedConfig) (ai.Provider, error) {
	if credential == "" {
		return nil, ai.ErrMissingCredential
	}
	baseURL := transport.BaseURL(config, "OPENAI_API_BASE_URL", defaultBaseURL)
	return &OpenAIProvider{Compatible: NewCompatible(ID, credential, baseURL, config)}, nil
}

// GenerateImage calls /images/generations and returns the first image.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, request ai.ImageRequest) (*ai.ImageResult, error) {
	model := p.config.PickModel(request.Model, ai.ModalityImage)
	if err := transport.RequireModel(p.id, ai.OpGenerateImage, model); err != nil {
		return nil, err
	}

	body := imageRequest{
		Model:  model,
		Prompt: request.Prompt,
		N:      1,
		Size:   request.Size,
	}
	if body.Size == "" {
		body.Size = p.config.ImageSize
	}
	if strings.HasPrefix(model, "dall-e") {
		body.ResponseFormat = "b64_json"
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	ctx, call := transport.Start(ctx, p.id, ai.OpGenerateImage, model)

	resp, err := utils.DoPostSync[imageResponse](ctx, p.client, p.baseURL+imagesEndpoint, p.apiKey, body, p.headers...)
	if err != nil {
		return nil, call.Finish(err)
	}
	if len(resp.Data) == 0 {
		return nil, call.Finish(aierr.New(aierr.GenericProviderError, p.id, string(ai.OpGenerateImage), "response has no images"))
	}

	result := &ai.ImageResult{Model: model, MimeType: "image/png", URL: resp.Data[0].URL}
	if encoded := resp.Data[0].B64JSON; encoded != "" {
		result.Data, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, call.Finish(aierr.New(aierr.GenericProviderError, p.id, string(ai.OpGenerateImage), "image payload is not valid base64"))
		}
	}
	return result, call.Finish(nil, observability.Int(observability.AttrOutputBytes, len(result.Data)))
}

// TextToSpeech calls /audio/speech and returns the MP3 bytes.
func (p *OpenAIProvider) TextToSpeech(ctx context.Context, request ai.SpeechRequest) (*ai.AudioResult, error) {
	model := p.config.PickModel(request.Model, ai.ModalityAudio)
	if err := transport.RequireModel(p.id, ai.OpTextToSpeech, model); err != nil {
		return nil, err
	}

	voice := request.Voice
	if voice == "" {
		voice = p.config.Voice
	}
	if voice == "" {
		voice = defaultVoice
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	ctx, call := transport.Start(ctx, p.id, ai.OpTextToSpeech, model)

	raw, err := utils.DoPostRaw(ctx, p.client, p.baseURL+speechEndpoint, p.apiKey, speechRequest{
		Model:          model,
		Input:          request.Text,
		Voice:          voice,
		ResponseFormat: defaultSpeechCodec,
	}, p.headers...)
	if err != nil {
		return nil, call.Finish(err)
	}

	mimeType := raw.ContentType
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}
	return &ai.AudioResult{Model: model, MimeType: mimeType, Data: raw.Body},
		call.Finish(nil, observability.Int(observability.AttrOutputBytes, len(raw.Body)))
}

// ValidateCredential lists models with the credential.
func (p *OpenAIProvider) ValidateCredential(ctx context.Context) (ai.CredentialStatus, error) {
	return transport.ValidateCredential(ctx, p.id, validateTimeout, func(ctx context.Context) error {
		return p.CheckEndpoint(ctx, modelsEndpoint)
	})
}

var (
	_ ai.Chatter             = (*OpenAIProvider)(nil)
	_ ai.ContentGenerator    = (*OpenAIProvider)(nil)
	_ ai.StructuredGenerator = (*OpenAIProvider)(nil)
	_ ai.ImageGenerator      = (*OpenAIProvider)(nil)
	_ ai.SpeechSynthesizer   = (*OpenAIProvider)(nil)
	_ ai.CredentialValidator = (*OpenAIProvider)(nil)
)
