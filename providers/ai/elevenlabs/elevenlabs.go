package elevenlabs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/internal/transport"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/observability"
)

const (
	// ID is the provider identifier ElevenLabs is registered under.
	ID = "elevenlabs"

	defaultBaseURL = "https://api.elevenlabs.io/v1"
	userEndpoint   = "/user"

	// defaultVoice is the "Rachel" premade voice.
	defaultVoice        = "21m00Tcm4TlvDq8ikWAM"
	defaultOutputFormat = "mp3_44100_128"

	requestTimeout  = 60 * time.Second
	validateTimeout = 10 * time.Second
)

// Descriptor returns the capabilities and model catalog of ElevenLabs.
func Descriptor() capability.Descriptor {
	return capability.Descriptor{
		ID: ID,
		Models: map[ai.Modality]capability.ModelList{
			ai.ModalityAudio: capability.Static("eleven_multilingual_v2", "eleven_turbo_v2_5", "eleven_flash_v2_5"),
		},
		Defaults: map[ai.Modality]string{
			ai.ModalityAudio: "eleven_multilingual_v2",
		},
		Constructor: New,
	}
}

type speechRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// ElevenLabsProvider implements text-to-speech and credential validation.
type ElevenLabsProvider struct {
	apiKey  string
	baseURL string
	config  ai.ResolvedConfig
	client  *http.Client
}

// New builds an ElevenLabs adapter. ELEVENLABS_API_BASE_URL overrides the endpoint.
func New(credential string, config ai.ResolvedConfig) (ai.Provider, error) {
	if credential == "" {
		return nil, ai.ErrMissingCredential
	}
	return &ElevenLabsProvider{
		apiKey:  credential,
		baseURL: transport.BaseURL(config, "ELEVENLABS_API_BASE_URL", defaultBaseURL),
		config:  config,
		client:  transport.NewHTTPClient(requestTimeout),
	}, nil
}

func (p *ElevenLabsProvider) ID() string {
	return ID
}

func (p *ElevenLabsProvider) Close() error {
	transport.CloseClient(p.client)
	return nil
}

func (p *ElevenLabsProvider) authHeader() utils.HeaderOption {
	return utils.HeaderOption{Key: "xi-api-key", Value: p.apiKey}
}

// TextToSpeech synthesizes request.Text with the requested voice, falling
// back to the configured voice and then to a premade one.
func (p *ElevenLabsProvider) TextToSpeech(ctx context.Context, request ai.SpeechRequest) (*ai.AudioResult, error) {
	model := p.config.PickModel(request.Model, ai.ModalityAudio)
	if err := transport.RequireModel(ID, ai.OpTextToSpeech, model); err != nil {
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
	ctx, call := transport.Start(ctx, ID, ai.OpTextToSpeech, model)

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s", p.baseURL, url.PathEscape(voice), defaultOutputFormat)
	raw, err := utils.DoPostRaw(ctx, p.client, endpoint, "", speechRequest{Text: request.Text, ModelID: model}, p.authHeader())
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

// ValidateCredential fetches the account the key belongs to.
func (p *ElevenLabsProvider) ValidateCredential(ctx context.Context) (ai.CredentialStatus, error) {
	return transport.ValidateCredential(ctx, ID, validateTimeout, func(ctx context.Context) error {
		_, err := utils.DoGet(ctx, p.client, p.baseURL+userEndpoint, "", p.authHeader())
		return err
	})
}

var (
	_ ai.SpeechSynthesizer   = (*ElevenLabsProvider)(nil)
	_ ai.CredentialValidator = (*ElevenLabsProvider)(nil)
)
