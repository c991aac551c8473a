package ai

// ResolvedConfig is the per-call configuration the caller resolves before an
// adapter is built. Empty model fields are filled from the capability catalog
// defaults by the factory; zero numeric fields mean "vendor default".
type ResolvedConfig struct {
	ChatModel    string `json:"chat_model,omitempty" yaml:"chat_model"`
	ContentModel string `json:"content_model,omitempty" yaml:"content_model"`
	ImageModel   string `json:"image_model,omitempty" yaml:"image_model"`
	AudioModel   string `json:"audio_model,omitempty" yaml:"audio_model"`

	Voice     string `json:"voice,omitempty" yaml:"voice"`                                          // TTS voice identifier
	ImageSize string `json:"image_size,omitempty" yaml:"image_size" validate:"omitempty,imagesize"` // "WIDTHxHEIGHT"

	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature" validate:"omitempty,gte=0,lte=2"` // Sampling temperature [0..2]
	TopP        *float64 `json:"top_p,omitempty" yaml:"top_p" validate:"omitempty,gte=0,lte=1"`             // Nucleus sampling [0..1]
	MaxTokens   int      `json:"max_tokens,omitempty" yaml:"max_tokens" validate:"gte=0"`                   // Output token cap

	BaseURL string `json:"base_url,omitempty" yaml:"base_url" validate:"omitempty,url"` // Overrides the vendor endpoint
}

// ModelFor returns the configured model for a modality, or "".
func (c ResolvedConfig) ModelFor(m Modality) string {
	switch m {
	case ModalityChat:
		return c.ChatModel
	case ModalityContent:
		return c.ContentModel
	case ModalityImage:
		return c.ImageModel
	case ModalityAudio:
		return c.AudioModel
	}
	return ""
}

// WithModel returns a copy of c with the model for m set to model.
func (c ResolvedConfig) WithModel(m Modality, model string) ResolvedConfig {
	switch m {
	case ModalityChat:
		c.ChatModel = model
	case ModalityContent:
		c.ContentModel = model
	case ModalityImage:
		c.ImageModel = model
	case ModalityAudio:
		c.AudioModel = model
	}
	return c
}

// PickModel returns the first non-empty model among the request override and
// the configured model for m.
func (c ResolvedConfig) PickModel(override string, m Modality) string {
	if override != "" {
		return override
	}
	return c.ModelFor(m)
}
