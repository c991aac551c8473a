package ai

import (
	"bytes"
	"io"

	"github.com/leofalp/aibridge/core/parse"
)

/*
	##### MODALITIES & OPERATIONS #####
*/

// Modality is one capability category a provider may support.
type Modality string

const (
	ModalityChat    Modality = "chat"    // Multi-turn conversation
	ModalityContent Modality = "content" // Single-shot text and structured generation
	ModalityImage   Modality = "image"   // Image generation
	ModalityAudio   Modality = "audio"   // Text-to-speech
)

// Modalities lists every modality in a stable order.
var Modalities = []Modality{ModalityChat, ModalityContent, ModalityImage, ModalityAudio}

// ParseModality returns the Modality named by s and whether it is known.
func ParseModality(s string) (Modality, bool) {
	for _, m := range Modalities {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Operation names one entry of the provider capability set.
type Operation string

const (
	OpChat                      Operation = "chat"
	OpGenerateContent           Operation = "generate_content"
	OpGenerateStructuredContent Operation = "generate_structured_content"
	OpGenerateImage             Operation = "generate_image"
	OpTextToSpeech              Operation = "text_to_speech"
	OpValidateCredential        Operation = "validate_credential"
)

// Operations lists every operation of the capability set in a stable order.
var Operations = []Operation{
	OpChat,
	OpGenerateContent,
	OpGenerateStructuredContent,
	OpGenerateImage,
	OpTextToSpeech,
	OpValidateCredential,
}

// Modality returns the modality an operation draws its model from.
// OpValidateCredential has none and returns "".
func (o Operation) Modality() Modality {
	switch o {
	case OpChat:
		return ModalityChat
	case OpGenerateContent, OpGenerateStructuredContent:
		return ModalityContent
	case OpGenerateImage:
		return ModalityImage
	case OpTextToSpeech:
		return ModalityAudio
	default:
		return ""
	}
}

/*
	##### PROVIDER INPUT #####
*/

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)

// Message represents a single message in a conversation
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ChatRequest represents a multi-turn chat call.
type ChatRequest struct {
	Model        string    `json:"model,omitempty"`         // Overrides the resolved chat model
	SystemPrompt string    `json:"system_prompt,omitempty"` // Optional system prompt
	Messages     []Message `json:"messages"`                // Conversation without the system prompt
}

// ContentRequest represents a single-shot text generation call.
type ContentRequest struct {
	Model        string `json:"model,omitempty"` // Overrides the resolved content model
	SystemPrompt string `json:"system_prompt,omitempty"`
	Prompt       string `json:"prompt"`
}

// StructuredRequest asks for a single JSON object. Schema is an optional JSON
// Schema document; adapters that support native schema enforcement forward it,
// the others only describe it in the prompt.
type StructuredRequest struct {
	Model        string `json:"model,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Prompt       string `json:"prompt"`
	Schema       []byte `json:"schema,omitempty"`
}

// ImageRequest represents an image generation call.
type ImageRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
	Size   string `json:"size,omitempty"` // e.g. "1024x1024"; falls back to the resolved ImageSize
}

// SpeechRequest represents a text-to-speech call.
type SpeechRequest struct {
	Model string `json:"model,omitempty"`
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"` // Falls back to the resolved Voice
}

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// TextResponse is the result of Chat and GenerateContent.
type TextResponse struct {
	Id           string `json:"id,omitempty"`
	Model        string `json:"model"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}

// StructuredResponse carries the recovered object together with the raw text
// it was extracted from.
type StructuredResponse struct {
	Model  string        `json:"model"`
	Object *parse.Object `json:"object"`
	Raw    string        `json:"raw"`
	Usage  *Usage        `json:"usage,omitempty"`
}

// BinaryResult is a generated image or audio payload. Adapters read the whole
// body before releasing the connection, so Data is always complete.
type BinaryResult struct {
	Model    string `json:"model"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"-"`
	URL      string `json:"url,omitempty"` // Set when the vendor returns a hosted URL instead of bytes
}

// Reader returns the payload as an io.Reader.
func (b *BinaryResult) Reader() io.Reader {
	return bytes.NewReader(b.Data)
}

// ImageResult is the result of GenerateImage.
type ImageResult = BinaryResult

// AudioResult is the result of TextToSpeech.
type AudioResult = BinaryResult

// CredentialStatus is the outcome of ValidateCredential.
type CredentialStatus int

const (
	// CredentialUnknown means the vendor could not be reached or answered
	// ambiguously, so validity could not be confirmed either way.
	CredentialUnknown CredentialStatus = iota
	CredentialValid
	CredentialInvalid
)

func (s CredentialStatus) String() string {
	switch s {
	case CredentialValid:
		return "valid"
	case CredentialInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
