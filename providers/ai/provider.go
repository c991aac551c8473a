package ai

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the part of the contract every adapter satisfies. The operations
// themselves live in the capability interfaces below: an adapter implements
// only the ones its vendor supports, and callers detect support via type
// assertion or [Supports].
type Provider interface {
	// ID returns the provider identifier the adapter was registered under.
	ID() string

	// Close releases the connection resources owned by the adapter. It is
	// safe to call more than once.
	Close() error
}

// Chatter is implemented by adapters that support multi-turn chat.
type Chatter interface {
	Provider
	Chat(ctx context.Context, request ChatRequest) (*TextResponse, error)
}

// ContentGenerator is implemented by adapters that support single-shot text generation.
type ContentGenerator interface {
	Provider
	GenerateContent(ctx context.Context, request ContentRequest) (*TextResponse, error)
}

// StructuredGenerator is implemented by adapters that can produce a single JSON
// object. A successful call whose text holds no recoverable object fails with
// an InvalidStructuredOutput error.
type StructuredGenerator interface {
	Provider
	GenerateStructuredContent(ctx context.Context, request StructuredRequest) (*StructuredResponse, error)
}

// ImageGenerator is implemented by adapters that support image generation.
type ImageGenerator interface {
	Provider
	GenerateImage(ctx context.Context, request ImageRequest) (*ImageResult, error)
}

// SpeechSynthesizer is implemented by adapters that support text-to-speech.
type SpeechSynthesizer interface {
	Provider
	TextToSpeech(ctx context.Context, request SpeechRequest) (*AudioResult, error)
}

// CredentialValidator is implemented by adapters that can check their credential
// against the vendor. The check is best-effort and bounded by a short timeout;
// a transport failure yields CredentialUnknown together with the normalized error.
type CredentialValidator interface {
	Provider
	ValidateCredential(ctx context.Context) (CredentialStatus, error)
}

// Constructor builds a configured adapter for one provider. The credential and
// config are consumed once; the returned Provider owns its connection resources
// until Close.
type Constructor func(credential string, config ResolvedConfig) (Provider, error)

// ErrMissingCredential is returned by constructors given an empty credential.
var ErrMissingCredential = errors.New("credential is not set")

// ErrCapabilityUnsupported is matched by every [UnsupportedError] via errors.Is.
var ErrCapabilityUnsupported = errors.New("capability unsupported")

// UnsupportedError reports that a provider does not implement an operation.
// It is structural: retrying never helps, choosing another provider does.
type UnsupportedError struct {
	Op       Operation
	Provider string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("provider %q does not support %s", e.Provider, e.Op)
}

// Is makes errors.Is(err, ErrCapabilityUnsupported) true.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrCapabilityUnsupported
}

func unsupported(p Provider, op Operation) error {
	id := ""
	if p != nil {
		id = p.ID()
	}
	return &UnsupportedError{Op: op, Provider: id}
}

// Supports reports whether p implements op.
func Supports(p Provider, op Operation) bool {
	switch op {
	case OpChat:
		_, ok := p.(Chatter)
		return ok
	case OpGenerateContent:
		_, ok := p.(ContentGenerator)
		return ok
	case OpGenerateStructuredContent:
		_, ok := p.(StructuredGenerator)
		return ok
	case OpGenerateImage:
		_, ok := p.(ImageGenerator)
		return ok
	case OpTextToSpeech:
		_, ok := p.(SpeechSynthesizer)
		return ok
	case OpValidateCredential:
		_, ok := p.(CredentialValidator)
		return ok
	}
	return false
}

// OperationsOf lists the operations p implements, in [Operations] order.
func OperationsOf(p Provider) []Operation {
	ops := make([]Operation, 0, len(Operations))
	for _, op := range Operations {
		if Supports(p, op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// Chat dispatches to p if it is a [Chatter], otherwise returns an [UnsupportedError].
func Chat(ctx context.Context, p Provider, request ChatRequest) (*TextResponse, error) {
	c, ok := p.(Chatter)
	if !ok {
		return nil, unsupported(p, OpChat)
	}
	return c.Chat(ctx, request)
}

// GenerateContent dispatches to p if it is a [ContentGenerator].
func GenerateContent(ctx context.Context, p Provider, request ContentRequest) (*TextResponse, error) {
	g, ok := p.(ContentGenerator)
	if !ok {
		return nil, unsupported(p, OpGenerateContent)
	}
	return g.GenerateContent(ctx, request)
}

// GenerateStructuredContent dispatches to p if it is a [StructuredGenerator].
func GenerateStructuredContent(ctx context.Context, p Provider, request StructuredRequest) (*StructuredResponse, error) {
	g, ok := p.(StructuredGenerator)
	if !ok {
		return nil, unsupported(p, OpGenerateStructuredContent)
	}
	return g.GenerateStructuredContent(ctx, request)
}

// GenerateImage dispatches to p if it is an [ImageGenerator].
func GenerateImage(ctx context.Context, p Provider, request ImageRequest) (*ImageResult, error) {
	g, ok := p.(ImageGenerator)
	if !ok {
		return nil, unsupported(p, OpGenerateImage)
	}
	return g.GenerateImage(ctx, request)
}

// TextToSpeech dispatches to p if it is a [SpeechSynthesizer].
func TextToSpeech(ctx context.Context, p Provider, request SpeechRequest) (*AudioResult, error) {
	s, ok := p.(SpeechSynthesizer)
	if !ok {
		return nil, unsupported(p, OpTextToSpeech)
	}
	return s.TextToSpeech(ctx, request)
}

// ValidateCredential dispatches to p if it is a [CredentialValidator]. Unsupported
// providers report CredentialUnknown along with the [UnsupportedError].
func ValidateCredential(ctx context.Context, p Provider) (CredentialStatus, error) {
	v, ok := p.(CredentialValidator)
	if !ok {
		return CredentialUnknown, unsupported(p, OpValidateCredential)
	}
	return v.ValidateCredential(ctx)
}
