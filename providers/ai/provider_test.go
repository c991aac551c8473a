package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bareProvider struct{}

func (bareProvider) ID() string   { return "bare" }
func (bareProvider) Close() error { return nil }

type chatOnlyProvider struct {
	bareProvider
	got ChatRequest
}

func (p *chatOnlyProvider) ID() string { return "chatty" }

func (p *chatOnlyProvider) Chat(_ context.Context, request ChatRequest) (*TextResponse, error) {
	p.got = request
	return &TextResponse{Model: "m", Content: "hi"}, nil
}

func (p *chatOnlyProvider) ValidateCredential(context.Context) (CredentialStatus, error) {
	return CredentialValid, nil
}

func TestSupportsAndOperationsOf(t *testing.T) {
	p := &chatOnlyProvider{}

	assert.True(t, Supports(p, OpChat))
	assert.True(t, Supports(p, OpValidateCredential))
	assert.False(t, Supports(p, OpGenerateImage))
	assert.False(t, Supports(p, "unknown"))
	assert.Equal(t, []Operation{OpChat, OpValidateCredential}, OperationsOf(p))
	assert.Empty(t, OperationsOf(bareProvider{}))
}

func TestDispatch_Supported(t *testing.T) {
	p := &chatOnlyProvider{}
	ctx := context.Background()

	resp, err := Chat(ctx, p, ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hello"}}})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)
	assert.Equal(t, "hello", p.got.Messages[0].Content)

	status, err := ValidateCredential(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, CredentialValid, status)
}

// TestDispatch_Unsupported verifies every helper fails with an UnsupportedError naming the operation.
func TestDispatch_Unsupported(t *testing.T) {
	ctx := context.Background()
	p := bareProvider{}

	calls := map[Operation]func() error{
		OpChat: func() error { _, err := Chat(ctx, p, ChatRequest{}); return err },
		OpGenerateContent: func() error {
			_, err := GenerateContent(ctx, p, ContentRequest{})
			return err
		},
		OpGenerateStructuredContent: func() error {
			_, err := GenerateStructuredContent(ctx, p, StructuredRequest{})
			return err
		},
		OpGenerateImage: func() error { _, err := GenerateImage(ctx, p, ImageRequest{}); return err },
		OpTextToSpeech:  func() error { _, err := TextToSpeech(ctx, p, SpeechRequest{}); return err },
		OpValidateCredential: func() error {
			status, err := ValidateCredential(ctx, p)
			assert.Equal(t, CredentialUnknown, status)
			return err
		},
	}

	for op, call := range calls {
		t.Run(string(op), func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCapabilityUnsupported)

			var unsupportedErr *UnsupportedError
			require.True(t, errors.As(err, &unsupportedErr))
			assert.Equal(t, op, unsupportedErr.Op)
			assert.Equal(t, "bare", unsupportedErr.Provider)
			assert.Contains(t, err.Error(), string(op))
		})
	}
}

func TestUnsupportedError_NilProvider(t *testing.T) {
	_, err := Chat(context.Background(), nil, ChatRequest{})

	var unsupportedErr *UnsupportedError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Empty(t, unsupportedErr.Provider)
}
