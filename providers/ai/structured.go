package ai

import (
	"context"
	"fmt"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/core/parse"
	"github.com/leofalp/aibridge/internal/jsonschema"
)

// GenerateStructuredAs asks p for a single object and decodes it into T.
// When request.Schema is empty the schema is derived from T's json and
// jsonschema struct tags.
//
// An object that does not decode into T fails with an InvalidStructuredOutput
// error; the raw response is still returned so callers can log it.
//
//	type Verdict struct {
//	    Label      string  `json:"label" jsonschema:"enum=spam,enum=ham"`
//	    Confidence float64 `json:"confidence"`
//	}
//
//	verdict, raw, err := ai.GenerateStructuredAs[Verdict](ctx, provider, ai.StructuredRequest{Prompt: text})
func GenerateStructuredAs[T any](ctx context.Context, p Provider, request StructuredRequest) (*T, *StructuredResponse, error) {
	if len(request.Schema) == 0 {
		schema, err := jsonschema.For[T]()
		if err != nil {
			return nil, nil, fmt.Errorf("deriving schema for %T: %w", *new(T), err)
		}
		if request.Schema, err = schema.JSON(); err != nil {
			return nil, nil, fmt.Errorf("encoding schema for %T: %w", *new(T), err)
		}
	}

	resp, err := GenerateStructuredContent(ctx, p, request)
	if err != nil {
		return nil, nil, err
	}

	value, err := parse.DecodeObject[T](resp.Object)
	if err != nil {
		return nil, resp, aierr.New(aierr.InvalidStructuredOutput, p.ID(), string(OpGenerateStructuredContent), err.Error())
	}
	return &value, resp, nil
}
