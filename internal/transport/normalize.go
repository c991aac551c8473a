package transport

import (
	"errors"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/core/parse"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
)

// Normalize turns any failure of a vendor call into an *aierr.Error. Errors
// that are already normalized, and capability errors, are returned unchanged.
// A non-2xx answer is classified from its status and body, with 5xx answers
// falling back to ServiceUnavailable rather than GenericProviderError; everything else
// (transport failures, undecodable answers, cancellation) goes through the
// transport path, where unrecognized failures become fallback.
func Normalize(provider string, op ai.Operation, err error, fallback aierr.Kind) error {
	if err == nil {
		return nil
	}

	var normalized *aierr.Error
	if errors.As(err, &normalized) {
		return err
	}
	var unsupported *ai.UnsupportedError
	if errors.As(err, &unsupported) {
		return err
	}

	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= 500 && fallback == aierr.GenericProviderError {
			fallback = aierr.ServiceUnavailable
		}
		return aierr.FromResponse(provider, string(op), statusErr.StatusCode, statusErr.Body, fallback)
	}
	return aierr.FromTransport(provider, string(op), err, fallback)
}

// ExtractStructured recovers the single JSON object carried by text, failing
// with an InvalidStructuredOutput error when there is none.
func ExtractStructured(provider string, text string) (*parse.Object, error) {
	obj, ok := parse.ExtractObject(text)
	if !ok {
		return nil, aierr.New(aierr.InvalidStructuredOutput, provider, string(ai.OpGenerateStructuredContent),
			"response holds no JSON object: "+utils.TruncateString(text, 200))
	}
	return obj, nil
}
