package aierr

import (
	"errors"
	"fmt"
)

// Error is a provider failure normalized at the adapter boundary. Callers act
// on Kind; Detail is the vendor's message for humans and logs only.
type Error struct {
	Kind       Kind
	Provider   string
	Op         string
	StatusCode int    // 0 when the call produced no response
	Detail     string // Optional human-readable detail
	Cause      error
}

func (e *Error) Error() string {
	prefix := e.Kind.String()
	if e.Provider != "" {
		prefix = e.Provider + ": " + prefix
	}
	if e.Op != "" {
		prefix = prefix + " (" + e.Op + ")"
	}
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("%s [status %d]", prefix, e.StatusCode)
	}
	if e.Detail != "" {
		return prefix + ": " + e.Detail
	}
	if e.Cause != nil {
		return prefix + ": " + e.Cause.Error()
	}
	return prefix
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same Kind, so sentinel-style checks such as
// errors.Is(err, &aierr.Error{Kind: aierr.RateLimited}) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error without going through the mapper, for failures the
// adapter has classified itself (e.g. InvalidStructuredOutput).
func New(kind Kind, provider, op, detail string) *Error {
	return &Error{Kind: kind, Provider: provider, Op: op, Detail: detail}
}

// FromResponse normalizes a non-2xx response.
func FromResponse(provider, op string, status int, body []byte, fallback Kind) *Error {
	detail := MessageFromBody(body)
	return &Error{
		Kind:       MapError(status, detail, TransportNone, fallback),
		Provider:   provider,
		Op:         op,
		StatusCode: status,
		Detail:     detail,
	}
}

// FromTransport normalizes a call that failed before any response arrived.
func FromTransport(provider, op string, err error, fallback Kind) *Error {
	return &Error{
		Kind:     MapError(0, "", ClassifyTransport(err), fallback),
		Provider: provider,
		Op:       op,
		Cause:    err,
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return GenericProviderError, false
}
