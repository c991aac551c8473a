package aierr

// Kind is the vendor-independent classification of a provider failure.
type Kind int

const (
	GenericProviderError Kind = iota
	CredentialInvalid
	AccessBlocked
	ServiceInactive
	PaymentRequired
	QuotaExceeded
	RateLimited
	ModelNotFound
	ServiceUnavailable
	Timeout
	Unreachable
	InvalidStructuredOutput
)

// Kinds lists every canonical kind.
var Kinds = []Kind{
	CredentialInvalid,
	AccessBlocked,
	ServiceInactive,
	PaymentRequired,
	QuotaExceeded,
	RateLimited,
	ModelNotFound,
	ServiceUnavailable,
	Timeout,
	Unreachable,
	InvalidStructuredOutput,
	GenericProviderError,
}

var kindNames = map[Kind]string{
	CredentialInvalid:       "credential_invalid",
	AccessBlocked:           "access_blocked",
	ServiceInactive:         "service_inactive",
	PaymentRequired:         "payment_required",
	QuotaExceeded:           "quota_exceeded",
	RateLimited:             "rate_limited",
	ModelNotFound:           "model_not_found",
	ServiceUnavailable:      "service_unavailable",
	Timeout:                 "timeout",
	Unreachable:             "unreachable",
	InvalidStructuredOutput: "invalid_structured_output",
	GenericProviderError:    "generic_provider_error",
}

// userMessages holds the one fixed message shown to end users per kind.
var userMessages = map[Kind]string{
	CredentialInvalid:       "The API key for this provider is invalid. Check the credential and try again.",
	AccessBlocked:           "Access to this provider was denied for the configured credential.",
	ServiceInactive:         "The provider service is not enabled for this account or project.",
	PaymentRequired:         "The provider requires a paid plan or a valid payment method.",
	QuotaExceeded:           "The provider quota or credit balance has been exhausted.",
	RateLimited:             "The provider is rate limiting requests. Try again shortly.",
	ModelNotFound:           "The selected model does not exist or is not available to this account.",
	ServiceUnavailable:      "The provider service is currently unavailable.",
	Timeout:                 "The provider did not respond in time.",
	Unreachable:             "The provider could not be reached.",
	InvalidStructuredOutput: "The provider answered, but the response could not be read as structured data.",
	GenericProviderError:    "The provider returned an unexpected error.",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[GenericProviderError]
}

// ParseKind returns the kind named by s (as produced by String).
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return GenericProviderError, false
}

// UserMessage returns the fixed human-readable message for the kind.
func (k Kind) UserMessage() string {
	if msg, ok := userMessages[k]; ok {
		return msg
	}
	return userMessages[GenericProviderError]
}

// Transient reports whether the same request may succeed later without any
// change on the caller's side. Nothing in this module retries; the flag is
// informational for callers.
func (k Kind) Transient() bool {
	switch k {
	case RateLimited, ServiceUnavailable, Timeout, Unreachable:
		return true
	}
	return false
}
