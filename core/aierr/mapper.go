package aierr

import (
	"net/http"
	"strings"
)

// TransportFailure describes a call that produced no HTTP status.
type TransportFailure int

const (
	TransportNone       TransportFailure = iota // The call produced a status, or the failure is not transport-related
	TransportTimeout                            // Deadline exceeded before a response arrived
	TransportConnection                         // DNS, dial, TLS or reset failures
)

func (t TransportFailure) String() string {
	switch t {
	case TransportTimeout:
		return "timeout"
	case TransportConnection:
		return "connection"
	default:
		return "none"
	}
}

// ParseTransportFailure returns the failure named by s (as produced by String).
func ParseTransportFailure(s string) (TransportFailure, bool) {
	for _, t := range []TransportFailure{TransportNone, TransportTimeout, TransportConnection} {
		if t.String() == s {
			return t, true
		}
	}
	return TransportNone, false
}

// Keyword sets, matched case-insensitively as substrings.
var (
	forbiddenInactiveKeywords = []string{"disabled", "inactive", "not active", "service disabled", "api disabled"}
	paymentKeywords           = []string{"payment required", "paid", "pricing"}
	quotaKeywords             = []string{"quota", "billing", "credit", "limit"}
	inactiveKeywords          = []string{"api is disabled", "api disabled", "service disabled", "not active", "inactive"}
)

// MapError classifies a failed provider call. A status of 0 means the call
// never produced one; the transport failure then decides the kind. The status
// rules below are evaluated in order and the first match wins, so the 403
// inactive check runs before the plain 403 rule, and the 400/404 model check
// runs before the plain 404 rule.
//
// MapError is pure and total: identical inputs always give the same Kind.
func MapError(status int, message string, transport TransportFailure, fallback Kind) Kind {
	if status == 0 {
		switch transport {
		case TransportTimeout:
			return Timeout
		case TransportConnection:
			return Unreachable
		default:
			return fallback
		}
	}

	msg := strings.ToLower(message)

	if status == http.StatusUnauthorized {
		return CredentialInvalid
	}

	if status == http.StatusForbidden {
		if containsAny(msg, forbiddenInactiveKeywords) {
			return ServiceInactive
		}
		return AccessBlocked
	}

	if status == http.StatusPaymentRequired || containsAny(msg, paymentKeywords) {
		return PaymentRequired
	}

	if status == http.StatusTooManyRequests {
		if containsAny(msg, quotaKeywords) {
			return QuotaExceeded
		}
		return RateLimited
	}

	if (status == http.StatusBadRequest || status == http.StatusNotFound) && mentionsUnknownModel(msg) {
		return ModelNotFound
	}

	if status == http.StatusNotFound {
		return ServiceUnavailable
	}

	if status == http.StatusGone {
		return ModelNotFound
	}

	if containsAny(msg, inactiveKeywords) {
		return ServiceInactive
	}

	return fallback
}

// mentionsUnknownModel expects an already lower-cased message.
func mentionsUnknownModel(msg string) bool {
	if strings.Contains(msg, "not a valid model id") {
		return true
	}
	return strings.Contains(msg, "model") &&
		(strings.Contains(msg, "not found") || strings.Contains(msg, "invalid"))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
