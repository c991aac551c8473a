package observability

// Semantic conventions for attribute keys, span, event and metric names.

// --- Provider call attributes ---

const (
	AttrProvider     = "ai.provider"      // Provider id, e.g. "openai"
	AttrOperation    = "ai.operation"     // Capability-set operation, e.g. "chat"
	AttrModel        = "ai.model"         // Model identifier sent to the vendor
	AttrEndpoint     = "ai.endpoint"      // Vendor base URL
	AttrRequestID    = "ai.request.id"    // Locally generated id correlating log lines of one call
	AttrFinishReason = "ai.finish_reason" // Vendor finish/stop reason
	AttrErrorKind    = "ai.error.kind"    // Canonical error kind
	AttrCredential   = "ai.credential"    // Credential validation outcome (never the credential itself)
	AttrOutputBytes  = "ai.output.bytes"  // Size of binary outputs
	AttrExtracted    = "ai.structured.ok" // Whether structured extraction succeeded
	AttrTokensTotal  = "ai.tokens.total"  // #nosec G101 -- token count, not a credential
	AttrTokensPrompt = "ai.tokens.prompt" // #nosec G101 -- token count, not a credential
	AttrTokensOutput = "ai.tokens.output" // #nosec G101 -- token count, not a credential
)

// --- HTTP attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- General attributes ---

const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span and event names ---

const (
	SpanProviderCall = "ai.provider.call"

	EventRequestStart = "ai.request.start"
	EventRequestEnd   = "ai.request.end"
	EventHTTPError    = "http.request.error"
	EventHTTPResponse = "http.response.received"
)

// --- Metric names ---

const (
	MetricProviderCalls    = "ai.provider.calls"
	MetricProviderErrors   = "ai.provider.errors"
	MetricProviderDuration = "ai.provider.duration_ms"
)
