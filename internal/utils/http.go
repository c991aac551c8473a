package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/aibridge/providers/observability"
)

// HeaderOption is one extra request header, e.g. a vendor-specific auth header.
type HeaderOption struct {
	Key   string
	Value string
}

// HTTPStatusError is returned when the vendor answers with a non-2xx status.
// Body holds the raw response body so the caller can extract the vendor message.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateStringDefault(string(e.Body)))
}

// RawResponse is a successful response whose body is not decoded as JSON.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// DoPostSync POSTs body as JSON and decodes a 2xx JSON answer into OutputStruct.
// A non-empty apiKey is sent as a Bearer token; vendors with other auth
// schemes pass an empty apiKey and a HeaderOption instead.
//
// Transport failures are returned wrapped so errors.As still reaches the
// underlying *url.Error. Non-2xx answers yield *HTTPStatusError.
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*OutputStruct, error) {
	raw, err := DoPostRaw(ctx, client, url, apiKey, body, headers...)
	if err != nil {
		return nil, err
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(raw.Body, &resStruct); err != nil {
		return nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", raw.StatusCode, err, TruncateStringDefault(string(raw.Body)))
	}
	return &resStruct, nil
}

// DoPostRaw POSTs body as JSON and returns the 2xx answer undecoded. It is
// used for endpoints that answer with binary media.
func DoPostRaw(ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*RawResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}
	return do(ctx, client, http.MethodPost, url, apiKey, jsonBody, headers)
}

// DoGet performs an authenticated GET and returns the 2xx answer undecoded.
func DoGet(ctx context.Context, client *http.Client, url string, apiKey string, headers ...HeaderOption) (*RawResponse, error) {
	return do(ctx, client, http.MethodGet, url, apiKey, nil, headers)
}

func do(ctx context.Context, client *http.Client, method, url, apiKey string, jsonBody []byte, headers []HeaderOption) (*RawResponse, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, method),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(jsonBody)),
		)
	}

	var reqBody io.Reader
	if jsonBody != nil {
		reqBody = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPError,
				observability.Error(err),
				observability.Duration(observability.AttrDuration, requestDuration),
			)
		}
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPResponse,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrDuration, requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, Body: respBody}
	}

	return &RawResponse{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
