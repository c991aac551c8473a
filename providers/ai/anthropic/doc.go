// Package anthropic implements the Anthropic adapter over the Messages API.
// Requests authenticate with x-api-key and pin anthropic-version; structured
// output is obtained through prompting and recovered with the JSON extractor.
package anthropic
