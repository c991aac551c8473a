// Package gemini implements the Google Gemini adapter on the generateContent
// REST API, authenticated with x-goog-api-key. Structured output uses
// responseMimeType application/json; images come back as inline data parts.
package gemini
