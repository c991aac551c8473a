package aierr

import (
	"bytes"
	"encoding/json"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/kaptinlin/jsonrepair"
)

// maxDetailLength caps the raw-text fallback so full HTML pages or stack
// traces do not end up in error details.
const maxDetailLength = 500

// messageAttempt tries to pull a human-readable message out of a decoded
// vendor error body.
type messageAttempt func(body map[string]any) (string, bool)

// messageAttempts is tried in order; the first hit wins. The shapes cover
// OpenAI/Anthropic ({"error":{"message"}}), Gemini ({"error":{"message","status"}}),
// ElevenLabs ({"detail":{"message"}}), FastAPI-style ({"detail":"..."}),
// OAuth-style ({"error_description"}) and bare {"message"} / {"error":"..."}.
var messageAttempts = []messageAttempt{
	nestedString("error", "message"),
	topString("error"),
	topString("message"),
	nestedString("detail", "message"),
	topString("detail"),
	firstOfList("errors", "message"),
	topString("error_description"),
}

// MessageFromBody extracts the best available message from a vendor error body.
// It never fails: when no structured message is found it falls back to the
// body text (HTML rendered to plain text), trimmed and truncated.
func MessageFromBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if msg, ok := messageFromJSON(trimmed); ok {
		return msg
	}

	if repaired, err := jsonrepair.JSONRepair(string(trimmed)); err == nil {
		if msg, ok := messageFromJSON([]byte(repaired)); ok {
			return msg
		}
	}

	text := string(trimmed)
	if looksLikeHTML(text) {
		if markdown, err := htmltomarkdown.ConvertString(text); err == nil {
			text = strings.TrimSpace(markdown)
		}
	}
	return truncate(text, maxDetailLength)
}

func messageFromJSON(data []byte) (string, bool) {
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", false
	}
	for _, attempt := range messageAttempts {
		if msg, ok := attempt(decoded); ok {
			return msg, true
		}
	}
	return "", false
}

func topString(key string) messageAttempt {
	return func(body map[string]any) (string, bool) {
		return nonEmptyString(body[key])
	}
}

func nestedString(outer, inner string) messageAttempt {
	return func(body map[string]any) (string, bool) {
		m, ok := body[outer].(map[string]any)
		if !ok {
			return "", false
		}
		return nonEmptyString(m[inner])
	}
}

func firstOfList(listKey, inner string) messageAttempt {
	return func(body map[string]any) (string, bool) {
		list, ok := body[listKey].([]any)
		if !ok || len(list) == 0 {
			return "", false
		}
		switch first := list[0].(type) {
		case map[string]any:
			return nonEmptyString(first[inner])
		default:
			return nonEmptyString(first)
		}
	}
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(s)
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.Contains(head, "<html") ||
		strings.Contains(head, "<body") || strings.Contains(head, "<head")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	// Back up to a rune boundary.
	for cut > 0 && (s[cut]&0xC0) == 0x80 {
		cut--
	}
	return s[:cut] + "..."
}
