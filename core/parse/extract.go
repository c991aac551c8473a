package parse

import (
	"regexp"
	"strings"
)

var (
	// reasoningBlock matches a complete <think>...</think> segment, across newlines.
	reasoningBlock = regexp.MustCompile(`(?is)<think>.*?</think>`)
	// reasoningEnd matches a dangling end-of-reasoning marker.
	reasoningEnd = regexp.MustCompile(`(?i)</think>`)
	// openingFence matches a leading code fence with an optional language tag.
	openingFence = regexp.MustCompile("^```[A-Za-z0-9_+.-]*[ \t]*\r?\n?")
	// closingFence matches a trailing code fence.
	closingFence = regexp.MustCompile("\\s*```\\s*$")
)

// ExtractObject recovers a single JSON object from free-form model output.
// It returns false when no object can be recovered; it never panics.
//
// The text is cleaned in order: surrounding whitespace is trimmed, <think>
// segments are removed, a wrapping code fence is stripped, and everything up
// to the last dangling </think> is dropped. The remainder is parsed as a whole
// first; failing that, the first '{' is matched to its closing brace with a
// string-aware scan and only that span is parsed.
func ExtractObject(text string) (*Object, bool) {
	cleaned := cleanModelOutput(text)
	if cleaned == "" {
		return nil, false
	}

	if obj, err := ParseObject(cleaned); err == nil {
		return obj, true
	}

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return nil, false
	}
	end := matchingBrace(cleaned, start)
	if end < 0 {
		return nil, false
	}

	obj, err := ParseObject(cleaned[start : end+1])
	if err != nil {
		return nil, false
	}
	return obj, true
}

// cleanModelOutput applies the text-level steps of ExtractObject and returns
// the remaining candidate text, or "" when nothing is left.
func cleanModelOutput(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}

	s = strings.TrimSpace(reasoningBlock.ReplaceAllString(s, ""))

	if strings.HasPrefix(s, "```") {
		s = openingFence.ReplaceAllString(s, "")
		s = closingFence.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
	}

	if locs := reasoningEnd.FindAllStringIndex(s, -1); len(locs) > 0 {
		s = strings.TrimSpace(s[locs[len(locs)-1][1]:])
	}

	return s
}

// matchingBrace returns the index of the brace closing the one at start, or -1.
// Braces inside string literals are ignored, and a backslash inside a string
// escapes the following character. Byte-wise scanning is safe for UTF-8 because
// the delimiters are ASCII and never occur inside multi-byte sequences.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
