package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// TestJSONToString covers compact output, indented output and the error
// object returned for values that cannot be marshaled.
func TestJSONToString(t *testing.T) {
	compact := JSONToString(map[string]int{"a": 1})
	if compact != `{"a":1}` {
		t.Errorf("JSONToString() = %q, want %q", compact, `{"a":1}`)
	}

	indented := JSONToString(map[string]int{"x": 42}, true)
	if !strings.Contains(indented, "\n  ") {
		t.Errorf("JSONToString(indent=true) should be indented, got: %q", indented)
	}

	if got := JSONToString(make(chan int)); !strings.HasPrefix(got, `{"error":`) {
		t.Errorf("JSONToString() on unmarshalable value should return error JSON, got: %q", got)
	}
}

// TestTruncateString checks the truncation boundary and the fallback to
// DefaultMaxStringLength for non-positive limits.
func TestTruncateString(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		maxLen        int
		wantTruncated bool
	}{
		{name: "shorter than maxLen", input: "hello", maxLen: 10},
		{name: "exactly maxLen", input: "hello", maxLen: 5},
		{name: "longer than maxLen", input: "hello world", maxLen: 5, wantTruncated: true},
		{name: "zero maxLen", input: strings.Repeat("a", DefaultMaxStringLength+1), wantTruncated: true},
		{name: "negative maxLen", input: strings.Repeat("b", DefaultMaxStringLength+1), maxLen: -1, wantTruncated: true},
		{name: "short input with zero maxLen", input: "short", maxLen: 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := TruncateString(testCase.input, testCase.maxLen)
			hasSuffix := strings.Contains(got, "... (truncated, total:")
			if hasSuffix != testCase.wantTruncated {
				t.Errorf("TruncateString(%q, %d) truncated=%v, want %v; got %q",
					testCase.input, testCase.maxLen, hasSuffix, testCase.wantTruncated, got)
			}
		})
	}
}

// TestTruncateString_RuneBoundary verifies a multi-byte rune is never split.
func TestTruncateString_RuneBoundary(t *testing.T) {
	got := TruncateString("aé€b", 3)
	if !utf8.ValidString(got) {
		t.Fatalf("TruncateString() produced invalid UTF-8: %q", got)
	}
	if !strings.HasPrefix(got, "aé...") {
		t.Errorf("TruncateString() = %q, want prefix %q", got, "aé...")
	}
}
