package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// Format is the log output format.
type Format string

const (
	// FormatText is slog's key=value text format.
	FormatText Format = "text"

	// FormatJSON is one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown names yield FormatText.
func ParseFormat(s string) Format {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// GetFormatFromEnv reads AIBRIDGE_LOG_FORMAT, then LOG_FORMAT.
func GetFormatFromEnv() Format {
	if format := os.Getenv("AIBRIDGE_LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	return FormatText
}

func (f Format) String() string {
	return string(f)
}

// ParseLogLevel parses trace, debug, info, warn/warning or error,
// case-insensitively. Anything else yields INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogLevelFromEnv reads AIBRIDGE_LOG_LEVEL, then LOG_LEVEL.
func GetLogLevelFromEnv() slog.Level {
	if level := os.Getenv("AIBRIDGE_LOG_LEVEL"); level != "" {
		return ParseLogLevel(level)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return ParseLogLevel(level)
	}
	return slog.LevelInfo
}
