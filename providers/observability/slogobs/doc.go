// Package slogobs provides an observability.Provider backed by log/slog.
// Spans are logged at start and end, counters and histograms keep in-memory
// totals, and the five log levels map onto slog levels with an extra TRACE
// level below DEBUG. Output format and level come from [WithFormat] and
// [WithLevel] or from the AIBRIDGE_LOG_FORMAT and AIBRIDGE_LOG_LEVEL variables.
package slogobs
