// Package observability defines the tracing, metrics and logging interfaces
// used by the adapters, together with the attribute keys they record.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into one injectable
// value. Callers attach it to a [context.Context] with [ContextWithObserver];
// adapters read it back with [ObserverFromContext] and open one span per vendor
// call. When no observer is present, adapters skip instrumentation entirely.
// The slogobs subpackage provides a log/slog backed implementation.
package observability
