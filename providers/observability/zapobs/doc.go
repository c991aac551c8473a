// Package zapobs implements observability.Provider on top of go.uber.org/zap,
// for services that already standardize on zap. Spans and metric updates are
// logged at DEBUG, like the slogobs backend, and counters and histograms keep
// running totals in memory.
//
//	observer := zapobs.New(zapobs.WithLogger(logger))
//	ctx = observability.ContextWithObserver(ctx, observer)
package zapobs
