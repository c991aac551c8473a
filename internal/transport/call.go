package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/observability"
)

// Call instruments one vendor call. When the context carries an observer,
// Start opens a provider span and Finish closes it; otherwise the call only
// annotates a span already present in the context, if any.
type Call struct {
	ctx       context.Context
	provider  string
	op        ai.Operation
	model     string
	requestID string
	start     time.Time
	span      observability.Span
	observer  observability.Provider
	ownsSpan  bool
}

// Start begins instrumenting a call and returns the context the HTTP request
// must be made with.
func Start(ctx context.Context, provider string, op ai.Operation, model string) (context.Context, *Call) {
	c := &Call{
		provider:  provider,
		op:        op,
		model:     model,
		requestID: uuid.NewString(),
		start:     time.Now(),
		observer:  observability.ObserverFromContext(ctx),
	}

	attrs := c.baseAttrs()
	if c.observer != nil {
		ctx, c.span = c.observer.StartSpan(ctx, observability.SpanProviderCall, attrs...)
		c.ownsSpan = true
		c.observer.Trace(ctx, "provider call started", attrs...)
	} else {
		c.span = observability.SpanFromContext(ctx)
	}
	if c.span != nil {
		c.span.AddEvent(observability.EventRequestStart, attrs...)
	}

	c.ctx = ctx
	return ctx, c
}

// RequestID returns the id correlating every log line of this call.
func (c *Call) RequestID() string {
	return c.requestID
}

// Finish normalizes err (GenericProviderError as fallback), records the
// outcome and returns the normalized error, or nil on success. Extra attrs
// are attached to the span and the completion log.
func (c *Call) Finish(err error, attrs ...observability.Attribute) error {
	err = Normalize(c.provider, c.op, err, aierr.GenericProviderError)
	elapsed := time.Since(c.start)

	attrs = append(c.baseAttrs(), attrs...)
	attrs = append(attrs, observability.Duration(observability.AttrDuration, elapsed))
	if err != nil {
		kind, _ := aierr.KindOf(err)
		attrs = append(attrs, observability.String(observability.AttrErrorKind, kind.String()))
	}

	if c.span != nil {
		c.span.SetAttributes(attrs...)
		c.span.AddEvent(observability.EventRequestEnd)
		if err != nil {
			c.span.RecordError(err)
			c.span.SetStatus(observability.StatusError, err.Error())
		} else {
			c.span.SetStatus(observability.StatusOK, "")
		}
		if c.ownsSpan {
			c.span.End()
		}
	}

	if c.observer != nil {
		metricAttrs := []observability.Attribute{
			observability.String(observability.AttrProvider, c.provider),
			observability.String(observability.AttrOperation, string(c.op)),
		}
		c.observer.Counter(observability.MetricProviderCalls).Add(c.ctx, 1, metricAttrs...)
		c.observer.Histogram(observability.MetricProviderDuration).Record(c.ctx, float64(elapsed.Milliseconds()), metricAttrs...)
		if err != nil {
			c.observer.Counter(observability.MetricProviderErrors).Add(c.ctx, 1, metricAttrs...)
			c.observer.Error(c.ctx, "provider call failed", append(attrs, observability.Error(err))...)
		} else {
			c.observer.Debug(c.ctx, "provider call completed", attrs...)
		}
	}
	return err
}

func (c *Call) baseAttrs() []observability.Attribute {
	attrs := []observability.Attribute{
		observability.String(observability.AttrProvider, c.provider),
		observability.String(observability.AttrOperation, string(c.op)),
		observability.String(observability.AttrRequestID, c.requestID),
	}
	if c.model != "" {
		attrs = append(attrs, observability.String(observability.AttrModel, c.model))
	}
	return attrs
}

// UsageAttrs returns token usage attributes, or none when usage is unknown.
func UsageAttrs(usage *ai.Usage) []observability.Attribute {
	if usage == nil {
		return nil
	}
	return []observability.Attribute{
		observability.Int(observability.AttrTokensPrompt, usage.PromptTokens),
		observability.Int(observability.AttrTokensOutput, usage.CompletionTokens),
		observability.Int(observability.AttrTokensTotal, usage.TotalTokens),
	}
}
