// Package otelsplit wraps promptsplit counters with OpenTelemetry spans.
package otelsplit

import (
	"context"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skosovsky/promptsplit"
)

// ScopeName is the instrumentation scope used when no TracerProvider is given.
const ScopeName = "github.com/skosovsky/promptsplit/ext/otelsplit"

// SpanName is the name of the span recorded around each Count call.
const SpanName = "promptsplit.count"

// Option configures WrapCounter.
type Option func(*counter)

// WithTracerProvider sets the provider used to create the tracer. Default is otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *counter) {
		if tp != nil {
			c.tracer = tp.Tracer(ScopeName)
		}
	}
}

// WithAttributes adds static attributes to every span (e.g. the counter name).
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(c *counter) {
		c.attrs = append(c.attrs, attrs...)
	}
}

type counter struct {
	next   promptsplit.Counter
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// WrapCounter returns a Counter that records a span per Count with the rune length of the input
// (text.runes) and the result (count). Errors are recorded on the span and returned unchanged.
// Panics if next is nil.
func WrapCounter(next promptsplit.Counter, opts ...Option) promptsplit.Counter {
	if next == nil {
		panic("otelsplit: counter must not be nil")
	}
	c := &counter{next: next}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer(ScopeName)
	}
	return c
}

func (c *counter) Count(ctx context.Context, text string) (int, error) {
	ctx, span := c.tracer.Start(ctx, SpanName, trace.WithAttributes(c.attrs...))
	defer span.End()
	span.SetAttributes(attribute.Int("text.runes", utf8.RuneCountInString(text)))

	n, err := c.next.Count(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return n, err
	}
	span.SetAttributes(attribute.Int("count", n))
	return n, nil
}
