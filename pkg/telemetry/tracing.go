package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

// Default tracer name for Arbor.
const defaultTracerName = "arbor"

// TracerConfig configures the OpenTelemetry tracer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "arbor").
	TracerName string

	// AttributeExtractor adds custom attributes to every span.
	AttributeExtractor func() []attribute.KeyValue
}

// TracerOption configures the OpenTelemetry tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func() []attribute.KeyValue) TracerOption {
	return func(c *TracerConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracer traces diff cycles. With no tracer provider configured the spans
// are no-ops, so it is safe to leave enabled.
type Tracer struct {
	tracer    trace.Tracer
	extractor func() []attribute.KeyValue
}

// NewTracer creates a Tracer using the globally configured provider.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	return &Tracer{
		tracer:    otel.Tracer(config.TracerName),
		extractor: config.AttributeExtractor,
	}
}

// StartDiff starts a span for one diff cycle.
func (t *Tracer) StartDiff(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, "arbor.diff",
		trace.WithSpanKind(trace.SpanKindInternal))
	if t.extractor != nil {
		span.SetAttributes(t.extractor()...)
	}
	return ctx, span
}

// End finishes a diff span, recording the patch count and any error.
func (t *Tracer) End(span trace.Span, patches []vdom.Patch, err error) {
	span.SetAttributes(attribute.Int("arbor.patch_count", len(patches)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
