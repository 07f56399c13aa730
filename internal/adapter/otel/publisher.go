package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// TracingPublisher wraps a domain.EventPublisher with a span per publish and
// a counter of published activity by event.
type TracingPublisher struct {
	next      domain.EventPublisher
	tracer    trace.Tracer
	published metric.Int64Counter
}

// Compile-time check: TracingPublisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*TracingPublisher)(nil)

// NewTracingPublisher creates a tracing decorator around the given publisher.
func NewTracingPublisher(next domain.EventPublisher) (*TracingPublisher, error) {
	published, err := otel.Meter(instrumentationName).Int64Counter(
		"serialgen.activity.published",
		metric.WithDescription("Widget activity handed to the publisher"),
		metric.WithUnit("{activity}"),
	)
	if err != nil {
		return nil, err
	}

	return &TracingPublisher{
		next:      next,
		tracer:    otel.Tracer(instrumentationName),
		published: published,
	}, nil
}

func (p *TracingPublisher) Publish(ctx context.Context, activity domain.Activity) error {
	ctx, span := p.tracer.Start(ctx, "EventPublisher.Publish",
		trace.WithAttributes(
			attribute.String("activity.id", activity.ID),
			attribute.String("activity.event", string(activity.Event)),
		),
	)
	defer span.End()

	err := p.next.Publish(ctx, activity)
	if markFailed(span, err) {
		return err
	}

	p.published.Add(ctx, 1, metric.WithAttributes(attribute.String("event", string(activity.Event))))
	return nil
}
