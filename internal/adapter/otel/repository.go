package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/serialgen/internal/domain"
)

const instrumentationName = "github.com/neomorfeo/serialgen/internal/adapter/otel"

// TracingRepository wraps a domain.ActivityRepository with OpenTelemetry tracing.
type TracingRepository struct {
	next   domain.ActivityRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRepository implements domain.ActivityRepository.
var _ domain.ActivityRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.ActivityRepository) *TracingRepository {
	return &TracingRepository{
		next:   next,
		tracer: otel.Tracer(instrumentationName),
	}
}

func (r *TracingRepository) Record(ctx context.Context, activity domain.Activity) error {
	ctx, span := r.tracer.Start(ctx, "ActivityRepository.Record",
		trace.WithAttributes(
			attribute.String("activity.id", activity.ID),
			attribute.String("activity.event", string(activity.Event)),
		),
	)
	defer span.End()

	err := r.next.Record(ctx, activity)
	markFailed(span, err)
	return err
}

func (r *TracingRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Activity, error) {
	ctx, span := r.tracer.Start(ctx, "ActivityRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Event != nil {
		span.SetAttributes(attribute.String("filter.event", string(*filter.Event)))
	}

	activities, err := r.next.List(ctx, filter)
	if markFailed(span, err) {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(activities)))
	return activities, nil
}

func (r *TracingRepository) Summary(ctx context.Context) ([]domain.EventCount, error) {
	ctx, span := r.tracer.Start(ctx, "ActivityRepository.Summary")
	defer span.End()

	counts, err := r.next.Summary(ctx)
	if markFailed(span, err) {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.events", len(counts)))
	return counts, nil
}

// markFailed records err on span and reports whether there was one.
func markFailed(span trace.Span, err error) bool {
	if err == nil {
		return false
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return true
}
