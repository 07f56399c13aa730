package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// SerialService orchestrates identifier generation and the widget's
// background and footer, recording each as activity.
type SerialService struct {
	generator     domain.IdentifierGenerator
	publisher     domain.EventPublisher
	logger        *slog.Logger
	defaultLength int
	now           func() time.Time
}

// Option configures a SerialService.
type Option func(*SerialService)

// WithDefaultLength overrides domain.DefaultLength.
func WithDefaultLength(n int) Option {
	return func(s *SerialService) { s.defaultLength = n }
}

// WithLogger sets the logger used for publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SerialService) { s.logger = logger }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *SerialService) { s.now = now }
}

// NewSerialService creates a service with the given adapters.
func NewSerialService(generator domain.IdentifierGenerator, publisher domain.EventPublisher, opts ...Option) (*SerialService, error) {
	s := &SerialService{
		generator:     generator,
		publisher:     publisher,
		logger:        slog.Default(),
		defaultLength: domain.DefaultLength,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := domain.CheckLength(s.defaultLength); err != nil {
		return nil, fmt.Errorf("default length: %w", err)
	}
	return s, nil
}

// DefaultLength returns the length used by GenerateDefault.
func (s *SerialService) DefaultLength() int {
	return s.defaultLength
}

// Generate samples a new identifier of the given length.
func (s *SerialService) Generate(ctx context.Context, length int) (domain.Identifier, error) {
	id, err := s.generator.Generate(length)
	if err != nil {
		return "", err
	}

	s.record(ctx, domain.EventGenerate, length, "")
	return id, nil
}

// GenerateDefault samples an identifier of the configured default length.
func (s *SerialService) GenerateDefault(ctx context.Context) (domain.Identifier, error) {
	return s.Generate(ctx, s.defaultLength)
}

// Background builds the display region gradient for a #rrggbb color.
func (s *SerialService) Background(ctx context.Context, value string) (domain.Gradient, error) {
	color, err := parseColor(value)
	if err != nil {
		return domain.Gradient{}, err
	}

	s.record(ctx, domain.EventColorChanged, 0, "")
	return domain.NewGradient(color), nil
}

// PageLoaded returns the year shown in the footer.
func (s *SerialService) PageLoaded(ctx context.Context) int {
	year := s.now().Year()
	s.record(ctx, domain.EventPageLoaded, 0, "")
	return year
}

// RecordCopy records the outcome of a clipboard write. A nil err is a success.
func (s *SerialService) RecordCopy(ctx context.Context, err error) {
	if err != nil {
		s.record(ctx, domain.EventCopyFailed, 0, err.Error())
		return
	}
	s.record(ctx, domain.EventCopySucceeded, 0, "")
}

// record publishes activity. Activity is best effort: failures are logged
// and never reach the caller.
func (s *SerialService) record(ctx context.Context, event domain.Event, length int, detail string) {
	id, err := generateID()
	if err != nil {
		s.logger.WarnContext(ctx, "generating activity id", "event", event, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, domain.NewActivity(id, event, length, detail)); err != nil {
		s.logger.WarnContext(ctx, "publishing activity", "event", event, "error", err)
	}
}

// ActivityService exposes recorded widget activity.
type ActivityService struct {
	repo domain.ActivityRepository
}

// NewActivityService creates a read service over the repository.
func NewActivityService(repo domain.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// List returns activity matching the given filter, newest first.
func (s *ActivityService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Activity, error) {
	return s.repo.List(ctx, filter)
}

// Summary returns the number of recorded activities per event.
func (s *ActivityService) Summary(ctx context.Context) ([]domain.EventCount, error) {
	return s.repo.Summary(ctx)
}
