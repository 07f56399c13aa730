package river

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// ActivityJobArgs carries one widget activity to the worker. River stores it
// as JSON in its job table.
type ActivityJobArgs struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Length    int       `json:"length"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (ActivityJobArgs) Kind() string { return "activity.recorded" }

// InsertOpts routes activity to QueueActivity. Activity is best effort, so
// a job that keeps failing is discarded after a few attempts.
func (ActivityJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueActivity,
		MaxAttempts: 5,
	}
}

// Activity converts the job payload back to a domain.Activity.
func (a ActivityJobArgs) Activity() domain.Activity {
	return domain.Activity{
		ID:        a.ID,
		Event:     domain.Event(a.Event),
		Length:    a.Length,
		Detail:    a.Detail,
		CreatedAt: a.CreatedAt,
	}
}

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues an activity as an async job in River.
func (p *Publisher) Publish(ctx context.Context, activity domain.Activity) error {
	_, err := p.client.Insert(ctx, ActivityJobArgs{
		ID:        activity.ID,
		Event:     string(activity.Event),
		Length:    activity.Length,
		Detail:    activity.Detail,
		CreatedAt: activity.CreatedAt,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing activity job: %w", err)
	}
	return nil
}
