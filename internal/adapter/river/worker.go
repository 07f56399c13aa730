package river

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// recordTimeout bounds a single repository write.
const recordTimeout = 10 * time.Second

// ActivityWorker persists activity jobs. Recording is idempotent on the
// activity ID, so retried jobs do not duplicate rows.
type ActivityWorker struct {
	river.WorkerDefaults[ActivityJobArgs]

	repo   domain.ActivityRepository
	logger *slog.Logger
}

func (w *ActivityWorker) Timeout(*river.Job[ActivityJobArgs]) time.Duration {
	return recordTimeout
}

func (w *ActivityWorker) Work(ctx context.Context, job *river.Job[ActivityJobArgs]) error {
	w.logger.DebugContext(ctx, "recording activity",
		"event", job.Args.Event,
		"activity_id", job.Args.ID,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)

	if err := w.repo.Record(ctx, job.Args.Activity()); err != nil {
		return fmt.Errorf("recording activity %s: %w", job.Args.ID, err)
	}
	return nil
}
