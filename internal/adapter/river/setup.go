package river

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riversqlite"
	"github.com/riverqueue/river/rivermigrate"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// QueueActivity is the queue activity jobs are inserted into and worked from.
const QueueActivity = "activity"

// Setup migrates River's tables on db and returns a client whose worker
// records activity into repo. Start and Stop are left to the caller.
//
// SQLite serializes writers, so the queue runs a single worker.
func Setup(ctx context.Context, db *sql.DB, repo domain.ActivityRepository, logger *slog.Logger) (*Client, error) {
	driver := riversqlite.New(db)

	migrator, err := rivermigrate.New(driver, &rivermigrate.Config{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("creating river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		return nil, fmt.Errorf("running river migrations: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &ActivityWorker{repo: repo, logger: logger})

	client, err := river.NewClient(driver, &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			QueueActivity: {MaxWorkers: 1},
		},
		Workers: workers,
	})
	if err != nil {
		return nil, fmt.Errorf("creating river client: %w", err)
	}

	return client, nil
}
