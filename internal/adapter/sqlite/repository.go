package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/neomorfeo/serialgen/internal/domain"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Compile-time check: ActivityRepository implements domain.ActivityRepository.
var _ domain.ActivityRepository = (*ActivityRepository)(nil)

// ActivityRepository implements domain.ActivityRepository using SQLite.
type ActivityRepository struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready repository.
func New(dataSourceName string) (*ActivityRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and returns a ready repository.
// Use this when the *sql.DB has been pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*ActivityRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &ActivityRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *ActivityRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for use by other adapters (e.g., river).
func (r *ActivityRepository) DB() *sql.DB {
	return r.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// timeFormat has a fixed width so created_at sorts lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Record stores a. Recording an ID that already exists is a no-op.
func (r *ActivityRepository) Record(ctx context.Context, a domain.Activity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity (id, event, length, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
		a.ID, string(a.Event), a.Length, a.Detail,
		a.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Activity, error) {
	query := `SELECT id, event, length, detail, created_at FROM activity`
	var args []any

	if filter.Event != nil {
		query += ` WHERE event = ?`
		args = append(args, string(*filter.Event))
	}

	query += ` ORDER BY created_at DESC, id DESC`

	// SQLite requires LIMIT before OFFSET; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := -1
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		var event, createdAt string

		if err := rows.Scan(&a.ID, &event, &a.Length, &a.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}

		a.Event = domain.Event(event)
		a.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

func (r *ActivityRepository) Summary(ctx context.Context) ([]domain.EventCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT event, COUNT(*) FROM activity GROUP BY event ORDER BY event`,
	)
	if err != nil {
		return nil, fmt.Errorf("summarizing activity: %w", err)
	}
	defer rows.Close()

	counts := []domain.EventCount{}
	for rows.Next() {
		var c domain.EventCount
		var event string
		if err := rows.Scan(&event, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		c.Event = domain.Event(event)
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
