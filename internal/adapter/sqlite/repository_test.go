package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/neomorfeo/serialgen/internal/adapter/sqlite"
	"github.com/neomorfeo/serialgen/internal/domain"
)

// newTestRepo creates an in-memory SQLite repository for testing.
func newTestRepo(t *testing.T) *sqlite.ActivityRepository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustRecord(t *testing.T, repo *sqlite.ActivityRepository, a domain.Activity) {
	t.Helper()
	if err := repo.Record(context.Background(), a); err != nil {
		t.Fatalf("mustRecord failed: %v", err)
	}
}

// activityAt builds an activity with a fixed timestamp so ordering is deterministic.
func activityAt(id string, event domain.Event, at time.Time) domain.Activity {
	a := domain.NewActivity(id, event, 0, "")
	a.CreatedAt = at
	return a
}

func TestRecord_And_List(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := domain.NewActivity("a-1", domain.EventCopyFailed, 0, "no display")
	if err := repo.Record(ctx, a); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := repo.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d activities, want 1", len(got))
	}

	if got[0].ID != "a-1" {
		t.Errorf("ID = %q, want %q", got[0].ID, "a-1")
	}
	if got[0].Event != domain.EventCopyFailed {
		t.Errorf("Event = %q, want %q", got[0].Event, domain.EventCopyFailed)
	}
	if got[0].Detail != "no display" {
		t.Errorf("Detail = %q, want %q", got[0].Detail, "no display")
	}
	if !got[0].CreatedAt.Equal(a.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, a.CreatedAt)
	}
}

func TestRecord_DuplicateIDIsIgnored(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustRecord(t, repo, domain.NewActivity("a-1", domain.EventGenerate, 20, ""))
	if err := repo.Record(ctx, domain.NewActivity("a-1", domain.EventGenerate, 32, "")); err != nil {
		t.Fatalf("Record duplicate: %v", err)
	}

	got, err := repo.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Length != 20 {
		t.Errorf("got %+v, want the first recording only", got)
	}
}

func TestList_Empty(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.List(context.Background(), domain.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	mustRecord(t, repo, activityAt("a-1", domain.EventGenerate, base))
	mustRecord(t, repo, activityAt("a-2", domain.EventGenerate, base.Add(2*time.Second)))
	mustRecord(t, repo, activityAt("a-3", domain.EventGenerate, base.Add(time.Second)))

	got, err := repo.List(context.Background(), domain.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"a-2", "a-3", "a-1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestList_FilterByEvent(t *testing.T) {
	repo := newTestRepo(t)

	mustRecord(t, repo, domain.NewActivity("a-1", domain.EventGenerate, 20, ""))
	mustRecord(t, repo, domain.NewActivity("a-2", domain.EventColorChanged, 0, ""))

	event := domain.EventColorChanged
	got, err := repo.List(context.Background(), domain.ListFilter{Event: &event})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d activities, want 1", len(got))
	}
	if got[0].ID != "a-2" {
		t.Errorf("ID = %q, want %q", got[0].ID, "a-2")
	}
}

func TestList_Pagination(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		mustRecord(t, repo, activityAt(fmt.Sprintf("a-%d", i), domain.EventGenerate, base.Add(time.Duration(i)*time.Second)))
	}

	got, err := repo.List(context.Background(), domain.ListFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d activities, want 2", len(got))
	}
	if got[0].ID != "a-3" || got[1].ID != "a-2" {
		t.Errorf("got %q, %q, want a-3, a-2", got[0].ID, got[1].ID)
	}

	got, err = repo.List(context.Background(), domain.ListFilter{Offset: 3})
	if err != nil {
		t.Fatalf("List with offset only failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d activities, want 2", len(got))
	}
}

func TestSummary(t *testing.T) {
	repo := newTestRepo(t)

	mustRecord(t, repo, domain.NewActivity("a-1", domain.EventGenerate, 20, ""))
	mustRecord(t, repo, domain.NewActivity("a-2", domain.EventGenerate, 20, ""))
	mustRecord(t, repo, domain.NewActivity("a-3", domain.EventCopySucceeded, 0, ""))

	got, err := repo.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	want := []domain.EventCount{
		{Event: domain.EventCopySucceeded, Count: 1},
		{Event: domain.EventGenerate, Count: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
