package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/storage"
	"github.com/lib/pq"
)

func newEngagementRepo(t *testing.T) (*storage.EngagementRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return storage.NewEngagementRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestEngagementRepository_Insert(t *testing.T) {
	repo, mock := newEngagementRepo(t)

	event := domain.EngagementEvent{
		ID:        uuid.New(),
		UserID:    "user-1",
		ArticleID: "article-1",
		EventType: domain.EventLike,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO engagement_events").
		WithArgs(event.ID, event.UserID, event.ArticleID, event.EventType, event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Errorf("unmet expectations: %v", mockErr)
	}
}

func TestEngagementRepository_CountsFor(t *testing.T) {
	repo, mock := newEngagementRepo(t)

	rows := sqlmock.NewRows([]string{"article_id", "event_type", "count"}).
		AddRow("a1", "like", 3).
		AddRow("a1", "comment", 2).
		AddRow("a2", "share", 1)

	mock.ExpectQuery("SELECT article_id, event_type, COUNT").
		WithArgs(pq.Array([]string{"a1", "a2", "a3"})).
		WillReturnRows(rows)

	counts, err := repo.CountsFor(context.Background(), []string{"a1", "a2", "a3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := counts["a1"]; got.Likes != 3 || got.Comments != 2 {
		t.Errorf("a1 counts = %+v", got)
	}
	if got := counts["a2"]; got.Shares != 1 {
		t.Errorf("a2 counts = %+v", got)
	}
	// Articles without events must still be present with zero counts.
	if got, ok := counts["a3"]; !ok || got != (domain.EngagementCounts{}) {
		t.Errorf("a3 counts = %+v, ok=%v; want zero counts present", got, ok)
	}
}

func TestEngagementRepository_CountsFor_EmptyInput(t *testing.T) {
	repo, _ := newEngagementRepo(t)

	counts, err := repo.CountsFor(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected empty map, got %v", counts)
	}
}

func TestEngagementRepository_ClearHistory_Interactions(t *testing.T) {
	repo, mock := newEngagementRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM engagement_events").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"event_type"}).
			AddRow("like").
			AddRow("like").
			AddRow("share").
			AddRow("poll_vote"))
	mock.ExpectCommit()

	deleted, err := repo.ClearHistory(context.Background(), "user-1", domain.ClearInteractions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.DeletedCounts{Likes: 2, Shares: 1, PollVotes: 1}
	if deleted != want {
		t.Errorf("deleted = %+v, want %+v", deleted, want)
	}
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Errorf("unmet expectations: %v", mockErr)
	}
}

func TestEngagementRepository_ClearHistory_All(t *testing.T) {
	repo, mock := newEngagementRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM engagement_events").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"event_type"}).AddRow("comment"))
	mock.ExpectExec("DELETE FROM user_events").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM user_preferences").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := repo.ClearHistory(context.Background(), "user-1", domain.ClearAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.DeletedCounts{Comments: 1, Events: 4, Preferences: 2}
	if deleted != want {
		t.Errorf("deleted = %+v, want %+v", deleted, want)
	}
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Errorf("unmet expectations: %v", mockErr)
	}
}

func TestEngagementRepository_ClearHistory_ScopesAreIsolated(t *testing.T) {
	repo, mock := newEngagementRepo(t)

	// Only user_preferences may be touched for the preferences scope.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_preferences").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.ClearHistory(context.Background(), "user-1", domain.ClearPreferences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deleted.Likes != 0 || deleted.Events != 0 || deleted.Preferences != 1 {
		t.Errorf("deleted = %+v, want only preferences", deleted)
	}
	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Errorf("unmet expectations: %v", mockErr)
	}
}
