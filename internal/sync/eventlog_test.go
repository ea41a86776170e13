package syncx_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mind-engage/mindengage-quizgen/internal/db"
	syncx "github.com/mind-engage/mindengage-quizgen/internal/sync"
)

func TestRecordAndReadBack(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer dbh.Close()

	repo := syncx.NewEventRepo(dbh, "")
	if err := repo.Record(ctx, "QuizGenerated", "quiz-1", map[string]any{"questions": 3}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.Record(ctx, "QuizExported", "quiz-1", map[string]any{"format": "pdf"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.Record(ctx, "QuizGenerated", "quiz-2", nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	evs, err := repo.ForKey(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("ForKey: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("want 2 events, got %d", len(evs))
	}
	if evs[0].Type != "QuizGenerated" || evs[1].Type != "QuizExported" {
		t.Fatalf("order = %s, %s", evs[0].Type, evs[1].Type)
	}
	if evs[0].SiteID != "local" || evs[0].DataJSON != `{"questions":3}` {
		t.Fatalf("event = %+v", evs[0])
	}
}
