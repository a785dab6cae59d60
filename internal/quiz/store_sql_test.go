package quiz_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/db"
	"github.com/MakazhanAlpamys/aibio/internal/quiz"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "quiz.db") + "?mode=rwc&_pragma=busy_timeout(5000)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	// Retire connections aggressively so statements land on fresh pool
	// connections, the way a busy server's would.
	dbh.SetMaxIdleConns(0)
	return dbh
}

func seedTeacher(t *testing.T, dbh *sql.DB) int64 {
	t.Helper()
	var id int64
	err := dbh.QueryRowContext(context.Background(),
		`INSERT INTO users (username,password,role,created_at) VALUES ('mr-petrov','x','teacher',0) RETURNING id`,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	return id
}

func TestSQLStore_DeleteQuizCascadesQuestions(t *testing.T) {
	ctx := context.Background()
	dbh := openTestDB(t)
	store := quiz.NewSQLStore(dbh)
	teacherID := seedTeacher(t, dbh)

	q, err := store.SaveQuiz(ctx, quiz.Quiz{Title: "Cells", TeacherID: teacherID}, []quiz.Question{
		{Text: "q1", Options: []string{"A", "B", "C"}, CorrectAnswer: 1},
		{Text: "q2", Options: []string{"X", "Y"}, CorrectAnswer: 0},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	qs, err := store.QuestionsByQuiz(ctx, q.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("question rows before delete: got %d want 2", len(qs))
	}

	if err := store.DeleteQuiz(ctx, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int
	if err := dbh.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE quiz_id=$1`, q.ID).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("%d question rows remain after quiz delete, want 0", n)
	}

	if _, err := store.GetQuiz(ctx, q.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("quiz must be gone, got %v", err)
	}
	if err := store.DeleteQuiz(ctx, q.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete: want not found, got %v", err)
	}
}

func TestSQLStore_SaveQuizRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbh := openTestDB(t)
	store := quiz.NewSQLStore(dbh)
	teacherID := seedTeacher(t, dbh)

	q, err := store.SaveQuiz(ctx, quiz.Quiz{Title: "Cells", Description: "Basics", TeacherID: teacherID}, []quiz.Question{
		{Text: "q1", Options: []string{"A", "B"}, CorrectAnswer: 1},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.GetQuiz(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Cells" || got.Description != "Basics" || got.TeacherName != "mr-petrov" {
		t.Errorf("quiz mismatch: %+v", got)
	}
	qs, err := store.QuestionsByQuiz(ctx, q.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 1 || qs[0].Text != "q1" || qs[0].CorrectAnswer != 1 || len(qs[0].Options) != 2 {
		t.Errorf("question mismatch: %+v", qs)
	}
}
