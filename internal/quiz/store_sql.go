package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// SaveQuiz writes the quiz row and all question rows in one
// transaction. Any failure, including context cancellation, rolls the
// whole write back so no orphaned quiz row survives.
func (s *SQLStore) SaveQuiz(ctx context.Context, q Quiz, questions []Question) (Quiz, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Quiz{}, apperr.Internal("failed to save quiz", err)
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO quizzes (title,description,teacher_id,created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		q.Title, q.Description, q.TeacherID, now.Unix(),
	).Scan(&q.ID)
	if err != nil {
		return Quiz{}, apperr.Internal("failed to save quiz", err)
	}
	q.CreatedAt = now

	for i := range questions {
		oj, err := json.Marshal(questions[i].Options)
		if err != nil {
			return Quiz{}, apperr.Internal("failed to save quiz", err)
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO questions (quiz_id,question,options_json,correct_answer,created_at) VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			q.ID, questions[i].Text, string(oj), questions[i].CorrectAnswer, now.Unix(),
		).Scan(&questions[i].ID)
		if err != nil {
			return Quiz{}, apperr.Internal("failed to save quiz", err)
		}
		questions[i].QuizID = q.ID
	}

	if err := tx.Commit(); err != nil {
		return Quiz{}, apperr.Internal("failed to save quiz", err)
	}
	return q, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id int64) (Quiz, error) {
	var (
		q       Quiz
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT q.id, q.title, q.description, q.teacher_id, u.username, q.created_at
		   FROM quizzes q JOIN users u ON q.teacher_id = u.id
		  WHERE q.id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.Description, &q.TeacherID, &q.TeacherName, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, apperr.NotFoundf("quiz %d not found", id)
		}
		return Quiz{}, apperr.Internal("failed to load quiz", err)
	}
	q.CreatedAt = time.Unix(created, 0)
	return q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.title, q.description, q.teacher_id, u.username, q.created_at
		   FROM quizzes q JOIN users u ON q.teacher_id = u.id
		  ORDER BY q.created_at DESC, q.id DESC`)
	if err != nil {
		return nil, apperr.Internal("failed to list quizzes", err)
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		var (
			q       Quiz
			created int64
		)
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.TeacherID, &q.TeacherName, &created); err != nil {
			return nil, apperr.Internal("failed to list quizzes", err)
		}
		q.CreatedAt = time.Unix(created, 0)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list quizzes", err)
	}
	return out, nil
}

func (s *SQLStore) QuestionsByQuiz(ctx context.Context, quizID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, question, options_json, correct_answer FROM questions WHERE quiz_id = $1 ORDER BY id`,
		quizID)
	if err != nil {
		return nil, apperr.Internal("failed to load questions", err)
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		var (
			q  Question
			oj string
		)
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &oj, &q.CorrectAnswer); err != nil {
			return nil, apperr.Internal("failed to load questions", err)
		}
		if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
			return nil, apperr.Internal("failed to load questions", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to load questions", err)
	}
	return out, nil
}

// DeleteQuiz removes the quiz row; questions go with it via the
// ON DELETE CASCADE foreign key.
func (s *SQLStore) DeleteQuiz(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal("failed to delete quiz", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFoundf("quiz %d not found", id)
	}
	return nil
}

func (s *SQLStore) AppendProgress(ctx context.Context, rec ProgressRow) (ProgressRow, error) {
	now := time.Now()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO student_progress (student_id,quiz_id,score,completed_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		rec.StudentID, rec.QuizID, rec.Score, now.Unix(),
	).Scan(&rec.ID)
	if err != nil {
		return ProgressRow{}, apperr.Internal("failed to record progress", err)
	}
	rec.CompletedAt = now
	return rec, nil
}

func (s *SQLStore) ListProgressByStudent(ctx context.Context, studentID int64) ([]ProgressRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sp.id, sp.student_id, sp.quiz_id, q.title, sp.score, sp.completed_at
		   FROM student_progress sp JOIN quizzes q ON sp.quiz_id = q.id
		  WHERE sp.student_id = $1
		  ORDER BY sp.completed_at DESC, sp.id DESC`, studentID)
	if err != nil {
		return nil, apperr.Internal("failed to load progress", err)
	}
	defer rows.Close()
	return scanProgress(rows, false)
}

// ListProgressAll is the teacher listing: every student's attempt on
// every quiz, unscoped by quiz ownership.
func (s *SQLStore) ListProgressAll(ctx context.Context) ([]ProgressRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sp.id, sp.student_id, u.username, sp.quiz_id, q.title, sp.score, sp.completed_at
		   FROM student_progress sp
		   JOIN users u ON sp.student_id = u.id
		   JOIN quizzes q ON sp.quiz_id = q.id
		  ORDER BY sp.completed_at DESC, sp.id DESC`)
	if err != nil {
		return nil, apperr.Internal("failed to load progress", err)
	}
	defer rows.Close()
	return scanProgress(rows, true)
}

func scanProgress(rows *sql.Rows, withStudent bool) ([]ProgressRow, error) {
	out := []ProgressRow{}
	for rows.Next() {
		var (
			rec       ProgressRow
			completed int64
			err       error
		)
		if withStudent {
			err = rows.Scan(&rec.ID, &rec.StudentID, &rec.StudentName, &rec.QuizID, &rec.QuizTitle, &rec.Score, &completed)
		} else {
			err = rows.Scan(&rec.ID, &rec.StudentID, &rec.QuizID, &rec.QuizTitle, &rec.Score, &completed)
		}
		if err != nil {
			return nil, apperr.Internal("failed to load progress", err)
		}
		rec.CompletedAt = time.Unix(completed, 0)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to load progress", err)
	}
	return out, nil
}
