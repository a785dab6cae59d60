// Package progress derives per-student and cross-student statistics
// from recorded quiz attempts.
package progress

import (
	"context"

	"github.com/MakazhanAlpamys/aibio/internal/quiz"
)

// Source is the slice of the quiz store the aggregator reads from.
type Source interface {
	ListProgressByStudent(ctx context.Context, studentID int64) ([]quiz.ProgressRow, error)
	ListProgressAll(ctx context.Context) ([]quiz.ProgressRow, error)
}

type Aggregator struct {
	src Source
}

func NewAggregator(src Source) *Aggregator { return &Aggregator{src: src} }

type StudentSummary struct {
	Entries        []quiz.ProgressRow `json:"entries"`
	CompletedCount int                `json:"completedCount"`
	AverageScore   float64            `json:"averageScore"`
}

type TeacherSummary struct {
	Entries              []quiz.ProgressRow `json:"entries"`
	DistinctStudentCount int                `json:"distinctStudentCount"`
	DistinctQuizCount    int                `json:"distinctQuizCount"`
}

// StudentSummary lists a student's attempts most-recent-first with the
// attempt count and mean score. No attempts means an average of zero,
// not a division fault.
func (a *Aggregator) StudentSummary(ctx context.Context, studentID int64) (StudentSummary, error) {
	rows, err := a.src.ListProgressByStudent(ctx, studentID)
	if err != nil {
		return StudentSummary{}, err
	}
	sum := StudentSummary{Entries: rows, CompletedCount: len(rows)}
	if len(rows) > 0 {
		total := 0
		for _, r := range rows {
			total += r.Score
		}
		sum.AverageScore = float64(total) / float64(len(rows))
	}
	return sum, nil
}

// TeacherSummary is the full cross-student listing with distinct
// student and quiz counts over the whole result set. It is deliberately
// not filtered to the requesting teacher's own quizzes: any teacher
// sees all students' results on all quizzes.
func (a *Aggregator) TeacherSummary(ctx context.Context) (TeacherSummary, error) {
	rows, err := a.src.ListProgressAll(ctx)
	if err != nil {
		return TeacherSummary{}, err
	}
	students := map[int64]struct{}{}
	quizzes := map[int64]struct{}{}
	for _, r := range rows {
		students[r.StudentID] = struct{}{}
		quizzes[r.QuizID] = struct{}{}
	}
	return TeacherSummary{
		Entries:              rows,
		DistinctStudentCount: len(students),
		DistinctQuizCount:    len(quizzes),
	}, nil
}
