package quiz

import "context"

// Store is the quiz persistence boundary. SaveQuiz is atomic: the quiz
// row and all question rows commit together or not at all.
// QuestionsByQuiz always returns full questions, keys included —
// redaction is the service's job, never the repository's.
type Store interface {
	SaveQuiz(ctx context.Context, q Quiz, questions []Question) (Quiz, error)
	GetQuiz(ctx context.Context, id int64) (Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	QuestionsByQuiz(ctx context.Context, quizID int64) ([]Question, error)
	DeleteQuiz(ctx context.Context, id int64) error

	AppendProgress(ctx context.Context, rec ProgressRow) (ProgressRow, error)
	ListProgressByStudent(ctx context.Context, studentID int64) ([]ProgressRow, error)
	ListProgressAll(ctx context.Context) ([]ProgressRow, error)
}
