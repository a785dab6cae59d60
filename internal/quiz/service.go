package quiz

import (
	"context"
	"math"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

// Service enforces role-gated access to quizzes and owns grading.
// Nothing above it sees answer keys for student principals; nothing
// below it decides authorization.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

type QuestionInput struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type CreateQuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// CreateQuiz validates fail-fast and persists the quiz with all its
// questions atomically. Only teachers may create.
func (s *Service) CreateQuiz(ctx context.Context, p rbac.Principal, in CreateQuizInput) (Quiz, error) {
	if p.Role != rbac.RoleTeacher {
		return Quiz{}, apperr.Forbidden("only teachers can create quizzes")
	}
	if in.Title == "" {
		return Quiz{}, apperr.Validationf("title is required")
	}
	if len(in.Questions) == 0 {
		return Quiz{}, apperr.Validationf("at least one question is required")
	}
	questions := make([]Question, len(in.Questions))
	for i, q := range in.Questions {
		if q.Text == "" {
			return Quiz{}, apperr.Validationf("question %d: text is required", i+1)
		}
		if len(q.Options) < 2 {
			return Quiz{}, apperr.Validationf("question %d: at least two options are required", i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return Quiz{}, apperr.Validationf("question %d: correctAnswer must be between 0 and %d", i+1, len(q.Options)-1)
		}
		questions[i] = Question{Text: q.Text, Options: q.Options, CorrectAnswer: q.CorrectAnswer}
	}
	return s.store.SaveQuiz(ctx, Quiz{
		Title:       in.Title,
		Description: in.Description,
		TeacherID:   p.ID,
	}, questions)
}

// GetQuizForViewer builds the role-appropriate view of a quiz. Students
// never receive answer keys; teachers get the full questions whether or
// not they own the quiz.
func (s *Service) GetQuizForViewer(ctx context.Context, p rbac.Principal, quizID int64) (QuizView, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return QuizView{}, err
	}
	questions, err := s.store.QuestionsByQuiz(ctx, quizID)
	if err != nil {
		return QuizView{}, err
	}
	view := QuizView{Quiz: q, Questions: make([]QuestionView, len(questions))}
	for i, qq := range questions {
		qv := QuestionView{ID: qq.ID, Text: qq.Text, Options: qq.Options}
		if p.Role == rbac.RoleTeacher {
			correct := qq.CorrectAnswer
			qv.Correct = &correct
		}
		view.Questions[i] = qv
	}
	return view, nil
}

func (s *Service) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	return s.store.ListQuizzes(ctx)
}

// DeleteQuiz is an owner-only teacher mutation; questions cascade.
func (s *Service) DeleteQuiz(ctx context.Context, p rbac.Principal, quizID int64) error {
	if p.Role != rbac.RoleTeacher {
		return apperr.Forbidden("only teachers can delete quizzes")
	}
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if q.TeacherID != p.ID {
		return apperr.Forbidden("only the quiz owner can delete it")
	}
	return s.store.DeleteQuiz(ctx, quizID)
}

// GradeSubmission scores a student's answers against the quiz's answer
// keys and appends one progress row. Grading is lenient: answers that
// reference unknown questions count zero and do not fail the call.
// Total is the number of submitted answers, so an incomplete submission
// is scored against what was submitted. An empty submission grades to
// {0, 0, 0} — never a division fault.
func (s *Service) GradeSubmission(ctx context.Context, p rbac.Principal, quizID int64, answers []Answer) (GradeResult, error) {
	if p.Role != rbac.RoleStudent {
		return GradeResult{}, apperr.Forbidden("only students can submit quizzes")
	}
	if _, err := s.store.GetQuiz(ctx, quizID); err != nil {
		return GradeResult{}, err
	}
	questions, err := s.store.QuestionsByQuiz(ctx, quizID)
	if err != nil {
		return GradeResult{}, err
	}
	keys := make(map[int64]int, len(questions))
	for _, q := range questions {
		keys[q.ID] = q.CorrectAnswer
	}

	score := 0
	for _, a := range answers {
		if correct, ok := keys[a.QuestionID]; ok && correct == a.SelectedAnswer {
			score++
		}
	}
	res := GradeResult{Score: score, Total: len(answers)}
	if res.Total > 0 {
		res.Percentage = int(math.Round(float64(score) / float64(res.Total) * 100))
	}

	if _, err := s.store.AppendProgress(ctx, ProgressRow{
		StudentID: p.ID,
		QuizID:    quizID,
		Score:     score,
	}); err != nil {
		return GradeResult{}, err
	}
	return res, nil
}
