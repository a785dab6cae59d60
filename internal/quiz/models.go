package quiz

import "time"

type Quiz struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TeacherID   int64     `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Question carries the answer key. It never crosses the HTTP boundary
// directly; views are built per role by the service.
type Question struct {
	ID            int64    `json:"id"`
	QuizID        int64    `json:"quizId"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// QuestionView is a role-shaped projection of a question. For student
// viewers Correct stays nil and the key is omitted from the encoding
// entirely; for teachers it points at the correct option index.
type QuestionView struct {
	ID      int64    `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct *int     `json:"correctAnswer,omitempty"`
}

type QuizView struct {
	Quiz
	Questions []QuestionView `json:"questions"`
}

// Answer is one element of a transient submission.
type Answer struct {
	QuestionID     int64 `json:"questionId"`
	SelectedAnswer int   `json:"selectedAnswer"`
}

// GradeResult is the outcome of grading one submission. Total counts
// the answers submitted, not the quiz's question count.
type GradeResult struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ProgressRow is one recorded quiz attempt, joined with display names
// for listing.
type ProgressRow struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	StudentName string    `json:"studentName,omitempty"`
	QuizID      int64     `json:"quizId"`
	QuizTitle   string    `json:"quizTitle"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}
