package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/quiz"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

// POST /api/quizzes
func CreateQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := rbac.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperr.Unauthorized("authorization required"))
			return
		}
		var in quiz.CreateQuizInput
		if err := decodeValid(r, &in); err != nil {
			writeError(w, err)
			return
		}
		q, err := svc.CreateQuiz(r.Context(), p, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":          q.ID,
			"title":       q.Title,
			"description": q.Description,
		})
	}
}

// GET /api/quizzes
func ListQuizzesHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListQuizzes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /api/quizzes/{quizID}
func GetQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := rbac.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperr.Unauthorized("authorization required"))
			return
		}
		id, err := quizIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		view, err := svc.GetQuizForViewer(r.Context(), p, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// DELETE /api/quizzes/{quizID}
func DeleteQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := rbac.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperr.Unauthorized("authorization required"))
			return
		}
		id, err := quizIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := svc.DeleteQuiz(r.Context(), p, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

type submitReq struct {
	Answers []quiz.Answer `json:"answers"`
}

// POST /api/quizzes/{quizID}/submit
func SubmitQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := rbac.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperr.Unauthorized("authorization required"))
			return
		}
		id, err := quizIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var req submitReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, err)
			return
		}
		res, err := svc.GradeSubmission(r.Context(), p, id, req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func quizIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "quizID"), 10, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid quiz id")
	}
	return id, nil
}
