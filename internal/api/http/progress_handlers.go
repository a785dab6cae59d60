package http

import (
	"net/http"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/progress"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

// GET /api/progress — the calling student's own attempt history.
func StudentProgressHandler(agg *progress.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := rbac.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperr.Unauthorized("authorization required"))
			return
		}
		sum, err := agg.StudentSummary(r.Context(), p.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

// GET /api/teacher/progress — all students across all quizzes.
func TeacherProgressHandler(agg *progress.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := agg.TeacherSummary(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}
