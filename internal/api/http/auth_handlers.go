package http

import (
	"net/http"

	"github.com/MakazhanAlpamys/aibio/internal/auth"
)

type registerReq struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=100"`
	Role     string `json:"role" validate:"required"`
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/register
func RegisterHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, err)
			return
		}
		u, err := svc.Register(r.Context(), req.Username, req.Password, req.Role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"role":     u.Role,
		})
	}
}

// POST /api/login
func LoginHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, err)
			return
		}
		u, tok, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"role":     u.Role,
			"token":    tok,
		})
	}
}
