package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/material"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

type createMaterialReq struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// POST /api/materials
func CreateMaterialHandler(svc *material.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := rbac.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperr.Unauthorized("authorization required"))
			return
		}
		var req createMaterialReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, err)
			return
		}
		m, err := svc.Create(r.Context(), p, req.Title, req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

// GET /api/materials
func ListMaterialsHandler(svc *material.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /api/materials/{materialID}
func GetMaterialHandler(svc *material.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "materialID"), 10, 64)
		if err != nil {
			writeError(w, apperr.Validationf("invalid material id"))
			return
		}
		m, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}
