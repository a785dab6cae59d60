package http

import (
	"net/http"

	"github.com/MakazhanAlpamys/aibio/internal/chat"
)

type chatReq struct {
	Message string `json:"message" validate:"required"`
}

// POST /api/chat
func ChatHandler(gen chat.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, err)
			return
		}
		resp, err := gen.Generate(r.Context(), req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"response": resp})
	}
}
