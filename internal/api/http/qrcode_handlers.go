package http

import (
	"net/http"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/qrcode"
)

type qrcodeReq struct {
	Text string `json:"text"`
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// POST /api/qrcode — encode free text, or a frontend link to a material
// or quiz when type+id are given.
func QRCodeHandler(frontendURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req qrcodeReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, err)
			return
		}
		text := req.Text
		if text == "" {
			if req.Type == "" || req.ID == 0 {
				writeError(w, apperr.Validationf("text, or type and id, are required"))
				return
			}
			u, err := qrcode.ResourceURL(frontendURL, req.Type, req.ID)
			if err != nil {
				writeError(w, err)
				return
			}
			text = u
		}
		dataURL, err := qrcode.DataURL(text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"qrCode": dataURL})
	}
}
