// Package qrcode renders shareable resource links as QR PNG data URLs.
package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"

	qr "github.com/skip2/go-qrcode"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
)

const pngSize = 256

// DataURL encodes text as a QR PNG and returns it as a data URL the
// frontend can drop into an <img> src.
func DataURL(text string) (string, error) {
	if text == "" {
		return "", apperr.Validationf("text is required")
	}
	png, err := qr.Encode(text, qr.Medium, pngSize)
	if err != nil {
		return "", apperr.Internal("failed to generate qr code", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// ResourceURL builds the frontend link for a material or quiz.
func ResourceURL(baseURL, typ string, id int64) (string, error) {
	base := strings.TrimSuffix(baseURL, "/")
	switch typ {
	case "material":
		return fmt.Sprintf("%s/materials/%d", base, id), nil
	case "quiz":
		return fmt.Sprintf("%s/quizzes/%d", base, id), nil
	}
	return "", apperr.Validationf("type must be %q or %q", "material", "quiz")
}
