package qrcode_test

import (
	"strings"
	"testing"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/qrcode"
)

func TestDataURL(t *testing.T) {
	u, err := qrcode.DataURL("http://localhost:3000/quizzes/7")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(u, "data:image/png;base64,") {
		t.Fatalf("not a png data url: %.40s...", u)
	}
}

func TestDataURL_EmptyText(t *testing.T) {
	_, err := qrcode.DataURL("")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestResourceURL(t *testing.T) {
	cases := []struct {
		typ  string
		id   int64
		want string
	}{
		{"material", 3, "http://localhost:3000/materials/3"},
		{"quiz", 7, "http://localhost:3000/quizzes/7"},
	}
	for _, tc := range cases {
		got, err := qrcode.ResourceURL("http://localhost:3000/", tc.typ, tc.id)
		if err != nil {
			t.Fatalf("%s: %v", tc.typ, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %q want %q", tc.typ, got, tc.want)
		}
	}

	if _, err := qrcode.ResourceURL("http://localhost:3000", "course", 1); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("unknown type: want validation error, got %v", err)
	}
}
