package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/chat"
)

func TestGeminiClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "What is photosynthesis?" {
			t.Errorf("unexpected request payload: %+v", req)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"It converts light into sugar."}]}}]}`))
	}))
	defer srv.Close()

	c := chat.NewGeminiClient("test-key", "gemini-1.5-flash", chat.WithBaseURL(srv.URL))
	got, err := c.Generate(context.Background(), "What is photosynthesis?")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "It converts light into sugar." {
		t.Fatalf("got %q", got)
	}
}

func TestGeminiClient_UpstreamErrorIsInternal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := chat.NewGeminiClient("test-key", "gemini-1.5-flash", chat.WithBaseURL(srv.URL))
	_, err := c.Generate(context.Background(), "hi")
	if apperr.KindOf(err) != apperr.KindInternal {
		t.Fatalf("want internal error, got %v", err)
	}
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := chat.NewGeminiClient("test-key", "gemini-1.5-flash", chat.WithBaseURL(srv.URL))
	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("want error on empty candidates")
	}
}
