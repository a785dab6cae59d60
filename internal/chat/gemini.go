// Package chat proxies study questions to the Gemini generateContent
// REST API.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
)

// Generator answers a single free-form prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

type Option func(*GeminiClient)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option { return func(c *GeminiClient) { c.baseURL = u } }

func WithHTTPClient(h *http.Client) Option { return func(c *GeminiClient) { c.http = h } }

func NewGeminiClient(apiKey, model string, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", apperr.Internal("failed to reach the assistant", err)
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Internal("failed to reach the assistant", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperr.Internal("failed to reach the assistant", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperr.Internal("failed to reach the assistant",
			fmt.Errorf("gemini: status %d: %s", resp.StatusCode, detail))
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Internal("failed to reach the assistant", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", apperr.Internal("failed to reach the assistant", fmt.Errorf("gemini: empty response"))
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
