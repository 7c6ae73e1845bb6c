package gemini_provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mathtrail/currikit/internal/httpx"
)

const geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// client implements the provider interface against the Gemini REST API.
type client struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	http        *httpx.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// NewClient creates a new Gemini client.
func NewClient(apiKey, model string, temperature float64, maxTokens int, timeout time.Duration, retries int, backoff time.Duration) *client {
	return &client{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		http:        httpx.NewClient(timeout, retries, backoff),
	}
}

// Completion sends one prompt and returns the raw model text.
func (c *client) Completion(ctx context.Context, system, user string) (string, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: user}}}},
		GenerationConfig: &generationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		},
	}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	var resp generateResponse
	url := fmt.Sprintf(geminiAPIURL, c.model)
	headers := map[string]string{"x-goog-api-key": c.apiKey}
	if err := c.http.DoJSON(ctx, "POST", url, headers, req, &resp); err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
