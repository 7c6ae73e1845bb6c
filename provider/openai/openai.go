package openai_provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mathtrail/currikit/internal/httpx"
)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// client implements the provider interface using OpenAI's API.
type client struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	http        *httpx.Client
}

// Message represents a message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient creates a new OpenAI client.
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
	messages := make([]Message, 0, 2)
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, Message{Role: "user", Content: user})

	req := request{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var resp response
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := c.http.DoJSON(ctx, "POST", openaiAPIURL, headers, req, &resp); err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
