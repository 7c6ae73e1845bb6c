// Package provider abstracts the LLM backends used for question generation
// and judging. The pipeline only ever needs a single completion primitive;
// everything else (prompting, parsing, pacing) lives with the callers.
package provider

import (
	"context"
	"errors"
	"time"

	gemini_provider "github.com/mathtrail/currikit/provider/gemini"
	openai_provider "github.com/mathtrail/currikit/provider/openai"
)

// Client names a supported LLM backend.
type Client string

const (
	OpenAI Client = "openai"
	Gemini Client = "gemini"
)

// Provider is the interface all LLM implementations satisfy.
type Provider interface {
	Completion(ctx context.Context, system, user string) (string, error)
}

// Options configures a provider client.
type Options struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
	Backoff     time.Duration
}

// New creates an LLM client for the named backend.
func New(client Client, opts Options) (Provider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("provider: api key not set")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	switch client {
	case OpenAI:
		model := opts.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return openai_provider.NewClient(opts.APIKey, model, opts.Temperature, opts.MaxTokens, opts.Timeout, opts.MaxRetries, opts.Backoff), nil
	case Gemini:
		model := opts.Model
		if model == "" {
			model = "gemini-2.0-flash"
		}
		return gemini_provider.NewClient(opts.APIKey, model, opts.Temperature, opts.MaxTokens, opts.Timeout, opts.MaxRetries, opts.Backoff), nil
	default:
		return nil, errors.New("provider: unsupported LLM backend")
	}
}
