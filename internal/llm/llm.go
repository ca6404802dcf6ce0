// Package llm wraps the language-model providers used to analyze outfit descriptions.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Supported providers
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

var (
	ErrEmptyResponse   = errors.New("model returned no content")
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// Completer sends a single-turn prompt to a language model and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Options configures a provider client
type Options struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// New builds the client for the configured provider
func New(opts Options) (Completer, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}

	switch opts.Provider {
	case ProviderAnthropic, "":
		return NewAnthropicClient(opts.APIKey, opts.BaseURL, opts.Model, httpClient), nil
	case ProviderOpenAI:
		return NewOpenAIClient(opts.APIKey, opts.BaseURL, opts.Model, httpClient), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, opts.Provider)
	}
}
