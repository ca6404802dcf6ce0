package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicClient talks to the Anthropic Messages API
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

// NewAnthropicClient creates a Messages API client. An empty baseURL uses the public endpoint.
func NewAnthropicClient(key, baseURL, model string, httpClient *http.Client) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultAnthropicModel
	}

	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Complete returns the text of the first content block of the reply
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(message.Content) == 0 {
		return "", ErrEmptyResponse
	}
	return message.Content[0].Text, nil
}
