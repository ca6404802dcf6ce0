package llm

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// DefaultOpenAIModel is used when no model is configured
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient talks to OpenAI or any server exposing the chat completions API
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a chat completions client. baseURL may point at a compatible server.
func NewOpenAIClient(key, baseURL, model string, httpClient *http.Client) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Complete returns the content of the first choice
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(int64(maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}
