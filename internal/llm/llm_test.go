package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantType interface{}
		wantErr  bool
	}{
		{name: "default provider", provider: "", wantType: &AnthropicClient{}},
		{name: "anthropic", provider: ProviderAnthropic, wantType: &AnthropicClient{}},
		{name: "openai", provider: ProviderOpenAI, wantType: &OpenAIClient{}},
		{name: "unknown", provider: "gigachat", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(Options{Provider: tt.provider, APIKey: "test", Timeout: time.Second})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownProvider)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, client)
		})
	}
}

func TestAnthropicClient_Complete(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/messages"), "path %s", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "{\"summary\":\"ok\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key", server.URL+"/", "", server.Client())
	text, err := client.Complete(context.Background(), "describe", 1024)

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, text)
	assert.Equal(t, DefaultAnthropicModel, gotBody["model"])
	assert.EqualValues(t, 1024, gotBody["max_tokens"])
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key", server.URL+"/", "m", server.Client())
	_, err := client.Complete(context.Background(), "describe", 16)

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnthropicClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	client := NewAnthropicClient("bad-key", server.URL+"/", "", server.Client())
	_, err := client.Complete(context.Background(), "describe", 16)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic request failed")
}

func TestOpenAIClient_Complete(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), "path %s", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "hello"}}]
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL+"/v1/", "", server.Client())
	text, err := client.Complete(context.Background(), "describe", 256)

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, DefaultOpenAIModel, gotBody["model"])
	assert.EqualValues(t, 256, gotBody["max_tokens"])
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL+"/v1/", "m", server.Client())
	_, err := client.Complete(context.Background(), "describe", 16)

	assert.ErrorIs(t, err, ErrEmptyResponse)
}
