package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOpenAIModelRequiresKey(t *testing.T) {
	_, err := NewOpenAIModel(OpenAIOptions{})
	assert.Error(t, err)
}

func TestOpenAIModelComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": "Machine learning is a field of AI."},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	m, err := NewOpenAIModel(OpenAIOptions{APIKey: "test-key", BaseURL: server.URL})
	assert.NoError(t, err)

	answer, err := m.Complete(context.Background(), "You are a research assistant.", "What is machine learning?")
	assert.NoError(t, err)
	assert.Equal(t, "Machine learning is a field of AI.", answer)
}

func TestCompleteFunc(t *testing.T) {
	m := CompleteFunc(func(ctx context.Context, system, user string) (string, error) {
		return system + "|" + user, nil
	})
	out, err := m.Complete(context.Background(), "s", "u")
	assert.NoError(t, err)
	assert.Equal(t, "s|u", out)
}
