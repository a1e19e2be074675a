package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOpenAIEmbedderRequiresKey(t *testing.T) {
	_, err := NewOpenAIEmbedder(OpenAIOptions{})
	assert.Error(t, err)
}

func TestOpenAIEmbedder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)

		var req struct {
			Input []string `json:"input"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type item struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}
		data := make([]item, len(req.Input))
		for i := range req.Input {
			data[i] = item{Object: "embedding", Index: i, Embedding: []float32{0.1, 0.2, 0.3}}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  "text-embedding-ada-002",
		})
	}))
	defer server.Close()

	e, err := NewOpenAIEmbedder(OpenAIOptions{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		Dimension: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, e.Dimension())

	t.Run("EmbedDocument", func(t *testing.T) {
		emb, err := e.EmbedDocument(context.Background(), "hello")
		assert.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, emb)
	})

	t.Run("EmbedDocuments", func(t *testing.T) {
		embs, err := e.EmbedDocuments(context.Background(), []string{"a", "b"})
		assert.NoError(t, err)
		assert.Len(t, embs, 2)
	})
}
