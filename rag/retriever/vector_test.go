package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/smallnest/researchflow/rag"
	"github.com/stretchr/testify/assert"
)

func TestVectorRetriever(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{
		results: []rag.SearchResult{
			{Document: rag.Document{ID: "1", Content: "first"}, Score: 0.9},
			{Document: rag.Document{ID: "2", Content: "second"}, Score: 0.6},
			{Document: rag.Document{ID: "3", Content: "third"}, Score: 0.2},
		},
	}

	t.Run("Retrieves topK results", func(t *testing.T) {
		r := NewVectorRetriever(store, &mockEmbedder{})
		results, err := r.Retrieve(ctx, "query", 2)
		assert.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Equal(t, "1", results[0].Document.ID)
	})

	t.Run("Score threshold filters results", func(t *testing.T) {
		r := NewVectorRetriever(store, &mockEmbedder{}, WithScoreThreshold(0.5))
		results, err := r.Retrieve(ctx, "query", 3)
		assert.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("Invalid topK", func(t *testing.T) {
		r := NewVectorRetriever(store, &mockEmbedder{})
		_, err := r.Retrieve(ctx, "query", 0)
		assert.Error(t, err)
	})

	t.Run("Embedder failure maps to ErrRetrievalUnavailable", func(t *testing.T) {
		r := NewVectorRetriever(store, &mockEmbedder{fail: true})
		_, err := r.Retrieve(ctx, "query", 3)
		assert.ErrorIs(t, err, rag.ErrRetrievalUnavailable)
	})

	t.Run("Store failure maps to ErrRetrievalUnavailable", func(t *testing.T) {
		broken := &mockStore{err: errors.New("connection refused")}
		r := NewVectorRetriever(broken, &mockEmbedder{})
		_, err := r.Retrieve(ctx, "query", 3)
		assert.ErrorIs(t, err, rag.ErrRetrievalUnavailable)
	})
}
