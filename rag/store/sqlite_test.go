package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/smallnest/researchflow/rag"
	"github.com/stretchr/testify/assert"
)

func TestSqliteVectorStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "docs.db")

	s, err := NewSqliteVectorStore(SqliteOptions{Path: path}, &mockEmbedder{dim: 3})
	assert.NoError(t, err)
	defer s.Close()

	t.Run("Add and Search", func(t *testing.T) {
		docs := []rag.Document{
			{ID: "1", Content: "machine learning basics", Embedding: []float32{1, 0, 0}, Metadata: map[string]any{"source": "a.txt"}},
			{ID: "2", Content: "cooking pasta", Embedding: []float32{0, 1, 0}},
			{ID: "3", Content: "deep learning", Embedding: []float32{0.9, 0.1, 0}},
		}
		err := s.Add(ctx, docs)
		assert.NoError(t, err)

		results, err := s.Search(ctx, []float32{1, 0, 0}, 2)
		assert.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Equal(t, "1", results[0].Document.ID)
		assert.Equal(t, "3", results[1].Document.ID)
		assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
		assert.Equal(t, "a.txt", results[0].Document.Metadata["source"])
	})

	t.Run("Upsert replaces content", func(t *testing.T) {
		err := s.Add(ctx, []rag.Document{
			{ID: "1", Content: "updated content", Embedding: []float32{1, 0, 0}},
		})
		assert.NoError(t, err)

		stats, err := s.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 3, stats.TotalDocuments)

		results, err := s.Search(ctx, []float32{1, 0, 0}, 1)
		assert.NoError(t, err)
		assert.Equal(t, "updated content", results[0].Document.Content)
	})

	t.Run("Delete", func(t *testing.T) {
		err := s.Delete(ctx, []string{"2"})
		assert.NoError(t, err)

		stats, _ := s.Stats(ctx)
		assert.Equal(t, 2, stats.TotalDocuments)
	})

	t.Run("Empty search result", func(t *testing.T) {
		err := s.Delete(ctx, []string{"1", "3"})
		assert.NoError(t, err)

		results, err := s.Search(ctx, []float32{1, 0, 0}, 5)
		assert.NoError(t, err)
		assert.Empty(t, results)
	})
}
