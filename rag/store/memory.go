package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/smallnest/researchflow/rag"
)

// MemoryVectorStore is a simple in-memory vector store. It is safe for
// concurrent use and intended for demos and tests.
type MemoryVectorStore struct {
	mu         sync.RWMutex
	documents  []rag.Document
	embeddings [][]float32
	embedder   rag.Embedder
}

// NewMemoryVectorStore creates a new MemoryVectorStore. The embedder may be
// nil if all added documents carry their own embeddings.
func NewMemoryVectorStore(embedder rag.Embedder) *MemoryVectorStore {
	return &MemoryVectorStore{
		documents:  make([]rag.Document, 0),
		embeddings: make([][]float32, 0),
		embedder:   embedder,
	}
}

// Add adds documents, embedding any that have no embedding of their own.
func (s *MemoryVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		embedding := doc.Embedding
		if len(embedding) == 0 {
			if s.embedder == nil {
				return fmt.Errorf("no embedder configured and document %q has no embedding", doc.ID)
			}
			var err error
			embedding, err = s.embedder.EmbedDocument(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("failed to embed document %q: %w", doc.ID, err)
			}
		}
		s.documents = append(s.documents, doc)
		s.embeddings = append(s.embeddings, embedding)
	}
	return nil
}

// Search returns the k documents most similar to queryEmbedding, ordered by
// descending cosine similarity.
func (s *MemoryVectorStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.documents) == 0 {
		return []rag.SearchResult{}, nil
	}

	results := make([]rag.SearchResult, len(s.documents))
	for i, docEmb := range s.embeddings {
		results[i] = rag.SearchResult{
			Document: s.documents[i],
			Score:    cosineSimilarity(queryEmbedding, docEmb),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Delete removes documents by ID.
func (s *MemoryVectorStore) Delete(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	var docs []rag.Document
	var embs [][]float32
	for i, doc := range s.documents {
		if !idSet[doc.ID] {
			docs = append(docs, doc)
			embs = append(embs, s.embeddings[i])
		}
	}

	s.documents = docs
	s.embeddings = embs
	return nil
}

// Stats returns statistics about the store.
func (s *MemoryVectorStore) Stats(ctx context.Context) (*rag.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &rag.StoreStats{
		TotalDocuments: len(s.documents),
		LastUpdated:    time.Now(),
	}
	if len(s.embeddings) > 0 {
		stats.Dimension = len(s.embeddings[0])
	}
	return stats, nil
}

// Close clears all data.
func (s *MemoryVectorStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = make([]rag.Document, 0)
	s.embeddings = make([][]float32, 0)
	return nil
}

// cosineSimilarity calculates cosine similarity between two float32 vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct float64
	var normA float64
	var normB float64

	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
