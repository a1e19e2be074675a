package retriever

import (
	"context"
	"fmt"

	"github.com/smallnest/researchflow/rag"
)

// VectorRetriever retrieves documents by embedding the query and running a
// similarity search against a vector store.
type VectorRetriever struct {
	store          rag.VectorStore
	embedder       rag.Embedder
	scoreThreshold float64
}

// VectorRetrieverOption configures the VectorRetriever
type VectorRetrieverOption func(*VectorRetriever)

// WithScoreThreshold drops results scoring below the threshold.
func WithScoreThreshold(threshold float64) VectorRetrieverOption {
	return func(r *VectorRetriever) {
		r.scoreThreshold = threshold
	}
}

// NewVectorRetriever creates a new vector retriever.
func NewVectorRetriever(store rag.VectorStore, embedder rag.Embedder, opts ...VectorRetrieverOption) *VectorRetriever {
	r := &VectorRetriever{
		store:    store,
		embedder: embedder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve embeds the query and returns the topK most similar documents.
// Failures of the embedder or the store are reported as
// rag.ErrRetrievalUnavailable so callers can degrade to an empty result.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, topK int) ([]rag.SearchResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	queryEmbedding, err := r.embedder.EmbedDocument(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %v", rag.ErrRetrievalUnavailable, err)
	}

	results, err := r.store.Search(ctx, queryEmbedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: vector search failed: %v", rag.ErrRetrievalUnavailable, err)
	}

	if r.scoreThreshold > 0 {
		filtered := make([]rag.SearchResult, 0, len(results))
		for _, result := range results {
			if result.Score >= r.scoreThreshold {
				filtered = append(filtered, result)
			}
		}
		results = filtered
	}

	return results, nil
}

var _ rag.Retriever = (*VectorRetriever)(nil)
