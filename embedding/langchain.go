package embedding

import (
	"context"

	"github.com/smallnest/researchflow/rag"
	"github.com/tmc/langchaingo/embeddings"
)

// LangChainEmbedder adapts a langchaingo embeddings.Embedder to the
// rag.Embedder interface.
type LangChainEmbedder struct {
	embedder  embeddings.Embedder
	dimension int
}

// NewLangChainEmbedder creates an adapter for langchaingo embedders. The
// dimension is probed lazily on first use when not provided.
func NewLangChainEmbedder(embedder embeddings.Embedder, dimension int) *LangChainEmbedder {
	return &LangChainEmbedder{
		embedder:  embedder,
		dimension: dimension,
	}
}

// EmbedDocument embeds a single text using the underlying embedder.
func (l *LangChainEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	embedding, err := l.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	result := make([]float32, len(embedding))
	for i, val := range embedding {
		result[i] = float32(val)
	}
	if l.dimension == 0 {
		l.dimension = len(result)
	}
	return result, nil
}

// EmbedDocuments embeds multiple texts using the underlying embedder.
func (l *LangChainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := l.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}

	result := make([][]float32, len(vectors))
	for i, vector := range vectors {
		result[i] = make([]float32, len(vector))
		for j, val := range vector {
			result[i][j] = float32(val)
		}
	}
	if l.dimension == 0 && len(result) > 0 {
		l.dimension = len(result[0])
	}
	return result, nil
}

// Dimension returns the embedding dimension, probing the underlying
// embedder when it was not configured.
func (l *LangChainEmbedder) Dimension() int {
	if l.dimension == 0 {
		if probe, err := l.embedder.EmbedQuery(context.Background(), "test"); err == nil {
			l.dimension = len(probe)
		}
	}
	return l.dimension
}

var _ rag.Embedder = (*LangChainEmbedder)(nil)
