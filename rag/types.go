package rag

import (
	"context"
	"time"
)

// Document represents a piece of retrievable content with metadata.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
}

// SearchResult is a document paired with its similarity score.
// Collections of SearchResult are rank ordered: scores are non-increasing
// and higher means more similar.
type SearchResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// StoreStats reports basic statistics about a vector store.
type StoreStats struct {
	TotalDocuments int       `json:"total_documents"`
	Dimension      int       `json:"dimension"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Retriever retrieves the topK most similar documents for a query.
//
// Implementations return at most topK results ordered by descending score.
// "No results" is an empty slice, not an error. An unreachable backing
// store is reported as an error wrapping ErrRetrievalUnavailable so the
// caller can degrade gracefully.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]SearchResult, error)
}

// Embedder generates vector embeddings for text.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// VectorStore stores documents with their embeddings and performs
// similarity search over them.
type VectorStore interface {
	Add(ctx context.Context, docs []Document) error
	Search(ctx context.Context, queryEmbedding []float32, k int) ([]SearchResult, error)
	Delete(ctx context.Context, ids []string) error
	Stats(ctx context.Context) (*StoreStats, error)
	Close() error
}

// DocumentLoader loads documents from some source.
type DocumentLoader interface {
	Load(ctx context.Context) ([]Document, error)
}

// TextSplitter splits text and documents into smaller chunks.
type TextSplitter interface {
	SplitText(text string) []string
	SplitDocuments(docs []Document) []Document
}
