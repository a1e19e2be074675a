package retriever

import (
	"context"
	"fmt"
	"maps"

	"github.com/smallnest/researchflow/rag"
	"github.com/tmc/langchaingo/vectorstores"
)

// LangChainRetriever adapts a langchaingo vectorstores.VectorStore to the
// rag.Retriever interface, so any store langchaingo supports (Chroma,
// pgvector, Pinecone, ...) can back the workflow.
type LangChainRetriever struct {
	store   vectorstores.VectorStore
	options []vectorstores.Option
}

// NewLangChainRetriever creates a retriever over a langchaingo vector store.
func NewLangChainRetriever(store vectorstores.VectorStore, options ...vectorstores.Option) *LangChainRetriever {
	return &LangChainRetriever{
		store:   store,
		options: options,
	}
}

// Retrieve performs a similarity search through the underlying store.
//
// The generic langchaingo interface does not expose scores directly; when a
// store reports one in metadata ("_score" or "score") it is used, otherwise
// a rank-decreasing score is assigned so the result ordering is preserved.
func (r *LangChainRetriever) Retrieve(ctx context.Context, query string, topK int) ([]rag.SearchResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	docs, err := r.store.SimilaritySearch(ctx, query, topK, r.options...)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search failed: %v", rag.ErrRetrievalUnavailable, err)
	}

	results := make([]rag.SearchResult, len(docs))
	for i, doc := range docs {
		metadata := make(map[string]any)
		maps.Copy(metadata, doc.Metadata)

		score := float64(doc.Score)
		if score == 0 {
			if s, ok := metadataScore(metadata); ok {
				score = s
			} else {
				score = 1.0 - float64(i)*0.1
				if score < 0 {
					score = 0
				}
			}
		}

		id := fmt.Sprintf("doc_%d", i)
		if source, ok := metadata["source"]; ok {
			id = fmt.Sprintf("%v", source)
		}

		results[i] = rag.SearchResult{
			Document: rag.Document{
				ID:       id,
				Content:  doc.PageContent,
				Metadata: metadata,
			},
			Score: score,
		}
	}

	return results, nil
}

func metadataScore(metadata map[string]any) (float64, bool) {
	for _, key := range []string{"_score", "score"} {
		if v, ok := metadata[key]; ok {
			if f, ok := v.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}

var _ rag.Retriever = (*LangChainRetriever)(nil)
