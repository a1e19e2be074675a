package retriever

import (
	"context"
	"errors"

	"github.com/smallnest/researchflow/rag"
)

type mockEmbedder struct {
	fail bool
}

func (m *mockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	if m.fail {
		return nil, errors.New("embedding service down")
	}
	return []float32{0.1, 0.2}, nil
}

func (m *mockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	res := make([][]float32, len(texts))
	for i := range texts {
		emb, err := m.EmbedDocument(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		res[i] = emb
	}
	return res, nil
}

func (m *mockEmbedder) Dimension() int { return 2 }

type mockStore struct {
	results []rag.SearchResult
	err     error
	calls   int
}

func (m *mockStore) Add(ctx context.Context, docs []rag.Document) error { return nil }

func (m *mockStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]rag.SearchResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if k > len(m.results) {
		k = len(m.results)
	}
	return m.results[:k], nil
}

func (m *mockStore) Delete(ctx context.Context, ids []string) error   { return nil }
func (m *mockStore) Stats(ctx context.Context) (*rag.StoreStats, error) { return &rag.StoreStats{}, nil }
func (m *mockStore) Close() error                                     { return nil }

type mockRetriever struct {
	results []rag.SearchResult
	err     error
	calls   int
}

func (m *mockRetriever) Retrieve(ctx context.Context, query string, topK int) ([]rag.SearchResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if topK > len(m.results) {
		topK = len(m.results)
	}
	return m.results[:topK], nil
}
