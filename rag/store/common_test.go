package store

import (
	"context"

	"github.com/smallnest/researchflow/rag"
)

type mockEmbedder struct {
	dim int
}

func (m *mockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	res := make([]float32, m.dim)
	for i := 0; i < m.dim; i++ {
		res[i] = 0.1
	}
	return res, nil
}

func (m *mockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	res := make([][]float32, len(texts))
	for i := range texts {
		emb, _ := m.EmbedDocument(ctx, texts[i])
		res[i] = emb
	}
	return res, nil
}

func (m *mockEmbedder) Dimension() int { return m.dim }

var _ rag.Embedder = (*mockEmbedder)(nil)
