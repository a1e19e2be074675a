// Package rag defines the core contracts for retrieval-augmented
// generation: documents, search results, and the Retriever, Embedder and
// VectorStore interfaces implemented by the subpackages.
//
// Concrete vector stores live in rag/store (in-memory, SQLite, pgvector),
// retrievers in rag/retriever (vector similarity, Redis-cached,
// langchaingo-backed). The iterative refinement loop that consumes these
// contracts lives in the workflow package.
package rag
