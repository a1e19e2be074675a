package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	"github.com/smallnest/researchflow/rag"
)

// DBPool defines the interface for a database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PgVectorStore is a vector store backed by PostgreSQL with the pgvector
// extension. Similarity ranking is delegated to the database via the cosine
// distance operator.
type PgVectorStore struct {
	pool      DBPool
	tableName string
	dimension int
	embedder  rag.Embedder
}

// PgVectorOptions configuration for the Postgres connection
type PgVectorOptions struct {
	ConnString string
	TableName  string // Default "documents"
	Dimension  int    // Embedding dimension, default 1536
}

// NewPgVectorStore creates a new pgvector-backed store.
func NewPgVectorStore(ctx context.Context, opts PgVectorOptions, embedder rag.Embedder) (*PgVectorStore, error) {
	cfg, err := pgxpool.ParseConfig(opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	s := newPgVectorStore(pool, opts, embedder)
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPgVectorStoreWithPool creates a store with an existing pool.
// Useful for testing with mocks.
func NewPgVectorStoreWithPool(pool DBPool, opts PgVectorOptions, embedder rag.Embedder) *PgVectorStore {
	return newPgVectorStore(pool, opts, embedder)
}

func newPgVectorStore(pool DBPool, opts PgVectorOptions, embedder rag.Embedder) *PgVectorStore {
	tableName := opts.TableName
	if tableName == "" {
		tableName = "documents"
	}
	dimension := opts.Dimension
	if dimension == 0 {
		dimension = 1536
	}
	return &PgVectorStore{
		pool:      pool,
		tableName: tableName,
		dimension: dimension,
		embedder:  embedder,
	}
}

func (s *PgVectorStore) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`, s.tableName, s.dimension)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add inserts or updates documents, embedding any without an embedding.
func (s *PgVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, metadata, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

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

		metadataJSON, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}

		now := time.Now()
		createdAt := doc.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		_, err = s.pool.Exec(ctx, query, doc.ID, doc.Content, metadataJSON, pgvector.NewVector(embedding), createdAt, now)
		if err != nil {
			return fmt.Errorf("failed to insert document %q: %w", doc.ID, err)
		}
	}

	return nil
}

// Search returns the k nearest documents by cosine similarity. The score is
// 1 - cosine distance, so higher means more similar.
func (s *PgVectorStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	query := fmt.Sprintf(`
		SELECT id, content, metadata, created_at, updated_at, 1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, pgvector.NewVector(queryEmbedding), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	results := []rag.SearchResult{}
	for rows.Next() {
		var doc rag.Document
		var metadataJSON []byte
		var score float64
		if err := rows.Scan(&doc.ID, &doc.Content, &metadataJSON, &doc.CreatedAt, &doc.UpdatedAt, &score); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for %q: %w", doc.ID, err)
			}
		}

		results = append(results, rag.SearchResult{Document: doc, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return results, nil
}

// Delete removes documents by ID.
func (s *PgVectorStore) Delete(ctx context.Context, ids []string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, s.tableName)
	if _, err := s.pool.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// Stats returns statistics about the store.
func (s *PgVectorStore) Stats(ctx context.Context) (*rag.StoreStats, error) {
	var count int
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.tableName))
	if err := row.Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	return &rag.StoreStats{
		TotalDocuments: count,
		Dimension:      s.dimension,
		LastUpdated:    time.Now(),
	}, nil
}

// Close closes the connection pool.
func (s *PgVectorStore) Close() error {
	s.pool.Close()
	return nil
}
