package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/smallnest/researchflow/rag"
)

// SqliteVectorStore is a persistent vector store backed by SQLite. It keeps
// embeddings as JSON and ranks by brute-force cosine similarity, which is
// adequate for local corpora of a few thousand chunks.
type SqliteVectorStore struct {
	db        *sql.DB
	tableName string
	embedder  rag.Embedder
}

// SqliteOptions configuration for the SQLite store
type SqliteOptions struct {
	Path      string
	TableName string // Default "documents"
}

// NewSqliteVectorStore opens (or creates) a SQLite-backed store.
func NewSqliteVectorStore(opts SqliteOptions, embedder rag.Embedder) (*SqliteVectorStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "documents"
	}

	s := &SqliteVectorStore{
		db:        db,
		tableName: tableName,
		embedder:  embedder,
	}

	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SqliteVectorStore) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata TEXT,
			embedding TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Add inserts or replaces documents, embedding any without an embedding.
func (s *SqliteVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, metadata, embedding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			metadata = excluded.metadata,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at
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
		embeddingJSON, err := json.Marshal(embedding)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding: %w", err)
		}

		now := time.Now()
		createdAt := doc.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		if _, err := s.db.ExecContext(ctx, query, doc.ID, doc.Content, string(metadataJSON), string(embeddingJSON), createdAt, now); err != nil {
			return fmt.Errorf("failed to insert document %q: %w", doc.ID, err)
		}
	}

	return nil
}

// Search scans all stored embeddings and returns the top k by cosine
// similarity.
func (s *SqliteVectorStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	query := fmt.Sprintf(`SELECT id, content, metadata, embedding, created_at, updated_at FROM %s`, s.tableName)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var results []rag.SearchResult
	for rows.Next() {
		var doc rag.Document
		var metadataJSON, embeddingJSON string
		if err := rows.Scan(&doc.ID, &doc.Content, &metadataJSON, &embeddingJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		if metadataJSON != "" && metadataJSON != "null" {
			if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for %q: %w", doc.ID, err)
			}
		}

		var embedding []float32
		if err := json.Unmarshal([]byte(embeddingJSON), &embedding); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedding for %q: %w", doc.ID, err)
		}

		results = append(results, rag.SearchResult{
			Document: doc,
			Score:    cosineSimilarity(queryEmbedding, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	if results == nil {
		return []rag.SearchResult{}, nil
	}
	return results[:k], nil
}

// Delete removes documents by ID.
func (s *SqliteVectorStore) Delete(ctx context.Context, ids []string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete document %q: %w", id, err)
		}
	}
	return nil
}

// Stats returns statistics about the store.
func (s *SqliteVectorStore) Stats(ctx context.Context) (*rag.StoreStats, error) {
	var count int
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.tableName))
	if err := row.Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	stats := &rag.StoreStats{
		TotalDocuments: count,
		LastUpdated:    time.Now(),
	}
	if s.embedder != nil {
		stats.Dimension = s.embedder.Dimension()
	}
	return stats, nil
}

// Close closes the database connection.
func (s *SqliteVectorStore) Close() error {
	return s.db.Close()
}
