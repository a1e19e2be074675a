// Package loader reads source files into documents ready for splitting
// and embedding.
package loader

import (
	"context"
	"crypto/md5"
	"fmt"
	"maps"
	"os"

	"github.com/smallnest/researchflow/rag"
)

// TextLoader loads a plain-text file as a single document.
type TextLoader struct {
	path     string
	metadata map[string]any
}

// TextOption configures a TextLoader.
type TextOption func(*TextLoader)

// WithMetadata merges extra metadata into every loaded document.
func WithMetadata(metadata map[string]any) TextOption {
	return func(l *TextLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewTextLoader creates a loader for the given file.
func NewTextLoader(path string, opts ...TextOption) *TextLoader {
	l := &TextLoader{
		path: path,
		metadata: map[string]any{
			"source": path,
			"type":   "text",
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file and returns it as one document. The document id is
// derived from the content, so reloading an unchanged file yields the same
// id.
func (l *TextLoader) Load(ctx context.Context) ([]rag.Document, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
	}

	metadata := make(map[string]any, len(l.metadata))
	maps.Copy(metadata, l.metadata)

	return []rag.Document{{
		ID:       contentID(l.path, content),
		Content:  string(content),
		Metadata: metadata,
	}}, nil
}

// contentID derives a stable document id from the source path and content.
func contentID(path string, content []byte) string {
	h := md5.New()
	h.Write([]byte(path))
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil))
}

var _ rag.DocumentLoader = (*TextLoader)(nil)
