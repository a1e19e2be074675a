// Package splitter chunks documents for embedding and retrieval.
package splitter

import (
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/smallnest/researchflow/rag"
)

// RecursiveSplitter splits text on a prioritized list of separators,
// falling back to the next separator whenever a piece is still larger than
// the chunk size. Lengths are measured in runes so CJK text chunks the
// same as ASCII.
type RecursiveSplitter struct {
	separators   []string
	chunkSize    int
	chunkOverlap int
}

// Option configures a RecursiveSplitter.
type Option func(*RecursiveSplitter)

// WithChunkSize sets the maximum chunk length in runes.
func WithChunkSize(size int) Option {
	return func(s *RecursiveSplitter) {
		s.chunkSize = size
	}
}

// WithChunkOverlap sets how many runes consecutive chunks share.
func WithChunkOverlap(overlap int) Option {
	return func(s *RecursiveSplitter) {
		s.chunkOverlap = overlap
	}
}

// WithSeparators replaces the separator priority list.
func WithSeparators(separators []string) Option {
	return func(s *RecursiveSplitter) {
		s.separators = separators
	}
}

// NewRecursiveSplitter creates a splitter with chunk size 1000, overlap 200
// and separators "\n\n", "\n", " " and the empty string.
func NewRecursiveSplitter(opts ...Option) *RecursiveSplitter {
	s := &RecursiveSplitter{
		separators:   []string{"\n\n", "\n", " ", ""},
		chunkSize:    1000,
		chunkOverlap: 200,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chunkOverlap >= s.chunkSize {
		s.chunkOverlap = s.chunkSize / 4
	}
	return s
}

// SplitText splits text into chunks no longer than the chunk size.
func (s *RecursiveSplitter) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

// SplitDocuments splits each document, carrying the parent metadata into
// every chunk together with its index and total.
func (s *RecursiveSplitter) SplitDocuments(docs []rag.Document) []rag.Document {
	var out []rag.Document
	for _, doc := range docs {
		chunks := s.SplitText(doc.Content)
		for i, chunk := range chunks {
			metadata := make(map[string]any, len(doc.Metadata)+3)
			maps.Copy(metadata, doc.Metadata)
			metadata["chunk_index"] = i
			metadata["total_chunks"] = len(chunks)
			metadata["parent_id"] = doc.ID

			out = append(out, rag.Document{
				ID:        fmt.Sprintf("%s_chunk_%d", doc.ID, i),
				Content:   chunk,
				Metadata:  metadata,
				CreatedAt: doc.CreatedAt,
				UpdatedAt: doc.UpdatedAt,
			})
		}
	}
	return out
}

func (s *RecursiveSplitter) split(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		return s.sliceByRunes(text)
	}

	separator := separators[0]
	rest := separators[1:]
	if separator == "" {
		return s.sliceByRunes(text)
	}

	var pieces []string
	for _, piece := range strings.Split(text, separator) {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		if utf8.RuneCountInString(piece) <= s.chunkSize {
			pieces = append(pieces, piece)
		} else {
			pieces = append(pieces, s.split(piece, rest)...)
		}
	}

	return s.merge(pieces, separator)
}

// merge greedily packs adjacent pieces back together up to the chunk size.
func (s *RecursiveSplitter) merge(pieces []string, separator string) []string {
	var chunks []string
	var current string

	for _, piece := range pieces {
		if current == "" {
			current = piece
			continue
		}
		joined := current + separator + piece
		if utf8.RuneCountInString(joined) <= s.chunkSize {
			current = joined
		} else {
			chunks = append(chunks, current)
			current = piece
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// sliceByRunes is the last resort for text with no usable separator: fixed
// windows with the configured overlap.
func (s *RecursiveSplitter) sliceByRunes(text string) []string {
	runes := []rune(text)
	step := s.chunkSize - s.chunkOverlap
	if step < 1 {
		step = s.chunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

var _ rag.TextSplitter = (*RecursiveSplitter)(nil)
