package loader

import (
	"context"
	"fmt"
	"maps"
	"os"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smallnest/researchflow/rag"
)

// MarkdownLoader loads a Markdown file as plain text: the source is
// rendered to HTML and then stripped of all markup, so headings, emphasis
// and link syntax do not leak into the indexed content.
type MarkdownLoader struct {
	path     string
	metadata map[string]any
	policy   *bluemonday.Policy
}

// NewMarkdownLoader creates a loader for the given Markdown file.
func NewMarkdownLoader(path string) *MarkdownLoader {
	return &MarkdownLoader{
		path: path,
		metadata: map[string]any{
			"source": path,
			"type":   "markdown",
		},
		policy: bluemonday.StrictPolicy(),
	}
}

// Load renders the file and returns its text as one document.
func (l *MarkdownLoader) Load(ctx context.Context) ([]rag.Document, error) {
	source, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML(source, p, renderer)

	text := normalizeWhitespace(l.policy.Sanitize(string(rendered)))

	metadata := make(map[string]any, len(l.metadata))
	maps.Copy(metadata, l.metadata)

	return []rag.Document{{
		ID:       contentID(l.path, source),
		Content:  text,
		Metadata: metadata,
	}}, nil
}

var _ rag.DocumentLoader = (*MarkdownLoader)(nil)
