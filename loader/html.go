package loader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smallnest/researchflow/rag"
)

// HTMLLoader loads an HTML file, extracting readable text and dropping
// scripts, styles and markup.
type HTMLLoader struct {
	path     string
	metadata map[string]any
	policy   *bluemonday.Policy
}

// NewHTMLLoader creates a loader for the given HTML file.
func NewHTMLLoader(path string) *HTMLLoader {
	return &HTMLLoader{
		path: path,
		metadata: map[string]any{
			"source": path,
			"type":   "html",
		},
		policy: bluemonday.StrictPolicy(),
	}
}

// Load parses the file and returns its text content as one document. The
// page title, when present, is recorded in the metadata.
func (l *HTMLLoader) Load(ctx context.Context) ([]rag.Document, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", l.path, err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", l.path, err)
	}

	doc.Find("script, style, noscript").Remove()

	metadata := make(map[string]any, len(l.metadata)+1)
	maps.Copy(metadata, l.metadata)
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		metadata["title"] = title
	}

	body := doc.Find("body")
	var raw string
	if body.Length() > 0 {
		raw = body.Text()
	} else {
		raw = doc.Text()
	}

	// StrictPolicy strips any markup that survived text extraction.
	text := normalizeWhitespace(l.policy.Sanitize(raw))

	return []rag.Document{{
		ID:       contentID(l.path, []byte(text)),
		Content:  text,
		Metadata: metadata,
	}}, nil
}

// normalizeWhitespace collapses runs of blank lines and trims each line.
func normalizeWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

var _ rag.DocumentLoader = (*HTMLLoader)(nil)
