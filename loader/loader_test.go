package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTextLoader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "machine learning basics")

	docs, err := NewTextLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "machine learning basics", docs[0].Content)
	assert.Equal(t, path, docs[0].Metadata["source"])
	assert.Equal(t, "text", docs[0].Metadata["type"])
	assert.NotEmpty(t, docs[0].ID)
}

func TestTextLoaderStableID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "same content")

	first, err := NewTextLoader(path).Load(context.Background())
	require.NoError(t, err)
	second, err := NewTextLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID, "an unchanged file keeps its id")
}

func TestTextLoaderMissingFile(t *testing.T) {
	_, err := NewTextLoader("/no/such/file.txt").Load(context.Background())
	assert.Error(t, err)
}

func TestTextLoaderWithMetadata(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "content")

	docs, err := NewTextLoader(path, WithMetadata(map[string]any{"corpus": "test"})).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", docs[0].Metadata["corpus"])
}

func TestHTMLLoader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", `<html>
<head><title>Vector Stores</title><style>body { color: red }</style></head>
<body>
<script>console.log("ignored")</script>
<h1>Vector Stores</h1>
<p>A vector store indexes embeddings.</p>
</body>
</html>`)

	docs, err := NewHTMLLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Contains(t, docs[0].Content, "A vector store indexes embeddings.")
	assert.NotContains(t, docs[0].Content, "console.log")
	assert.NotContains(t, docs[0].Content, "color: red")
	assert.NotContains(t, docs[0].Content, "<p>")
	assert.Equal(t, "Vector Stores", docs[0].Metadata["title"])
	assert.Equal(t, "html", docs[0].Metadata["type"])
}

func TestMarkdownLoader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "guide.md", `# Heading

Some **bold** text with a [link](https://example.com).

- first item
- second item
`)

	docs, err := NewMarkdownLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	content := docs[0].Content
	assert.Contains(t, content, "Heading")
	assert.Contains(t, content, "bold")
	assert.Contains(t, content, "first item")
	assert.NotContains(t, content, "**")
	assert.NotContains(t, content, "](")
	assert.NotContains(t, content, "<h1>")
	assert.Equal(t, "markdown", docs[0].Metadata["type"])
}

func TestDirectoryLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "plain text file")
	writeFile(t, dir, "docs/b.md", "# Markdown file")
	writeFile(t, dir, "docs/c.html", "<html><body><p>html file</p></body></html>")
	writeFile(t, dir, "code/d.py", "def main(): pass")
	writeFile(t, dir, "skip.bin", "binary blob")
	writeFile(t, dir, ".hidden/e.txt", "hidden file")

	docs, err := NewDirectoryLoader(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 4)

	byRel := make(map[string]string)
	for _, doc := range docs {
		byRel[doc.Metadata["relative_path"].(string)] = doc.Content
	}

	assert.Contains(t, byRel, "a.txt")
	assert.Contains(t, byRel, filepath.Join("docs", "b.md"))
	assert.Contains(t, byRel, filepath.Join("docs", "c.html"))
	assert.Contains(t, byRel, filepath.Join("code", "d.py"))
	assert.NotContains(t, byRel, "skip.bin")
	assert.Contains(t, byRel[filepath.Join("docs", "c.html")], "html file")
}

func TestDirectoryLoaderCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "text")
	writeFile(t, dir, "b.log", "log line")

	docs, err := NewDirectoryLoader(dir, WithExtensions([]string{".log"})).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "log line", docs[0].Content)
}

func TestDirectoryLoaderCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "text")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirectoryLoader(dir).Load(ctx)
	assert.Error(t, err)
}
