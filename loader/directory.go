package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/smallnest/researchflow/log"
	"github.com/smallnest/researchflow/rag"
)

// defaultExtensions are the file types indexed by a DirectoryLoader.
var defaultExtensions = []string{".txt", ".md", ".html", ".py", ".js", ".json"}

// DirectoryLoader walks a directory tree and loads every file with a
// recognized extension, delegating to the loader that matches the file
// type. Files that fail to load are skipped with a warning rather than
// failing the whole walk.
type DirectoryLoader struct {
	root       string
	extensions map[string]bool
	logger     log.Logger
}

// DirectoryOption configures a DirectoryLoader.
type DirectoryOption func(*DirectoryLoader)

// WithExtensions replaces the default extension filter.
func WithExtensions(exts []string) DirectoryOption {
	return func(l *DirectoryLoader) {
		l.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			l.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithLogger sets the logger for skipped files.
func WithLogger(logger log.Logger) DirectoryOption {
	return func(l *DirectoryLoader) {
		l.logger = logger
	}
}

// NewDirectoryLoader creates a loader rooted at the given directory.
func NewDirectoryLoader(root string, opts ...DirectoryOption) *DirectoryLoader {
	l := &DirectoryLoader{
		root:       root,
		extensions: make(map[string]bool, len(defaultExtensions)),
		logger:     log.GetDefaultLogger(),
	}
	for _, ext := range defaultExtensions {
		l.extensions[ext] = true
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load walks the tree and returns the documents of every matching file.
// Hidden directories are not descended into.
func (l *DirectoryLoader) Load(ctx context.Context) ([]rag.Document, error) {
	var documents []rag.Document

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !l.extensions[ext] {
			return nil
		}

		docs, loadErr := l.loaderFor(path, ext).Load(ctx)
		if loadErr != nil {
			l.logger.Warn("skipping %s: %v", path, loadErr)
			return nil
		}

		rel, relErr := filepath.Rel(l.root, path)
		if relErr != nil {
			rel = path
		}
		for i := range docs {
			docs[i].Metadata["relative_path"] = rel
		}

		documents = append(documents, docs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", l.root, err)
	}

	return documents, nil
}

func (l *DirectoryLoader) loaderFor(path, ext string) rag.DocumentLoader {
	switch ext {
	case ".md":
		return NewMarkdownLoader(path)
	case ".html", ".htm":
		return NewHTMLLoader(path)
	default:
		return NewTextLoader(path)
	}
}

var _ rag.DocumentLoader = (*DirectoryLoader)(nil)
