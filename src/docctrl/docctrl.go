// Package docctrl discovers and loads the local document set.
package docctrl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"

	"dealrag/src/log"
)

// supportedExts are the file types the loader understands.
var supportedExts = map[string]bool{
	".csv": true,
	".txt": true,
}

// SplitterConfig controls how loaded documents are chunked.
type SplitterConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

// FindFiles walks root and returns every supported file, sorted by walk
// order (lexical within each directory).
func FindFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents directory: %w", err)
	}

	return files, nil
}

// Load reads each file with the loader matching its extension and stamps
// the file path into the document metadata as "source". Files that fail to
// load are logged and skipped so one broken file does not abort an import.
func Load(ctx context.Context, paths []string) ([]schema.Document, error) {
	var docs []schema.Document

	for _, path := range paths {
		loaded, err := loadFile(ctx, path)
		if err != nil {
			log.Error(err, "failed to load document", "path", path)
			continue
		}

		for i := range loaded {
			if loaded[i].Metadata == nil {
				loaded[i].Metadata = make(map[string]interface{})
			}
			loaded[i].Metadata["source"] = path
		}
		docs = append(docs, loaded...)
	}

	return docs, nil
}

func loadFile(ctx context.Context, path string) ([]schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return documentloaders.NewCSV(f).Load(ctx)
	case ".txt":
		return documentloaders.NewText(f).Load(ctx)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// Split chunks the documents with a recursive character splitter, keeping
// each chunk's metadata.
func Split(docs []schema.Document, cfg SplitterConfig) ([]schema.Document, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(cfg.ChunkSize),
		textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
	)

	chunks, err := textsplitter.SplitDocuments(splitter, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to split documents: %w", err)
	}

	return chunks, nil
}
