package docctrl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealrag/src/docctrl"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "catalog.csv", "name,price\nWidget,50\n")
	txtPath := writeFile(t, dir, "notes.txt", "some notes")
	writeFile(t, dir, "image.png", "not a document")

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	nested := writeFile(t, sub, "more.TXT", "nested notes")

	files, err := docctrl.FindFiles(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{csvPath, txtPath, nested}, files)
}

func TestFindFilesMissingRoot(t *testing.T) {
	_, err := docctrl.FindFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestLoadStampsSource(t *testing.T) {
	dir := t.TempDir()
	txtPath := writeFile(t, dir, "notes.txt", "plain text content")

	docs, err := docctrl.Load(context.Background(), []string{txtPath})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "plain text content", docs[0].PageContent)
	assert.Equal(t, txtPath, docs[0].Metadata["source"])
}

func TestLoadSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	txtPath := writeFile(t, dir, "notes.txt", "still loads")
	missing := filepath.Join(dir, "gone.csv")

	docs, err := docctrl.Load(context.Background(), []string{missing, txtPath})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "still loads", docs[0].PageContent)
}

func TestSplitKeepsMetadata(t *testing.T) {
	dir := t.TempDir()
	txtPath := writeFile(t, dir, "long.txt", "first paragraph about widgets\n\nsecond paragraph about gadgets")

	docs, err := docctrl.Load(context.Background(), []string{txtPath})
	require.NoError(t, err)

	chunks, err := docctrl.Split(docs, docctrl.SplitterConfig{ChunkSize: 40, ChunkOverlap: 0})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.Equal(t, txtPath, chunk.Metadata["source"])
	}
}
