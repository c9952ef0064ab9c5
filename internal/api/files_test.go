package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("aa"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.pdf"), []byte("bb"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("cc"), 0644))

	files, err := CollectFiles(filepath.Join(dir, "**", "*.pdf"))
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Name, files[1].Name}
	assert.Contains(t, names, "a.pdf")
	assert.Contains(t, names, "b.pdf")
}

func TestCollectFilesNoMatches(t *testing.T) {
	files, err := CollectFiles(filepath.Join(t.TempDir(), "*.pdf"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectFilesBadPattern(t *testing.T) {
	_, err := CollectFiles("[")
	assert.Error(t, err)
}
