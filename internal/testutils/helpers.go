package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteScenes creates a temporary scene directory seeded with the given files.
// It returns the absolute path and fails the test immediately on error.
func WriteScenes(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()

	// Loam sometimes prefers absolute paths, though t.TempDir usually returns one.
	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	}
	return absPath
}
