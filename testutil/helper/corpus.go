package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// GivenFile writes content to root/relPath, creating parent directories as needed.
func GivenFile(t testing.TB, root, relPath, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// GivenSetupScript writes the setup script of a suite below a snapshots root.
func GivenSetupScript(t testing.TB, snapshotsRoot, suite, content string) string {
	t.Helper()

	return GivenFile(t, snapshotsRoot, suite+"/setup/setup.sql", content)
}

// GivenQueryFile writes one query file of a suite below a snapshots root.
func GivenQueryFile(t testing.TB, snapshotsRoot, suite, group, name, content string) string {
	t.Helper()

	return GivenFile(t, snapshotsRoot, suite+"/queries/"+group+"/"+name, content)
}

// ReadFile returns the content of a file, failing the test if it cannot be read.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}
