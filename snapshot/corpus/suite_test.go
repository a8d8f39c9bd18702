package corpus_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/corpus"
	. "github.com/AntonStoeckl/plan-snapshots-go/testutil/helper" //nolint:revive
)

func Test_DiscoverSuites(t *testing.T) {
	// arrange
	root := t.TempDir()
	GivenSetupScript(t, root, "postgres", "CREATE TABLE t(a INT);")
	GivenQueryFile(t, root, "postgres", "basic", "select.sql", "SELECT a FROM t")
	GivenQueryFile(t, root, "hyper", "basic", "select.sql", "SELECT 1")
	GivenFile(t, root, "no-queries/setup/setup.sql", "SELECT 1")
	GivenFile(t, root, "README.md", "# snapshots")

	// act
	suites, err := corpus.DiscoverSuites(root)

	// assert
	require.NoError(t, err)
	require.Len(t, suites, 2)

	assert.Equal(t, "hyper", suites[0].Name)
	assert.False(t, suites[0].HasSetupScript())
	assert.Equal(t, filepath.Join(root, "hyper", "queries"), suites[0].QueriesDir)

	assert.Equal(t, "postgres", suites[1].Name)
	assert.True(t, suites[1].HasSetupScript())
	assert.Equal(t, filepath.Join(root, "postgres", "setup", "setup.sql"), suites[1].SetupScript)
}

func Test_DiscoverSuites_WithNames(t *testing.T) {
	// arrange
	root := t.TempDir()
	GivenQueryFile(t, root, "a", "basic", "select.sql", "SELECT 1")
	GivenQueryFile(t, root, "b", "basic", "select.sql", "SELECT 1")

	// act
	suites, err := corpus.DiscoverSuites(root, "b", "a", "b")

	// assert
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "b", suites[0].Name)
	assert.Equal(t, "a", suites[1].Name)
}

func Test_DiscoverSuites_ShouldFail(t *testing.T) {
	root := t.TempDir()
	GivenQueryFile(t, root, "a", "basic", "select.sql", "SELECT 1")

	_, unknownErr := corpus.DiscoverSuites(root, "missing")
	_, missingRootErr := corpus.DiscoverSuites(filepath.Join(root, "nope"))

	assert.ErrorIs(t, unknownErr, snapshot.ErrDiscoveryFailed)
	assert.ErrorIs(t, missingRootErr, snapshot.ErrDiscoveryFailed)
}
