package corpus_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/corpus"
	. "github.com/AntonStoeckl/plan-snapshots-go/testutil/helper" //nolint:revive
)

func Test_Walker_Files_GroupsByFirstFolder(t *testing.T) {
	// arrange
	root := t.TempDir()
	GivenFile(t, root, "joins/hash-join.sql", "SELECT 1")
	GivenFile(t, root, "basic/select.sql", "SELECT a FROM t;")
	GivenFile(t, root, "basic/nested/deep.sql", "SELECT 2")
	GivenFile(t, root, "basic/notes.txt", "not a query")
	GivenFile(t, root, "top-level.sql", "SELECT 3")

	walker, err := corpus.NewWalker()
	require.NoError(t, err)

	// act
	files, err := walker.Files(root)

	// assert
	require.NoError(t, err)
	assert.Equal(t, snapshot.QueryFiles{
		snapshot.BuildQueryFile("basic", "select.sql", filepath.Join(root, "basic", "select.sql")),
		snapshot.BuildQueryFile("basic", "deep.sql", filepath.Join(root, "basic", "nested", "deep.sql")),
		snapshot.BuildQueryFile("joins", "hash-join.sql", filepath.Join(root, "joins", "hash-join.sql")),
	}, files)

	sql, err := files[0].SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t;", sql)
}

func Test_Walker_WithPattern(t *testing.T) {
	// arrange
	root := t.TempDir()
	GivenFile(t, root, "basic/a.sql", "SELECT 1")
	GivenFile(t, root, "basic/b.query", "SELECT 2")

	walker, err := corpus.NewWalker(corpus.WithPattern("**/*.query"))
	require.NoError(t, err)

	// act
	files, err := walker.Files(root)

	// assert
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "b.query", files[0].FileName)
}

func Test_Walker_WithPattern_ShouldFail_WhenInvalid(t *testing.T) {
	_, err := corpus.NewWalker(corpus.WithPattern("[unclosed"))

	assert.ErrorIs(t, err, corpus.ErrInvalidPattern)
}

func Test_Walker_ShouldFail_WithBadRoot(t *testing.T) {
	root := t.TempDir()
	notADir := GivenFile(t, root, "file.sql", "SELECT 1")

	testCases := []struct {
		name string
		root string
	}{
		{name: "missing_root", root: filepath.Join(root, "missing")},
		{name: "root_is_a_file", root: notADir},
	}

	walker, err := corpus.NewWalker()
	require.NoError(t, err)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, walkErr := walker.Files(tc.root)

			assert.ErrorIs(t, walkErr, snapshot.ErrDiscoveryFailed)
		})
	}
}

func Test_Walker_Walk_StopsAtCallbackError(t *testing.T) {
	// arrange
	root := t.TempDir()
	GivenFile(t, root, "basic/a.sql", "SELECT 1")
	GivenFile(t, root, "basic/b.sql", "SELECT 2")

	walker, err := corpus.NewWalker()
	require.NoError(t, err)

	stop := errors.New("stop")
	visited := 0

	// act
	err = walker.Walk(root, func(snapshot.QueryFile) error {
		visited++
		return stop
	})

	// assert
	assert.ErrorIs(t, err, stop)
	assert.NotErrorIs(t, err, snapshot.ErrDiscoveryFailed)
	assert.Equal(t, 1, visited)
}
