package emit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/emit"
	. "github.com/AntonStoeckl/plan-snapshots-go/testutil/helper" //nolint:revive
)

func Test_ForFormat(t *testing.T) {
	for _, format := range emit.SupportedFormats() {
		t.Run(string(format), func(t *testing.T) {
			emitter, err := emit.ForFormat(format)

			require.NoError(t, err)
			assert.Equal(t, string(format), emitter.Extension())
		})
	}

	_, err := emit.ForFormat("json")
	assert.ErrorIs(t, err, emit.ErrUnsupportedFormat)
}

func Test_WriteGroup(t *testing.T) {
	// arrange
	outDir := filepath.Join(t.TempDir(), "postgres", "tests")
	group := snapshot.Group{Folder: "basic", Entries: snapshot.Entries{{FileName: "select.sql", Plan: "first"}}}
	emitter := emit.NewYAMLEmitter()

	// act
	path, err := emit.WriteGroup(emitter, outDir, group)
	require.NoError(t, err)

	group.Entries[0].Plan = "second"
	rewrittenPath, rewriteErr := emit.WriteGroup(emitter, outDir, group)

	// assert
	require.NoError(t, rewriteErr)
	assert.Equal(t, filepath.Join(outDir, "basic.tpl.yaml"), path)
	assert.Equal(t, path, rewrittenPath)
	assert.Equal(t, "plan-snapshots:\n- name: select_sql\n  input: 'second'\n", ReadFile(t, path))

	dirEntries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Len(t, dirEntries, 1, "no temporary files may be left behind")
}

func Test_WriteGroup_ShouldFail_WhenOutDirIsAFile(t *testing.T) {
	outDir := GivenFile(t, t.TempDir(), "tests", "not a directory")

	_, err := emit.WriteGroup(emit.NewXMLEmitter(), outDir, snapshot.Group{Folder: "basic"})

	assert.ErrorIs(t, err, snapshot.ErrEmittingFailed)
}

func Test_OutputFileName(t *testing.T) {
	assert.Equal(t, "joins.tpl.xml", emit.OutputFileName(emit.NewXMLEmitter(), "joins"))
	assert.Equal(t, "joins.tpl.yaml", emit.OutputFileName(emit.NewYAMLEmitter(), "joins"))
}
