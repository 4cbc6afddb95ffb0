package library

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/logging"
)

func TestIndexInsertionOrderStable(t *testing.T) {
	c := testCatalog(t)

	ids := []string{"zebra", "alpha", "mango"}
	for _, id := range ids {
		require.NoError(t, c.Add(testAnimation(id)))
	}

	assert.Equal(t, ids, c.index.allIDs())

	// Re-adding placement via upsert must not reorder.
	require.NoError(t, c.CreateFolder("Walk"))
	require.NoError(t, c.Move("alpha", "Walk"))
	assert.Equal(t, ids, c.index.allIDs())
}

func TestIndexRemoveAbsentIsNoOp(t *testing.T) {
	ix := newIndexStore(filepath.Join(t.TempDir(), constants.IndexFile))
	ix.upsert("a", "Root")
	ix.remove("missing")
	assert.Equal(t, []string{"a"}, ix.allIDs())
}

func TestIndexSurvivesCorruption(t *testing.T) {
	dir := t.TempDir()
	logging.DisableForTest(t)

	c, err := Open(dir)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Add(testAnimation(fmt.Sprintf("clip-%d", i))))
	}

	// Trash the index file; reopening must rebuild from the records.
	indexPath := filepath.Join(dir, constants.IndexFile)
	require.NoError(t, os.WriteFile(indexPath, []byte(":::{{not yaml"), constants.FilePermissions))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Len())

	// The rebuilt index was flushed back out.
	data, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "clip-0")
}

func TestIndexSurvivesDeletion(t *testing.T) {
	dir := t.TempDir()
	logging.DisableForTest(t)

	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.CreateFolder("Walk"))
	anim := testAnimation("survivor")
	anim.FolderPath = "Walk"
	require.NoError(t, c.Add(anim))

	require.NoError(t, os.Remove(filepath.Join(dir, constants.IndexFile)))

	reopened, err := Open(dir)
	require.NoError(t, err)
	got, err := reopened.Get("survivor")
	require.NoError(t, err)
	assert.Equal(t, "Walk", got.FolderPath)
}

func TestIndexVersionMismatchTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	logging.DisableForTest(t)

	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.Add(testAnimation("kept")))

	indexPath := filepath.Join(dir, constants.IndexFile)
	stale := "version: 99\nentries:\n  - id: phantom\n    folder: Root\n"
	require.NoError(t, os.WriteFile(indexPath, []byte(stale), constants.FilePermissions))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())
	_, err = reopened.Get("phantom")
	assert.Error(t, err)
}

func TestIndexRebuildSkipsCorruptRecords(t *testing.T) {
	dir := t.TempDir()
	logging.DisableForTest(t)

	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.Add(testAnimation("good")))

	recordsDir := filepath.Join(dir, constants.RecordsDir)
	require.NoError(t, os.WriteFile(filepath.Join(recordsDir, "rotten.yaml"), []byte("{{{{"), constants.FilePermissions))
	require.NoError(t, os.Remove(filepath.Join(dir, constants.IndexFile)))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())

	// The corrupt file stays on disk for manual repair.
	assert.FileExists(t, filepath.Join(recordsDir, "rotten.yaml"))
}

func TestIndexFlushLeavesNoTempFile(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("x")))

	assert.FileExists(t, filepath.Join(c.Root(), constants.IndexFile))
	assert.NoFileExists(t, filepath.Join(c.Root(), constants.IndexFile+".tmp"))
}
