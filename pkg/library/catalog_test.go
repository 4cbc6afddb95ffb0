package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipvault/clipvault/pkg/animations"
	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/errors"
	"github.com/clipvault/clipvault/pkg/logging"
)

func testCatalog(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	logging.DisableForTest(t)

	c, err := Open(t.TempDir(), opts...)
	require.NoError(t, err)
	return c
}

func testAnimation(id string) *animations.Animation {
	spine := animations.NewBoneAnimation("spine")
	spine.AddChannel("location", 0, 10, animations.FrameRange{Start: 1, End: 20})

	return &animations.Animation{
		ID:             id,
		Name:           "Walk",
		FrameRange:     animations.FrameRange{Start: 1, End: 20},
		TotalKeyframes: 10,
		Bones:          map[string]*animations.BoneAnimation{"spine": spine},
	}
}

func TestAddAndGet(t *testing.T) {
	c := testCatalog(t)

	anim := testAnimation("Hero_Walk_1")
	require.NoError(t, c.Add(anim))

	got, err := c.Get("Hero_Walk_1")
	require.NoError(t, err)
	assert.Equal(t, "Hero_Walk_1", got.ID)
	assert.Equal(t, constants.RootFolder, got.FolderPath)
	assert.Equal(t, 1, c.Len())

	// Record file exists on disk with no stray temp file.
	assert.FileExists(t, filepath.Join(c.Root(), constants.RecordsDir, "Hero_Walk_1.yaml"))
	assert.NoFileExists(t, filepath.Join(c.Root(), constants.RecordsDir, "Hero_Walk_1.yaml.tmp"))
}

func TestAddDuplicateLeavesCatalogUnchanged(t *testing.T) {
	c := testCatalog(t)

	first := testAnimation("dup")
	first.Name = "Original"
	require.NoError(t, c.Add(first))

	second := testAnimation("dup")
	second.Name = "Impostor"
	err := c.Add(second)
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	got, err := c.Get("dup")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)
	assert.Equal(t, 1, c.Len())
}

func TestGetUnknown(t *testing.T) {
	c := testCatalog(t)

	_, err := c.Get("nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestRemove(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.Add(testAnimation("gone")))
	require.NoError(t, c.Remove("gone"))

	_, err := c.Get("gone")
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 0, c.Len())
	assert.NoFileExists(t, filepath.Join(c.Root(), constants.RecordsDir, "gone.yaml"))
}

func TestRemoveUnknownIsNoOp(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("keep")))

	err := c.Remove("nope")
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 1, c.Len())
}

func TestRemoveDeletesAssets(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.Add(testAnimation("clip")))
	blend := c.Assets().ActionPath("clip", constants.RootFolder)
	require.NoError(t, os.WriteFile(blend, []byte("blend"), constants.FilePermissions))

	require.NoError(t, c.Remove("clip"))
	assert.NoFileExists(t, blend)
}

func TestMove(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.Add(testAnimation("mover")))
	require.NoError(t, c.CreateFolder("Walk"))
	require.NoError(t, c.Move("mover", "Walk"))

	got, err := c.Get("mover")
	require.NoError(t, err)
	assert.Equal(t, "Walk", got.FolderPath)

	// Write-through: the record file reflects the new folder.
	data, err := os.ReadFile(filepath.Join(c.Root(), constants.RecordsDir, "mover.yaml"))
	require.NoError(t, err)
	onDisk, err := animations.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Walk", onDisk.FolderPath)
}

func TestMoveToMissingFolder(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("stuck")))

	err := c.Move("stuck", "Nowhere")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	got, err := c.Get("stuck")
	require.NoError(t, err)
	assert.Equal(t, constants.RootFolder, got.FolderPath)
}

func TestMoveUnknown(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.CreateFolder("Walk"))

	err := c.Move("nope", "Walk")
	assert.True(t, errors.IsNotFound(err))
}

func TestMoveRelocatesAssets(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.Add(testAnimation("clip")))
	require.NoError(t, c.CreateFolder("Walk"))
	blend := c.Assets().ActionPath("clip", constants.RootFolder)
	require.NoError(t, os.WriteFile(blend, []byte("blend"), constants.FilePermissions))

	require.NoError(t, c.Move("clip", "Walk"))
	assert.NoFileExists(t, blend)
	assert.FileExists(t, c.Assets().ActionPath("clip", "Walk"))
}

func TestTouchPersistsUsage(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("used")))

	require.NoError(t, c.Touch("used"))
	require.NoError(t, c.Touch("used"))

	reopened, err := Open(c.Root())
	require.NoError(t, err)
	got, err := reopened.Get("used")
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageCount)
}

func TestRate(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("rated")))

	require.NoError(t, c.Rate("rated", 4.5))
	got, err := c.Get("rated")
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.QualityRating)

	assert.True(t, errors.IsValidationError(c.Rate("rated", 6)))
	assert.True(t, errors.IsValidationError(c.Rate("rated", -1)))
}

func TestListSkipsCorruptRecords(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.Add(testAnimation("good-1")))
	require.NoError(t, c.Add(testAnimation("bad")))
	require.NoError(t, c.Add(testAnimation("good-2")))

	// Corrupt one record behind the catalog's back and drop it from the
	// cache so the listing has to re-read it.
	badPath := filepath.Join(c.Root(), constants.RecordsDir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("{{{{"), constants.FilePermissions))
	c.cache.invalidate("bad")

	entries, skipped, err := c.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, []string{"bad"}, skipped)
}

func TestListFolder(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.CreateFolder("Walk"))
	require.NoError(t, c.CreateFolder("Walk/Fast"))

	root := testAnimation("in-root")
	require.NoError(t, c.Add(root))
	inWalk := testAnimation("in-walk")
	inWalk.FolderPath = "Walk"
	require.NoError(t, c.Add(inWalk))
	inFast := testAnimation("in-fast")
	inFast.FolderPath = "Walk/Fast"
	require.NoError(t, c.Add(inFast))

	entries, _, err := c.ListFolder("Walk", false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "in-walk", entries[0].ID)

	entries, _, err = c.ListFolder("Walk", true)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, _, err = c.ListFolder("Nowhere", false)
	assert.True(t, errors.IsValidationError(err))
}

func TestStaleIndexRowSelfHeals(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("ghost")))

	// Delete the record file directly, leaving the index row behind.
	require.NoError(t, os.Remove(filepath.Join(c.Root(), constants.RecordsDir, "ghost.yaml")))
	c.cache.invalidate("ghost")

	_, err := c.Get("ghost")
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 0, c.Len())
}

func TestReopenSeesPersistedState(t *testing.T) {
	dir := t.TempDir()
	logging.DisableForTest(t)

	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.CreateFolder("Walk"))
	for i := 0; i < 3; i++ {
		anim := testAnimation(fmt.Sprintf("clip-%d", i))
		anim.FolderPath = "Walk"
		require.NoError(t, c.Add(anim))
	}

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Len())
	assert.Contains(t, reopened.Folders(), "Walk")

	entries, _, err := reopened.ListFolder("Walk", false)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestConcurrentAddSameID(t *testing.T) {
	c := testCatalog(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Add(testAnimation("contested"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.IsAlreadyExists(err))
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, c.Len())
}

func TestConcurrentMixedOperations(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.CreateFolder("Walk"))
	for i := 0; i < 10; i++ {
		require.NoError(t, c.Add(testAnimation(fmt.Sprintf("clip-%d", i))))
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("clip-%d", i)
			switch i % 3 {
			case 0:
				_, _ = c.Get(id)
			case 1:
				_ = c.Move(id, "Walk")
			default:
				_, _, _ = c.List()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, c.Len())
}

// After every mutation the index row for each surviving id must agree
// with the folder stored inside its record file.
func TestIndexAgreesWithRecordsAfterMutations(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.CreateFolder("Walk"))
	require.NoError(t, c.CreateFolder("Combat"))

	checkAgreement := func() {
		t.Helper()
		for _, id := range c.index.allIDs() {
			indexed, ok := c.index.lookup(id)
			require.True(t, ok)
			onDisk, err := c.records.read(id)
			require.NoError(t, err)
			assert.Equal(t, onDisk.FolderPath, indexed, "id %s", id)
		}
	}

	require.NoError(t, c.Add(testAnimation("a")))
	checkAgreement()
	require.NoError(t, c.Add(testAnimation("b")))
	require.NoError(t, c.Move("a", "Walk"))
	checkAgreement()
	require.NoError(t, c.Move("a", "Combat"))
	require.NoError(t, c.Remove("b"))
	checkAgreement()
	require.NoError(t, c.RenameFolder("Combat", "Melee"))
	checkAgreement()
	require.NoError(t, c.DeleteFolder("Melee"))
	checkAgreement()
}

func TestRebuildIndex(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("a")))
	require.NoError(t, c.Add(testAnimation("b")))

	// Drop a record from disk; a rebuild must reflect reality.
	require.NoError(t, os.Remove(filepath.Join(c.Root(), constants.RecordsDir, "a.yaml")))
	require.NoError(t, c.RebuildIndex())

	assert.Equal(t, 1, c.Len())
	_, err := c.Get("b")
	assert.NoError(t, err)
}
