package library

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipvault/clipvault/pkg/animations"
	"github.com/clipvault/clipvault/pkg/constants"
)

func TestStatsEmptyCatalog(t *testing.T) {
	c := testCatalog(t)

	stats, err := c.Stats(false)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, 1, stats.TotalFolders)
	assert.Equal(t, float64(0), stats.AverageDuration)
}

func TestStatsAggregates(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.CreateFolder("Walk"))

	a := testAnimation("a")
	a.Tags = []string{"locomotion", "short"}
	a.RigType = animations.RigTypeRigify
	a.DurationFrames = 20
	require.NoError(t, c.Add(a))

	b := testAnimation("b")
	b.FolderPath = "Walk"
	b.Tags = []string{"locomotion", "long"}
	b.RigType = animations.RigTypeMixamo
	b.DurationFrames = 40
	require.NoError(t, c.Add(b))

	stats, err := c.Stats(false)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 1, stats.EntriesByFolder[constants.RootFolder])
	assert.Equal(t, 1, stats.EntriesByFolder["Walk"])
	assert.Equal(t, 20, stats.TotalKeyframes)
	assert.Equal(t, float64(30), stats.AverageDuration)
	assert.Equal(t, []string{"locomotion", "long", "short"}, stats.Tags)
	assert.Equal(t, []string{animations.RigTypeMixamo, animations.RigTypeRigify}, stats.RigTypes)
	assert.Zero(t, stats.DiskUsageBytes)
}

func TestStatsDiskUsage(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Add(testAnimation("clip")))

	payload := []byte("0123456789")
	blend := c.Assets().ActionPath("clip", constants.RootFolder)
	require.NoError(t, os.WriteFile(blend, payload, constants.FilePermissions))

	stats, err := c.Stats(true)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), stats.DiskUsageBytes)
}

func TestStatsCountsStayConsistent(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.CreateFolder("Walk"))

	require.NoError(t, c.Add(testAnimation("a")))
	require.NoError(t, c.Add(testAnimation("b")))
	require.NoError(t, c.Move("a", "Walk"))
	require.NoError(t, c.Remove("b"))

	stats, err := c.Stats(false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 0, stats.EntriesByFolder[constants.RootFolder])
	assert.Equal(t, 1, stats.EntriesByFolder["Walk"])
}
