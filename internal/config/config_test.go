package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/library"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg := Load()
	assert.NotEmpty(t, cfg.LibraryPath)
	assert.Equal(t, constants.DefaultCacheCapacity, cfg.CacheCapacity)
	assert.Equal(t, "cascade", cfg.FolderDeletePolicy)
	assert.Equal(t, library.FolderDeleteCascade, cfg.DeletePolicy())
}

func TestDeletePolicyMapping(t *testing.T) {
	assert.Equal(t, library.FolderDeleteReject, (&Config{FolderDeletePolicy: "reject"}).DeletePolicy())
	assert.Equal(t, library.FolderDeleteCascade, (&Config{FolderDeletePolicy: "cascade"}).DeletePolicy())
	assert.Equal(t, library.FolderDeleteCascade, (&Config{FolderDeletePolicy: "bogus"}).DeletePolicy())
}

func TestDefaultLibraryPathEnvOverride(t *testing.T) {
	t.Setenv("CLIPVAULT_LIBRARY", "/srv/clips")
	assert.Equal(t, "/srv/clips", DefaultLibraryPath())
}

func TestOverridesFromConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("library.path", "/tmp/lib")
	viper.Set("cache.capacity", 50)
	viper.Set("folders.delete_policy", "REJECT")

	cfg := Load()
	assert.Equal(t, "/tmp/lib", cfg.LibraryPath)
	assert.Equal(t, 50, cfg.CacheCapacity)
	assert.Equal(t, library.FolderDeleteReject, cfg.DeletePolicy())
}
