// Package config resolves clipvault settings from flags, environment
// variables, and the optional config file, in that precedence order.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/library"
)

// Config is the resolved runtime configuration.
type Config struct {
	// LibraryPath is the root directory of the animation library.
	LibraryPath string

	// CacheCapacity bounds the in-memory record cache.
	CacheCapacity int

	// FolderDeletePolicy is "cascade" or "reject".
	FolderDeletePolicy string

	// LogLevel and LogFormat feed the logging setup.
	LogLevel  string
	LogFormat string
}

// SetDefaults registers default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault("library.path", DefaultLibraryPath())
	viper.SetDefault("cache.capacity", constants.DefaultCacheCapacity)
	viper.SetDefault("folders.delete_policy", "cascade")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "auto")
}

// Load materializes the configuration from viper.
func Load() *Config {
	return &Config{
		LibraryPath:        viper.GetString("library.path"),
		CacheCapacity:      viper.GetInt("cache.capacity"),
		FolderDeletePolicy: strings.ToLower(viper.GetString("folders.delete_policy")),
		LogLevel:           viper.GetString("log.level"),
		LogFormat:          viper.GetString("log.format"),
	}
}

// DeletePolicy maps the configured folder delete policy string to the
// library's policy type. Unknown values fall back to cascade.
func (c *Config) DeletePolicy() library.FolderDeletePolicy {
	if c.FolderDeletePolicy == "reject" {
		return library.FolderDeleteReject
	}
	return library.FolderDeleteCascade
}

// DefaultLibraryPath returns the library location used when nothing is
// configured: $CLIPVAULT_LIBRARY, or ~/.clipvault/library.
func DefaultLibraryPath() string {
	if path := os.Getenv("CLIPVAULT_LIBRARY"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "clipvault-library")
	}
	return filepath.Join(home, ".clipvault", "library")
}
