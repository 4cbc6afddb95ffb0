package library

import (
	"github.com/rs/zerolog"

	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/logging"
)

// FolderDeletePolicy controls what happens to entries still inside a
// folder when the folder is deleted.
type FolderDeletePolicy int

const (
	// FolderDeleteCascade moves the folder's entries to the root folder
	// before deleting it. This is the default.
	FolderDeleteCascade FolderDeletePolicy = iota

	// FolderDeleteReject refuses to delete a non-empty folder.
	FolderDeleteReject
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithCacheCapacity overrides the record cache capacity.
func WithCacheCapacity(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.cacheCapacity = n
		}
	}
}

// WithFolderDeletePolicy sets the policy applied when deleting a folder
// that still contains entries.
func WithFolderDeletePolicy(p FolderDeletePolicy) Option {
	return func(c *Catalog) {
		c.deletePolicy = p
	}
}

// WithLogger sets the logger used by the catalog.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Catalog) {
		c.log = log
	}
}

// WithEvictionHook registers a callback invoked with the id of every
// record evicted from the cache. Intended for instrumentation.
func WithEvictionHook(fn func(id string)) Option {
	return func(c *Catalog) {
		c.onEvict = fn
	}
}

func defaultOptions(c *Catalog) {
	c.cacheCapacity = constants.DefaultCacheCapacity
	c.deletePolicy = FolderDeleteCascade
	c.log = *logging.Default()
}
