// Package library implements the animation catalog: a directory-backed
// store holding one YAML record per clip, a rebuildable id-to-folder
// index, a bounded record cache, and the binary asset files that
// accompany each entry.
package library

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clipvault/clipvault/pkg/animations"
	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/errors"
)

// Catalog is the single entry point for catalog state. All public
// methods serialize on one mutex; individual operations are quick file
// reads and writes, so a finer scheme buys nothing.
type Catalog struct {
	mu sync.Mutex

	root    string
	index   *indexStore
	cache   *recordCache
	records *recordStore
	assets  *AssetStore

	folders map[string]struct{}
	counts  map[string]int

	log           zerolog.Logger
	deletePolicy  FolderDeletePolicy
	cacheCapacity int
	onEvict       func(id string)
}

// Open loads the catalog rooted at dir, creating the on-disk layout on
// first use. If a legacy monolithic metadata file is present and no
// per-record files exist yet, it is migrated before the index loads.
func Open(dir string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		root:    dir,
		folders: make(map[string]struct{}),
		counts:  make(map[string]int),
	}
	defaultOptions(c)
	for _, opt := range opts {
		opt(c)
	}

	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	c.records = newRecordStore(filepath.Join(dir, constants.RecordsDir))
	c.assets = NewAssetStore(dir)
	c.index = newIndexStore(filepath.Join(dir, constants.IndexFile))

	if err := os.MkdirAll(c.records.dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", c.records.dir, err)
	}
	if err := c.assets.EnsureFolder(constants.RootFolder); err != nil {
		return nil, err
	}

	if err := c.migrateIfNeeded(); err != nil {
		return nil, err
	}

	cache, err := newRecordCache(c.cacheCapacity, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.cache = cache

	if err := c.index.load(c.records); err != nil {
		return nil, err
	}

	c.loadFolders()

	c.log.Info().
		Str("root", dir).
		Int("entries", c.index.len()).
		Int("folders", len(c.folders)).
		Msg("catalog opened")
	return c, nil
}

// loadFolders seeds the folder set from the asset directories and from
// the index, then rebuilds the per-folder entry counts.
func (c *Catalog) loadFolders() {
	c.folders = map[string]struct{}{constants.RootFolder: {}}
	c.counts = make(map[string]int)

	if onDisk, err := c.assets.Folders(); err == nil {
		for _, f := range onDisk {
			c.folders[f] = struct{}{}
		}
	} else {
		c.log.Warn().Err(err).Msg("failed to enumerate asset folders")
	}

	for _, id := range c.index.allIDs() {
		folder, _ := c.index.lookup(id)
		c.folders[folder] = struct{}{}
		c.counts[folder]++
	}
}

// Root returns the library root directory.
func (c *Catalog) Root() string {
	return c.root
}

// Assets exposes the binary asset store for callers that produce or
// consume .blend and preview files directly.
func (c *Catalog) Assets() *AssetStore {
	return c.assets
}

// Len returns the number of cataloged entries.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.len()
}

// Add catalogs a new entry. The id must be unused; a duplicate leaves
// the catalog untouched. The entry's folder is created if it does not
// exist yet, so a freshly extracted clip can land directly in its
// target folder.
func (c *Catalog) Add(anim *animations.Animation) error {
	if anim == nil {
		return &errors.ValidationError{Field: "animation", Message: "must not be nil"}
	}
	if err := anim.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index.lookup(anim.ID); exists {
		return &errors.DuplicateError{Resource: "animation", ID: anim.ID}
	}

	if anim.FolderPath == "" {
		anim.FolderPath = constants.RootFolder
	}
	if err := c.ensureFolderLocked(anim.FolderPath); err != nil {
		return err
	}

	if err := c.records.write(anim); err != nil {
		return err
	}
	c.index.upsert(anim.ID, anim.FolderPath)
	if err := c.index.flush(); err != nil {
		return err
	}
	c.cache.put(anim)
	c.counts[anim.FolderPath]++

	c.log.Info().Str("id", anim.ID).Str("folder", anim.FolderPath).Msg("entry added")
	return nil
}

// Get returns the entry for id, reading through the cache. An id with an
// index row but no record file is treated as index drift: the stale row
// is dropped and the id reported as unknown.
func (c *Catalog) Get(id string) (*animations.Animation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(id)
}

func (c *Catalog) getLocked(id string) (*animations.Animation, error) {
	if _, ok := c.index.lookup(id); !ok {
		return nil, &errors.NotFoundError{Resource: "animation", ID: id}
	}

	anim, err := c.cache.get(id, func() (*animations.Animation, error) {
		return c.records.read(id)
	})
	if err != nil {
		if errors.IsNotFound(err) {
			c.log.Warn().Str("id", id).Msg("indexed record missing on disk, dropping index row")
			c.dropIndexRowLocked(id)
			return nil, &errors.NotFoundError{Resource: "animation", ID: id}
		}
		return nil, err
	}
	return anim, nil
}

// dropIndexRowLocked removes a stale index row and its folder count.
func (c *Catalog) dropIndexRowLocked(id string) {
	if folder, ok := c.index.lookup(id); ok {
		c.counts[folder]--
	}
	c.index.remove(id)
	if err := c.index.flush(); err != nil {
		c.log.Warn().Err(err).Msg("failed to flush index after dropping stale row")
	}
}

// Remove deletes an entry and its binary assets. The record file goes
// first and the index row second, so a failure between the two leaves a
// stale index row that self-heals on the next lookup, never a dangling
// record.
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	folder, ok := c.index.lookup(id)
	if !ok {
		return &errors.NotFoundError{Resource: "animation", ID: id}
	}

	if err := c.records.delete(id); err != nil {
		return err
	}
	c.index.remove(id)
	if err := c.index.flush(); err != nil {
		return err
	}
	c.cache.invalidate(id)
	c.assets.Delete(id, folder)
	c.counts[folder]--

	c.log.Info().Str("id", id).Str("folder", folder).Msg("entry removed")
	return nil
}

// Move reassigns an entry to another folder. Unlike Add, the target
// folder must already exist; only the root folder is implicit. The
// record file is the source of truth, so it is rewritten before the
// index row changes.
func (c *Catalog) Move(id, folder string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldFolder, ok := c.index.lookup(id)
	if !ok {
		return &errors.NotFoundError{Resource: "animation", ID: id}
	}
	if !c.folderExistsLocked(folder) {
		return &errors.ValidationError{Field: "folder", Value: folder, Message: "folder does not exist"}
	}
	if folder == oldFolder {
		return nil
	}

	anim, err := c.getLocked(id)
	if err != nil {
		return err
	}
	anim.FolderPath = folder

	if err := c.records.write(anim); err != nil {
		return err
	}
	c.index.upsert(id, folder)
	if err := c.index.flush(); err != nil {
		return err
	}
	c.cache.put(anim)
	c.counts[oldFolder]--
	c.counts[folder]++

	if err := c.assets.Move(id, oldFolder, folder); err != nil {
		c.log.Warn().Str("id", id).Err(err).Msg("failed to move asset files")
	}

	c.log.Info().Str("id", id).Str("from", oldFolder).Str("to", folder).Msg("entry moved")
	return nil
}

// Touch increments an entry's usage counter and persists the record.
func (c *Catalog) Touch(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	anim, err := c.getLocked(id)
	if err != nil {
		return err
	}
	anim.UsageCount++
	if err := c.records.write(anim); err != nil {
		return err
	}
	c.cache.put(anim)
	return nil
}

// Rate sets an entry's quality rating on a 0 to 5 scale.
func (c *Catalog) Rate(id string, rating float64) error {
	if rating < 0 || rating > 5 {
		return &errors.ValidationError{Field: "rating", Message: "must be between 0 and 5"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	anim, err := c.getLocked(id)
	if err != nil {
		return err
	}
	anim.QualityRating = rating
	if err := c.records.write(anim); err != nil {
		return err
	}
	c.cache.put(anim)
	return nil
}

// List returns every entry in the catalog. Entries whose record files
// are corrupt are skipped, logged, and reported in the second return
// value rather than failing the whole listing.
func (c *Catalog) List() ([]*animations.Animation, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listLocked(c.index.allIDs())
}

// ListFolder returns the entries placed in folder. With recursive set,
// entries in subfolders are included as well.
func (c *Catalog) ListFolder(folder string, recursive bool) ([]*animations.Animation, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.folderExistsLocked(folder) {
		return nil, nil, &errors.ValidationError{Field: "folder", Value: folder, Message: "folder does not exist"}
	}

	prefix := folder + "/"
	var ids []string
	for _, id := range c.index.allIDs() {
		entryFolder, _ := c.index.lookup(id)
		if entryFolder == folder || (recursive && strings.HasPrefix(entryFolder, prefix)) {
			ids = append(ids, id)
		}
	}
	return c.listLocked(ids)
}

func (c *Catalog) listLocked(ids []string) ([]*animations.Animation, []string, error) {
	entries := make([]*animations.Animation, 0, len(ids))
	var skipped []string
	for _, id := range ids {
		anim, err := c.getLocked(id)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			c.log.Warn().Str("id", id).Err(err).Msg("skipping unreadable entry")
			skipped = append(skipped, id)
			continue
		}
		entries = append(entries, anim)
	}
	return entries, skipped, nil
}

// RebuildIndex re-derives the index from the record files and persists
// it, then reloads folder state. Use after manual edits to the records
// directory.
func (c *Catalog) RebuildIndex() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.index.rebuild(c.records); err != nil {
		return err
	}
	if err := c.index.flush(); err != nil {
		return err
	}
	c.cache.purge()
	c.loadFolders()

	c.log.Info().Int("entries", c.index.len()).Msg("index rebuilt")
	return nil
}
