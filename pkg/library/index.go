package library

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/errors"
	"github.com/clipvault/clipvault/pkg/logging"
)

// indexFile is the persisted form of the index store. Entries are a list,
// not a map, so insertion order survives the round trip.
type indexFile struct {
	Version int          `yaml:"version"`
	Entries []indexEntry `yaml:"entries"`
}

type indexEntry struct {
	ID     string `yaml:"id"`
	Folder string `yaml:"folder"`
}

// indexStore owns the id to folder-path projection. It is purely derived
// data, rebuildable at any time from the record files. Reads hit the
// in-memory map; every mutation is followed by a flush by the owning
// Catalog.
type indexStore struct {
	mu      sync.RWMutex
	path    string
	folders map[string]string
	order   []string
}

// newIndexStore creates an empty index persisted at path.
func newIndexStore(path string) *indexStore {
	return &indexStore{
		path:    path,
		folders: make(map[string]string),
	}
}

// load reads the persisted index. A missing file, a decode failure, or a
// schema version mismatch all fall through to a synchronous rebuild from
// the record files, so index corruption never surfaces to the caller.
func (ix *indexStore) load(records *recordStore) error {
	data, err := os.ReadFile(ix.path)
	if err == nil {
		var file indexFile
		if yamlErr := yaml.Unmarshal(data, &file); yamlErr == nil && file.Version == constants.IndexVersion {
			ix.mu.Lock()
			ix.folders = make(map[string]string, len(file.Entries))
			ix.order = ix.order[:0]
			for _, entry := range file.Entries {
				if _, seen := ix.folders[entry.ID]; !seen {
					ix.order = append(ix.order, entry.ID)
				}
				ix.folders[entry.ID] = entry.Folder
			}
			ix.mu.Unlock()
			return nil
		} else if yamlErr != nil {
			logging.Warn().Str("path", ix.path).Err(yamlErr).Msg("index file corrupt, rebuilding")
		} else {
			logging.Info().Str("path", ix.path).Int("version", file.Version).Msg("index schema version mismatch, rebuilding")
		}
	} else if !os.IsNotExist(err) {
		return errors.WrapIO("read", ix.path, err)
	}

	if err := ix.rebuild(records); err != nil {
		return err
	}
	return ix.flush()
}

// rebuild re-derives the full index by enumerating every record file.
// Corrupt records are skipped with a warning; they stay on disk for manual
// repair but get no index row.
func (ix *indexStore) rebuild(records *recordStore) error {
	ix.mu.Lock()
	ix.folders = make(map[string]string)
	ix.order = ix.order[:0]
	ix.mu.Unlock()

	return records.walk(func(id string, path string) {
		anim, err := records.read(id)
		if err != nil {
			logging.Warn().Str("id", id).Str("path", path).Err(err).Msg("skipping unreadable record during index rebuild")
			return
		}
		ix.upsert(anim.ID, anim.FolderPath)
	})
}

// lookup resolves an id to its folder path.
func (ix *indexStore) lookup(id string) (string, bool) {
	ix.mu.RLock()
	folder, ok := ix.folders[id]
	ix.mu.RUnlock()
	return folder, ok
}

// upsert records or updates the folder placement of an id. Idempotent.
func (ix *indexStore) upsert(id, folder string) {
	ix.mu.Lock()
	if _, exists := ix.folders[id]; !exists {
		ix.order = append(ix.order, id)
	}
	ix.folders[id] = folder
	ix.mu.Unlock()
}

// remove drops an id. No-op if absent.
func (ix *indexStore) remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, exists := ix.folders[id]; !exists {
		return
	}
	delete(ix.folders, id)
	for i, existing := range ix.order {
		if existing == id {
			ix.order = append(ix.order[:i], ix.order[i+1:]...)
			break
		}
	}
}

// allIDs returns every indexed id in insertion order of the persisted
// index. The order carries no meaning but is stable within a process run.
func (ix *indexStore) allIDs() []string {
	ix.mu.RLock()
	ids := make([]string, len(ix.order))
	copy(ids, ix.order)
	ix.mu.RUnlock()
	return ids
}

// len returns the number of indexed ids.
func (ix *indexStore) len() int {
	ix.mu.RLock()
	n := len(ix.order)
	ix.mu.RUnlock()
	return n
}

// flush persists the index atomically: marshal, write to a temp file in the
// same directory, then rename over the live file. A crash mid-write never
// leaves a truncated index behind.
func (ix *indexStore) flush() error {
	ix.mu.RLock()
	file := indexFile{
		Version: constants.IndexVersion,
		Entries: make([]indexEntry, 0, len(ix.order)),
	}
	for _, id := range ix.order {
		file.Entries = append(file.Entries, indexEntry{ID: id, Folder: ix.folders[id]})
	}
	ix.mu.RUnlock()

	data, err := yaml.Marshal(file)
	if err != nil {
		return errors.WrapParse("yaml", ix.path, err)
	}

	tmp := ix.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(ix.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(ix.path), err)
	}
	if err := os.WriteFile(tmp, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmp, err)
	}
	if err := os.Rename(tmp, ix.path); err != nil {
		return errors.WrapIO("rename", ix.path, err)
	}
	return nil
}
