package library

import (
	"sort"
	"strings"

	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/errors"
)

// validateFolderPath checks a folder path for use in the catalog.
// Paths are slash-separated and relative; the root folder name is
// reserved.
func validateFolderPath(path string) error {
	switch {
	case path == "":
		return &errors.ValidationError{Field: "folder", Message: "must not be empty"}
	case path == constants.RootFolder:
		return &errors.ValidationError{Field: "folder", Value: path, Message: "name is reserved"}
	case strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/"):
		return &errors.ValidationError{Field: "folder", Value: path, Message: "must not start or end with a slash"}
	case strings.Contains(path, "\\"):
		return &errors.ValidationError{Field: "folder", Value: path, Message: "must use forward slashes"}
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return &errors.ValidationError{Field: "folder", Value: path, Message: "contains an invalid path segment"}
		}
	}
	return nil
}

func (c *Catalog) folderExistsLocked(folder string) bool {
	if folder == constants.RootFolder {
		return true
	}
	_, ok := c.folders[folder]
	return ok
}

// ensureFolderLocked registers a folder, creating its asset directories
// and any missing parents.
func (c *Catalog) ensureFolderLocked(folder string) error {
	if c.folderExistsLocked(folder) {
		return nil
	}
	if err := validateFolderPath(folder); err != nil {
		return err
	}
	if err := c.assets.EnsureFolder(folder); err != nil {
		return err
	}
	segments := strings.Split(folder, "/")
	for i := range segments {
		c.folders[strings.Join(segments[:i+1], "/")] = struct{}{}
	}
	return nil
}

// Folders returns every folder path in the catalog, sorted, with the
// root folder first.
func (c *Catalog) Folders() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	folders := make([]string, 0, len(c.folders))
	for f := range c.folders {
		if f == constants.RootFolder {
			continue
		}
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return append([]string{constants.RootFolder}, folders...)
}

// FolderExists reports whether a folder is registered. The root folder
// always exists.
func (c *Catalog) FolderExists(folder string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.folderExistsLocked(folder)
}

// EntryCount returns the number of entries placed directly in folder.
func (c *Catalog) EntryCount(folder string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[folder]
}

// CreateFolder registers a new folder and creates its asset
// directories. Creating an existing folder fails with a duplicate
// error.
func (c *Catalog) CreateFolder(folder string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.folderExistsLocked(folder) {
		return &errors.DuplicateError{Resource: "folder", ID: folder}
	}
	if err := c.ensureFolderLocked(folder); err != nil {
		return err
	}

	c.log.Info().Str("folder", folder).Msg("folder created")
	return nil
}

// DeleteFolder removes a folder and its subfolders. Under the cascade
// policy the contained entries move to the root folder first; under the
// reject policy a non-empty folder is refused. The root folder cannot
// be deleted.
func (c *Catalog) DeleteFolder(folder string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if folder == constants.RootFolder {
		return &errors.ValidationError{Field: "folder", Value: folder, Message: "root folder cannot be deleted"}
	}
	if !c.folderExistsLocked(folder) {
		return &errors.NotFoundError{Resource: "folder", ID: folder}
	}

	contained := c.idsUnderLocked(folder)
	if len(contained) > 0 && c.deletePolicy == FolderDeleteReject {
		return &errors.ValidationError{Field: "folder", Value: folder, Message: "folder is not empty"}
	}

	for _, id := range contained {
		if err := c.moveToRootLocked(id); err != nil {
			return err
		}
	}

	c.assets.RemoveFolder(folder)
	prefix := folder + "/"
	for f := range c.folders {
		if f == folder || strings.HasPrefix(f, prefix) {
			delete(c.folders, f)
			delete(c.counts, f)
		}
	}

	c.log.Info().Str("folder", folder).Int("relocated", len(contained)).Msg("folder deleted")
	return nil
}

// RenameFolder renames a folder, rewriting the record and index rows of
// every entry in it or below it and relocating the asset directories.
func (c *Catalog) RenameFolder(oldFolder, newFolder string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if oldFolder == constants.RootFolder {
		return &errors.ValidationError{Field: "folder", Value: oldFolder, Message: "root folder cannot be renamed"}
	}
	if !c.folderExistsLocked(oldFolder) {
		return &errors.NotFoundError{Resource: "folder", ID: oldFolder}
	}
	if err := validateFolderPath(newFolder); err != nil {
		return err
	}
	if c.folderExistsLocked(newFolder) {
		return &errors.DuplicateError{Resource: "folder", ID: newFolder}
	}

	if err := c.assets.RenameFolder(oldFolder, newFolder); err != nil {
		return err
	}

	prefix := oldFolder + "/"
	rename := func(f string) string {
		if f == oldFolder {
			return newFolder
		}
		return newFolder + "/" + strings.TrimPrefix(f, prefix)
	}

	for _, id := range c.idsUnderLocked(oldFolder) {
		anim, err := c.getLocked(id)
		if err != nil {
			return err
		}
		anim.FolderPath = rename(anim.FolderPath)
		if err := c.records.write(anim); err != nil {
			return err
		}
		c.index.upsert(id, anim.FolderPath)
		c.cache.put(anim)
	}
	if err := c.index.flush(); err != nil {
		return err
	}

	for f := range c.folders {
		if f == oldFolder || strings.HasPrefix(f, prefix) {
			delete(c.folders, f)
			renamed := rename(f)
			c.folders[renamed] = struct{}{}
			if n, ok := c.counts[f]; ok {
				delete(c.counts, f)
				c.counts[renamed] = n
			}
		}
	}

	c.log.Info().Str("from", oldFolder).Str("to", newFolder).Msg("folder renamed")
	return nil
}

// idsUnderLocked returns the ids placed in folder or any of its
// subfolders.
func (c *Catalog) idsUnderLocked(folder string) []string {
	prefix := folder + "/"
	var ids []string
	for _, id := range c.index.allIDs() {
		f, _ := c.index.lookup(id)
		if f == folder || strings.HasPrefix(f, prefix) {
			ids = append(ids, id)
		}
	}
	return ids
}

// moveToRootLocked relocates an entry to the root folder as part of a
// cascade delete.
func (c *Catalog) moveToRootLocked(id string) error {
	oldFolder, ok := c.index.lookup(id)
	if !ok {
		return nil
	}

	anim, err := c.getLocked(id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}
	anim.FolderPath = constants.RootFolder

	if err := c.records.write(anim); err != nil {
		return err
	}
	c.index.upsert(id, constants.RootFolder)
	if err := c.index.flush(); err != nil {
		return err
	}
	c.cache.put(anim)
	c.counts[oldFolder]--
	c.counts[constants.RootFolder]++

	if err := c.assets.Move(id, oldFolder, constants.RootFolder); err != nil {
		c.log.Warn().Str("id", id).Err(err).Msg("failed to move asset files")
	}
	return nil
}
