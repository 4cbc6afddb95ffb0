package library

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/errors"
	"github.com/clipvault/clipvault/pkg/logging"
)

// AssetStore resolves and manages the binary companions of catalog
// entries: the .blend extract holding the action and the .mp4 preview.
// Assets live under folder-mirroring directories, so paths are derived
// purely from id and folder with no lookup state of their own.
type AssetStore struct {
	actionsDir  string
	previewsDir string
}

// NewAssetStore creates an asset store rooted at the given library root.
func NewAssetStore(root string) *AssetStore {
	return &AssetStore{
		actionsDir:  filepath.Join(root, constants.ActionsDir),
		previewsDir: filepath.Join(root, constants.PreviewsDir),
	}
}

// ActionPath returns the .blend path for an entry in a folder.
func (as *AssetStore) ActionPath(id, folder string) string {
	return filepath.Join(as.actionsDir, filepath.FromSlash(folder), id+constants.ActionExt)
}

// PreviewPath returns the .mp4 preview path for an entry in a folder.
func (as *AssetStore) PreviewPath(id, folder string) string {
	return filepath.Join(as.previewsDir, filepath.FromSlash(folder), id+constants.PreviewExt)
}

// ActionExists reports whether the .blend file is present.
func (as *AssetStore) ActionExists(id, folder string) bool {
	_, err := os.Stat(as.ActionPath(id, folder))
	return err == nil
}

// PreviewExists reports whether the preview file is present.
func (as *AssetStore) PreviewExists(id, folder string) bool {
	_, err := os.Stat(as.PreviewPath(id, folder))
	return err == nil
}

// EnsureFolder creates the asset directories backing a catalog folder.
func (as *AssetStore) EnsureFolder(folder string) error {
	for _, dir := range []string{
		filepath.Join(as.actionsDir, filepath.FromSlash(folder)),
		filepath.Join(as.previewsDir, filepath.FromSlash(folder)),
	} {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	return nil
}

// Delete removes the binary assets of an entry. Missing files are fine;
// other failures are logged and swallowed so that asset cleanup never
// blocks catalog removal.
func (as *AssetStore) Delete(id, folder string) {
	for _, path := range []string{as.ActionPath(id, folder), as.PreviewPath(id, folder)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Warn().Str("path", path).Err(err).Msg("failed to delete asset file")
		}
	}
}

// Move relocates an entry's assets between folders. A missing source is
// skipped silently since assets are optional companions.
func (as *AssetStore) Move(id, fromFolder, toFolder string) error {
	if err := as.EnsureFolder(toFolder); err != nil {
		return err
	}
	moves := [][2]string{
		{as.ActionPath(id, fromFolder), as.ActionPath(id, toFolder)},
		{as.PreviewPath(id, fromFolder), as.PreviewPath(id, toFolder)},
	}
	for _, m := range moves {
		if _, err := os.Stat(m[0]); os.IsNotExist(err) {
			continue
		}
		if err := os.Rename(m[0], m[1]); err != nil {
			return errors.WrapIO("rename", m[1], err)
		}
	}
	return nil
}

// RenameFolder renames the asset directories backing a catalog folder.
// Missing directories are created on the new side instead.
func (as *AssetStore) RenameFolder(oldFolder, newFolder string) error {
	for _, roots := range [][2]string{
		{filepath.Join(as.actionsDir, filepath.FromSlash(oldFolder)), filepath.Join(as.actionsDir, filepath.FromSlash(newFolder))},
		{filepath.Join(as.previewsDir, filepath.FromSlash(oldFolder)), filepath.Join(as.previewsDir, filepath.FromSlash(newFolder))},
	} {
		if _, err := os.Stat(roots[0]); os.IsNotExist(err) {
			if mkErr := os.MkdirAll(roots[1], constants.DirPermissions); mkErr != nil {
				return errors.WrapIO("create", roots[1], mkErr)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(roots[1]), constants.DirPermissions); err != nil {
			return errors.WrapIO("create", filepath.Dir(roots[1]), err)
		}
		if err := os.Rename(roots[0], roots[1]); err != nil {
			return errors.WrapIO("rename", roots[1], err)
		}
	}
	return nil
}

// RemoveFolder deletes the asset directories of an emptied folder.
// Leftover files are logged, not treated as an error.
func (as *AssetStore) RemoveFolder(folder string) {
	for _, dir := range []string{
		filepath.Join(as.actionsDir, filepath.FromSlash(folder)),
		filepath.Join(as.previewsDir, filepath.FromSlash(folder)),
	} {
		if err := os.RemoveAll(dir); err != nil {
			logging.Warn().Str("dir", dir).Err(err).Msg("failed to remove asset directory")
		}
	}
}

// Folders enumerates the folder paths present under the actions tree,
// relative to it and slash-separated. The actions tree is the source of
// truth for which folders exist on disk.
func (as *AssetStore) Folders() ([]string, error) {
	var folders []string
	err := godirwalk.Walk(as.actionsDir, &godirwalk.Options{
		Unsorted: false,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if !de.IsDir() || path == as.actionsDir {
				return nil
			}
			rel, err := filepath.Rel(as.actionsDir, path)
			if err != nil {
				return err
			}
			folders = append(folders, filepath.ToSlash(rel))
			return nil
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("walk", as.actionsDir, err)
	}
	return folders, nil
}

// DiskUsage totals the byte size of every asset file under both trees.
func (as *AssetStore) DiskUsage() (int64, error) {
	var total int64
	for _, root := range []string{as.actionsDir, as.previewsDir} {
		err := godirwalk.Walk(root, &godirwalk.Options{
			Unsorted: true,
			Callback: func(path string, de *godirwalk.Dirent) error {
				if de.IsDir() {
					return nil
				}
				info, err := os.Stat(path)
				if err != nil {
					return nil
				}
				total += info.Size()
				return nil
			},
		})
		if err != nil && !os.IsNotExist(err) {
			return 0, errors.WrapIO("walk", root, err)
		}
	}
	return total, nil
}
