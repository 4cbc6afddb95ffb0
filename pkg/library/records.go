package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/clipvault/clipvault/pkg/animations"
	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/errors"
)

// recordStore reads and writes one YAML file per catalog entry under the
// records directory. Filenames are <id>.yaml, so a record is addressable
// without consulting the index.
type recordStore struct {
	dir string
}

func newRecordStore(dir string) *recordStore {
	return &recordStore{dir: dir}
}

// path returns the record file path for an id.
func (rs *recordStore) path(id string) string {
	return filepath.Join(rs.dir, id+constants.RecordExt)
}

// exists reports whether a record file is present for the id.
func (rs *recordStore) exists(id string) bool {
	_, err := os.Stat(rs.path(id))
	return err == nil
}

// read loads and decodes a single record. A missing file maps to
// ErrNotFound; a file that will not decode or validate surfaces the
// codec's corrupt-record error.
func (rs *recordStore) read(id string) (*animations.Animation, error) {
	data, err := os.ReadFile(rs.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "record", ID: id}
		}
		return nil, errors.WrapIO("read", rs.path(id), err)
	}

	anim, err := animations.Decode(data)
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) {
			perr.File = rs.path(id)
			if perr.ID == "" {
				perr.ID = id
			}
			return nil, err
		}
		return nil, errors.WrapParse("yaml", rs.path(id), err)
	}
	return anim, nil
}

// write persists a record atomically: encode, write to a temp file in the
// records directory, then rename into place. Readers never observe a
// half-written record.
func (rs *recordStore) write(anim *animations.Animation) error {
	data, err := animations.Encode(anim)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(rs.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", rs.dir, err)
	}

	target := rs.path(anim.ID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return errors.WrapIO("rename", target, err)
	}
	return nil
}

// delete removes a record file. A file that is already gone is not an
// error; existence is the index's business.
func (rs *recordStore) delete(id string) error {
	if err := os.Remove(rs.path(id)); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", rs.path(id), err)
	}
	return nil
}

// walk visits every record file in the directory in lexical order,
// calling fn with the id derived from the filename. Used for index
// rebuilds and migration verification.
func (rs *recordStore) walk(fn func(id string, path string)) error {
	err := godirwalk.Walk(rs.dir, &godirwalk.Options{
		Unsorted: false,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !strings.HasSuffix(path, constants.RecordExt) {
				return nil
			}
			id := strings.TrimSuffix(filepath.Base(path), constants.RecordExt)
			fn(id, path)
			return nil
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapIO("walk", rs.dir, err)
	}
	return nil
}

// count returns the number of record files on disk.
func (rs *recordStore) count() (int, error) {
	n := 0
	err := rs.walk(func(string, string) { n++ })
	return n, err
}
