// Package constants provides shared constants used throughout the clipvault
// codebase: file permissions, on-disk layout names, and default limits that
// should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// On-disk layout names. These are the compatibility surface of a library
// root; renaming any of them is a breaking format change.
const (
	// IndexFile is the persisted index store at the library root.
	IndexFile = "index.yaml"

	// RecordsDir holds one YAML record file per catalog entry.
	RecordsDir = "records"

	// ActionsDir holds the binary .blend payload per entry, organized by folder.
	ActionsDir = "actions"

	// PreviewsDir holds the preview artifact per entry, organized by folder.
	PreviewsDir = "previews"

	// RecordExt is the extension of individual record files.
	RecordExt = ".yaml"

	// ActionExt is the extension of the native binary payload.
	ActionExt = ".blend"

	// PreviewExt is the extension of preview artifacts.
	PreviewExt = ".mp4"

	// LegacyMetadataFile is the pre-migration monolithic metadata file.
	LegacyMetadataFile = "library_metadata.json"

	// MigrationBackupSuffix is appended to the monolithic file after a
	// successful migration. The original is never deleted.
	MigrationBackupSuffix = ".backup"
)

// Limit constants define default capacities
const (
	// DefaultCacheCapacity is the default number of fully decoded records
	// held resident by the record cache.
	DefaultCacheCapacity = 1000

	// IndexVersion is the schema version written into the index file. A
	// mismatch on load triggers a synchronous rebuild.
	IndexVersion = 1
)

// RootFolder is the synthetic root category. It always exists, is never
// persisted as a real directory entry requirement, and cannot be deleted,
// renamed, or moved.
const RootFolder = "Root"
