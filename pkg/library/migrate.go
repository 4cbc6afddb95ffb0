package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/clipvault/clipvault/pkg/animations"
	"github.com/clipvault/clipvault/pkg/constants"
	"github.com/clipvault/clipvault/pkg/errors"
)

// legacyLibrary mirrors the monolithic metadata file written by library
// format 3.x: one JSON document holding every record. JSON is a subset
// of YAML, so the same decoder handles it.
type legacyLibrary struct {
	Metadata   map[string]interface{}   `yaml:"metadata"`
	Animations map[string]*legacyRecord `yaml:"animations"`
}

type legacyRecord struct {
	ID                 string                 `yaml:"id"`
	Name               string                 `yaml:"name"`
	Description        string                 `yaml:"description"`
	ArmatureSource     string                 `yaml:"armature_source"`
	FrameRange         []float64              `yaml:"frame_range"`
	TotalBonesAnimated int                    `yaml:"total_bones_animated"`
	TotalKeyframes     int                    `yaml:"total_keyframes"`
	BoneData           map[string]*legacyBone `yaml:"bone_data"`
	CreatedDate        string                 `yaml:"created_date"`
	RigType            string                 `yaml:"rig_type"`
	Tags               []string               `yaml:"tags"`
	Category           string                 `yaml:"category"`
	DurationFrames     float64                `yaml:"duration_frames"`
	Author             string                 `yaml:"author"`
	QualityRating      float64                `yaml:"quality_rating"`
	UsageCount         int                    `yaml:"usage_count"`
	FolderPath         string                 `yaml:"folder_path"`
	BlendFile          string                 `yaml:"blend_file"`
	ActionName         string                 `yaml:"action_name"`
	PreviewPath        string                 `yaml:"preview_path"`
}

// legacyBone carries only channel keys and a per-bone total; the legacy
// format never stored per-channel counts or ranges.
type legacyBone struct {
	Channels      []string `yaml:"channels"`
	KeyframeCount int      `yaml:"keyframe_count"`
}

// migrateIfNeeded converts a legacy monolithic metadata file into
// per-record files. It runs only when the legacy file is present and no
// record files exist yet. On success the legacy file is renamed with a
// backup suffix; on any failure the records written so far are removed
// and the legacy file is left untouched, so the migration can retry
// from scratch.
func (c *Catalog) migrateIfNeeded() error {
	legacyPath := filepath.Join(c.root, constants.LegacyMetadataFile)
	if _, err := os.Stat(legacyPath); os.IsNotExist(err) {
		return nil
	}

	existing, err := c.records.count()
	if err != nil {
		return err
	}
	if existing > 0 {
		return errors.NewMigrationError("precheck",
			fmt.Sprintf("legacy file %s coexists with %d record files; restore one format and retry", legacyPath, existing), nil)
	}

	data, err := os.ReadFile(legacyPath)
	if err != nil {
		return errors.NewMigrationError("read", err.Error(), err)
	}

	var legacy legacyLibrary
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return errors.NewMigrationError("decode", err.Error(), err)
	}

	// Deterministic order makes partial-failure logs reproducible.
	ids := make([]string, 0, len(legacy.Animations))
	for id := range legacy.Animations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var written []string
	fail := func(stage string, err error) error {
		for _, id := range written {
			if delErr := c.records.delete(id); delErr != nil {
				c.log.Warn().Str("id", id).Err(delErr).Msg("failed to clean up record after aborted migration")
			}
		}
		return errors.NewMigrationError(stage, err.Error(), err)
	}

	converted := 0
	for _, id := range ids {
		record := legacy.Animations[id]
		anim, convErr := record.toAnimation(id)
		if convErr != nil {
			c.log.Warn().Str("id", id).Err(convErr).Msg("skipping invalid legacy record")
			continue
		}
		if err := c.records.write(anim); err != nil {
			return fail("write", err)
		}
		written = append(written, anim.ID)
		converted++
	}

	onDisk, err := c.records.count()
	if err != nil {
		return fail("verify", err)
	}
	if onDisk != converted {
		return fail("verify", fmt.Errorf("wrote %d records but found %d on disk", converted, onDisk))
	}

	backup := legacyPath + constants.MigrationBackupSuffix
	if err := os.Rename(legacyPath, backup); err != nil {
		return fail("rename", err)
	}

	c.log.Info().
		Int("migrated", converted).
		Int("skipped", len(legacy.Animations)-converted).
		Str("backup", backup).
		Msg("legacy library migrated to per-record files")
	return nil
}

// toAnimation converts a legacy record to the current schema. The legacy
// bone data lost per-channel keyframe counts, so the bone total is
// distributed evenly across its channels with the remainder on the
// first.
func (lr *legacyRecord) toAnimation(fallbackID string) (*animations.Animation, error) {
	id := lr.ID
	if id == "" {
		id = fallbackID
	}

	var frameRange animations.FrameRange
	if len(lr.FrameRange) == 2 {
		frameRange = animations.FrameRange{Start: lr.FrameRange[0], End: lr.FrameRange[1]}
	}

	bones := make(map[string]*animations.BoneAnimation, len(lr.BoneData))
	for boneName, lb := range lr.BoneData {
		bone := animations.NewBoneAnimation(boneName)
		n := len(lb.Channels)
		for i, key := range lb.Channels {
			name, index := animations.ParseChannelKey(key)
			count := 0
			if n > 0 {
				count = lb.KeyframeCount / n
				if i == 0 {
					count += lb.KeyframeCount % n
				}
			}
			bone.AddChannel(name, index, count, frameRange)
		}
		bones[boneName] = bone
	}

	anim := &animations.Animation{
		ID:                 id,
		Name:               lr.Name,
		Description:        lr.Description,
		ArmatureSource:     lr.ArmatureSource,
		Author:             lr.Author,
		CreatedAt:          lr.CreatedDate,
		RigType:            lr.RigType,
		Tags:               lr.Tags,
		Category:           lr.Category,
		FrameRange:         frameRange,
		TotalBonesAnimated: len(bones),
		TotalKeyframes:     lr.TotalKeyframes,
		DurationFrames:     lr.DurationFrames,
		Bones:              bones,
		FolderPath:         lr.FolderPath,
		PreviewPath:        lr.PreviewPath,
		UsageCount:         lr.UsageCount,
		QualityRating:      lr.QualityRating,
	}
	if lr.BlendFile != "" {
		anim.BlendRef = &animations.BlendRef{File: lr.BlendFile, ActionName: lr.ActionName}
	}
	anim.ApplyDefaults()

	if err := anim.Validate(); err != nil {
		return nil, err
	}
	return anim, nil
}
