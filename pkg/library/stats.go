package library

import (
	"sort"

	"github.com/clipvault/clipvault/pkg/constants"
)

// Statistics summarizes the catalog at a point in time.
type Statistics struct {
	TotalEntries    int            `json:"total_entries" yaml:"total_entries"`
	TotalFolders    int            `json:"total_folders" yaml:"total_folders"`
	EntriesByFolder map[string]int `json:"entries_by_folder" yaml:"entries_by_folder"`
	TotalKeyframes  int            `json:"total_keyframes" yaml:"total_keyframes"`
	AverageDuration float64        `json:"average_duration_frames" yaml:"average_duration_frames"`
	Tags            []string       `json:"tags" yaml:"tags"`
	RigTypes        []string       `json:"rig_types" yaml:"rig_types"`
	SkippedRecords  int            `json:"skipped_records,omitempty" yaml:"skipped_records,omitempty"`

	// DiskUsageBytes is only populated when the size scan is requested;
	// it walks every asset file and is the one expensive part.
	DiskUsageBytes int64 `json:"disk_usage_bytes,omitempty" yaml:"disk_usage_bytes,omitempty"`
}

// Stats computes catalog statistics. Folder counts come from the
// incrementally maintained tallies; keyframe and duration aggregates
// load each record through the cache. With includeDisk set, the asset
// trees are walked to total binary file sizes.
func (c *Catalog) Stats(includeDisk bool) (*Statistics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := &Statistics{
		TotalEntries:    c.index.len(),
		TotalFolders:    len(c.folders),
		EntriesByFolder: make(map[string]int, len(c.folders)),
	}
	stats.EntriesByFolder[constants.RootFolder] = c.counts[constants.RootFolder]
	for folder := range c.folders {
		stats.EntriesByFolder[folder] = c.counts[folder]
	}

	entries, skipped, err := c.listLocked(c.index.allIDs())
	if err != nil {
		return nil, err
	}
	stats.SkippedRecords = len(skipped)

	tags := make(map[string]struct{})
	rigs := make(map[string]struct{})
	var totalDuration float64
	for _, anim := range entries {
		stats.TotalKeyframes += anim.TotalKeyframes
		totalDuration += anim.DurationFrames
		for _, tag := range anim.Tags {
			tags[tag] = struct{}{}
		}
		if anim.RigType != "" {
			rigs[anim.RigType] = struct{}{}
		}
	}
	if len(entries) > 0 {
		stats.AverageDuration = totalDuration / float64(len(entries))
	}

	stats.Tags = sortedKeys(tags)
	stats.RigTypes = sortedKeys(rigs)

	if includeDisk {
		size, err := c.assets.DiskUsage()
		if err != nil {
			return nil, err
		}
		stats.DiskUsageBytes = size
	}
	return stats, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
