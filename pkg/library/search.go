package library

import (
	"strings"

	"github.com/clipvault/clipvault/pkg/animations"
)

// Filter narrows a search to entries matching every set field.
type Filter struct {
	Query    string   // Case-insensitive substring over name, description, and tags
	Tags     []string // Entry must carry every listed tag
	RigType  string
	Category string
	Folder   string // Exact folder match
}

// Search returns the entries matching the filter, in index order.
// Unreadable records are skipped the same way listing skips them.
func (c *Catalog) Search(filter Filter) ([]*animations.Animation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, _, err := c.listLocked(c.index.allIDs())
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(filter.Query)
	var matched []*animations.Animation
	for _, anim := range entries {
		if query != "" && !matchesQuery(anim, query) {
			continue
		}
		if !hasAllTags(anim, filter.Tags) {
			continue
		}
		if filter.RigType != "" && anim.RigType != filter.RigType {
			continue
		}
		if filter.Category != "" && anim.Category != filter.Category {
			continue
		}
		if filter.Folder != "" && anim.FolderPath != filter.Folder {
			continue
		}
		matched = append(matched, anim)
	}
	return matched, nil
}

func matchesQuery(anim *animations.Animation, query string) bool {
	if strings.Contains(strings.ToLower(anim.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(anim.Description), query) {
		return true
	}
	for _, tag := range anim.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func hasAllTags(anim *animations.Animation, tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range anim.Tags {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
