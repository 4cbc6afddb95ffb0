// Package animations provides the core data model for animation clip
// metadata: per-bone channel summaries, provenance fields, identifier
// generation, rig-type detection, and the YAML record codec.
package animations

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clipvault/clipvault/pkg/constants"
)

// FrameRange is an inclusive [lo, hi] frame interval.
type FrameRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns the range length in frames, inclusive of both endpoints.
func (r FrameRange) Duration() float64 {
	return r.End - r.Start + 1
}

// Valid reports whether the range is ordered.
func (r FrameRange) Valid() bool {
	return r.Start <= r.End
}

// Channel summarizes the keyframes of one animation channel, e.g.
// location[0] or rotation_quaternion[3].
type Channel struct {
	Name          string     `json:"name" yaml:"name"`                     // Channel name without array index
	ArrayIndex    int        `json:"array_index" yaml:"array_index"`       // Component index within the channel
	KeyframeCount int        `json:"keyframe_count" yaml:"keyframe_count"` // Number of keyframes on this channel
	FrameRange    FrameRange `json:"frame_range" yaml:"frame_range"`       // Inclusive keyed frame span
}

// Key returns the canonical channel key, "name[index]".
func (c Channel) Key() string {
	return fmt.Sprintf("%s[%d]", c.Name, c.ArrayIndex)
}

// ParseChannelKey splits a channel key like "location[0]" into name and
// array index. Bone and channel names may themselves contain brackets, so
// the split happens at the LAST '['. A key without a numeric index parses
// as the whole string with index 0.
func ParseChannelKey(key string) (name string, index int) {
	last := strings.LastIndex(key, "[")
	if last == -1 || !strings.HasSuffix(key, "]") {
		return key, 0
	}
	idx, err := strconv.Atoi(key[last+1 : len(key)-1])
	if err != nil {
		return key, 0
	}
	return key[:last], idx
}

// BoneAnimation aggregates the animated channels of a single bone. It is
// owned exclusively by one Animation.
type BoneAnimation struct {
	BoneName       string             `json:"bone_name" yaml:"bone_name"`
	Channels       map[string]Channel `json:"channels,omitempty" yaml:"channels,omitempty"` // Keyed by Channel.Key()
	TotalKeyframes int                `json:"total_keyframes" yaml:"total_keyframes"`
}

// NewBoneAnimation creates an empty bone aggregate.
func NewBoneAnimation(boneName string) *BoneAnimation {
	return &BoneAnimation{
		BoneName: boneName,
		Channels: make(map[string]Channel),
	}
}

// AddChannel records channel data for this bone and updates the keyframe total.
func (b *BoneAnimation) AddChannel(name string, arrayIndex, keyframeCount int, frameRange FrameRange) {
	if b.Channels == nil {
		b.Channels = make(map[string]Channel)
	}
	ch := Channel{
		Name:          name,
		ArrayIndex:    arrayIndex,
		KeyframeCount: keyframeCount,
		FrameRange:    frameRange,
	}
	b.Channels[ch.Key()] = ch
	b.TotalKeyframes += keyframeCount
}

// HasChannelType reports whether any channel name contains the given type
// substring (location, rotation, scale).
func (b *BoneAnimation) HasChannelType(channelType string) bool {
	for key := range b.Channels {
		if strings.Contains(key, channelType) {
			return true
		}
	}
	return false
}

// BlendRef references the paired native action file for an entry.
type BlendRef struct {
	File       string `json:"file,omitempty" yaml:"file,omitempty"`               // File name of the .blend payload
	ActionName string `json:"action_name,omitempty" yaml:"action_name,omitempty"` // Action datablock name inside the file
}

// Animation is one catalog entry: a clip's full metadata and per-bone
// channel summary. The heavy per-frame curves live in the paired binary
// payload, never here.
type Animation struct {
	// Core identity
	ID          string `json:"id" yaml:"id"` // Opaque unique identifier, immutable for the entry's lifetime
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Provenance
	ArmatureSource string `json:"armature_source,omitempty" yaml:"armature_source,omitempty"`
	Author         string `json:"author,omitempty" yaml:"author,omitempty"`
	CreatedAt      string `json:"created_at" yaml:"created_at"` // ISO-8601
	RigType        string `json:"rig_type,omitempty" yaml:"rig_type,omitempty"`

	// Search metadata
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`

	// Bone-channel summary
	FrameRange         FrameRange                `json:"frame_range" yaml:"frame_range"`
	TotalBonesAnimated int                       `json:"total_bones_animated" yaml:"total_bones_animated"`
	TotalKeyframes     int                       `json:"total_keyframes" yaml:"total_keyframes"`
	DurationFrames     float64                   `json:"duration_frames" yaml:"duration_frames"` // Derived once at construction
	Bones              map[string]*BoneAnimation `json:"bone_data,omitempty" yaml:"bone_data,omitempty"`

	// Placement and paired assets
	FolderPath  string    `json:"folder_path" yaml:"folder_path"`
	BlendRef    *BlendRef `json:"blend_ref,omitempty" yaml:"blend_ref,omitempty"`
	PreviewPath string    `json:"preview_path,omitempty" yaml:"preview_path,omitempty"` // Relative to the previews root

	// Usage and quality counters, mutated independently of structural fields
	UsageCount    int     `json:"usage_count" yaml:"usage_count"`
	QualityRating float64 `json:"quality_rating" yaml:"quality_rating"`
}

// New constructs an Animation from extraction output, computing the derived
// duration and filling defaults. The identifier is generated from the
// armature and action names plus a timestamp component.
func New(armature, action string, frameRange FrameRange, bones map[string]*BoneAnimation) *Animation {
	now := time.Now()

	total := 0
	for _, bone := range bones {
		total += bone.TotalKeyframes
	}

	a := &Animation{
		ID:                 NewID(armature, action, now),
		Name:               action,
		Description:        fmt.Sprintf("Extracted from %s", armature),
		ArmatureSource:     armature,
		CreatedAt:          now.Format(time.RFC3339),
		FrameRange:         frameRange,
		TotalBonesAnimated: len(bones),
		TotalKeyframes:     total,
		DurationFrames:     frameRange.Duration(),
		Bones:              bones,
		FolderPath:         constants.RootFolder,
		Category:           DefaultCategory,
	}
	a.RigType = DetectRigType(armature, a.BoneNames())
	a.Tags = GenerateTags(a)
	return a
}

// BoneNames returns the names of all animated bones.
func (a *Animation) BoneNames() []string {
	names := make([]string, 0, len(a.Bones))
	for name := range a.Bones {
		names = append(names, name)
	}
	return names
}

// Validate checks the structural invariants of the entry.
func (a *Animation) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("animation has empty id")
	}
	if !a.FrameRange.Valid() {
		return fmt.Errorf("animation %s: frame range start %v exceeds end %v", a.ID, a.FrameRange.Start, a.FrameRange.End)
	}
	for boneName, bone := range a.Bones {
		for key, ch := range bone.Channels {
			if ch.KeyframeCount < 0 {
				return fmt.Errorf("animation %s: bone %s channel %s has negative keyframe count", a.ID, boneName, key)
			}
			if !ch.FrameRange.Valid() {
				return fmt.Errorf("animation %s: bone %s channel %s has inverted frame range", a.ID, boneName, key)
			}
		}
	}
	return nil
}

// ApplyDefaults fills optional fields left empty by older record files.
func (a *Animation) ApplyDefaults() {
	if a.FolderPath == "" {
		a.FolderPath = constants.RootFolder
	}
	if a.Category == "" {
		a.Category = DefaultCategory
	}
	if a.RigType == "" {
		a.RigType = RigTypeUnknown
	}
	if a.DurationFrames == 0 && a.FrameRange.Valid() {
		a.DurationFrames = a.FrameRange.Duration()
	}
	if a.CreatedAt == "" {
		a.CreatedAt = time.Now().Format(time.RFC3339)
	}
}

// DefaultCategory is assigned to entries produced by extraction.
const DefaultCategory = "extracted"
