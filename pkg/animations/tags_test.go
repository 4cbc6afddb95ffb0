package animations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tagAnimation(frameRange FrameRange, totalKeyframes int, bones ...string) *Animation {
	boneMap := make(map[string]*BoneAnimation, len(bones))
	for _, name := range bones {
		boneMap[name] = NewBoneAnimation(name)
	}
	return &Animation{
		ID:             "t",
		FrameRange:     frameRange,
		TotalKeyframes: totalKeyframes,
		Bones:          boneMap,
	}
}

func TestGenerateTags(t *testing.T) {
	t.Run("locomotion clip", func(t *testing.T) {
		a := tagAnimation(FrameRange{Start: 1, End: 32}, 100, "thigh_fk.L", "foot_fk.R")
		tags := GenerateTags(a)
		assert.Contains(t, tags, "locomotion")
		assert.Contains(t, tags, "medium")
	})

	t.Run("upper body and hands", func(t *testing.T) {
		a := tagAnimation(FrameRange{Start: 1, End: 8}, 10, "hand_fk.L", "f_index.01.L")
		tags := GenerateTags(a)
		assert.Contains(t, tags, "upper_body")
		assert.Contains(t, tags, "hands")
		assert.Contains(t, tags, "short")
	})

	t.Run("facial clip", func(t *testing.T) {
		a := tagAnimation(FrameRange{Start: 1, End: 150}, 200, "jaw_master", "brow.T.L")
		tags := GenerateTags(a)
		assert.Contains(t, tags, "facial")
		assert.Contains(t, tags, "long")
	})

	t.Run("density tags", func(t *testing.T) {
		dense := tagAnimation(FrameRange{Start: 1, End: 10}, 300)
		assert.Contains(t, GenerateTags(dense), "dense")

		sparse := tagAnimation(FrameRange{Start: 1, End: 100}, 10)
		assert.Contains(t, GenerateTags(sparse), "sparse")
	})

	t.Run("channel type tags", func(t *testing.T) {
		a := tagAnimation(FrameRange{Start: 1, End: 20}, 40, "spine")
		a.Bones["spine"].AddChannel("location", 0, 20, a.FrameRange)
		a.Bones["spine"].AddChannel("scale", 0, 20, a.FrameRange)

		tags := GenerateTags(a)
		assert.Contains(t, tags, "translation")
		assert.Contains(t, tags, "scale")
		assert.NotContains(t, tags, "rotation")
	})

	t.Run("always at least one tag", func(t *testing.T) {
		a := tagAnimation(FrameRange{Start: 1, End: 20}, 100)
		assert.NotEmpty(t, GenerateTags(a))
	})
}
