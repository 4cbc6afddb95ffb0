package animations

import "strings"

// Bone-name sets and keywords used to infer what part of the body a clip
// animates.
var (
	locomotionBones = map[string]struct{}{
		"thigh_fk.L": {}, "thigh_fk.R": {}, "shin_fk.L": {}, "shin_fk.R": {},
		"foot_fk.L": {}, "foot_fk.R": {}, "thigh_ik.L": {}, "thigh_ik.R": {},
		"foot_ik.L": {}, "foot_ik.R": {}, "toe_fk.L": {}, "toe_fk.R": {},
	}

	upperBodyBones = map[string]struct{}{
		"upper_arm_fk.L": {}, "upper_arm_fk.R": {}, "forearm_fk.L": {}, "forearm_fk.R": {},
		"hand_fk.L": {}, "hand_fk.R": {}, "upper_arm_ik.L": {}, "upper_arm_ik.R": {},
		"shoulder.L": {}, "shoulder.R": {},
	}

	facialKeywords = []string{"jaw", "eyes", "brow", "lip", "cheek", "nose", "ear", "tongue", "teeth"}
	fingerKeywords = []string{"thumb", "f_index", "f_middle", "f_ring", "f_pinky"}
	spineKeywords  = []string{"spine", "torso", "chest", "neck", "head"}
)

// GenerateTags derives search tags from a clip's bone set, duration, and
// keyframe density. Returns at least one tag.
func GenerateTags(a *Animation) []string {
	var tags []string

	hitLocomotion := false
	hitUpperBody := false
	for bone := range a.Bones {
		if _, ok := locomotionBones[bone]; ok {
			hitLocomotion = true
		}
		if _, ok := upperBodyBones[bone]; ok {
			hitUpperBody = true
		}
	}
	if hitLocomotion {
		tags = append(tags, "locomotion")
	}
	if hitUpperBody {
		tags = append(tags, "upper_body")
	}

	boneStr := strings.ToLower(strings.Join(a.BoneNames(), " "))
	if containsAny(boneStr, facialKeywords) {
		tags = append(tags, "facial")
	}
	if containsAny(boneStr, fingerKeywords) {
		tags = append(tags, "hands")
	}
	if containsAny(boneStr, spineKeywords) {
		tags = append(tags, "spine")
	}

	duration := a.FrameRange.Duration()
	switch {
	case duration < 10:
		tags = append(tags, "short")
	case duration > 100:
		tags = append(tags, "long")
	default:
		tags = append(tags, "medium")
	}

	if duration < 1 {
		duration = 1
	}
	density := float64(a.TotalKeyframes) / duration
	switch {
	case density > 20:
		tags = append(tags, "dense")
	case density < 5:
		tags = append(tags, "sparse")
	default:
		tags = append(tags, "moderate")
	}

	for _, channelType := range []string{"location", "rotation", "scale"} {
		for _, bone := range a.Bones {
			if bone.HasChannelType(channelType) {
				switch channelType {
				case "location":
					tags = append(tags, "translation")
				default:
					tags = append(tags, channelType)
				}
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{"uncategorized"}
	}
	return tags
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
