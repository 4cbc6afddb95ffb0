package animations

import "strings"

// Rig type classifications recognized by the library.
const (
	RigTypeRigify  = "Rigify"
	RigTypeAutoRig = "Auto-Rig Pro"
	RigTypeMixamo  = "Mixamo"
	RigTypeUnknown = "Unknown"
)

var rigifyBonePatterns = []string{"_fk.", "_ik.", "mch-", "def-", "org-"}
var autoRigBonePatterns = []string{"c_spine", "c_root", "_fk_", "_ik_"}

// DetectRigType classifies a rig from its armature name and bone naming
// patterns. The armature name is checked first as the more reliable signal.
func DetectRigType(armatureName string, boneNames []string) string {
	armatureLower := strings.ToLower(armatureName)

	switch {
	case strings.Contains(armatureLower, "rigify"):
		return RigTypeRigify
	case strings.Contains(armatureLower, "autorig"),
		strings.Contains(armatureLower, "auto_rig"),
		strings.Contains(armatureLower, "auto-rig"):
		return RigTypeAutoRig
	case strings.Contains(armatureLower, "mixamo"):
		return RigTypeMixamo
	}

	var rigify, mixamo, autoRig int
	for _, bone := range boneNames {
		lower := strings.ToLower(bone)
		if strings.Contains(lower, "mixamorig:") {
			mixamo++
		}
		for _, pattern := range rigifyBonePatterns {
			if strings.Contains(lower, pattern) {
				rigify++
				break
			}
		}
		for _, pattern := range autoRigBonePatterns {
			if strings.Contains(lower, pattern) {
				autoRig++
				break
			}
		}
	}

	// A single mixamorig bone is conclusive; the generic fk/ik patterns
	// need several hits before the classification is trusted.
	switch {
	case mixamo > 0:
		return RigTypeMixamo
	case rigify >= 3:
		return RigTypeRigify
	case autoRig >= 2:
		return RigTypeAutoRig
	}
	return RigTypeUnknown
}

// RigsCompatible reports whether a clip authored on one rig type can be
// applied to another. Unknown rigs are allowed through so the user can
// decide.
func RigsCompatible(a, b string) bool {
	if a == RigTypeUnknown || b == RigTypeUnknown {
		return true
	}
	return a == b
}
