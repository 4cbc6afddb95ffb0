package animations

import (
	"fmt"
	"strings"
	"time"
)

// idSanitizer maps characters that appear in Blender datablock names but
// are awkward in file names.
var idSanitizer = strings.NewReplacer("|", "_", " ", "_", "/", "_", "\\", "_")

// NewID derives a catalog identifier from the source armature and action
// names plus a timestamp component that keeps ids distinct across repeated
// extractions of the same action.
func NewID(armature, action string, now time.Time) string {
	return idSanitizer.Replace(fmt.Sprintf("%s_%s_%d", armature, action, now.UnixNano()))
}
