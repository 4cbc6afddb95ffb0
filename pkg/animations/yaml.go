package animations

import (
	"github.com/goccy/go-yaml"

	"github.com/clipvault/clipvault/pkg/errors"
)

// Encode serializes one catalog entry to its self-contained YAML record
// form. The round trip through Decode is lossless for every field.
func Encode(a *Animation) ([]byte, error) {
	if a == nil {
		return nil, errors.NewValidationError("animation", nil, "cannot encode nil animation")
	}
	data, err := yaml.Marshal(a)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return data, nil
}

// Decode deserializes a YAML record into an Animation. Missing optional
// fields default rather than fail, so records written by older versions
// keep loading. Structurally invalid payloads fail with a ParseError.
func Decode(data []byte) (*Animation, error) {
	var a Animation
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, &errors.ParseError{Format: "yaml", Message: err.Error(), Err: err}
	}

	a.ApplyDefaults()

	if err := a.Validate(); err != nil {
		return nil, &errors.ParseError{Format: "yaml", ID: a.ID, Message: err.Error(), Err: err}
	}

	// Bone aggregates decoded from older files may predate the per-bone
	// keyframe total; recompute when absent.
	for name, bone := range a.Bones {
		if bone.BoneName == "" {
			bone.BoneName = name
		}
		if bone.TotalKeyframes == 0 {
			for _, ch := range bone.Channels {
				bone.TotalKeyframes += ch.KeyframeCount
			}
		}
	}

	return &a, nil
}
