package animations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRigType(t *testing.T) {
	tests := []struct {
		name     string
		armature string
		bones    []string
		want     string
	}{
		{
			name:     "rigify by armature name",
			armature: "RigifyHero",
			bones:    nil,
			want:     RigTypeRigify,
		},
		{
			name:     "auto-rig by armature name",
			armature: "hero_autorig",
			bones:    nil,
			want:     RigTypeAutoRig,
		},
		{
			name:     "mixamo by armature name",
			armature: "Mixamo_Soldier",
			bones:    nil,
			want:     RigTypeMixamo,
		},
		{
			name:     "mixamo by single bone",
			armature: "Armature",
			bones:    []string{"mixamorig:Hips", "mixamorig:Spine"},
			want:     RigTypeMixamo,
		},
		{
			name:     "rigify needs several pattern hits",
			armature: "Armature",
			bones:    []string{"thigh_fk.L", "thigh_ik.L", "DEF-spine", "ORG-hand.L"},
			want:     RigTypeRigify,
		},
		{
			name:     "two rigify bones not enough",
			armature: "Armature",
			bones:    []string{"thigh_fk.L", "shin_fk.L"},
			want:     RigTypeUnknown,
		},
		{
			name:     "auto-rig by bones",
			armature: "Armature",
			bones:    []string{"c_spine_01", "c_root_master"},
			want:     RigTypeAutoRig,
		},
		{
			name:     "plain skeleton",
			armature: "Skeleton",
			bones:    []string{"hips", "spine", "head"},
			want:     RigTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRigType(tt.armature, tt.bones))
		})
	}
}

func TestRigsCompatible(t *testing.T) {
	assert.True(t, RigsCompatible(RigTypeRigify, RigTypeRigify))
	assert.False(t, RigsCompatible(RigTypeRigify, RigTypeMixamo))
	assert.True(t, RigsCompatible(RigTypeUnknown, RigTypeMixamo))
	assert.True(t, RigsCompatible(RigTypeRigify, RigTypeUnknown))
}
