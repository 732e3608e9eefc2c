package prefabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefabsDecode(t *testing.T) {
	cases := []struct {
		file       string
		components []string
	}{
		{"character.yaml", []string{"character_tag", "physics_body", "mount_points", "health", "target"}},
		{"upper_body.yaml", []string{"upper_body_tag", "physics_body", "target"}},
		{"sword.yaml", []string{"physics_body", "weapon"}},
		{"greatsword.yaml", []string{"weapon", "weapon_trace"}},
		{"crate.yaml", []string{"physics_body", "target"}},
		{"switch_orb.yaml", []string{"physics_body", "switch_orb"}},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(c.file)
			require.NoError(t, err)
			for _, name := range c.components {
				assert.Contains(t, spec.Components, name)
			}
		})
	}
}

func TestDecodeCharacterLimbs(t *testing.T) {
	spec, err := LoadEntityBuildSpec("character.yaml")
	require.NoError(t, err)

	body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](spec.Components["physics_body"])
	require.NoError(t, err)
	bones := make([]string, 0, len(body.Limbs))
	for _, l := range body.Limbs {
		bones = append(bones, l.Bone)
	}
	assert.Subset(t, bones, []string{"spine_01", "head", "hand_r", "hand_l", "lowerarm_r", "lowerarm_l"})

	mounts, err := DecodeComponentSpec[MountPointsComponentSpec](spec.Components["mount_points"])
	require.NoError(t, err)
	assert.Contains(t, mounts.Sockets, "head_mount")
}

func TestDecodeWeapon(t *testing.T) {
	spec, err := LoadEntityBuildSpec("mace.yaml")
	require.NoError(t, err)
	w, err := DecodeComponentSpec[WeaponComponentSpec](spec.Components["weapon"])
	require.NoError(t, err)
	assert.Equal(t, "blunt", w.Category)
	assert.Equal(t, 12.0, w.MassKg)
}

func TestDecodeNil(t *testing.T) {
	out, err := DecodeComponentSpec[HealthComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, out)
}
