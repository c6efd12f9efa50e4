package smp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algmatch/preference"
)

// TestRegistry_OverlappingRoles feeds one role twice so every key collides.
func TestRegistry_OverlappingRoles(t *testing.T) {
	inst, err := preference.BuildSM(preference.SMDictionary{
		Men:   []preference.Entry{{ID: "m1", Prefs: []string{"w1"}}},
		Women: []preference.Entry{{ID: "w1", Prefs: []string{"m1"}}},
	})
	require.NoError(t, err)

	_, err = registry(inst.Men(), inst.Men())
	require.ErrorIs(t, err, ErrOverlappingRoles)

	lists, err := registry(inst.Men(), inst.Women())
	require.NoError(t, err)
	require.Equal(t, Lists{"m1": {"w1"}, "w1": {"m1"}}, lists)
}
