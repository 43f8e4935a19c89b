package profile

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_StartWithoutMode(t *testing.T) {
	s := Profiler{Path: t.TempDir()}.Start()
	assert.Equal(t, ignore{}, s)
	assert.NotPanics(t, s.Stop)
}

func TestModes_Sorted(t *testing.T) {
	assert.True(t, slices.IsSorted(Modes()))
}
