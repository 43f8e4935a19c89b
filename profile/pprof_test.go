//go:build pprof

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_Options(t *testing.T) {
	assert.Contains(t, Modes(), "cpu")
	assert.NotContains(t, Modes(), "quiet")

	assert.Nil(t, Profiler{Mode: "bogus"}.options())
	assert.Len(t, Profiler{Mode: "heap"}.options(), 2)
	assert.Len(t, Profiler{Mode: "heap", Path: "x", Quiet: true}.options(), 4)
}

func TestProfiler_UnknownMode(t *testing.T) {
	s := Profiler{Mode: "bogus"}.Start()
	assert.Equal(t, ignore{}, s)
}
