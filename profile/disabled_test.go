//go:build !pprof

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_DisabledBuild(t *testing.T) {
	assert.Empty(t, Modes())

	s := Profiler{Mode: "cpu", Path: t.TempDir()}.Start()
	assert.Equal(t, ignore{}, s)
	s.Stop()
}
