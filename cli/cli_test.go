package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/espr/cli/cmd"
	"github.com/ardnew/espr/log"
)

func TestRun(t *testing.T) {
	defer log.SetDefault(log.Default())

	// The user directories are resolved once per process.
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	dir := t.TempDir()
	good := filepath.Join(dir, "good.exp")
	bad := filepath.Join(dir, "bad.exp")

	require.NoError(t, os.WriteFile(good,
		[]byte("SCHEMA s; ENTITY e; next : e; END_ENTITY; END_SCHEMA;"), 0o600))
	require.NoError(t, os.WriteFile(bad,
		[]byte("SCHEMA s; ENTITY e; next : f; END_ENTITY; END_SCHEMA;"), 0o600))

	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	err := Run(context.Background(), exit,
		"--log-level=error", "--concurrency=2", "check", good)
	require.NoError(t, err)

	err = Run(context.Background(), exit, "--log-level=error", "check", good, bad)
	require.ErrorIs(t, err, cmd.ErrCheck)

	assert.DirExists(t, configDir())
	assert.DirExists(t, cacheDir())
}
