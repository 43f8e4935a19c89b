package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates name under dir with the given contents and returns its
// path.
func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func sourceNames(srcs []source) []string {
	names := make([]string, len(srcs))
	for i, s := range srcs {
		names[i] = s.name
	}

	return names
}

func TestReadSources_SkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.exp", "first")
	b := writeFile(t, dir, "b.exp", "second")

	link := filepath.Join(dir, "link.exp")
	require.NoError(t, os.Symlink(a, link))

	srcs, err := readSources(context.Background(), []string{a, link, b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, sourceNames(srcs))
	assert.Equal(t, "first", srcs[0].text)
	assert.Equal(t, "second", srcs[1].text)
}

func TestReadSources_StdinLast(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.exp", "file")

	ctx := WithStreams(context.Background(), strings.NewReader("piped"), nil, nil)

	srcs, err := readSources(ctx, []string{stdinSource, a, stdinSource})
	require.NoError(t, err)
	assert.Equal(t, []string{a, "<stdin>"}, sourceNames(srcs))
	assert.Equal(t, "piped", srcs[1].text)
}

func TestReadSources_Missing(t *testing.T) {
	_, err := readSources(context.Background(),
		[]string{filepath.Join(t.TempDir(), "missing.exp")})
	require.ErrorIs(t, err, ErrReadSource)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, 1, concurrencyFrom(ctx))
	assert.Equal(t, 4, concurrencyFrom(WithConcurrency(ctx, 4)))
	assert.Nil(t, kongContextFrom(ctx))

	s := streamsFrom(ctx)
	assert.Equal(t, os.Stdin, s.in)
	assert.Equal(t, os.Stdout, s.out)
	assert.Equal(t, os.Stderr, s.err)

	var out strings.Builder

	s = streamsFrom(WithStreams(ctx, nil, &out, nil))
	assert.Equal(t, os.Stdin, s.in)
	assert.Equal(t, &out, s.out)
	assert.Equal(t, os.Stderr, s.err)
}

func TestError(t *testing.T) {
	err := ErrWriteOutput.Wrap(os.ErrClosed)

	assert.Equal(t, "write output: "+os.ErrClosed.Error(), err.Error())
	assert.ErrorIs(t, err, ErrWriteOutput)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.NotErrorIs(t, err, ErrReadSource)

	withAttr := ErrCheck.With()
	assert.ErrorIs(t, withAttr, ErrCheck)
	assert.Equal(t, "check failed", withAttr.Error())
}
