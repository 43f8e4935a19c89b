package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	require.NoError(t, err)

	return v
}

func TestResolve_NestedKeys(t *testing.T) {
	r, err := resolve(strings.NewReader(`
log:
  level: debug
  pretty: false
concurrency: 4
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", resolveFlag(t, r, "log-level"))
	assert.Equal(t, false, resolveFlag(t, r, "log-pretty"))
	assert.Equal(t, "4", resolveFlag(t, r, "concurrency"))
	assert.Nil(t, resolveFlag(t, r, "log-format"))
	assert.Nil(t, resolveFlag(t, r, "log"))
}

func TestResolve_UnderscoreKeys(t *testing.T) {
	r, err := resolve(strings.NewReader("log_time_layout: Kitchen\nlog-format: text\n"))
	require.NoError(t, err)

	assert.Equal(t, "Kitchen", resolveFlag(t, r, "log-time-layout"))
	assert.Equal(t, "text", resolveFlag(t, r, "log-format"))
	assert.Equal(t, "text", resolveFlag(t, r, "log_format"))
}

func TestResolve_Invalid(t *testing.T) {
	for name, input := range map[string]string{
		"empty":     "",
		"malformed": "log: [unterminated",
		"scalar":    "just a string",
	} {
		t.Run(name, func(t *testing.T) {
			r, err := resolve(strings.NewReader(input))
			require.NoError(t, err)
			assert.Nil(t, resolveFlag(t, r, "log-level"))
			assert.NoError(t, r.Validate(nil))
		})
	}
}

func TestScalar(t *testing.T) {
	assert.Equal(t, "3", scalar(int64(3)))
	assert.Equal(t, "7", scalar(uint64(7)))
	assert.Equal(t, "1.5", scalar(1.5))
	assert.Equal(t, []any{"1", "x"}, scalar([]any{uint64(1), "x"}))
	assert.Equal(t, true, scalar(true))
}
