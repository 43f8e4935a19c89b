package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/espr/lang"
)

func runParse(t *testing.T, p Parse, stdin string) (out, errOut string, err error) {
	t.Helper()

	var o, e strings.Builder

	ctx := WithStreams(context.Background(), strings.NewReader(stdin), &o, &e)
	if p.MaxDepth == 0 {
		p.MaxDepth = lang.DefaultMaxDepth
	}

	err = p.Run(ctx)

	return o.String(), e.String(), err
}

func TestParse_Run(t *testing.T) {
	tests := []struct {
		name       string
		production string
		text       string
		stdin      string
		want       string
	}{
		{
			name:       "left fold with residual",
			production: "simple-expression",
			text:       "1 - 2 + 3 ;",
			want:       "value:    (1 - 2) + 3\nresidual: \";\"\n",
		},
		{
			name:       "remarks",
			production: "expression",
			text:       "a.x ** 2 + 1 (* offset *)",
			want:       "value:    a.x ** 2 + 1\nremark:   (* offset *)\n",
		},
		{
			name:       "integer",
			production: "integer",
			text:       "0042",
			want:       "value:    42\n",
		},
		{
			name:       "string",
			production: "string",
			text:       "'it''s'",
			want:       "value:    'it''s'\n",
		},
		{
			name:       "stdin",
			production: "logical",
			text:       "-",
			stdin:      "UNKNOWN",
			want:       "value:    UNKNOWN\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := runParse(t,
				Parse{Production: tt.production, Text: tt.text}, tt.stdin)
			require.NoError(t, err)
			assert.Empty(t, errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParse_RunError(t *testing.T) {
	out, errOut, err := runParse(t, Parse{Production: "integer", Text: "abc"}, "")
	require.ErrorIs(t, err, ErrParse)
	require.ErrorIs(t, err, lang.ErrSyntax)
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(errOut, "<arg>:1:1: error: "), errOut)
}

func TestParse_MaxDepth(t *testing.T) {
	text := strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)

	_, _, err := runParse(t, Parse{Production: "expression", Text: text, MaxDepth: 5}, "")
	require.ErrorIs(t, err, lang.ErrMaxDepthExceeded)

	_, _, err = runParse(t, Parse{Production: "expression", Text: text}, "")
	require.NoError(t, err)
}

func TestParse_UnknownProduction(t *testing.T) {
	_, _, err := runParse(t, Parse{Production: "statement", Text: "x"}, "")
	require.ErrorIs(t, err, ErrParse)
}
