package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/espr/lang"
)

func TestDiagnose_TypeNotFound(t *testing.T) {
	src := source{
		name: "f.exp",
		text: "SCHEMA s;\n  ENTITY e; a : pnt; END_ENTITY;\nEND_SCHEMA;\n",
	}

	_, err := compile(context.Background(), src)
	require.Error(t, err)

	var out strings.Builder
	newPalette(&out).diagnose(&out, src, err)

	assert.Equal(t,
		"f.exp:2:17: error: type \"pnt\" not found in scope s.e\n"+
			"  2 |   ENTITY e; a : pnt; END_ENTITY;\n"+
			strings.Repeat(" ", 22)+"^\n",
		out.String())
}

func TestDiagnose_SyntaxError(t *testing.T) {
	src := source{name: "x", text: "1 + )"}
	err := &lang.SyntaxError{
		Offset:     4,
		Production: "primary",
		Expected:   []string{"literal"},
		Found:      ")",
	}

	var out strings.Builder
	newPalette(&out).diagnose(&out, src, err)

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `x:1:5: error: syntax error at offset 4 in primary: expected literal, found ")"`, lines[0])
	assert.Equal(t, "  1 | 1 + )", lines[1])
	assert.Equal(t, "          ^", lines[2])
}

func TestDiagnose_WithoutOffset(t *testing.T) {
	var out strings.Builder
	newPalette(&out).diagnose(&out, source{name: "y"}, context.Canceled)

	assert.Equal(t, "y: error: context canceled\n", out.String())
}
