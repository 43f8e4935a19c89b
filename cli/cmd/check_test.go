package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goodSchema = `
SCHEMA shapes;
  TYPE measure = REAL; END_TYPE;
  ENTITY circle; radius : measure; END_ENTITY;
END_SCHEMA;`

	otherSchema = `
SCHEMA styles;
  TYPE colour = ENUMERATION OF (red, green); END_TYPE;
END_SCHEMA;`

	badSchema = `
SCHEMA broken;
  ENTITY e; a : missing; END_ENTITY;
END_SCHEMA;`
)

func TestCheck_Run(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.exp", goodSchema)

	var out, errOut strings.Builder

	ctx := WithStreams(context.Background(), nil, &out, &errOut)

	require.NoError(t, (&Check{Files: []string{good}}).Run(ctx))
	assert.Equal(t,
		good+": ok (1 schemas, 1 types, 1 entities, 0 functions)\n",
		out.String())
	assert.Empty(t, errOut.String())
}

func TestCheck_RunReportsEveryFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.exp", goodSchema)
	bad := writeFile(t, dir, "bad.exp", badSchema)
	syntax := writeFile(t, dir, "syntax.exp", "SCHEMA oops END_SCHEMA;")

	var out, errOut strings.Builder

	ctx := WithStreams(context.Background(), nil, &out, &errOut)

	err := (&Check{Files: []string{bad, good, syntax}}).Run(ctx)
	require.ErrorIs(t, err, ErrCheck)

	assert.Contains(t, out.String(), good+": ok")
	assert.Contains(t, errOut.String(), bad+":3:17: error: type \"missing\" not found")
	assert.Contains(t, errOut.String(), syntax+":1:")
}

func TestCheck_RunStdin(t *testing.T) {
	var out strings.Builder

	ctx := WithStreams(context.Background(), strings.NewReader(otherSchema), &out, nil)

	require.NoError(t, (&Check{Files: []string{stdinSource}}).Run(ctx))
	assert.Equal(t, "<stdin>: ok (1 schemas, 1 types, 0 entities, 0 functions)\n", out.String())
}

func TestIR_RunJSON(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.exp", goodSchema)
	other := writeFile(t, dir, "other.exp", otherSchema)

	var out strings.Builder

	ctx := WithConcurrency(WithStreams(context.Background(), nil, &out, nil), 4)

	cmd := IR{Format: "json", Indent: 0, Files: []string{good, other}}
	require.NoError(t, cmd.Run(ctx))

	var doc struct {
		Schemas []struct {
			Name     string `json:"name"`
			Entities []struct {
				Path       string `json:"path"`
				Attributes []struct {
					Type struct {
						Ref struct {
							Path string `json:"path"`
						} `json:"ref"`
					} `json:"type"`
				} `json:"attributes"`
			} `json:"entities"`
		} `json:"schemas"`
	}

	require.NoError(t, json.Unmarshal([]byte(out.String()), &doc))
	require.Len(t, doc.Schemas, 2)
	assert.Equal(t, "shapes", doc.Schemas[0].Name)
	assert.Equal(t, "styles", doc.Schemas[1].Name)
	assert.Equal(t, "shapes.circle", doc.Schemas[0].Entities[0].Path)
	assert.Equal(t, "shapes.measure", doc.Schemas[0].Entities[0].Attributes[0].Type.Ref.Path)
}

func TestIR_RunYAML(t *testing.T) {
	dir := t.TempDir()
	other := writeFile(t, dir, "other.exp", otherSchema)

	var out strings.Builder

	ctx := WithStreams(context.Background(), nil, &out, nil)

	require.NoError(t, (&IR{Format: "yaml", Indent: 2, Files: []string{other}}).Run(ctx))
	assert.Contains(t, out.String(), "path: styles.colour")
	assert.Contains(t, out.String(), "kind: enumeration")
}

func TestIR_RunFailure(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.exp", badSchema)

	var out, errOut strings.Builder

	ctx := WithStreams(context.Background(), nil, &out, &errOut)

	err := (&IR{Format: "yaml", Indent: 2, Files: []string{bad}}).Run(ctx)
	require.ErrorIs(t, err, ErrCheck)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "missing")
}
