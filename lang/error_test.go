package lang

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsSentinel(t *testing.T) {
	cause := errors.New("disk on fire")
	err := ErrReadInput.Wrap(cause).With(slog.String("file", "a.exp"))

	require.ErrorIs(t, err, ErrReadInput)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSyntax)
	assert.Equal(t, "failed to read input: disk on fire", err.Error())
	assert.Len(t, err.Attrs(), 1)
}

func TestError_WrapError(t *testing.T) {
	base := ErrMaxDepthExceeded.With(slog.Int("limit", 3))
	assert.Same(t, base, WrapError(base))

	plain := WrapError(errors.New("plain"))
	assert.Equal(t, "plain", plain.Error())
}

func TestError_LogValue(t *testing.T) {
	err := ErrMaxDepthExceeded.With(slog.Int("limit", 3))

	v := err.LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())

	attrs := v.Group()
	require.Len(t, attrs, 2)
	assert.Equal(t, "error", attrs[0].Key)
	assert.Equal(t, "limit", attrs[1].Key)
}

func TestSyntaxError_Message(t *testing.T) {
	_, err := ParseExpression("1 + )")
	require.NoError(t, err, "dangling operator is left as residual")

	_, err = ParseSimpleFactor(")")

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t,
		`syntax error at offset 0 in primary: expected literal or identifier or (, found ")"`,
		se.Error())

	_, err = ParseSimpleFactor("")
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "found end of input")
}

func TestSyntaxError_Snippet(t *testing.T) {
	src := "SCHEMA s;\nTYPE t = ;\nEND_TYPE;"

	_, err := Parse(src)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)

	want := "syntax error at line 2, column 10:\n" +
		"  2 | TYPE t = ;\n" +
		"               ^\n"
	assert.Equal(t, want, se.Snippet(src))
}

func TestUnsupportedError_Snippet(t *testing.T) {
	src := "x + f(1)"

	_, err := ParseExpression(src)

	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t,
		"unsupported function call or entity constructor at line 1, column 5:\n"+
			"  1 | x + f(1)\n"+
			"          ^\n",
		ue.Snippet(src))
	assert.Equal(t,
		"unsupported construct at offset 4: function call or entity constructor",
		ue.Error())
}

func TestPositionOf(t *testing.T) {
	src := "ab\ncdé\nf"

	tests := []struct {
		offset int
		want   Position
	}{
		{offset: 0, want: Position{Offset: 0, Line: 1, Column: 1}},
		{offset: 3, want: Position{Offset: 3, Line: 2, Column: 1}},
		{offset: 7, want: Position{Offset: 7, Line: 2, Column: 4}},
		{offset: 8, want: Position{Offset: 8, Line: 3, Column: 1}},
		{offset: 99, want: Position{Offset: 9, Line: 3, Column: 2}},
		{offset: -1, want: Position{Offset: 0, Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PositionOf(src, tt.offset))
		})
	}
}
