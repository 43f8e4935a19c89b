package lang

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntegerLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     uint64
		residual string
	}{
		{name: "simple", input: "123", want: 123},
		{name: "zero", input: "0", want: 0},
		{name: "leading zeros", input: "007", want: 7},
		{name: "surrounding space", input: "  42  ", want: 42},
		{name: "stops at fraction", input: "12.5", want: 12, residual: ".5"},
		{name: "max", input: "18446744073709551615", want: 1<<64 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseIntegerLiteral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.residual, res.Residual)
		})
	}
}

func TestParseIntegerLiteral_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{name: "empty", input: "", offset: 0},
		{name: "sign", input: "-1", offset: 0},
		{name: "letter", input: " x", offset: 1},
		{name: "overflow", input: "18446744073709551616", offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntegerLiteral(tt.input)
			require.ErrorIs(t, err, ErrSyntax)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.offset, se.Offset)
			assert.Equal(t, "integer_literal", se.Production)
		})
	}
}

func TestParseRealLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     float64
		residual string
	}{
		{name: "integer text", input: "123", want: 123.0},
		{name: "fraction", input: "1.5", want: 1.5},
		{name: "trailing point", input: "2.", want: 2.0},
		{name: "negative exponent", input: "1.23e-5", want: 1.23e-5},
		{name: "positive exponent", input: "4E+2", want: 400},
		{name: "bare exponent", input: "7e3", want: 7000},
		{name: "exponent without digits", input: "7e", want: 7, residual: "e"},
		{name: "exponent sign only", input: "7e-x", want: 7, residual: "e-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseRealLiteral(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Value, 1e-18)
			assert.Equal(t, tt.residual, res.Residual)
		})
	}
}

func TestParseRealLiteral_Overflow(t *testing.T) {
	_, err := ParseRealLiteral("1e400")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParseRealLiteral_MatchesInteger(t *testing.T) {
	for _, s := range []string{"0", "1", "9", "10", "123", "65535", "4294967296"} {
		t.Run(s, func(t *testing.T) {
			i, err := ParseIntegerLiteral(s)
			require.NoError(t, err)

			r, err := ParseRealLiteral(s)
			require.NoError(t, err)

			assert.Equal(t, float64(i.Value), r.Value) //nolint:testifylint
		})
	}
}

func TestParseLogicalLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  Logical
	}{
		{input: "TRUE", want: True},
		{input: "false", want: False},
		{input: "Unknown", want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := ParseLogicalLiteral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
			assert.Empty(t, res.Residual)
		})
	}

	for _, bad := range []string{"TRUEX", "T", "yes", ""} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := ParseLogicalLiteral(bad)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseStringLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "'abc'", want: "abc"},
		{name: "empty", input: "''", want: ""},
		{name: "escaped quote", input: "'it''s'", want: "it's"},
		{name: "encoded", input: `"0000004100000042"`, want: "AB"},
		{name: "encoded non-ascii", input: `"000000E9"`, want: "é"},
		{name: "empty encoded", input: `""`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseStringLiteral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestParseStringLiteral_Errors(t *testing.T) {
	for _, bad := range []string{
		"'unterminated",
		`"00000041`,
		`"0041"`,
		`"0000004G"`,
		`"0000D800"`,
		"abc",
	} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseStringLiteral(bad)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  Literal
	}{
		{input: "TRUE", want: Literal{Kind: LiteralLogical, Logical: True}},
		{input: "UNKNOWN", want: Literal{Kind: LiteralLogical, Logical: Unknown}},
		{input: "42", want: Literal{Kind: LiteralReal, Real: 42}},
		{input: "0.5", want: Literal{Kind: LiteralReal, Real: 0.5}},
		{input: "'x'", want: Literal{Kind: LiteralString, Text: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := ParseLiteral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestParseLiteral_Binary(t *testing.T) {
	_, err := ParseLiteral("%0101")
	require.ErrorIs(t, err, ErrUnsupported)
	assert.NotErrorIs(t, err, ErrSyntax)

	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "binary literal", ue.Construct)
}

func TestLiteral_String(t *testing.T) {
	tests := []struct {
		lit  Literal
		want string
	}{
		{lit: Literal{Kind: LiteralLogical, Logical: False}, want: "FALSE"},
		{lit: Literal{Kind: LiteralReal, Real: 3}, want: "3"},
		{lit: Literal{Kind: LiteralReal, Real: 1.25}, want: "1.25"},
		{lit: Literal{Kind: LiteralString, Text: "it's"}, want: "'it''s'"},
		{lit: Literal{Kind: LiteralString, Text: "é"}, want: `"000000E9"`},
		{lit: Literal{}, want: "<invalid literal>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lit.String())
		})
	}
}

func TestFormatString_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "quote'd", "tab\there", "ünï", "日本"} {
		t.Run(strconv.Quote(s), func(t *testing.T) {
			res, err := ParseStringLiteral(FormatString(s))
			require.NoError(t, err)
			assert.Equal(t, s, res.Value)
		})
	}
}
