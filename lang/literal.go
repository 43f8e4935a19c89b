package lang

//go:generate go tool stringer --linecomment --type LiteralKind,Logical --output literal_string.go

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LiteralKind identifies which field of a [Literal] is set.
type LiteralKind int

const (
	LiteralLogical LiteralKind = iota + 1 // logical
	LiteralReal                           // real
	LiteralString                         // string
)

// Logical is the value of a logical literal.
type Logical int

const (
	False   Logical = iota // FALSE
	True                   // TRUE
	Unknown                // UNKNOWN
)

// Literal is a logical, real, or string literal. Integer-looking text is
// read as a real; use [ParseIntegerLiteral] for a strict integer.
type Literal struct {
	Kind    LiteralKind
	Logical Logical
	Real    float64
	Text    string
}

// ParseLogicalLiteral parses TRUE, FALSE, or UNKNOWN.
func ParseLogicalLiteral(input string, opts ...Option) (Result[Logical], error) {
	return run(input, "logical_literal", opts, (*parser).logicalLiteral)
}

// ParseIntegerLiteral parses a run of decimal digits as an unsigned integer.
// A leading sign is not part of the literal.
func ParseIntegerLiteral(input string, opts ...Option) (Result[uint64], error) {
	return run(input, "integer_literal", opts, (*parser).integerLiteral)
}

// ParseRealLiteral parses a decimal number with optional fraction and exponent.
// Integer-looking input is accepted: "23" yields 23.0.
func ParseRealLiteral(input string, opts ...Option) (Result[float64], error) {
	return run(input, "real_literal", opts, (*parser).realLiteral)
}

// ParseStringLiteral parses a simple ('...') or encoded ("...") string literal.
func ParseStringLiteral(input string, opts ...Option) (Result[string], error) {
	return run(input, "string_literal", opts, (*parser).stringLiteral)
}

// ParseLiteral parses a logical, real, or string literal, tried in that
// order. A binary literal fails with [ErrUnsupported].
func ParseLiteral(input string, opts ...Option) (Result[Literal], error) {
	return run(input, "literal", opts, (*parser).literal)
}

func (p *parser) literal() (Literal, error) {
	p.space()

	if p.peek() == '%' {
		return Literal{}, p.unsupported(p.pos, "binary literal")
	}

	if l, err := p.logicalLiteral(); err == nil {
		return Literal{Kind: LiteralLogical, Logical: l}, nil
	}

	switch r := p.peek(); {
	case isDigit(r):
		f, err := p.realLiteral()
		if err != nil {
			return Literal{}, err
		}

		return Literal{Kind: LiteralReal, Real: f}, nil

	case r == '\'' || r == '"':
		t, err := p.stringLiteral()
		if err != nil {
			return Literal{}, err
		}

		return Literal{Kind: LiteralString, Text: t}, nil
	}

	return Literal{}, p.fail("literal", "logical", "number", "string")
}

func (p *parser) logicalLiteral() (Logical, error) {
	for _, l := range []Logical{True, False, Unknown} {
		if p.keyword(l.String()) {
			return l, nil
		}
	}

	return 0, p.failNext("logical_literal", "TRUE", "FALSE", "UNKNOWN")
}

// digits consumes one or more decimal digits.
func (p *parser) digits() bool {
	start := p.pos

	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}

	return p.pos > start
}

func (p *parser) integerLiteral() (uint64, error) {
	p.space()

	start := p.pos
	if !p.digits() {
		return 0, p.fail("integer_literal", "digit")
	}

	n, err := strconv.ParseUint(p.input[start:p.pos], 10, 64)
	if err != nil {
		return 0, &SyntaxError{
			Offset:     start,
			Production: "integer_literal",
			Expected:   []string{"integer within 64 bits"},
			Found:      p.input[start:p.pos],
		}
	}

	return n, nil
}

func (p *parser) realLiteral() (float64, error) {
	p.space()

	start := p.pos
	if !p.digits() {
		return 0, p.fail("real_literal", "digit")
	}

	if p.peek() == '.' {
		p.pos++
		p.digits()
	}

	if r := p.peek(); r == 'e' || r == 'E' {
		s := p.mark()
		p.pos++

		if r := p.peek(); r == '+' || r == '-' {
			p.pos++
		}

		if !p.digits() {
			p.reset(s)
		}
	}

	f, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, &SyntaxError{
			Offset:     start,
			Production: "real_literal",
			Expected:   []string{"real within 64 bits"},
			Found:      p.input[start:p.pos],
		}
	}

	return f, nil
}

func (p *parser) stringLiteral() (string, error) {
	p.space()

	switch p.peek() {
	case '\'':
		return p.simpleString()
	case '"':
		return p.encodedString()
	default:
		return "", p.fail("string_literal", "'", `"`)
	}
}

// simpleString scans '...' where a doubled quote stands for one quote.
func (p *parser) simpleString() (string, error) {
	start := p.pos
	p.pos++

	var sb strings.Builder

	for !p.eof() {
		if p.peek() == '\'' {
			if p.peekAt(1) == '\'' {
				sb.WriteByte('\'')
				p.pos += 2

				continue
			}

			p.pos++

			return sb.String(), nil
		}

		r := p.peek()
		sb.WriteRune(r)
		p.advance()
	}

	return "", p.failAt(start, "simple_string_literal", "closing '")
}

// encodedString scans "..." holding groups of eight hex digits, each the
// ISO 10646 code point of one character.
func (p *parser) encodedString() (string, error) {
	start := p.pos
	p.pos++

	end := strings.IndexByte(p.input[p.pos:], '"')
	if end < 0 {
		return "", p.failAt(start, "encoded_string_literal", `closing "`)
	}

	body := p.input[p.pos : p.pos+end]
	if len(body)%8 != 0 {
		return "", p.failAt(p.pos+len(body)-len(body)%8,
			"encoded_string_literal", "8 hex digits")
	}

	var sb strings.Builder

	for i := 0; i < len(body); i += 8 {
		cp, err := strconv.ParseUint(body[i:i+8], 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			return "", p.failAt(p.pos+i, "encoded_string_literal",
				"8 hex digits encoding a character")
		}

		sb.WriteRune(rune(cp))
	}

	p.pos += end + 1

	return sb.String(), nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// String renders the literal in EXPRESS syntax.
func (l Literal) String() string {
	switch l.Kind {
	case LiteralLogical:
		return l.Logical.String()
	case LiteralReal:
		return FormatReal(l.Real)
	case LiteralString:
		return FormatString(l.Text)
	default:
		return "<invalid literal>"
	}
}

// FormatReal renders f as an EXPRESS real literal.
func FormatReal(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatString renders s as an EXPRESS string literal. The simple form is
// used when every character is printable ASCII; otherwise the encoded form.
func FormatString(s string) string {
	simple := true

	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			simple = false

			break
		}
	}

	if simple {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}

	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range s {
		h := strconv.FormatUint(uint64(r), 16)
		sb.WriteString(strings.Repeat("0", 8-len(h)))
		sb.WriteString(strings.ToUpper(h))
	}

	sb.WriteByte('"')

	return sb.String()
}
