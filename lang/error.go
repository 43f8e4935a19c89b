package lang

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax           = NewError("syntax error")
	ErrUnsupported      = NewError("unsupported construct")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrReadInput        = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from. Errors made
// with [Error.Wrap] or [Error.With] share the message of their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && t.msg != "" && t.msg == e.msg
}

// Attrs returns the structured logging attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return slices.Clone(e.attrs) }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Position identifies a location in source text. Line and Column are
// 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// PositionOf converts a byte offset in source to a [Position]. Offsets past
// the end of source are clamped.
func PositionOf(source string, offset int) Position {
	offset = max(0, min(offset, len(source)))
	pos := Position{Offset: offset, Line: 1, Column: 1}

	for _, r := range source[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}

	return pos
}

// SyntaxError reports that a production did not match its input.
type SyntaxError struct {
	Offset     int      // byte offset of the failure in the input
	Production string   // grammar production that failed
	Expected   []string // what would have been accepted at Offset
	Found      string   // short excerpt of the input at Offset
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var sb strings.Builder

	sb.WriteString("syntax error at offset ")
	sb.WriteString(strconv.Itoa(e.Offset))

	if e.Production != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Production)
	}

	if len(e.Expected) > 0 {
		sb.WriteString(": expected ")
		sb.WriteString(strings.Join(e.Expected, " or "))
	}

	if e.Found != "" {
		sb.WriteString(", found ")
		sb.WriteString(strconv.Quote(e.Found))
	} else {
		sb.WriteString(", found end of input")
	}

	return sb.String()
}

// Is reports whether target is [ErrSyntax].
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrSyntax.msg),
		slog.Int("offset", e.Offset),
		slog.String("production", e.Production),
		slog.Any("expected", e.Expected),
		slog.String("found", e.Found),
	)
}

// Snippet renders the line of source containing the error with a caret under
// the offending column:
//
//	syntax error at line 1, column 5:
//	  1 | 1 + )
//	          ^
func (e *SyntaxError) Snippet(source string) string {
	return snippet("syntax error", source, e.Offset)
}

// UnsupportedError reports a construct that is recognized but not handled.
type UnsupportedError struct {
	Offset    int
	Construct string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return ErrUnsupported.msg + " at offset " + strconv.Itoa(e.Offset) +
		": " + e.Construct
}

// Is reports whether target is [ErrUnsupported].
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// LogValue implements slog.LogValuer.
func (e *UnsupportedError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrUnsupported.msg),
		slog.Int("offset", e.Offset),
		slog.String("construct", e.Construct),
	)
}

// Snippet renders the line of source containing the construct with a caret
// under its first character.
func (e *UnsupportedError) Snippet(source string) string {
	return snippet("unsupported "+e.Construct, source, e.Offset)
}

// Snippet renders a caret snippet of source at offset, headed by what.
func Snippet(what, source string, offset int) string {
	return snippet(what, source, offset)
}

func snippet(what, source string, offset int) string {
	pos := PositionOf(source, offset)
	lines := strings.Split(source, "\n")

	var buf strings.Builder

	buf.WriteString(what)
	buf.WriteString(" at line ")
	buf.WriteString(strconv.Itoa(pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(pos.Column))
	buf.WriteString(":\n")

	if pos.Line > 0 && pos.Line <= len(lines) {
		line := strings.TrimRight(lines[pos.Line-1], "\r")

		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(pos.Line))
		buf.WriteString(" | ")
		buf.WriteString(line)
		buf.WriteRune('\n')

		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		lineNumWidth := len(strconv.Itoa(pos.Line))
		buf.WriteString(strings.Repeat(" ", lineNumWidth+5+pos.Column-1))
		buf.WriteString("^\n")
	}

	return buf.String()
}

// isFatal reports whether err must abort ordered alternation instead of
// letting the next alternative run.
func isFatal(err error) bool {
	var se *SyntaxError

	return err != nil && !errors.As(err, &se)
}
