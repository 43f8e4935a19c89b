package semantics

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/espr/lang"
)

// Predefined errors (sentinel values).
var (
	ErrSemantic             = lang.NewError("semantic error")
	ErrTypeNotFound         = lang.NewError("type not found")
	ErrDuplicateDeclaration = lang.NewError("duplicate declaration")
	ErrInvalidType          = lang.NewError("invalid type")
)

// TypeNotFoundError reports a reference that names no visible definition of
// an acceptable kind.
type TypeNotFoundError struct {
	Name        string
	Scope       Path
	Suggestions []string // visible names close to Name, best first
	Offset      int      // byte offset of the reference, if known
}

// Error implements the error interface.
func (e *TypeNotFoundError) Error() string {
	var sb strings.Builder

	sb.WriteString("type ")
	sb.WriteString(strconv.Quote(e.Name))
	sb.WriteString(" not found in scope ")
	sb.WriteString(Scope{path: e.Scope}.String())

	if len(e.Suggestions) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(e.Suggestions, ", "))
		sb.WriteString("?)")
	}

	return sb.String()
}

// Is reports whether target is [ErrSemantic] or [ErrTypeNotFound].
func (e *TypeNotFoundError) Is(target error) bool {
	return target == ErrSemantic || target == ErrTypeNotFound
}

// LogValue implements slog.LogValuer.
func (e *TypeNotFoundError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrTypeNotFound.Error()),
		slog.String("name", e.Name),
		slog.String("scope", e.Scope.String()),
		slog.Any("suggestions", e.Suggestions),
		slog.Int("offset", e.Offset),
	)
}

// DuplicateDeclarationError reports a name declared twice in one scope.
type DuplicateDeclarationError struct {
	Name           string
	Scope          Path
	Kind           Kind // kind of the second declaration
	Previous       Kind // kind of the first declaration
	Offset         int
	PreviousOffset int
}

// Error implements the error interface.
func (e *DuplicateDeclarationError) Error() string {
	return "duplicate declaration of " + e.Kind.String() + " " +
		strconv.Quote(e.Name) + " in scope " + Scope{path: e.Scope}.String() +
		" (previously declared as " + e.Previous.String() + ")"
}

// Is reports whether target is [ErrSemantic] or [ErrDuplicateDeclaration].
func (e *DuplicateDeclarationError) Is(target error) bool {
	return target == ErrSemantic || target == ErrDuplicateDeclaration
}

// LogValue implements slog.LogValuer.
func (e *DuplicateDeclarationError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrDuplicateDeclaration.Error()),
		slog.String("name", e.Name),
		slog.String("scope", e.Scope.String()),
		slog.String("kind", e.Kind.String()),
		slog.String("previous", e.Previous.String()),
		slog.Int("offset", e.Offset),
		slog.Int("previous_offset", e.PreviousOffset),
	)
}

// InvalidTypeError reports a type in a syntax tree that no parse produces,
// such as a zero [lang.TypeKind] or an aggregate without its element. Trees
// built by hand are the usual source.
type InvalidTypeError struct {
	Scope  Path
	Kind   lang.TypeKind
	Reason string
}

// Error implements the error interface.
func (e *InvalidTypeError) Error() string {
	return "invalid " + e.Kind.String() + " type in scope " +
		Scope{path: e.Scope}.String() + ": " + e.Reason
}

// Is reports whether target is [ErrSemantic] or [ErrInvalidType].
func (e *InvalidTypeError) Is(target error) bool {
	return target == ErrSemantic || target == ErrInvalidType
}

// LogValue implements slog.LogValuer.
func (e *InvalidTypeError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrInvalidType.Error()),
		slog.String("scope", e.Scope.String()),
		slog.String("kind", e.Kind.String()),
		slog.String("reason", e.Reason),
	)
}
