package cmd

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/espr/lang"
	"github.com/ardnew/espr/semantics"
)

// palette styles diagnostics for one writer. Writers that are not color
// terminals get plain text.
type palette struct {
	loc, label, gutter, caret, key lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	return palette{
		loc:    r.NewStyle().Bold(true),
		label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		gutter: r.NewStyle().Foreground(lipgloss.Color("8")),
		caret:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		key:    r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// errorOffset returns the source offset err reports, if any.
func errorOffset(err error) (int, bool) {
	var (
		se  *lang.SyntaxError
		ue  *lang.UnsupportedError
		tnf *semantics.TypeNotFoundError
		dd  *semantics.DuplicateDeclarationError
	)

	switch {
	case errors.As(err, &se):
		return se.Offset, true
	case errors.As(err, &ue):
		return ue.Offset, true
	case errors.As(err, &tnf):
		return tnf.Offset, true
	case errors.As(err, &dd):
		return dd.Offset, true
	default:
		return 0, false
	}
}

// diagnose writes err as a diagnostic against the source it came from:
//
//	shapes.exp:4:9: error: type "pnt" not found in scope shapes.polygon
//	  4 |     a : pnt;
//	          ^
func (p palette) diagnose(w io.Writer, src source, err error) {
	var sb strings.Builder

	offset, ok := errorOffset(err)

	loc := src.name
	if ok {
		loc += ":" + lang.PositionOf(src.text, offset).String()
	}

	sb.WriteString(p.loc.Render(loc + ":"))
	sb.WriteString(" ")
	sb.WriteString(p.label.Render("error:"))
	sb.WriteString(" ")
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	if ok {
		// Drop the snippet's own heading; the location is already given.
		_, body, _ := strings.Cut(lang.Snippet("", src.text, offset), "\n")

		for line := range strings.Lines(body) {
			line = strings.TrimSuffix(line, "\n")

			if gutter, code, found := strings.Cut(line, " | "); found {
				sb.WriteString(p.gutter.Render(gutter+" |") + " " + code + "\n")
			} else {
				pad := strings.TrimRight(line, "^")
				sb.WriteString(pad + p.caret.Render("^") + "\n")
			}
		}
	}

	_, _ = io.WriteString(w, sb.String())
}
