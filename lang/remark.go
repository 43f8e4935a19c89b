package lang

//go:generate go tool stringer --linecomment --type RemarkKind --output remark_string.go

import "strings"

// RemarkKind distinguishes the two remark forms.
type RemarkKind int

const (
	// RemarkEmbedded is a "(* ... *)" remark. Embedded remarks nest.
	RemarkEmbedded RemarkKind = iota // embedded
	// RemarkTail is a "-- ..." remark running to the end of the line.
	RemarkTail // tail
)

// MarshalText implements encoding.TextMarshaler.
func (k RemarkKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Remark is a comment captured from source text.
type Remark struct {
	Kind   RemarkKind `json:"kind"   yaml:"kind"`
	Tag    string     `json:"tag"    yaml:"tag,omitempty"`
	Text   string     `json:"text"   yaml:"text"`
	Offset int        `json:"offset" yaml:"offset"`
}

// String renders the remark in EXPRESS syntax.
func (r Remark) String() string {
	var sb strings.Builder

	if r.Kind == RemarkTail {
		sb.WriteString("--")
	} else {
		sb.WriteString("(*")
	}

	if r.Tag != "" {
		sb.WriteString(`"` + r.Tag + `"`)
	}

	if r.Text != "" {
		sb.WriteString(" " + r.Text)
	}

	if r.Kind == RemarkEmbedded {
		// An unterminated remark may leave nested remarks open.
		for range openRemarks(r.Text) + 1 {
			sb.WriteString(" *)")
		}
	}

	return sb.String()
}

// openRemarks returns the number of "(*" in s left unclosed by a "*)".
func openRemarks(s string) int {
	depth := 0

	for i := 0; i+1 < len(s); i++ {
		switch s[i : i+2] {
		case "(*":
			depth++
			i++
		case "*)":
			depth = max(0, depth-1)
			i++
		}
	}

	return depth
}

// remark scans one remark at the current position, if there is one, and
// appends it to the parser's remark list. An unterminated embedded remark
// runs to the end of input.
func (p *parser) remark() bool {
	switch {
	case strings.HasPrefix(p.input[p.pos:], "(*"):
		start := p.pos
		p.pos += 2
		body := p.pos
		depth := 1

		for !p.eof() && depth > 0 {
			switch {
			case strings.HasPrefix(p.input[p.pos:], "(*"):
				depth++
				p.pos += 2
			case strings.HasPrefix(p.input[p.pos:], "*)"):
				depth--
				p.pos += 2
			default:
				p.advance()
			}
		}

		end := p.pos
		if depth == 0 {
			end -= 2
		}

		p.addRemark(RemarkEmbedded, start, p.input[body:end])

		return true

	case strings.HasPrefix(p.input[p.pos:], "--"):
		start := p.pos
		p.pos += 2
		body := p.pos

		for !p.eof() && p.peek() != '\n' {
			p.advance()
		}

		p.addRemark(RemarkTail, start, strings.TrimRight(p.input[body:p.pos], "\r"))

		return true
	}

	return false
}

func (p *parser) addRemark(kind RemarkKind, offset int, body string) {
	var tag string

	if rest, ok := strings.CutPrefix(strings.TrimLeft(body, " \t"), `"`); ok {
		if i := strings.IndexByte(rest, '"'); i >= 0 && isRemarkTag(rest[:i]) {
			tag, body = rest[:i], rest[i+1:]
		}
	}

	p.remarks = append(p.remarks, Remark{
		Kind:   kind,
		Tag:    tag,
		Text:   strings.TrimSpace(body),
		Offset: offset,
	})
}

// isRemarkTag reports whether s is a dotted list of identifiers.
func isRemarkTag(s string) bool {
	if s == "" {
		return false
	}

	for part := range strings.SplitSeq(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}

	return true
}
