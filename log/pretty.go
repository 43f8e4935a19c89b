package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by prettyHandler. Styles are bound to the
// renderer of the output writer, so color is dropped when w is not a terminal.
type palette struct {
	key, str, num, time lipgloss.Style
	yes, no, other      lipgloss.Style
	trace, debug, info  lipgloss.Style
	warn, err           lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		time:  fg("4"),
		yes:   fg("2"),
		no:    fg("1"),
		other: fg("5"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler implements a colorized key=value text handler.
type prettyHandler struct {
	opts   slog.HandlerOptions
	style  palette
	mu     *sync.Mutex
	w      io.Writer
	prefix string // dotted group path applied to record attributes
	attrs  []byte // preformatted attributes from WithAttrs
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return &prettyHandler{
		opts:  *opts,
		style: makePalette(w),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, nil, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeAttr(buf, nil, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, nil, slog.String(
				slog.SourceKey, src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	h.writeAttr(buf, nil, slog.String(slog.MessageKey, r.Message))

	if len(h.attrs) > 0 {
		buf.WriteByte(' ')
		buf.Write(h.attrs)
	}

	groups := h.groups()
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	groups := h.groups()

	for _, a := range attrs {
		h.writeAttr(buf, groups, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) groups() []string {
	if h.prefix == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(h.prefix, "."), ".")
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}

	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(groups[:len(groups):len(groups)], a.Key)
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	buf.WriteString(h.style.key.Render(key))
	buf.WriteByte('=')
	buf.WriteString(h.value(a.Key, a.Value))
}

func (h *prettyHandler) value(key string, v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		if key == slog.LevelKey {
			return h.style.level(slog.Level(ParseLevel(v.String()))).Render(v.String())
		}

		return h.style.str.Render(quoteIfNeeded(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindTime:
		return h.style.time.Render(v.Time().Format(DefaultTimeLayout))

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			return h.style.level(level).Render(levelLabel(Level(level)))
		}

		return h.style.other.Render(quoteIfNeeded(v.String()))

	default:
		return h.style.other.Render(quoteIfNeeded(v.String()))
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}

	return s
}
