package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/espr/lang"
)

// parsed is the production-independent outcome of a parse.
type parsed struct {
	value    any
	remarks  []lang.Remark
	residual string
}

type parseFunc func(input string, opts ...lang.Option) (parsed, error)

func parseWith[T any](
	fn func(string, ...lang.Option) (lang.Result[T], error),
) parseFunc {
	return func(input string, opts ...lang.Option) (parsed, error) {
		res, err := fn(input, opts...)

		return parsed{
			value:    res.Value,
			remarks:  res.Remarks,
			residual: res.Residual,
		}, err
	}
}

// productions maps the --production flag to its entry point.
var productions = map[string]parseFunc{
	"expression":        parseWith(lang.ParseExpression),
	"simple-expression": parseWith(lang.ParseSimpleExpression),
	"term":              parseWith(lang.ParseTerm),
	"factor":            parseWith(lang.ParseFactor),
	"simple-factor":     parseWith(lang.ParseSimpleFactor),
	"primary":           parseWith(lang.ParsePrimary),
	"literal":           parseWith(lang.ParseLiteral),
	"logical":           parseWith(lang.ParseLogicalLiteral),
	"integer":           parseWith(lang.ParseIntegerLiteral),
	"real":              parseWith(lang.ParseRealLiteral),
	"string":            parseWith(lang.ParseStringLiteral),
}

// Parse parses one production and prints the value, the remarks, and any
// residual input.
type Parse struct {
	Production string `default:"expression" enum:"expression,simple-expression,term,factor,simple-factor,primary,literal,logical,integer,real,string" help:"Production to parse (${enum})."`
	MaxDepth   int    `default:"256"                                                                                                                 help:"Maximum nesting depth."`

	Text string `arg:"" help:"Text to parse, or '-' for stdin." name:"text"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	s := streamsFrom(ctx)

	src := source{name: "<arg>", text: p.Text}

	if p.Text == stdinSource {
		srcs, err := readSources(ctx, []string{stdinSource})
		if err != nil {
			return err
		}

		src = srcs[0]
	}

	fn, ok := productions[p.Production]
	if !ok {
		return ErrParse.With(slog.String("production", p.Production))
	}

	res, err := fn(src.text,
		lang.WithContext(ctx),
		lang.WithMaxDepth(p.MaxDepth),
	)
	if err != nil {
		newPalette(s.err).diagnose(s.err, src, err)

		return ErrParse.With(slog.String("production", p.Production)).Wrap(err)
	}

	if err := p.print(s.out, res); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func (p *Parse) print(w io.Writer, res parsed) error {
	pal := newPalette(w)

	var sb strings.Builder

	field := func(key, value string) {
		sb.WriteString(pal.key.Render(fmt.Sprintf("%-9s", key+":")))
		sb.WriteString(" " + value + "\n")
	}

	field("value", formatValue(res.value))

	for _, r := range res.remarks {
		field("remark", r.String())
	}

	if res.residual != "" {
		field("residual", strconv.Quote(res.residual))
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// formatValue renders v in EXPRESS syntax where it has one.
func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return lang.FormatString(v)
	case float64:
		return lang.FormatReal(v)
	default:
		return fmt.Sprint(v)
	}
}
