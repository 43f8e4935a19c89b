package lang

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/ardnew/espr/log"
)

// DefaultMaxDepth is the default limit on nested parentheses and
// subscripts in an expression.
const DefaultMaxDepth = 256

// Option configures parsing behavior.
type Option func(*config)

type config struct {
	ctx      context.Context //nolint:containedctx
	logger   log.Logger
	maxDepth int
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithMaxDepth sets the maximum nesting depth of parenthesized expressions
// and subscripts. Deeper input fails with [ErrMaxDepthExceeded].
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

func makeConfig(opts ...Option) config {
	c := config{
		ctx:      context.Background(),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// Result is the outcome of a successful parse: the parsed value, the remarks
// encountered while producing it in source order, and the unparsed input.
type Result[T any] struct {
	Value    T
	Remarks  []Remark
	Residual string
}

// parser holds the parser state.
type parser struct {
	config

	input   string
	pos     int
	depth   int
	remarks []Remark
}

// state is a rewind point. Resetting to it also drops remarks collected
// after it was taken.
type state struct {
	pos     int
	remarks int
}

func newParser(input string, opts ...Option) *parser {
	return &parser{
		config: makeConfig(opts...),
		input:  input,
	}
}

// run drives a single production over input. Leading and trailing
// whitespace and remarks are consumed; whatever remains is the residual.
func run[T any](
	input, production string,
	opts []Option,
	fn func(*parser) (T, error),
) (Result[T], error) {
	p := newParser(input, opts...)

	p.logger.TraceContext(p.ctx, "parse start",
		slog.String("production", production),
		slog.Int("length", len(input)))

	v, err := fn(p)
	if err != nil {
		p.logger.TraceContext(p.ctx, "parse failed",
			slog.String("production", production),
			slog.Any("error", err))

		return Result[T]{}, err
	}

	p.space()

	res := Result[T]{
		Value:    v,
		Remarks:  p.remarks,
		Residual: p.input[p.pos:],
	}

	p.logger.TraceContext(p.ctx, "parse complete",
		slog.String("production", production),
		slog.Int("remarks", len(res.Remarks)),
		slog.Int("residual", len(res.Residual)))

	return res, nil
}

func (p *parser) mark() state {
	return state{pos: p.pos, remarks: len(p.remarks)}
}

func (p *parser) reset(s state) {
	p.pos = s.pos
	p.remarks = p.remarks[:s.remarks]
}

// enter guards recursion into nested productions.
func (p *parser) enter() error {
	if p.depth >= p.maxDepth {
		return ErrMaxDepthExceeded.With(
			slog.Int("offset", p.pos),
			slog.Int("limit", p.maxDepth),
		)
	}

	p.depth++

	return nil
}

func (p *parser) leave() { p.depth-- }

// fail returns a non-fatal SyntaxError at the current position.
func (p *parser) fail(production string, expected ...string) *SyntaxError {
	return p.failAt(p.pos, production, expected...)
}

// failNext fails at the start of the next token without consuming anything.
func (p *parser) failNext(production string, expected ...string) *SyntaxError {
	s := p.mark()
	p.space()
	offset := p.pos
	p.reset(s)

	return p.failAt(offset, production, expected...)
}

func (p *parser) failAt(
	offset int,
	production string,
	expected ...string,
) *SyntaxError {
	found := p.input[offset:]
	if i := strings.IndexAny(found, "\r\n"); i >= 0 {
		found = found[:i]
	}

	if len(found) > 16 {
		n := 16
		for n > 0 && !utf8.RuneStart(found[n]) {
			n--
		}

		found = found[:n] + "…"
	}

	return &SyntaxError{
		Offset:     offset,
		Production: production,
		Expected:   expected,
		Found:      found,
	}
}

func (p *parser) unsupported(offset int, construct string) *UnsupportedError {
	p.logger.TraceContext(p.ctx, "unsupported construct",
		slog.String("construct", construct),
		slog.Int("offset", offset))

	return &UnsupportedError{Offset: offset, Construct: construct}
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])

	return r
}

// peekAt returns the rune n bytes past the current position.
func (p *parser) peekAt(n int) rune {
	if p.pos+n >= len(p.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.input[p.pos+n:])

	return r
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

// space skips whitespace and remarks, collecting the remarks.
func (p *parser) space() {
	for !p.eof() {
		if unicode.IsSpace(p.peek()) {
			p.advance()

			continue
		}

		if !p.remark() {
			return
		}
	}
}

// symbol matches a punctuation token after skipping space.
func (p *parser) symbol(sym string) bool {
	s := p.mark()
	p.space()

	if strings.HasPrefix(p.input[p.pos:], sym) {
		p.pos += len(sym)

		return true
	}

	p.reset(s)

	return false
}

// expect is symbol that fails with a SyntaxError instead of returning false.
func (p *parser) expect(production, sym string) error {
	if p.symbol(sym) {
		return nil
	}

	return p.failNext(production, quote(sym))
}

// keyword matches kw case-insensitively after skipping space. The keyword
// must not be followed by an identifier character.
func (p *parser) keyword(kw string) bool {
	s := p.mark()
	p.space()

	if p.atKeyword(kw) {
		p.pos += len(kw)

		return true
	}

	p.reset(s)

	return false
}

// atKeyword reports whether kw starts at the current position without
// consuming it.
func (p *parser) atKeyword(kw string) bool {
	rest := p.input[p.pos:]
	if len(rest) < len(kw) || !strings.EqualFold(rest[:len(kw)], kw) {
		return false
	}

	r, _ := utf8.DecodeRuneInString(rest[len(kw):])

	return len(rest) == len(kw) || !isIdentifierContinue(r)
}

// expectKeyword is keyword that fails with a SyntaxError.
func (p *parser) expectKeyword(production, kw string) error {
	if p.keyword(kw) {
		return nil
	}

	return p.failNext(production, kw)
}

// word scans an identifier-shaped token, reserved or not, after skipping
// space. On failure nothing is consumed.
func (p *parser) word() (string, int, bool) {
	s := p.mark()
	p.space()

	start := p.pos
	if !isIdentifierStart(p.peek()) {
		p.reset(s)

		return "", start, false
	}

	p.advance()

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return p.input[start:p.pos], start, true
}

// identifier scans a simple_id that is not a reserved word.
func (p *parser) identifier(production string) (string, int, error) {
	s := p.mark()

	id, offset, ok := p.word()
	if !ok || IsReserved(id) {
		p.reset(s)
		err := p.failNext(production, "identifier")

		return "", err.Offset, err
	}

	return id, offset, nil
}

// identifierList parses id { ',' id }.
func (p *parser) identifierList(production string) ([]string, error) {
	var ids []string

	for {
		id, _, err := p.identifier(production)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)

		if !p.symbol(",") {
			return ids, nil
		}
	}
}

// Character classification

func isIdentifierStart(r rune) bool {
	return r < utf8.RuneSelf && unicode.IsLetter(r)
}

func isIdentifierContinue(r rune) bool {
	return r < utf8.RuneSelf &&
		(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentifierStart(r) || !isIdentifierContinue(r) {
			return false
		}
	}

	return s != ""
}

// Fold returns the case-folded form of an EXPRESS identifier. Identifiers
// that differ only in case are the same identifier.
func Fold(id string) string {
	return cases.Fold().String(id)
}

// IsReserved reports whether id is an EXPRESS reserved word, which cannot be
// used as an identifier.
func IsReserved(id string) bool {
	_, ok := reserved[Fold(id)]

	return ok
}

func quote(s string) string { return `"` + s + `"` }

//nolint:gochecknoglobals
var reserved = func() map[string]struct{} {
	words := strings.Fields(`
		abs abstract acos aggregate alias and andor array as asin atan bag
		based_on begin binary blength boolean by case constant const_e cos
		derive div else end end_alias end_case end_constant end_entity
		end_function end_if end_local end_procedure end_repeat end_rule
		end_schema end_subtype_constraint end_type entity enumeration escape
		exists exp extensible false fixed for format from function generic
		generic_entity hibound hiindex if in insert integer inverse length
		like list lobound local log log10 log2 logical loindex mod not number
		nvl odd of oneof optional or otherwise pi procedure query
		real reference remove renamed repeat return rolesof rule schema
		select self set sin sizeof skip sqrt string subtype subtype_constraint
		supertype tan then to true type typeof unique unknown until use usedin
		value value_in value_unique var where while with xor`)

	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}

	return m
}()
