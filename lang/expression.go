package lang

//go:generate go tool stringer --linecomment --type BuiltinConstant --output expression_string.go

import (
	"fmt"
	"strings"
)

// Expr is one tier of the expression grammar: a single operand, or two
// operands joined by one operator. Arg2 is nil for the single-operand form,
// in which case Op is the zero value.
type Expr[Base, Op any] struct {
	Arg1 Base
	Op   Op
	Arg2 *Base
}

// The four tiers, loosest binding first.
type (
	Expression       = Expr[SimpleExpression, RelOp]
	SimpleExpression = Expr[Term, AddOp]
	Term             = Expr[Factor, MulOp]
	Factor           = Expr[SimpleFactor, PowerOp]
)

// Unary returns the single-operand form of a tier.
func Unary[Base, Op any](arg Base) Expr[Base, Op] {
	return Expr[Base, Op]{Arg1: arg}
}

// Binary returns the two-operand form of a tier.
func Binary[Base, Op any](op Op, arg1, arg2 Base) Expr[Base, Op] {
	return Expr[Base, Op]{Arg1: arg1, Op: op, Arg2: &arg2}
}

// IsBinary reports whether e joins two operands.
func (e Expr[Base, Op]) IsBinary() bool { return e.Arg2 != nil }

// String renders e in EXPRESS syntax.
func (e Expr[Base, Op]) String() string {
	if e.Arg2 == nil {
		return fmt.Sprint(e.Arg1)
	}

	return fmt.Sprint(e.Arg1) + " " + fmt.Sprint(e.Op) + " " + fmt.Sprint(*e.Arg2)
}

// SimpleFactor is an optionally negated primary or parenthesized
// expression. Exactly one of Primary and Paren is set.
type SimpleFactor struct {
	UnaryOp *UnaryOp
	Primary *Primary
	Paren   *Expression
}

// String renders sf in EXPRESS syntax.
func (sf SimpleFactor) String() string {
	var sb strings.Builder

	if sf.UnaryOp != nil {
		sb.WriteString(sf.UnaryOp.String())

		if *sf.UnaryOp == UnaryNot {
			sb.WriteByte(' ')
		}
	}

	switch {
	case sf.Primary != nil:
		sb.WriteString(sf.Primary.String())
	case sf.Paren != nil:
		sb.WriteString("(" + sf.Paren.String() + ")")
	}

	return sb.String()
}

// BuiltinConstant is one of the EXPRESS built-in constants.
type BuiltinConstant int

const (
	NoConstant    BuiltinConstant = iota
	Indeterminate                 // ?
	Self                          // SELF
	ConstE                        // CONST_E
	Pi                            // PI
)

// Primary is a literal, a built-in constant, or a qualified reference.
// Exactly one is set.
type Primary struct {
	Literal  *Literal
	Constant BuiltinConstant
	Ref      *Reference
}

// String renders p in EXPRESS syntax.
func (p Primary) String() string {
	switch {
	case p.Literal != nil:
		return p.Literal.String()
	case p.Ref != nil:
		return p.Ref.String()
	case p.Constant != NoConstant:
		return p.Constant.String()
	default:
		return ""
	}
}

// Reference names a variable, attribute, constant, or enumeration item,
// followed by any qualifiers.
type Reference struct {
	Name       string
	Qualifiers []Qualifier
}

// String renders r in EXPRESS syntax.
func (r Reference) String() string {
	var sb strings.Builder

	sb.WriteString(r.Name)

	for _, q := range r.Qualifiers {
		sb.WriteString(q.String())
	}

	return sb.String()
}

// QualifierKind distinguishes the qualifier forms.
type QualifierKind int

const (
	QualifyAttribute QualifierKind = iota + 1 // .name
	QualifyGroup                              // \name
	QualifyIndex                              // [i] or [i:j]
)

// Qualifier selects part of a referenced value.
type Qualifier struct {
	Kind  QualifierKind
	Name  string            // attribute or entity name
	Index *SimpleExpression // first index
	Upper *SimpleExpression // second index of a range, if any
}

// String renders q in EXPRESS syntax.
func (q Qualifier) String() string {
	switch q.Kind {
	case QualifyAttribute:
		return "." + q.Name
	case QualifyGroup:
		return `\` + q.Name
	case QualifyIndex:
		if q.Index == nil {
			return "[]"
		}

		if q.Upper != nil {
			return "[" + q.Index.String() + " : " + q.Upper.String() + "]"
		}

		return "[" + q.Index.String() + "]"
	default:
		return ""
	}
}

// ParseExpression parses an expression: a simple expression optionally
// compared with another by one relational operator.
func ParseExpression(input string, opts ...Option) (Result[Expression], error) {
	return run(input, "expression", opts, (*parser).expression)
}

// ParseSimpleExpression parses terms joined by additive operators.
func ParseSimpleExpression(
	input string,
	opts ...Option,
) (Result[SimpleExpression], error) {
	return run(input, "simple_expression", opts, (*parser).simpleExpression)
}

// ParseTerm parses factors joined by multiplicative operators.
func ParseTerm(input string, opts ...Option) (Result[Term], error) {
	return run(input, "term", opts, (*parser).term)
}

// ParseFactor parses a simple factor optionally raised to another.
func ParseFactor(input string, opts ...Option) (Result[Factor], error) {
	return run(input, "factor", opts, (*parser).factor)
}

// ParseSimpleFactor parses an optionally negated primary or parenthesized
// expression.
func ParseSimpleFactor(
	input string,
	opts ...Option,
) (Result[SimpleFactor], error) {
	return run(input, "simple_factor", opts, (*parser).simpleFactor)
}

// ParsePrimary parses a literal, built-in constant, or qualified reference.
func ParsePrimary(input string, opts ...Option) (Result[Primary], error) {
	return run(input, "primary", opts, (*parser).primary)
}

// expr parses base [op base]. An operator not followed by a valid operand
// is left unconsumed.
func expr[Base any, Op ~int](
	p *parser,
	base func(*parser) (Base, error),
	ops []opToken[Op],
) (Expr[Base, Op], error) {
	arg1, err := base(p)
	if err != nil {
		return Expr[Base, Op]{}, err
	}

	e := Expr[Base, Op]{Arg1: arg1}
	s := p.mark()

	op, ok := operator(p, ops)
	if !ok {
		return e, nil
	}

	arg2, err := base(p)
	if err != nil {
		if isFatal(err) {
			return Expr[Base, Op]{}, err
		}

		p.reset(s)

		return e, nil
	}

	e.Op, e.Arg2 = op, &arg2

	return e, nil
}

// fold parses base {op base}, folding to the left. Once two operands have
// been joined, rebox turns the node into a single base operand for the next
// application.
func fold[Base any, Op ~int](
	p *parser,
	base func(*parser) (Base, error),
	ops []opToken[Op],
	rebox func(Expr[Base, Op]) Base,
) (Expr[Base, Op], error) {
	e, err := expr(p, base, ops)
	if err != nil || !e.IsBinary() {
		return e, err
	}

	for {
		s := p.mark()

		op, ok := operator(p, ops)
		if !ok {
			return e, nil
		}

		arg2, err := base(p)
		if err != nil {
			if isFatal(err) {
				return Expr[Base, Op]{}, err
			}

			p.reset(s)

			return e, nil
		}

		e = Expr[Base, Op]{Arg1: rebox(e), Op: op, Arg2: &arg2}
	}
}

func (p *parser) expression() (Expression, error) {
	return expr(p, (*parser).simpleExpression, relOps)
}

func (p *parser) simpleExpression() (SimpleExpression, error) {
	return fold(p, (*parser).term, addOps, func(se SimpleExpression) Term {
		return Unary[Factor, MulOp](Unary[SimpleFactor, PowerOp](
			paren(Unary[SimpleExpression, RelOp](se)),
		))
	})
}

func (p *parser) term() (Term, error) {
	return fold(p, (*parser).factor, mulOps, func(t Term) Factor {
		return Unary[SimpleFactor, PowerOp](
			paren(Unary[SimpleExpression, RelOp](Unary[Term, AddOp](t))),
		)
	})
}

func paren(e Expression) SimpleFactor { return SimpleFactor{Paren: &e} }

func (p *parser) factor() (Factor, error) {
	return expr(p, (*parser).simpleFactor, powerOps)
}

func (p *parser) simpleFactor() (SimpleFactor, error) {
	var sf SimpleFactor

	if op, ok := operator(p, unaryOps); ok {
		sf.UnaryOp = &op
	}

	p.space()

	switch start := p.pos; p.peek() {
	case '[':
		return sf, p.unsupported(start, "aggregate initializer")
	case '{':
		return sf, p.unsupported(start, "interval")
	case '(':
		if err := p.enter(); err != nil {
			return sf, err
		}
		defer p.leave()

		p.pos++

		e, err := p.expression()
		if err != nil {
			return sf, err
		}

		if err := p.expect("simple_factor", ")"); err != nil {
			return sf, err
		}

		sf.Paren = &e

		return sf, nil
	}

	prim, err := p.primary()
	if err != nil {
		return sf, err
	}

	sf.Primary = &prim

	return sf, nil
}

func (p *parser) primary() (Primary, error) {
	p.space()

	start := p.pos

	switch r := p.peek(); {
	case r == '?':
		p.pos++

		return Primary{Constant: Indeterminate}, nil

	case r == '%' || r == '\'' || r == '"' || isDigit(r):
		lit, err := p.literal()
		if err != nil {
			return Primary{}, err
		}

		return Primary{Literal: &lit}, nil
	}

	if l, err := p.logicalLiteral(); err == nil {
		return Primary{Literal: &Literal{Kind: LiteralLogical, Logical: l}}, nil
	}

	s := p.mark()

	w, _, ok := p.word()
	if !ok {
		return Primary{}, p.failAt(start, "primary",
			"literal", "identifier", "(")
	}

	folded := Fold(w)

	switch folded {
	case "const_e":
		return Primary{Constant: ConstE}, nil
	case "pi":
		return Primary{Constant: Pi}, nil
	}

	if p.callFollows() &&
		(folded == "query" || !IsReserved(w) || isBuiltinFunction(folded)) {
		construct := "function call or entity constructor"
		if folded == "query" {
			construct = "query expression"
		}

		return Primary{}, p.unsupported(start, construct)
	}

	if folded == "self" {
		quals, err := p.qualifiers()
		if err != nil {
			return Primary{}, err
		}

		if len(quals) == 0 {
			return Primary{Constant: Self}, nil
		}

		return Primary{Ref: &Reference{Name: w, Qualifiers: quals}}, nil
	}

	if IsReserved(w) {
		p.reset(s)

		return Primary{}, p.failAt(start, "primary",
			"literal", "identifier", "(")
	}

	quals, err := p.qualifiers()
	if err != nil {
		return Primary{}, err
	}

	return Primary{Ref: &Reference{Name: w, Qualifiers: quals}}, nil
}

// callFollows reports whether the next token is an opening parenthesis.
func (p *parser) callFollows() bool {
	s := p.mark()
	defer p.reset(s)

	p.space()

	return p.peek() == '('
}

func (p *parser) qualifiers() ([]Qualifier, error) {
	var quals []Qualifier

	for {
		s := p.mark()

		switch {
		case p.symbol("."):
			id, _, err := p.identifier("attribute_qualifier")
			if err != nil {
				p.reset(s)

				return quals, nil
			}

			quals = append(quals, Qualifier{Kind: QualifyAttribute, Name: id})

		case p.symbol(`\`):
			id, _, err := p.identifier("group_qualifier")
			if err != nil {
				return nil, err
			}

			quals = append(quals, Qualifier{Kind: QualifyGroup, Name: id})

		case p.symbol("["):
			q, err := p.indexQualifier()
			if err != nil {
				return nil, err
			}

			quals = append(quals, q)

		default:
			return quals, nil
		}
	}
}

func (p *parser) indexQualifier() (Qualifier, error) {
	if err := p.enter(); err != nil {
		return Qualifier{}, err
	}
	defer p.leave()

	q := Qualifier{Kind: QualifyIndex}

	idx, err := p.simpleExpression()
	if err != nil {
		return q, err
	}

	q.Index = &idx

	if p.symbol(":") {
		upper, err := p.simpleExpression()
		if err != nil {
			return q, err
		}

		q.Upper = &upper
	}

	return q, p.expect("index_qualifier", "]")
}

func isBuiltinFunction(folded string) bool {
	_, ok := builtinFunctions[folded]

	return ok
}

//nolint:gochecknoglobals
var builtinFunctions = func() map[string]struct{} {
	names := strings.Fields(`
		abs acos asin atan blength cos exists exp format hibound hiindex
		length lobound log log2 log10 loindex nvl odd rolesof sin sizeof sqrt
		tan typeof usedin value value_in value_unique`)

	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}

	return m
}()
