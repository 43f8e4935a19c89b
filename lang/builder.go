package lang

import "math"

// Builder provides a programmatic API for constructing syntax trees without
// parsing source text. This is useful for generating EXPRESS schemas
// programmatically or for testing.
//
// Example:
//
//	b := lang.NewBuilder()
//	tree := b.Tree(
//	    b.Schema("geometry",
//	        b.Entity("point",
//	            b.Attribute("x", b.Simple(lang.SimpleReal)),
//	            b.Attribute("y", b.Simple(lang.SimpleReal)),
//	        ),
//	    ),
//	)
type Builder struct{}

// NewBuilder creates a new syntax tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Tree creates a [SyntaxTree].
func (b *Builder) Tree(schemas ...*Schema) *SyntaxTree {
	return &SyntaxTree{Schemas: schemas}
}

// Schema creates a [Schema] holding decls in order of kind.
func (b *Builder) Schema(name string, decls ...Declaration) *Schema {
	s := &Schema{Name: name}

	for _, d := range decls {
		switch d := d.(type) {
		case *TypeDecl:
			s.Types = append(s.Types, d)
		case *Entity:
			s.Entities = append(s.Entities, d)
		case *Function:
			s.Functions = append(s.Functions, d)
		}
	}

	return s
}

// Type creates a [TypeDecl].
func (b *Builder) Type(
	name string,
	underlying TypeRef,
	where ...WhereRule,
) *TypeDecl {
	return &TypeDecl{Name: name, Underlying: underlying, Where: where}
}

// Entity creates an [Entity] with explicit attributes.
func (b *Builder) Entity(name string, attrs ...*Attribute) *Entity {
	return &Entity{Name: name, Attributes: attrs}
}

// Subtype creates an [Entity] declared a subtype of supertypes.
func (b *Builder) Subtype(
	name string,
	supertypes []string,
	attrs ...*Attribute,
) *Entity {
	e := b.Entity(name, attrs...)

	for _, s := range supertypes {
		e.Supertypes = append(e.Supertypes, NamedRef{Name: s})
	}

	return e
}

// Attribute creates an explicit [Attribute].
func (b *Builder) Attribute(name string, t TypeRef) *Attribute {
	return &Attribute{Name: name, Type: t}
}

// Optional creates an OPTIONAL explicit [Attribute].
func (b *Builder) Optional(name string, t TypeRef) *Attribute {
	return &Attribute{Name: name, Optional: true, Type: t}
}

// Derive creates a [Derived] attribute.
func (b *Builder) Derive(name string, t TypeRef, e Expression) *Derived {
	return &Derived{Name: name, Type: t, Expr: e}
}

// Where creates a [WhereRule].
func (b *Builder) Where(label string, e Expression) WhereRule {
	return WhereRule{Label: label, Expr: e}
}

// Function creates a [Function] header.
func (b *Builder) Function(
	name string,
	result TypeRef,
	params ...*Param,
) *Function {
	return &Function{Name: name, Params: params, Result: result}
}

// Param creates a formal [Param].
func (b *Builder) Param(name string, t TypeRef) *Param {
	return &Param{Name: name, Type: t}
}

// Simple creates a simple [TypeRef].
func (b *Builder) Simple(t SimpleType) TypeRef {
	return TypeRef{Kind: TypeSimple, Simple: t}
}

// Named creates a [TypeRef] naming a type or entity.
func (b *Builder) Named(name string) TypeRef {
	return TypeRef{Kind: TypeNamed, Named: NamedRef{Name: name}}
}

// Select creates a SELECT [TypeRef].
func (b *Builder) Select(items ...string) TypeRef {
	t := TypeRef{Kind: TypeSelect}

	for _, item := range items {
		t.Select = append(t.Select, NamedRef{Name: item})
	}

	return t
}

// Enumeration creates an ENUMERATION [TypeRef].
func (b *Builder) Enumeration(items ...string) TypeRef {
	return TypeRef{Kind: TypeEnumeration, Items: items}
}

// Aggregate creates an aggregation [TypeRef]. Bounds are given as
// lower, upper; with none the aggregate is unbounded.
func (b *Builder) Aggregate(
	kind AggregateKind,
	elem TypeRef,
	bounds ...SimpleExpression,
) TypeRef {
	agg := &Aggregate{Kind: kind, Element: elem}

	if len(bounds) == 2 {
		agg.Lower, agg.Upper = &bounds[0], &bounds[1]
	}

	return TypeRef{Kind: TypeAggregate, Aggregate: agg}
}

// Bound creates a numeric aggregate bound. A negative bound is a unary minus
// applied to its magnitude.
func (b *Builder) Bound(n float64) SimpleExpression {
	return b.SimpleExpression(b.Real(n))
}

// Unbounded creates the indeterminate upper bound "?".
func (b *Builder) Unbounded() SimpleExpression {
	return b.SimpleExpression(b.Constant(Indeterminate))
}

// Real creates a real literal operand. Literals are never negative, so a
// negative v becomes a unary minus applied to -v.
func (b *Builder) Real(v float64) SimpleFactor {
	if math.Signbit(v) {
		return b.Apply(UnaryMinus, b.literal(Literal{Kind: LiteralReal, Real: -v}))
	}

	return b.literal(Literal{Kind: LiteralReal, Real: v})
}

// String creates a string literal operand.
func (b *Builder) String(s string) SimpleFactor {
	return b.literal(Literal{Kind: LiteralString, Text: s})
}

// Logical creates a logical literal operand.
func (b *Builder) Logical(l Logical) SimpleFactor {
	return b.literal(Literal{Kind: LiteralLogical, Logical: l})
}

func (b *Builder) literal(l Literal) SimpleFactor {
	return SimpleFactor{Primary: &Primary{Literal: &l}}
}

// Constant creates a built-in constant operand.
func (b *Builder) Constant(c BuiltinConstant) SimpleFactor {
	return SimpleFactor{Primary: &Primary{Constant: c}}
}

// Ref creates a reference operand.
func (b *Builder) Ref(name string, quals ...Qualifier) SimpleFactor {
	return SimpleFactor{Primary: &Primary{
		Ref: &Reference{Name: name, Qualifiers: quals},
	}}
}

// Attr creates an attribute qualifier.
func (b *Builder) Attr(name string) Qualifier {
	return Qualifier{Kind: QualifyAttribute, Name: name}
}

// Group creates a group qualifier.
func (b *Builder) Group(name string) Qualifier {
	return Qualifier{Kind: QualifyGroup, Name: name}
}

// Index creates an index qualifier.
func (b *Builder) Index(i SimpleExpression) Qualifier {
	return Qualifier{Kind: QualifyIndex, Index: &i}
}

// Apply prefixes sf with a unary operator. An operand that already has one
// is parenthesized first, since simple factors take a single prefix.
func (b *Builder) Apply(op UnaryOp, sf SimpleFactor) SimpleFactor {
	if sf.UnaryOp != nil {
		sf = paren(b.Expression(sf))
	}

	sf.UnaryOp = &op

	return sf
}

// Paren creates a parenthesized operand.
func (b *Builder) Paren(e Expression) SimpleFactor {
	return paren(e)
}

// Factor lifts sf to a single-operand [Factor].
func (b *Builder) Factor(sf SimpleFactor) Factor {
	return Unary[SimpleFactor, PowerOp](sf)
}

// Term lifts sf to a single-operand [Term].
func (b *Builder) Term(sf SimpleFactor) Term {
	return Unary[Factor, MulOp](b.Factor(sf))
}

// SimpleExpression lifts sf to a single-operand [SimpleExpression].
func (b *Builder) SimpleExpression(sf SimpleFactor) SimpleExpression {
	return Unary[Term, AddOp](b.Term(sf))
}

// Expression lifts sf to a single-operand [Expression].
func (b *Builder) Expression(sf SimpleFactor) Expression {
	return Unary[SimpleExpression, RelOp](b.SimpleExpression(sf))
}

// Compare creates the expression lhs op rhs.
func (b *Builder) Compare(op RelOp, lhs, rhs SimpleFactor) Expression {
	return Binary(op, b.SimpleExpression(lhs), b.SimpleExpression(rhs))
}

// Add creates the simple expression lhs op rhs.
func (b *Builder) Add(op AddOp, lhs, rhs SimpleFactor) SimpleExpression {
	return Binary(op, b.Term(lhs), b.Term(rhs))
}

// Mul creates the term lhs op rhs.
func (b *Builder) Mul(op MulOp, lhs, rhs SimpleFactor) Term {
	return Binary(op, b.Factor(lhs), b.Factor(rhs))
}

// Pow creates the factor lhs ** rhs.
func (b *Builder) Pow(lhs, rhs SimpleFactor) Factor {
	return Binary(Power, lhs, rhs)
}
