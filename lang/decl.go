package lang

import (
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Parse parses an EXPRESS document made of SCHEMA declarations.
//
// Within a schema, TYPE, ENTITY, and FUNCTION declarations are read; only the
// header of a FUNCTION is kept. Other declarations (RULE, PROCEDURE,
// CONSTANT, USE, REFERENCE) and the INVERSE and UNIQUE entity clauses fail
// with an error matching [ErrUnsupported]. The whole input must be consumed.
func Parse(input string, opts ...Option) (*SyntaxTree, error) {
	p := newParser(input, opts...)

	p.logger.TraceContext(p.ctx, "parse start",
		slog.String("production", "syntax"),
		slog.Int("length", len(input)))

	tree, err := p.document()
	if err != nil {
		p.logger.TraceContext(p.ctx, "parse failed",
			slog.String("production", "syntax"),
			slog.Any("error", err))

		return nil, err
	}

	p.logger.TraceContext(p.ctx, "parse complete",
		slog.String("production", "syntax"),
		slog.Int("schemas", len(tree.Schemas)),
		slog.Int("remarks", len(p.remarks)))

	return tree, nil
}

// ParseReader parses an EXPRESS document read from r.
func ParseReader(r io.Reader, opts ...Option) (*SyntaxTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(string(data), opts...)
}

func (p *parser) document() (*SyntaxTree, error) {
	tree := &SyntaxTree{}

	for {
		first := len(p.remarks)

		p.space()

		if p.eof() {
			// Remarks after the last schema belong to it.
			if n := len(tree.Schemas); n > 0 {
				last := tree.Schemas[n-1]
				last.Remarks = append(last.Remarks, p.remarks[first:]...)
			}

			return tree, nil
		}

		sc, err := p.schema()
		if err != nil {
			return nil, err
		}

		sc.Remarks = slices.Clone(p.remarks[first:])
		tree.Schemas = append(tree.Schemas, sc)

		p.logger.TraceContext(p.ctx, "schema parsed",
			slog.String("schema", sc.Name),
			slog.Int("types", len(sc.Types)),
			slog.Int("entities", len(sc.Entities)),
			slog.Int("functions", len(sc.Functions)))
	}
}

// peekKeyword returns the first of kws found at the next token, or "".
// Nothing is consumed.
func (p *parser) peekKeyword(kws ...string) string {
	s := p.mark()
	defer p.reset(s)

	p.space()

	for _, kw := range kws {
		if p.atKeyword(kw) {
			return kw
		}
	}

	return ""
}

// end parses END_xxx ';'.
func (p *parser) end(production, kw string) error {
	if err := p.expectKeyword(production, kw); err != nil {
		return err
	}

	return p.expect(production, ";")
}

func (p *parser) schema() (*Schema, error) {
	const production = "schema_decl"

	if err := p.expectKeyword(production, "SCHEMA"); err != nil {
		return nil, err
	}

	name, offset, err := p.identifier(production)
	if err != nil {
		return nil, err
	}

	// schema_version_id
	if p.space(); p.peek() == '\'' {
		if _, err := p.stringLiteral(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(production, ";"); err != nil {
		return nil, err
	}

	sc := &Schema{Name: name, Offset: offset}

	for {
		if p.keyword("END_SCHEMA") {
			return sc, p.expect(production, ";")
		}

		switch {
		case p.keyword("TYPE"):
			td, err := p.typeDecl()
			if err != nil {
				return nil, err
			}

			sc.Types = append(sc.Types, td)

		case p.keyword("ENTITY"):
			e, err := p.entityDecl()
			if err != nil {
				return nil, err
			}

			sc.Entities = append(sc.Entities, e)

		case p.keyword("FUNCTION"):
			f, err := p.functionDecl()
			if err != nil {
				return nil, err
			}

			sc.Functions = append(sc.Functions, f)

		default:
			if kw := p.peekKeyword(
				"USE", "REFERENCE", "CONSTANT", "RULE", "PROCEDURE",
				"SUBTYPE_CONSTRAINT",
			); kw != "" {
				p.space()

				return nil, p.unsupported(p.pos,
					strings.ToLower(kw)+" declaration")
			}

			return nil, p.failNext(production,
				"TYPE", "ENTITY", "FUNCTION", "END_SCHEMA")
		}
	}
}

func (p *parser) typeDecl() (*TypeDecl, error) {
	const production = "type_decl"

	name, offset, err := p.identifier(production)
	if err != nil {
		return nil, err
	}

	if err := p.expect(production, "="); err != nil {
		return nil, err
	}

	underlying, err := p.underlyingType()
	if err != nil {
		return nil, err
	}

	if err := p.expect(production, ";"); err != nil {
		return nil, err
	}

	where, err := p.whereClause()
	if err != nil {
		return nil, err
	}

	if err := p.end(production, "END_TYPE"); err != nil {
		return nil, err
	}

	return &TypeDecl{
		Name:       name,
		Offset:     offset,
		Underlying: underlying,
		Where:      where,
	}, nil
}

func (p *parser) underlyingType() (TypeRef, error) {
	const production = "underlying_type"

	if kw := p.peekKeyword("EXTENSIBLE", "GENERIC_ENTITY"); kw != "" {
		p.space()

		return TypeRef{}, p.unsupported(p.pos, "extensible type")
	}

	switch {
	case p.keyword("SELECT"):
		if err := p.expect(production, "("); err != nil {
			return TypeRef{}, err
		}

		var items []NamedRef

		for {
			id, offset, err := p.identifier(production)
			if err != nil {
				return TypeRef{}, err
			}

			items = append(items, NamedRef{Name: id, Offset: offset})

			if !p.symbol(",") {
				break
			}
		}

		if err := p.expect(production, ")"); err != nil {
			return TypeRef{}, err
		}

		return TypeRef{Kind: TypeSelect, Select: items}, nil

	case p.keyword("ENUMERATION"):
		if err := p.expectKeyword(production, "OF"); err != nil {
			return TypeRef{}, err
		}

		if err := p.expect(production, "("); err != nil {
			return TypeRef{}, err
		}

		items, err := p.identifierList(production)
		if err != nil {
			return TypeRef{}, err
		}

		if err := p.expect(production, ")"); err != nil {
			return TypeRef{}, err
		}

		return TypeRef{Kind: TypeEnumeration, Items: items}, nil
	}

	return p.typeRef(false)
}

// typeRef parses a simple, named, or aggregation type. With param set, the
// generalized types GENERIC and AGGREGATE are also accepted.
func (p *parser) typeRef(param bool) (TypeRef, error) {
	const production = "parameter_type"

	for _, st := range simpleTypes {
		if p.keyword(st.String()) {
			return p.simpleTypeRef(st)
		}
	}

	for _, kind := range []AggregateKind{
		AggregateSet, AggregateBag, AggregateList, AggregateArray,
	} {
		if p.keyword(kind.String()) {
			return p.aggregateType(kind, param)
		}
	}

	if param {
		switch {
		case p.keyword("GENERIC"):
			label, err := p.typeLabel()
			if err != nil {
				return TypeRef{}, err
			}

			return TypeRef{Kind: TypeGeneric, Label: label}, nil

		case p.keyword("AGGREGATE"):
			return p.aggregateType(AggregateGeneric, param)
		}
	}

	id, offset, err := p.identifier(production)
	if err != nil {
		return TypeRef{}, err
	}

	return TypeRef{Kind: TypeNamed, Named: NamedRef{Name: id, Offset: offset}}, nil
}

// typeLabel parses an optional ':' type_label.
func (p *parser) typeLabel() (string, error) {
	if !p.labelColon() {
		return "", nil
	}

	label, _, err := p.identifier("type_label")

	return label, err
}

func (p *parser) simpleTypeRef(st SimpleType) (TypeRef, error) {
	const production = "simple_types"

	t := TypeRef{Kind: TypeSimple, Simple: st}

	switch st {
	case SimpleReal, SimpleString, SimpleBinary:
	default:
		return t, nil
	}

	if !p.symbol("(") {
		return t, nil
	}

	width, err := p.simpleExpression()
	if err != nil {
		return t, err
	}

	t.Width = &width

	if err := p.expect(production, ")"); err != nil {
		return t, err
	}

	if st != SimpleReal {
		t.Fixed = p.keyword("FIXED")
	}

	return t, nil
}

func (p *parser) aggregateType(kind AggregateKind, param bool) (TypeRef, error) {
	production := strings.ToLower(kind.String()) + "_type"
	agg := &Aggregate{Kind: kind}

	if kind == AggregateGeneric {
		label, err := p.typeLabel()
		if err != nil {
			return TypeRef{}, err
		}

		agg.Label = label
	} else if p.symbol("[") {
		lower, err := p.simpleExpression()
		if err != nil {
			return TypeRef{}, err
		}

		if err := p.expect(production, ":"); err != nil {
			return TypeRef{}, err
		}

		upper, err := p.simpleExpression()
		if err != nil {
			return TypeRef{}, err
		}

		if err := p.expect(production, "]"); err != nil {
			return TypeRef{}, err
		}

		agg.Lower, agg.Upper = &lower, &upper
	} else if kind == AggregateArray {
		return TypeRef{}, p.failNext(production, quote("["))
	}

	if err := p.expectKeyword(production, "OF"); err != nil {
		return TypeRef{}, err
	}

	agg.Optional = p.keyword("OPTIONAL")
	agg.Unique = p.keyword("UNIQUE")

	elem, err := p.typeRef(param)
	if err != nil {
		return TypeRef{}, err
	}

	agg.Element = elem

	return TypeRef{Kind: TypeAggregate, Aggregate: agg}, nil
}

func (p *parser) entityDecl() (*Entity, error) {
	const production = "entity_decl"

	name, offset, err := p.identifier(production)
	if err != nil {
		return nil, err
	}

	e := &Entity{Name: name, Offset: offset}

	if err := p.entityHeader(e); err != nil {
		return nil, err
	}

	if err := p.expect(production, ";"); err != nil {
		return nil, err
	}

	for p.peekKeyword(
		"DERIVE", "INVERSE", "UNIQUE", "WHERE", "END_ENTITY",
	) == "" {
		attrs, err := p.explicitAttributes()
		if err != nil {
			return nil, err
		}

		e.Attributes = append(e.Attributes, attrs...)
	}

	if p.keyword("DERIVE") {
		for p.peekKeyword("INVERSE", "UNIQUE", "WHERE", "END_ENTITY") == "" {
			d, err := p.derivedAttribute()
			if err != nil {
				return nil, err
			}

			e.Derived = append(e.Derived, d)
		}
	}

	if kw := p.peekKeyword("INVERSE", "UNIQUE"); kw != "" {
		p.space()

		return nil, p.unsupported(p.pos, strings.ToLower(kw)+" clause")
	}

	if e.Where, err = p.whereClause(); err != nil {
		return nil, err
	}

	if err := p.end(production, "END_ENTITY"); err != nil {
		return nil, err
	}

	return e, nil
}

// entityHeader parses [ABSTRACT [SUPERTYPE]] [SUBTYPE OF (id {, id})].
func (p *parser) entityHeader(e *Entity) error {
	const production = "entity_head"

	if p.keyword("ABSTRACT") {
		e.Abstract = true

		p.keyword("SUPERTYPE")
	} else if p.peekKeyword("SUPERTYPE") != "" {
		p.space()

		return p.unsupported(p.pos, "supertype constraint")
	}

	if p.peekKeyword("OF") != "" {
		p.space()

		return p.unsupported(p.pos, "supertype constraint")
	}

	if !p.keyword("SUBTYPE") {
		return nil
	}

	if err := p.expectKeyword(production, "OF"); err != nil {
		return err
	}

	if err := p.expect(production, "("); err != nil {
		return err
	}

	for {
		id, offset, err := p.identifier(production)
		if err != nil {
			return err
		}

		e.Supertypes = append(e.Supertypes, NamedRef{Name: id, Offset: offset})

		if !p.symbol(",") {
			break
		}
	}

	return p.expect(production, ")")
}

// attributeNames parses attribute_decl {',' attribute_decl} ':'.
func (p *parser) attributeNames(production string) ([]NamedRef, error) {
	var names []NamedRef

	for {
		if p.peekKeyword("SELF") != "" {
			p.space()

			return nil, p.unsupported(p.pos, "redeclared attribute")
		}

		id, offset, err := p.identifier(production)
		if err != nil {
			return nil, err
		}

		names = append(names, NamedRef{Name: id, Offset: offset})

		if !p.symbol(",") {
			break
		}
	}

	return names, p.expect(production, ":")
}

func (p *parser) explicitAttributes() ([]*Attribute, error) {
	const production = "explicit_attr"

	names, err := p.attributeNames(production)
	if err != nil {
		return nil, err
	}

	optional := p.keyword("OPTIONAL")

	t, err := p.typeRef(false)
	if err != nil {
		return nil, err
	}

	if err := p.expect(production, ";"); err != nil {
		return nil, err
	}

	attrs := make([]*Attribute, len(names))
	for i, n := range names {
		attrs[i] = &Attribute{
			Name:     n.Name,
			Offset:   n.Offset,
			Optional: optional,
			Type:     t,
		}
	}

	return attrs, nil
}

func (p *parser) derivedAttribute() (*Derived, error) {
	const production = "derived_attr"

	if p.peekKeyword("SELF") != "" {
		p.space()

		return nil, p.unsupported(p.pos, "redeclared attribute")
	}

	name, offset, err := p.identifier(production)
	if err != nil {
		return nil, err
	}

	if err := p.expect(production, ":"); err != nil {
		return nil, err
	}

	t, err := p.typeRef(false)
	if err != nil {
		return nil, err
	}

	if err := p.expect(production, ":="); err != nil {
		return nil, err
	}

	e, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(production, ";"); err != nil {
		return nil, err
	}

	return &Derived{Name: name, Offset: offset, Type: t, Expr: e}, nil
}

// labelColon matches a ':' that does not start ':=', ':=:', or ':<>:'.
func (p *parser) labelColon() bool {
	s := p.mark()

	if !p.symbol(":") {
		return false
	}

	if r := p.peek(); r == '=' || r == '<' {
		p.reset(s)

		return false
	}

	return true
}

func (p *parser) whereClause() ([]WhereRule, error) {
	const production = "where_clause"

	if !p.keyword("WHERE") {
		return nil, nil
	}

	var rules []WhereRule

	for {
		var rule WhereRule

		s := p.mark()
		if id, _, err := p.identifier(production); err == nil && p.labelColon() {
			rule.Label = id
		} else {
			p.reset(s)
		}

		e, err := p.expression()
		if err != nil {
			return nil, err
		}

		rule.Expr = e
		rules = append(rules, rule)

		if err := p.expect(production, ";"); err != nil {
			return nil, err
		}

		if p.peekKeyword("END_TYPE", "END_ENTITY") != "" {
			return rules, nil
		}
	}
}

func (p *parser) functionDecl() (*Function, error) {
	const production = "function_head"

	name, offset, err := p.identifier(production)
	if err != nil {
		return nil, err
	}

	f := &Function{Name: name, Offset: offset}

	if p.symbol("(") {
		for {
			names, err := p.attributeNames("formal_parameter")
			if err != nil {
				return nil, err
			}

			t, err := p.typeRef(true)
			if err != nil {
				return nil, err
			}

			for _, n := range names {
				f.Params = append(f.Params, &Param{
					Name:   n.Name,
					Offset: n.Offset,
					Type:   t,
				})
			}

			if !p.symbol(";") {
				break
			}
		}

		if err := p.expect(production, ")"); err != nil {
			return nil, err
		}
	}

	if err := p.expect(production, ":"); err != nil {
		return nil, err
	}

	if f.Result, err = p.typeRef(true); err != nil {
		return nil, err
	}

	if err := p.expect(production, ";"); err != nil {
		return nil, err
	}

	if err := p.skipAlgorithm(); err != nil {
		return nil, err
	}

	return f, p.end(production, "END_FUNCTION")
}

// skipAlgorithm skips a function body up to, not including, the matching
// END_FUNCTION. Nested function declarations are balanced; string literals
// and remarks are scanned so their contents cannot end the body early.
func (p *parser) skipAlgorithm() error {
	depth := 0

	for {
		p.space()

		switch r := p.peek(); {
		case p.eof():
			return p.fail("function_decl", "END_FUNCTION")

		case r == '\'' || r == '"':
			if _, err := p.stringLiteral(); err != nil {
				return err
			}

		case isIdentifierStart(r):
			if p.atKeyword("END_FUNCTION") {
				if depth == 0 {
					return nil
				}

				depth--
			} else if p.atKeyword("FUNCTION") {
				depth++
			}

			p.word()

		default:
			p.advance()
		}
	}
}
