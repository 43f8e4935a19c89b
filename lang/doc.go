// Package lang parses EXPRESS (ISO 10303-11) source text.
//
// The package has two layers. The expression layer is a set of entry points,
// one per grammar production, that each return the parsed value, the remarks
// encountered while producing it, and the unparsed residual text. The
// declaration layer ([Parse]) reads whole documents made of SCHEMA, TYPE,
// ENTITY, and FUNCTION declarations into a [SyntaxTree].
//
// No parser generator. The grammar is small enough for a hand-written
// recursive descent parser with ordered alternation; a failed alternative
// rewinds the input and drops the remarks it collected.
//
// # Grammar
//
// Expressions, loosest binding first:
//
//	expression        = simple_expression [ rel_op_extended simple_expression ]
//	simple_expression = term { add_like_op term }
//	term              = factor { multiplication_like_op factor }
//	factor            = simple_factor [ '**' simple_factor ]
//	simple_factor     = [ unary_op ] ( primary | '(' expression ')' )
//	primary           = literal | built_in_constant | reference { qualifier }
//	literal           = logical_literal | real_literal | string_literal
//
// Repeated applications of add_like_op and multiplication_like_op fold to the
// left; the accumulated left operand becomes a parenthesized simple factor, so
// "1 - 2 + 3" is read as "(1 - 2) + 3".
//
// Aggregate initializers, intervals, query expressions, entity constructors,
// function calls, and binary literals are recognized and rejected with an
// error matching [ErrUnsupported].
//
// # Remarks
//
// Embedded remarks "(* ... *)" nest; tail remarks "-- ..." run to the end of
// the line. Both may start with a tag in double quotes:
//
//	(*"geometry.point" Cartesian point *)
//	-- "geometry.point.x" abscissa
//
// # Example
//
//	res, err := lang.ParseExpression("a.x ** 2 + 1 (* offset *)")
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(res.Value)           // a.x ** 2 + 1
//	fmt.Println(res.Remarks[0].Text) // offset
package lang
