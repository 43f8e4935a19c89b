package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geometrySchema = `
(* "geometry" Planar geometry *)
SCHEMA geometry '{ iso standard 10303 part(42) }';

TYPE length_measure = REAL;
WHERE
  positive : SELF >= 0.0;
END_TYPE;

TYPE label = STRING(64) FIXED;
END_TYPE;

TYPE shape_kind = ENUMERATION OF (circle, square);
END_TYPE;

TYPE shape_select = SELECT (circle, square);
END_TYPE;

ENTITY shape
  ABSTRACT SUPERTYPE;
  name : OPTIONAL label;
END_ENTITY;

ENTITY point;
  x, y : length_measure; -- coordinates
  tags : SET [0 : ?] OF UNIQUE label;
DERIVE
  norm : REAL := x ** 2 + y ** 2;
WHERE
  x >= 0.0;
END_ENTITY;

ENTITY circle
  SUBTYPE OF (shape);
  centre : point;
  radius : length_measure;
  grid : ARRAY [1 : 3] OF OPTIONAL LIST OF point;
END_ENTITY;

ENTITY square SUBTYPE OF (shape);
  corners : LIST [4 : 4] OF point;
END_ENTITY;

FUNCTION area(s : shape; scale : REAL) : REAL;
  LOCAL a : REAL := 0.0; END_LOCAL;
  IF 'END_FUNCTION' = '' THEN RETURN(0.0); END_IF;
  (* END_FUNCTION in a remark *)
  RETURN(a * scale);
END_FUNCTION;

FUNCTION first(items : AGGREGATE : t OF GENERIC : t) : GENERIC : t;
  RETURN(items[1]);
END_FUNCTION;

END_SCHEMA;
`

func TestParse_Document(t *testing.T) {
	tree, err := Parse(geometrySchema)
	require.NoError(t, err)
	require.Len(t, tree.Schemas, 1)

	s := tree.Schemas[0]
	assert.Equal(t, "geometry", s.Name)
	require.Len(t, s.Types, 4)
	require.Len(t, s.Entities, 4)
	require.Len(t, s.Functions, 2)

	lm := s.Types[0]
	assert.Equal(t, "length_measure", lm.Name)
	assert.Equal(t, TypeSimple, lm.Underlying.Kind)
	assert.Equal(t, SimpleReal, lm.Underlying.Simple)
	require.Len(t, lm.Where, 1)
	assert.Equal(t, "positive", lm.Where[0].Label)
	assert.Equal(t, "SELF >= 0", lm.Where[0].Expr.String())

	assert.Equal(t, "STRING(64) FIXED", s.Types[1].Underlying.String())
	assert.Equal(t, []string{"circle", "square"}, s.Types[2].Underlying.Items)
	assert.Equal(t, "SELECT (circle, square)", s.Types[3].Underlying.String())

	shape := s.Entities[0]
	assert.True(t, shape.Abstract)
	require.Len(t, shape.Attributes, 1)
	assert.True(t, shape.Attributes[0].Optional)

	point := s.Entities[1]
	require.Len(t, point.Attributes, 3)
	assert.Equal(t, "x", point.Attributes[0].Name)
	assert.Equal(t, "y", point.Attributes[1].Name)
	assert.Equal(t, point.Attributes[0].Type, point.Attributes[1].Type)
	assert.Equal(t, "SET [0 : ?] OF UNIQUE label", point.Attributes[2].Type.String())
	require.Len(t, point.Derived, 1)
	assert.Equal(t, "x ** 2 + y ** 2", point.Derived[0].Expr.String())
	require.Len(t, point.Where, 1)
	assert.Empty(t, point.Where[0].Label)

	circle := s.Entities[2]
	require.Len(t, circle.Supertypes, 1)
	assert.Equal(t, "shape", circle.Supertypes[0].Name)
	assert.Equal(t,
		"ARRAY [1 : 3] OF OPTIONAL LIST OF point",
		circle.Attributes[2].Type.String())

	area := s.Functions[0]
	require.Len(t, area.Params, 2)
	assert.Equal(t, "REAL", area.Result.String())

	first := s.Functions[1]
	assert.Equal(t, "AGGREGATE : t OF GENERIC : t", first.Params[0].Type.String())
	assert.Equal(t, "GENERIC : t", first.Result.String())

	var texts []string
	for _, r := range s.Remarks {
		texts = append(texts, r.Text)
	}

	assert.Equal(t, []string{
		"Planar geometry",
		"coordinates",
		"END_FUNCTION in a remark",
	}, texts)
	assert.Equal(t, "geometry", s.Remarks[0].Tag)
}

func TestParse_Offsets(t *testing.T) {
	src := "SCHEMA s;\nENTITY e;\n  a : INTEGER;\nEND_ENTITY;\nEND_SCHEMA;"

	tree, err := Parse(src)
	require.NoError(t, err)

	e := tree.Schemas[0].Entities[0]
	assert.Equal(t, Position{Offset: 17, Line: 2, Column: 8}, PositionOf(src, e.Offset))
	assert.Equal(t, Position{Offset: 22, Line: 3, Column: 3},
		PositionOf(src, e.Attributes[0].Offset))
}

func TestParse_MultipleSchemas(t *testing.T) {
	src := `
SCHEMA a; -- in a
END_SCHEMA;
SCHEMA b;
  TYPE t = INTEGER; END_TYPE;
END_SCHEMA;
-- trailing`

	tree, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, tree.Schemas, 2)

	require.Len(t, tree.Schemas[0].Remarks, 1)
	assert.Equal(t, "in a", tree.Schemas[0].Remarks[0].Text)
	require.Len(t, tree.Schemas[1].Remarks, 1)
	assert.Equal(t, "trailing", tree.Schemas[1].Remarks[0].Text)
}

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	tree, err := Parse("schema s; entity e; a : integer; end_entity; End_Schema;")
	require.NoError(t, err)
	assert.Equal(t, SimpleInteger, tree.Schemas[0].Entities[0].Attributes[0].Type.Simple)
}

func TestParse_Empty(t *testing.T) {
	tree, err := Parse("  (* nothing *)  ")
	require.NoError(t, err)
	assert.Empty(t, tree.Schemas)
}

func TestParse_Unsupported(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		construct string
	}{
		{name: "use", body: "USE FROM other;", construct: "use declaration"},
		{name: "reference", body: "REFERENCE FROM other;", construct: "reference declaration"},
		{name: "constant", body: "CONSTANT c : INTEGER := 1; END_CONSTANT;", construct: "constant declaration"},
		{name: "rule", body: "RULE r FOR (e); WHERE TRUE; END_RULE;", construct: "rule declaration"},
		{name: "procedure", body: "PROCEDURE p; END_PROCEDURE;", construct: "procedure declaration"},
		{
			name:      "inverse",
			body:      "ENTITY e; INVERSE x : e FOR y; END_ENTITY;",
			construct: "inverse clause",
		},
		{
			name:      "unique",
			body:      "ENTITY e; a : INTEGER; UNIQUE ur : a; END_ENTITY;",
			construct: "unique clause",
		},
		{
			name:      "supertype constraint",
			body:      "ENTITY e SUPERTYPE OF (ONEOF (a, b)); END_ENTITY;",
			construct: "supertype constraint",
		},
		{
			name:      "extensible select",
			body:      "TYPE t = EXTENSIBLE SELECT; END_TYPE;",
			construct: "extensible type",
		},
		{
			name:      "redeclared attribute",
			body:      "ENTITY e SUBTYPE OF (f); SELF\\f.a : INTEGER; END_ENTITY;",
			construct: "redeclared attribute",
		},
		{
			name:      "function call in where rule",
			body:      "TYPE t = INTEGER; WHERE SIZEOF(SELF) > 0; END_TYPE;",
			construct: "function call or entity constructor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("SCHEMA s;\n" + tt.body + "\nEND_SCHEMA;")
			require.ErrorIs(t, err, ErrUnsupported)

			var ue *UnsupportedError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.construct, ue.Construct)
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		production string
	}{
		{name: "missing schema name", input: "SCHEMA ;", production: "schema_decl"},
		{name: "missing end", input: "SCHEMA s;", production: "schema_decl"},
		{name: "stray token", input: "SCHEMA s; x END_SCHEMA;", production: "schema_decl"},
		{name: "reserved type name", input: "SCHEMA s; TYPE real = INTEGER; END_TYPE; END_SCHEMA;", production: "type_decl"},
		{name: "array without bounds", input: "SCHEMA s; TYPE t = ARRAY OF INTEGER; END_TYPE; END_SCHEMA;", production: "array_type"},
		{name: "generic outside parameter", input: "SCHEMA s; TYPE t = GENERIC; END_TYPE; END_SCHEMA;", production: "parameter_type"},
		{name: "unterminated function", input: "SCHEMA s; FUNCTION f : INTEGER; RETURN(1);", production: "function_decl"},
		{name: "missing semicolon", input: "SCHEMA s; ENTITY e; a : INTEGER END_ENTITY; END_SCHEMA;", production: "explicit_attr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.ErrorIs(t, err, ErrSyntax)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.production, se.Production)
		})
	}
}

func TestParseReader(t *testing.T) {
	tree, err := ParseReader(strings.NewReader("SCHEMA s; END_SCHEMA;"))
	require.NoError(t, err)
	require.Len(t, tree.Schemas, 1)

	boom := errors.New("boom")

	_, err = ParseReader(iotest.ErrReader(boom))
	require.ErrorIs(t, err, ErrReadInput)
	require.ErrorIs(t, err, boom)
}

func TestFormat_RoundTrip(t *testing.T) {
	tree, err := Parse(geometrySchema)
	require.NoError(t, err)

	var first bytes.Buffer
	require.NoError(t, tree.Format(&first, 2))

	again, err := Parse(first.String())
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, again.Format(&second, 2))

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "  ENTITY circle\n    SUBTYPE OF (shape);\n")
	assert.Contains(t, first.String(), "    norm : REAL := x ** 2 + y ** 2;\n")
	assert.Contains(t, first.String(), "    positive : SELF >= 0;\n")
	assert.Contains(t, first.String(), "  FUNCTION area(s : shape; scale : REAL) : REAL;\n  END_FUNCTION;\n")

	assert.True(t, strings.HasPrefix(first.String(),
		"(*\"geometry\" Planar geometry *)\nSCHEMA geometry;\n"), first.String())
	assert.Contains(t, first.String(), "\n  -- coordinates\n  ENTITY circle\n")

	remarkTexts := func(tree *SyntaxTree) []string {
		var out []string
		for _, r := range tree.Schemas[0].Remarks {
			out = append(out, r.String())
		}

		return out
	}
	assert.Equal(t, remarkTexts(tree), remarkTexts(again))
}

func TestFormat_Remarks(t *testing.T) {
	tree, err := Parse("SCHEMA s; (* doc *) TYPE t = INTEGER; END_TYPE; -- tail\nEND_SCHEMA;")
	require.NoError(t, err)

	want := `SCHEMA s;

  (* doc *)
  TYPE t = INTEGER;
  END_TYPE;

  -- tail
END_SCHEMA;
`
	assert.Equal(t, want, tree.String())

	again, err := Parse(want)
	require.NoError(t, err)
	assert.Equal(t, want, again.String())
}

func TestFormat_Builder(t *testing.T) {
	b := NewBuilder()
	tree := b.Tree(
		b.Schema("geometry",
			b.Type("distance", b.Simple(SimpleReal),
				b.Where("positive", b.Compare(RelGreaterEqual,
					b.Constant(Self), b.Real(0)))),
			b.Entity("point",
				b.Attribute("x", b.Named("distance")),
				b.Optional("y", b.Named("distance")),
			),
			b.Function("norm", b.Simple(SimpleReal),
				b.Param("p", b.Named("point"))),
		),
	)

	want := `SCHEMA geometry;

  TYPE distance = REAL;
  WHERE
    positive : SELF >= 0;
  END_TYPE;

  ENTITY point;
    x : distance;
    y : OPTIONAL distance;
  END_ENTITY;

  FUNCTION norm(p : point) : REAL;
  END_FUNCTION;

END_SCHEMA;
`
	assert.Equal(t, want, tree.String())

	parsed, err := Parse(want)
	require.NoError(t, err)
	assert.Equal(t, want, parsed.String())
}

func TestPrint(t *testing.T) {
	tree, err := Parse(`SCHEMA s;
ENTITY e SUBTYPE OF (f); a : OPTIONAL INTEGER; END_ENTITY; -- note
END_SCHEMA;`)
	require.NoError(t, err)

	var buf bytes.Buffer
	tree.Print(&buf)

	assert.Equal(t, `Schema: s
  Entity: e
    Subtype of: f
    Optional attribute: a: INTEGER
  Remark: 69: -- note
`, buf.String())
}

func TestTypeRef_String(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		ref  TypeRef
		want string
	}{
		{ref: b.Simple(SimpleBoolean), want: "BOOLEAN"},
		{ref: b.Named("point"), want: "point"},
		{ref: b.Enumeration("red", "green"), want: "ENUMERATION OF (red, green)"},
		{ref: b.Select("a", "b"), want: "SELECT (a, b)"},
		{
			ref:  b.Aggregate(AggregateBag, b.Simple(SimpleInteger)),
			want: "BAG OF INTEGER",
		},
		{
			ref:  b.Aggregate(AggregateList, b.Named("p"), b.Bound(1), b.Unbounded()),
			want: "LIST [1 : ?] OF p",
		},
		{ref: TypeRef{}, want: "<invalid type>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}
}
