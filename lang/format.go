package lang

import (
	"io"
	"slices"
	"strconv"
	"strings"
)

// String renders t in EXPRESS syntax.
func (t TypeRef) String() string {
	switch t.Kind {
	case TypeSimple:
		s := t.Simple.String()

		if t.Width != nil {
			s += "(" + t.Width.String() + ")"

			if t.Fixed {
				s += " FIXED"
			}
		}

		return s

	case TypeNamed:
		return t.Named.Name

	case TypeSelect:
		names := make([]string, len(t.Select))
		for i, n := range t.Select {
			names[i] = n.Name
		}

		return "SELECT (" + strings.Join(names, ", ") + ")"

	case TypeEnumeration:
		return "ENUMERATION OF (" + strings.Join(t.Items, ", ") + ")"

	case TypeAggregate:
		return t.Aggregate.String()

	case TypeGeneric:
		if t.Label != "" {
			return "GENERIC : " + t.Label
		}

		return "GENERIC"

	default:
		return "<invalid type>"
	}
}

// String renders a in EXPRESS syntax.
func (a *Aggregate) String() string {
	if a == nil {
		return "<nil aggregate>"
	}

	var sb strings.Builder

	sb.WriteString(a.Kind.String())

	if a.Label != "" {
		sb.WriteString(" : " + a.Label)
	}

	if a.Lower != nil && a.Upper != nil {
		sb.WriteString(" [" + a.Lower.String() + " : " + a.Upper.String() + "]")
	}

	sb.WriteString(" OF ")

	if a.Optional {
		sb.WriteString("OPTIONAL ")
	}

	if a.Unique {
		sb.WriteString("UNIQUE ")
	}

	sb.WriteString(a.Element.String())

	return sb.String()
}

// Format writes the syntax tree as EXPRESS source text. Declarations are
// indented by indent spaces per level.
//
// Remarks are written at declaration granularity: those before a SCHEMA
// keyword precede it, those within a schema precede the next declaration in
// source order, and the rest precede END_SCHEMA. Formatting the parse of the
// output reproduces it exactly.
func (t *SyntaxTree) Format(w io.Writer, indent int) error {
	f := &formatter{w: w, tab: strings.Repeat(" ", indent)}

	for i, s := range t.Schemas {
		if i > 0 {
			f.line(0, "")
		}

		f.schema(s)
	}

	return f.err
}

// String returns the syntax tree as EXPRESS source text.
func (t *SyntaxTree) String() string {
	var sb strings.Builder

	_ = t.Format(&sb, 2)

	return sb.String()
}

// formatter writes EXPRESS text, remembering the first write error.
type formatter struct {
	w   io.Writer
	tab string
	err error
}

func (f *formatter) line(depth int, s string) {
	if f.err != nil {
		return
	}

	if s != "" {
		s = strings.Repeat(f.tab, depth) + s
	}

	_, f.err = io.WriteString(f.w, s+"\n")
}

func (f *formatter) schema(s *Schema) {
	header, lead, trailing := placeRemarks(s)

	f.remarks(0, header)
	f.line(0, "SCHEMA "+s.Name+";")

	for _, t := range s.Types {
		f.line(0, "")
		f.remarks(1, lead[t.Offset])
		f.typeDecl(t)
	}

	for _, e := range s.Entities {
		f.line(0, "")
		f.remarks(1, lead[e.Offset])
		f.entity(e)
	}

	for _, fn := range s.Functions {
		f.line(0, "")
		f.remarks(1, lead[fn.Offset])
		f.function(fn)
	}

	f.line(0, "")
	f.remarks(1, trailing)
	f.line(0, "END_SCHEMA;")
}

func (f *formatter) remarks(depth int, rs []Remark) {
	for _, r := range rs {
		f.line(depth, r.String())
	}
}

// placeRemarks splits the remarks of s into those before the SCHEMA keyword,
// those leading each declaration (keyed by declaration offset), and those
// after the last declaration.
func placeRemarks(s *Schema) (header []Remark, lead map[int][]Remark, trailing []Remark) {
	starts := make([]int, 0, len(s.Types)+len(s.Entities)+len(s.Functions))

	for _, t := range s.Types {
		starts = append(starts, t.Offset)
	}

	for _, e := range s.Entities {
		starts = append(starts, e.Offset)
	}

	for _, fn := range s.Functions {
		starts = append(starts, fn.Offset)
	}

	slices.Sort(starts)

	lead = make(map[int][]Remark)

	for _, r := range s.Remarks {
		if r.Offset < s.Offset {
			header = append(header, r)

			continue
		}

		i, _ := slices.BinarySearch(starts, r.Offset)
		if i < len(starts) && starts[i] > r.Offset {
			lead[starts[i]] = append(lead[starts[i]], r)
		} else {
			trailing = append(trailing, r)
		}
	}

	return header, lead, trailing
}

func (f *formatter) typeDecl(t *TypeDecl) {
	f.line(1, "TYPE "+t.Name+" = "+t.Underlying.String()+";")
	f.where(t.Where)
	f.line(1, "END_TYPE;")
}

func (f *formatter) entity(e *Entity) {
	head := "ENTITY " + e.Name

	if e.Abstract {
		head += "\n" + strings.Repeat(f.tab, 2) + "ABSTRACT SUPERTYPE"
	}

	if len(e.Supertypes) > 0 {
		names := make([]string, len(e.Supertypes))
		for i, n := range e.Supertypes {
			names[i] = n.Name
		}

		head += "\n" + strings.Repeat(f.tab, 2) +
			"SUBTYPE OF (" + strings.Join(names, ", ") + ")"
	}

	f.line(1, head+";")

	for _, a := range e.Attributes {
		opt := ""
		if a.Optional {
			opt = "OPTIONAL "
		}

		f.line(2, a.Name+" : "+opt+a.Type.String()+";")
	}

	if len(e.Derived) > 0 {
		f.line(1, "DERIVE")

		for _, d := range e.Derived {
			f.line(2, d.Name+" : "+d.Type.String()+" := "+d.Expr.String()+";")
		}
	}

	f.where(e.Where)
	f.line(1, "END_ENTITY;")
}

func (f *formatter) where(rules []WhereRule) {
	if len(rules) == 0 {
		return
	}

	f.line(1, "WHERE")

	for _, r := range rules {
		if r.Label != "" {
			f.line(2, r.Label+" : "+r.Expr.String()+";")
		} else {
			f.line(2, r.Expr.String()+";")
		}
	}
}

func (f *formatter) function(fn *Function) {
	head := "FUNCTION " + fn.Name

	if len(fn.Params) > 0 {
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Name + " : " + p.Type.String()
		}

		head += "(" + strings.Join(params, "; ") + ")"
	}

	f.line(1, head+" : "+fn.Result.String()+";")
	f.line(1, "END_FUNCTION;")
}

// Print writes an indented dump of the syntax tree.
func (t *SyntaxTree) Print(w io.Writer) {
	for _, s := range t.Schemas {
		s.Print(w, 0)
	}
}

func writer(w io.Writer) func(eol string, item ...string) {
	return func(eol string, item ...string) {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)
		if err != nil {
			panic(err)
		}
	}
}

// Print writes a formatted representation of the schema.
func (s *Schema) Print(w io.Writer, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)
	put("\n", prefix+"Schema", s.Name)

	for _, t := range s.Types {
		put("\n", prefix+"  Type", t.Name, t.Underlying.String())

		for _, r := range t.Where {
			printWhere(put, prefix+"    ", r)
		}
	}

	for _, e := range s.Entities {
		put("\n", prefix+"  Entity", e.Name)

		for _, st := range e.Supertypes {
			put("\n", prefix+"    Subtype of", st.Name)
		}

		for _, a := range e.Attributes {
			kind := "Attribute"
			if a.Optional {
				kind = "Optional attribute"
			}

			put("\n", prefix+"    "+kind, a.Name, a.Type.String())
		}

		for _, d := range e.Derived {
			put("\n", prefix+"    Derived", d.Name, d.Type.String(), d.Expr.String())
		}

		for _, r := range e.Where {
			printWhere(put, prefix+"    ", r)
		}
	}

	for _, f := range s.Functions {
		put("\n", prefix+"  Function", f.Name, f.Result.String())

		for _, p := range f.Params {
			put("\n", prefix+"    Param", p.Name, p.Type.String())
		}
	}

	for _, r := range s.Remarks {
		put("\n", prefix+"  Remark", strconv.Itoa(r.Offset), r.String())
	}
}

func printWhere(put func(string, ...string), prefix string, r WhereRule) {
	if r.Label != "" {
		put("\n", prefix+"Where", r.Label, r.Expr.String())
	} else {
		put("\n", prefix+"Where", r.Expr.String())
	}
}
