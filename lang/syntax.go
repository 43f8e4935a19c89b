package lang

//go:generate go tool stringer --linecomment --type TypeKind,SimpleType,AggregateKind --output syntax_string.go

// SyntaxTree is the parsed, not yet validated, form of an EXPRESS document.
// It is not modified after it is produced.
type SyntaxTree struct {
	Schemas []*Schema
}

// Schema is a SCHEMA declaration. Remarks holds every remark found in the
// schema's source text, including those between declarations.
type Schema struct {
	Name      string
	Offset    int
	Types     []*TypeDecl
	Entities  []*Entity
	Functions []*Function
	Remarks   []Remark
}

// Declaration is a named schema-level declaration: *TypeDecl, *Entity, or
// *Function.
type Declaration interface {
	Ident() string
	declaration()
}

// TypeDecl is a TYPE declaration.
type TypeDecl struct {
	Name       string
	Offset     int
	Underlying TypeRef
	Where      []WhereRule
}

// Entity is an ENTITY declaration.
type Entity struct {
	Name       string
	Offset     int
	Abstract   bool
	Supertypes []NamedRef // SUBTYPE OF
	Attributes []*Attribute
	Derived    []*Derived
	Where      []WhereRule
}

// Function is a FUNCTION declaration. Only the header is parsed.
type Function struct {
	Name   string
	Offset int
	Params []*Param
	Result TypeRef
}

// Ident returns the declared name.
func (t *TypeDecl) Ident() string { return t.Name }

// Ident returns the declared name.
func (e *Entity) Ident() string { return e.Name }

// Ident returns the declared name.
func (f *Function) Ident() string { return f.Name }

func (*TypeDecl) declaration() {}
func (*Entity) declaration()   {}
func (*Function) declaration() {}

// Attribute is an explicit entity attribute.
type Attribute struct {
	Name     string
	Offset   int
	Optional bool
	Type     TypeRef
}

// Derived is a derived entity attribute.
type Derived struct {
	Name   string
	Offset int
	Type   TypeRef
	Expr   Expression
}

// Param is a formal function parameter.
type Param struct {
	Name   string
	Offset int
	Type   TypeRef
}

// WhereRule is a domain rule. Label is empty for an unlabeled rule.
type WhereRule struct {
	Label string
	Expr  Expression
}

// NamedRef is a reference by name to a type or entity.
type NamedRef struct {
	Name   string
	Offset int
}

// TypeKind identifies which fields of a [TypeRef] are set.
type TypeKind int

const (
	TypeSimple      TypeKind = iota + 1 // simple
	TypeNamed                           // named
	TypeSelect                          // select
	TypeEnumeration                     // enumeration
	TypeAggregate                       // aggregate
	TypeGeneric                         // generic
)

// MarshalText implements encoding.TextMarshaler.
func (k TypeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// TypeRef is the type of an attribute, parameter, or TYPE declaration.
type TypeRef struct {
	Kind TypeKind

	// TypeSimple
	Simple SimpleType
	Width  *SimpleExpression // precision of REAL, width of STRING or BINARY
	Fixed  bool

	// TypeNamed
	Named NamedRef

	// TypeSelect
	Select []NamedRef

	// TypeEnumeration
	Items []string

	// TypeAggregate
	Aggregate *Aggregate

	// TypeGeneric
	Label string
}

// SimpleType is one of the built-in EXPRESS types.
type SimpleType int

const (
	SimpleInteger SimpleType = iota + 1 // INTEGER
	SimpleReal                          // REAL
	SimpleNumber                        // NUMBER
	SimpleBoolean                       // BOOLEAN
	SimpleLogical                       // LOGICAL
	SimpleString                        // STRING
	SimpleBinary                        // BINARY
)

//nolint:gochecknoglobals
var simpleTypes = []SimpleType{
	SimpleInteger, SimpleReal, SimpleNumber, SimpleBoolean,
	SimpleLogical, SimpleString, SimpleBinary,
}

// MarshalText implements encoding.TextMarshaler.
func (t SimpleType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// AggregateKind is one of the aggregation types. AggregateGeneric is valid
// only in parameter types.
type AggregateKind int

const (
	AggregateSet     AggregateKind = iota + 1 // SET
	AggregateBag                              // BAG
	AggregateList                             // LIST
	AggregateArray                            // ARRAY
	AggregateGeneric                          // AGGREGATE
)

// MarshalText implements encoding.TextMarshaler.
func (k AggregateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Aggregate is an aggregation type. Bounds are kept as unevaluated
// expressions; both are nil when no bound specification is given.
type Aggregate struct {
	Kind     AggregateKind
	Lower    *SimpleExpression
	Upper    *SimpleExpression
	Optional bool
	Unique   bool
	Label    string // type label of a generic AGGREGATE
	Element  TypeRef
}
