package semantics

import "github.com/ardnew/espr/lang"

// IR is the legalized form of a document. Every type reference in it is
// bound to the path of an existing definition.
type IR struct {
	Schemas []Schema `json:"schemas" yaml:"schemas"`
}

// Schema is a legalized SCHEMA declaration.
type Schema struct {
	Name      string        `json:"name"                yaml:"name"`
	Path      Path          `json:"path"                yaml:"path"`
	Types     []TypeDecl    `json:"types,omitempty"     yaml:"types,omitempty"`
	Entities  []Entity      `json:"entities,omitempty"  yaml:"entities,omitempty"`
	Functions []Function    `json:"functions,omitempty" yaml:"functions,omitempty"`
	Remarks   []lang.Remark `json:"remarks,omitempty"   yaml:"remarks,omitempty"`
}

// TypeDecl is a legalized TYPE declaration.
type TypeDecl struct {
	Name       string      `json:"name"            yaml:"name"`
	Path       Path        `json:"path"            yaml:"path"`
	Underlying Type        `json:"underlying"      yaml:"underlying"`
	Where      []WhereRule `json:"where,omitempty" yaml:"where,omitempty"`
}

// Entity is a legalized ENTITY declaration.
type Entity struct {
	Name       string      `json:"name"                 yaml:"name"`
	Path       Path        `json:"path"                 yaml:"path"`
	Abstract   bool        `json:"abstract,omitempty"   yaml:"abstract,omitempty"`
	Supertypes []Ref       `json:"supertypes,omitempty" yaml:"supertypes,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Derived    []Derived   `json:"derived,omitempty"    yaml:"derived,omitempty"`
	Where      []WhereRule `json:"where,omitempty"      yaml:"where,omitempty"`
}

// Attribute is a legalized explicit attribute.
type Attribute struct {
	Name     string `json:"name"               yaml:"name"`
	Path     Path   `json:"path"               yaml:"path"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Type     Type   `json:"type"               yaml:"type"`
}

// Derived is a legalized derived attribute. The expression is kept as
// syntax; Text is its EXPRESS rendering.
type Derived struct {
	Name string          `json:"name" yaml:"name"`
	Path Path            `json:"path" yaml:"path"`
	Type Type            `json:"type" yaml:"type"`
	Text string          `json:"expr" yaml:"expr"`
	Expr lang.Expression `json:"-"    yaml:"-"`
}

// WhereRule is a domain rule. The expression is kept as syntax; Text is its
// EXPRESS rendering.
type WhereRule struct {
	Label string          `json:"label,omitempty" yaml:"label,omitempty"`
	Text  string          `json:"expr"            yaml:"expr"`
	Expr  lang.Expression `json:"-"               yaml:"-"`
}

// Function is a legalized FUNCTION header.
type Function struct {
	Name   string  `json:"name"             yaml:"name"`
	Path   Path    `json:"path"             yaml:"path"`
	Params []Param `json:"params,omitempty" yaml:"params,omitempty"`
	Result Type    `json:"result"           yaml:"result"`
}

// Param is a legalized formal parameter.
type Param struct {
	Name string `json:"name" yaml:"name"`
	Path Path   `json:"path" yaml:"path"`
	Type Type   `json:"type" yaml:"type"`
}

// Ref is a bound reference to a type or entity definition.
type Ref struct {
	Kind Kind `json:"kind" yaml:"kind"`
	Path Path `json:"path" yaml:"path"`
}

// Type is a legalized type. Which fields are set depends on Kind, as for
// [lang.TypeRef]. Width and aggregate bounds are kept as EXPRESS text.
type Type struct {
	Kind        lang.TypeKind   `json:"kind"                  yaml:"kind"`
	Simple      lang.SimpleType `json:"simple,omitempty"      yaml:"simple,omitempty"`
	Width       string          `json:"width,omitempty"       yaml:"width,omitempty"`
	Fixed       bool            `json:"fixed,omitempty"       yaml:"fixed,omitempty"`
	Ref         *Ref            `json:"ref,omitempty"         yaml:"ref,omitempty"`
	Select      []Ref           `json:"select,omitempty"      yaml:"select,omitempty"`
	Enumeration []string        `json:"enumeration,omitempty" yaml:"enumeration,omitempty"`
	Aggregate   *Aggregate      `json:"aggregate,omitempty"   yaml:"aggregate,omitempty"`
	Label       string          `json:"label,omitempty"       yaml:"label,omitempty"`
}

// Aggregate is a legalized aggregation type.
type Aggregate struct {
	Kind     lang.AggregateKind `json:"kind"               yaml:"kind"`
	Lower    string             `json:"lower,omitempty"    yaml:"lower,omitempty"`
	Upper    string             `json:"upper,omitempty"    yaml:"upper,omitempty"`
	Optional bool               `json:"optional,omitempty" yaml:"optional,omitempty"`
	Unique   bool               `json:"unique,omitempty"   yaml:"unique,omitempty"`
	Label    string             `json:"label,omitempty"    yaml:"label,omitempty"`
	Element  Type               `json:"element"            yaml:"element"`
}

// Lookup returns the schema named name, ignoring case.
func (ir *IR) Lookup(name string) (*Schema, bool) {
	for i := range ir.Schemas {
		if lang.Fold(ir.Schemas[i].Name) == lang.Fold(name) {
			return &ir.Schemas[i], true
		}
	}

	return nil, false
}

// Entity returns the entity named name, ignoring case.
func (s *Schema) Entity(name string) (*Entity, bool) {
	for i := range s.Entities {
		if lang.Fold(s.Entities[i].Name) == lang.Fold(name) {
			return &s.Entities[i], true
		}
	}

	return nil, false
}

// Type returns the type declaration named name, ignoring case.
func (s *Schema) Type(name string) (*TypeDecl, bool) {
	for i := range s.Types {
		if lang.Fold(s.Types[i].Name) == lang.Fold(name) {
			return &s.Types[i], true
		}
	}

	return nil, false
}
