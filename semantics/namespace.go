package semantics

//go:generate go tool stringer --linecomment --type Kind --output namespace_string.go

import (
	"iter"
	"slices"
	"strings"

	"github.com/ardnew/espr/lang"
)

// Kind is the kind of a named declaration.
type Kind int

const (
	KindSchema    Kind = iota + 1 // schema
	KindType                      // type
	KindEntity                    // entity
	KindFunction                  // function
	KindAttribute                 // attribute
	KindParameter                 // parameter
)

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Path is a qualified name, outermost component first.
type Path []string

// String joins the components with dots.
func (p Path) String() string { return strings.Join(p, ".") }

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Child returns a new path extending p by name. p is not modified.
func (p Path) Child(name string) Path {
	return append(slices.Clip(p), name)
}

// key is the case-folded form of p used to index a [Namespace].
func (p Path) key() string { return lang.Fold(p.String()) }

// Definition is a declaration registered in a [Namespace]. Exactly one of
// the node fields is set, according to Kind. An attribute is either
// explicit (Attribute) or derived (Derived).
type Definition struct {
	Kind   Kind
	Path   Path
	Offset int

	Schema    *lang.Schema
	Type      *lang.TypeDecl
	Entity    *lang.Entity
	Function  *lang.Function
	Attribute *lang.Attribute
	Derived   *lang.Derived
	Param     *lang.Param
}

// Name returns the last component of the definition's path.
func (d *Definition) Name() string {
	if len(d.Path) == 0 {
		return ""
	}

	return d.Path[len(d.Path)-1]
}

// Namespace maps qualified paths to the declarations of a document. It is
// built once by [NewNamespace] and is read-only thereafter, so it may be
// shared by concurrent resolvers.
type Namespace struct {
	defs     map[string]*Definition
	children map[string][]*Definition
	order    []*Definition
}

// NewNamespace registers every named declaration of tree. A name declared
// twice in the same scope fails with a [*DuplicateDeclarationError].
func NewNamespace(tree *lang.SyntaxTree) (*Namespace, error) {
	ns := &Namespace{
		defs:     make(map[string]*Definition),
		children: make(map[string][]*Definition),
	}

	for _, s := range tree.Schemas {
		if err := ns.registerSchema(s); err != nil {
			return nil, err
		}
	}

	return ns, nil
}

func (ns *Namespace) registerSchema(s *lang.Schema) error {
	scope := Path{s.Name}

	err := ns.define(&Definition{
		Kind: KindSchema, Path: scope, Offset: s.Offset, Schema: s,
	})
	if err != nil {
		return err
	}

	for _, t := range s.Types {
		err := ns.define(&Definition{
			Kind: KindType, Path: scope.Child(t.Name), Offset: t.Offset, Type: t,
		})
		if err != nil {
			return err
		}
	}

	for _, e := range s.Entities {
		path := scope.Child(e.Name)

		err := ns.define(&Definition{
			Kind: KindEntity, Path: path, Offset: e.Offset, Entity: e,
		})
		if err != nil {
			return err
		}

		for _, a := range e.Attributes {
			err := ns.define(&Definition{
				Kind: KindAttribute, Path: path.Child(a.Name), Offset: a.Offset,
				Attribute: a,
			})
			if err != nil {
				return err
			}
		}

		for _, d := range e.Derived {
			err := ns.define(&Definition{
				Kind: KindAttribute, Path: path.Child(d.Name), Offset: d.Offset,
				Derived: d,
			})
			if err != nil {
				return err
			}
		}
	}

	for _, f := range s.Functions {
		path := scope.Child(f.Name)

		err := ns.define(&Definition{
			Kind: KindFunction, Path: path, Offset: f.Offset, Function: f,
		})
		if err != nil {
			return err
		}

		for _, p := range f.Params {
			err := ns.define(&Definition{
				Kind: KindParameter, Path: path.Child(p.Name), Offset: p.Offset,
				Param: p,
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (ns *Namespace) define(def *Definition) error {
	key := def.Path.key()

	if prev, ok := ns.defs[key]; ok {
		return &DuplicateDeclarationError{
			Name:           def.Name(),
			Scope:          def.Path[:len(def.Path)-1],
			Kind:           def.Kind,
			Previous:       prev.Kind,
			Offset:         def.Offset,
			PreviousOffset: prev.Offset,
		}
	}

	parent := def.Path[:len(def.Path)-1].key()

	ns.defs[key] = def
	ns.children[parent] = append(ns.children[parent], def)
	ns.order = append(ns.order, def)

	return nil
}

// Lookup returns the definition registered at path. The comparison ignores
// case.
func (ns *Namespace) Lookup(path Path) (*Definition, bool) {
	def, ok := ns.defs[path.key()]

	return def, ok
}

// Len returns the number of registered definitions.
func (ns *Namespace) Len() int { return len(ns.order) }

// All returns an iterator over all definitions in registration order.
func (ns *Namespace) All() iter.Seq[*Definition] {
	return func(yield func(*Definition) bool) {
		for _, def := range ns.order {
			if !yield(def) {
				return
			}
		}
	}
}

// Children returns the definitions declared directly within scope, in
// registration order.
func (ns *Namespace) Children(scope Path) []*Definition {
	return slices.Clone(ns.children[scope.key()])
}
