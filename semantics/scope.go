package semantics

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/espr/lang"
)

// maxSuggestions limits the names offered by a [TypeNotFoundError].
const maxSuggestions = 3

// Scope is a position in the namespace hierarchy: the root, a schema, or a
// declaration within a schema. Scopes are values; Extend returns a new scope
// and never modifies its receiver.
type Scope struct {
	path Path
}

// Root returns the document scope, which contains the schemas.
func Root() Scope { return Scope{} }

// Extend returns the scope nested in s under name.
func (s Scope) Extend(name string) Scope {
	return Scope{path: s.path.Child(name)}
}

// Path returns the qualified path of s.
func (s Scope) Path() Path { return slices.Clone(s.path) }

// String returns the dotted path of s, or "<root>" for the root scope.
func (s Scope) String() string {
	if len(s.path) == 0 {
		return "<root>"
	}

	return s.path.String()
}

// Resolve finds the definition name refers to when seen from s.
//
// A simple name is looked up in s, then in each enclosing scope out to the
// root; the first definition found whose kind is one of kinds wins. With no
// kinds, any kind is accepted. A dotted name is an absolute path from the
// root.
func (s Scope) Resolve(ns *Namespace, name string, kinds ...Kind) (*Definition, error) {
	accept := func(def *Definition) bool {
		return len(kinds) == 0 || slices.Contains(kinds, def.Kind)
	}

	if strings.Contains(name, ".") {
		if def, ok := ns.Lookup(strings.Split(name, ".")); ok && accept(def) {
			return def, nil
		}
	} else {
		for i := len(s.path); i >= 0; i-- {
			if def, ok := ns.Lookup(s.path[:i].Child(name)); ok && accept(def) {
				return def, nil
			}
		}
	}

	return nil, &TypeNotFoundError{
		Name:        name,
		Scope:       s.Path(),
		Suggestions: s.suggest(ns, name, accept),
	}
}

// suggest ranks the names visible from s that accept allows by their fuzzy
// similarity to name. Inner declarations shadow outer ones of the same name
// and kind.
func (s Scope) suggest(
	ns *Namespace,
	name string,
	accept func(*Definition) bool,
) []string {
	var (
		seen       = make(map[string]struct{})
		candidates []string
	)

	for i := len(s.path); i >= 0; i-- {
		for _, def := range ns.Children(s.path[:i]) {
			key := lang.Fold(def.Name())
			if _, ok := seen[key]; ok || !accept(def) {
				continue
			}

			seen[key] = struct{}{}
			candidates = append(candidates, def.Name())
		}
	}

	matches := fuzzy.Find(name, candidates)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}

	return suggestions
}
