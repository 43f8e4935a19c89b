// Package semantics legalizes an EXPRESS [lang.SyntaxTree] into an
// intermediate representation ([IR]) in which every type reference is bound
// to its definition.
//
// Legalization has two passes. [NewNamespace] registers every named
// declaration of the document under its qualified path: schemas at the root,
// then types, entities, and functions within their schema, then attributes
// and parameters within their entity or function. Only then does [Legalize]
// walk the tree and resolve each reference with [Scope.Resolve], searching
// from the innermost scope outward. Because the namespace is complete before
// any lookup, declarations may refer to each other in any order, including
// mutually.
//
// EXPRESS identifiers are case-insensitive. Namespace keys are case-folded;
// IR paths keep the spelling of the declaration.
//
// Legalization is all or nothing: the first unresolved reference or duplicate
// declaration is returned and no IR is produced.
//
// # Example
//
//	tree, err := lang.Parse(src)
//	if err != nil {
//		return err
//	}
//
//	ir, err := semantics.Legalize(tree)
//	if errors.Is(err, semantics.ErrTypeNotFound) {
//		// report the missing name
//	}
package semantics
