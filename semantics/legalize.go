package semantics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/espr/lang"
	"github.com/ardnew/espr/log"
)

// Option configures legalization.
type Option func(*config)

type config struct {
	ctx         context.Context //nolint:containedctx
	logger      log.Logger
	concurrency int
}

// WithLogger sets the structured logger. Each schema is logged at TRACE and
// the summary at DEBUG. The zero logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithContext sets the context checked before each schema is legalized and
// passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithConcurrency sets how many schemas are legalized at once. Values less
// than 2 legalize sequentially.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = max(1, n)
	}
}

func makeConfig(opts ...Option) config {
	c := config{
		ctx:         context.Background(),
		concurrency: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// Legalize resolves every type reference of tree and returns the resulting
// [IR].
//
// The namespace is built first, so a duplicate declaration is reported
// before any reference is resolved. Schemas are then legalized, concurrently
// if so configured. Results are merged in schema order, and when several
// schemas fail the error of the first one in document order is returned, so
// the outcome never depends on scheduling. On error the IR is nil.
func Legalize(tree *lang.SyntaxTree, opts ...Option) (*IR, error) {
	c := makeConfig(opts...)
	start := time.Now()

	ns, err := NewNamespace(tree)
	if err != nil {
		c.logger.DebugContext(c.ctx, "namespace failed", slog.Any("error", err))

		return nil, err
	}

	c.logger.TraceContext(c.ctx, "namespace built",
		slog.Int("definitions", ns.Len()))

	var schemas []Schema

	if c.concurrency < 2 {
		schemas, err = legalizeSequential(c, ns, tree.Schemas)
	} else {
		schemas, err = legalizeConcurrent(c, ns, tree.Schemas)
	}

	if err != nil {
		c.logger.DebugContext(c.ctx, "legalization failed",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)))

		return nil, err
	}

	c.logger.DebugContext(c.ctx, "legalization complete",
		slog.Int("schemas", len(schemas)),
		slog.Int("definitions", ns.Len()),
		slog.Duration("elapsed", time.Since(start)))

	return &IR{Schemas: schemas}, nil
}

// legalizeSequential legalizes schemas in order and stops at the first
// failure.
func legalizeSequential(c config, ns *Namespace, in []*lang.Schema) ([]Schema, error) {
	out := make([]Schema, len(in))

	for i, s := range in {
		if err := c.ctx.Err(); err != nil {
			return nil, err
		}

		var err error

		out[i], err = legalizeSchema(ns, Root(), s)

		c.logger.TraceContext(c.ctx, "schema legalized",
			slog.String("schema", s.Name),
			slog.Bool("ok", err == nil))

		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// legalizeConcurrent legalizes schemas on up to c.concurrency workers. The
// error reported is the one from the earliest failing schema.
func legalizeConcurrent(c config, ns *Namespace, in []*lang.Schema) ([]Schema, error) {
	var (
		out  = make([]Schema, len(in))
		errs = make([]error, len(in))
		g    errgroup.Group
	)

	g.SetLimit(c.concurrency)

	for i, s := range in {
		g.Go(func() error {
			if err := c.ctx.Err(); err != nil {
				errs[i] = err

				return nil
			}

			out[i], errs[i] = legalizeSchema(ns, Root(), s)

			c.logger.TraceContext(c.ctx, "schema legalized",
				slog.String("schema", s.Name),
				slog.Bool("ok", errs[i] == nil))

			return nil
		})
	}

	_ = g.Wait()

	if err := firstError(errs); err != nil {
		return nil, err
	}

	return out, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

func legalizeSchema(ns *Namespace, scope Scope, s *lang.Schema) (Schema, error) {
	scope = scope.Extend(s.Name)

	out := Schema{
		Name:    s.Name,
		Path:    scope.Path(),
		Remarks: s.Remarks,
	}

	for _, t := range s.Types {
		td, err := legalizeTypeDecl(ns, scope, t)
		if err != nil {
			return Schema{}, err
		}

		out.Types = append(out.Types, td)
	}

	for _, e := range s.Entities {
		ent, err := legalizeEntity(ns, scope, e)
		if err != nil {
			return Schema{}, err
		}

		out.Entities = append(out.Entities, ent)
	}

	for _, f := range s.Functions {
		fn, err := legalizeFunction(ns, scope, f)
		if err != nil {
			return Schema{}, err
		}

		out.Functions = append(out.Functions, fn)
	}

	return out, nil
}

func legalizeTypeDecl(ns *Namespace, scope Scope, t *lang.TypeDecl) (TypeDecl, error) {
	inner := scope.Extend(t.Name)

	underlying, err := legalizeTypeRef(ns, inner, t.Underlying)
	if err != nil {
		return TypeDecl{}, err
	}

	return TypeDecl{
		Name:       t.Name,
		Path:       inner.Path(),
		Underlying: underlying,
		Where:      legalizeWhere(t.Where),
	}, nil
}

func legalizeEntity(ns *Namespace, scope Scope, e *lang.Entity) (Entity, error) {
	inner := scope.Extend(e.Name)

	out := Entity{
		Name:     e.Name,
		Path:     inner.Path(),
		Abstract: e.Abstract,
		Where:    legalizeWhere(e.Where),
	}

	for _, st := range e.Supertypes {
		ref, err := resolveRef(ns, scope, st, KindEntity)
		if err != nil {
			return Entity{}, err
		}

		out.Supertypes = append(out.Supertypes, ref)
	}

	for _, a := range e.Attributes {
		attr, err := legalizeAttribute(ns, inner, a)
		if err != nil {
			return Entity{}, err
		}

		out.Attributes = append(out.Attributes, attr)
	}

	for _, d := range e.Derived {
		der, err := legalizeDerived(ns, inner, d)
		if err != nil {
			return Entity{}, err
		}

		out.Derived = append(out.Derived, der)
	}

	return out, nil
}

func legalizeAttribute(ns *Namespace, scope Scope, a *lang.Attribute) (Attribute, error) {
	t, err := legalizeTypeRef(ns, scope, a.Type)
	if err != nil {
		return Attribute{}, err
	}

	return Attribute{
		Name:     a.Name,
		Path:     scope.Extend(a.Name).Path(),
		Optional: a.Optional,
		Type:     t,
	}, nil
}

func legalizeDerived(ns *Namespace, scope Scope, d *lang.Derived) (Derived, error) {
	t, err := legalizeTypeRef(ns, scope, d.Type)
	if err != nil {
		return Derived{}, err
	}

	return Derived{
		Name: d.Name,
		Path: scope.Extend(d.Name).Path(),
		Type: t,
		Text: d.Expr.String(),
		Expr: d.Expr,
	}, nil
}

func legalizeFunction(ns *Namespace, scope Scope, f *lang.Function) (Function, error) {
	inner := scope.Extend(f.Name)

	out := Function{Name: f.Name, Path: inner.Path()}

	for _, p := range f.Params {
		t, err := legalizeTypeRef(ns, inner, p.Type)
		if err != nil {
			return Function{}, err
		}

		out.Params = append(out.Params, Param{
			Name: p.Name,
			Path: inner.Extend(p.Name).Path(),
			Type: t,
		})
	}

	result, err := legalizeTypeRef(ns, inner, f.Result)
	if err != nil {
		return Function{}, err
	}

	out.Result = result

	return out, nil
}

// legalizeTypeRef binds the named references within t. Width and bound
// expressions are kept as text without evaluation.
func legalizeTypeRef(ns *Namespace, scope Scope, t lang.TypeRef) (Type, error) {
	out := Type{Kind: t.Kind}

	invalid := func(reason string) error {
		return &InvalidTypeError{Scope: scope.Path(), Kind: t.Kind, Reason: reason}
	}

	switch t.Kind {
	case lang.TypeSimple:
		if t.Simple < lang.SimpleInteger || t.Simple > lang.SimpleBinary {
			return Type{}, invalid("unknown simple type " + t.Simple.String())
		}

		out.Simple, out.Fixed = t.Simple, t.Fixed

		if t.Width != nil {
			out.Width = t.Width.String()
		}

	case lang.TypeNamed:
		ref, err := resolveRef(ns, scope, t.Named, KindType, KindEntity)
		if err != nil {
			return Type{}, err
		}

		out.Ref = &ref

	case lang.TypeSelect:
		for _, item := range t.Select {
			ref, err := resolveRef(ns, scope, item, KindType, KindEntity)
			if err != nil {
				return Type{}, err
			}

			out.Select = append(out.Select, ref)
		}

	case lang.TypeEnumeration:
		out.Enumeration = t.Items

	case lang.TypeAggregate:
		if t.Aggregate == nil {
			return Type{}, invalid("missing aggregate")
		}

		if k := t.Aggregate.Kind; k < lang.AggregateSet || k > lang.AggregateGeneric {
			return Type{}, invalid("unknown aggregate kind " + k.String())
		}

		elem, err := legalizeTypeRef(ns, scope, t.Aggregate.Element)
		if err != nil {
			return Type{}, err
		}

		agg := &Aggregate{
			Kind:     t.Aggregate.Kind,
			Optional: t.Aggregate.Optional,
			Unique:   t.Aggregate.Unique,
			Label:    t.Aggregate.Label,
			Element:  elem,
		}

		if t.Aggregate.Lower != nil && t.Aggregate.Upper != nil {
			agg.Lower = t.Aggregate.Lower.String()
			agg.Upper = t.Aggregate.Upper.String()
		}

		out.Aggregate = agg

	case lang.TypeGeneric:
		out.Label = t.Label

	default:
		return Type{}, invalid("unknown type kind")
	}

	return out, nil
}

func legalizeWhere(rules []lang.WhereRule) []WhereRule {
	if len(rules) == 0 {
		return nil
	}

	out := make([]WhereRule, len(rules))
	for i, r := range rules {
		out[i] = WhereRule{Label: r.Label, Text: r.Expr.String(), Expr: r.Expr}
	}

	return out
}

// resolveRef resolves a named reference and records its source offset in any
// resulting [*TypeNotFoundError].
func resolveRef(ns *Namespace, scope Scope, ref lang.NamedRef, kinds ...Kind) (Ref, error) {
	def, err := scope.Resolve(ns, ref.Name, kinds...)
	if err != nil {
		var tnf *TypeNotFoundError
		if errors.As(err, &tnf) {
			tnf.Offset = ref.Offset
		}

		return Ref{}, err
	}

	return Ref{Kind: def.Kind, Path: def.Path}, nil
}
