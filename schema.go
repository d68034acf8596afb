package schema

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/brandenbyers/schema/ast"
)

// Schema wraps an AST node, parameterized by the decoded type. Construction
// is cheap; the parse/encode and guard interpreters compile lazily, once per
// schema, and are safe for concurrent use afterwards.
type Schema[T any] struct {
	node ast.AST

	compileOnce sync.Once
	fn          parseFunc

	guardOnce sync.Once
	guard     guardFunc
}

// New wraps an AST node as a typed schema. The caller asserts that the
// node's decoded shape is T; Decode checks it at runtime.
func New[T any](node ast.AST) *Schema[T] {
	if node == nil {
		panic("schema: nil AST")
	}
	return &Schema[T]{node: node}
}

// AST returns the underlying node.
func (s *Schema[T]) AST() ast.AST { return s.node }

func (s *Schema[T]) compiled() parseFunc {
	s.compileOnce.Do(func() { s.fn = compile(s.node) })
	return s.fn
}

func (s *Schema[T]) compiledGuard() guardFunc {
	s.guardOnce.Do(func() { s.guard = compileGuard(s.node) })
	return s.guard
}

// Decode validates an unknown input and produces the typed value. Failures
// are returned as a *Failure carrying the failure tree.
func (s *Schema[T]) Decode(ctx context.Context, v any, opts ...ParseOptions) (T, error) {
	var zero T
	out, errs := s.compiled()(ctx, v, lastOption(opts), dirDecode)
	if len(errs) > 0 {
		return zero, NewFailure(errs)
	}
	if out == nil {
		// null/undefined decode to the zero of T (nil for any-typed schemas)
		return zero, nil
	}
	tv, ok := out.(T)
	if !ok {
		// A mismatch here is a schema/type-parameter mismatch, not bad data.
		return zero, errors.Errorf("schema: decoded %T does not match schema type parameter", out)
	}
	return tv, nil
}

// Encode is the inverse of Decode: it maps a typed value back to the wire
// shape, running transform encodes and re-verifying refinements.
func (s *Schema[T]) Encode(ctx context.Context, v T, opts ...ParseOptions) (any, error) {
	out, errs := s.compiled()(ctx, v, lastOption(opts), dirEncode)
	if len(errs) > 0 {
		return nil, NewFailure(errs)
	}
	return out, nil
}

// Is reports whether v is structurally in the schema's input domain. For
// schemas containing transforms this tests the raw (from) side.
func (s *Schema[T]) Is(v any) bool { return s.compiledGuard()(v) }

// Asserts runs a decode and reports the failure tree as an error; the value
// is discarded.
func (s *Schema[T]) Asserts(ctx context.Context, v any) error {
	_, errs := s.compiled()(ctx, v, ParseOptions{}, dirDecode)
	if len(errs) > 0 {
		return NewFailure(errs)
	}
	return nil
}

// ---- package-level entry points ----

// Decode validates v against s.
func Decode[T any](ctx context.Context, s *Schema[T], v any, opts ...ParseOptions) (T, error) {
	return s.Decode(ctx, v, opts...)
}

// Encode maps a typed value back through s.
func Encode[T any](ctx context.Context, s *Schema[T], v T, opts ...ParseOptions) (any, error) {
	return s.Encode(ctx, v, opts...)
}

// Is returns the structural predicate of s.
func Is[T any](s *Schema[T]) func(v any) bool { return s.Is }

// MustDecode is Decode or panic; the panic message renders the failure tree.
func MustDecode[T any](ctx context.Context, s *Schema[T], v any, opts ...ParseOptions) T {
	out, err := s.Decode(ctx, v, opts...)
	if err != nil {
		panic(errors.Wrap(err, "schema: decode"))
	}
	return out
}

// MustEncode is Encode or panic.
func MustEncode[T any](ctx context.Context, s *Schema[T], v T, opts ...ParseOptions) any {
	out, err := s.Encode(ctx, v, opts...)
	if err != nil {
		panic(errors.Wrap(err, "schema: encode"))
	}
	return out
}
