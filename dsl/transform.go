package dsl

import (
	"context"

	"github.com/pkg/errors"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// Transform maps between two schemas with functions guaranteed to succeed.
// Decode runs from → decode; Encode runs encode → from, re-validating the
// source side.
func Transform[A, B any](from *schema.Schema[A], to *schema.Schema[B], decode func(A) B, encode func(B) A) *schema.Schema[B] {
	node := ast.NewTransform(from.AST(), to.AST(),
		liftTransformFn(func(ctx context.Context, a A) (B, error) { return decode(a), nil }),
		liftTransformFn(func(ctx context.Context, b B) (A, error) { return encode(b), nil }),
	)
	return schema.New[B](node)
}

// TransformOrFail is Transform with fallible mappings; a returned error
// surfaces as a transformation failure at this site.
func TransformOrFail[A, B any](from *schema.Schema[A], to *schema.Schema[B], decode func(ctx context.Context, a A) (B, error), encode func(ctx context.Context, b B) (A, error)) *schema.Schema[B] {
	node := ast.NewTransform(from.AST(), to.AST(),
		liftTransformFn(decode),
		liftTransformFn(encode),
	)
	return schema.New[B](node)
}

func liftTransformFn[A, B any](f func(ctx context.Context, a A) (B, error)) ast.TransformFn {
	return func(ctx context.Context, v any) (any, error) {
		a, ok := v.(A)
		if !ok {
			return nil, errors.Errorf("dsl: transform input %T does not match declared side", v)
		}
		return f(ctx, a)
	}
}

// Lazy defers schema construction, enabling self-referential definitions:
//
//	var node *schema.Schema[map[string]any]
//	node = dsl.Lazy(func() *schema.Schema[map[string]any] {
//	    return dsl.Struct(
//	        dsl.Field("v", dsl.Number()),
//	        dsl.Field("next", dsl.Nullable(node)),
//	    )
//	})
//
// The thunk runs at most once; interpreters memoize by node identity.
func Lazy[T any](thunk func() *schema.Schema[T]) *schema.Schema[T] {
	return schema.New[T](ast.NewLazy(func() ast.AST { return thunk().AST() }))
}
