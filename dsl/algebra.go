package dsl

import (
	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// Pick keeps only the named properties of a struct-like schema.
func Pick(s AnySchema, keys ...any) *schema.Schema[map[string]any] {
	return schema.New[map[string]any](ast.Pick(s.AST(), keys...))
}

// Omit drops the named properties of a struct-like schema.
func Omit(s AnySchema, keys ...any) *schema.Schema[map[string]any] {
	return schema.New[map[string]any](ast.Omit(s.AST(), keys...))
}

// Partial marks every property of a struct-like schema optional.
func Partial(s AnySchema) *schema.Schema[map[string]any] {
	return schema.New[map[string]any](ast.Partial(s.AST()))
}

// PartialTuple marks every element of a tuple schema optional and widens a
// rest segment, when present, to admit undefined.
func PartialTuple(s *schema.Schema[[]any]) *schema.Schema[[]any] {
	return schema.New[[]any](ast.Partial(s.AST()))
}

// Extend merges the properties and index signatures of two struct-like
// schemas; colliding keys must be structurally identical.
func Extend(a, b AnySchema) *schema.Schema[map[string]any] {
	return schema.New[map[string]any](ast.Extend(a.AST(), b.AST()))
}

// KeyOf yields the union of a struct-like schema's property names.
func KeyOf(s AnySchema) *schema.Schema[any] {
	return schema.New[any](ast.KeyOf(s.AST()))
}
