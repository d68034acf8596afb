package dsl

import (
	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// TupleItem is one fixed tuple position.
type TupleItem struct {
	typ      ast.AST
	optional bool
}

// Element declares a required tuple position.
func Element(s AnySchema) TupleItem { return TupleItem{typ: s.AST()} }

// OptionalElement declares an optional trailing tuple position.
func OptionalElement(s AnySchema) TupleItem { return TupleItem{typ: s.AST(), optional: true} }

// Tuple builds a fixed-length tuple schema; optional elements must trail
// required ones.
func Tuple(items ...TupleItem) *schema.Schema[[]any] {
	elements := make([]ast.TupleElement, len(items))
	for i, it := range items {
		elements[i] = ast.TupleElement{Type: it.typ, Optional: it.optional}
	}
	return schema.New[[]any](ast.NewTuple(elements, nil, false))
}

// Rest extends a tuple with a rest segment: head repeats over the middle and
// trailing elements bind the final positions, modeling [...A[], B] shapes.
func Rest(t *schema.Schema[[]any], head AnySchema, trailing ...AnySchema) *schema.Schema[[]any] {
	tp, ok := t.AST().(*ast.Tuple)
	if !ok {
		panic("dsl: rest requires a tuple schema")
	}
	rest := make([]ast.AST, 0, 1+len(trailing))
	rest = append(rest, head.AST())
	for _, s := range trailing {
		rest = append(rest, s.AST())
	}
	return schema.New[[]any](ast.NewTuple(tp.Elements, rest, tp.Readonly))
}

// Array matches any-length sequences of the element schema.
func Array(elem AnySchema) *schema.Schema[[]any] {
	return schema.New[[]any](ast.NewTuple(nil, []ast.AST{elem.AST()}, false))
}

// NonEmptyArray refines Array to require at least one element.
func NonEmptyArray(elem AnySchema) *schema.Schema[[]any] {
	return Filter(Array(elem), func(v []any) bool { return len(v) >= 1 },
		Message(func(any) string { return "expected a nonempty array" }))
}
