package dsl

import (
	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// Union matches any of the given member schemas, tried in declared order.
// Normalization applies: nested unions flatten, never members drop,
// duplicates collapse. Unions of structs sharing a distinct literal tag are
// routed by that tag: only the member whose tag matches is decoded. The tag
// is found by scanning the members' tag values in declared order, so the
// lookup is linear in the number of members rather than constant time.
func Union(members ...AnySchema) *schema.Schema[any] {
	nodes := make([]ast.AST, len(members))
	for i, m := range members {
		nodes[i] = m.AST()
	}
	return schema.New[any](ast.NewUnion(nodes...))
}

// Nullable admits null in addition to the given schema.
func Nullable(s AnySchema) *schema.Schema[any] {
	return schema.New[any](ast.NewUnion(ast.NewLiteral(nil), s.AST()))
}
