package ast

import "math/big"

// Equal reports structural equality of two nodes. Refinements, transforms
// and lazy nodes compare by identity because their behavior lives in
// function values; everything else compares recursively. Annotations do not
// participate in equality.
func Equal(a, b AST) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Keyword:
		return true // kinds already match
	case *Literal:
		return literalEqual(x.Value, b.(*Literal).Value)
	case *UniqueSymbol:
		return x.Symbol == b.(*UniqueSymbol).Symbol
	case *TemplateLiteral:
		y := b.(*TemplateLiteral)
		if x.Head != y.Head || len(x.Spans) != len(y.Spans) {
			return false
		}
		for i := range x.Spans {
			if x.Spans[i].Literal != y.Spans[i].Literal || !Equal(x.Spans[i].Type, y.Spans[i].Type) {
				return false
			}
		}
		return true
	case *Enums:
		y := b.(*Enums)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if x.Members[i].Name != y.Members[i].Name || !literalEqual(x.Members[i].Value, y.Members[i].Value) {
				return false
			}
		}
		return true
	case *Tuple:
		y := b.(*Tuple)
		if x.Readonly != y.Readonly || len(x.Elements) != len(y.Elements) || len(x.Rest) != len(y.Rest) {
			return false
		}
		for i := range x.Elements {
			if x.Elements[i].Optional != y.Elements[i].Optional || !Equal(x.Elements[i].Type, y.Elements[i].Type) {
				return false
			}
		}
		for i := range x.Rest {
			if !Equal(x.Rest[i], y.Rest[i]) {
				return false
			}
		}
		return true
	case *TypeLiteral:
		y := b.(*TypeLiteral)
		if len(x.Properties) != len(y.Properties) || len(x.Indexes) != len(y.Indexes) {
			return false
		}
		for i := range x.Properties {
			p, q := x.Properties[i], y.Properties[i]
			if p.Name != q.Name || p.Optional != q.Optional || p.Readonly != q.Readonly || !Equal(p.Type, q.Type) {
				return false
			}
		}
		for i := range x.Indexes {
			p, q := x.Indexes[i], y.Indexes[i]
			if p.Readonly != q.Readonly || !Equal(p.Parameter, q.Parameter) || !Equal(p.Type, q.Type) {
				return false
			}
		}
		return true
	case *Union:
		y := b.(*Union)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !Equal(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case *TypeAlias:
		return Equal(x.Type, b.(*TypeAlias).Type)
	default:
		// Refinement, Transform, Lazy: identity only, handled by a == b above.
		return false
	}
}

func literalEqual(a, b any) bool {
	if ai, ok := a.(*big.Int); ok {
		bi, ok := b.(*big.Int)
		return ok && ai.Cmp(bi) == 0
	}
	if _, ok := b.(*big.Int); ok {
		return false
	}
	return a == b
}
