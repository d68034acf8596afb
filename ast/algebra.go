package ast

import (
	"fmt"
	"regexp"
)

// KeyOf yields the union of the property names of a struct-like node: a
// Union of string literals and unique symbols. For unions of structs the
// result is the intersection of the members' key sets. Refinements, aliases
// and lazy nodes are looked through.
func KeyOf(a AST) AST {
	keys := keySet(a)
	members := make([]AST, 0, len(keys))
	for _, k := range keys {
		members = append(members, keyToAST(k))
	}
	return NewUnion(members...)
}

func keyToAST(k any) AST {
	if s, ok := k.(*Symbol); ok {
		return NewUniqueSymbol(s)
	}
	return NewLiteral(k)
}

func keySet(a AST) []any {
	switch n := a.(type) {
	case *TypeLiteral:
		return n.PropertyNames()
	case *Union:
		keys := keySet(n.Members[0])
		for _, m := range n.Members[1:] {
			keys = intersectKeys(keys, keySet(m))
		}
		return keys
	case *Refinement:
		return keySet(n.From)
	case *Transform:
		return keySet(n.To)
	case *TypeAlias:
		return keySet(n.Type)
	case *Lazy:
		return keySet(n.Force())
	}
	panic(fmt.Sprintf("ast: keyof is not defined on %s", a.Kind()))
}

func intersectKeys(a, b []any) []any {
	set := make(map[any]struct{}, len(b))
	for _, k := range b {
		set[k] = struct{}{}
	}
	out := make([]any, 0, len(a))
	for _, k := range a {
		if _, ok := set[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Pick keeps only the given property names of a struct-like node. Keys that
// are served by an index signature rather than a declared property keep all
// of the node's index signatures in the result; a key served by neither is a
// construction error. Distributes over unions; container annotations are
// preserved.
func Pick(a AST, keys ...any) AST {
	switch n := a.(type) {
	case *TypeLiteral:
		props := make([]PropertySignature, 0, len(keys))
		matched := make(map[any]struct{}, len(keys))
		for _, p := range n.Properties {
			if containsKey(keys, p.Name) {
				props = append(props, p)
				matched[p.Name] = struct{}{}
			}
		}
		var indexes []IndexSignature
		for _, k := range keys {
			if _, ok := matched[k]; ok {
				continue
			}
			if !anyIndexAccepts(n.Indexes, k) {
				panic(fmt.Sprintf("ast: pick key %v matches no property or index signature", k))
			}
			indexes = n.Indexes
		}
		out := NewTypeLiteral(props, indexes)
		return out.withAnnotations(n.annot)
	case *Union:
		members := make([]AST, len(n.Members))
		for i, m := range n.Members {
			members[i] = Pick(m, keys...)
		}
		return WithAnnotations(NewUnion(members...), n.annot)
	case *Refinement:
		return Pick(n.From, keys...)
	case *Transform:
		return Pick(n.To, keys...)
	case *TypeAlias:
		return Pick(n.Type, keys...)
	case *Lazy:
		return Pick(n.Force(), keys...)
	}
	panic(fmt.Sprintf("ast: pick is not defined on %s", a.Kind()))
}

// Omit drops the given property names of a struct-like node; the dual of
// Pick. Index signatures are unaffected.
func Omit(a AST, keys ...any) AST {
	switch n := a.(type) {
	case *TypeLiteral:
		props := make([]PropertySignature, 0, len(n.Properties))
		for _, p := range n.Properties {
			if !containsKey(keys, p.Name) {
				props = append(props, p)
			}
		}
		out := NewTypeLiteral(props, n.Indexes)
		return out.withAnnotations(n.annot)
	case *Union:
		members := make([]AST, len(n.Members))
		for i, m := range n.Members {
			members[i] = Omit(m, keys...)
		}
		return WithAnnotations(NewUnion(members...), n.annot)
	case *Refinement:
		return Omit(n.From, keys...)
	case *Transform:
		return Omit(n.To, keys...)
	case *TypeAlias:
		return Omit(n.Type, keys...)
	case *Lazy:
		return Omit(n.Force(), keys...)
	}
	panic(fmt.Sprintf("ast: omit is not defined on %s", a.Kind()))
}

// Partial marks every property of a struct-like node optional. On tuples,
// every element becomes optional and rest element types admit undefined.
// Distributes over unions.
func Partial(a AST) AST {
	switch n := a.(type) {
	case *TypeLiteral:
		props := make([]PropertySignature, len(n.Properties))
		for i, p := range n.Properties {
			p.Optional = true
			props[i] = p
		}
		out := NewTypeLiteral(props, n.Indexes)
		return out.withAnnotations(n.annot)
	case *Tuple:
		elements := make([]TupleElement, len(n.Elements))
		for i, e := range n.Elements {
			e.Optional = true
			elements[i] = e
		}
		var rest []AST
		if n.Rest != nil {
			rest = make([]AST, len(n.Rest))
			for i, r := range n.Rest {
				rest[i] = NewUnion(r, UndefinedKeyword)
			}
		}
		out := NewTuple(elements, rest, n.Readonly)
		return out.withAnnotations(n.annot)
	case *Union:
		members := make([]AST, len(n.Members))
		for i, m := range n.Members {
			members[i] = Partial(m)
		}
		return WithAnnotations(NewUnion(members...), n.annot)
	case *Refinement:
		return Partial(n.From)
	case *Transform:
		return Partial(n.To)
	case *TypeAlias:
		return Partial(n.Type)
	case *Lazy:
		return NewLazy(func() AST { return Partial(n.Force()) })
	}
	panic(fmt.Sprintf("ast: partial is not defined on %s", a.Kind()))
}

// Extend merges the property and index signatures of two struct-like nodes.
// A shared property name is an error unless both signatures are structurally
// identical. Distributes over unions on either side.
func Extend(a, b AST) AST {
	if u, ok := a.(*Union); ok {
		members := make([]AST, len(u.Members))
		for i, m := range u.Members {
			members[i] = Extend(m, b)
		}
		return NewUnion(members...)
	}
	if u, ok := b.(*Union); ok {
		members := make([]AST, len(u.Members))
		for i, m := range u.Members {
			members[i] = Extend(a, m)
		}
		return NewUnion(members...)
	}
	x, ok := a.(*TypeLiteral)
	if !ok {
		panic(fmt.Sprintf("ast: extend is not defined on %s", a.Kind()))
	}
	y, ok := b.(*TypeLiteral)
	if !ok {
		panic(fmt.Sprintf("ast: extend is not defined on %s", b.Kind()))
	}
	props := make([]PropertySignature, 0, len(x.Properties)+len(y.Properties))
	props = append(props, x.Properties...)
	for _, q := range y.Properties {
		collided := false
		for _, p := range x.Properties {
			if p.Name == q.Name {
				if p.Optional != q.Optional || p.Readonly != q.Readonly || !Equal(p.Type, q.Type) {
					panic(fmt.Sprintf("ast: extend key collision on %v", q.Name))
				}
				collided = true
				break
			}
		}
		if !collided {
			props = append(props, q)
		}
	}
	indexes := make([]IndexSignature, 0, len(x.Indexes)+len(y.Indexes))
	indexes = append(indexes, x.Indexes...)
	indexes = append(indexes, y.Indexes...)
	return NewTypeLiteral(props, indexes)
}

func containsKey(keys []any, k any) bool {
	for _, c := range keys {
		if c == k {
			return true
		}
	}
	return false
}

func anyIndexAccepts(indexes []IndexSignature, key any) bool {
	for _, ix := range indexes {
		if AcceptsKey(ix.Parameter, key) {
			return true
		}
	}
	return false
}

// AcceptsKey reports whether an index-signature parameter admits the given
// key. String parameters admit string keys, symbol parameters admit symbol
// keys, template literals match string keys against their pattern, and a
// refinement additionally applies its predicate.
func AcceptsKey(param AST, key any) bool {
	switch p := param.(type) {
	case *Keyword:
		switch p.kind {
		case KindString:
			_, ok := key.(string)
			return ok
		case KindSymbol:
			_, ok := key.(*Symbol)
			return ok
		}
		return false
	case *TemplateLiteral:
		s, ok := key.(string)
		if !ok {
			return false
		}
		re, err := regexp.Compile(p.Pattern())
		if err != nil {
			return false
		}
		return re.MatchString(s)
	case *Refinement:
		return AcceptsKey(p.From, key) && p.Predicate(key)
	}
	return false
}
