package schema

import (
	"context"
	"math/big"

	"github.com/brandenbyers/schema/ast"
)

// guardFunc is the compiled structural predicate for a node.
type guardFunc func(v any) bool

type guardCompiler struct {
	memo map[*ast.Lazy]guardFunc
}

// compileGuard mirrors compile but skips error construction. For transforms
// the guard is defined against the from side: the raw input domain.
func compileGuard(node ast.AST) guardFunc {
	c := &guardCompiler{memo: make(map[*ast.Lazy]guardFunc)}
	return c.compile(node)
}

func (c *guardCompiler) compile(node ast.AST) guardFunc {
	switch n := node.(type) {
	case *ast.Keyword:
		return guardKeyword(n.Kind())
	case *ast.Literal:
		return func(v any) bool { _, ok := matchConstant(n.Value, v); return ok }
	case *ast.UniqueSymbol:
		return func(v any) bool { s, ok := v.(*ast.Symbol); return ok && s == n.Symbol }
	case *ast.TemplateLiteral:
		re := templateRegex(n)
		return func(v any) bool { s, ok := v.(string); return ok && re.MatchString(s) }
	case *ast.Enums:
		return func(v any) bool {
			for _, m := range n.Members {
				if _, ok := matchConstant(m.Value, v); ok {
					return true
				}
			}
			return false
		}
	case *ast.Refinement:
		from := c.compile(n.From)
		// the predicate sees the decoded value (numbers widened, objects
		// rebuilt), exactly as it does in decode
		decodeFrom := compile(n.From)
		return func(v any) bool {
			if !from(v) {
				return false
			}
			out, errs := decodeFrom(context.Background(), v, ParseOptions{}, dirDecode)
			return len(errs) == 0 && n.Predicate(out)
		}
	case *ast.Transform:
		return c.compile(n.From)
	case *ast.Tuple:
		return c.compileTuple(n)
	case *ast.TypeLiteral:
		return c.compileTypeLiteral(n)
	case *ast.Union:
		members := make([]guardFunc, len(n.Members))
		for i, m := range n.Members {
			members[i] = c.compile(m)
		}
		return func(v any) bool {
			for _, fn := range members {
				if fn(v) {
					return true
				}
			}
			return false
		}
	case *ast.Lazy:
		if fn, ok := c.memo[n]; ok {
			return fn
		}
		var inner guardFunc
		fn := func(v any) bool { return inner(v) }
		// register before forcing so self-references resolve to this wrapper;
		// compiling here leaves nothing to write when the guard runs
		c.memo[n] = fn
		inner = c.compile(n.Force())
		return fn
	case *ast.TypeAlias:
		return c.compile(n.Type)
	}
	panic("schema: unreachable AST kind " + node.Kind().String())
}

func guardKeyword(kind ast.Kind) guardFunc {
	return func(v any) bool {
		switch kind {
		case ast.KindUnknown, ast.KindAny:
			return true
		case ast.KindNever:
			return false
		case ast.KindVoid, ast.KindUndefined:
			return v == nil
		case ast.KindString:
			_, ok := v.(string)
			return ok
		case ast.KindNumber:
			_, ok := normalizeNumber(v)
			return ok
		case ast.KindBoolean:
			_, ok := v.(bool)
			return ok
		case ast.KindBigInt:
			_, ok := v.(*big.Int)
			return ok
		case ast.KindSymbol:
			_, ok := v.(*ast.Symbol)
			return ok
		case ast.KindObject:
			return isObjectLike(v)
		}
		return false
	}
}

func (c *guardCompiler) compileTuple(n *ast.Tuple) guardFunc {
	elements := make([]guardFunc, len(n.Elements))
	for i, e := range n.Elements {
		elements[i] = c.compile(e.Type)
	}
	var restHead guardFunc
	trailing := make([]guardFunc, 0)
	if n.Rest != nil {
		restHead = c.compile(n.Rest[0])
		for _, t := range n.Rest[1:] {
			trailing = append(trailing, c.compile(t))
		}
	}
	node := n
	return func(v any) bool {
		arr, ok := toSlice(v)
		if !ok {
			return false
		}
		if node.Rest == nil {
			if len(arr) > len(node.Elements) {
				return false
			}
			for i, e := range node.Elements {
				if i >= len(arr) {
					return e.Optional
				}
				if !elements[i](arr[i]) {
					return false
				}
			}
			return true
		}
		required := 0
		for _, e := range node.Elements {
			if !e.Optional {
				required++
			}
		}
		if len(arr) < required+len(trailing) {
			return false
		}
		avail := len(arr) - len(trailing)
		fixed := len(node.Elements)
		if avail < fixed {
			fixed = avail
		}
		for i := 0; i < fixed; i++ {
			if !elements[i](arr[i]) {
				return false
			}
		}
		for i := fixed; i < avail; i++ {
			if !restHead(arr[i]) {
				return false
			}
		}
		for j := range trailing {
			if !trailing[j](arr[avail+j]) {
				return false
			}
		}
		return true
	}
}

func (c *guardCompiler) compileTypeLiteral(n *ast.TypeLiteral) guardFunc {
	props := make([]guardFunc, len(n.Properties))
	for i, p := range n.Properties {
		props[i] = c.compile(p.Type)
	}
	pc := &compiler{memo: make(map[*ast.Lazy]parseFunc)}
	indexes := make([]indexMatcher, len(n.Indexes))
	for i, ix := range n.Indexes {
		indexes[i] = indexMatcher{
			accepts: pc.compileIndexParameter(ix.Parameter),
		}
	}
	indexTypes := make([]guardFunc, len(n.Indexes))
	for i, ix := range n.Indexes {
		indexTypes[i] = c.compile(ix.Type)
	}
	node := n
	return func(v any) bool {
		obj, ok := toObject(v)
		if !ok {
			return false
		}
		declared := make(map[any]struct{}, len(node.Properties))
		for i, p := range node.Properties {
			declared[p.Name] = struct{}{}
			val, present := obj.get(p.Name)
			if !present {
				if p.Optional {
					continue
				}
				return false
			}
			if !props[i](val) {
				return false
			}
		}
		if len(indexes) == 0 {
			return true
		}
		for _, k := range obj.sortedKeys() {
			if _, ok := declared[k]; ok {
				continue
			}
			val, _ := obj.get(k)
			for i, ix := range indexes {
				if ix.accepts(k) {
					if !indexTypes[i](val) {
						return false
					}
					break
				}
			}
		}
		return true
	}
}
