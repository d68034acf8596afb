// Package arbitrary folds an AST into a random-value generator for the
// schema's decoded domain. Generators are deterministic for a given seed.
package arbitrary

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/brandenbyers/schema/ast"
)

// Gen produces one sample per call.
type Gen func(r *rand.Rand) any

// maxDepth bounds recursion through lazy nodes; beyond it, generators pick
// the cheapest escape they have (nil).
const maxDepth = 8

// filterRetries bounds how often a refinement re-rolls before giving up and
// returning the last candidate.
const filterRetries = 100

type gen func(r *rand.Rand, depth int) any

type compiler struct {
	memo map[*ast.Lazy]gen
}

// Compile folds the node into a generator of decoded values: transforms
// generate on the from side and run their decode mapping.
func Compile(node ast.AST) Gen {
	c := &compiler{memo: make(map[*ast.Lazy]gen)}
	g := c.compile(node)
	return func(r *rand.Rand) any { return g(r, 0) }
}

func (c *compiler) compile(node ast.AST) gen {
	switch n := node.(type) {
	case *ast.Keyword:
		return keywordGen(n)
	case *ast.Literal:
		return func(r *rand.Rand, depth int) any { return n.Value }
	case *ast.UniqueSymbol:
		return func(r *rand.Rand, depth int) any { return n.Symbol }
	case *ast.TemplateLiteral:
		return c.compileTemplate(n)
	case *ast.Enums:
		return func(r *rand.Rand, depth int) any {
			return n.Members[r.Intn(len(n.Members))].Value
		}
	case *ast.Refinement:
		from := c.compile(n.From)
		return func(r *rand.Rand, depth int) any {
			var v any
			for i := 0; i < filterRetries; i++ {
				v = from(r, depth)
				if n.Predicate(v) {
					return v
				}
			}
			return v
		}
	case *ast.Transform:
		from := c.compile(n.From)
		return func(r *rand.Rand, depth int) any {
			v := from(r, depth)
			out, err := n.Decode(context.Background(), v)
			if err != nil {
				// fall back to the raw from-side sample, which lies
				// outside the decoded domain
				return v
			}
			return out
		}
	case *ast.Tuple:
		return c.compileTuple(n)
	case *ast.TypeLiteral:
		return c.compileTypeLiteral(n)
	case *ast.Union:
		members := make([]gen, len(n.Members))
		for i, m := range n.Members {
			members[i] = c.compile(m)
		}
		return func(r *rand.Rand, depth int) any {
			return members[r.Intn(len(members))](r, depth)
		}
	case *ast.Lazy:
		if g, ok := c.memo[n]; ok {
			return g
		}
		var inner gen
		g := func(r *rand.Rand, depth int) any {
			if depth >= maxDepth {
				return nil
			}
			if inner == nil {
				inner = c.compile(n.Force())
			}
			return inner(r, depth+1)
		}
		c.memo[n] = g
		return g
	case *ast.TypeAlias:
		return c.compile(n.Type)
	}
	panic("arbitrary: unreachable AST kind " + node.Kind().String())
}

func keywordGen(n *ast.Keyword) gen {
	switch n.Kind() {
	case ast.KindNever:
		panic("arbitrary: cannot generate a value for never")
	case ast.KindVoid, ast.KindUndefined:
		return func(r *rand.Rand, depth int) any { return nil }
	case ast.KindString:
		return func(r *rand.Rand, depth int) any { return randomString(r) }
	case ast.KindNumber:
		return func(r *rand.Rand, depth int) any { return randomNumber(r) }
	case ast.KindBoolean:
		return func(r *rand.Rand, depth int) any { return r.Intn(2) == 0 }
	case ast.KindBigInt:
		return func(r *rand.Rand, depth int) any { return big.NewInt(r.Int63() - r.Int63()) }
	case ast.KindSymbol:
		return func(r *rand.Rand, depth int) any { return ast.NewSymbol(randomString(r)) }
	case ast.KindObject:
		return func(r *rand.Rand, depth int) any { return map[string]any{} }
	default: // unknown, any
		return func(r *rand.Rand, depth int) any {
			switch r.Intn(4) {
			case 0:
				return randomString(r)
			case 1:
				return randomNumber(r)
			case 2:
				return r.Intn(2) == 0
			default:
				return nil
			}
		}
	}
}

func (c *compiler) compileTemplate(n *ast.TemplateLiteral) gen {
	spans := make([]gen, len(n.Spans))
	for i, sp := range n.Spans {
		if kindOf(sp.Type) == ast.KindNumber {
			spans[i] = func(r *rand.Rand, depth int) any { return fmt.Sprintf("%d", r.Intn(1000)) }
		} else {
			spans[i] = func(r *rand.Rand, depth int) any { return randomString(r) }
		}
	}
	node := n
	return func(r *rand.Rand, depth int) any {
		out := node.Head
		for i, sp := range node.Spans {
			out += spans[i](r, depth).(string) + sp.Literal
		}
		return out
	}
}

func kindOf(a ast.AST) ast.Kind {
	for {
		if rf, ok := a.(*ast.Refinement); ok {
			a = rf.From
			continue
		}
		return a.Kind()
	}
}

func (c *compiler) compileTuple(n *ast.Tuple) gen {
	elements := make([]gen, len(n.Elements))
	for i, e := range n.Elements {
		elements[i] = c.compile(e.Type)
	}
	var rest gen
	trailing := make([]gen, 0)
	if n.Rest != nil {
		rest = c.compile(n.Rest[0])
		for _, t := range n.Rest[1:] {
			trailing = append(trailing, c.compile(t))
		}
	}
	node := n
	return func(r *rand.Rand, depth int) any {
		out := make([]any, 0, len(elements))
		skipped := false
		for i, e := range node.Elements {
			if e.Optional && r.Intn(2) == 0 {
				skipped = true
				break
			}
			out = append(out, elements[i](r, depth))
		}
		if rest != nil {
			// an absent optional element leaves no room for middle values:
			// the decoder would read them back into the fixed positions
			k := 0
			if !skipped && depth < maxDepth {
				k = r.Intn(4)
			}
			for i := 0; i < k; i++ {
				out = append(out, rest(r, depth+1))
			}
			for _, t := range trailing {
				out = append(out, t(r, depth))
			}
		}
		return out
	}
}

func (c *compiler) compileTypeLiteral(n *ast.TypeLiteral) gen {
	props := make([]gen, len(n.Properties))
	for i, p := range n.Properties {
		props[i] = c.compile(p.Type)
	}
	node := n
	return func(r *rand.Rand, depth int) any {
		keys := make([]any, 0, len(props))
		vals := make([]any, 0, len(props))
		symbolic := false
		for i, p := range node.Properties {
			if p.Optional && r.Intn(2) == 0 {
				continue
			}
			keys = append(keys, p.Name)
			vals = append(vals, props[i](r, depth))
			if _, ok := p.Name.(string); !ok {
				symbolic = true
			}
		}
		if symbolic {
			out := make(map[any]any, len(keys))
			for i, k := range keys {
				out[k] = vals[i]
			}
			return out
		}
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			out[k.(string)] = vals[i]
		}
		return out
	}
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(r *rand.Rand) string {
	n := r.Intn(12)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func randomNumber(r *rand.Rand) float64 {
	switch r.Intn(3) {
	case 0:
		return float64(r.Intn(100))
	case 1:
		return -float64(r.Intn(100))
	default:
		return r.Float64() * 1000
	}
}
