// Package pretty folds an AST into a printer for decoded values. A
// func(any) string stored under Key on a node takes precedence over the
// structural rendering.
package pretty

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/brandenbyers/schema/ast"
)

// Key holds a node-level printer override: a func(any) string.
var Key = ast.NewAnnotationKey("pretty")

// Printer renders one decoded value.
type Printer func(v any) string

type compiler struct {
	memo map[*ast.Lazy]Printer
}

// Compile folds the node into a printer. Transforms print the decoded (to)
// side; refinements and aliases print their underlying type.
func Compile(node ast.AST) Printer {
	c := &compiler{memo: make(map[*ast.Lazy]Printer)}
	return c.compile(node)
}

func (c *compiler) compile(node ast.AST) Printer {
	if v, ok := node.Annotations().Get(Key); ok {
		if p, ok := v.(func(any) string); ok {
			return p
		}
	}
	switch n := node.(type) {
	case *ast.Keyword, *ast.Literal, *ast.UniqueSymbol, *ast.TemplateLiteral, *ast.Enums:
		return formatScalar
	case *ast.Refinement:
		return c.compile(n.From)
	case *ast.Transform:
		return c.compile(n.To)
	case *ast.Tuple:
		elems := make([]Printer, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = c.compile(e.Type)
		}
		var rest Printer
		if n.Rest != nil {
			rest = c.compile(n.Rest[0])
		}
		return func(v any) string {
			arr, ok := v.([]any)
			if !ok {
				return formatScalar(v)
			}
			parts := make([]string, len(arr))
			for i, e := range arr {
				switch {
				case i < len(elems):
					parts[i] = elems[i](e)
				case rest != nil:
					parts[i] = rest(e)
				default:
					parts[i] = formatScalar(e)
				}
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
	case *ast.TypeLiteral:
		props := make(map[any]Printer, len(n.Properties))
		for _, p := range n.Properties {
			props[p.Name] = c.compile(p.Type)
		}
		var index Printer
		if len(n.Indexes) > 0 {
			index = c.compile(n.Indexes[0].Type)
		}
		node := n
		return func(v any) string {
			m, ok := v.(map[string]any)
			if !ok {
				return formatScalar(v)
			}
			var parts []string
			for _, p := range node.Properties {
				name, ok := p.Name.(string)
				if !ok {
					continue
				}
				if pv, ok := m[name]; ok {
					parts = append(parts, strconv.Quote(name)+": "+props[p.Name](pv))
				}
			}
			var restKeys []string
			for k := range m {
				if _, declared := props[k]; !declared {
					restKeys = append(restKeys, k)
				}
			}
			sort.Strings(restKeys)
			for _, k := range restKeys {
				p := index
				if p == nil {
					p = formatScalar
				}
				parts = append(parts, strconv.Quote(k)+": "+p(m[k]))
			}
			return "{ " + strings.Join(parts, ", ") + " }"
		}
	case *ast.Union:
		members := make([]Printer, len(n.Members))
		for i, m := range n.Members {
			members[i] = c.compile(m)
		}
		// Without running the guard the union cannot know the branch;
		// scalar formatting is a faithful fallback for primitives and the
		// first member handles the common homogeneous case.
		return func(v any) string {
			if isScalar(v) {
				return formatScalar(v)
			}
			return members[0](v)
		}
	case *ast.Lazy:
		if p, ok := c.memo[n]; ok {
			return p
		}
		var inner Printer
		p := func(v any) string {
			if inner == nil {
				inner = c.compile(n.Force())
			}
			return inner(v)
		}
		c.memo[n] = p
		return p
	case *ast.TypeAlias:
		return c.compile(n.Type)
	}
	return formatScalar
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, *big.Int, *ast.Symbol:
		return true
	}
	return false
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *big.Int:
		return x.String() + "n"
	case *ast.Symbol:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatScalar(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ": " + formatScalar(x[k])
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return fmt.Sprintf("%v", v)
	}
}
