package schema

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/brandenbyers/schema/ast"
)

// FormatAST renders a node for failure messages: the Identifier annotation
// when present, otherwise a structural rendering.
func FormatAST(a ast.AST) string {
	if id, ok := a.Annotations().Identifier(); ok {
		return id
	}
	switch n := a.(type) {
	case *ast.Keyword:
		return n.Kind().String()
	case *ast.Literal:
		return FormatValue(n.Value)
	case *ast.UniqueSymbol:
		return n.Symbol.String()
	case *ast.TemplateLiteral:
		return n.Source()
	case *ast.Enums:
		names := make([]string, len(n.Members))
		for i, m := range n.Members {
			names[i] = m.Name
		}
		return "enum<" + strings.Join(names, " | ") + ">"
	case *ast.Tuple:
		if len(n.Elements) == 0 && len(n.Rest) == 1 {
			return "array<" + FormatAST(n.Rest[0]) + ">"
		}
		return "tuple"
	case *ast.TypeLiteral:
		if len(n.Properties) == 0 && len(n.Indexes) > 0 {
			return "record<" + FormatAST(n.Indexes[0].Parameter) + ", " + FormatAST(n.Indexes[0].Type) + ">"
		}
		return "struct"
	case *ast.Union:
		parts := make([]string, len(n.Members))
		for i, m := range n.Members {
			parts[i] = FormatAST(m)
		}
		return strings.Join(parts, " | ")
	case *ast.Refinement:
		return FormatAST(n.From)
	case *ast.Transform:
		return "(" + FormatAST(n.From) + " <-> " + FormatAST(n.To) + ")"
	case *ast.Lazy:
		return "<recursive>"
	case *ast.TypeAlias:
		return FormatAST(n.Type)
	}
	return a.Kind().String()
}

// FormatValue pretty-prints a host value for failure messages.
func FormatValue(v any) string {
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
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case map[string]any:
		return fmt.Sprintf("object with %d key(s)", len(x))
	case map[any]any:
		return fmt.Sprintf("object with %d key(s)", len(x))
	default:
		return fmt.Sprintf("%v", v)
	}
}
