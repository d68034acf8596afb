package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brandenbyers/schema/ast"
	"github.com/brandenbyers/schema/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnexpectedKey = "unexpected_key"
	CodeRefinement    = "refinement"
	CodeTransform     = "transform"
	CodeInvalidUnion  = "invalid_union"
	CodeParseError    = "parse_error"
)

// Issue is a single flattened validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"string"}) for
	// i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error, flattening a *Failure when needed.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	if iss, ok := err.(Issues); ok {
		return iss, true
	}
	if f, ok := err.(*Failure); ok {
		return Flatten(f.Errors), true
	}
	return nil, false
}

// Flatten renders a failure tree into path-addressed issues. Message
// resolution walks from the deepest failure upward: the first Message
// annotation found on an ancestor node wins for that subtree. Descending,
// each annotated node replaces the inherited fallback, so the annotation
// closest to the failure site is the one that applies.
func Flatten(errs []ParseError) Issues {
	var out Issues
	flattenInto(&out, errs, "", nil)
	return out
}

func flattenInto(out *Issues, errs []ParseError, path string, fallback ast.MessageFn) {
	for _, e := range errs {
		switch fe := e.(type) {
		case TypeError:
			*out = append(*out, Issue{
				Path:    orRoot(path),
				Code:    CodeInvalidType,
				Message: resolveMessage(fe.Expected, fe.Actual, fallback, defaultTypeMessage(fe.Expected, fe.Actual)),
				Params:  map[string]any{"expected": FormatAST(fe.Expected)},
			})
		case RefinementError:
			if fe.Kind == RefinementFrom {
				inner := fallback
				if msg, ok := fe.Node.Annotations().Message(); ok {
					inner = msg
				}
				flattenInto(out, fe.Errors, path, inner)
				continue
			}
			*out = append(*out, Issue{
				Path:    orRoot(path),
				Code:    CodeRefinement,
				Message: resolveMessage(fe.Node, fe.Actual, fallback, i18n.T(CodeRefinement, nil)),
				Params:  map[string]any{"expected": FormatAST(fe.Node)},
			})
		case TransformError:
			switch fe.Kind {
			case Transformation:
				*out = append(*out, Issue{
					Path:    orRoot(path),
					Code:    CodeTransform,
					Message: resolveMessage(fe.Node, fe.Actual, fallback, i18n.T(CodeTransform, map[string]string{"cause": fe.Cause.Error()})),
					Cause:   fe.Cause,
				})
			default:
				inner := fallback
				if msg, ok := fe.Node.Annotations().Message(); ok {
					inner = msg
				}
				flattenInto(out, fe.Errors, path, inner)
			}
		case KeyError:
			flattenInto(out, fe.Errors, path+"/"+escapePointer(formatKey(fe.Key)), fallback)
		case IndexError:
			flattenInto(out, fe.Errors, path+"/"+strconv.Itoa(fe.Index), fallback)
		case MemberError:
			flattenInto(out, fe.Errors, path, fallback)
		case UnionError:
			iss := Issue{
				Path:    orRoot(path),
				Code:    CodeInvalidUnion,
				Message: resolveMessage(fe.Node, fe.Actual, fallback, defaultTypeMessage(fe.Node, fe.Actual)),
			}
			var hints []string
			for _, m := range fe.Members {
				var sub Issues
				flattenInto(&sub, m.Errors, path, nil)
				for _, it := range sub {
					hints = append(hints, it.Code+" at "+it.Path)
				}
			}
			iss.Hint = strings.Join(hints, "; ")
			*out = append(*out, iss)
		case MissingError:
			*out = append(*out, Issue{
				Path:    orRoot(path),
				Code:    CodeRequired,
				Message: i18n.T(CodeRequired, nil),
			})
		case UnexpectedError:
			*out = append(*out, Issue{
				Path:    orRoot(path),
				Code:    CodeUnexpectedKey,
				Message: i18n.T(CodeUnexpectedKey, nil),
			})
		}
	}
}

// resolveMessage prefers the failing node's own Message annotation, then the
// nearest ancestor's, then the synthesized default.
func resolveMessage(node ast.AST, actual any, fallback ast.MessageFn, def string) string {
	if msg, ok := node.Annotations().Message(); ok {
		return msg(actual)
	}
	if fallback != nil {
		return fallback(actual)
	}
	return def
}

func defaultTypeMessage(expected ast.AST, actual any) string {
	return i18n.T(CodeInvalidType, map[string]string{
		"expected": FormatAST(expected),
		"actual":   FormatValue(actual),
	})
}

func orRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func formatKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// escapePointer escapes a key per RFC 6901.
func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
