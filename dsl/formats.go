package dsl

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// timeAST accepts time.Time values on the decoded side of the RFC3339
// transform.
func timeAST() ast.AST {
	node := ast.NewRefinement(ast.ObjectKeyword, func(v any) bool {
		_, ok := v.(time.Time)
		return ok
	}, nil)
	return ast.WithAnnotation(node, ast.IdentifierKey, "Time")
}

// TimeRFC3339 converts between RFC3339 strings and time.Time. Encode emits
// the canonical RFC3339Nano rendering, so decode ∘ encode round-trips any
// decoded value.
func TimeRFC3339() *schema.Schema[time.Time] {
	to := schema.New[time.Time](timeAST())
	return TransformOrFail(String(), to,
		func(ctx context.Context, s string) (time.Time, error) {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return time.Time{}, errors.Wrap(err, "invalid RFC3339 time")
			}
			return t, nil
		},
		func(ctx context.Context, t time.Time) (string, error) {
			return t.Format(time.RFC3339Nano), nil
		},
	)
}

// NumberFromString converts between decimal strings and numbers, e.g. for
// query parameters carrying numeric values.
func NumberFromString() *schema.Schema[float64] {
	return TransformOrFail(Pattern(String(), `^-?\d+(\.\d+)?$`), Number(),
		func(ctx context.Context, s string) (float64, error) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, errors.Wrap(err, "invalid number")
			}
			return f, nil
		},
		func(ctx context.Context, f float64) (string, error) {
			return strconv.FormatFloat(f, 'f', -1, 64), nil
		},
	)
}
