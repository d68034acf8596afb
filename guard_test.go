package schema_test

import (
	"context"
	"math/big"
	"testing"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
	"github.com/brandenbyers/schema/dsl"
)

// The guard agrees with decode on the accepted set for transform-free
// schemas.
func TestGuard_AgreesWithDecode(t *testing.T) {
	sym := ast.NewSymbol("k")
	schemas := []dsl.AnySchema{
		dsl.String(),
		dsl.Number(),
		dsl.Boolean(),
		dsl.BigInt(),
		dsl.Null(),
		dsl.Literal("a", "b"),
		dsl.Enums(dsl.E("One", 1.0)),
		dsl.UniqueSymbol(sym),
		dsl.TemplateLiteral("v", dsl.Span(dsl.Number(), "")),
		dsl.Struct(dsl.Field("a", dsl.String()), dsl.OptionalField("b", dsl.Number())),
		dsl.Tuple(dsl.Element(dsl.String()), dsl.OptionalElement(dsl.Number())),
		dsl.Array(dsl.Number()),
		dsl.Union(dsl.String(), dsl.Number()),
		dsl.Filter(dsl.Number(), func(f float64) bool { return f > 0 }),
		dsl.Record(dsl.String(), dsl.Number()),
	}
	inputs := []any{
		"a", "b", "v1", "v-2", "x",
		1.0, -1.0, 0.0, 42,
		true, false, nil,
		big.NewInt(7),
		sym, ast.NewSymbol("k"),
		map[string]any{"a": "x"},
		map[string]any{"a": "x", "b": 1.0},
		map[string]any{"a": 1.0},
		map[string]any{},
		[]any{"a"}, []any{"a", 1.0}, []any{1.0, 2.0}, []any{},
	}
	ctx := context.Background()
	for si, s := range schemas {
		guarded := s.(interface{ Is(any) bool })
		asserter := s.(interface {
			Asserts(context.Context, any) error
		})
		for ii, in := range inputs {
			is := guarded.Is(in)
			ok := asserter.Asserts(ctx, in) == nil
			if is != ok {
				t.Fatalf("schema %d input %d (%v): is=%v decode-success=%v", si, ii, in, is, ok)
			}
		}
	}
}

// For transforms, the guard tests the raw input (from) side.
func TestGuard_TransformUsesFromSide(t *testing.T) {
	s := dsl.NumberFromString()
	if !s.Is("42") {
		t.Fatalf("guard should accept the wire shape")
	}
	if s.Is(42.0) {
		t.Fatalf("guard should reject the decoded shape")
	}
}

func TestGuard_Recursive(t *testing.T) {
	var sch *schema.Schema[map[string]any]
	sch = dsl.Lazy(func() *schema.Schema[map[string]any] {
		return dsl.Struct(
			dsl.Field("v", dsl.Number()),
			dsl.Field("next", dsl.Nullable(sch)),
		)
	})
	if !sch.Is(map[string]any{"v": 1.0, "next": nil}) {
		t.Fatalf("flat value should pass")
	}
	if !sch.Is(map[string]any{"v": 1.0, "next": map[string]any{"v": 2.0, "next": nil}}) {
		t.Fatalf("nested value should pass")
	}
	if sch.Is(map[string]any{"v": "x", "next": nil}) {
		t.Fatalf("bad nested type should fail")
	}
}
