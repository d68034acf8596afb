package dsl_test

import (
	"context"
	"math/big"
	"testing"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
	g "github.com/brandenbyers/schema/dsl"
)

func TestString_Basic(t *testing.T) {
	s := g.String()
	ctx := context.Background()

	v, err := s.Decode(ctx, "hello")
	if err != nil || v != "hello" {
		t.Fatalf("decode ok expected, got v=%v err=%v", v, err)
	}

	_, err = s.Decode(ctx, 1)
	if err == nil {
		t.Fatalf("expected error for invalid type")
	}
	if iss, ok := schema.AsIssues(err); ok {
		if len(iss) == 0 || iss[0].Code != schema.CodeInvalidType {
			t.Fatalf("expected invalid_type, got %v", iss)
		}
	} else {
		t.Fatalf("expected Issues error, got %v", err)
	}
}

func TestNumber_WidensToFloat64(t *testing.T) {
	s := g.Number()
	ctx := context.Background()

	for _, in := range []any{1, int64(2), float64(3.5), uint8(4)} {
		if _, err := s.Decode(ctx, in); err != nil {
			t.Fatalf("numeric input %T should decode, got %v", in, err)
		}
	}
	v, err := s.Decode(ctx, 7)
	if err != nil || v != float64(7) {
		t.Fatalf("expected widened float64, got v=%v err=%v", v, err)
	}
	if _, err := s.Decode(ctx, "7"); err == nil {
		t.Fatalf("no implicit string coercion")
	}
}

func TestBigIntAndSymbol(t *testing.T) {
	ctx := context.Background()

	b, err := g.BigInt().Decode(ctx, big.NewInt(99))
	if err != nil || b.Int64() != 99 {
		t.Fatalf("bigint decode expected, got v=%v err=%v", b, err)
	}
	if _, err := g.BigInt().Decode(ctx, 99); err == nil {
		t.Fatalf("plain numbers are not bigints")
	}

	sym := ast.NewSymbol("tag")
	sv, err := g.Symbol().Decode(ctx, sym)
	if err != nil || sv != sym {
		t.Fatalf("symbol decode expected, got v=%v err=%v", sv, err)
	}
}

func TestLiteral_MultipleValuesFormUnion(t *testing.T) {
	s := g.Literal("a", "b")
	ctx := context.Background()
	if _, err := s.Decode(ctx, "a"); err != nil {
		t.Fatalf("member literal should decode, got %v", err)
	}
	if _, err := s.Decode(ctx, "c"); err == nil {
		t.Fatalf("non-member should fail")
	}
	if !ast.IsUnion(s.AST()) {
		t.Fatalf("multi-literal should build a union")
	}
}

func TestNeverUnknownAnyVoid(t *testing.T) {
	ctx := context.Background()
	if _, err := g.Never().Decode(ctx, 1); err == nil {
		t.Fatalf("never accepts nothing")
	}
	if _, err := g.Unknown().Decode(ctx, struct{}{}); err != nil {
		t.Fatalf("unknown accepts everything, got %v", err)
	}
	if _, err := g.Any().Decode(ctx, nil); err != nil {
		t.Fatalf("any accepts everything, got %v", err)
	}
	if _, err := g.Void().Decode(ctx, nil); err != nil {
		t.Fatalf("void accepts nil, got %v", err)
	}
	if _, err := g.Undefined().Decode(ctx, 0); err == nil {
		t.Fatalf("undefined rejects non-nil")
	}
}

func TestSymbolStruct_SymbolField(t *testing.T) {
	sym := ast.NewSymbol("meta")
	s := g.SymbolStruct(
		g.Field("a", g.String()),
		g.SymbolField(sym, g.Number()),
	)
	ctx := context.Background()

	in := map[any]any{"a": "x", sym: 1.0}
	v, err := s.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode ok expected, got %v", err)
	}
	if v["a"] != "x" || v[sym] != float64(1) {
		t.Fatalf("unexpected decode: %v", v)
	}

	// Struct refuses symbol fields up front
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for symbol field in Struct")
		}
	}()
	g.Struct(g.SymbolField(sym, g.Number()))
}
