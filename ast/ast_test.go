package ast

import (
	"testing"
)

func TestNewUnion_Normalization(t *testing.T) {
	// union(never, s) == s
	if got := NewUnion(NeverKeyword, StringKeyword); got != StringKeyword {
		t.Fatalf("union(never, string) should collapse to string, got %v", got.Kind())
	}
	// union(unknown, s) == unknown
	if got := NewUnion(UnknownKeyword, StringKeyword); got != UnknownKeyword {
		t.Fatalf("union(unknown, string) should collapse to unknown, got %v", got.Kind())
	}
	// union(any, s) == any
	if got := NewUnion(StringKeyword, AnyKeyword); got != AnyKeyword {
		t.Fatalf("union(string, any) should collapse to any, got %v", got.Kind())
	}
	// union(s, s) == s
	if got := NewUnion(StringKeyword, StringKeyword); got != StringKeyword {
		t.Fatalf("union(string, string) should dedupe to string, got %v", got.Kind())
	}
	// union() == never
	if got := NewUnion(); !IsNever(got) {
		t.Fatalf("empty union should be never, got %v", got.Kind())
	}
}

func TestNewUnion_FlattensNested(t *testing.T) {
	inner := NewUnion(StringKeyword, NumberKeyword)
	outer := NewUnion(inner, BooleanKeyword)
	u, ok := outer.(*Union)
	if !ok {
		t.Fatalf("expected a union, got %v", outer.Kind())
	}
	if len(u.Members) != 3 {
		t.Fatalf("expected 3 flattened members, got %d", len(u.Members))
	}
	for _, m := range u.Members {
		if IsUnion(m) {
			t.Fatalf("nested union survived flattening")
		}
	}
}

func TestNewUnion_OrderAndDedupe(t *testing.T) {
	a := NewLiteral("a")
	b := NewLiteral("b")
	out := NewUnion(a, b, NewLiteral("a"))
	u := out.(*Union)
	if len(u.Members) != 2 {
		t.Fatalf("expected 2 members after dedupe, got %d", len(u.Members))
	}
	if u.Members[0].(*Literal).Value != "a" || u.Members[1].(*Literal).Value != "b" {
		t.Fatalf("member order not preserved: %v", u.Members)
	}
}

func TestNewTuple_RejectsRequiredAfterOptional(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for required-after-optional")
		}
	}()
	NewTuple([]TupleElement{
		{Type: StringKeyword, Optional: true},
		{Type: NumberKeyword},
	}, nil, false)
}

func TestNewTypeLiteral_RejectsDuplicateKeys(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for duplicate property names")
		}
	}()
	NewTypeLiteral([]PropertySignature{
		{Name: "a", Type: StringKeyword},
		{Name: "a", Type: NumberKeyword},
	}, nil)
}

func TestNewTypeLiteral_SymbolAndStringKeysCoexist(t *testing.T) {
	sym := NewSymbol("meta")
	tl := NewTypeLiteral([]PropertySignature{
		{Name: "a", Type: StringKeyword},
		{Name: sym, Type: NumberKeyword},
	}, nil)
	if len(tl.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(tl.Properties))
	}
}

func TestNewTemplateLiteral_RejectsBadSpanType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a boolean span")
		}
	}()
	NewTemplateLiteral("x", []TemplateSpan{{Type: BooleanKeyword}})
}

func TestWithAnnotations_MergeMostRecentWins(t *testing.T) {
	s := WithAnnotations(StringKeyword, Annotations{TitleKey: "first", DescriptionKey: "d"})
	s = WithAnnotations(s, Annotations{TitleKey: "second"})
	if v, _ := s.Annotations().Get(TitleKey); v != "second" {
		t.Fatalf("expected newest title to win, got %v", v)
	}
	if v, _ := s.Annotations().Get(DescriptionKey); v != "d" {
		t.Fatalf("expected untouched key to survive, got %v", v)
	}
	// the canonical node is untouched
	if len(StringKeyword.Annotations()) != 0 {
		t.Fatalf("annotation overlay mutated the input node")
	}
}

func TestLazy_ForcesExactlyOnce(t *testing.T) {
	calls := 0
	l := NewLazy(func() AST {
		calls++
		return StringKeyword
	})
	if l.Force() != StringKeyword || l.Force() != StringKeyword {
		t.Fatalf("force should return the thunk result")
	}
	if calls != 1 {
		t.Fatalf("thunk ran %d times, want 1", calls)
	}
}

func TestEqual_Structural(t *testing.T) {
	a := NewTypeLiteral([]PropertySignature{{Name: "x", Type: NumberKeyword}}, nil)
	b := NewTypeLiteral([]PropertySignature{{Name: "x", Type: NumberKeyword}}, nil)
	if !Equal(a, b) {
		t.Fatalf("structurally identical type literals should be equal")
	}
	c := NewTypeLiteral([]PropertySignature{{Name: "x", Type: StringKeyword}}, nil)
	if Equal(a, c) {
		t.Fatalf("differently typed properties should not be equal")
	}
	// refinements compare by identity
	r1 := NewRefinement(NumberKeyword, func(any) bool { return true }, nil)
	r2 := NewRefinement(NumberKeyword, func(any) bool { return true }, nil)
	if Equal(r1, r2) {
		t.Fatalf("distinct refinement nodes should not be equal")
	}
	if !Equal(r1, r1) {
		t.Fatalf("a refinement should equal itself")
	}
}
