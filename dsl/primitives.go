package dsl

import (
	"math/big"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// AnySchema is any typed schema handle; every *schema.Schema[T] satisfies it.
type AnySchema interface {
	AST() ast.AST
}

// String matches string values.
func String() *schema.Schema[string] { return schema.New[string](ast.StringKeyword) }

// Number matches numeric values; decoded values are widened to float64.
func Number() *schema.Schema[float64] { return schema.New[float64](ast.NumberKeyword) }

// Boolean matches bool values.
func Boolean() *schema.Schema[bool] { return schema.New[bool](ast.BooleanKeyword) }

// BigInt matches *big.Int values.
func BigInt() *schema.Schema[*big.Int] { return schema.New[*big.Int](ast.BigIntKeyword) }

// Symbol matches any *ast.Symbol value.
func Symbol() *schema.Schema[*ast.Symbol] { return schema.New[*ast.Symbol](ast.SymbolKeyword) }

// Unknown accepts every value.
func Unknown() *schema.Schema[any] { return schema.New[any](ast.UnknownKeyword) }

// Any accepts every value.
func Any() *schema.Schema[any] { return schema.New[any](ast.AnyKeyword) }

// Never rejects every value.
func Never() *schema.Schema[any] { return schema.New[any](ast.NeverKeyword) }

// Undefined accepts only the absent value (nil).
func Undefined() *schema.Schema[any] { return schema.New[any](ast.UndefinedKeyword) }

// Void accepts only nil.
func Void() *schema.Schema[any] { return schema.New[any](ast.VoidKeyword) }

// Object accepts any non-nil object-like value.
func Object() *schema.Schema[any] { return schema.New[any](ast.ObjectKeyword) }

// Null matches exactly null.
func Null() *schema.Schema[any] { return schema.New[any](ast.NewLiteral(nil)) }

// Literal matches any of the given primitive constants; more than one value
// yields a union of literal nodes.
func Literal(vs ...any) *schema.Schema[any] {
	if len(vs) == 0 {
		panic("dsl: literal requires at least one value")
	}
	if len(vs) == 1 {
		return schema.New[any](ast.NewLiteral(vs[0]))
	}
	members := make([]ast.AST, len(vs))
	for i, v := range vs {
		members[i] = ast.NewLiteral(v)
	}
	return schema.New[any](ast.NewUnion(members...))
}

// UniqueSymbol matches one specific symbol identity.
func UniqueSymbol(s *ast.Symbol) *schema.Schema[*ast.Symbol] {
	return schema.New[*ast.Symbol](ast.NewUniqueSymbol(s))
}

// EnumMember pairs an enum name with its value.
type EnumMember = ast.EnumMember

// E is shorthand for an enum member.
func E(name string, value any) EnumMember { return EnumMember{Name: name, Value: value} }

// Enums matches any of the declared member values, in order.
func Enums(members ...EnumMember) *schema.Schema[any] {
	return schema.New[any](ast.NewEnums(members))
}

// Span pairs a span type (string or number schema) with its trailing literal.
func Span(s AnySchema, literal string) ast.TemplateSpan {
	return ast.TemplateSpan{Type: s.AST(), Literal: literal}
}

// TemplateLiteral matches strings of the shape head·span₁·literal₁·…, e.g.
// TemplateLiteral("user-", Span(Number(), "")) matches "user-42".
func TemplateLiteral(head string, spans ...ast.TemplateSpan) *schema.Schema[string] {
	return schema.New[string](ast.NewTemplateLiteral(head, spans))
}
