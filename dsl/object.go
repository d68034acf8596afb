package dsl

import (
	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// FieldSpec describes one property of a Struct. Required and optional fields
// are distinct constructors rather than a marker wrapped around the schema;
// only property_signature.optional exists in the AST.
type FieldSpec struct {
	name     any
	typ      ast.AST
	optional bool
	readonly bool
}

// Field declares a required property.
func Field(name string, s AnySchema) FieldSpec {
	return FieldSpec{name: name, typ: s.AST()}
}

// OptionalField declares an optional property.
func OptionalField(name string, s AnySchema) FieldSpec {
	return FieldSpec{name: name, typ: s.AST(), optional: true}
}

// SymbolField declares a required symbol-keyed property.
func SymbolField(sym *ast.Symbol, s AnySchema) FieldSpec {
	return FieldSpec{name: sym, typ: s.AST()}
}

// Readonly marks the property readonly at the type level.
func (f FieldSpec) Readonly() FieldSpec { f.readonly = true; return f }

// Optional returns a copy of the field marked optional.
func (f FieldSpec) Optional() FieldSpec { f.optional = true; return f }

// Struct builds an object schema from ordered property declarations.
// Duplicate names are a construction error. Use SymbolStruct when any field
// is symbol-keyed: its decoded shape is any-keyed.
func Struct(fields ...FieldSpec) *schema.Schema[map[string]any] {
	for _, f := range fields {
		if _, ok := f.name.(string); !ok {
			panic("dsl: struct with symbol keys decodes to map[any]any; use SymbolStruct")
		}
	}
	return schema.New[map[string]any](typeLiteralOf(fields))
}

// SymbolStruct is Struct for property lists mixing string and symbol keys.
func SymbolStruct(fields ...FieldSpec) *schema.Schema[map[any]any] {
	return schema.New[map[any]any](typeLiteralOf(fields))
}

func typeLiteralOf(fields []FieldSpec) *ast.TypeLiteral {
	props := make([]ast.PropertySignature, len(fields))
	for i, f := range fields {
		props[i] = ast.PropertySignature{
			Name:     f.name,
			Type:     f.typ,
			Optional: f.optional,
			Readonly: f.readonly,
		}
	}
	return ast.NewTypeLiteral(props, nil)
}

// Record builds an object schema with a single index signature: every key
// admitted by the key schema maps to the value schema. The key schema must
// be String, Symbol, a template literal, or a refinement of those.
func Record(key, value AnySchema) *schema.Schema[map[string]any] {
	ix := ast.IndexSignature{Parameter: key.AST(), Type: value.AST()}
	return schema.New[map[string]any](ast.NewTypeLiteral(nil, []ast.IndexSignature{ix}))
}
