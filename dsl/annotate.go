package dsl

import (
	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// Annotation sets one annotation key on a node's annotation map.
type Annotation func(ast.Annotations)

// Identifier sets the stable name used in failure messages.
func Identifier(id string) Annotation {
	return func(m ast.Annotations) { m[ast.IdentifierKey] = id }
}

// Title sets the Title annotation.
func Title(t string) Annotation {
	return func(m ast.Annotations) { m[ast.TitleKey] = t }
}

// Description sets the Description annotation.
func Description(d string) Annotation {
	return func(m ast.Annotations) { m[ast.DescriptionKey] = d }
}

// Documentation sets free-form documentation text.
func Documentation(d string) Annotation {
	return func(m ast.Annotations) { m[ast.DocumentationKey] = d }
}

// Examples sets an ordered list of sample values.
func Examples(vs ...any) Annotation {
	return func(m ast.Annotations) { m[ast.ExamplesKey] = vs }
}

// Message overrides the failure message at this site. The function receives
// the offending value and must be side-effect free.
func Message(f func(v any) string) Annotation {
	return func(m ast.Annotations) { m[ast.MessageKey] = ast.MessageFn(f) }
}

// Custom sets the opaque user-extension slot.
func Custom(v any) Annotation {
	return func(m ast.Annotations) { m[ast.CustomKey] = v }
}

// Annotate overlays the given annotations onto a schema, newest keys
// winning. The wrapped AST is otherwise unchanged.
func Annotate[T any](s *schema.Schema[T], anns ...Annotation) *schema.Schema[T] {
	return schema.New[T](ast.WithAnnotations(s.AST(), buildAnnotations(anns)))
}

func buildAnnotations(anns []Annotation) ast.Annotations {
	m := ast.Annotations{}
	for _, a := range anns {
		a(m)
	}
	return m
}
