package dsl

import (
	"fmt"
	"math"
	"regexp"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

// Filter narrows a schema by a typed predicate. The decoded type is
// unchanged; the predicate also re-runs on the encode side.
func Filter[T any](s *schema.Schema[T], pred func(T) bool, anns ...Annotation) *schema.Schema[T] {
	node := ast.NewRefinement(s.AST(), func(v any) bool {
		tv, ok := v.(T)
		return ok && pred(tv)
	}, buildAnnotations(anns))
	return schema.New[T](node)
}

// ---- string rules ----

// MinLength requires len(s) >= n.
func MinLength(s *schema.Schema[string], n int) *schema.Schema[string] {
	return Filter(s, func(v string) bool { return len(v) >= n },
		Message(func(v any) string { return fmt.Sprintf("expected a string of at least %d character(s)", n) }))
}

// MaxLength requires len(s) <= n.
func MaxLength(s *schema.Schema[string], n int) *schema.Schema[string] {
	return Filter(s, func(v string) bool { return len(v) <= n },
		Message(func(v any) string { return fmt.Sprintf("expected a string of at most %d character(s)", n) }))
}

// Pattern requires the string to match the regular expression. The match is
// not anchored: expr must carry its own ^ and $ to match the whole string.
// The expression is compiled eagerly; an invalid one is a construction error.
func Pattern(s *schema.Schema[string], expr string) *schema.Schema[string] {
	re := regexp.MustCompile(expr)
	return Filter(s, re.MatchString,
		Message(func(v any) string { return fmt.Sprintf("expected a string matching %s", expr) }))
}

// NonEmptyString requires at least one character.
func NonEmptyString(s *schema.Schema[string]) *schema.Schema[string] { return MinLength(s, 1) }

// ---- number rules ----

// Min requires v >= n.
func Min(s *schema.Schema[float64], n float64) *schema.Schema[float64] {
	return Filter(s, func(v float64) bool { return v >= n },
		Message(func(v any) string { return fmt.Sprintf("expected a number at least %v", n) }))
}

// Max requires v <= n.
func Max(s *schema.Schema[float64], n float64) *schema.Schema[float64] {
	return Filter(s, func(v float64) bool { return v <= n },
		Message(func(v any) string { return fmt.Sprintf("expected a number at most %v", n) }))
}

// Positive requires v > 0.
func Positive(s *schema.Schema[float64]) *schema.Schema[float64] {
	return Filter(s, func(v float64) bool { return v > 0 },
		Message(func(v any) string { return fmt.Sprintf("%v must be positive", v) }))
}

// Int requires an integral value.
func Int(s *schema.Schema[float64]) *schema.Schema[float64] {
	return Filter(s, func(v float64) bool { return v == math.Trunc(v) && !math.IsInf(v, 0) },
		Message(func(v any) string { return fmt.Sprintf("expected an integer, actual %v", v) }))
}

// ---- collection rules ----

// MinItems requires at least n elements.
func MinItems(s *schema.Schema[[]any], n int) *schema.Schema[[]any] {
	return Filter(s, func(v []any) bool { return len(v) >= n },
		Message(func(v any) string { return fmt.Sprintf("expected at least %d item(s)", n) }))
}

// MaxItems requires at most n elements.
func MaxItems(s *schema.Schema[[]any], n int) *schema.Schema[[]any] {
	return Filter(s, func(v []any) bool { return len(v) <= n },
		Message(func(v any) string { return fmt.Sprintf("expected at most %d item(s)", n) }))
}
