package schema

// Package schema provides:
//
// - A closed AST describing data shapes (keywords, literals, unions, tuples,
//   structs with index signatures, refinements, transforms, recursion)
// - Structural algebra over that AST (pick/omit/partial/extend/keyof)
// - Interpreters folding an AST into artifacts: a validating decoder and its
//   encoder inverse, a structural guard, a pretty-printer and a random-value
//   generator
// - A stable error model: a typed failure tree, flattened into Issues
//   (JSON Pointer, code, message) for rendering
//
// Design policy:
// - Keep only public APIs in the root package; the AST lives under ast/ and
//   the combinator surface under dsl/.
// - Interpreters are pure functions of the AST; memo tables are local to one
//   compilation.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  user := dsl.Struct(
//      dsl.Field("name", dsl.MinLength(dsl.String(), 1)),
//      dsl.OptionalField("age", dsl.Number()),
//  )
//  v, err := user.Decode(ctx, input)
//  ok := user.Is(input)
