package dsl

// Package dsl is the user-facing combinator surface. Each combinator is a
// thin factory over the ast package; the interpreters in the root package
// give the resulting schemas their behavior.
//
//  user := dsl.Struct(
//      dsl.Field("id", dsl.String()),
//      dsl.OptionalField("age", dsl.Number()),
//  )
//
// Schemas compose left to right: wrap a schema with Filter, Transform or the
// algebra helpers (Pick, Omit, Partial, Extend, KeyOf) to derive new ones.
