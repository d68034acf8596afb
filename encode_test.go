package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/dsl"
)

// For schemas without transforms, encode is the structural identity of
// decode: decode ∘ encode = id.
func TestEncode_IdentityForTransformFreeSchemas(t *testing.T) {
	ctx := context.Background()

	s := dsl.Struct(
		dsl.Field("name", dsl.String()),
		dsl.OptionalField("tags", dsl.Array(dsl.String())),
		dsl.Field("pos", dsl.Tuple(dsl.Element(dsl.Number()), dsl.Element(dsl.Number()))),
	)
	in := map[string]any{
		"name": "n",
		"tags": []any{"x", "y"},
		"pos":  []any{1.0, 2.0},
	}

	decoded, err := s.Decode(ctx, in)
	require.NoError(t, err)

	wire, err := s.Encode(ctx, decoded)
	require.NoError(t, err)
	require.Equal(t, in, wire)

	again, err := s.Decode(ctx, wire.(map[string]any))
	require.NoError(t, err)
	require.Equal(t, decoded, again)
}

func TestEncode_ReverifiesRefinements(t *testing.T) {
	ctx := context.Background()
	s := dsl.MinLength(dsl.String(), 3)

	_, err := s.Encode(ctx, "ab")
	require.Error(t, err, "encode must re-run the refinement chain")
	f, ok := schema.AsFailure(err)
	require.True(t, ok)
	re, ok := f.Errors[0].(schema.RefinementError)
	require.True(t, ok)
	require.Equal(t, schema.RefinementPredicate, re.Kind)

	out, err := s.Encode(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", out)
}

func TestEncode_NestedTransformsChain(t *testing.T) {
	ctx := context.Background()
	// a string <-> number transform nested inside a struct field: encode
	// chains through the struct into the field's transform
	n := dsl.NumberFromString()
	s := dsl.Struct(dsl.Field("count", n))

	decoded, err := s.Decode(ctx, map[string]any{"count": "42"})
	require.NoError(t, err)
	require.Equal(t, float64(42), decoded["count"])

	wire, err := s.Encode(ctx, decoded)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"count": "42"}, wire)
}

func TestEncode_DiscriminatedUnion(t *testing.T) {
	ctx := context.Background()
	u := dsl.Union(
		dsl.Struct(dsl.Field("tag", dsl.Literal("n")), dsl.Field("v", dsl.Number())),
		dsl.Struct(dsl.Field("tag", dsl.Literal("s")), dsl.Field("v", dsl.String())),
	)
	decoded, err := u.Decode(ctx, map[string]any{"tag": "s", "v": "x"})
	require.NoError(t, err)

	wire, err := u.Encode(ctx, decoded)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"tag": "s", "v": "x"}, wire)
}

func TestEncode_MissingRequiredSurfacesIdentically(t *testing.T) {
	ctx := context.Background()
	s := dsl.Struct(dsl.Field("a", dsl.String()))
	_, err := s.Encode(ctx, map[string]any{})
	f, ok := schema.AsFailure(err)
	require.True(t, ok)
	ke, ok := f.Errors[0].(schema.KeyError)
	require.True(t, ok)
	require.IsType(t, schema.MissingError{}, ke.Errors[0])
}
