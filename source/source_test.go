package source_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/dsl"
	"github.com/brandenbyers/schema/source"
)

func userSchema() *schema.Schema[map[string]any] {
	return dsl.Struct(
		dsl.Field("name", dsl.MinLength(dsl.String(), 1)),
		dsl.OptionalField("age", dsl.Number()),
	)
}

func TestDecodeJSON(t *testing.T) {
	ctx := context.Background()
	s := userSchema()

	v, err := source.DecodeJSON(ctx, s, []byte(`{"name":"ann","age":30}`))
	require.NoError(t, err)
	assert.Equal(t, "ann", v["name"])
	assert.Equal(t, float64(30), v["age"])

	// malformed bytes fail before validation
	_, err = source.DecodeJSON(ctx, s, []byte(`{`))
	require.Error(t, err)
	_, isFailure := schema.AsFailure(err)
	assert.False(t, isFailure, "syntax errors are not schema failures")

	// schema failures carry paths
	_, err = source.DecodeJSON(ctx, s, []byte(`{"name":1}`))
	iss, ok := schema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "/name", iss[0].Path)
}

func TestDecodeJSONReader(t *testing.T) {
	ctx := context.Background()
	v, err := source.DecodeJSONReader(ctx, userSchema(), strings.NewReader(`{"name":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, "b", v["name"])
}

func TestDecodeYAML(t *testing.T) {
	ctx := context.Background()
	s := userSchema()

	v, err := source.DecodeYAML(ctx, s, []byte("name: ann\nage: 30\n"))
	require.NoError(t, err)
	assert.Equal(t, "ann", v["name"])
	assert.Equal(t, float64(30), v["age"], "integral YAML numbers widen to float64")

	_, err = source.DecodeYAML(ctx, s, []byte("age: 1\n"))
	require.Error(t, err, "missing required key")
}

func TestEncodeJSON_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := userSchema()

	v, err := source.DecodeJSON(ctx, s, []byte(`{"name":"ann"}`))
	require.NoError(t, err)

	out, err := source.EncodeJSON(ctx, s, v)
	require.NoError(t, err)

	again, err := source.DecodeJSON(ctx, s, out)
	require.NoError(t, err)
	assert.Equal(t, v, again)
}
