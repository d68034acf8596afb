// Package source adapts wire inputs (JSON, YAML) into the host values the
// schema interpreters consume. Decoding the bytes and validating the result
// are separate steps; these helpers compose them.
package source

import (
	"context"
	"io"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	schema "github.com/brandenbyers/schema"
)

// JSONBytes decodes JSON into host values (map[string]any, []any, float64,
// string, bool, nil).
func JSONBytes(data []byte) (any, error) {
	var v any
	if err := j.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "source: invalid JSON")
	}
	return v, nil
}

// JSONReader decodes a JSON stream into host values.
func JSONReader(r io.Reader) (any, error) {
	var v any
	dec := j.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "source: invalid JSON")
	}
	return v, nil
}

// YAMLBytes decodes YAML into host values. Integral numbers inside sequences
// and string-keyed mappings are widened to float64 so the same schemas
// accept both JSON and YAML input. Keys are not converted: a mapping with
// non-string keys is returned as yaml.v3 decodes it, without widening.
func YAMLBytes(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "source: invalid YAML")
	}
	return normalizeYAML(v), nil
}

func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeYAML(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeYAML(e)
		}
		return out
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	}
	return v
}

// DecodeJSON parses JSON bytes and decodes them against s.
func DecodeJSON[T any](ctx context.Context, s *schema.Schema[T], data []byte, opts ...schema.ParseOptions) (T, error) {
	v, err := JSONBytes(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Decode(ctx, v, opts...)
}

// DecodeJSONReader parses a JSON stream and decodes it against s.
func DecodeJSONReader[T any](ctx context.Context, s *schema.Schema[T], r io.Reader, opts ...schema.ParseOptions) (T, error) {
	v, err := JSONReader(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Decode(ctx, v, opts...)
}

// DecodeYAML parses YAML bytes and decodes them against s.
func DecodeYAML[T any](ctx context.Context, s *schema.Schema[T], data []byte, opts ...schema.ParseOptions) (T, error) {
	v, err := YAMLBytes(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Decode(ctx, v, opts...)
}

// EncodeJSON encodes a typed value back through s and marshals the wire
// shape to JSON.
func EncodeJSON[T any](ctx context.Context, s *schema.Schema[T], v T, opts ...schema.ParseOptions) ([]byte, error) {
	wire, err := s.Encode(ctx, v, opts...)
	if err != nil {
		return nil, err
	}
	out, err := j.Marshal(wire)
	if err != nil {
		return nil, errors.Wrap(err, "source: encode JSON")
	}
	return out, nil
}
