package schema_test

import (
	"context"
	"testing"

	schema "github.com/brandenbyers/schema"
	"github.com/brandenbyers/schema/ast"
)

func TestTypeAlias_TransparentWithAnnotatedFailures(t *testing.T) {
	node := ast.NewTypeAlias(nil, ast.StringKeyword, ast.Annotations{
		ast.IdentifierKey: "Email",
	})
	s := schema.New[string](node)
	ctx := context.Background()

	v, err := s.Decode(ctx, "a@b")
	if err != nil || v != "a@b" {
		t.Fatalf("alias should delegate, got v=%v err=%v", v, err)
	}

	_, err = s.Decode(ctx, 1)
	iss, _ := schema.AsIssues(err)
	if len(iss) != 1 || iss[0].Message != "Expected Email, actual 1" {
		t.Fatalf("alias identifier should name the failure, got %v", iss)
	}
}
