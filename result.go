package schema

import (
	"github.com/brandenbyers/schema/ast"
)

// ParseError is one node of the failure tree produced by decode/encode.
// The closed variant set mirrors the shapes a traversal can fail in:
// type mismatches, refinement and transform failures, keyed and indexed
// path fragments, union branches, missing and unexpected entries.
type ParseError interface {
	parseError()
}

// TypeError reports a value outside the expected node's domain.
type TypeError struct {
	Expected ast.AST
	Actual   any
}

// RefinementKind distinguishes where a refinement failed.
type RefinementKind int

const (
	// RefinementFrom: the underlying type rejected the value.
	RefinementFrom RefinementKind = iota
	// RefinementPredicate: the predicate returned false.
	RefinementPredicate
)

// RefinementError reports a refinement failure; for RefinementFrom the
// inner failures are carried in Errors.
type RefinementError struct {
	Node   *ast.Refinement
	Actual any
	Kind   RefinementKind
	Errors []ParseError
}

// TransformKind distinguishes where a transform failed.
type TransformKind int

const (
	// TransformFrom: the source side rejected the value.
	TransformFrom TransformKind = iota
	// TransformTo: the target side rejected the value (encode direction).
	TransformTo
	// Transformation: the mapping function itself failed.
	Transformation
)

// TransformError reports a transform failure. Errors carries inner failures
// for the From/To kinds; Cause carries the mapping function's error for
// Transformation.
type TransformError struct {
	Node   *ast.Transform
	Actual any
	Kind   TransformKind
	Errors []ParseError
	Cause  error
}

// KeyError wraps failures under an object property.
type KeyError struct {
	Key    any
	Errors []ParseError
}

// IndexError wraps failures under a tuple or array index.
type IndexError struct {
	Index  int
	Errors []ParseError
}

// MemberError is the failure list of a single union branch.
type MemberError struct {
	Errors []ParseError
}

// UnionError aggregates per-branch failures after every member of a union
// rejected the value.
type UnionError struct {
	Node    *ast.Union
	Actual  any
	Members []MemberError
}

// MissingError marks a required property or element that was absent.
type MissingError struct{}

// UnexpectedError marks an excess property under the error excess-property
// policy, or an excess element of a tuple without a rest segment.
type UnexpectedError struct {
	Actual any
}

func (TypeError) parseError()       {}
func (RefinementError) parseError() {}
func (TransformError) parseError()  {}
func (KeyError) parseError()        {}
func (IndexError) parseError()      {}
func (MemberError) parseError()     {}
func (UnionError) parseError()      {}
func (MissingError) parseError()    {}
func (UnexpectedError) parseError() {}

// Failure wraps a nonempty failure list as an error value.
type Failure struct {
	Errors []ParseError
}

// Error renders the flattened failure tree as Issues.Error does: the first
// few issues, separated by semicolons, plus the total when more exist.
func (f *Failure) Error() string {
	return Flatten(f.Errors).Error()
}

// NewFailure wraps errs; errs must be nonempty.
func NewFailure(errs []ParseError) *Failure {
	if len(errs) == 0 {
		panic("schema: failure requires at least one error")
	}
	return &Failure{Errors: errs}
}

// AsFailure extracts a *Failure from an error.
func AsFailure(err error) (*Failure, bool) {
	f, ok := err.(*Failure)
	return f, ok
}
