package openapi

import "context"

// Parser converts a Document into the operation map the form builder consumes.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions tunes parser behaviour.
type ParserOptions struct {
	// ResolveReferences validates the document and resolves internal $ref
	// pointers before extraction.
	ResolveReferences bool

	// AllowPartialDocuments skips the "no operations" error for documents that
	// only carry component schemas.
	AllowPartialDocuments bool
}
