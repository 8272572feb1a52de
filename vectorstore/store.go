package vectorstore

import (
	"context"
	"errors"
)

// Error values for store operations.
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrDimensionMismatch  = errors.New("embedding dimension mismatch")
	ErrInvalidDimension   = errors.New("dimension must be positive")
)

// Document is one vector entry in a collection.
type Document struct {
	ID        string
	Embedding []float32
	// Metadata holds filterable fields.
	Metadata map[string]any
	// TextContent is retrievable text stored alongside the vector.
	TextContent string
}

// Match is one similarity-query hit.
type Match struct {
	ID          string
	Score       float64
	Metadata    map[string]any
	TextContent string
}

// Filter is a metadata filter: field name to bare value (equality) or
// operator object.
type Filter map[string]any

// QueryOptions configures a similarity query.
type QueryOptions struct {
	TopK            int
	Filter          Filter
	IncludeMetadata bool
}

// Store is the vector-backend boundary. Implementations must treat
// collections as fixed-dimension and surface dimension mismatches as
// validation errors rather than swallowing them.
type Store interface {
	CreateCollection(ctx context.Context, name string, dimension int) error
	CollectionExists(ctx context.Context, name string) (bool, error)
	Upsert(ctx context.Context, name string, docs []Document) error
	Query(ctx context.Context, name string, embedding []float32, opts QueryOptions) ([]Match, error)
	Delete(ctx context.Context, name string, ids []string) error
}
