package embedding

import (
	"context"
	"errors"
)

// Error values for embedding operations.
var (
	ErrNilEmbedder   = errors.New("embedder is nil")
	ErrCountMismatch = errors.New("provider returned wrong number of embeddings")
)

// Usage reports token accounting from the provider, when available.
type Usage struct {
	PromptTokens int
	TotalTokens  int
}

// Result is the outcome of one embedding call.
type Result struct {
	// Embeddings holds one vector per input text, in input order.
	Embeddings [][]float32
	Usage      Usage
}

// Provider generates embeddings for batches of text. Implementations
// must preserve input order and return vectors of one fixed dimension.
// An empty model selects the provider's default.
type Provider interface {
	GenerateEmbeddings(ctx context.Context, texts []string, model string) (Result, error)
}
