package embedding

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
)

// EinoProvider adapts a cloudwego/eino embedding component to the
// [Provider] interface.
type EinoProvider struct {
	embedder embedding.Embedder
}

// NewEinoProvider wraps an eino embedder.
func NewEinoProvider(e embedding.Embedder) (*EinoProvider, error) {
	if e == nil {
		return nil, ErrNilEmbedder
	}
	return &EinoProvider{embedder: e}, nil
}

// GenerateEmbeddings embeds the texts in one eino call, converting the
// component's float64 vectors to float32.
func (p *EinoProvider) GenerateEmbeddings(ctx context.Context, texts []string, model string) (Result, error) {
	var opts []embedding.Option
	if model != "" {
		opts = append(opts, embedding.WithModel(model))
	}

	vectors, err := p.embedder.EmbedStrings(ctx, texts, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("eino embedder: %w", err)
	}
	if len(vectors) != len(texts) {
		return Result{}, fmt.Errorf("%w: got %d for %d texts", ErrCountMismatch, len(vectors), len(texts))
	}

	out := make([][]float32, len(vectors))
	for i, vec := range vectors {
		out[i] = make([]float32, len(vec))
		for j, v := range vec {
			out[i][j] = float32(v)
		}
	}
	return Result{Embeddings: out}, nil
}
