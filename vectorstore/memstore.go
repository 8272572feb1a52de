package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

type collection struct {
	dimension int
	docs      map[string]Document
}

// MemStore is an in-memory Store with exact cosine-similarity queries.
// It is safe for concurrent use.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{collections: make(map[string]*collection)}
}

// CreateCollection creates a fixed-dimension collection.
func (s *MemStore) CreateCollection(_ context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDimension, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; ok {
		return fmt.Errorf("%w: %s", ErrCollectionExists, name)
	}
	s.collections[name] = &collection{dimension: dimension, docs: make(map[string]Document)}
	return nil
}

// CollectionExists reports whether the named collection exists.
func (s *MemStore) CollectionExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[name]
	return ok, nil
}

// Upsert inserts or replaces documents by ID.
func (s *MemStore) Upsert(_ context.Context, name string, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	for _, doc := range docs {
		if len(doc.Embedding) != coll.dimension {
			return fmt.Errorf("%w: document %s has dimension %d, collection %s expects %d",
				ErrDimensionMismatch, doc.ID, len(doc.Embedding), name, coll.dimension)
		}
	}
	for _, doc := range docs {
		coll.docs[doc.ID] = doc
	}
	return nil
}

// Delete removes documents by ID. Unknown IDs are ignored.
func (s *MemStore) Delete(_ context.Context, name string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	for _, id := range ids {
		delete(coll.docs, id)
	}
	return nil
}

// Query returns the TopK documents by cosine similarity, after
// applying the metadata filter. Ties break on document ID for
// deterministic ordering.
func (s *MemStore) Query(_ context.Context, name string, embedding []float32, opts QueryOptions) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if len(embedding) != coll.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, collection %s expects %d",
			ErrDimensionMismatch, len(embedding), name, coll.dimension)
	}

	matches := make([]Match, 0, len(coll.docs))
	for _, doc := range coll.docs {
		if !matchesFilter(doc, opts.Filter) {
			continue
		}
		m := Match{
			ID:          doc.ID,
			Score:       cosineSimilarity(embedding, doc.Embedding),
			TextContent: doc.TextContent,
		}
		if opts.IncludeMetadata {
			m.Metadata = doc.Metadata
		}
		matches = append(matches, m)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	topK := opts.TopK
	if topK <= 0 {
		topK = 10
	}
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
