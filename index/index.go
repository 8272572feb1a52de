package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/framersai/capdiscovery/capability"
	"github.com/framersai/capdiscovery/capdoc"
	"github.com/framersai/capdiscovery/embedding"
	"github.com/framersai/capdiscovery/search"
	"github.com/framersai/capdiscovery/vectorstore"
)

// DefaultCollection is the vector collection name used when Options
// leaves it empty.
const DefaultCollection = "capabilities"

// Error values for index operations.
var (
	ErrStoreRequired = errors.New("vector store is required when an embedding provider is set")
	ErrNotFound      = errors.New("capability not found")
)

// Options configures an Index.
type Options struct {
	// Provider generates embeddings. When nil, the index uses lexical
	// fallback search only.
	Provider embedding.Provider

	// Store is the vector backend. Required when Provider is set.
	Store vectorstore.Store

	// Collection names the vector collection. Default: "capabilities".
	Collection string

	// Model selects the embedding model; empty uses the provider
	// default.
	Model string

	// Logger may be nil.
	Logger *zap.Logger
}

// Hit is one search result: a stored descriptor with its relevance
// score.
type Hit struct {
	Descriptor capability.Descriptor
	Score      float64
}

// Filters narrows a search by descriptor metadata.
type Filters struct {
	// Kind restricts results to one kind. Empty or KindAny matches
	// all.
	Kind capability.Kind

	// Category restricts results to one category when non-empty.
	Category string

	// OnlyAvailable drops capabilities marked unavailable.
	OnlyAvailable bool
}

// vector translates the filters into the backend's metadata-filter
// format. The kind filter is omitted for KindAny.
func (f Filters) vector() vectorstore.Filter {
	out := vectorstore.Filter{}
	if f.Kind != "" && f.Kind != capability.KindAny {
		out["kind"] = string(f.Kind)
	}
	if f.Category != "" {
		out["category"] = f.Category
	}
	if f.OnlyAvailable {
		out["available"] = true
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// matches applies the filters directly to a descriptor (lexical
// fallback path, where the backend filter format is unavailable).
func (f Filters) matches(d capability.Descriptor) bool {
	if f.Kind != "" && f.Kind != capability.KindAny && d.Kind != f.Kind {
		return false
	}
	if f.Category != "" && d.Category != f.Category {
		return false
	}
	if f.OnlyAvailable && !d.Available {
		return false
	}
	return true
}

// Index owns the descriptor set and its retrieval indexes.
type Index struct {
	provider   embedding.Provider
	store      vectorstore.Store
	collection string
	model      string
	logger     *zap.Logger

	mu          sync.RWMutex
	descriptors map[string]capability.Descriptor
	built       bool

	lexical *search.LexicalIndex
}

// New creates an Index from options.
func New(opts Options) (*Index, error) {
	if opts.Provider != nil && opts.Store == nil {
		return nil, ErrStoreRequired
	}
	collection := opts.Collection
	if collection == "" {
		collection = DefaultCollection
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	lexical, err := search.NewLexicalIndex()
	if err != nil {
		return nil, err
	}
	return &Index{
		provider:    opts.Provider,
		store:       opts.Store,
		collection:  collection,
		model:       opts.Model,
		logger:      logger,
		descriptors: make(map[string]capability.Descriptor),
		lexical:     lexical,
	}, nil
}

// Build replaces the descriptor table with the given set, embeds every
// embedding-text in one batch, and upserts the vectors. An empty set
// still marks the index built (queryable-but-empty).
func (ix *Index) Build(ctx context.Context, descs []capability.Descriptor) error {
	table := make(map[string]capability.Descriptor, len(descs))
	for _, d := range descs {
		// Re-adding an ID overwrites in place: later records win.
		table[d.ID] = d
	}

	ordered := orderedDescriptors(table)
	if err := ix.syncLexical(ordered); err != nil {
		return err
	}
	if len(ordered) > 0 {
		if err := ix.embedAndUpsert(ctx, ordered); err != nil {
			return err
		}
	}

	ix.mu.Lock()
	ix.descriptors = table
	ix.built = true
	ix.mu.Unlock()

	ix.logger.Debug("capability index built", zap.Int("capabilities", len(table)))
	return nil
}

// Merge upserts the given descriptors into the existing table without
// removing absent ones (incremental registration). Only the merged
// descriptors are re-embedded.
func (ix *Index) Merge(ctx context.Context, descs []capability.Descriptor) error {
	if len(descs) == 0 {
		return nil
	}

	merged := make(map[string]capability.Descriptor, len(descs))
	for _, d := range descs {
		merged[d.ID] = d
	}
	ordered := orderedDescriptors(merged)
	if err := ix.embedAndUpsert(ctx, ordered); err != nil {
		return err
	}

	ix.mu.Lock()
	for id, d := range merged {
		ix.descriptors[id] = d
	}
	ix.built = true
	full := orderedDescriptors(ix.descriptors)
	ix.mu.Unlock()

	return ix.syncLexical(full)
}

// Upsert registers or replaces a single capability without a full
// rebuild.
func (ix *Index) Upsert(ctx context.Context, d capability.Descriptor) error {
	if err := ix.embedAndUpsert(ctx, []capability.Descriptor{d}); err != nil {
		return err
	}
	if err := ix.lexical.Upsert(search.Doc{ID: d.ID, Text: capdoc.EmbeddingText(d)}); err != nil {
		return err
	}
	ix.mu.Lock()
	ix.descriptors[d.ID] = d
	ix.built = true
	ix.mu.Unlock()
	return nil
}

// Remove deletes a capability from the table and both retrieval
// indexes. Removing an unknown ID is a no-op.
func (ix *Index) Remove(ctx context.Context, id string) error {
	ix.mu.Lock()
	_, existed := ix.descriptors[id]
	delete(ix.descriptors, id)
	ix.mu.Unlock()
	if !existed {
		return nil
	}

	if err := ix.lexical.Delete(id); err != nil {
		return err
	}
	if ix.provider != nil {
		if err := ix.store.Delete(ctx, ix.collection, []string{id}); err != nil {
			return fmt.Errorf("deleting vector for %s: %w", id, err)
		}
	}
	return nil
}

// SearchStats breaks down where one search call spent its time.
type SearchStats struct {
	// EmbeddingMs is the query-embedding provider call. Zero on the
	// lexical fallback path, which embeds nothing.
	EmbeddingMs float64

	// BackendMs covers the vector or lexical query itself.
	BackendMs float64
}

// Search embeds the query and returns the nearest descriptors, mapped
// back from backend hits. It returns empty results, not an error, when
// the index was never built or holds zero descriptors.
func (ix *Index) Search(ctx context.Context, query string, topK int, filters Filters) ([]Hit, error) {
	hits, _, err := ix.SearchWithStats(ctx, query, topK, filters)
	return hits, err
}

// SearchWithStats is Search plus per-stage timing.
func (ix *Index) SearchWithStats(ctx context.Context, query string, topK int, filters Filters) ([]Hit, SearchStats, error) {
	var stats SearchStats

	ix.mu.RLock()
	ready := ix.built && len(ix.descriptors) > 0
	ix.mu.RUnlock()
	if !ready {
		return nil, stats, nil
	}
	if topK <= 0 {
		return nil, stats, nil
	}

	if ix.provider == nil {
		backendStart := time.Now()
		hits, err := ix.searchLexical(ctx, query, topK, filters)
		stats.BackendMs = msSince(backendStart)
		return hits, stats, err
	}

	embedStart := time.Now()
	res, err := ix.provider.GenerateEmbeddings(ctx, []string{query}, ix.model)
	stats.EmbeddingMs = msSince(embedStart)
	if err != nil {
		return nil, stats, fmt.Errorf("embedding query: %w", err)
	}
	if len(res.Embeddings) != 1 {
		return nil, stats, fmt.Errorf("%w: got %d query embeddings", embedding.ErrCountMismatch, len(res.Embeddings))
	}

	backendStart := time.Now()
	matches, err := ix.store.Query(ctx, ix.collection, res.Embeddings[0], vectorstore.QueryOptions{
		TopK:            topK,
		Filter:          filters.vector(),
		IncludeMetadata: true,
	})
	stats.BackendMs = msSince(backendStart)
	if err != nil {
		return nil, stats, fmt.Errorf("vector query: %w", err)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		d, ok := ix.descriptors[m.ID]
		if !ok {
			// Stale backend hit, e.g. a delete raced the query.
			continue
		}
		hits = append(hits, Hit{Descriptor: d, Score: m.Score})
	}
	return hits, stats, nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func (ix *Index) searchLexical(ctx context.Context, query string, topK int, filters Filters) ([]Hit, error) {
	// The lexical index has no metadata filtering, so over-fetch and
	// filter here.
	raw, err := ix.lexical.Search(ctx, query, topK*4)
	if err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	hits := make([]Hit, 0, topK)
	for _, h := range raw {
		d, ok := ix.descriptors[h.ID]
		if !ok || !filters.matches(d) {
			continue
		}
		hits = append(hits, Hit{Descriptor: d, Score: h.Score})
		if len(hits) == topK {
			break
		}
	}
	return hits, nil
}

// Get returns a descriptor by ID.
func (ix *Index) Get(id string) (capability.Descriptor, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	d, ok := ix.descriptors[id]
	return d, ok
}

// List returns all descriptors sorted by ID.
func (ix *Index) List() []capability.Descriptor {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return orderedDescriptors(ix.descriptors)
}

// IDs returns all descriptor IDs sorted.
func (ix *Index) IDs() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	ids := make([]string, 0, len(ix.descriptors))
	for id := range ix.descriptors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the descriptor count.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.descriptors)
}

// Built reports whether Build or Merge has completed at least once.
func (ix *Index) Built() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.built
}

func (ix *Index) syncLexical(descs []capability.Descriptor) error {
	docs := make([]search.Doc, len(descs))
	for i, d := range descs {
		docs[i] = search.Doc{ID: d.ID, Text: capdoc.EmbeddingText(d)}
	}
	return ix.lexical.Sync(docs)
}

// embedAndUpsert batch-embeds the descriptors' embedding-texts and
// upserts one vector document per descriptor, creating the collection
// on first use with the dimension inferred from the first embedding.
func (ix *Index) embedAndUpsert(ctx context.Context, descs []capability.Descriptor) error {
	if ix.provider == nil || len(descs) == 0 {
		return nil
	}

	texts := make([]string, len(descs))
	for i, d := range descs {
		texts[i] = capdoc.EmbeddingText(d)
	}

	res, err := ix.provider.GenerateEmbeddings(ctx, texts, ix.model)
	if err != nil {
		return fmt.Errorf("embedding %d capabilities: %w", len(descs), err)
	}
	if len(res.Embeddings) != len(texts) {
		return fmt.Errorf("%w: got %d for %d texts", embedding.ErrCountMismatch, len(res.Embeddings), len(texts))
	}

	exists, err := ix.store.CollectionExists(ctx, ix.collection)
	if err != nil {
		return fmt.Errorf("checking collection: %w", err)
	}
	if !exists {
		if err := ix.store.CreateCollection(ctx, ix.collection, len(res.Embeddings[0])); err != nil {
			return fmt.Errorf("creating collection: %w", err)
		}
	}

	docs := make([]vectorstore.Document, len(descs))
	for i, d := range descs {
		docs[i] = vectorstore.Document{
			ID:        d.ID,
			Embedding: res.Embeddings[i],
			Metadata: map[string]any{
				"kind":      string(d.Kind),
				"name":      d.Name,
				"category":  d.Category,
				"available": d.Available,
			},
			TextContent: texts[i],
		}
	}
	if err := ix.store.Upsert(ctx, ix.collection, docs); err != nil {
		return fmt.Errorf("upserting vectors: %w", err)
	}
	return nil
}

func orderedDescriptors(table map[string]capability.Descriptor) []capability.Descriptor {
	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]capability.Descriptor, len(ids))
	for i, id := range ids {
		out[i] = table[id]
	}
	return out
}
