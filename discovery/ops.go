package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/framersai/capdiscovery/assemble"
	"github.com/framersai/capdiscovery/capability"
	"github.com/framersai/capdiscovery/graph"
	"github.com/framersai/capdiscovery/index"
)

// Initialize normalizes the sources, builds the index and the
// relationship graph from the same descriptor set, and bumps the
// index version (to 1 on a fresh engine). Re-initializing keeps the
// version monotonic so version-keyed consumers never see a repeat.
func (e *Engine) Initialize(ctx context.Context, sources capability.SourceSet, presets []graph.Preset) error {
	descs := capability.Normalize(sources, e.logger)

	if err := e.idx.Build(ctx, descs); err != nil {
		return err
	}

	g := graph.New()
	g.Build(e.idx.List(), presets)

	e.mu.Lock()
	e.snapshot = engineSnapshot{graph: g, presets: presets, version: e.snapshot.version + 1}
	version := e.snapshot.version
	e.mu.Unlock()
	e.tier0.Invalidate()

	e.logger.Info("capability discovery initialized",
		zap.Int("capabilities", len(descs)),
		zap.Int("graphNodes", g.NodeCount()),
		zap.Int("graphEdges", g.EdgeCount()),
		zap.Uint64("indexVersion", version))
	return nil
}

// RefreshIndex merges newly normalized descriptors into the existing
// table (additive upsert, never removal), rebuilds the graph over the
// updated full set, and bumps the index version. A call with no
// sources is a no-op.
func (e *Engine) RefreshIndex(ctx context.Context, sources capability.SourceSet) error {
	descs := capability.Normalize(sources, e.logger)
	if len(descs) == 0 {
		return nil
	}

	if err := e.idx.Merge(ctx, descs); err != nil {
		return err
	}

	e.mu.RLock()
	presets := e.snapshot.presets
	e.mu.RUnlock()

	g := graph.New()
	g.Build(e.idx.List(), presets)

	e.mu.Lock()
	e.snapshot = engineSnapshot{graph: g, presets: presets, version: e.snapshot.version + 1}
	version := e.snapshot.version
	e.mu.Unlock()

	e.logger.Info("capability index refreshed",
		zap.Int("merged", len(descs)),
		zap.Uint64("indexVersion", version))
	return nil
}

// Discover runs the search -> re-rank -> assemble pipeline for one
// query. Before Initialize it returns an explanatory empty result,
// never an error; backend failures during search are propagated.
func (e *Engine) Discover(ctx context.Context, query string, opts *DiscoverOptions) (assemble.Result, error) {
	e.mu.RLock()
	snap := e.snapshot
	e.mu.RUnlock()

	if snap.version == 0 {
		return assemble.Result{
			Tier0: notInitializedTier0,
			TokenEstimate: assemble.TokenEstimate{
				Tier0Tokens: assemble.EstimateTokens(notInitializedTier0),
				TotalTokens: assemble.EstimateTokens(notInitializedTier0),
			},
		}, nil
	}

	filters := index.Filters{}
	topK := e.cfg.SearchTopK
	if opts != nil {
		filters = index.Filters{Kind: opts.Kind, Category: opts.Category, OnlyAvailable: opts.OnlyAvailable}
		if opts.TopK > 0 {
			topK = opts.TopK
		}
	}

	hits, searchStats, err := e.idx.SearchWithStats(ctx, query, topK, filters)
	if err != nil {
		return assemble.Result{}, err
	}

	scored := make([]graph.Scored, len(hits))
	for i, h := range hits {
		scored[i] = graph.Scored{ID: h.Descriptor.ID, Score: h.Score}
	}

	graphStart := time.Now()
	reranked := snap.graph.Rerank(scored, e.cfg.GraphBoostFactor)
	graphMs := float64(time.Since(graphStart).Microseconds()) / 1000.0

	candidates := make([]assemble.ScoredCapability, 0, len(reranked))
	for _, r := range reranked {
		d, ok := e.idx.Get(r.ID)
		if !ok {
			// Recruited neighbor vanished between rerank and lookup.
			continue
		}
		candidates = append(candidates, assemble.ScoredCapability{
			Descriptor: d,
			Score:      r.Score,
			Boosted:    r.Boosted,
		})
	}

	tier0 := e.tier0.Render(e.idx.List(), snap.version)
	result := assemble.Assemble(tier0, candidates, e.cfg.Assemble, &assemble.Timings{
		EmbeddingMs:      searchStats.EmbeddingMs,
		GraphTraversalMs: graphMs,
	})
	return result, nil
}

// Stats reports engine state; all zero before the first Initialize.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	snap := e.snapshot
	e.mu.RUnlock()
	return Stats{
		CapabilityCount: e.idx.Len(),
		GraphNodes:      snap.graph.NodeCount(),
		GraphEdges:      snap.graph.EdgeCount(),
		IndexVersion:    snap.version,
	}
}

// CapabilityDetail looks up one descriptor by ID.
func (e *Engine) CapabilityDetail(id string) (capability.Descriptor, bool) {
	return e.idx.Get(id)
}

// ListCapabilityIDs returns every indexed capability ID, sorted.
func (e *Engine) ListCapabilityIDs() []string {
	return e.idx.IDs()
}

// Related exposes the graph's one-hop neighbors for a capability.
func (e *Engine) Related(id string) []graph.Neighbor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot.graph.Related(id)
}

// InvalidateTier0Cache forces the next Discover to re-render the
// category overview even when the index version is unchanged.
func (e *Engine) InvalidateTier0Cache() {
	e.tier0.Invalidate()
}
