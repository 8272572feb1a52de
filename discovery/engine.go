package discovery

import (
	"sync"

	"go.uber.org/zap"

	"github.com/framersai/capdiscovery/assemble"
	"github.com/framersai/capdiscovery/capability"
	"github.com/framersai/capdiscovery/embedding"
	"github.com/framersai/capdiscovery/graph"
	"github.com/framersai/capdiscovery/index"
	"github.com/framersai/capdiscovery/vectorstore"
)

// notInitializedTier0 is returned by Discover before Initialize has
// run. Discovery never fails an agent turn for this condition.
const notInitializedTier0 = "Capability discovery is not initialized yet. No capabilities are indexed."

// Config tunes the discovery pipeline.
type Config struct {
	// GraphBoostFactor scales edge weights during graph re-ranking.
	GraphBoostFactor float64

	// SearchTopK is how many candidates the index search retrieves
	// before re-ranking.
	SearchTopK int

	// Assemble holds the per-tier budgets and limits.
	Assemble assemble.Config
}

// DefaultConfig returns the tuning used when Options.Config is nil.
func DefaultConfig() Config {
	return Config{
		GraphBoostFactor: 0.3,
		SearchTopK:       15,
		Assemble: assemble.Config{
			Tier1MinRelevance: 0.25,
			Tier1TopK:         10,
			Tier1TokenBudget:  800,
			Tier2TopK:         3,
			Tier2TokenBudget:  2000,
		},
	}
}

// Options configures an Engine.
type Options struct {
	// Provider generates embeddings. Optional: without it the index
	// falls back to lexical search.
	Provider embedding.Provider

	// Store is the vector backend. Required when Provider is set.
	Store vectorstore.Store

	// Collection names the vector collection. Default: "capabilities".
	Collection string

	// Model selects the embedding model; empty uses the provider
	// default.
	Model string

	// Config overrides DefaultConfig when non-nil.
	Config *Config

	// Logger may be nil.
	Logger *zap.Logger
}

// DiscoverOptions narrows one discovery call.
type DiscoverOptions struct {
	// Kind restricts results to one capability kind; empty or
	// KindAny matches all.
	Kind capability.Kind

	// Category restricts results to one category when non-empty.
	Category string

	// OnlyAvailable drops capabilities marked unavailable.
	OnlyAvailable bool

	// TopK overrides Config.SearchTopK when positive.
	TopK int
}

// Stats summarizes engine state.
type Stats struct {
	CapabilityCount int
	GraphNodes      int
	GraphEdges      int
	IndexVersion    uint64
}

// Engine orchestrates the discovery pipeline. Create one with [New].
type Engine struct {
	idx    *index.Index
	tier0  *assemble.Tier0Cache
	cfg    Config
	logger *zap.Logger

	// mu guards the snapshot. Initialize and RefreshIndex build a
	// fresh graph and swap it in whole, so Discover always observes a
	// consistent graph + version pair.
	mu       sync.RWMutex
	snapshot engineSnapshot
}

type engineSnapshot struct {
	graph   *graph.Graph
	presets []graph.Preset
	// version is 0 until the first Initialize (uninitialized).
	version uint64
}

// New creates an Engine from options.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	idx, err := index.New(index.Options{
		Provider:   opts.Provider,
		Store:      opts.Store,
		Collection: opts.Collection,
		Model:      opts.Model,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	return &Engine{
		idx:    idx,
		tier0:  assemble.NewTier0Cache(),
		cfg:    cfg,
		logger: logger,
		snapshot: engineSnapshot{
			graph: graph.New(),
		},
	}, nil
}
