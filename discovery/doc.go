// Package discovery provides the capability discovery engine: the
// unified facade over normalization, indexing, the relationship graph,
// and context assembly.
//
// Given a natural-language query, the engine returns a three-tier,
// token-budgeted context (a category overview, ranked one-line
// summaries, and a few fully expanded definitions) instead of a full
// capability catalog, driving typical capability-context size down by
// an order of magnitude versus a static manifest.
//
// # Basic Usage
//
//	eng, err := discovery.New(discovery.Options{
//	    Provider: myEmbedder,              // optional; lexical fallback without it
//	    Store:    vectorstore.NewMemStore(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = eng.Initialize(ctx, capability.SourceSet{
//	    Tools:  tools,
//	    Skills: skills,
//	}, presets)
//
//	result, err := eng.Discover(ctx, "search the web and summarize", nil)
//	prompt := assemble.RenderForPrompt(result)
//
// # Pipeline
//
// Each Discover call runs a strict pipeline: index search (embed +
// vector query), then graph re-ranking (score diffusion across
// capability relationships), then context assembly (relevance filter,
// token budgets, tiering). Every stage is timed into the result's
// diagnostics.
//
// # Lifecycle
//
// The engine is uninitialized until [Engine.Initialize] succeeds;
// discovering before that returns an explanatory empty result rather
// than an error, since capability discovery must not abort an agent
// turn. [Engine.RefreshIndex] merges new or changed capabilities
// additively, never removing descriptors missing from the partial
// source set, and rebuilds the graph over the updated full set.
// Every successful Initialize or Refresh bumps the index version,
// which also keys the tier-0 overview cache.
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. Initialize and
// RefreshIndex swap in fresh graph snapshots, so concurrent Discover
// calls always observe a consistent descriptor table and graph.
package discovery
