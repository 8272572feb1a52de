// Package graph maintains the capability relationship graph and the
// score diffusion used to re-rank retrieval results.
//
// The graph is undirected, weighted, and simple: at most one edge per
// capability pair, carrying the strongest signal that relates them.
// It is rebuilt wholesale from a descriptor snapshot by [Graph.Build]
// and never mutated edge-by-edge.
//
// # Edge Signals
//
// Four signals connect capabilities, from strongest to weakest:
//
//   - [EdgeDependsOn] (1.0): a capability lists another tool in its
//     required tools.
//   - [EdgeComposedWith] (0.5): two capabilities appear together in a
//     preset grouping.
//   - [EdgeTaggedWith] (0.3 per shared tag): two capabilities share at
//     least two tags.
//   - [EdgeSameCategory] (0.1): two capabilities share kind and
//     category, in groups of 2 to 8 members.
//
// When multiple signals would connect the same pair, only the
// highest-weight signal survives; ties keep the earlier signal.
//
// # Re-ranking
//
// [Graph.Rerank] diffuses relevance across edges. Capabilities already
// in the result set reinforce their co-retrieved neighbors. The two
// structural signals (depends-on, composed-with) additionally recruit
// neighbors the semantic search missed, so a discovered skill brings
// its required tool along even when the tool's own embedding did not
// match the query. The weak signals (tags, category) only reinforce,
// never recruit.
//
// All operations are deterministic: iteration orders are fixed and
// ties break on capability ID.
package graph
