// Package assemble turns ranked capability candidates into the
// three-tier, token-budgeted discovery context.
//
// Tier 0 is a near-free category overview, cached per index
// generation. Tier 1 is a ranked list of one-line summaries packed
// greedily under a token budget. Tier 2 expands the best tier-1
// candidates into full detail documents under a second budget.
//
// Packing is greedy and order-preserving: candidates are considered
// strictly in relevance order and never reordered for a better fit.
// Tier 1 stops at the first candidate that would overflow its budget;
// tier 2 skips an overflowing candidate and keeps trying later,
// smaller ones.
//
// Token costs use a fixed character-per-token approximation; they are
// estimates for budget control, not exact tokenizer counts.
package assemble
