// Package capdoc renders capability descriptors as text at three
// detail levels, one per discovery tier.
//
//   - [EmbeddingText]: a rich rendering used as input to the embedding
//     provider for vector similarity.
//   - [Summary]: a compact one-line rendering injected into tier 1 of
//     the discovery context.
//   - [Detail]: a full markdown document for tier-2 expansion.
//
// All three are pure string construction: sections with no backing
// data are omitted entirely, never rendered as empty headers.
package capdoc
