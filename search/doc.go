// Package search provides the lexical retrieval fallback for
// capability discovery.
//
// When the engine is constructed without an embedding provider,
// [LexicalIndex] scores capabilities with a bleve full-text match
// query over their embedding-texts instead of vector similarity. The
// index lives entirely in memory and is resynced from the descriptor
// snapshot on build and refresh; a content fingerprint skips the
// resync when nothing changed.
package search
