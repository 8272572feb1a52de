// Package index owns the capability descriptor table and drives
// semantic retrieval over it.
//
// On build, every descriptor's embedding-text is batch-embedded
// through the injected [embedding.Provider] and upserted into the
// injected [vectorstore.Store], carrying kind, name, category, and
// availability as filterable metadata. On query, the index embeds the
// query once, delegates the similarity search to the backend, and
// maps hits back to stored descriptors.
//
// Without an embedding provider the index falls back to a bleve
// lexical match over the same embedding-texts, so discovery still
// works (with lexical rather than semantic recall) in
// zero-configuration setups.
//
// The index is safe for concurrent use. Searches against an index
// that was never built, or that holds zero descriptors, return empty
// results rather than errors.
package index
