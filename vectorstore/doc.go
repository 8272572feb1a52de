// Package vectorstore defines the vector-backend boundary used by the
// capability index, and provides MemStore, an exact in-memory
// cosine-similarity implementation of it.
//
// The [Store] interface models a collection-oriented vector database:
// fixed-dimension collections, document upsert with filterable
// metadata, and similarity queries with optional metadata filters. Any
// server-backed or ANN-backed store can sit behind it; MemStore is the
// zero-dependency default suitable for capability sets of a few
// hundred entries.
//
// # Metadata Filters
//
// [Filter] maps field names to either a bare value (equality) or an
// operator object:
//
//	vectorstore.Filter{
//	    "kind":      "tool",
//	    "category":  map[string]any{"$in": []any{"information", "general"}},
//	    "available": true,
//	}
//
// Supported operators: $eq, $ne, $gt, $gte, $lt, $lte, $in, $nin,
// $exists, $contains, $all, $textSearch.
package vectorstore
