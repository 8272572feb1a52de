// Package embedding defines the embedding-provider boundary.
//
// The engine never computes embeddings itself; it delegates to a
// [Provider] supplied at construction. Providers must return one
// fixed-dimension vector per input text, order-preserving.
//
// [EinoProvider] adapts any cloudwego/eino embedding component
// (OpenAI, Ollama, and friends via eino-ext) to the Provider
// interface, so an embedder configured for the rest of an agent stack
// can be reused for capability discovery directly.
package embedding
