// Package registry exposes capability discovery as an MCP server.
//
// Instead of listing every capability in tools/list, the server
// publishes a small set of meta-tools the agent calls to discover
// what it can do:
//
//   - discover_capabilities {query, kind?, category?}: ranked,
//     token-budgeted capability context for a natural-language query
//   - get_capability_detail {id}: full detail document for one
//     capability
//   - list_capabilities {}: every indexed capability ID
//
// The server speaks MCP JSON-RPC (initialize, tools/list, tools/call)
// over stdio, streamable HTTP, or SSE.
//
// Example usage:
//
//	reg := registry.New(eng, registry.ServerInfo{
//	    Name:    "capability-discovery",
//	    Version: "1.0.0",
//	})
//	registry.ServeStdio(ctx, reg)
package registry
