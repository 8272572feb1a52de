package registry

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/framersai/capdiscovery/discovery"
)

// Meta-tool names.
const (
	ToolDiscoverCapabilities = "discover_capabilities"
	ToolGetCapabilityDetail  = "get_capability_detail"
	ToolListCapabilities     = "list_capabilities"
)

// MCPVersion is the MCP protocol version this server reports.
const MCPVersion = "2024-11-05"

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Registry serves the discovery engine's meta-tools over MCP.
type Registry struct {
	engine *discovery.Engine
	info   ServerInfo
}

// New creates a Registry around an engine.
func New(engine *discovery.Engine, info ServerInfo) *Registry {
	return &Registry{engine: engine, info: info}
}

// metaTools returns the MCP tool definitions for the discovery
// surface.
func metaTools() []mcp.Tool {
	return []mcp.Tool{
		{
			Name: ToolDiscoverCapabilities,
			Description: "Discover which capabilities (tools, skills, extensions, channels) are " +
				"relevant to a task. Returns a ranked, token-budgeted context instead of a full catalog.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"query": {
						Type:        "string",
						Description: "Natural-language description of what you want to do",
					},
					"kind": {
						Type:        "string",
						Description: "Restrict to one capability kind: tool, skill, extension, or channel",
						Enum:        []any{"tool", "skill", "extension", "channel", "any"},
					},
					"category": {
						Type:        "string",
						Description: "Restrict to one capability category",
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        ToolGetCapabilityDetail,
			Description: "Get the full detail document for one capability by its ID.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"id": {
						Type:        "string",
						Description: "Capability ID, e.g. tool:web-search",
					},
				},
				Required: []string{"id"},
			},
		},
		{
			Name:        ToolListCapabilities,
			Description: "List every indexed capability ID.",
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{},
			},
		},
	}
}
