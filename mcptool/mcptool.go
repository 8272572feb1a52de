package mcptool

import (
	"context"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/framersai/capdiscovery/capability"
)

// Record converts one MCP tool into a capability ToolRecord. The
// server name is carried as the record's origin.
func Record(tool *mcp.Tool, server string) capability.ToolRecord {
	if tool == nil {
		return capability.ToolRecord{}
	}

	displayName := tool.Title
	if displayName == "" && tool.Annotations != nil {
		displayName = tool.Annotations.Title
	}

	rec := capability.ToolRecord{
		Name:        tool.Name,
		DisplayName: displayName,
		Description: tool.Description,
		Schema:      schemaFromInput(tool.InputSchema),
		Server:      server,
	}

	if tool.Meta != nil {
		rec.Tags = stringSliceFromAny(tool.Meta["tags"])
		if cat, ok := tool.Meta["category"].(string); ok {
			rec.Category = cat
		}
		if disabled, ok := tool.Meta["disabled"].(bool); ok {
			rec.Disabled = disabled
		}
		rec.Secrets = secretsFromMeta(tool.Meta)
	}

	return rec
}

// Records converts a tools/list response.
func Records(tools []*mcp.Tool, server string) []capability.ToolRecord {
	out := make([]capability.ToolRecord, 0, len(tools))
	for _, t := range tools {
		if t == nil {
			continue
		}
		out = append(out, Record(t, server))
	}
	return out
}

// schemaFromInput extracts an ordered parameter schema from a tool's
// input schema, which MCP servers send either as a structured
// jsonschema value or as a plain decoded map.
func schemaFromInput(v any) *capability.Schema {
	switch s := v.(type) {
	case *jsonschema.Schema:
		return schemaFromJSONSchema(s)
	case map[string]any:
		return schemaFromMap(s)
	default:
		return nil
	}
}

func schemaFromJSONSchema(s *jsonschema.Schema) *capability.Schema {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]capability.Property, 0, len(names))
	for _, name := range names {
		p := s.Properties[name]
		prop := capability.Property{Name: name}
		if p != nil {
			prop.Type = p.Type
			prop.Description = p.Description
		}
		props = append(props, prop)
	}
	return &capability.Schema{Properties: props, Required: append([]string(nil), s.Required...)}
}

func schemaFromMap(m map[string]any) *capability.Schema {
	rawProps, ok := m["properties"].(map[string]any)
	if !ok || len(rawProps) == 0 {
		return nil
	}

	names := make([]string, 0, len(rawProps))
	for name := range rawProps {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]capability.Property, 0, len(names))
	for _, name := range names {
		prop := capability.Property{Name: name}
		if fields, ok := rawProps[name].(map[string]any); ok {
			if typ, ok := fields["type"].(string); ok {
				prop.Type = typ
			}
			if desc, ok := fields["description"].(string); ok {
				prop.Description = desc
			}
		}
		props = append(props, prop)
	}
	return &capability.Schema{Properties: props, Required: stringSliceFromAny(m["required"])}
}

// Source is a capability source provider over a fixed MCP tool
// listing, as returned by a server's tools/list.
type Source struct {
	Server string
	Tools  []*mcp.Tool
}

// Name implements the sources.Provider naming contract.
func (s Source) Name() string { return "mcp:" + s.Server }

// Collect converts the listing into tool records.
func (s Source) Collect(context.Context) (capability.SourceSet, error) {
	return capability.SourceSet{Tools: Records(s.Tools, s.Server)}, nil
}
