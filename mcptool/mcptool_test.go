package mcptool

import (
	"context"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/framersai/capdiscovery/capability"
)

func TestRecord_Basic(t *testing.T) {
	rec := Record(&mcp.Tool{
		Name:        "web_search",
		Title:       "Web Search",
		Description: "Search the web",
	}, "search-server")

	if rec.Name != "web_search" || rec.DisplayName != "Web Search" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Server != "search-server" {
		t.Errorf("Server = %q", rec.Server)
	}
	if rec.Disabled {
		t.Errorf("Disabled should default to false")
	}
}

func TestRecord_AnnotationsTitleFallback(t *testing.T) {
	rec := Record(&mcp.Tool{
		Name:        "fetch",
		Annotations: &mcp.ToolAnnotations{Title: "HTTP Fetch"},
	}, "s")
	if rec.DisplayName != "HTTP Fetch" {
		t.Errorf("DisplayName = %q", rec.DisplayName)
	}
}

func TestRecord_MetaFields(t *testing.T) {
	rec := Record(&mcp.Tool{
		Name: "search",
		Meta: mcp.Meta{
			"tags":     []any{"web", "research"},
			"category": "information",
			"disabled": true,
			"securityRequirements": []any{
				map[string]any{"apiKey": []any{}},
			},
		},
	}, "s")

	if len(rec.Tags) != 2 || rec.Tags[0] != "web" {
		t.Errorf("Tags = %v", rec.Tags)
	}
	if rec.Category != "information" {
		t.Errorf("Category = %q", rec.Category)
	}
	if !rec.Disabled {
		t.Errorf("disabled meta not honored")
	}
	if len(rec.Secrets) != 1 || rec.Secrets[0] != "apiKey" {
		t.Errorf("Secrets = %v", rec.Secrets)
	}
}

func TestRecord_SecuritySchemesFallback(t *testing.T) {
	rec := Record(&mcp.Tool{
		Name: "search",
		Meta: mcp.Meta{
			"securitySchemes": map[string]any{
				"oauth2": map[string]any{},
				"apiKey": map[string]any{},
			},
		},
	}, "s")
	if len(rec.Secrets) != 2 || rec.Secrets[0] != "apiKey" || rec.Secrets[1] != "oauth2" {
		t.Errorf("Secrets = %v, want sorted scheme names", rec.Secrets)
	}
}

func TestSchemaFromInput_JSONSchema(t *testing.T) {
	rec := Record(&mcp.Tool{
		Name: "search",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {Type: "string", Description: "Search terms"},
				"limit": {Type: "number"},
			},
			Required: []string{"query"},
		},
	}, "s")

	if rec.Schema == nil {
		t.Fatalf("schema not extracted")
	}
	// Properties sorted by name for deterministic rendering.
	if rec.Schema.Properties[0].Name != "limit" || rec.Schema.Properties[1].Name != "query" {
		t.Errorf("properties = %+v", rec.Schema.Properties)
	}
	if rec.Schema.Properties[1].Description != "Search terms" {
		t.Errorf("description lost: %+v", rec.Schema.Properties[1])
	}
	if !rec.Schema.IsRequired("query") || rec.Schema.IsRequired("limit") {
		t.Errorf("required = %v", rec.Schema.Required)
	}
}

func TestSchemaFromInput_DecodedMap(t *testing.T) {
	rec := Record(&mcp.Tool{
		Name: "search",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string", "description": "Search terms"},
			},
			"required": []any{"query"},
		},
	}, "s")

	if rec.Schema == nil {
		t.Fatalf("schema not extracted from map")
	}
	p := rec.Schema.Properties[0]
	if p.Name != "query" || p.Type != "string" || p.Description != "Search terms" {
		t.Errorf("property = %+v", p)
	}
	if !rec.Schema.IsRequired("query") {
		t.Errorf("required lost")
	}
}

func TestSchemaFromInput_Empty(t *testing.T) {
	if Record(&mcp.Tool{Name: "x"}, "s").Schema != nil {
		t.Errorf("nil input schema should yield nil schema")
	}
	if Record(&mcp.Tool{Name: "x", InputSchema: map[string]any{"type": "object"}}, "s").Schema != nil {
		t.Errorf("schema without properties should yield nil")
	}
}

func TestRecords_SkipsNil(t *testing.T) {
	recs := Records([]*mcp.Tool{
		{Name: "a"},
		nil,
		{Name: "b"},
	}, "s")
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
}

func TestSource_Collect(t *testing.T) {
	src := Source{Server: "dev-tools", Tools: []*mcp.Tool{{Name: "a"}, {Name: "b"}}}

	if src.Name() != "mcp:dev-tools" {
		t.Errorf("Name = %q", src.Name())
	}
	set, err := src.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(set.Tools) != 2 {
		t.Errorf("tools = %d", len(set.Tools))
	}

	// The normalizer accepts the converted records directly.
	descs := capability.Normalize(set, nil)
	if len(descs) != 2 || descs[0].ID != "tool:a" {
		t.Errorf("normalized = %+v", descs)
	}
}
