package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/framersai/capdiscovery/assemble"
	"github.com/framersai/capdiscovery/capability"
	"github.com/framersai/capdiscovery/capdoc"
	"github.com/framersai/capdiscovery/discovery"
)

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *MCPError `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// HandleRequest processes an MCP request and returns a response.
func (r *Registry) HandleRequest(ctx context.Context, req MCPRequest) MCPResponse {
	switch req.Method {
	case "initialize":
		return r.handleInitialize(ctx, req.ID)
	case "tools/list":
		return r.handleToolsList(ctx, req.ID)
	case "tools/call":
		return r.handleToolsCall(ctx, req.ID, req.Params)
	default:
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    ErrCodeMethodNotFound,
				Message: fmt.Sprintf("method %s not found", req.Method),
			},
		}
	}
}

func (r *Registry) handleInitialize(_ context.Context, id any) MCPResponse {
	result := map[string]any{
		"protocolVersion": MCPVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    r.info.Name,
			"version": r.info.Version,
		},
	}
	return MCPResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func (r *Registry) handleToolsList(_ context.Context, id any) MCPResponse {
	tools := metaTools()
	mcpTools := make([]map[string]any, 0, len(tools))
	for _, tool := range tools {
		mcpTools = append(mcpTools, map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": tool.InputSchema,
		})
	}
	return MCPResponse{JSONRPC: "2.0", ID: id, Result: map[string]any{"tools": mcpTools}}
}

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (r *Registry) handleToolsCall(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var callParams toolsCallParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error:   &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()},
		}
	}

	var (
		result any
		err    error
	)
	switch callParams.Name {
	case ToolDiscoverCapabilities:
		result, err = r.callDiscover(ctx, callParams.Arguments)
	case ToolGetCapabilityDetail:
		result, err = r.callDetail(callParams.Arguments)
	case ToolListCapabilities:
		result = map[string]any{"ids": r.engine.ListCapabilityIDs()}
	default:
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error: &MCPError{
				Code:    ErrCodeToolNotFound,
				Message: fmt.Sprintf("%s: %s", ErrToolNotFound, callParams.Name),
			},
		}
	}
	if err != nil {
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error:   &MCPError{Code: ErrCodeToolExecFailed, Message: err.Error()},
		}
	}
	return MCPResponse{JSONRPC: "2.0", ID: id, Result: result}
}

type discoverArgs struct {
	Query         string `json:"query"`
	Kind          string `json:"kind,omitempty"`
	Category      string `json:"category,omitempty"`
	OnlyAvailable bool   `json:"onlyAvailable,omitempty"`
}

func (r *Registry) callDiscover(ctx context.Context, raw json.RawMessage) (any, error) {
	var args discoverArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	if args.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}

	result, err := r.engine.Discover(ctx, args.Query, &discovery.DiscoverOptions{
		Kind:          capability.Kind(args.Kind),
		Category:      args.Category,
		OnlyAvailable: args.OnlyAvailable,
	})
	if err != nil {
		return nil, err
	}

	capabilities := make([]map[string]any, 0, len(result.Tier1))
	for _, e := range result.Tier1 {
		capabilities = append(capabilities, map[string]any{
			"id":             e.Capability.ID,
			"name":           e.Capability.Name,
			"kind":           string(e.Capability.Kind),
			"category":       e.Capability.Category,
			"relevanceScore": e.RelevanceScore,
			"summary":        e.SummaryText,
		})
	}

	return map[string]any{
		"capabilities": capabilities,
		"context":      assemble.RenderForPrompt(result),
		"tokenEstimate": map[string]any{
			"tier0Tokens": result.TokenEstimate.Tier0Tokens,
			"tier1Tokens": result.TokenEstimate.Tier1Tokens,
			"tier2Tokens": result.TokenEstimate.Tier2Tokens,
			"totalTokens": result.TokenEstimate.TotalTokens,
		},
	}, nil
}

type detailArgs struct {
	ID string `json:"id"`
}

func (r *Registry) callDetail(raw json.RawMessage) (any, error) {
	var args detailArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	if args.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidRequest)
	}

	d, ok := r.engine.CapabilityDetail(args.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCapabilityNotFound, args.ID)
	}
	return map[string]any{
		"id":        d.ID,
		"kind":      string(d.Kind),
		"name":      d.Name,
		"category":  d.Category,
		"available": d.Available,
		"detail":    capdoc.Detail(d),
	}, nil
}
