package mcptool

import (
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func stringSliceFromAny(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// secretsFromMeta extracts credential scheme names a tool declares via
// security metadata. Scheme names stand in for the secrets an agent
// must hold to call the tool.
func secretsFromMeta(meta mcp.Meta) []string {
	schemes := schemeNamesFromRequirements(meta["securityRequirements"])
	if len(schemes) == 0 {
		schemes = schemeNamesFromSchemes(meta["securitySchemes"])
	}
	if len(schemes) == 0 {
		return nil
	}
	sort.Strings(schemes)
	return schemes
}

func schemeNamesFromRequirements(raw any) []string {
	switch reqs := raw.(type) {
	case []map[string][]string:
		out := make([]string, 0, len(reqs))
		for _, req := range reqs {
			for name := range req {
				out = append(out, name)
			}
		}
		return out
	case []map[string]any:
		out := make([]string, 0, len(reqs))
		for _, req := range reqs {
			for name := range req {
				out = append(out, name)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(reqs))
		for _, item := range reqs {
			if reqMap, ok := item.(map[string]any); ok {
				for name := range reqMap {
					out = append(out, name)
				}
			}
			if reqMap, ok := item.(map[string][]string); ok {
				for name := range reqMap {
					out = append(out, name)
				}
			}
		}
		return out
	default:
		return nil
	}
}

func schemeNamesFromSchemes(raw any) []string {
	switch schemes := raw.(type) {
	case map[string]any:
		out := make([]string, 0, len(schemes))
		for name := range schemes {
			out = append(out, name)
		}
		return out
	case map[string]map[string]any:
		out := make([]string, 0, len(schemes))
		for name := range schemes {
			out = append(out, name)
		}
		return out
	default:
		return nil
	}
}
