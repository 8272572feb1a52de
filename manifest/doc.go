// Package manifest loads hand-authored capability manifests from YAML
// files into the normalizer's ManifestEntry shape.
//
// A manifest file looks like:
//
//	capabilities:
//	  - kind: tool
//	    name: web-search
//	    description: Search the web for current information
//	    category: information
//	    tags: [search, web, research]
//	  - kind: skill
//	    name: summarize
//	    description: Summarize retrieved content
//	    requiredTools: [web-search]
//
// The scanner is an interchangeable source provider; the discovery
// core only ever sees the resulting records.
package manifest
