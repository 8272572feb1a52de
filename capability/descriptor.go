package capability

import (
	"fmt"
	"strings"
)

// Kind classifies a capability.
type Kind string

const (
	KindTool      Kind = "tool"
	KindSkill     Kind = "skill"
	KindExtension Kind = "extension"
	KindChannel   Kind = "channel"

	// KindAny matches every kind in search filters.
	KindAny Kind = "any"
)

// SourceType identifies which provider a descriptor came from.
type SourceType string

const (
	SourceTool      SourceType = "tool"
	SourceSkill     SourceType = "skill"
	SourceExtension SourceType = "extension"
	SourceChannel   SourceType = "channel"
	SourceManifest  SourceType = "manifest"
)

// SourceRef identifies where a descriptor came from. It is carried
// through for traceability and never used in ranking.
type SourceRef struct {
	Type SourceType
	// Ref is a provider-specific locator (file path, server name, ...).
	Ref string
}

// Property is one named parameter in a capability's input schema.
// Properties are ordered so summary rendering is deterministic.
type Property struct {
	Name        string
	Type        string
	Description string
}

// Schema is a structured parameter schema for tool/extension inputs.
type Schema struct {
	Properties []Property
	Required   []string
}

// IsRequired reports whether the named property is listed as required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Descriptor is the unit of discovery: one capability in its uniform,
// source-independent shape.
type Descriptor struct {
	// ID is "{kind}:{name}", unique within one index generation.
	ID          string
	Kind        Kind
	Name        string
	DisplayName string
	Description string

	// Category is a free-form grouping key. Defaults: "general" for
	// tools, "custom" for manifest entries; channels are always
	// "communication".
	Category string

	Tags []string

	RequiredSecrets []string
	RequiredTools   []string

	// Available marks whether the capability can currently be used.
	// Unavailable capabilities may still be indexed but are filterable.
	Available bool

	// Schema is the optional structured parameter schema.
	Schema *Schema

	// Content is optional long-form instructions (skills).
	Content string

	Source SourceRef
}

// DescriptorID builds the canonical "{kind}:{name}" ID.
func DescriptorID(kind Kind, name string) string {
	return fmt.Sprintf("%s:%s", kind, name)
}

// TitleCase converts a hyphenated or lowercase identifier into a
// human-readable title: "web-search" -> "Web Search".
func TitleCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
