package capability

import (
	"go.uber.org/zap"
)

// ToolRecord is tool metadata as supplied by a tool registry.
type ToolRecord struct {
	Name        string
	DisplayName string
	Description string
	Category    string
	Tags        []string
	Schema      *Schema
	Secrets     []string
	// Disabled marks a tool that is registered but cannot currently
	// run (missing secret, failed health check). Zero value means
	// available.
	Disabled bool
	// Server is the registry or server the tool belongs to.
	Server string
}

// SkillRecord is a skill file as supplied by a skill loader.
type SkillRecord struct {
	Name          string
	DisplayName   string
	Description   string
	Category      string
	Tags          []string
	RequiredTools []string
	Secrets       []string
	// Content is the skill's long-form instruction body.
	Content  string
	Disabled bool
	// Path is the skill file location.
	Path string
}

// ExtensionRecord is an extension manifest as supplied by an
// extension host.
type ExtensionRecord struct {
	Name        string
	DisplayName string
	Description string
	Category    string
	Tags        []string
	Schema      *Schema
	Secrets     []string
	Disabled    bool
	Version     string
}

// ChannelRecord is a communication channel definition as supplied by a
// messaging connector. Channels are always categorized as
// "communication".
type ChannelRecord struct {
	Name        string
	DisplayName string
	Description string
	Tags        []string
	Secrets     []string
	Disabled    bool
	Platform    string
}

// ManifestEntry is a hand-authored manifest capability.
type ManifestEntry struct {
	Kind          Kind
	Name          string
	DisplayName   string
	Description   string
	Category      string
	Tags          []string
	RequiredTools []string
	Secrets       []string
	Content       string
	Disabled      bool
	// Path is the manifest file the entry came from.
	Path string
}

// SourceSet bundles the records from every source provider for one
// normalization pass.
type SourceSet struct {
	Tools      []ToolRecord
	Skills     []SkillRecord
	Extensions []ExtensionRecord
	Channels   []ChannelRecord
	Manifest   []ManifestEntry
}

// Empty reports whether the set contains no records at all.
func (s SourceSet) Empty() bool {
	return len(s.Tools) == 0 && len(s.Skills) == 0 && len(s.Extensions) == 0 &&
		len(s.Channels) == 0 && len(s.Manifest) == 0
}

// Normalize converts every record in the set into a Descriptor.
// Records missing a name are skipped with a warning; normalization of
// the remaining records continues. The logger may be nil.
func Normalize(set SourceSet, logger *zap.Logger) []Descriptor {
	if logger == nil {
		logger = zap.NewNop()
	}

	descs := make([]Descriptor, 0,
		len(set.Tools)+len(set.Skills)+len(set.Extensions)+len(set.Channels)+len(set.Manifest))

	for _, rec := range set.Tools {
		if rec.Name == "" {
			logger.Warn("skipping tool record with empty name")
			continue
		}
		descs = append(descs, NormalizeTool(rec))
	}
	for _, rec := range set.Skills {
		if rec.Name == "" {
			logger.Warn("skipping skill record with empty name", zap.String("path", rec.Path))
			continue
		}
		descs = append(descs, NormalizeSkill(rec))
	}
	for _, rec := range set.Extensions {
		if rec.Name == "" {
			logger.Warn("skipping extension record with empty name")
			continue
		}
		descs = append(descs, NormalizeExtension(rec))
	}
	for _, rec := range set.Channels {
		if rec.Name == "" {
			logger.Warn("skipping channel record with empty name", zap.String("platform", rec.Platform))
			continue
		}
		descs = append(descs, NormalizeChannel(rec))
	}
	for _, rec := range set.Manifest {
		if rec.Name == "" || rec.Kind == "" {
			logger.Warn("skipping manifest entry with missing name or kind", zap.String("path", rec.Path))
			continue
		}
		descs = append(descs, NormalizeManifestEntry(rec))
	}

	return descs
}

// NormalizeTool maps a ToolRecord onto a Descriptor. Tools default to
// the "general" category.
func NormalizeTool(rec ToolRecord) Descriptor {
	category := rec.Category
	if category == "" {
		category = "general"
	}
	displayName := rec.DisplayName
	if displayName == "" {
		displayName = rec.Name
	}
	return Descriptor{
		ID:              DescriptorID(KindTool, rec.Name),
		Kind:            KindTool,
		Name:            rec.Name,
		DisplayName:     displayName,
		Description:     rec.Description,
		Category:        category,
		Tags:            rec.Tags,
		RequiredSecrets: rec.Secrets,
		Available:       !rec.Disabled,
		Schema:          rec.Schema,
		Source:          SourceRef{Type: SourceTool, Ref: rec.Server},
	}
}

// NormalizeSkill maps a SkillRecord onto a Descriptor. Skills without
// a display name derive one by title-casing hyphenated name segments.
func NormalizeSkill(rec SkillRecord) Descriptor {
	category := rec.Category
	if category == "" {
		category = "general"
	}
	displayName := rec.DisplayName
	if displayName == "" {
		displayName = TitleCase(rec.Name)
	}
	return Descriptor{
		ID:              DescriptorID(KindSkill, rec.Name),
		Kind:            KindSkill,
		Name:            rec.Name,
		DisplayName:     displayName,
		Description:     rec.Description,
		Category:        category,
		Tags:            rec.Tags,
		RequiredSecrets: rec.Secrets,
		RequiredTools:   rec.RequiredTools,
		Available:       !rec.Disabled,
		Content:         rec.Content,
		Source:          SourceRef{Type: SourceSkill, Ref: rec.Path},
	}
}

// NormalizeExtension maps an ExtensionRecord onto a Descriptor.
func NormalizeExtension(rec ExtensionRecord) Descriptor {
	category := rec.Category
	if category == "" {
		category = "general"
	}
	displayName := rec.DisplayName
	if displayName == "" {
		displayName = rec.Name
	}
	return Descriptor{
		ID:              DescriptorID(KindExtension, rec.Name),
		Kind:            KindExtension,
		Name:            rec.Name,
		DisplayName:     displayName,
		Description:     rec.Description,
		Category:        category,
		Tags:            rec.Tags,
		RequiredSecrets: rec.Secrets,
		Available:       !rec.Disabled,
		Schema:          rec.Schema,
		Source:          SourceRef{Type: SourceExtension, Ref: rec.Version},
	}
}

// NormalizeChannel maps a ChannelRecord onto a Descriptor. Channel
// category is fixed to "communication".
func NormalizeChannel(rec ChannelRecord) Descriptor {
	displayName := rec.DisplayName
	if displayName == "" {
		displayName = rec.Name
	}
	return Descriptor{
		ID:              DescriptorID(KindChannel, rec.Name),
		Kind:            KindChannel,
		Name:            rec.Name,
		DisplayName:     displayName,
		Description:     rec.Description,
		Category:        "communication",
		Tags:            rec.Tags,
		RequiredSecrets: rec.Secrets,
		Available:       !rec.Disabled,
		Source:          SourceRef{Type: SourceChannel, Ref: rec.Platform},
	}
}

// NormalizeManifestEntry maps a ManifestEntry onto a Descriptor.
// Manifest entries default to the "custom" category, except channel
// entries which are always "communication".
func NormalizeManifestEntry(rec ManifestEntry) Descriptor {
	category := rec.Category
	if category == "" {
		category = "custom"
	}
	if rec.Kind == KindChannel {
		category = "communication"
	}
	displayName := rec.DisplayName
	if displayName == "" {
		displayName = rec.Name
	}
	return Descriptor{
		ID:              DescriptorID(rec.Kind, rec.Name),
		Kind:            rec.Kind,
		Name:            rec.Name,
		DisplayName:     displayName,
		Description:     rec.Description,
		Category:        category,
		Tags:            rec.Tags,
		RequiredSecrets: rec.Secrets,
		RequiredTools:   rec.RequiredTools,
		Available:       !rec.Disabled,
		Content:         rec.Content,
		Source:          SourceRef{Type: SourceManifest, Ref: rec.Path},
	}
}
