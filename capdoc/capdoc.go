package capdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/framersai/capdiscovery/capability"
)

const (
	// maxSummaryDescription is the description length, in runes, beyond
	// which the one-line summary truncates.
	maxSummaryDescription = 120
	// summaryTruncateAt is the rune count the truncated description is
	// cut to before the ellipsis is appended.
	summaryTruncateAt = 117
	// maxSummaryParams caps how many schema property names the summary
	// lists.
	maxSummaryParams = 3
)

// EmbeddingText builds the rich rendering of a descriptor used as
// embedding input. Sections with no data are omitted.
func EmbeddingText(d capability.Descriptor) string {
	var parts []string

	if d.DisplayName != "" && d.DisplayName != d.Name {
		parts = append(parts, fmt.Sprintf("%s (%s)", d.DisplayName, d.Name))
	} else {
		parts = append(parts, d.Name)
	}

	if d.Description != "" {
		parts = append(parts, d.Description)
	}
	if d.Category != "" {
		parts = append(parts, "Category: "+d.Category)
	}
	if len(d.Tags) > 0 {
		parts = append(parts, "Use cases: "+strings.Join(d.Tags, ", "))
	}
	if d.Schema != nil && len(d.Schema.Properties) > 0 {
		names := make([]string, len(d.Schema.Properties))
		for i, p := range d.Schema.Properties {
			names[i] = p.Name
		}
		parts = append(parts, "Parameters: "+strings.Join(names, ", "))
	}
	if len(d.RequiredTools) > 0 {
		parts = append(parts, "Requires: "+strings.Join(d.RequiredTools, ", "))
	}

	return strings.Join(parts, "\n")
}

// Summary builds the compact one-line tier-1 rendering.
func Summary(d capability.Descriptor) string {
	desc := d.Description
	// Lengths count runes, not bytes, so a multi-byte description is
	// never cut mid-rune.
	if utf8.RuneCountInString(desc) > maxSummaryDescription {
		desc = string([]rune(desc)[:summaryTruncateAt]) + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s", d.Name, d.Kind, desc)

	if !d.Available {
		b.WriteString(" [not available]")
	}

	if (d.Kind == capability.KindTool || d.Kind == capability.KindExtension) &&
		d.Schema != nil && len(d.Schema.Properties) > 0 {
		limit := len(d.Schema.Properties)
		if limit > maxSummaryParams {
			limit = maxSummaryParams
		}
		names := make([]string, limit)
		for i := 0; i < limit; i++ {
			names[i] = d.Schema.Properties[i].Name
		}
		b.WriteString(" Params: " + strings.Join(names, ", "))
	}

	if len(d.RequiredTools) > 0 {
		b.WriteString(" Requires: " + strings.Join(d.RequiredTools, ", "))
	}

	return b.String()
}

// Detail builds the full tier-2 document. Optional sections (schema,
// skill instructions, secrets, tags) are omitted when absent.
func Detail(d capability.Descriptor) string {
	var sections []string

	sections = append(sections, "# "+d.DisplayName)
	sections = append(sections, fmt.Sprintf("Kind: %s | Category: %s", d.Kind, d.Category))

	if d.Description != "" {
		sections = append(sections, d.Description)
	}

	if d.Schema != nil && len(d.Schema.Properties) > 0 {
		var b strings.Builder
		b.WriteString("## Input Schema")
		for _, p := range d.Schema.Properties {
			b.WriteString("\n")
			b.WriteString(renderProperty(d.Schema, p))
		}
		sections = append(sections, b.String())
	}

	if d.Content != "" {
		sections = append(sections, "## Skill Instructions\n"+d.Content)
	}

	if len(d.RequiredSecrets) > 0 {
		sections = append(sections, "Required secrets: "+strings.Join(d.RequiredSecrets, ", "))
	}
	if len(d.Tags) > 0 {
		sections = append(sections, "Tags: "+strings.Join(d.Tags, ", "))
	}

	return strings.Join(sections, "\n\n")
}

func renderProperty(s *capability.Schema, p capability.Property) string {
	typ := p.Type
	if typ == "" {
		typ = "any"
	}
	if s.IsRequired(p.Name) {
		typ += ", required"
	}
	if p.Description == "" {
		return fmt.Sprintf("%s (%s)", p.Name, typ)
	}
	return fmt.Sprintf("%s (%s): %s", p.Name, typ, p.Description)
}
