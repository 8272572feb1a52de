package assemble

import "strings"

// RenderForPrompt flattens a result into the prompt-ready text: the
// tier-0 overview, a "Relevant capabilities:" section when tier 1 is
// non-empty, and a detailed reference section when tier 2 is
// non-empty. Empty tiers are omitted wholesale, never rendered as
// dangling headers.
func RenderForPrompt(r Result) string {
	var sections []string

	if r.Tier0 != "" {
		sections = append(sections, r.Tier0)
	}

	if len(r.Tier1) > 0 {
		var b strings.Builder
		b.WriteString("Relevant capabilities:")
		for _, e := range r.Tier1 {
			b.WriteString("\n- ")
			b.WriteString(e.SummaryText)
		}
		sections = append(sections, b.String())
	}

	if len(r.Tier2) > 0 {
		var b strings.Builder
		b.WriteString("--- Detailed Capability Reference ---")
		for _, e := range r.Tier2 {
			b.WriteString("\n\n")
			b.WriteString(e.FullText)
		}
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}
