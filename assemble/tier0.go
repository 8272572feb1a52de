package assemble

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/framersai/capdiscovery/capability"
)

// maxTier0Names caps how many capability names a category line lists
// before collapsing the rest into a count.
const maxTier0Names = 4

// Tier0Cache renders and caches the category overview. The cache is
// keyed by index generation: an identical version returns the cached
// string without recomputation, and a version change (or explicit
// invalidation) forces regeneration.
type Tier0Cache struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	text    string
}

// NewTier0Cache returns an empty cache.
func NewTier0Cache() *Tier0Cache {
	return &Tier0Cache{}
}

// Render returns the tier-0 overview for the descriptor set, reusing
// the cached text when version matches the last render.
func (c *Tier0Cache) Render(descs []capability.Descriptor, version uint64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.version == version {
		return c.text
	}
	c.text = renderTier0(descs)
	c.version = version
	c.valid = true
	return c.text
}

// Invalidate drops the cached overview so the next Render recomputes
// even for the same version.
func (c *Tier0Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.text = ""
}

func renderTier0(descs []capability.Descriptor) string {
	byCategory := make(map[string][]string)
	for _, d := range descs {
		byCategory[d.Category] = append(byCategory[d.Category], d.Name)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("Available capability categories:")
	for _, cat := range categories {
		names := byCategory[cat]
		shown := names
		if len(shown) > maxTier0Names {
			shown = shown[:maxTier0Names]
		}
		line := fmt.Sprintf("\n- %s (%d): %s", capability.TitleCase(cat), len(names), strings.Join(shown, ", "))
		if len(names) > maxTier0Names {
			line += fmt.Sprintf(", (+%d more)", len(names)-maxTier0Names)
		}
		b.WriteString(line)
	}
	return b.String()
}
